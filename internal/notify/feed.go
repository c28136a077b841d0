// Package notify turns polled call records into a bounded list of
// notifications, each record at most once.
package notify

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Egor213/CallTrack/pkg/client"
)

const DefaultCapacity = 50

type Notification struct {
	ID        string
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}

// Feed keeps the most recent notifications, newest first.
type Feed struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
}

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{capacity: capacity}
}

func NewNotification(r client.LogSummary) Notification {
	title := fmt.Sprintf("New %s request", r.Method)
	if r.Status >= http.StatusBadRequest {
		title = fmt.Sprintf("Error in %s", r.Service)
	}

	return Notification{
		ID:        strconv.FormatInt(r.ID, 10),
		Title:     title,
		Message:   fmt.Sprintf("%s %s - Status: %d", r.Method, r.Path, r.Status),
		Timestamp: r.Timestamp,
	}
}

// Ingest adds the records not seen yet and returns them in poll order.
// Ids dropped by the capacity bound count as unseen again.
func (f *Feed) Ingest(records []client.LogSummary) []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	known := make(map[string]struct{}, len(f.items))
	for _, n := range f.items {
		known[n.ID] = struct{}{}
	}

	var fresh []Notification
	for _, r := range records {
		n := NewNotification(r)
		if _, ok := known[n.ID]; ok {
			continue
		}
		known[n.ID] = struct{}{}
		fresh = append(fresh, n)
	}

	if len(fresh) == 0 {
		return nil
	}

	items := make([]Notification, 0, len(fresh)+len(f.items))
	items = append(items, fresh...)
	items = append(items, f.items...)
	if len(items) > f.capacity {
		items = items[:f.capacity]
	}
	f.items = items

	return fresh
}

func (f *Feed) MarkRead(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	for i := range f.items {
		if _, ok := set[f.items[i].ID]; ok {
			f.items[i].Read = true
		}
	}
}

// Items returns a copy of the notifications, newest first.
func (f *Feed) Items() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}
