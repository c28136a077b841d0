package notify

import (
	"context"
	"time"

	"github.com/Egor213/CallTrack/pkg/client"
	log "github.com/sirupsen/logrus"
)

const DefaultInterval = 10 * time.Second

type LatestFetcher interface {
	Latest(ctx context.Context) ([]client.LogSummary, error)
}

type Alerter interface {
	Alert(n Notification)
}

type AlerterFunc func(n Notification)

func (f AlerterFunc) Alert(n Notification) {
	f(n)
}

type Poller struct {
	fetcher  LatestFetcher
	feed     *Feed
	alerter  Alerter
	interval time.Duration
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

func NewPoller(fetcher LatestFetcher, feed *Feed, alerter Alerter, opts ...PollerOption) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		feed:     feed,
		alerter:  alerter,
		interval: DefaultInterval,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Run polls immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.Poll(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll runs one cycle and returns the notifications it added.
// At most one alert is raised per cycle, for the most recent new record.
func (p *Poller) Poll(ctx context.Context) []Notification {
	records, err := p.fetcher.Latest(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.WithError(err).Warn("Failed to fetch latest call records")
		}
		return nil
	}

	fresh := p.feed.Ingest(records)
	if len(fresh) > 0 && p.alerter != nil {
		p.alerter.Alert(fresh[0])
	}

	return fresh
}
