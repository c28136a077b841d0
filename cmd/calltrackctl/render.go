package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Egor213/CallTrack/internal/notify"
	"github.com/Egor213/CallTrack/pkg/client"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const timeLayout = "02 Jan 06 15:04:05 MST"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func colorStatus(status int) string {
	switch {
	case status >= 500:
		return text.FgRed.Sprint(status)
	case status >= 400:
		return text.FgYellow.Sprint(status)
	default:
		return text.FgGreen.Sprint(status)
	}
}

func localTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func renderLogs(w io.Writer, page *client.LogsPage) {
	if len(page.Logs) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Time", "Service", "Method", "Path", "Status", "Duration", "Error"})
	for _, l := range page.Logs {
		errText := ""
		if l.Error != nil {
			errText = *l.Error
		}
		t.AppendRow(table.Row{
			l.ID,
			localTime(l.Timestamp),
			l.Service,
			l.Method,
			l.Path,
			colorStatus(l.Status),
			fmt.Sprintf("%dms", l.Duration),
			errText,
		})
	}
	p := page.Pagination
	t.AppendFooter(table.Row{"", "", "", "", "", "", "Page", fmt.Sprintf("%d/%d of %d", p.Page, p.Pages, p.Total)})
	t.Render()
}

func renderLatest(w io.Writer, latest []client.LogSummary) {
	if len(latest) == 0 {
		fmt.Fprintln(w, "No records yet.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Time", "Service", "Method", "Path", "Status", "Duration"})
	for _, l := range latest {
		t.AppendRow(table.Row{
			l.ID,
			localTime(l.Timestamp),
			l.Service,
			l.Method,
			l.Path,
			colorStatus(l.Status),
			fmt.Sprintf("%dms", l.Duration),
		})
	}
	t.Render()
}

func renderDistribution(w io.Writer, title string, counts []client.NamedCount) {
	t := newTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Name", "Count"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Name, c.Value})
	}
	t.Render()
}

func renderStats(w io.Writer, s *client.Stats) {
	fmt.Fprintf(w, "Total logs: %d\n", s.TotalLogs)
	fmt.Fprintf(w, "Success rate: %s\n", text.FgGreen.Sprintf("%d%%", s.SuccessRate))
	fmt.Fprintf(w, "Error rate: %s\n", text.FgRed.Sprintf("%d%%", s.ErrorRate))

	renderDistribution(w, "Methods", s.MethodDistribution)
	renderDistribution(w, "Status classes", s.StatusDistribution)
	renderDistribution(w, "Services", s.ServiceDistribution)

	peak := 0
	for _, h := range s.TimeDistribution {
		peak = max(peak, h.Count)
	}

	t := newTable(w)
	t.SetTitle("Last 24 hours")
	t.AppendHeader(table.Row{"Hour", "Count", ""})
	for _, h := range s.TimeDistribution {
		t.AppendRow(table.Row{h.Time, h.Count, bar(h.Count, peak, 30)})
	}
	t.Render()
}

func bar(value, peak, width int) string {
	if peak == 0 || value == 0 {
		return ""
	}
	n := max(1, value*width/peak)
	return strings.Repeat("#", n)
}

func renderAlert(w io.Writer, n notify.Notification, unread int) {
	title := text.FgGreen.Sprint(n.Title)
	if strings.HasPrefix(n.Title, "Error") {
		title = text.FgRed.Sprint(n.Title)
	}
	fmt.Fprintf(w, "[%s] %s: %s (%d unread)\n", localTime(n.Timestamp), title, n.Message, unread)
}

func renderNotifications(w io.Writer, items []notify.Notification) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return
	}

	t := newTable(w)
	t.SetTitle("Notifications")
	t.AppendHeader(table.Row{"ID", "Time", "Title", "Message", "Read"})
	for _, n := range items {
		read := ""
		if n.Read {
			read = "yes"
		}
		t.AppendRow(table.Row{n.ID, localTime(n.Timestamp), n.Title, n.Message, read})
	}
	t.Render()
}
