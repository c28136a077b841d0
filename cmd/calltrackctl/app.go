package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Egor213/CallTrack/internal/notify"
	"github.com/Egor213/CallTrack/pkg/client"
	"github.com/Egor213/CallTrack/pkg/logger"
	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"
)

const defaultURL = "http://localhost:8080"

type apiClient interface {
	SendLog(ctx context.Context, in client.LogInput) (int64, error)
	GetLogs(ctx context.Context, q client.Query) (*client.LogsPage, error)
	Latest(ctx context.Context) ([]client.LogSummary, error)
	Stats(ctx context.Context) (*client.Stats, error)
}

func apiFrom(cCtx *cli.Context) apiClient {
	return client.New(cCtx.String("url"), client.WithTimeout(cCtx.Duration("timeout")))
}

// fetch shows a spinner on stderr while fn runs.
func fetch[T any](cCtx *cli.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	if !cCtx.Bool("verbose") {
		s.Start()
	}
	defer s.Stop()

	return fn(cCtx.Context)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "calltrackctl",
		Usage: "Query and watch API call records stored by CallTrack",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "CallTrack API base URL",
				Value:   defaultURL,
				EnvVars: []string{"CALLTRACK_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "HTTP timeout per request",
				Value: 10 * time.Second,
			},
			&cli.BoolFlag{Name: "verbose", Usage: "Log debug output to stderr"},
		},
		Before: func(cCtx *cli.Context) error {
			logger.SetupCLILogger(os.Stderr, cCtx.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			logsCommand(),
			latestCommand(),
			statsCommand(),
			sendCommand(),
			watchCommand(),
		},
	}
}

func logsCommand() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "List call records, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Usage: "error (status >= 400) or success"},
			&cli.StringFlag{Name: "service", Usage: "Exact service name"},
			&cli.StringFlag{Name: "method", Usage: "Exact HTTP method"},
			&cli.IntFlag{Name: "limit", Usage: "Records per page", Value: 50},
			&cli.IntFlag{Name: "page", Usage: "Page number, starting at 1", Value: 1},
		},
		Action: func(cCtx *cli.Context) error {
			api := apiFrom(cCtx)
			q := client.Query{
				Status:  cCtx.String("status"),
				Service: cCtx.String("service"),
				Method:  cCtx.String("method"),
				Limit:   cCtx.Int("limit"),
				Page:    cCtx.Int("page"),
			}

			page, err := fetch(cCtx, func(ctx context.Context) (*client.LogsPage, error) {
				return api.GetLogs(ctx, q)
			})
			if err != nil {
				return fmt.Errorf("could not fetch logs: %w", err)
			}

			renderLogs(cCtx.App.Writer, page)
			return nil
		},
	}
}

func latestCommand() *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Show the five most recent call records",
		Action: func(cCtx *cli.Context) error {
			latest, err := fetch(cCtx, apiFrom(cCtx).Latest)
			if err != nil {
				return fmt.Errorf("could not fetch latest logs: %w", err)
			}

			renderLatest(cCtx.App.Writer, latest)
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show aggregate statistics over all records",
		Action: func(cCtx *cli.Context) error {
			stats, err := fetch(cCtx, apiFrom(cCtx).Stats)
			if err != nil {
				return fmt.Errorf("could not fetch statistics: %w", err)
			}

			renderStats(cCtx.App.Writer, stats)
			return nil
		},
	}
}

func sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Store one call record",
		UsageText: "calltrackctl send --service auth --method GET --path /users [flags]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "service", Required: true},
			&cli.StringFlag{Name: "method", Required: true},
			&cli.StringFlag{Name: "path", Required: true},
			&cli.IntFlag{Name: "status", Value: 200},
			&cli.IntFlag{Name: "duration", Usage: "Duration in milliseconds"},
			&cli.StringFlag{Name: "request-body", Usage: "JSON request body"},
			&cli.StringFlag{Name: "response-body", Usage: "JSON response body"},
			&cli.StringFlag{Name: "error", Usage: "Error message"},
		},
		Action: func(cCtx *cli.Context) error {
			in := client.LogInput{
				Service:  cCtx.String("service"),
				Method:   cCtx.String("method"),
				Path:     cCtx.String("path"),
				Status:   cCtx.Int("status"),
				Duration: cCtx.Int("duration"),
				Error:    cCtx.String("error"),
			}

			var err error
			if in.RequestBody, err = jsonFlag(cCtx, "request-body"); err != nil {
				return err
			}
			if in.ResponseBody, err = jsonFlag(cCtx, "response-body"); err != nil {
				return err
			}

			id, err := apiFrom(cCtx).SendLog(cCtx.Context, in)
			if err != nil {
				return fmt.Errorf("could not store record: %w", err)
			}

			fmt.Fprintf(cCtx.App.Writer, "Stored record %d\n", id)
			return nil
		},
	}
}

func jsonFlag(cCtx *cli.Context, name string) (json.RawMessage, error) {
	raw := cCtx.String(name)
	if raw == "" {
		return nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("--%s is not valid JSON", name)
	}
	return json.RawMessage(raw), nil
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll for new records and print an alert for each batch",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "interval", Value: notify.DefaultInterval},
		},
		Action: func(cCtx *cli.Context) error {
			ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cCtx.App.Writer
			feed := notify.NewFeed(notify.DefaultCapacity)
			poller := notify.NewPoller(apiFrom(cCtx), feed,
				notify.AlerterFunc(func(n notify.Notification) {
					renderAlert(w, n, feed.Unread())
				}),
				notify.WithInterval(cCtx.Duration("interval")),
			)

			fmt.Fprintln(w, "Watching for new call records, press Ctrl+C to stop")
			poller.Run(ctx)

			items := feed.Items()
			renderNotifications(w, items)

			ids := make([]string, 0, len(items))
			for _, n := range items {
				ids = append(ids, n.ID)
			}
			feed.MarkRead(ids...)
			return nil
		},
	}
}
