package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpv1 "github.com/Egor213/CallTrack/internal/controller/http/v1"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	repomocks "github.com/Egor213/CallTrack/internal/mocks/repository"
	servicemocks "github.com/Egor213/CallTrack/internal/mocks/service"
	"github.com/Egor213/CallTrack/internal/service"
	"github.com/Egor213/CallTrack/pkg/client"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newCallTrackServer runs the real HTTP API and log service over a mocked
// repository. Every record that reaches the store is sent on the channel.
func newCallTrackServer(t *testing.T) (*client.Client, <-chan *domain.LogRecord) {
	t.Helper()
	ctrl := gomock.NewController(t)

	stored := make(chan *domain.LogRecord, 1)
	logRepo := repomocks.NewMockLog(ctrl)
	logRepo.EXPECT().
		CreateLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.LogRecord) (int64, error) {
			stored <- rec
			return 1, nil
		}).
		AnyTimes()

	counters := metrics.NewCounters(prometheus.NewRegistry())
	logs := service.NewLogService(logRepo, servicemocks.NewMockTxManager(ctrl), counters, nil)

	e := echo.New()
	httpv1.ConfigureRouter(e, &service.Services{Log: logs}, counters)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return client.New(srv.URL), stored
}

func receive(t *testing.T, stored <-chan *domain.LogRecord) *domain.LogRecord {
	t.Helper()
	select {
	case rec := <-stored:
		return rec
	default:
		t.Fatal("call record was not stored")
		return nil
	}
}

func TestTrack_StoredByServer(t *testing.T) {
	testCases := []struct {
		name             string
		call             func(ctx context.Context, r *client.Recorder) error
		wantStatus       int
		wantResponseBody string
	}{
		{
			name: "plain text result",
			call: func(ctx context.Context, r *client.Recorder) error {
				_, err := client.Track(ctx, r, "GET", "/greeting", nil,
					func(context.Context) (string, error) { return "hello world", nil })
				return err
			},
			wantStatus:       http.StatusOK,
			wantResponseBody: `{"body":"hello world"}`,
		},
		{
			name: "text that looks like json",
			call: func(ctx context.Context, r *client.Recorder) error {
				_, err := client.Track(ctx, r, "GET", "/raw", nil,
					func(context.Context) (string, error) { return `{"a":1}`, nil })
				return err
			},
			wantStatus:       http.StatusOK,
			wantResponseBody: `{"body":"{\"a\":1}"}`,
		},
		{
			name: "struct result",
			call: func(ctx context.Context, r *client.Recorder) error {
				_, err := client.Track(ctx, r, "POST", "/users", user{Name: "ann"},
					func(context.Context) (user, error) { return user{Name: "ann"}, nil })
				return err
			},
			wantStatus:       http.StatusOK,
			wantResponseBody: `{"name":"ann"}`,
		},
		{
			name: "failed call",
			call: func(ctx context.Context, r *client.Recorder) error {
				_, err := client.Track(ctx, r, "DELETE", "/users/1", nil,
					func(context.Context) (string, error) {
						return "", echo.NewHTTPError(http.StatusForbidden, "nope")
					})
				return err
			},
			wantStatus:       http.StatusForbidden,
			wantResponseBody: `{"error":"code=403, message=nope"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api, stored := newCallTrackServer(t)
			rec := client.NewRecorder("frontend", api)

			err := tc.call(context.Background(), rec)
			if tc.wantStatus >= http.StatusBadRequest {
				var httpErr *echo.HTTPError
				assert.True(t, errors.As(err, &httpErr))
			} else {
				require.NoError(t, err)
			}

			got := receive(t, stored)
			assert.Equal(t, "frontend", got.Service)
			assert.Equal(t, tc.wantStatus, got.Status)
			require.NotNil(t, got.ResponseBody)
			assert.JSONEq(t, tc.wantResponseBody, *got.ResponseBody)
		})
	}
}
