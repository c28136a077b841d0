package httpv1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpv1 "github.com/Egor213/CallTrack/internal/controller/http/v1"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	servicemocks "github.com/Egor213/CallTrack/internal/mocks/service"
	"github.com/Egor213/CallTrack/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testServer struct {
	handler *echo.Echo
	logs    *servicemocks.MockLog
	stats   *servicemocks.MockStats
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		handler: echo.New(),
		logs:    servicemocks.NewMockLog(ctrl),
		stats:   servicemocks.NewMockStats(ctrl),
	}
	services := &service.Services{Log: ts.logs, Stats: ts.stats}
	httpv1.ConfigureRouter(ts.handler, services, metrics.NewCounters(prometheus.NewRegistry()))
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestLogController_SendLog(t *testing.T) {
	const validBody = `{
		"service": "auth",
		"method": "POST",
		"path": "/login",
		"status": 500,
		"duration": 31,
		"requestBody": {"user": "bob"},
		"responseBody": "{\"error\":\"boom\"}",
		"error": "boom"
	}`

	testCases := []struct {
		name         string
		body         string
		mockBehavior func(m *servicemocks.MockLog)
		wantCode     int
		wantBody     string
	}{
		{
			name: "success",
			body: validBody,
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().
					SendLog(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *domain.LogInput) (int64, error) {
						assert.Equal(t, "auth", in.Service)
						assert.Equal(t, "POST", in.Method)
						assert.Equal(t, "/login", in.Path)
						assert.Equal(t, 500, in.Status)
						assert.Equal(t, 31, in.Duration)
						assert.Equal(t, "boom", in.Error)
						assert.JSONEq(t, `{"user":"bob"}`, string(in.RequestBody))
						assert.JSONEq(t, `"{\"error\":\"boom\"}"`, string(in.ResponseBody))
						return 42, nil
					})
			},
			wantCode: http.StatusOK,
			wantBody: `{"success":true,"id":42}`,
		},
		{
			name:         "malformed json",
			body:         `{"service": "auth",`,
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to create log entry"}`,
		},
		{
			name:         "missing service",
			body:         `{"method":"GET","path":"/","status":200,"duration":1}`,
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to create log entry"}`,
		},
		{
			name:         "missing path",
			body:         `{"service":"auth","method":"GET","status":200,"duration":1}`,
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to create log entry"}`,
		},
		{
			name:         "negative duration",
			body:         `{"service":"auth","method":"GET","path":"/","status":200,"duration":-5}`,
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to create log entry"}`,
		},
		{
			name: "service failure does not leak details",
			body: validBody,
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().
					SendLog(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("pq: connection refused on 10.0.0.3"))
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to create log entry"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.mockBehavior(ts.logs)

			rec := ts.do(http.MethodPost, "/logs", tc.body)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestLogController_GetLogs(t *testing.T) {
	createdAt := time.Date(2026, 10, 15, 9, 30, 0, 123000000, time.UTC)
	errMsg := "not found"

	page := domain.LogPage{
		Logs: []domain.LogView{{
			ID:          11,
			Service:     "auth",
			Method:      "GET",
			Path:        "/users/1",
			Status:      404,
			Duration:    8,
			RequestBody: json.RawMessage(`{"q":1}`),
			Error:       &errMsg,
			CreatedAt:   createdAt,
		}},
		Pagination: domain.Pagination{Total: 61, Page: 2, Limit: 30, Pages: 3},
	}

	testCases := []struct {
		name         string
		target       string
		mockBehavior func(m *servicemocks.MockLog)
		wantCode     int
		wantBody     string
	}{
		{
			name:   "filters and pagination",
			target: "/logs?status=error&service=auth&method=GET&limit=30&page=2",
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().
					GetLogs(gomock.Any(), domain.LogQuery{Status: "error", Service: "auth", Method: "GET", Limit: 30, Page: 2}).
					Return(page, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{
				"logs": [{
					"id": 11,
					"service": "auth",
					"method": "GET",
					"path": "/users/1",
					"status": 404,
					"duration": 8,
					"error": "not found",
					"requestBody": {"q": 1},
					"responseBody": null,
					"timestamp": "2026-10-15T09:30:00.123Z"
				}],
				"pagination": {"total": 61, "page": 2, "limit": 30, "pages": 3}
			}`,
		},
		{
			name:   "no parameters uses defaults",
			target: "/logs",
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().
					GetLogs(gomock.Any(), domain.LogQuery{}).
					Return(domain.LogPage{Pagination: domain.Pagination{Page: 1, Limit: 50}}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"logs":[],"pagination":{"total":0,"page":1,"limit":50,"pages":0}}`,
		},
		{
			name:         "non numeric limit",
			target:       "/logs?limit=abc",
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to fetch logs"}`,
		},
		{
			name:         "limit too large",
			target:       "/logs?limit=5000",
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to fetch logs"}`,
		},
		{
			name:         "negative page",
			target:       "/logs?page=-2",
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"error":"Failed to fetch logs"}`,
		},
		{
			name:   "store failure",
			target: "/logs",
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().GetLogs(gomock.Any(), gomock.Any()).Return(domain.LogPage{}, domain.ErrMalformedBody)
			},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to fetch logs"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.mockBehavior(ts.logs)

			rec := ts.do(http.MethodGet, tc.target, "")

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestLogController_GetLatest(t *testing.T) {
	ts := newTestServer(t)
	createdAt := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

	ts.logs.EXPECT().GetLatest(gomock.Any()).Return([]domain.LogSummary{
		{ID: 2, Service: "auth", Method: "GET", Path: "/b", Status: 500, Duration: 3, CreatedAt: createdAt},
		{ID: 1, Service: "auth", Method: "GET", Path: "/a", Status: 200, Duration: 1, CreatedAt: createdAt.Add(-time.Minute)},
	}, nil)
	ts.logs.EXPECT().GetLatest(gomock.Any()).Return(nil, errors.New("db error"))

	rec := ts.do(http.MethodGet, "/logs/latest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":2,"service":"auth","method":"GET","path":"/b","status":500,"duration":3,"timestamp":"2026-10-15T09:30:00.000Z"},
		{"id":1,"service":"auth","method":"GET","path":"/a","status":200,"duration":1,"timestamp":"2026-10-15T09:29:00.000Z"}
	]`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/logs/latest", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch latest logs"}`, rec.Body.String())
}

func TestLogController_GetStats(t *testing.T) {
	ts := newTestServer(t)
	start := time.Date(2026, 10, 15, 13, 0, 0, 0, time.UTC)

	ts.stats.EXPECT().GetStats(gomock.Any()).Return(domain.Stats{
		TotalLogs:           3,
		MethodDistribution:  []domain.NamedCount{{Name: "GET", Value: 3}},
		StatusDistribution:  []domain.NamedCount{{Name: "2xx", Value: 2}, {Name: "5xx", Value: 1}},
		ServiceDistribution: []domain.NamedCount{{Name: "auth", Value: 3}},
		TimeDistribution:    []domain.HourCount{{Label: "01 PM", Start: start, Count: 3}},
		SuccessRate:         67,
		ErrorRate:           33,
	}, nil)
	ts.stats.EXPECT().GetStats(gomock.Any()).Return(domain.Stats{}, errors.New("db error"))

	rec := ts.do(http.MethodGet, "/logs/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"totalLogs": 3,
		"methodDistribution": [{"name":"GET","value":3}],
		"statusDistribution": [{"name":"2xx","value":2},{"name":"5xx","value":1}],
		"serviceDistribution": [{"name":"auth","value":3}],
		"timeDistribution": [{"time":"01 PM","start":"2026-10-15T13:00:00Z","count":3}],
		"successRate": 67,
		"errorRate": 33
	}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/logs/stats", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch log statistics"}`, rec.Body.String())
}

func TestRouter_HealthAndRequestID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
