package httpv1

import (
	"encoding/json"
	"time"

	"github.com/Egor213/CallTrack/internal/domain"
)

// isoLayout matches JavaScript's Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

type ErrorResponse struct {
	Error string `json:"error"`
}

type SendLogRequest struct {
	Service      string          `json:"service"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Status       int             `json:"status"`
	Duration     int             `json:"duration"`
	RequestBody  json.RawMessage `json:"requestBody,omitempty"`
	ResponseBody json.RawMessage `json:"responseBody,omitempty"`
	Error        *string         `json:"error,omitempty"`
}

type SendLogResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type LogResponse struct {
	ID           int64           `json:"id"`
	Service      string          `json:"service"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Status       int             `json:"status"`
	Duration     int             `json:"duration"`
	Error        *string         `json:"error"`
	RequestBody  json.RawMessage `json:"requestBody"`
	ResponseBody json.RawMessage `json:"responseBody"`
	Timestamp    string          `json:"timestamp"`
}

type PaginationResponse struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type GetLogsResponse struct {
	Logs       []LogResponse      `json:"logs"`
	Pagination PaginationResponse `json:"pagination"`
}

type LatestLogResponse struct {
	ID        int64  `json:"id"`
	Service   string `json:"service"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Status    int    `json:"status"`
	Duration  int    `json:"duration"`
	Timestamp string `json:"timestamp"`
}

type NamedCountResponse struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type HourCountResponse struct {
	Time  string `json:"time"`
	Start string `json:"start"`
	Count int    `json:"count"`
}

type StatsResponse struct {
	TotalLogs           int                  `json:"totalLogs"`
	MethodDistribution  []NamedCountResponse `json:"methodDistribution"`
	StatusDistribution  []NamedCountResponse `json:"statusDistribution"`
	ServiceDistribution []NamedCountResponse `json:"serviceDistribution"`
	TimeDistribution    []HourCountResponse  `json:"timeDistribution"`
	SuccessRate         int                  `json:"successRate"`
	ErrorRate           int                  `json:"errorRate"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func (r SendLogRequest) ToDomain() *domain.LogInput {
	in := &domain.LogInput{
		Service:      r.Service,
		Method:       r.Method,
		Path:         r.Path,
		Status:       r.Status,
		Duration:     r.Duration,
		RequestBody:  r.RequestBody,
		ResponseBody: r.ResponseBody,
	}
	if r.Error != nil {
		in.Error = *r.Error
	}
	return in
}

func NewLogResponse(v domain.LogView) LogResponse {
	return LogResponse{
		ID:           v.ID,
		Service:      v.Service,
		Method:       v.Method,
		Path:         v.Path,
		Status:       v.Status,
		Duration:     v.Duration,
		Error:        v.Error,
		RequestBody:  nullIfEmpty(v.RequestBody),
		ResponseBody: nullIfEmpty(v.ResponseBody),
		Timestamp:    formatTimestamp(v.CreatedAt),
	}
}

func nullIfEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

func NewGetLogsResponse(page domain.LogPage) GetLogsResponse {
	logs := make([]LogResponse, 0, len(page.Logs))
	for _, v := range page.Logs {
		logs = append(logs, NewLogResponse(v))
	}

	return GetLogsResponse{
		Logs: logs,
		Pagination: PaginationResponse{
			Total: page.Pagination.Total,
			Page:  page.Pagination.Page,
			Limit: page.Pagination.Limit,
			Pages: page.Pagination.Pages,
		},
	}
}

func NewLatestResponse(latest []domain.LogSummary) []LatestLogResponse {
	resp := make([]LatestLogResponse, 0, len(latest))
	for _, l := range latest {
		resp = append(resp, LatestLogResponse{
			ID:        l.ID,
			Service:   l.Service,
			Method:    l.Method,
			Path:      l.Path,
			Status:    l.Status,
			Duration:  l.Duration,
			Timestamp: formatTimestamp(l.CreatedAt),
		})
	}
	return resp
}

func namedCountsResponse(counts []domain.NamedCount) []NamedCountResponse {
	resp := make([]NamedCountResponse, 0, len(counts))
	for _, c := range counts {
		resp = append(resp, NamedCountResponse{Name: c.Name, Value: c.Value})
	}
	return resp
}

func NewStatsResponse(stats domain.Stats) StatsResponse {
	hours := make([]HourCountResponse, 0, len(stats.TimeDistribution))
	for _, h := range stats.TimeDistribution {
		hours = append(hours, HourCountResponse{
			Time:  h.Label,
			Start: h.Start.Format(time.RFC3339),
			Count: h.Count,
		})
	}

	return StatsResponse{
		TotalLogs:           stats.TotalLogs,
		MethodDistribution:  namedCountsResponse(stats.MethodDistribution),
		StatusDistribution:  namedCountsResponse(stats.StatusDistribution),
		ServiceDistribution: namedCountsResponse(stats.ServiceDistribution),
		TimeDistribution:    hours,
		SuccessRate:         stats.SuccessRate,
		ErrorRate:           stats.ErrorRate,
	}
}
