package client

import (
	stdjson "encoding/json"
	"time"
)

type LogInput struct {
	Service      string             `json:"service"`
	Method       string             `json:"method"`
	Path         string             `json:"path"`
	Status       int                `json:"status"`
	Duration     int                `json:"duration"`
	RequestBody  stdjson.RawMessage `json:"requestBody,omitempty"`
	ResponseBody stdjson.RawMessage `json:"responseBody,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type LogEntry struct {
	ID           int64              `json:"id"`
	Service      string             `json:"service"`
	Method       string             `json:"method"`
	Path         string             `json:"path"`
	Status       int                `json:"status"`
	Duration     int                `json:"duration"`
	Error        *string            `json:"error"`
	RequestBody  stdjson.RawMessage `json:"requestBody"`
	ResponseBody stdjson.RawMessage `json:"responseBody"`
	Timestamp    time.Time          `json:"timestamp"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type LogsPage struct {
	Logs       []LogEntry `json:"logs"`
	Pagination Pagination `json:"pagination"`
}

type LogSummary struct {
	ID        int64     `json:"id"`
	Service   string    `json:"service"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Duration  int       `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type HourCount struct {
	Time  string    `json:"time"`
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

type Stats struct {
	TotalLogs           int          `json:"totalLogs"`
	MethodDistribution  []NamedCount `json:"methodDistribution"`
	StatusDistribution  []NamedCount `json:"statusDistribution"`
	ServiceDistribution []NamedCount `json:"serviceDistribution"`
	TimeDistribution    []HourCount  `json:"timeDistribution"`
	SuccessRate         int          `json:"successRate"`
	ErrorRate           int          `json:"errorRate"`
}

// Query selects a page of records. Zero values are left to the server defaults.
type Query struct {
	Status  string
	Service string
	Method  string
	Limit   int
	Page    int
}
