package domain

import (
	"encoding/json"
	"time"
)

// LogInput is one API call as reported by a caller service.
type LogInput struct {
	Service      string
	Method       string
	Path         string
	Status       int
	Duration     int
	RequestBody  json.RawMessage
	ResponseBody json.RawMessage
	Error        string
}

// LogRecord is a persisted call. Bodies are kept as serialized JSON text.
type LogRecord struct {
	ID           int64     `db:"id"`
	Service      string    `db:"service"`
	Method       string    `db:"method"`
	Path         string    `db:"path"`
	Status       int       `db:"status"`
	Duration     int       `db:"duration"`
	RequestBody  *string   `db:"request_body"`
	ResponseBody *string   `db:"response_body"`
	Error        *string   `db:"error"`
	CreatedAt    time.Time `db:"created_at"`
}

// LogView is a LogRecord with its bodies decoded back to JSON.
type LogView struct {
	ID           int64
	Service      string
	Method       string
	Path         string
	Status       int
	Duration     int
	RequestBody  json.RawMessage
	ResponseBody json.RawMessage
	Error        *string
	CreatedAt    time.Time
}

// LogSummary is the body-less projection served for polling.
type LogSummary struct {
	ID        int64     `db:"id"`
	Service   string    `db:"service"`
	Method    string    `db:"method"`
	Path      string    `db:"path"`
	Status    int       `db:"status"`
	Duration  int       `db:"duration"`
	CreatedAt time.Time `db:"created_at"`
}

type LogQuery struct {
	Status  string
	Service string
	Method  string
	Limit   int
	Page    int
}

type Pagination struct {
	Total int
	Page  int
	Limit int
	Pages int
}

type LogPage struct {
	Logs       []LogView
	Pagination Pagination
}

// NewLogRecord serializes the bodies of in. Absent or null bodies become nil.
func NewLogRecord(in *LogInput) (*LogRecord, error) {
	reqBody, err := SerializeBody(in.RequestBody)
	if err != nil {
		return nil, err
	}
	respBody, err := SerializeBody(in.ResponseBody)
	if err != nil {
		return nil, err
	}

	var errMsg *string
	if in.Error != "" {
		errMsg = &in.Error
	}

	return &LogRecord{
		Service:      in.Service,
		Method:       in.Method,
		Path:         in.Path,
		Status:       in.Status,
		Duration:     in.Duration,
		RequestBody:  reqBody,
		ResponseBody: respBody,
		Error:        errMsg,
	}, nil
}

// View decodes the stored bodies. A stored body that is not valid JSON
// yields ErrMalformedBody.
func (r LogRecord) View() (LogView, error) {
	reqBody, err := ParseBody(r.RequestBody)
	if err != nil {
		return LogView{}, err
	}
	respBody, err := ParseBody(r.ResponseBody)
	if err != nil {
		return LogView{}, err
	}

	return LogView{
		ID:           r.ID,
		Service:      r.Service,
		Method:       r.Method,
		Path:         r.Path,
		Status:       r.Status,
		Duration:     r.Duration,
		RequestBody:  reqBody,
		ResponseBody: respBody,
		Error:        r.Error,
		CreatedAt:    r.CreatedAt,
	}, nil
}
