package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	reportTimeout = 5 * time.Second
	// maxCapturedBody bounds how much of a request body the middleware keeps.
	maxCapturedBody = 64 << 10
)

// Sender delivers one call record, usually *Client.
type Sender interface {
	SendLog(ctx context.Context, in LogInput) (int64, error)
}

// Recorder reports calls made on behalf of one service.
type Recorder struct {
	service string
	sender  Sender
	now     func() time.Time
}

func NewRecorder(service string, sender Sender) *Recorder {
	return &Recorder{
		service: service,
		sender:  sender,
		now:     time.Now,
	}
}

// Track runs fn, reports how it went and returns its result untouched.
// Failed calls get the status of errors exposing StatusCode() int, else 500.
func Track[T any](ctx context.Context, r *Recorder, method, path string, reqBody any, fn func(ctx context.Context) (T, error)) (T, error) {
	start := r.now()
	res, err := fn(ctx)
	duration := r.now().Sub(start)

	in := LogInput{
		Service:     r.service,
		Method:      method,
		Path:        path,
		Status:      http.StatusOK,
		Duration:    int(duration.Milliseconds()),
		RequestBody: r.marshal(reqBody),
	}

	if err != nil {
		in.Status = statusOf(err)
		in.Error = err.Error()
		in.ResponseBody = r.marshal(map[string]string{"error": err.Error()})
	} else {
		in.ResponseBody = r.marshalResult(res)
	}

	r.report(ctx, in)

	return res, err
}

func statusOf(err error) int {
	var withStatus interface{ StatusCode() int }
	if errors.As(err, &withStatus) {
		return withStatus.StatusCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}

func (r *Recorder) marshal(v any) []byte {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Warn("Call body is not JSON encodable, dropping it")
		return nil
	}
	return data
}

// marshalResult encodes a successful result. The server reads a top level
// JSON string as encoded JSON, so plain text results are stored as
// {"body": "..."} instead.
func (r *Recorder) marshalResult(v any) []byte {
	data := r.marshal(v)
	if len(data) == 0 || data[0] != '"' {
		return data
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return nil
	}
	return r.marshal(map[string]string{"body": text})
}

func (r *Recorder) report(ctx context.Context, in LogInput) {
	entry := log.WithFields(log.Fields{
		"service":  in.Service,
		"method":   in.Method,
		"path":     in.Path,
		"status":   in.Status,
		"duration": in.Duration,
	})
	if in.Status >= http.StatusBadRequest {
		entry.WithField("error", in.Error).Error("API call failed")
	} else {
		entry.Info("API call")
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
	defer cancel()

	if _, err := r.sender.SendLog(ctx, in); err != nil {
		log.WithError(err).Error("Failed to store API call record")
	}
}

// Middleware reports every request handled by an echo server.
func (r *Recorder) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			reqBody := captureBody(req)

			start := r.now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			in := LogInput{
				Service:     r.service,
				Method:      req.Method,
				Path:        req.URL.Path,
				Status:      c.Response().Status,
				Duration:    int(r.now().Sub(start).Milliseconds()),
				RequestBody: reqBody,
			}
			if err != nil {
				in.Error = err.Error()
			}

			r.report(req.Context(), in)

			return err
		}
	}
}

// captureBody keeps JSON request bodies and puts them back for the handler.
func captureBody(req *http.Request) []byte {
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, maxCapturedBody+1))
	if err != nil {
		return nil
	}
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), req.Body))

	if len(data) > maxCapturedBody || !json.Valid(data) {
		return nil
	}
	return data
}
