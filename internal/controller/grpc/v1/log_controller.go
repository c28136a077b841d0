package grpcv1

import (
	"context"

	logginghelper "github.com/Egor213/CallTrack/internal/controller/common/logging"
	"github.com/Egor213/CallTrack/internal/controller/validators"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const transport = "grpc"

type LogController struct {
	logService service.Log
	counters   *metrics.Counters
}

func NewLogController(ls service.Log, cnt *metrics.Counters) *LogController {
	return &LogController{
		logService: ls,
		counters:   cnt,
	}
}

// fail hides the cause from the caller, the same way the HTTP API does.
func (c *LogController) fail(operation string, err error) error {
	logginghelper.LogError(operation, err)
	c.counters.Requests.Inc(transport, operation, "failed")
	return status.Error(codes.Internal, "Failed to create log entry")
}

func (r *SendLogRequest) ToDomain() *domain.LogInput {
	return &domain.LogInput{
		Service:      r.Service,
		Method:       r.Method,
		Path:         r.Path,
		Status:       r.Status,
		Duration:     r.Duration,
		RequestBody:  r.RequestBody,
		ResponseBody: r.ResponseBody,
		Error:        r.Error,
	}
}

func (c *LogController) SendLog(ctx context.Context, req *SendLogRequest) (*SendLogResponse, error) {
	const op = "send_log"

	logEntry := req.ToDomain()

	c.counters.Requests.Inc(transport, op, "received")
	if err := validators.Validate(logEntry); err != nil {
		return nil, c.fail(op, err)
	}

	logginghelper.LogReceived(transport, logEntry)

	id, err := c.logService.SendLog(ctx, logEntry)
	if err != nil {
		return nil, c.fail(op, err)
	}

	logginghelper.LogSaved(logEntry, id)

	c.counters.Requests.Inc(transport, op, "ok")

	return &SendLogResponse{Success: true, ID: id}, nil
}
