package httpv1

import (
	"net/http"

	logginghelper "github.com/Egor213/CallTrack/internal/controller/common/logging"
	"github.com/Egor213/CallTrack/internal/controller/validators"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/service"
	"github.com/labstack/echo/v4"
)

const transport = "http"

// Clients only ever see these messages; the cause goes to the server log.
const (
	msgCreateFailed = "Failed to create log entry"
	msgFetchFailed  = "Failed to fetch logs"
	msgLatestFailed = "Failed to fetch latest logs"
	msgStatsFailed  = "Failed to fetch log statistics"
)

type LogController struct {
	logService   service.Log
	statsService service.Stats
	counters     *metrics.Counters
}

func NewLogController(ls service.Log, ss service.Stats, cnt *metrics.Counters) *LogController {
	return &LogController{
		logService:   ls,
		statsService: ss,
		counters:     cnt,
	}
}

func (c *LogController) fail(ctx echo.Context, operation, msg string, err error) error {
	logginghelper.LogError(operation, err)
	c.counters.Requests.Inc(transport, operation, "failed")
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
}

func (c *LogController) SendLog(ctx echo.Context) error {
	const op = "send_log"

	var req SendLogRequest
	if err := ctx.Bind(&req); err != nil {
		return c.fail(ctx, op, msgCreateFailed, err)
	}

	logEntry := req.ToDomain()
	if err := validators.Validate(logEntry); err != nil {
		return c.fail(ctx, op, msgCreateFailed, err)
	}

	logginghelper.LogReceived(transport, logEntry)

	id, err := c.logService.SendLog(ctx.Request().Context(), logEntry)
	if err != nil {
		return c.fail(ctx, op, msgCreateFailed, err)
	}

	logginghelper.LogSaved(logEntry, id)
	c.counters.Requests.Inc(transport, op, "ok")

	return ctx.JSON(http.StatusOK, SendLogResponse{Success: true, ID: id})
}

func (c *LogController) GetLogs(ctx echo.Context) error {
	const op = "get_logs"

	q := domain.LogQuery{
		Status:  ctx.QueryParam("status"),
		Service: ctx.QueryParam("service"),
		Method:  ctx.QueryParam("method"),
	}

	err := echo.QueryParamsBinder(ctx).
		Int("limit", &q.Limit).
		Int("page", &q.Page).
		BindError()
	if err != nil {
		return c.fail(ctx, op, msgFetchFailed, err)
	}

	if err := validators.ValidateQuery(q); err != nil {
		return c.fail(ctx, op, msgFetchFailed, err)
	}

	page, err := c.logService.GetLogs(ctx.Request().Context(), q)
	if err != nil {
		return c.fail(ctx, op, msgFetchFailed, err)
	}

	c.counters.Requests.Inc(transport, op, "ok")
	return ctx.JSON(http.StatusOK, NewGetLogsResponse(page))
}

func (c *LogController) GetLatest(ctx echo.Context) error {
	const op = "get_latest"

	latest, err := c.logService.GetLatest(ctx.Request().Context())
	if err != nil {
		return c.fail(ctx, op, msgLatestFailed, err)
	}

	c.counters.Requests.Inc(transport, op, "ok")
	return ctx.JSON(http.StatusOK, NewLatestResponse(latest))
}

func (c *LogController) GetStats(ctx echo.Context) error {
	const op = "get_stats"

	stats, err := c.statsService.GetStats(ctx.Request().Context())
	if err != nil {
		return c.fail(ctx, op, msgStatsFailed, err)
	}

	c.counters.Requests.Inc(transport, op, "ok")
	return ctx.JSON(http.StatusOK, NewStatsResponse(stats))
}
