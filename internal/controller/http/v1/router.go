package httpv1

import (
	"net/http"
	"time"

	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters) {
	handler.HideBanner = true
	handler.HidePort = true

	handler.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}),
		RequestLogger(),
		middleware.Recover(),
	)

	handler.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	lc := NewLogController(services.Log, services.Stats, counters)

	logs := handler.Group("/logs")
	logs.POST("", lc.SendLog)
	logs.GET("", lc.GetLogs)
	logs.GET("/latest", lc.GetLatest)
	logs.GET("/stats", lc.GetStats)
}

// RequestLogger writes one access log line per request through logrus.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Round(time.Millisecond).Milliseconds(),
			})
			if v.Error != nil {
				entry.WithField("error", v.Error).Warn("HTTP request")
				return nil
			}
			entry.Debug("HTTP request")
			return nil
		},
	})
}
