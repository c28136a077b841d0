package grpcv1

import (
	"context"
	"time"

	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/service"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func RegisterServices(services *service.Services, counters *metrics.Counters) func(s *grpc.Server) {
	return func(s *grpc.Server) {
		RegisterCallLogServer(s, NewLogController(services.Log, counters))
	}
}

// LoggingInterceptor writes one logrus line per unary call.
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := log.WithFields(log.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.WithField("error", err).Warn("gRPC request")
		} else {
			entry.Debug("gRPC request")
		}

		return resp, err
	}
}
