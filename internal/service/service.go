package service

import (
	"context"
	"time"

	"github.com/Egor213/CallTrack/internal/broker"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/repo"
)

type Log interface {
	SendLog(ctx context.Context, in *domain.LogInput) (int64, error)
	GetLogs(ctx context.Context, q domain.LogQuery) (domain.LogPage, error)
	GetLatest(ctx context.Context) ([]domain.LogSummary, error)
}

type Stats interface {
	GetStats(ctx context.Context) (domain.Stats, error)
}

// TxManager runs fn inside a transaction carried by ctx.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Services struct {
	Log
	Stats
}

type ServicesDependencies struct {
	Repos    *repo.Repositories
	Counters *metrics.Counters
	// BrokerProducer may be nil, publication is then skipped.
	BrokerProducer broker.Producer
	// TxManager gives multi-query reads one snapshot.
	TxManager TxManager
	Location  *time.Location
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Log:   NewLogService(deps.Repos.Log, deps.TxManager, deps.Counters, deps.BrokerProducer),
		Stats: NewStatsService(deps.Repos.Log, deps.Repos.Stats, deps.TxManager, deps.Location),
	}
}
