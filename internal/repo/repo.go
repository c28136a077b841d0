package repo

import (
	"context"
	"time"

	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/repo/pgdb"
	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	"github.com/Egor213/CallTrack/pkg/postgres"
)

type Log interface {
	CreateLog(ctx context.Context, rec *domain.LogRecord) (int64, error)
	GetLogs(ctx context.Context, filter repotypes.LogFilter, limit, offset uint64) ([]domain.LogRecord, error)
	CountLogs(ctx context.Context, filter repotypes.LogFilter) (int64, error)
	GetLatest(ctx context.Context, limit uint64) ([]domain.LogSummary, error)
}

type Stats interface {
	CountByMethod(ctx context.Context) ([]repotypes.GroupCount, error)
	CountByService(ctx context.Context) ([]repotypes.GroupCount, error)
	CountByStatus(ctx context.Context) ([]repotypes.StatusCount, error)
	CountByHour(ctx context.Context, from time.Time, hours int) (map[int]int64, error)
}

type Repositories struct {
	Log
	Stats
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log:   pgdb.NewLogRepo(pg),
		Stats: pgdb.NewStatsRepo(pg),
	}
}
