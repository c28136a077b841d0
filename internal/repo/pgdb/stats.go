package pgdb

import (
	"context"
	"time"

	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	"github.com/Egor213/CallTrack/pkg/postgres"
)

type StatsRepo struct {
	*postgres.Postgres
}

func NewStatsRepo(pg *postgres.Postgres) *StatsRepo {
	return &StatsRepo{pg}
}

func (r *StatsRepo) CountByMethod(ctx context.Context) ([]repotypes.GroupCount, error) {
	return r.countGroupedBy(ctx, "method")
}

func (r *StatsRepo) CountByService(ctx context.Context) ([]repotypes.GroupCount, error) {
	return r.countGroupedBy(ctx, "service")
}

func (r *StatsRepo) countGroupedBy(ctx context.Context, column string) ([]repotypes.GroupCount, error) {
	sql, args, err := r.Builder.
		Select(column, "COUNT(*) AS count_logs").
		From(logsTable).
		GroupBy(column).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	defer rows.Close()

	var counts []repotypes.GroupCount
	for rows.Next() {
		var gc repotypes.GroupCount
		if err := rows.Scan(&gc.Name, &gc.Count); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		counts = append(counts, gc)
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return counts, nil
}

func (r *StatsRepo) CountByStatus(ctx context.Context) ([]repotypes.StatusCount, error) {
	sql, args, err := r.Builder.
		Select("status", "COUNT(*) AS count_logs").
		From(logsTable).
		GroupBy("status").
		OrderBy("status").
		ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	defer rows.Close()

	var counts []repotypes.StatusCount
	for rows.Next() {
		var sc repotypes.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		counts = append(counts, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return counts, nil
}

// CountByHour returns row counts keyed by hour offset from from. Hours
// without rows are absent from the map.
func (r *StatsRepo) CountByHour(ctx context.Context, from time.Time, hours int) (map[int]int64, error) {
	sql, args, err := BuildHourBucketQuery(r.Builder, from, hours).ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	defer rows.Close()

	counts := make(map[int]int64, hours)
	for rows.Next() {
		var (
			bucket int
			count  int64
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		counts[bucket] = count
	}

	if err := rows.Err(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return counts, nil
}
