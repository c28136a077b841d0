package pgdb

import (
	"context"

	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	"github.com/Egor213/CallTrack/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

func (r *LogRepo) CreateLog(ctx context.Context, rec *domain.LogRecord) (int64, error) {
	sql, args, err := r.Builder.
		Insert(logsTable).
		Columns("service", "method", "path", "status", "duration", "request_body", "response_body", "error").
		Values(rec.Service, rec.Method, rec.Path, rec.Status, rec.Duration, rec.RequestBody, rec.ResponseBody, rec.Error).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var id int64
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	return id, nil
}

func (r *LogRepo) GetLogs(ctx context.Context, filter repotypes.LogFilter, limit, offset uint64) ([]domain.LogRecord, error) {
	query := r.Builder.
		Select(recordColumns...).
		From(logsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset)
	query = applyFilters(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogRecord])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return logs, nil
}

func (r *LogRepo) CountLogs(ctx context.Context, filter repotypes.LogFilter) (int64, error) {
	query := applyFilters(r.Builder.Select("COUNT(*)").From(logsTable), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var total int64
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&total)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	return total, nil
}

func (r *LogRepo) GetLatest(ctx context.Context, limit uint64) ([]domain.LogSummary, error) {
	sql, args, err := r.Builder.
		Select(summaryColumns...).
		From(logsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(wrapStoreErr(err))
	}
	defer rows.Close()

	latest, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LogSummary])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return latest, nil
}
