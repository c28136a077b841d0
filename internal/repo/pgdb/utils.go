package pgdb

import (
	"fmt"
	"time"

	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/repo/repoerrs"
	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	sq "github.com/Masterminds/squirrel"
)

const logsTable = "api_logs"

var (
	recordColumns  = []string{"id", "service", "method", "path", "status", "duration", "request_body", "response_body", "error", "created_at"}
	summaryColumns = []string{"id", "service", "method", "path", "status", "duration", "created_at"}
)

// BuildLogQueryFilters turns filter into AND-ed conditions. Unknown status
// filter values are ignored.
func BuildLogQueryFilters(filter repotypes.LogFilter) []sq.Sqlizer {
	conds := []sq.Sqlizer{}

	switch filter.Status {
	case domain.StatusFilterError:
		conds = append(conds, sq.GtOrEq{"status": domain.ErrorStatusThreshold})
	case domain.StatusFilterSuccess:
		conds = append(conds, sq.Lt{"status": domain.ErrorStatusThreshold})
	}

	if filter.Service != "" {
		conds = append(conds, sq.Eq{"service": filter.Service})
	}

	if filter.Method != "" {
		conds = append(conds, sq.Eq{"method": filter.Method})
	}

	return conds
}

func applyFilters(query sq.SelectBuilder, filter repotypes.LogFilter) sq.SelectBuilder {
	if conds := BuildLogQueryFilters(filter); len(conds) > 0 {
		query = query.Where(sq.And(conds))
	}
	return query
}

// BuildHourBucketQuery counts rows per whole hour since from, for hours
// buckets. Bucket i covers [from+i h, from+(i+1) h).
func BuildHourBucketQuery(b sq.StatementBuilderType, from time.Time, hours int) sq.SelectBuilder {
	to := from.Add(time.Duration(hours) * time.Hour)

	return b.
		Select().
		Column(sq.Expr("FLOOR(EXTRACT(EPOCH FROM (created_at - ?::timestamptz)) / 3600)::int AS bucket", from)).
		Column("COUNT(*) AS count_logs").
		From(logsTable).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": to}).
		GroupBy("bucket")
}

func wrapStoreErr(err error) error {
	switch {
	case errorsUtils.IsCheckViolation(err), errorsUtils.IsNotNullViolation(err):
		return fmt.Errorf("%w: %w", repoerrs.ErrInvalidRecord, err)
	case errorsUtils.IsUndefinedTable(err):
		return fmt.Errorf("%w: %w", repoerrs.ErrNoTable, err)
	}
	return err
}
