package errorsUtils_test

import (
	"errors"
	"fmt"
	"testing"

	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapPathErr(t *testing.T) {
	base := errors.New("boom")

	wrapped := errorsUtils.WrapPathErr(base)

	assert.ErrorIs(t, wrapped, base)
	assert.Contains(t, wrapped.Error(), "TestWrapPathErr")
	assert.Contains(t, wrapped.Error(), "boom")
	assert.Nil(t, errorsUtils.WrapPathErr(nil))
}

func TestPgCodes(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"check violation", &pgconn.PgError{Code: "23514"}, errorsUtils.IsCheckViolation, true},
		{"wrapped not null", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23502"}), errorsUtils.IsNotNullViolation, true},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, errorsUtils.IsUndefinedTable, true},
		{"other code", &pgconn.PgError{Code: "23505"}, errorsUtils.IsCheckViolation, false},
		{"plain error", errors.New("x"), errorsUtils.IsNotNullViolation, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.check(tc.err))
		})
	}
}
