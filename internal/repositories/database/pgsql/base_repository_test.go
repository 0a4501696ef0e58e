package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundOr(t *testing.T) {
	err := notFoundOr(pgx.ErrNoRows, "statement %s not found", "st-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "st-1")

	serialization := &pgconn.PgError{Code: "40001"}
	err = notFoundOr(serialization, "failed to find statement %s", "st-1")
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.True(t, retry.IsTransient(err), "wrapped pg errors must stay retryable")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
	assert.False(t, isUniqueViolation(nil))
}
