package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new read committed transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// BeginWithTimeout starts a transaction whose statements may run up to timeout
	BeginWithTimeout(ctx context.Context, timeout time.Duration) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}
