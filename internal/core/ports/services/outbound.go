package services

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
)

// AuditSink receives one record per state-changing operation.
// Implementations must not block the caller on failure.
type AuditSink interface {
	Record(ctx context.Context, rec domain.AuditRecord) error
}

// IdempotencyGuard holds a short-lived in-flight lock per idempotency key.
type IdempotencyGuard interface {
	// Acquire returns false when another request holds the key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
