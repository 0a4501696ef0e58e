package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/middleware"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Audit    portssvc.AuditSink
	Retry    retry.Policy
	Location *time.Location
	Clock    func() time.Time
}

// BaseOption configures the shared parts of a service.
type BaseOption func(*BaseService)

// WithAuditSink sets the audit sink.
func WithAuditSink(sink portssvc.AuditSink) BaseOption {
	return func(s *BaseService) { s.Audit = sink }
}

// WithRetryPolicy sets the transient-error retry policy.
func WithRetryPolicy(p retry.Policy) BaseOption {
	return func(s *BaseService) { s.Retry = p }
}

// WithLocation sets the business timezone.
func WithLocation(loc *time.Location) BaseOption {
	return func(s *BaseService) { s.Location = loc }
}

// WithClock overrides time.Now, used by tests.
func WithClock(clock func() time.Time) BaseOption {
	return func(s *BaseService) { s.Clock = clock }
}

func newBaseService(opts ...BaseOption) BaseService {
	b := BaseService{Retry: retry.DefaultPolicy, Location: time.UTC, Clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

func (s *BaseService) now() time.Time {
	return s.Clock().UTC()
}

func (s *BaseService) today() time.Time {
	return domain.BusinessDate(s.Clock(), s.Location)
}

// policyFor disables retries for calls that carry no idempotency key, since
// an ambiguous commit could otherwise be applied twice.
func (s *BaseService) policyFor(idempotent bool) retry.Policy {
	p := s.Retry
	if !idempotent {
		p.MaxAttempts = 1
	}
	return p
}

// emitAudit records the action without ever failing the caller.
func (s *BaseService) emitAudit(ctx context.Context, actor domain.Actor, action, targetType, targetID string, details map[string]any) {
	if s.Audit == nil {
		return
	}
	rec := domain.AuditRecord{
		UserID:     actor.UserID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		RequestID:  middleware.GetRequestIDFromCtx(ctx),
		OccurredAt: s.now(),
	}
	if err := s.Audit.Record(ctx, rec); err != nil {
		s.GetLogger(ctx).Warn("Failed to record audit entry",
			slog.String("layer", "service"),
			slog.String("action", action),
			slog.String("target_id", targetID),
			slog.String("error", err.Error()))
	}
}

// inTx runs fn in one transaction, committing only when fn succeeds.
func inTx[T any](ctx context.Context, txm portsrepo.TransactionManager, fn func(tx pgx.Tx) (T, error)) (T, error) {
	return runTx(ctx, txm, txm.Begin, fn)
}

// inLongTx is inTx for settlement work that needs an extended statement timeout.
func inLongTx[T any](ctx context.Context, txm portsrepo.TransactionManager, timeout time.Duration, fn func(tx pgx.Tx) (T, error)) (T, error) {
	begin := func(ctx context.Context) (pgx.Tx, error) {
		return txm.BeginWithTimeout(ctx, timeout)
	}
	return runTx(ctx, txm, begin, fn)
}

func runTx[T any](ctx context.Context, txm portsrepo.TransactionManager, begin func(context.Context) (pgx.Tx, error), fn func(tx pgx.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := begin(ctx)
	if err != nil {
		return zero, err
	}
	defer txm.Rollback(ctx, tx) // no-op after commit

	out, err := fn(tx)
	if err != nil {
		return zero, err
	}
	if err := txm.Commit(ctx, tx); err != nil {
		return zero, err
	}
	return out, nil
}

func requireAdmin(actor domain.Actor, what string) error {
	if !actor.IsAdmin() {
		return apperrors.Newf(apperrors.ErrForbidden, "%s requires the ADMIN role", what)
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
