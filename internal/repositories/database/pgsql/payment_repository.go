package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	"github.com/SscSPs/banca_settlement/internal/models"
	"github.com/SscSPs/banca_settlement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `payment_id, statement_id, statement_date, banca_id, ventana_id, vendedor_id,
	amount, payment_type, method, notes, is_final, idempotency_key, is_reversed, reversed_at,
	reversed_by, reversal_reason, payment_date, created_at, created_by`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) one(ctx context.Context, tx pgx.Tx, id, query string, args ...any) (*domain.AccountPayment, error) {
	rows, err := r.q(tx).Query(ctx, query, args...)
	m, err := collectOne[models.AccountPayment](rows, err, "payment", id)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.AccountPayment, error) {
	return r.one(ctx, nil, paymentID, `SELECT `+paymentColumns+` FROM account_payments WHERE payment_id = $1`, paymentID)
}

func (r *PgxPaymentRepository) FindPaymentForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.AccountPayment, error) {
	return r.one(ctx, tx, paymentID, `SELECT `+paymentColumns+` FROM account_payments WHERE payment_id = $1 FOR UPDATE`, paymentID)
}

func (r *PgxPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.AccountPayment, error) {
	return r.one(ctx, nil, key, `SELECT `+paymentColumns+` FROM account_payments WHERE idempotency_key = $1`, key)
}

func (r *PgxPaymentRepository) ListPaymentsByStatement(ctx context.Context, tx pgx.Tx, statementID string, includeReversed bool) ([]domain.AccountPayment, error) {
	rows, err := r.q(tx).Query(ctx, `
		SELECT `+paymentColumns+` FROM account_payments
		WHERE statement_id = $1 AND ($2 OR NOT is_reversed)
		ORDER BY created_at, payment_id`, statementID, includeReversed)
	ms, err := collectAll[models.AccountPayment](rows, err, "payments")
	if err != nil {
		return nil, err
	}
	out := make([]domain.AccountPayment, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainPayment(m)
	}
	return out, nil
}

func (r *PgxPaymentRepository) InsertPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.AccountPayment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO account_payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		m.PaymentID, m.StatementID, m.StatementDate, m.BancaID, m.VentanaID, m.VendedorID,
		m.Amount, m.Type, m.Method, m.Notes, m.IsFinal, m.IdempotencyKey, m.IsReversed, m.ReversedAt,
		m.ReversedBy, m.ReversalReason, m.PaymentDate, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.ErrDuplicate, "payment idempotency key")
		}
		return fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}
	return nil
}

func (r *PgxPaymentRepository) MarkPaymentReversedInTx(ctx context.Context, tx pgx.Tx, paymentID, userID, reason string, now time.Time) error {
	var reasonArg *string
	if reason != "" {
		reasonArg = &reason
	}
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE account_payments
		SET is_reversed = TRUE, reversed_at = $2, reversed_by = $3, reversal_reason = $4
		WHERE payment_id = $1 AND NOT is_reversed`, paymentID, now, userID, reasonArg)
	if err != nil {
		return fmt.Errorf("failed to reverse payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.ErrInvalidState, "payment %s is missing or already reversed", paymentID)
	}
	return nil
}

func (r *PgxPaymentRepository) DeletePaymentsByStatementInTx(ctx context.Context, tx pgx.Tx, statementID string) (int, error) {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM account_payments WHERE statement_id = $1`, statementID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payments of statement %s: %w", statementID, err)
	}
	return int(tag.RowsAffected()), nil
}
