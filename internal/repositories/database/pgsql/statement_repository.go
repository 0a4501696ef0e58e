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

const statementColumns = `statement_id, statement_date, dimension, banca_id, ventana_id, vendedor_id,
	ticket_count, total_sales, total_payouts, listero_commission, vendedor_commission, balance,
	total_paid, total_collected, remaining_balance, is_settled, can_edit, closed_at, closed_by,
	adj_ticket_count, adj_total_sales, adj_total_payouts, adj_listero_commission, adj_vendedor_commission,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxStatementRepository struct {
	BaseRepository
}

func newPgxStatementRepository(pool *pgxpool.Pool) *PgxStatementRepository {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

func (r *PgxStatementRepository) one(ctx context.Context, tx pgx.Tx, what, id, query string, args ...any) (*domain.AccountStatement, error) {
	rows, err := r.q(tx).Query(ctx, query, args...)
	m, err := collectOne[models.AccountStatement](rows, err, what, id)
	if err != nil {
		return nil, err
	}
	st := mapping.ToDomainStatement(*m)
	return &st, nil
}

func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, tx pgx.Tx, statementID string) (*domain.AccountStatement, error) {
	return r.one(ctx, tx, "statement", statementID,
		`SELECT `+statementColumns+` FROM account_statements WHERE statement_id = $1`, statementID)
}

func (r *PgxStatementRepository) FindStatementForUpdate(ctx context.Context, tx pgx.Tx, statementID string) (*domain.AccountStatement, error) {
	return r.one(ctx, tx, "statement", statementID,
		`SELECT `+statementColumns+` FROM account_statements WHERE statement_id = $1 FOR UPDATE`, statementID)
}

// FindStatement matches the key exactly; NULL ids only match NULL.
func (r *PgxStatementRepository) FindStatement(ctx context.Context, tx pgx.Tx, date time.Time, key domain.DimensionKey) (*domain.AccountStatement, error) {
	return r.one(ctx, tx, "statement for", date.Format(time.DateOnly), `
		SELECT `+statementColumns+` FROM account_statements
		WHERE statement_date = $1 AND dimension = $2
		  AND banca_id IS NOT DISTINCT FROM $3
		  AND ventana_id IS NOT DISTINCT FROM $4
		  AND vendedor_id IS NOT DISTINCT FROM $5`,
		date, string(key.Dimension()), key.BancaID, key.VentanaID, key.VendedorID)
}

func (r *PgxStatementRepository) FindLegacyVendedorStatement(ctx context.Context, tx pgx.Tx, date time.Time, vendedorID string) (*domain.AccountStatement, error) {
	return r.one(ctx, tx, "legacy statement of", vendedorID, `
		SELECT `+statementColumns+` FROM account_statements
		WHERE statement_date = $1 AND dimension = 'VENDEDOR' AND vendedor_id = $2 AND ventana_id IS NULL
		ORDER BY created_at
		LIMIT 1`, date, vendedorID)
}

func (r *PgxStatementRepository) ListStatementsByDate(ctx context.Context, date time.Time, dimension domain.StatementDimension, bancaID, ventanaID *string) ([]domain.AccountStatement, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+statementColumns+` FROM account_statements
		WHERE statement_date = $1 AND dimension = $2
		  AND ($3::text IS NULL OR banca_id = $3)
		  AND ($4::text IS NULL OR ventana_id = $4)
		ORDER BY created_at, statement_id`, date, string(dimension), bancaID, ventanaID)
	ms, err := collectAll[models.AccountStatement](rows, err, "statements")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainStatementSlice(ms), nil
}

// InsertStatementIfAbsent relies on the NULLS NOT DISTINCT unique index over
// (statement_date, dimension, banca_id, ventana_id, vendedor_id).
func (r *PgxStatementRepository) InsertStatementIfAbsent(ctx context.Context, tx pgx.Tx, statement domain.AccountStatement) (bool, error) {
	m := mapping.ToModelStatement(statement)
	tag, err := r.q(tx).Exec(ctx, `
		INSERT INTO account_statements (`+statementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26, $27, $28)
		ON CONFLICT DO NOTHING`,
		m.StatementID, m.StatementDate, m.Dimension, m.BancaID, m.VentanaID, m.VendedorID,
		m.TicketCount, m.TotalSales, m.TotalPayouts, m.ListeroCommission, m.VendedorCommission, m.Balance,
		m.TotalPaid, m.TotalCollected, m.RemainingBalance, m.IsSettled, m.CanEdit, m.ClosedAt, m.ClosedBy,
		m.AdjTicketCount, m.AdjTotalSales, m.AdjTotalPayouts, m.AdjListeroCommission, m.AdjVendedorCommission,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert statement %s: %w", m.StatementID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// BackfillStatementLinkage runs under a savepoint so a collision with an
// already consolidated row leaves the outer transaction usable.
func (r *PgxStatementRepository) BackfillStatementLinkage(ctx context.Context, tx pgx.Tx, statementID string, ventanaID, bancaID *string, userID string, now time.Time) error {
	const query = `
		UPDATE account_statements
		SET ventana_id = $2, banca_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE statement_id = $1`

	if tx == nil {
		_, err := r.Pool.Exec(ctx, query, statementID, ventanaID, bancaID, now, userID)
		return r.backfillErr(statementID, err)
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to open savepoint: %w", err)
	}
	if _, err := sp.Exec(ctx, query, statementID, ventanaID, bancaID, now, userID); err != nil {
		_ = sp.Rollback(ctx)
		return r.backfillErr(statementID, err)
	}
	return sp.Commit(ctx)
}

func (r *PgxStatementRepository) backfillErr(statementID string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return apperrors.Newf(apperrors.ErrDuplicate, "statement %s collides with a linked statement", statementID)
	}
	return fmt.Errorf("failed to backfill statement %s: %w", statementID, err)
}

// UpdateStatement persists every mutable field.
func (r *PgxStatementRepository) UpdateStatement(ctx context.Context, tx pgx.Tx, statement domain.AccountStatement) error {
	m := mapping.ToModelStatement(statement)
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE account_statements SET
			ticket_count = $2, total_sales = $3, total_payouts = $4, listero_commission = $5,
			vendedor_commission = $6, balance = $7, total_paid = $8, total_collected = $9,
			remaining_balance = $10, is_settled = $11, can_edit = $12, closed_at = $13, closed_by = $14,
			last_updated_at = $15, last_updated_by = $16,
			adj_ticket_count = $17, adj_total_sales = $18, adj_total_payouts = $19,
			adj_listero_commission = $20, adj_vendedor_commission = $21
		WHERE statement_id = $1`,
		m.StatementID, m.TicketCount, m.TotalSales, m.TotalPayouts, m.ListeroCommission,
		m.VendedorCommission, m.Balance, m.TotalPaid, m.TotalCollected,
		m.RemainingBalance, m.IsSettled, m.CanEdit, m.ClosedAt, m.ClosedBy,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.AdjTicketCount, m.AdjTotalSales, m.AdjTotalPayouts, m.AdjListeroCommission, m.AdjVendedorCommission,
	)
	if err != nil {
		return fmt.Errorf("failed to update statement %s: %w", m.StatementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.ErrNotFound, "statement %s", m.StatementID)
	}
	return nil
}

func (r *PgxStatementRepository) DeleteStatement(ctx context.Context, tx pgx.Tx, statementID string) error {
	tag, err := r.q(tx).Exec(ctx, `DELETE FROM account_statements WHERE statement_id = $1`, statementID)
	if err != nil {
		return fmt.Errorf("failed to delete statement %s: %w", statementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.ErrNotFound, "statement %s", statementID)
	}
	return nil
}
