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
	"github.com/SscSPs/banca_settlement/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, account_id, entry_type, value_signed, reference_type, reference_id,
	entry_date, description, request_id, reversal_of_entry_id, balance_after, created_at, created_by`

type PgxLedgerEntryRepository struct {
	BaseRepository
}

func newPgxLedgerEntryRepository(pool *pgxpool.Pool) *PgxLedgerEntryRepository {
	return &PgxLedgerEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*PgxLedgerEntryRepository)(nil)

func (r *PgxLedgerEntryRepository) findOne(ctx context.Context, tx pgx.Tx, where, arg string) (*domain.LedgerEntry, error) {
	rows, err := r.q(tx).Query(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE `+where+` = $1`, arg)
	m, err := collectOne[models.LedgerEntry](rows, err, "ledger entry", arg)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainLedgerEntry(*m)
	return &e, nil
}

func (r *PgxLedgerEntryRepository) FindEntryByID(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, tx, "entry_id", entryID)
}

func (r *PgxLedgerEntryRepository) FindEntryByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, tx, "request_id", requestID)
}

func (r *PgxLedgerEntryRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, nil, "reversal_of_entry_id", entryID)
}

// SumEntries re-sums the ledger independently of the cached balance.
func (r *PgxLedgerEntryRepository) SumEntries(ctx context.Context, accountID string) (portsrepo.LedgerTotals, error) {
	var t portsrepo.LedgerTotals
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(value_signed), 0),
		       COALESCE(SUM(value_signed) FILTER (WHERE value_signed > 0), 0),
		       COALESCE(-SUM(value_signed) FILTER (WHERE value_signed < 0), 0),
		       COUNT(*),
		       MAX(created_at)
		FROM ledger_entries WHERE account_id = $1`, accountID,
	).Scan(&t.Sum, &t.Credits, &t.Debits, &t.Count, &t.LastEntryAt)
	if err != nil {
		return t, fmt.Errorf("failed to sum entries of account %s: %w", accountID, err)
	}
	return t, nil
}

// SumEntriesBetween returns the opening sum before from and the movement in [from, to).
func (r *PgxLedgerEntryRepository) SumEntriesBetween(ctx context.Context, accountID string, from, to time.Time) (domain.DayMovement, error) {
	var mv domain.DayMovement
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(value_signed) FILTER (WHERE entry_date < $2), 0),
		       COALESCE(-SUM(value_signed) FILTER (WHERE entry_date >= $2 AND value_signed < 0), 0),
		       COALESCE(SUM(value_signed) FILTER (WHERE entry_date >= $2 AND value_signed > 0), 0),
		       COUNT(*) FILTER (WHERE entry_date >= $2)
		FROM ledger_entries
		WHERE account_id = $1 AND entry_date < $3`, accountID, from, to,
	).Scan(&mv.Opening, &mv.Debits, &mv.Credits, &mv.EntryCount)
	if err != nil {
		return mv, fmt.Errorf("failed to sum day movement of account %s: %w", accountID, err)
	}
	return mv, nil
}

// ListEntriesByAccount pages newest first using a (created_at, entry_id) keyset token.
func (r *PgxLedgerEntryRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := []any{accountID, limit + 1}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE account_id = $1`
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Newf(apperrors.ErrValidation, "%v", err)
		}
		query += ` AND (created_at, entry_id) < ($3, $4)`
		args = append(args, createdAt, id)
	}
	query += ` ORDER BY created_at DESC, entry_id DESC LIMIT $2`

	rows, err := r.Pool.Query(ctx, query, args...)
	ms, err := collectAll[models.LedgerEntry](rows, err, "ledger entries")
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.EntryID)
		next = &token
	}
	return mapping.ToDomainLedgerEntrySlice(ms), next, nil
}

// InsertEntryInTx inserts one entry. A request id or entry id collision maps to ErrDuplicate.
func (r *PgxLedgerEntryRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.EntryID, m.AccountID, m.EntryType, m.ValueSigned, m.ReferenceType, m.ReferenceID,
		m.EntryDate, m.Description, m.RequestID, m.ReversalOfEntryID, m.BalanceAfter, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.ErrDuplicate, "ledger entry %s", m.EntryID)
		}
		return fmt.Errorf("failed to insert ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}
