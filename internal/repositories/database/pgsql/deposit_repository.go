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

const depositColumns = `deposit_id, banca_id, account_id, amount, reference, deposit_date,
	request_id, ledger_entry_id, created_at, created_by`

const snapshotColumns = `account_id, snapshot_date, opening_balance, total_debits, total_credits,
	closing_balance, entry_count, created_at`

type PgxDepositRepository struct {
	BaseRepository
}

func newPgxDepositRepository(pool *pgxpool.Pool) *PgxDepositRepository {
	return &PgxDepositRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DepositRepositoryFacade = (*PgxDepositRepository)(nil)

func (r *PgxDepositRepository) InsertDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error {
	m := mapping.ToModelBankDeposit(deposit)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO bank_deposits (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.DepositID, m.BancaID, m.AccountID, m.Amount, m.Reference, m.DepositDate,
		m.RequestID, m.LedgerEntryID, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.ErrDuplicate, "deposit request %s", m.RequestID)
		}
		return fmt.Errorf("failed to insert deposit %s: %w", m.DepositID, err)
	}
	return nil
}

func (r *PgxDepositRepository) findOne(ctx context.Context, column, arg string) (*domain.BankDeposit, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+depositColumns+` FROM bank_deposits WHERE `+column+` = $1`, arg)
	m, err := collectOne[models.BankDeposit](rows, err, "deposit", arg)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainBankDeposit(*m)
	return &d, nil
}

func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	return r.findOne(ctx, "deposit_id", depositID)
}

func (r *PgxDepositRepository) FindDepositByRequestID(ctx context.Context, requestID string) (*domain.BankDeposit, error) {
	return r.findOne(ctx, "request_id", requestID)
}

type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(pool *pgxpool.Pool) *PgxSnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

// UpsertSnapshot rewrites the row for (account, date); snapshots are derived data.
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.DailyBalanceSnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO daily_balance_snapshots (`+snapshotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_id, snapshot_date) DO UPDATE SET
			opening_balance = EXCLUDED.opening_balance,
			total_debits = EXCLUDED.total_debits,
			total_credits = EXCLUDED.total_credits,
			closing_balance = EXCLUDED.closing_balance,
			entry_count = EXCLUDED.entry_count,
			created_at = EXCLUDED.created_at`,
		m.AccountID, m.SnapshotDate, m.OpeningBalance, m.TotalDebits, m.TotalCredits,
		m.ClosingBalance, m.EntryCount, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot of account %s: %w", m.AccountID, err)
	}
	return nil
}

func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+snapshotColumns+` FROM daily_balance_snapshots
		WHERE account_id = $1 AND snapshot_date = $2`, accountID, date)
	m, err := collectOne[models.DailyBalanceSnapshot](rows, err, "snapshot of account", accountID)
	if err != nil {
		return nil, err
	}
	s := mapping.ToDomainSnapshot(*m)
	return &s, nil
}
