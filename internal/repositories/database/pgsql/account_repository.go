package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	"github.com/SscSPs/banca_settlement/internal/models"
	"github.com/SscSPs/banca_settlement/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, owner_type, owner_id, currency_code, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for ledger accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM ledger_accounts WHERE account_id = $1`, accountID)
	m, err := collectOne[models.Account](rows, err, "account", accountID)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountByOwner retrieves the account of one owner.
func (r *PgxAccountRepository) FindAccountByOwner(ctx context.Context, ownerType domain.OwnerType, ownerID string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM ledger_accounts WHERE owner_type = $1 AND owner_id = $2`, ownerType, ownerID)
	m, err := collectOne[models.Account](rows, err, "account of", ownerID)
	if err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// InsertAccountIfAbsent relies on the (owner_type, owner_id) unique index so
// concurrent creators converge on one row.
func (r *PgxAccountRepository) InsertAccountIfAbsent(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO ledger_accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_type, owner_id) DO NOTHING`,
		m.AccountID, m.OwnerType, m.OwnerID, m.CurrencyCode, m.IsActive, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account for %s %s: %w", m.OwnerType, m.OwnerID, err)
	}
	return nil
}

// FindAccountsByIDsForUpdate locks the accounts in account id order so two
// transfers touching the same pair never deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	rows, err := r.q(tx).Query(ctx, `
		SELECT `+accountColumns+` FROM ledger_accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE`, ids)
	ms, err := collectAll[models.Account](rows, err, "accounts for update")
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	for _, id := range ids {
		if _, ok := accounts[id]; !ok {
			return nil, apperrors.Newf(apperrors.ErrNotFound, "account %s", id)
		}
	}
	return accounts, nil
}

// UpdateAccountBalanceInTx adds delta to the cached balance and returns the new balance.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q(tx).QueryRow(ctx, `
		UPDATE ledger_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1
		RETURNING balance`, accountID, delta, now, userID).Scan(&balance)
	if err != nil {
		return decimal.Zero, notFoundOr(err, "account %s", accountID)
	}
	return balance, nil
}
