package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Methods taking a pgx.Tx accept nil to run against the pool.

// AccountReader defines read operations for ledger accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwner retrieves the account of one owner.
	FindAccountByOwner(ctx context.Context, ownerType domain.OwnerType, ownerID string) (*domain.Account, error)
}

// AccountWriter defines write operations for ledger accounts
type AccountWriter interface {
	// InsertAccountIfAbsent inserts the account unless the owner already has one.
	InsertAccountIfAbsent(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that support balance mutation
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate locks the accounts in account id order.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalanceInTx adds delta to the cached balance and returns the new balance.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// LedgerTotals is an independent re-sum of an account's entries.
type LedgerTotals struct {
	Sum         decimal.Decimal
	Credits     decimal.Decimal
	Debits      decimal.Decimal
	Count       int64
	LastEntryAt *time.Time
}

// LedgerEntryReader defines read operations for ledger entries
type LedgerEntryReader interface {
	FindEntryByID(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error)
	FindEntryByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (*domain.LedgerEntry, error)
	// FindReversalOf returns the entry reversing entryID, if any.
	FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	SumEntries(ctx context.Context, accountID string) (LedgerTotals, error)
	// SumEntriesBetween returns the opening sum before from and the movement in [from, to).
	SumEntriesBetween(ctx context.Context, accountID string, from, to time.Time) (domain.DayMovement, error)
	// ListEntriesByAccount lists newest first; nextToken is opaque.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerEntryWriter defines write operations for ledger entries
type LedgerEntryWriter interface {
	// InsertEntryInTx inserts one entry. Unique violations map to apperrors.ErrDuplicate.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error
}

// LedgerEntryRepositoryFacade combines all ledger-entry repository interfaces
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}

// DepositRepositoryFacade persists bank deposits
type DepositRepositoryFacade interface {
	InsertDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error
	FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error)
	FindDepositByRequestID(ctx context.Context, requestID string) (*domain.BankDeposit, error)
}

// SnapshotRepositoryFacade persists daily balance snapshots
type SnapshotRepositoryFacade interface {
	UpsertSnapshot(ctx context.Context, snapshot domain.DailyBalanceSnapshot) error
	FindSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error)
}
