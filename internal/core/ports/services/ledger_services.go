package services

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations over accounts and entries
type LedgerReaderSvc interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// FindEntryByRequestID lets callers detect an already applied external event.
	FindEntryByRequestID(ctx context.Context, requestID string) (*domain.LedgerEntry, error)

	// ListEntries lists entries newest first.
	ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriterSvc defines the append-only mutations
type LedgerWriterSvc interface {
	GetOrCreateAccount(ctx context.Context, ownerType domain.OwnerType, ownerID, currencyCode string, actor domain.Actor) (*domain.Account, error)

	// AddLedgerEntry appends one entry and moves the cached balance in the same transaction.
	AddLedgerEntry(ctx context.Context, accountID string, entry domain.NewLedgerEntry) (*domain.PostedEntry, error)

	// AppendInTx is AddLedgerEntry inside a caller-owned transaction.
	AppendInTx(ctx context.Context, tx pgx.Tx, accountID string, entry domain.NewLedgerEntry) (*domain.PostedEntry, error)

	ReverseEntry(ctx context.Context, entryID string, actor domain.Actor, reason string, requestID *string) (*domain.PostedEntry, error)
	PostTransfer(ctx context.Context, in domain.TransferInput, actor domain.Actor) (*domain.Transfer, error)
}

// LedgerAuditSvc defines the independent recomputation paths
type LedgerAuditSvc interface {
	CalculateBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	GetBalanceSummary(ctx context.Context, accountID string) (*domain.BalanceSummary, error)

	// ReconcileAccount returns cached minus recomputed balance. It never writes.
	ReconcileAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerAuditSvc
}

// DepositSvcFacade posts bank deposits to banca accounts
type DepositSvcFacade interface {
	CreateDeposit(ctx context.Context, in domain.NewBankDeposit, actor domain.Actor) (*domain.DepositResult, error)
	GetDeposit(ctx context.Context, depositID string) (*domain.BankDeposit, error)
}

// SnapshotSvcFacade derives daily balance snapshots from the ledger
type SnapshotSvcFacade interface {
	TakeDailySnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error)
	GetSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error)
}
