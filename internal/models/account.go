package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of ledger_accounts.
type Account struct {
	AccountID    string          `db:"account_id"`
	OwnerType    string          `db:"owner_type"`
	OwnerID      string          `db:"owner_id"`
	CurrencyCode string          `db:"currency_code"`
	IsActive     bool            `db:"is_active"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
}

// LedgerEntry is a row of ledger_entries. Entries are never updated.
type LedgerEntry struct {
	EntryID           string          `db:"entry_id"`
	AccountID         string          `db:"account_id"`
	EntryType         string          `db:"entry_type"`
	ValueSigned       decimal.Decimal `db:"value_signed"`
	ReferenceType     string          `db:"reference_type"`
	ReferenceID       string          `db:"reference_id"`
	EntryDate         time.Time       `db:"entry_date"`
	Description       string          `db:"description"`
	RequestID         *string         `db:"request_id"`
	ReversalOfEntryID *string         `db:"reversal_of_entry_id"`
	BalanceAfter      decimal.Decimal `db:"balance_after"`
	CreatedAt         time.Time       `db:"created_at"`
	CreatedBy         string          `db:"created_by"`
}

// BankDeposit is a row of bank_deposits.
type BankDeposit struct {
	DepositID     string          `db:"deposit_id"`
	BancaID       string          `db:"banca_id"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Reference     string          `db:"reference"`
	DepositDate   time.Time       `db:"deposit_date"`
	RequestID     string          `db:"request_id"`
	LedgerEntryID string          `db:"ledger_entry_id"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}

// DailyBalanceSnapshot is a row of daily_balance_snapshots.
type DailyBalanceSnapshot struct {
	AccountID      string          `db:"account_id"`
	SnapshotDate   time.Time       `db:"snapshot_date"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	TotalDebits    decimal.Decimal `db:"total_debits"`
	TotalCredits   decimal.Decimal `db:"total_credits"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	EntryCount     int64           `db:"entry_count"`
	CreatedAt      time.Time       `db:"created_at"`
}
