package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankDeposit records money deposited by a banca, posted to its ledger account.
type BankDeposit struct {
	DepositID     string          `json:"depositID"`
	BancaID       string          `json:"bancaID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference"`
	DepositDate   time.Time       `json:"depositDate"`
	RequestID     string          `json:"requestID"`
	LedgerEntryID string          `json:"ledgerEntryID"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// DailyBalanceSnapshot is a per-day view of one account derived from its ledger.
type DailyBalanceSnapshot struct {
	AccountID      string          `json:"accountID"`
	SnapshotDate   time.Time       `json:"snapshotDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	EntryCount     int64           `json:"entryCount"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// DayMovement aggregates ledger entries of one account over a half-open time window.
type DayMovement struct {
	Opening    decimal.Decimal
	Debits     decimal.Decimal
	Credits    decimal.Decimal
	EntryCount int64
}

// NewBankDeposit is the input of CreateDeposit.
type NewBankDeposit struct {
	BancaID      string
	CurrencyCode string
	Amount       decimal.Decimal
	Reference    string
	DepositDate  time.Time
	RequestID    string
}

// DepositResult is the deposit and the entry that posted it.
type DepositResult struct {
	Deposit  BankDeposit `json:"deposit"`
	Entry    LedgerEntry `json:"entry"`
	Replayed bool        `json:"replayed"`
}
