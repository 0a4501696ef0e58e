package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerType identifies what kind of entity owns a ledger account.
type OwnerType string

const (
	OwnerBanca          OwnerType = "BANCA"
	OwnerVentana        OwnerType = "VENTANA"
	OwnerVendedor       OwnerType = "VENDEDOR"
	OwnerPaymentSubject OwnerType = "PAYMENT_SUBJECT"
)

// IsValid reports whether the owner type is one of the known values.
func (o OwnerType) IsValid() bool {
	switch o {
	case OwnerBanca, OwnerVentana, OwnerVendedor, OwnerPaymentSubject:
		return true
	}
	return false
}

// Account is a ledger-backed balance for one owner.
// Balance is a cache of the signed sum of its ledger entries and is only
// written by the ledger core in the same transaction as the entry insert.
type Account struct {
	AccountID    string          `json:"accountID"`
	OwnerType    OwnerType       `json:"ownerType"`
	OwnerID      string          `json:"ownerID"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// BalanceSummary compares the cached balance with an independent re-sum of the ledger.
type BalanceSummary struct {
	AccountID     string          `json:"accountID"`
	OwnerType     OwnerType       `json:"ownerType"`
	OwnerID       string          `json:"ownerID"`
	CurrencyCode  string          `json:"currencyCode"`
	CachedBalance decimal.Decimal `json:"cachedBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	TotalCredits  decimal.Decimal `json:"totalCredits"`
	TotalDebits   decimal.Decimal `json:"totalDebits"`
	EntryCount    int64           `json:"entryCount"`
	LastEntryAt   *time.Time      `json:"lastEntryAt,omitempty"`
	IsConsistent  bool            `json:"isConsistent"`
}

// Drift is the difference between the cached balance and the ledger re-sum.
func (s BalanceSummary) Drift() decimal.Decimal {
	return s.CachedBalance.Sub(s.LedgerBalance)
}
