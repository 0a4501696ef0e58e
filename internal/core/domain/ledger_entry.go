package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType classifies a ledger movement.
type LedgerEntryType string

const (
	EntrySale        LedgerEntryType = "SALE"
	EntryPayout      LedgerEntryType = "PAYOUT"
	EntryCommission  LedgerEntryType = "COMMISSION"
	EntryPayment     LedgerEntryType = "PAYMENT"
	EntryCollection  LedgerEntryType = "COLLECTION"
	EntryDeposit     LedgerEntryType = "DEPOSIT"
	EntryTransferIn  LedgerEntryType = "TRANSFER_IN"
	EntryTransferOut LedgerEntryType = "TRANSFER_OUT"
	EntryAdjustment  LedgerEntryType = "ADJUSTMENT"
	EntryReversal    LedgerEntryType = "REVERSAL"
)

// Reference types used by entries posted from inside the engine.
const (
	RefBankDeposit    = "BANK_DEPOSIT"
	RefTransfer       = "TRANSFER"
	RefLedgerEntry    = "LEDGER_ENTRY"
	RefAccountPayment = "ACCOUNT_PAYMENT"
	RefManualAdjust   = "MANUAL"
)

// LedgerEntry is one immutable signed movement against an account.
type LedgerEntry struct {
	EntryID           string          `json:"entryID"`
	AccountID         string          `json:"accountID"`
	EntryType         LedgerEntryType `json:"entryType"`
	ValueSigned       decimal.Decimal `json:"valueSigned"`
	ReferenceType     string          `json:"referenceType"`
	ReferenceID       string          `json:"referenceID"`
	EntryDate         time.Time       `json:"entryDate"`
	Description       string          `json:"description"`
	RequestID         *string         `json:"requestID,omitempty"`
	ReversalOfEntryID *string         `json:"reversalOfEntryID,omitempty"`
	BalanceAfter      decimal.Decimal `json:"balanceAfter"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// IsReversal reports whether the entry negates another entry.
func (e LedgerEntry) IsReversal() bool {
	return e.ReversalOfEntryID != nil
}

// NewLedgerEntry is what callers hand to the ledger core. EntryID is optional;
// when set the core refuses to reuse it.
type NewLedgerEntry struct {
	EntryID           string
	EntryType         LedgerEntryType
	ValueSigned       decimal.Decimal
	ReferenceType     string
	ReferenceID       string
	EntryDate         time.Time
	Description       string
	RequestID         *string
	ReversalOfEntryID *string
	CreatedBy         string
}

// PostedEntry is the result of an append. Replayed is true when the request
// id was already applied and the original entry is returned instead.
type PostedEntry struct {
	Entry    LedgerEntry `json:"entry"`
	Replayed bool        `json:"replayed"`
}

// Transfer is the pair of entries produced by an inter-account payment document.
type Transfer struct {
	Debit    LedgerEntry `json:"debit"`
	Credit   LedgerEntry `json:"credit"`
	Replayed bool        `json:"replayed"`
}

// TransferInput is an inter-account payment document.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Reference     string
	Description   string
	RequestID     *string
	EntryDate     time.Time
}
