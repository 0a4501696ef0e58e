package dto

import (
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Account DTOs ---

// CreateAccountRequest opens (or returns) the account of an owner.
type CreateAccountRequest struct {
	OwnerType    domain.OwnerType `json:"ownerType" binding:"required,oneof=BANCA VENTANA VENDEDOR PAYMENT_SUBJECT"`
	OwnerID      string           `json:"ownerId" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,len=3"`
}

// AdjustmentRequest posts a manual signed adjustment.
type AdjustmentRequest struct {
	ValueSigned decimal.Decimal `json:"valueSigned"`
	Description string          `json:"description" binding:"required"`
	RequestID   *string         `json:"requestId"`
	EntryDate   *time.Time      `json:"entryDate"`
}

// ReverseEntryRequest negates an entry.
type ReverseEntryRequest struct {
	Reason    string  `json:"reason" binding:"required"`
	RequestID *string `json:"requestId"`
}

// TransferRequest is an inter-account payment document.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Reference     string          `json:"reference" binding:"required"`
	Description   string          `json:"description"`
	RequestID     *string         `json:"requestId"`
	EntryDate     *time.Time      `json:"entryDate"`
}

// ToDomain converts the request.
func (r TransferRequest) ToDomain() domain.TransferInput {
	in := domain.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Reference:     r.Reference,
		Description:   r.Description,
		RequestID:     r.RequestID,
	}
	if r.EntryDate != nil {
		in.EntryDate = *r.EntryDate
	}
	return in
}

// ListEntriesParams are the query parameters of an entry listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of entries, newest first.
type ListEntriesResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ReconcileResponse reports the drift of one account.
type ReconcileResponse struct {
	AccountID string          `json:"accountID"`
	Drift     decimal.Decimal `json:"drift"`
	Balanced  bool            `json:"balanced"`
}

// --- Deposit DTOs ---

// CreateDepositRequest records a bank deposit for a banca.
type CreateDepositRequest struct {
	BancaID      string          `json:"bancaId" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,len=3"`
	Amount       decimal.Decimal `json:"amount"`
	Reference    string          `json:"reference" binding:"required"`
	DepositDate  string          `json:"depositDate" binding:"required"`
	RequestID    string          `json:"requestId" binding:"required"`
}

// ToDomain converts the request, parsing the deposit date.
func (r CreateDepositRequest) ToDomain() (domain.NewBankDeposit, error) {
	day, err := ParseDate(r.DepositDate)
	if err != nil {
		return domain.NewBankDeposit{}, err
	}
	return domain.NewBankDeposit{
		BancaID:      r.BancaID,
		CurrencyCode: r.CurrencyCode,
		Amount:       r.Amount,
		Reference:    r.Reference,
		DepositDate:  day,
		RequestID:    r.RequestID,
	}, nil
}
