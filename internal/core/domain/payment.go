package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType says in which direction money moved against a statement.
type PaymentType string

const (
	PaymentTypePayment    PaymentType = "PAYMENT"
	PaymentTypeCollection PaymentType = "COLLECTION"
)

// PaymentMethod is how the money moved.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCheck    PaymentMethod = "CHECK"
	MethodOther    PaymentMethod = "OTHER"
)

// AccountPayment is a manual payment or collection applied to a statement.
// Reversal flips IsReversed and never deletes the row.
type AccountPayment struct {
	PaymentID      string          `json:"paymentID"`
	StatementID    string          `json:"statementID"`
	StatementDate  time.Time       `json:"statementDate"`
	BancaID        *string         `json:"bancaID,omitempty"`
	VentanaID      *string         `json:"ventanaID,omitempty"`
	VendedorID     *string         `json:"vendedorID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Type           PaymentType     `json:"type"`
	Method         PaymentMethod   `json:"method"`
	Notes          string          `json:"notes"`
	IsFinal        bool            `json:"isFinal"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	IsReversed     bool            `json:"isReversed"`
	ReversedAt     *time.Time      `json:"reversedAt,omitempty"`
	ReversedBy     *string         `json:"reversedBy,omitempty"`
	ReversalReason *string         `json:"reversalReason,omitempty"`
	PaymentDate    time.Time       `json:"paymentDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// NewAccountPayment is the validated input for CreatePayment.
type NewAccountPayment struct {
	Date           time.Time
	Key            DimensionKey
	Amount         decimal.Decimal
	Type           PaymentType
	Method         PaymentMethod
	Notes          string
	IsFinal        bool
	IdempotencyKey *string
	PaymentDate    *time.Time
}

// PaymentResult returns the payment with the statement it left behind.
type PaymentResult struct {
	Payment   AccountPayment   `json:"payment"`
	Statement AccountStatement `json:"statement"`
	Replayed  bool             `json:"replayed"`
}
