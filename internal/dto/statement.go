package dto

import (
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Statement DTOs ---

// StatementDayRequest names a (date, dimension) in a body.
type StatementDayRequest struct {
	Date       string  `json:"date" binding:"required"`
	BancaID    *string `json:"bancaId"`
	VentanaID  *string `json:"ventanaId"`
	VendedorID *string `json:"vendedorId"`
}

// Key returns the dimension key of the request.
func (r StatementDayRequest) Key() domain.DimensionKey {
	return domain.DimensionKey{BancaID: r.BancaID, VentanaID: r.VentanaID, VendedorID: r.VendedorID}
}

// UpdateStatementRequest applies signed deltas to a statement.
type UpdateStatementRequest struct {
	TicketCount        int             `json:"ticketCount"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalPayouts       decimal.Decimal `json:"totalPayouts"`
	ListeroCommission  decimal.Decimal `json:"listeroCommission"`
	VendedorCommission decimal.Decimal `json:"vendedorCommission"`
}

// ToDomain converts the request.
func (r UpdateStatementRequest) ToDomain() domain.StatementDeltas {
	return domain.StatementDeltas(r)
}

// DayActivityResponse is the chronological view of one statement day.
type DayActivityResponse struct {
	StatementID string               `json:"statementID"`
	Activity    []domain.DayActivity `json:"activity"`
}

// --- Payment DTOs ---

// CreatePaymentRequest applies a payment or collection to a statement day.
type CreatePaymentRequest struct {
	StatementDayRequest
	Amount         decimal.Decimal      `json:"amount"`
	Type           domain.PaymentType   `json:"type" binding:"required,oneof=PAYMENT COLLECTION"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH TRANSFER CHECK OTHER"`
	Notes          string               `json:"notes"`
	IsFinal        bool                 `json:"isFinal"`
	IdempotencyKey *string              `json:"idempotencyKey"`
	PaymentDate    *time.Time           `json:"paymentDate"`
}

// ToDomain converts the request, parsing the statement date.
func (r CreatePaymentRequest) ToDomain() (domain.NewAccountPayment, error) {
	day, err := ParseDate(r.Date)
	if err != nil {
		return domain.NewAccountPayment{}, err
	}
	return domain.NewAccountPayment{
		Date:           day,
		Key:            r.Key(),
		Amount:         r.Amount,
		Type:           r.Type,
		Method:         r.Method,
		Notes:          r.Notes,
		IsFinal:        r.IsFinal,
		IdempotencyKey: r.IdempotencyKey,
		PaymentDate:    r.PaymentDate,
	}, nil
}

// ReversePaymentRequest reverses a payment.
type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListPaymentsResponse wraps the payments of one statement.
type ListPaymentsResponse struct {
	Payments []domain.AccountPayment `json:"payments"`
}
