package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatement is a row of account_statements.
type AccountStatement struct {
	StatementID        string          `db:"statement_id"`
	StatementDate      time.Time       `db:"statement_date"`
	Dimension          string          `db:"dimension"`
	BancaID            *string         `db:"banca_id"`
	VentanaID          *string         `db:"ventana_id"`
	VendedorID         *string         `db:"vendedor_id"`
	TicketCount        int             `db:"ticket_count"`
	TotalSales         decimal.Decimal `db:"total_sales"`
	TotalPayouts       decimal.Decimal `db:"total_payouts"`
	ListeroCommission  decimal.Decimal `db:"listero_commission"`
	VendedorCommission decimal.Decimal `db:"vendedor_commission"`
	Balance            decimal.Decimal `db:"balance"`
	TotalPaid          decimal.Decimal `db:"total_paid"`
	TotalCollected     decimal.Decimal `db:"total_collected"`
	RemainingBalance   decimal.Decimal `db:"remaining_balance"`
	IsSettled          bool            `db:"is_settled"`
	CanEdit            bool            `db:"can_edit"`
	ClosedAt           *time.Time      `db:"closed_at"`
	ClosedBy           *string         `db:"closed_by"`
	StatementAdjustments
	AuditFields
}

// StatementAdjustments are the manual corrections stored beside the line totals.
type StatementAdjustments struct {
	AdjTicketCount        int             `db:"adj_ticket_count"`
	AdjTotalSales         decimal.Decimal `db:"adj_total_sales"`
	AdjTotalPayouts       decimal.Decimal `db:"adj_total_payouts"`
	AdjListeroCommission  decimal.Decimal `db:"adj_listero_commission"`
	AdjVendedorCommission decimal.Decimal `db:"adj_vendedor_commission"`
}

// AccountPayment is a row of account_payments.
type AccountPayment struct {
	PaymentID      string          `db:"payment_id"`
	StatementID    string          `db:"statement_id"`
	StatementDate  time.Time       `db:"statement_date"`
	BancaID        *string         `db:"banca_id"`
	VentanaID      *string         `db:"ventana_id"`
	VendedorID     *string         `db:"vendedor_id"`
	Amount         decimal.Decimal `db:"amount"`
	Type           string          `db:"payment_type"`
	Method         string          `db:"method"`
	Notes          string          `db:"notes"`
	IsFinal        bool            `db:"is_final"`
	IdempotencyKey *string         `db:"idempotency_key"`
	IsReversed     bool            `db:"is_reversed"`
	ReversedAt     *time.Time      `db:"reversed_at"`
	ReversedBy     *string         `db:"reversed_by"`
	ReversalReason *string         `db:"reversal_reason"`
	PaymentDate    time.Time       `db:"payment_date"`
	CreatedAt      time.Time       `db:"created_at"`
	CreatedBy      string          `db:"created_by"`
}
