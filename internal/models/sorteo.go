package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sorteo is a row of sorteos.
type Sorteo struct {
	SorteoID          string           `db:"sorteo_id"`
	LoteriaID         string           `db:"loteria_id"`
	Name              string           `db:"name"`
	ScheduledAt       time.Time        `db:"scheduled_at"`
	Status            string           `db:"status"`
	WinningNumber     *string          `db:"winning_number"`
	ExtraOutcomeCode  *string          `db:"extra_outcome_code"`
	ExtraMultiplierID *string          `db:"extra_multiplier_id"`
	ExtraMultiplierX  *decimal.Decimal `db:"extra_multiplier_x"`
	HasWinner         bool             `db:"has_winner"`
	EvaluatedAt       *time.Time       `db:"evaluated_at"`
	EvaluatedBy       *string          `db:"evaluated_by"`
	ClosedAt          *time.Time       `db:"closed_at"`
	AuditFields
}

// Multiplier is a row of loteria_multipliers.
type Multiplier struct {
	MultiplierID string          `db:"multiplier_id"`
	LoteriaID    string          `db:"loteria_id"`
	Kind         string          `db:"kind"`
	Name         string          `db:"name"`
	ValueX       decimal.Decimal `db:"value_x"`
	IsActive     bool            `db:"is_active"`
}

// Ticket is a row of tickets.
type Ticket struct {
	TicketID        string          `db:"ticket_id"`
	TicketNumber    string          `db:"ticket_number"`
	SorteoID        string          `db:"sorteo_id"`
	LoteriaID       string          `db:"loteria_id"`
	BancaID         string          `db:"banca_id"`
	VentanaID       string          `db:"ventana_id"`
	VendedorID      string          `db:"vendedor_id"`
	BusinessDate    time.Time       `db:"business_date"`
	Status          string          `db:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	TotalPayout     decimal.Decimal `db:"total_payout"`
	TotalPaid       decimal.Decimal `db:"total_paid"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	IsWinner        bool            `db:"is_winner"`
	IsSorteoClosed  bool            `db:"is_sorteo_closed"`
	LastPaymentAt   *time.Time      `db:"last_payment_at"`
	PaidBy          *string         `db:"paid_by"`
	AuditFields
}

// Jugada is a row of jugadas.
type Jugada struct {
	JugadaID          string          `db:"jugada_id"`
	TicketID          string          `db:"ticket_id"`
	Type              string          `db:"bet_type"`
	Number            string          `db:"number"`
	Amount            decimal.Decimal `db:"amount"`
	FinalMultiplierX  decimal.Decimal `db:"final_multiplier_x"`
	MultiplierID      *string         `db:"multiplier_id"`
	CommissionPercent decimal.Decimal `db:"commission_percent"`
	CommissionAmount  decimal.Decimal `db:"commission_amount"`
	CommissionOrigin  string          `db:"commission_origin"`
	IsWinner          bool            `db:"is_winner"`
	Payout            decimal.Decimal `db:"payout"`
}

// JugadaFact is a jugada joined with its ticket's attribution.
type JugadaFact struct {
	Jugada
	SorteoID     string    `db:"sorteo_id"`
	LoteriaID    string    `db:"loteria_id"`
	BancaID      string    `db:"banca_id"`
	VentanaID    string    `db:"ventana_id"`
	VendedorID   string    `db:"vendedor_id"`
	BusinessDate time.Time `db:"business_date"`
}

// TicketPayment is a row of ticket_payments.
type TicketPayment struct {
	TicketPaymentID string          `db:"ticket_payment_id"`
	TicketID        string          `db:"ticket_id"`
	SorteoID        string          `db:"sorteo_id"`
	Amount          decimal.Decimal `db:"amount"`
	Method          string          `db:"method"`
	IdempotencyKey  *string         `db:"idempotency_key"`
	PaidAt          time.Time       `db:"paid_at"`
	PaidBy          string          `db:"paid_by"`
}
