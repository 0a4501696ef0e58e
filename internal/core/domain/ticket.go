package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	TicketActive    TicketStatus = "ACTIVE"
	TicketEvaluated TicketStatus = "EVALUATED"
	TicketPaid      TicketStatus = "PAID"
	TicketCancelled TicketStatus = "CANCELLED"
)

// Ticket groups the bet lines of one sale.
type Ticket struct {
	TicketID        string          `json:"ticketID"`
	TicketNumber    string          `json:"ticketNumber"`
	SorteoID        string          `json:"sorteoID"`
	LoteriaID       string          `json:"loteriaID"`
	BancaID         string          `json:"bancaID"`
	VentanaID       string          `json:"ventanaID"`
	VendedorID      string          `json:"vendedorID"`
	BusinessDate    time.Time       `json:"businessDate"`
	Status          TicketStatus    `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalPayout     decimal.Decimal `json:"totalPayout"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	IsWinner        bool            `json:"isWinner"`
	IsSorteoClosed  bool            `json:"isSorteoClosed"`
	LastPaymentAt   *time.Time      `json:"lastPaymentAt,omitempty"`
	PaidBy          *string         `json:"paidBy,omitempty"`
	Jugadas         []Jugada        `json:"jugadas,omitempty"`
	AuditFields
}

// ResetOutcome returns the ticket to its pre-evaluation state.
func (t *Ticket) ResetOutcome() {
	t.Status = TicketActive
	t.IsWinner = false
	t.TotalPayout = decimal.Zero
	t.TotalPaid = decimal.Zero
	t.RemainingAmount = decimal.Zero
	t.LastPaymentAt = nil
	t.PaidBy = nil
}

// Jugada is one bet line.
type Jugada struct {
	JugadaID          string           `json:"jugadaID"`
	TicketID          string           `json:"ticketID"`
	Type              BetType          `json:"type"`
	Number            string           `json:"number"`
	Amount            decimal.Decimal  `json:"amount"`
	FinalMultiplierX  decimal.Decimal  `json:"finalMultiplierX"`
	MultiplierID      *string          `json:"multiplierID,omitempty"`
	CommissionPercent decimal.Decimal  `json:"commissionPercent"`
	CommissionAmount  decimal.Decimal  `json:"commissionAmount"`
	CommissionOrigin  CommissionOrigin `json:"commissionOrigin"`
	IsWinner          bool             `json:"isWinner"`
	Payout            decimal.Decimal  `json:"payout"`
}

// MarkWinner sets the winner flag and the payout from the current multiplier.
func (j *Jugada) MarkWinner() {
	j.IsWinner = true
	j.Payout = j.Amount.Mul(j.FinalMultiplierX)
}

// ResetOutcome clears the evaluation result. REVENTADO lines also lose the
// multiplier assigned at evaluation.
func (j *Jugada) ResetOutcome() {
	j.IsWinner = false
	j.Payout = decimal.Zero
	if j.Type == BetReventado {
		j.FinalMultiplierX = decimal.Zero
		j.MultiplierID = nil
	}
}

// JugadaFact is a bet line joined with its ticket's attribution, as read by
// the closure engine.
type JugadaFact struct {
	Jugada
	SorteoID     string
	LoteriaID    string
	BancaID      string
	VentanaID    string
	VendedorID   string
	BusinessDate time.Time
}

// TicketPayment is a prize payment made on a winning ticket.
type TicketPayment struct {
	TicketPaymentID string          `json:"ticketPaymentID"`
	TicketID        string          `json:"ticketID"`
	SorteoID        string          `json:"sorteoID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"method"`
	IdempotencyKey  *string         `json:"idempotencyKey,omitempty"`
	PaidAt          time.Time       `json:"paidAt"`
	PaidBy          string          `json:"paidBy"`
}

// NewJugada is a bet line at sale time.
type NewJugada struct {
	Type         BetType
	Number       string
	Amount       decimal.Decimal
	MultiplierID *string
}

// NewTicket is the input of a sale.
type NewTicket struct {
	SorteoID     string
	VendedorID   string
	TicketNumber string
	Jugadas      []NewJugada
}

// NewTicketPayment is a prize payment request.
type NewTicketPayment struct {
	TicketID       string
	Amount         decimal.Decimal
	Method         PaymentMethod
	IdempotencyKey *string
}

// TicketPaymentResult is the payment and the ticket it left behind.
type TicketPaymentResult struct {
	Payment  TicketPayment `json:"payment"`
	Ticket   Ticket        `json:"ticket"`
	Replayed bool          `json:"replayed"`
}
