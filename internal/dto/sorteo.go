package dto

import (
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Sorteo DTOs ---

// CreateSorteoRequest schedules a draw.
type CreateSorteoRequest struct {
	LoteriaID   string    `json:"loteriaId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
}

// EvaluateSorteoRequest carries the outcome of a draw.
type EvaluateSorteoRequest struct {
	WinningNumber     string  `json:"winningNumber" binding:"required"`
	ExtraOutcomeCode  *string `json:"extraOutcomeCode"`
	ExtraMultiplierID *string `json:"extraMultiplierId"`
}

// ToDomain converts the request.
func (r EvaluateSorteoRequest) ToDomain() domain.EvaluateSorteoInput {
	return domain.EvaluateSorteoInput(r)
}

// --- Ticket DTOs ---

// JugadaRequest is one bet line of a sale.
type JugadaRequest struct {
	Type         domain.BetType  `json:"type" binding:"required,oneof=NUMERO REVENTADO"`
	Number       string          `json:"number" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	MultiplierID *string         `json:"multiplierId"`
}

// CreateTicketRequest sells a ticket.
type CreateTicketRequest struct {
	SorteoID     string          `json:"sorteoId" binding:"required"`
	VendedorID   string          `json:"vendedorId" binding:"required"`
	TicketNumber string          `json:"ticketNumber"`
	Jugadas      []JugadaRequest `json:"jugadas" binding:"required,min=1,dive"`
}

// ToDomain converts the request.
func (r CreateTicketRequest) ToDomain() domain.NewTicket {
	lines := make([]domain.NewJugada, len(r.Jugadas))
	for i, j := range r.Jugadas {
		lines[i] = domain.NewJugada(j)
	}
	return domain.NewTicket{
		SorteoID:     r.SorteoID,
		VendedorID:   r.VendedorID,
		TicketNumber: r.TicketNumber,
		Jugadas:      lines,
	}
}

// PayTicketRequest pays (part of) a prize.
type PayTicketRequest struct {
	Amount         decimal.Decimal      `json:"amount"`
	Method         domain.PaymentMethod `json:"method" binding:"required,oneof=CASH TRANSFER CHECK OTHER"`
	IdempotencyKey *string              `json:"idempotencyKey"`
}

// --- Commission DTOs ---

// ResolveCommissionRequest previews the waterfall for one bet line.
type ResolveCommissionRequest struct {
	VendedorID string            `json:"vendedorId" binding:"required"`
	VentanaID  string            `json:"ventanaId"`
	BancaID    string            `json:"bancaId"`
	Bet        domain.BetContext `json:"bet"`
	Amount     decimal.Decimal   `json:"amount"`
}

// CommissionPreviewResponse shows the seller and listero split for one line.
type CommissionPreviewResponse struct {
	Seller  domain.CommissionResult `json:"seller"`
	Listero decimal.Decimal         `json:"listero"`
}
