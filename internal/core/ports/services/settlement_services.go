package services

import (
	"context"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CommissionSvcFacade resolves commissions against stored policies
type CommissionSvcFacade interface {
	// ResolveForVendedor runs the full waterfall for the seller's current assignment.
	ResolveForVendedor(ctx context.Context, vendedorID string, bet domain.BetContext, amount decimal.Decimal) (*domain.CommissionResult, error)

	// ResolveListero returns the window's share above the seller commission.
	ResolveListero(ctx context.Context, ventanaID, bancaID string, bet domain.BetContext, amount, sellerCommission decimal.Decimal) (decimal.Decimal, error)

	DefaultPercent() decimal.Decimal
}

// TicketSvcFacade sells, cancels and pays tickets
type TicketSvcFacade interface {
	CreateTicket(ctx context.Context, in domain.NewTicket, actor domain.Actor) (*domain.Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error)
	CancelTicket(ctx context.Context, ticketID string, actor domain.Actor) (*domain.Ticket, error)
	PayTicket(ctx context.Context, in domain.NewTicketPayment, actor domain.Actor) (*domain.TicketPaymentResult, error)
}

// SorteoSvcFacade drives the draw lifecycle
type SorteoSvcFacade interface {
	CreateSorteo(ctx context.Context, in domain.NewSorteo, actor domain.Actor) (*domain.Sorteo, error)
	GetSorteo(ctx context.Context, sorteoID string) (*domain.Sorteo, error)
	Open(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.Sorteo, error)
	Evaluate(ctx context.Context, sorteoID string, in domain.EvaluateSorteoInput, actor domain.Actor) (*domain.EvaluationResult, error)
	RevertEvaluation(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.EvaluationResult, error)
	CloseWithCascade(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.CloseResult, error)
	ForceOpen(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.Sorteo, error)
}
