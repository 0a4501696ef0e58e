package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/utils"
	"github.com/SscSPs/banca_settlement/internal/utils/accounting"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ticketService struct {
	BaseService
	txm            portsrepo.TransactionManager
	sorteoRepo     portsrepo.SorteoRepositoryFacade
	ticketRepo     portsrepo.TicketRepositoryFacade
	hierarchyRepo  portsrepo.HierarchyRepositoryFacade
	defaultPercent decimal.Decimal
}

// NewTicketService creates the sale and prize-payment service.
func NewTicketService(
	txm portsrepo.TransactionManager,
	sorteoRepo portsrepo.SorteoRepositoryFacade,
	ticketRepo portsrepo.TicketRepositoryFacade,
	hierarchyRepo portsrepo.HierarchyRepositoryFacade,
	defaultPercent decimal.Decimal,
	opts ...BaseOption,
) portssvc.TicketSvcFacade {
	return &ticketService{
		BaseService:    newBaseService(opts...),
		txm:            txm,
		sorteoRepo:     sorteoRepo,
		ticketRepo:     ticketRepo,
		hierarchyRepo:  hierarchyRepo,
		defaultPercent: defaultPercent,
	}
}

var _ portssvc.TicketSvcFacade = (*ticketService)(nil)

func (s *ticketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.ticketRepo.FindTicketByID(ctx, nil, ticketID)
}

func validateNewTicket(in domain.NewTicket) error {
	if in.SorteoID == "" || in.VendedorID == "" {
		return apperrors.Newf(apperrors.ErrValidation, "sorteo and vendedor are required")
	}
	if len(in.Jugadas) == 0 {
		return apperrors.Newf(apperrors.ErrValidation, "a ticket needs at least one jugada")
	}
	for i, j := range in.Jugadas {
		if strings.TrimSpace(j.Number) == "" {
			return apperrors.Newf(apperrors.ErrValidation, "jugada %d has no number", i)
		}
		if !j.Amount.IsPositive() {
			return apperrors.Newf(apperrors.ErrValidation, "jugada %d amount must be positive", i)
		}
		switch j.Type {
		case domain.BetNumero:
			if j.MultiplierID == nil {
				return apperrors.Newf(apperrors.ErrValidation, "jugada %d needs a multiplier", i)
			}
		case domain.BetReventado:
		default:
			return apperrors.Newf(apperrors.ErrValidation, "jugada %d has unknown type %q", i, j.Type)
		}
	}
	return nil
}

func canSellFor(actor domain.Actor, a *domain.VendedorAssignment) bool {
	if actor.Role == domain.RoleVendedor {
		return actor.UserID == a.VendedorID
	}
	return actor.CanActOnVentana(&a.VentanaID, &a.BancaID)
}

// CreateTicket records a sale. The seller's commission for every line is
// resolved now and stored on the line, so later policy edits never change it.
func (s *ticketService) CreateTicket(ctx context.Context, in domain.NewTicket, actor domain.Actor) (*domain.Ticket, error) {
	if err := validateNewTicket(in); err != nil {
		return nil, err
	}
	assignment, err := s.hierarchyRepo.FindVendedorAssignment(ctx, in.VendedorID)
	if err != nil {
		return nil, err
	}
	if !canSellFor(actor, assignment) {
		return nil, apperrors.Newf(apperrors.ErrForbidden, "actor cannot sell for vendedor %s", in.VendedorID)
	}
	stack, err := s.hierarchyRepo.FindPolicyStack(ctx, assignment.VendedorID, assignment.VentanaID, assignment.BancaID)
	if err != nil {
		return nil, err
	}

	ticket, err := inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.Ticket, error) {
		// the row lock serialises sales against a concurrent evaluate or close
		sorteo, err := s.sorteoRepo.FindSorteoForUpdate(ctx, tx, in.SorteoID)
		if err != nil {
			return nil, err
		}
		if sorteo.Status != domain.SorteoOpen {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s is %s", sorteo.SorteoID, sorteo.Status)
		}

		now := s.now()
		t := domain.Ticket{
			TicketID:        uuid.NewString(),
			TicketNumber:    in.TicketNumber,
			SorteoID:        sorteo.SorteoID,
			LoteriaID:       sorteo.LoteriaID,
			BancaID:         assignment.BancaID,
			VentanaID:       assignment.VentanaID,
			VendedorID:      assignment.VendedorID,
			BusinessDate:    domain.BusinessDate(now, s.Location),
			Status:          domain.TicketActive,
			TotalAmount:     decimal.Zero,
			TotalPayout:     decimal.Zero,
			TotalPaid:       decimal.Zero,
			RemainingAmount: decimal.Zero,
			AuditFields:     domain.NewAuditFields(actor.UserID, now),
		}
		if t.TicketNumber == "" {
			if t.TicketNumber, err = utils.NewTicketNumber(); err != nil {
				return nil, fmt.Errorf("failed to number ticket: %w", err)
			}
		}

		for _, nj := range in.Jugadas {
			j := domain.Jugada{
				JugadaID:         uuid.NewString(),
				TicketID:         t.TicketID,
				Type:             nj.Type,
				Number:           strings.TrimSpace(nj.Number),
				Amount:           nj.Amount,
				FinalMultiplierX: decimal.Zero,
				Payout:           decimal.Zero,
			}
			if nj.Type == domain.BetNumero {
				m, err := s.sorteoRepo.FindMultiplierByID(ctx, tx, *nj.MultiplierID)
				if err != nil {
					return nil, err
				}
				if m.Kind != domain.BetNumero || m.LoteriaID != sorteo.LoteriaID || !m.IsActive {
					return nil, apperrors.Newf(apperrors.ErrValidation, "multiplier %s cannot price a NUMERO line of loteria %s", m.MultiplierID, sorteo.LoteriaID)
				}
				j.FinalMultiplierX = m.ValueX
				j.MultiplierID = strPtr(m.MultiplierID)
			}

			bet := domain.BetContext{LoteriaID: sorteo.LoteriaID, BetType: j.Type, FinalMultiplierX: j.FinalMultiplierX}
			res := accounting.ResolveWithFallback(stack, bet, j.Amount, s.defaultPercent)
			j.CommissionPercent = res.Percent
			j.CommissionAmount = res.Amount
			j.CommissionOrigin = res.Origin

			t.TotalAmount = t.TotalAmount.Add(j.Amount)
			t.Jugadas = append(t.Jugadas, j)
		}

		if err := s.ticketRepo.InsertTicketInTx(ctx, tx, t); err != nil {
			return nil, err
		}
		return &t, nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrInvalidState) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to create ticket", slog.String("sorteo_id", in.SorteoID))
		}
		return nil, err
	}

	s.emitAudit(ctx, actor, domain.ActionTicketCreate, "TICKET", ticket.TicketID, map[string]any{
		"sorteoId":    ticket.SorteoID,
		"vendedorId":  ticket.VendedorID,
		"totalAmount": ticket.TotalAmount.String(),
		"jugadas":     len(ticket.Jugadas),
	})
	return ticket, nil
}

func (s *ticketService) CancelTicket(ctx context.Context, ticketID string, actor domain.Actor) (*domain.Ticket, error) {
	ticket, err := inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.Ticket, error) {
		t, err := s.ticketRepo.FindTicketForUpdate(ctx, tx, ticketID)
		if err != nil {
			return nil, err
		}
		if !actor.CanActOnVentana(&t.VentanaID, &t.BancaID) && !(actor.Role == domain.RoleVendedor && actor.UserID == t.VendedorID) {
			return nil, apperrors.Newf(apperrors.ErrForbidden, "actor cannot cancel ticket %s", ticketID)
		}
		if t.Status != domain.TicketActive || t.IsSorteoClosed {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "ticket %s is %s", ticketID, t.Status)
		}
		sorteo, err := s.sorteoRepo.FindSorteoByID(ctx, tx, t.SorteoID)
		if err != nil {
			return nil, err
		}
		if sorteo.Status == domain.SorteoEvaluated || sorteo.Status == domain.SorteoClosed {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s is %s", sorteo.SorteoID, sorteo.Status)
		}

		t.Status = domain.TicketCancelled
		t.Touch(actor.UserID, s.now())
		if err := s.ticketRepo.UpdateTicketsInTx(ctx, tx, []domain.Ticket{*t}); err != nil {
			return nil, err
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, actor, domain.ActionTicketCancel, "TICKET", ticketID, nil)
	return ticket, nil
}

func (s *ticketService) replayPayment(ctx context.Context, key string) (*domain.TicketPaymentResult, error) {
	existing, err := s.ticketRepo.FindTicketPaymentByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	t, err := s.ticketRepo.FindTicketByID(ctx, nil, existing.TicketID)
	if err != nil {
		return nil, err
	}
	return &domain.TicketPaymentResult{Payment: *existing, Ticket: *t, Replayed: true}, nil
}

// PayTicket records a prize payment. Partial payments are allowed until the
// remaining amount reaches zero.
func (s *ticketService) PayTicket(ctx context.Context, in domain.NewTicketPayment, actor domain.Actor) (*domain.TicketPaymentResult, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "payment amount must be positive")
	}
	if in.Method == "" {
		in.Method = domain.MethodCash
	}
	if in.IdempotencyKey != nil {
		if replay, err := s.replayPayment(ctx, *in.IdempotencyKey); err == nil {
			return replay, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	result, err := retry.DoValue(ctx, s.policyFor(in.IdempotencyKey != nil), func(ctx context.Context) (*domain.TicketPaymentResult, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.TicketPaymentResult, error) {
			t, err := s.ticketRepo.FindTicketForUpdate(ctx, tx, in.TicketID)
			if err != nil {
				return nil, err
			}
			if !actor.CanActOnVentana(&t.VentanaID, &t.BancaID) && !(actor.Role == domain.RoleVendedor && actor.UserID == t.VendedorID) {
				return nil, apperrors.Newf(apperrors.ErrForbidden, "actor cannot pay ticket %s", t.TicketID)
			}
			if !t.IsWinner || (t.Status != domain.TicketEvaluated && t.Status != domain.TicketPaid) {
				return nil, apperrors.Newf(apperrors.ErrInvalidState, "ticket %s is not a payable winner", t.TicketID)
			}
			if in.Amount.GreaterThan(t.RemainingAmount) {
				return nil, apperrors.Newf(apperrors.ErrValidation, "amount %s exceeds remaining %s", in.Amount.StringFixed(2), t.RemainingAmount.StringFixed(2))
			}

			now := s.now()
			p := domain.TicketPayment{
				TicketPaymentID: uuid.NewString(),
				TicketID:        t.TicketID,
				SorteoID:        t.SorteoID,
				Amount:          in.Amount,
				Method:          in.Method,
				IdempotencyKey:  in.IdempotencyKey,
				PaidAt:          now,
				PaidBy:          actor.UserID,
			}
			if err := s.ticketRepo.InsertTicketPaymentInTx(ctx, tx, p); err != nil {
				return nil, err
			}

			t.TotalPaid = t.TotalPaid.Add(in.Amount)
			t.RemainingAmount = t.TotalPayout.Sub(t.TotalPaid)
			t.LastPaymentAt = &now
			t.PaidBy = strPtr(actor.UserID)
			if accounting.IsZeroAmount(t.RemainingAmount) {
				t.Status = domain.TicketPaid
			}
			t.Touch(actor.UserID, now)
			if err := s.ticketRepo.UpdateTicketsInTx(ctx, tx, []domain.Ticket{*t}); err != nil {
				return nil, err
			}
			return &domain.TicketPaymentResult{Payment: p, Ticket: *t}, nil
		})
	})
	if errors.Is(err, apperrors.ErrDuplicate) && in.IdempotencyKey != nil {
		if replay, replayErr := s.replayPayment(ctx, *in.IdempotencyKey); replayErr == nil {
			return replay, nil
		}
	}
	if err != nil {
		return nil, err
	}

	s.emitAudit(ctx, actor, domain.ActionTicketPay, "TICKET", result.Ticket.TicketID, map[string]any{
		"ticketPaymentId": result.Payment.TicketPaymentID,
		"amount":          in.Amount.String(),
		"remaining":       result.Ticket.RemainingAmount.String(),
	})
	return result, nil
}
