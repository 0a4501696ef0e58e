package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DefaultSettlementTimeout bounds evaluate and revert when no timeout is configured.
const DefaultSettlementTimeout = 2 * time.Minute

type sorteoService struct {
	BaseService
	txm        portsrepo.TransactionManager
	sorteoRepo portsrepo.SorteoRepositoryFacade
	ticketRepo portsrepo.TicketRepositoryFacade
	statements portssvc.StatementRefresherSvc
	timeout    time.Duration
}

// NewSorteoService creates the draw state machine. statements is used to
// cascade evaluation and revert into the affected daily statements.
func NewSorteoService(
	txm portsrepo.TransactionManager,
	sorteoRepo portsrepo.SorteoRepositoryFacade,
	ticketRepo portsrepo.TicketRepositoryFacade,
	statements portssvc.StatementRefresherSvc,
	settlementTimeout time.Duration,
	opts ...BaseOption,
) portssvc.SorteoSvcFacade {
	if settlementTimeout <= 0 {
		settlementTimeout = DefaultSettlementTimeout
	}
	return &sorteoService{
		BaseService: newBaseService(opts...),
		txm:         txm,
		sorteoRepo:  sorteoRepo,
		ticketRepo:  ticketRepo,
		statements:  statements,
		timeout:     settlementTimeout,
	}
}

var _ portssvc.SorteoSvcFacade = (*sorteoService)(nil)

func (s *sorteoService) GetSorteo(ctx context.Context, sorteoID string) (*domain.Sorteo, error) {
	return s.sorteoRepo.FindSorteoByID(ctx, nil, sorteoID)
}

func (s *sorteoService) CreateSorteo(ctx context.Context, in domain.NewSorteo, actor domain.Actor) (*domain.Sorteo, error) {
	if err := requireAdmin(actor, "scheduling a sorteo"); err != nil {
		return nil, err
	}
	if in.LoteriaID == "" || strings.TrimSpace(in.Name) == "" || in.ScheduledAt.IsZero() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "loteria, name and scheduled time are required")
	}
	sorteo := domain.Sorteo{
		SorteoID:    uuid.NewString(),
		LoteriaID:   in.LoteriaID,
		Name:        strings.TrimSpace(in.Name),
		ScheduledAt: in.ScheduledAt.UTC(),
		Status:      domain.SorteoScheduled,
		AuditFields: domain.NewAuditFields(actor.UserID, s.now()),
	}
	if err := s.sorteoRepo.InsertSorteo(ctx, sorteo); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to insert sorteo", slog.String("loteria_id", in.LoteriaID))
		}
		return nil, err
	}
	s.emitAudit(ctx, actor, domain.ActionSorteoCreate, "SORTEO", sorteo.SorteoID, map[string]any{
		"loteriaId":   sorteo.LoteriaID,
		"scheduledAt": sorteo.ScheduledAt,
	})
	return &sorteo, nil
}

// transition moves a locked draw along one edge and persists it.
func (s *sorteoService) transition(ctx context.Context, sorteoID string, to domain.SorteoStatus, actor domain.Actor, mutate func(tx pgx.Tx, sorteo *domain.Sorteo) error) (*domain.Sorteo, error) {
	return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.Sorteo, error) {
		sorteo, err := s.sorteoRepo.FindSorteoForUpdate(ctx, tx, sorteoID)
		if err != nil {
			return nil, err
		}
		if !domain.CanTransition(sorteo.Status, to) {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s cannot move from %s to %s", sorteoID, sorteo.Status, to)
		}
		if mutate != nil {
			if err := mutate(tx, sorteo); err != nil {
				return nil, err
			}
		}
		sorteo.Status = to
		sorteo.Touch(actor.UserID, s.now())
		if err := s.sorteoRepo.UpdateSorteo(ctx, tx, *sorteo); err != nil {
			return nil, err
		}
		return sorteo, nil
	})
}

func (s *sorteoService) Open(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.Sorteo, error) {
	if err := requireAdmin(actor, "opening a sorteo"); err != nil {
		return nil, err
	}
	sorteo, err := s.transition(ctx, sorteoID, domain.SorteoOpen, actor, func(_ pgx.Tx, sorteo *domain.Sorteo) error {
		if sorteo.Status != domain.SorteoScheduled {
			return apperrors.Newf(apperrors.ErrInvalidState, "only a SCHEDULED sorteo can be opened, %s is %s", sorteoID, sorteo.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, actor, domain.ActionSorteoOpen, "SORTEO", sorteoID, nil)
	return sorteo, nil
}

// statementRefs lists the distinct ventana and vendedor days touched by the
// tickets, in a stable order so concurrent settlements lock rows alike.
func statementRefs(tickets []domain.Ticket) []domain.StatementRef {
	seen := make(map[string]struct{})
	var refs []domain.StatementRef
	add := func(date time.Time, key domain.DimensionKey, id string) {
		k := date.Format(time.DateOnly) + "|" + string(key.Dimension()) + "|" + id
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		refs = append(refs, domain.StatementRef{Date: date, Key: key})
	}
	for _, t := range tickets {
		if t.Status == domain.TicketCancelled {
			continue
		}
		banca, ventana, vendedor := t.BancaID, t.VentanaID, t.VendedorID
		add(t.BusinessDate, domain.DimensionKey{BancaID: &banca, VentanaID: &ventana}, ventana)
		add(t.BusinessDate, domain.DimensionKey{BancaID: &banca, VentanaID: &ventana, VendedorID: &vendedor}, vendedor)
	}
	sort.Slice(refs, func(i, j int) bool {
		if !refs[i].Date.Equal(refs[j].Date) {
			return refs[i].Date.Before(refs[j].Date)
		}
		di, dj := refs[i].Key.Dimension(), refs[j].Key.Dimension()
		if di != dj {
			return di < dj
		}
		return derefStr(refs[i].Key.VendedorID)+derefStr(refs[i].Key.VentanaID) < derefStr(refs[j].Key.VendedorID)+derefStr(refs[j].Key.VentanaID)
	})
	return refs
}

// Evaluate settles an OPEN draw in one transaction: winners are marked,
// payouts computed, tickets moved to EVALUATED and every touched statement
// refreshed. Any failure rolls the whole evaluation back.
func (s *sorteoService) Evaluate(ctx context.Context, sorteoID string, in domain.EvaluateSorteoInput, actor domain.Actor) (*domain.EvaluationResult, error) {
	if err := requireAdmin(actor, "evaluating a sorteo"); err != nil {
		return nil, err
	}
	winning := strings.TrimSpace(in.WinningNumber)
	if winning == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "winning number is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	start := time.Now()

	result, err := inLongTx(ctx, s.txm, s.timeout, func(tx pgx.Tx) (*domain.EvaluationResult, error) {
		sorteo, err := s.sorteoRepo.FindSorteoForUpdate(ctx, tx, sorteoID)
		if err != nil {
			return nil, err
		}
		if sorteo.Status != domain.SorteoOpen {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s is %s and cannot be evaluated", sorteoID, sorteo.Status)
		}

		extraX := decimal.Zero
		if in.ExtraMultiplierID != nil {
			m, err := s.sorteoRepo.FindMultiplierByID(ctx, tx, *in.ExtraMultiplierID)
			if err != nil {
				return nil, err
			}
			if m.Kind != domain.BetReventado || m.LoteriaID != sorteo.LoteriaID {
				return nil, apperrors.Newf(apperrors.ErrValidation, "multiplier %s is not a REVENTADO multiplier of loteria %s", m.MultiplierID, sorteo.LoteriaID)
			}
			extraX = m.ValueX
		}

		tickets, err := s.ticketRepo.ListTicketsBySorteo(ctx, tx, sorteoID)
		if err != nil {
			return nil, err
		}
		if in.ExtraMultiplierID == nil {
			for _, t := range tickets {
				if t.Status == domain.TicketCancelled {
					continue
				}
				for _, j := range t.Jugadas {
					if j.Type == domain.BetReventado && j.Number == winning {
						return nil, apperrors.Newf(apperrors.ErrValidation, "winning REVENTADO lines exist but no extra multiplier was given")
					}
				}
			}
		}

		now := s.now()
		res := &domain.EvaluationResult{TotalPayout: decimal.Zero}
		var jugadas []domain.Jugada
		var touched []domain.Ticket
		for _, t := range tickets {
			if t.Status == domain.TicketCancelled {
				continue
			}
			payout := decimal.Zero
			for i := range t.Jugadas {
				j := &t.Jugadas[i]
				if j.Number != winning {
					continue
				}
				switch j.Type {
				case domain.BetNumero:
					j.MarkWinner()
				case domain.BetReventado:
					if !extraX.IsPositive() {
						continue
					}
					j.FinalMultiplierX = extraX
					j.MultiplierID = in.ExtraMultiplierID
					j.MarkWinner()
				}
				payout = payout.Add(j.Payout)
				res.WinningLines++
				jugadas = append(jugadas, *j)
			}
			t.Status = domain.TicketEvaluated
			t.IsWinner = payout.IsPositive()
			t.TotalPayout = payout
			t.TotalPaid = decimal.Zero
			t.RemainingAmount = payout
			t.Touch(actor.UserID, now)
			if t.IsWinner {
				res.WinningTickets++
				res.TotalPayout = res.TotalPayout.Add(payout)
			}
			touched = append(touched, t)
		}

		if err := s.ticketRepo.UpdateJugadasInTx(ctx, tx, jugadas); err != nil {
			return nil, err
		}
		if err := s.ticketRepo.UpdateTicketsInTx(ctx, tx, touched); err != nil {
			return nil, err
		}

		sorteo.Status = domain.SorteoEvaluated
		sorteo.WinningNumber = &winning
		sorteo.ExtraOutcomeCode = in.ExtraOutcomeCode
		sorteo.ExtraMultiplierID = in.ExtraMultiplierID
		if in.ExtraMultiplierID != nil {
			sorteo.ExtraMultiplierX = &extraX
		}
		sorteo.HasWinner = res.WinningTickets > 0
		sorteo.EvaluatedAt = &now
		sorteo.EvaluatedBy = strPtr(actor.UserID)
		sorteo.Touch(actor.UserID, now)
		if err := s.sorteoRepo.UpdateSorteo(ctx, tx, *sorteo); err != nil {
			return nil, err
		}

		refs := statementRefs(touched)
		for _, ref := range refs {
			if _, err := s.statements.RefreshInTx(ctx, tx, ref, actor); err != nil {
				return nil, err
			}
		}
		res.Sorteo = *sorteo
		res.TicketsTouched = len(touched)
		res.StatementsTouched = len(refs)
		return res, nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Sorteo evaluation failed", slog.String("layer", "settlement"), slog.String("sorteo_id", sorteoID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sorteo evaluated",
		slog.String("layer", "settlement"),
		slog.String("sorteo_id", sorteoID),
		slog.Int("winning_lines", result.WinningLines),
		slog.Int("statements", result.StatementsTouched),
		slog.Duration("took", time.Since(start)))
	s.emitAudit(ctx, actor, domain.ActionSorteoEvaluate, "SORTEO", sorteoID, map[string]any{
		"winningNumber":     winning,
		"extraMultiplierId": derefStr(in.ExtraMultiplierID),
		"winningTickets":    result.WinningTickets,
		"totalPayout":       result.TotalPayout.String(),
	})
	return result, nil
}

// RevertEvaluation undoes an evaluation: prize payments are deleted, lines and
// tickets reset, the affected statements reopened and recomputed, and the
// draw returned to OPEN.
func (s *sorteoService) RevertEvaluation(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.EvaluationResult, error) {
	if err := requireAdmin(actor, "reverting a sorteo evaluation"); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := inLongTx(ctx, s.txm, s.timeout, func(tx pgx.Tx) (*domain.EvaluationResult, error) {
		sorteo, err := s.sorteoRepo.FindSorteoForUpdate(ctx, tx, sorteoID)
		if err != nil {
			return nil, err
		}
		if sorteo.Status != domain.SorteoEvaluated {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s is %s, only EVALUATED can be reverted", sorteoID, sorteo.Status)
		}

		res := &domain.EvaluationResult{TotalPayout: decimal.Zero}
		res.TicketPaymentsGone, err = s.ticketRepo.DeleteTicketPaymentsBySorteoInTx(ctx, tx, sorteoID)
		if err != nil {
			return nil, err
		}

		tickets, err := s.ticketRepo.ListTicketsBySorteo(ctx, tx, sorteoID)
		if err != nil {
			return nil, err
		}
		now := s.now()
		var jugadas []domain.Jugada
		var touched []domain.Ticket
		for _, t := range tickets {
			if t.Status == domain.TicketCancelled {
				continue
			}
			for i := range t.Jugadas {
				t.Jugadas[i].ResetOutcome()
				jugadas = append(jugadas, t.Jugadas[i])
			}
			t.ResetOutcome()
			t.Touch(actor.UserID, now)
			touched = append(touched, t)
		}
		if err := s.ticketRepo.UpdateJugadasInTx(ctx, tx, jugadas); err != nil {
			return nil, err
		}
		if err := s.ticketRepo.UpdateTicketsInTx(ctx, tx, touched); err != nil {
			return nil, err
		}

		refs := statementRefs(touched)
		for _, ref := range refs {
			_, deleted, err := s.statements.ResetInTx(ctx, tx, ref, actor)
			if err != nil {
				return nil, err
			}
			res.PaymentsDeleted += deleted
		}

		sorteo.ClearOutcome()
		sorteo.Status = domain.SorteoOpen
		sorteo.Touch(actor.UserID, now)
		if err := s.sorteoRepo.UpdateSorteo(ctx, tx, *sorteo); err != nil {
			return nil, err
		}
		res.Sorteo = *sorteo
		res.TicketsTouched = len(touched)
		res.StatementsTouched = len(refs)
		return res, nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Sorteo revert failed", slog.String("layer", "settlement"), slog.String("sorteo_id", sorteoID))
		}
		return nil, err
	}

	s.GetLogger(ctx).Warn("Sorteo evaluation reverted",
		slog.String("layer", "settlement"),
		slog.String("sorteo_id", sorteoID),
		slog.Int("ticket_payments_deleted", result.TicketPaymentsGone),
		slog.Int("statement_payments_deleted", result.PaymentsDeleted))
	s.emitAudit(ctx, actor, domain.ActionSorteoRevert, "SORTEO", sorteoID, map[string]any{
		"ticketsTouched":        result.TicketsTouched,
		"ticketPaymentsDeleted": result.TicketPaymentsGone,
		"paymentsDeleted":       result.PaymentsDeleted,
	})
	return result, nil
}

func (s *sorteoService) CloseWithCascade(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.CloseResult, error) {
	if err := requireAdmin(actor, "closing a sorteo"); err != nil {
		return nil, err
	}
	var locked int
	sorteo, err := s.transition(ctx, sorteoID, domain.SorteoClosed, actor, func(tx pgx.Tx, sorteo *domain.Sorteo) error {
		n, err := s.ticketRepo.SetSorteoClosedInTx(ctx, tx, sorteoID, true)
		if err != nil {
			return err
		}
		locked = n
		now := s.now()
		sorteo.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, actor, domain.ActionSorteoClose, "SORTEO", sorteoID, map[string]any{"ticketsLocked": locked})
	return &domain.CloseResult{Sorteo: *sorteo, TicketsLocked: locked}, nil
}

// ForceOpen unlocks a CLOSED draw that was never evaluated.
func (s *sorteoService) ForceOpen(ctx context.Context, sorteoID string, actor domain.Actor) (*domain.Sorteo, error) {
	if err := requireAdmin(actor, "force-opening a sorteo"); err != nil {
		return nil, err
	}
	sorteo, err := s.transition(ctx, sorteoID, domain.SorteoOpen, actor, func(tx pgx.Tx, sorteo *domain.Sorteo) error {
		if sorteo.Status != domain.SorteoClosed {
			return apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s is %s, only CLOSED can be force-opened", sorteoID, sorteo.Status)
		}
		if sorteo.WasEvaluated() {
			return apperrors.Newf(apperrors.ErrInvalidState, "sorteo %s was evaluated and must be reverted instead", sorteoID)
		}
		if _, err := s.ticketRepo.SetSorteoClosedInTx(ctx, tx, sorteoID, false); err != nil {
			return err
		}
		sorteo.ClosedAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, actor, domain.ActionSorteoForceOpen, "SORTEO", sorteoID, nil)
	return sorteo, nil
}
