package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/utils/accounting"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type statementService struct {
	BaseService
	txm            portsrepo.TransactionManager
	statementRepo  portsrepo.StatementRepositoryFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
	ticketRepo     portsrepo.TicketReader
	sorteoRepo     portsrepo.SorteoRepositoryFacade
	hierarchyRepo  portsrepo.HierarchyRepositoryFacade
	defaultPercent decimal.Decimal
}

// NewStatementService creates the closure engine's statement side.
func NewStatementService(
	txm portsrepo.TransactionManager,
	statementRepo portsrepo.StatementRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	ticketRepo portsrepo.TicketReader,
	sorteoRepo portsrepo.SorteoRepositoryFacade,
	hierarchyRepo portsrepo.HierarchyRepositoryFacade,
	defaultPercent decimal.Decimal,
	opts ...BaseOption,
) portssvc.StatementSvcFacade {
	return &statementService{
		BaseService:    newBaseService(opts...),
		txm:            txm,
		statementRepo:  statementRepo,
		paymentRepo:    paymentRepo,
		ticketRepo:     ticketRepo,
		sorteoRepo:     sorteoRepo,
		hierarchyRepo:  hierarchyRepo,
		defaultPercent: defaultPercent,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// calendarDate drops the clock and zone, keeping the calendar day the caller named.
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveKey fills ventana and banca from the current hierarchy so a
// statement stays attributed after a seller moves windows.
func (s *statementService) resolveKey(ctx context.Context, key domain.DimensionKey) (domain.DimensionKey, error) {
	if key.IsEmpty() {
		return key, apperrors.Newf(apperrors.ErrValidation, "one of bancaId, ventanaId or vendedorId is required")
	}
	if key.VendedorID != nil && key.VentanaID == nil {
		a, err := s.hierarchyRepo.FindVendedorAssignment(ctx, *key.VendedorID)
		if err != nil {
			return key, err
		}
		key.VentanaID = strPtr(a.VentanaID)
		if key.BancaID == nil {
			key.BancaID = strPtr(a.BancaID)
		}
	}
	if key.VentanaID != nil && key.BancaID == nil {
		a, err := s.hierarchyRepo.FindVentanaAssignment(ctx, *key.VentanaID)
		if err != nil {
			return key, err
		}
		key.BancaID = strPtr(a.BancaID)
	}
	return key, nil
}

func (s *statementService) newStatement(day time.Time, key domain.DimensionKey, actor domain.Actor) domain.AccountStatement {
	return domain.AccountStatement{
		StatementID:        uuid.NewString(),
		StatementDate:      day,
		Dimension:          key.Dimension(),
		BancaID:            key.BancaID,
		VentanaID:          key.VentanaID,
		VendedorID:         key.VendedorID,
		TotalSales:         decimal.Zero,
		TotalPayouts:       decimal.Zero,
		ListeroCommission:  decimal.Zero,
		VendedorCommission: decimal.Zero,
		Balance:            decimal.Zero,
		TotalPaid:          decimal.Zero,
		TotalCollected:     decimal.Zero,
		RemainingBalance:   decimal.Zero,
		CanEdit:            true,
		Adjustments:        domain.NoDeltas(),
		AuditFields:        domain.NewAuditFields(actor.UserID, s.now()),
	}
}

// findOrCreate never introduces a uniqueness violation: a legacy seller row
// is backfilled only when the backfill does not collide, otherwise the
// consolidated row wins.
func (s *statementService) findOrCreate(ctx context.Context, tx pgx.Tx, day time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error) {
	st, err := s.statementRepo.FindStatement(ctx, tx, day, key)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if key.Dimension() == domain.DimensionVendedor && key.VentanaID != nil {
		legacy, err := s.statementRepo.FindLegacyVendedorStatement(ctx, tx, day, *key.VendedorID)
		switch {
		case err == nil:
			backfillErr := s.statementRepo.BackfillStatementLinkage(ctx, tx, legacy.StatementID, key.VentanaID, key.BancaID, actor.UserID, s.now())
			if backfillErr == nil {
				legacy.VentanaID = key.VentanaID
				legacy.BancaID = key.BancaID
				s.LogInfo(ctx, "Backfilled statement linkage",
					slog.String("layer", "closure"),
					slog.String("statement_id", legacy.StatementID))
				return legacy, nil
			}
			if !errors.Is(backfillErr, apperrors.ErrDuplicate) {
				return nil, backfillErr
			}
			if consolidated, findErr := s.statementRepo.FindStatement(ctx, tx, day, key); findErr == nil {
				return consolidated, nil
			}
			return legacy, nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		}
	}

	if _, err := s.statementRepo.InsertStatementIfAbsent(ctx, tx, s.newStatement(day, key, actor)); err != nil {
		return nil, err
	}
	return s.statementRepo.FindStatement(ctx, tx, day, key)
}

func (s *statementService) FindOrCreate(ctx context.Context, date time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error) {
	resolved, err := s.resolveKey(ctx, key)
	if err != nil {
		return nil, err
	}
	day := calendarDate(date)
	return retry.DoValue(ctx, s.Retry, func(ctx context.Context) (*domain.AccountStatement, error) {
		return s.findOrCreate(ctx, nil, day, resolved, actor)
	})
}

func (s *statementService) GetStatementByID(ctx context.Context, statementID string) (*domain.AccountStatement, error) {
	return s.statementRepo.FindStatementByID(ctx, nil, statementID)
}

func (s *statementService) GetStatement(ctx context.Context, date time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error) {
	st, err := s.FindOrCreate(ctx, date, key, actor)
	if err != nil {
		return nil, err
	}
	if !st.CanEdit {
		return st, nil
	}
	return retry.DoValue(ctx, s.Retry, func(ctx context.Context) (*domain.AccountStatement, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.AccountStatement, error) {
			locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, st.StatementID)
			if err != nil {
				return nil, err
			}
			if !locked.CanEdit {
				return locked, nil
			}
			if err := s.refreshLocked(ctx, tx, locked, actor); err != nil {
				return nil, err
			}
			return locked, nil
		})
	})
}

// aggregate derives the ticket-side figures of a set of lines. Seller
// commission is the amount stored at sale; the listero share is resolved
// against the ventana and banca policies of each line's attribution.
func (s *statementService) aggregate(ctx context.Context, facts []domain.JugadaFact) (domain.StatementAggregates, error) {
	agg := domain.StatementAggregates{
		TotalSales:         decimal.Zero,
		TotalPayouts:       decimal.Zero,
		ListeroCommission:  decimal.Zero,
		VendedorCommission: decimal.Zero,
	}
	tickets := make(map[string]struct{})
	stacks := make(map[[2]string]domain.PolicyStack)
	for _, f := range facts {
		tickets[f.TicketID] = struct{}{}
		agg.TotalSales = agg.TotalSales.Add(f.Amount)
		if f.IsWinner {
			agg.TotalPayouts = agg.TotalPayouts.Add(f.Payout)
		}
		agg.VendedorCommission = agg.VendedorCommission.Add(f.CommissionAmount)

		stackKey := [2]string{f.VentanaID, f.BancaID}
		stack, ok := stacks[stackKey]
		if !ok {
			loaded, err := s.hierarchyRepo.FindPolicyStack(ctx, "", f.VentanaID, f.BancaID)
			if err != nil {
				return agg, err
			}
			stack = loaded
			stacks[stackKey] = stack
		}
		bet := domain.BetContext{LoteriaID: f.LoteriaID, BetType: f.Type, FinalMultiplierX: f.FinalMultiplierX}
		agg.ListeroCommission = agg.ListeroCommission.Add(
			accounting.ResolveListero(stack, bet, f.Amount, f.CommissionAmount, s.defaultPercent))
	}
	agg.TicketCount = len(tickets)
	return agg, nil
}

// refreshLocked recomputes a locked statement from its lines and live payments and persists it.
func (s *statementService) refreshLocked(ctx context.Context, tx pgx.Tx, st *domain.AccountStatement, actor domain.Actor) error {
	facts, err := s.ticketRepo.ListJugadaFactsForDay(ctx, tx, st.StatementDate, st.Key())
	if err != nil {
		return err
	}
	agg, err := s.aggregate(ctx, facts)
	if err != nil {
		return err
	}
	accounting.ApplyAggregates(st, agg)
	if err := s.derivePayments(ctx, tx, st); err != nil {
		return err
	}
	st.Touch(actor.UserID, s.now())
	return s.statementRepo.UpdateStatement(ctx, tx, *st)
}

func (s *statementService) derivePayments(ctx context.Context, tx pgx.Tx, st *domain.AccountStatement) error {
	payments, err := s.paymentRepo.ListPaymentsByStatement(ctx, tx, st.StatementID, false)
	if err != nil {
		return err
	}
	accounting.DeriveStatement(st, accounting.SumPayments(payments))
	return nil
}

func (s *statementService) RefreshInTx(ctx context.Context, tx pgx.Tx, ref domain.StatementRef, actor domain.Actor) (*domain.AccountStatement, error) {
	st, err := s.findOrCreate(ctx, tx, calendarDate(ref.Date), ref.Key, actor)
	if err != nil {
		return nil, err
	}
	locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, st.StatementID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshLocked(ctx, tx, locked, actor); err != nil {
		return nil, err
	}
	return locked, nil
}

func (s *statementService) ResetInTx(ctx context.Context, tx pgx.Tx, ref domain.StatementRef, actor domain.Actor) (*domain.AccountStatement, int, error) {
	st, err := s.findOrCreate(ctx, tx, calendarDate(ref.Date), ref.Key, actor)
	if err != nil {
		return nil, 0, err
	}
	locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, st.StatementID)
	if err != nil {
		return nil, 0, err
	}
	deleted, err := s.paymentRepo.DeletePaymentsByStatementInTx(ctx, tx, locked.StatementID)
	if err != nil {
		return nil, 0, err
	}
	// Manual adjustments survive a reset; only draw-derived figures and payments are rebuilt.
	locked.CanEdit = true
	locked.ClosedAt = nil
	locked.ClosedBy = nil
	if err := s.refreshLocked(ctx, tx, locked, actor); err != nil {
		return nil, 0, err
	}
	return locked, deleted, nil
}

func (s *statementService) Update(ctx context.Context, statementID string, deltas domain.StatementDeltas, actor domain.Actor) (*domain.AccountStatement, error) {
	st, err := inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.AccountStatement, error) {
		locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, statementID)
		if err != nil {
			return nil, err
		}
		if !locked.CanEdit {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "statement %s is closed", statementID)
		}
		if err := accounting.ApplyDeltas(locked, deltas); err != nil {
			return nil, apperrors.Newf(apperrors.ErrValidation, "%v", err)
		}
		if err := s.derivePayments(ctx, tx, locked); err != nil {
			return nil, err
		}
		locked.Touch(actor.UserID, s.now())
		if err := s.statementRepo.UpdateStatement(ctx, tx, *locked); err != nil {
			return nil, err
		}
		return locked, nil
	})
	if err != nil {
		return nil, err
	}
	s.emitAudit(ctx, actor, domain.ActionStatementUpdate, "ACCOUNT_STATEMENT", statementID, map[string]any{
		"ticketCount":        deltas.TicketCount,
		"totalSales":         deltas.TotalSales.String(),
		"totalPayouts":       deltas.TotalPayouts.String(),
		"listeroCommission":  deltas.ListeroCommission.String(),
		"vendedorCommission": deltas.VendedorCommission.String(),
	})
	return st, nil
}

// CloseDay is idempotent: closing a closed day returns it unchanged.
func (s *statementService) CloseDay(ctx context.Context, date time.Time, key domain.DimensionKey, actor domain.Actor) (*domain.AccountStatement, error) {
	st, err := s.FindOrCreate(ctx, date, key, actor)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOnVentana(st.VentanaID, st.BancaID) {
		return nil, apperrors.Newf(apperrors.ErrForbidden, "actor cannot close statement %s", st.StatementID)
	}
	closedNow := false
	st, err = retry.DoValue(ctx, s.Retry, func(ctx context.Context) (*domain.AccountStatement, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.AccountStatement, error) {
			locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, st.StatementID)
			if err != nil {
				return nil, err
			}
			if !locked.CanEdit {
				return locked, nil
			}
			if err := s.refreshLocked(ctx, tx, locked, actor); err != nil {
				return nil, err
			}
			now := s.now()
			locked.CanEdit = false
			locked.ClosedAt = &now
			locked.ClosedBy = strPtr(actor.UserID)
			if err := s.statementRepo.UpdateStatement(ctx, tx, *locked); err != nil {
				return nil, err
			}
			closedNow = true
			return locked, nil
		})
	})
	if err != nil {
		return nil, err
	}
	if closedNow {
		s.emitAudit(ctx, actor, domain.ActionStatementClose, "ACCOUNT_STATEMENT", st.StatementID, map[string]any{
			"date":             st.StatementDate.Format(time.DateOnly),
			"remainingBalance": st.RemainingBalance.String(),
		})
	}
	return st, nil
}

func (s *statementService) UnlockDay(ctx context.Context, statementID string, actor domain.Actor) (*domain.AccountStatement, error) {
	if err := requireAdmin(actor, "unlocking a day"); err != nil {
		return nil, err
	}
	unlocked := false
	st, err := inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.AccountStatement, error) {
		locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, statementID)
		if err != nil {
			return nil, err
		}
		if locked.CanEdit {
			return locked, nil
		}
		locked.CanEdit = true
		locked.ClosedAt = nil
		locked.ClosedBy = nil
		locked.Touch(actor.UserID, s.now())
		if err := s.statementRepo.UpdateStatement(ctx, tx, *locked); err != nil {
			return nil, err
		}
		unlocked = true
		return locked, nil
	})
	if err != nil {
		return nil, err
	}
	if unlocked {
		s.emitAudit(ctx, actor, domain.ActionStatementUnlock, "ACCOUNT_STATEMENT", statementID, nil)
	}
	return st, nil
}

// DeleteStatement removes a statement that has neither lines nor payments.
func (s *statementService) DeleteStatement(ctx context.Context, statementID string, actor domain.Actor) error {
	if err := requireAdmin(actor, "deleting a statement"); err != nil {
		return err
	}
	_, err := inTx(ctx, s.txm, func(tx pgx.Tx) (struct{}, error) {
		locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, statementID)
		if err != nil {
			return struct{}{}, err
		}
		facts, err := s.ticketRepo.ListJugadaFactsForDay(ctx, tx, locked.StatementDate, locked.Key())
		if err != nil {
			return struct{}{}, err
		}
		payments, err := s.paymentRepo.ListPaymentsByStatement(ctx, tx, statementID, true)
		if err != nil {
			return struct{}{}, err
		}
		if locked.TicketCount > 0 || len(facts) > 0 || len(payments) > 0 {
			return struct{}{}, apperrors.Newf(apperrors.ErrInvalidState, "statement %s is not empty", statementID)
		}
		return struct{}{}, s.statementRepo.DeleteStatement(ctx, tx, statementID)
	})
	if err != nil {
		return err
	}
	s.emitAudit(ctx, actor, domain.ActionStatementDelete, "ACCOUNT_STATEMENT", statementID, nil)
	return nil
}

// sellersOf lists the distinct seller keys of a set of lines in sale order.
func sellersOf(facts []domain.JugadaFact) []domain.DimensionKey {
	seen := make(map[string]struct{})
	var keys []domain.DimensionKey
	for _, f := range facts {
		if _, ok := seen[f.VendedorID]; ok {
			continue
		}
		seen[f.VendedorID] = struct{}{}
		keys = append(keys, domain.DimensionKey{
			BancaID:    strPtr(f.BancaID),
			VentanaID:  strPtr(f.VentanaID),
			VendedorID: strPtr(f.VendedorID),
		})
	}
	return keys
}

// GetDailySummary totals the seller statements of a day under the filters.
// Every seller with sales that day gets a statement, and editable statements
// are recomputed before they are summed.
func (s *statementService) GetDailySummary(ctx context.Context, date time.Time, bancaID, ventanaID *string) (*domain.DailySummary, error) {
	day := calendarDate(date)
	facts, err := s.ticketRepo.ListJugadaFactsForDay(ctx, nil, day, domain.DimensionKey{BancaID: bancaID, VentanaID: ventanaID})
	if err != nil {
		return nil, err
	}
	for _, key := range sellersOf(facts) {
		_, err := retry.DoValue(ctx, s.Retry, func(ctx context.Context) (*domain.AccountStatement, error) {
			return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.AccountStatement, error) {
				st, err := s.findOrCreate(ctx, tx, day, key, domain.SystemActor)
				if err != nil {
					return nil, err
				}
				locked, err := s.statementRepo.FindStatementForUpdate(ctx, tx, st.StatementID)
				if err != nil {
					return nil, err
				}
				if !locked.CanEdit {
					return locked, nil
				}
				return locked, s.refreshLocked(ctx, tx, locked, domain.SystemActor)
			})
		})
		if err != nil {
			return nil, err
		}
	}

	statements, err := s.statementRepo.ListStatementsByDate(ctx, day, domain.DimensionVendedor, bancaID, ventanaID)
	if err != nil {
		return nil, err
	}
	sum := &domain.DailySummary{
		Date:               day,
		BancaID:            bancaID,
		VentanaID:          ventanaID,
		TotalSales:         decimal.Zero,
		TotalPayouts:       decimal.Zero,
		ListeroCommission:  decimal.Zero,
		VendedorCommission: decimal.Zero,
		Balance:            decimal.Zero,
		TotalPaid:          decimal.Zero,
		TotalCollected:     decimal.Zero,
		RemainingBalance:   decimal.Zero,
	}
	for _, st := range statements {
		sum.StatementCount++
		if st.IsSettled {
			sum.SettledCount++
		} else {
			sum.PendingCount++
		}
		sum.TicketCount += st.TicketCount
		sum.TotalSales = sum.TotalSales.Add(st.TotalSales)
		sum.TotalPayouts = sum.TotalPayouts.Add(st.TotalPayouts)
		sum.ListeroCommission = sum.ListeroCommission.Add(st.ListeroCommission)
		sum.VendedorCommission = sum.VendedorCommission.Add(st.VendedorCommission)
		sum.Balance = sum.Balance.Add(st.Balance)
		sum.TotalPaid = sum.TotalPaid.Add(st.TotalPaid)
		sum.TotalCollected = sum.TotalCollected.Add(st.TotalCollected)
		sum.RemainingBalance = sum.RemainingBalance.Add(st.RemainingBalance)
	}
	return sum, nil
}
