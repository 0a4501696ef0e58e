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
)

const paymentGuardPrefix = "payment:"

type paymentService struct {
	BaseService
	txm           portsrepo.TransactionManager
	statementRepo portsrepo.StatementRepositoryFacade
	paymentRepo   portsrepo.PaymentRepositoryFacade
	statements    portssvc.StatementSvcFacade
	guard         portssvc.IdempotencyGuard
	guardTTL      time.Duration
	// guardZeroMovement rejects reversals that leave a day with no movement at all.
	guardZeroMovement bool
}

// NewPaymentService creates the payment side of the closure engine. guard may
// be nil. guardZeroMovement enables the degenerate reversal check.
func NewPaymentService(
	txm portsrepo.TransactionManager,
	statementRepo portsrepo.StatementRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	statements portssvc.StatementSvcFacade,
	guard portssvc.IdempotencyGuard,
	guardTTL time.Duration,
	guardZeroMovement bool,
	opts ...BaseOption,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:       newBaseService(opts...),
		txm:               txm,
		statementRepo:     statementRepo,
		paymentRepo:       paymentRepo,
		statements:        statements,
		guard:             guard,
		guardTTL:          guardTTL,
		guardZeroMovement: guardZeroMovement,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func validatePayment(in domain.NewAccountPayment) error {
	if !in.Amount.IsPositive() {
		return apperrors.Newf(apperrors.ErrValidation, "payment amount must be positive")
	}
	switch in.Type {
	case domain.PaymentTypePayment, domain.PaymentTypeCollection:
	default:
		return apperrors.Newf(apperrors.ErrValidation, "unknown payment type %q", in.Type)
	}
	switch in.Method {
	case domain.MethodCash, domain.MethodTransfer, domain.MethodCheck, domain.MethodOther:
	default:
		return apperrors.Newf(apperrors.ErrValidation, "unknown payment method %q", in.Method)
	}
	if in.IdempotencyKey != nil && *in.IdempotencyKey == "" {
		return apperrors.Newf(apperrors.ErrValidation, "idempotency key must not be empty when given")
	}
	return nil
}

func (s *paymentService) replay(ctx context.Context, key string) (*domain.PaymentResult, error) {
	existing, err := s.paymentRepo.FindPaymentByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	st, err := s.statementRepo.FindStatementByID(ctx, nil, existing.StatementID)
	if err != nil {
		return nil, err
	}
	return &domain.PaymentResult{Payment: *existing, Statement: *st, Replayed: true}, nil
}

// CreatePayment applies a payment or collection to the day's statement. The
// insert and the recomputation of paid, collected, remaining and settled
// happen in one transaction under the statement row lock.
func (s *paymentService) CreatePayment(ctx context.Context, in domain.NewAccountPayment, actor domain.Actor) (*domain.PaymentResult, error) {
	if in.Method == "" {
		in.Method = domain.MethodCash
	}
	if err := validatePayment(in); err != nil {
		return nil, err
	}
	day := calendarDate(in.Date)
	if day.After(s.today()) {
		return nil, apperrors.Newf(apperrors.ErrValidation, "payments cannot be future-dated (%s)", day.Format(time.DateOnly))
	}
	paymentDate := s.now()
	if in.PaymentDate != nil {
		if in.PaymentDate.After(paymentDate) {
			return nil, apperrors.Newf(apperrors.ErrValidation, "payment date is in the future")
		}
		paymentDate = in.PaymentDate.UTC()
	}

	if in.IdempotencyKey != nil {
		if replay, err := s.replay(ctx, *in.IdempotencyKey); err == nil {
			return replay, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		release, err := acquireGuard(ctx, &s.BaseService, s.guard, paymentGuardPrefix+*in.IdempotencyKey, s.guardTTL)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	st, err := s.statements.FindOrCreate(ctx, day, in.Key, actor)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOnVentana(st.VentanaID, st.BancaID) {
		return nil, apperrors.Newf(apperrors.ErrForbidden, "actor cannot register payments on statement %s", st.StatementID)
	}
	if !st.CanEdit {
		return nil, apperrors.Newf(apperrors.ErrInvalidState, "statement %s is closed", st.StatementID)
	}

	result, err := retry.DoValue(ctx, s.policyFor(in.IdempotencyKey != nil), func(ctx context.Context) (*domain.PaymentResult, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.PaymentResult, error) {
			locked, err := s.statements.RefreshInTx(ctx, tx, domain.StatementRef{Date: day, Key: st.Key()}, actor)
			if err != nil {
				return nil, err
			}
			if !locked.CanEdit {
				return nil, apperrors.Newf(apperrors.ErrInvalidState, "statement %s is closed", locked.StatementID)
			}

			now := s.now()
			payment := domain.AccountPayment{
				PaymentID:      uuid.NewString(),
				StatementID:    locked.StatementID,
				StatementDate:  locked.StatementDate,
				BancaID:        locked.BancaID,
				VentanaID:      locked.VentanaID,
				VendedorID:     locked.VendedorID,
				Amount:         in.Amount,
				Type:           in.Type,
				Method:         in.Method,
				Notes:          in.Notes,
				IsFinal:        in.IsFinal,
				IdempotencyKey: in.IdempotencyKey,
				PaymentDate:    paymentDate,
				CreatedAt:      now,
				CreatedBy:      actor.UserID,
			}
			if err := s.paymentRepo.InsertPaymentInTx(ctx, tx, payment); err != nil {
				return nil, err
			}

			payments, err := s.paymentRepo.ListPaymentsByStatement(ctx, tx, locked.StatementID, false)
			if err != nil {
				return nil, err
			}
			accounting.DeriveStatement(locked, accounting.SumPayments(payments))
			if in.IsFinal {
				if !locked.IsSettled {
					return nil, apperrors.Newf(apperrors.ErrValidation, "final payment leaves %s remaining", locked.RemainingBalance.StringFixed(2))
				}
				locked.CanEdit = false
				locked.ClosedAt = &now
				locked.ClosedBy = strPtr(actor.UserID)
			}
			locked.Touch(actor.UserID, now)
			if err := s.statementRepo.UpdateStatement(ctx, tx, *locked); err != nil {
				return nil, err
			}
			return &domain.PaymentResult{Payment: payment, Statement: *locked}, nil
		})
	})
	if errors.Is(err, apperrors.ErrDuplicate) && in.IdempotencyKey != nil {
		if replay, replayErr := s.replay(ctx, *in.IdempotencyKey); replayErr == nil {
			return replay, nil
		}
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Failed to create payment", slog.String("layer", "closure"), slog.String("statement_id", st.StatementID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment applied",
		slog.String("layer", "closure"),
		slog.String("action", "create_payment"),
		slog.String("payment_id", result.Payment.PaymentID),
		slog.String("remaining", result.Statement.RemainingBalance.String()))
	s.emitAudit(ctx, actor, domain.ActionPaymentCreate, "ACCOUNT_PAYMENT", result.Payment.PaymentID, map[string]any{
		"statementId": result.Statement.StatementID,
		"type":        string(in.Type),
		"amount":      in.Amount.String(),
		"isFinal":     in.IsFinal,
	})
	return result, nil
}

// ReversePayment flips the payment to reversed and recomputes its statement.
// The row is never deleted.
func (s *paymentService) ReversePayment(ctx context.Context, paymentID string, actor domain.Actor, reason string) (*domain.PaymentResult, error) {
	if err := requireAdmin(actor, "payment reversal"); err != nil {
		return nil, err
	}
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	result, err := inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.PaymentResult, error) {
		st, err := s.statementRepo.FindStatementForUpdate(ctx, tx, payment.StatementID)
		if err != nil {
			return nil, err
		}
		locked, err := s.paymentRepo.FindPaymentForUpdate(ctx, tx, paymentID)
		if err != nil {
			return nil, err
		}
		if locked.IsReversed {
			return &domain.PaymentResult{Payment: *locked, Statement: *st, Replayed: true}, nil
		}
		if !st.CanEdit {
			return nil, apperrors.Newf(apperrors.ErrInvalidState, "statement %s is closed", st.StatementID)
		}

		payments, err := s.paymentRepo.ListPaymentsByStatement(ctx, tx, st.StatementID, false)
		if err != nil {
			return nil, err
		}
		remaining := make([]domain.AccountPayment, 0, len(payments))
		for _, p := range payments {
			if p.PaymentID != paymentID {
				remaining = append(remaining, p)
			}
		}
		accounting.DeriveStatement(st, accounting.SumPayments(remaining))
		if s.guardZeroMovement && accounting.IsZeroAmount(st.RemainingBalance) && st.TotalPaid.IsZero() && st.TotalCollected.IsZero() {
			return nil, apperrors.Newf(apperrors.ErrValidation, "reversal would leave statement %s with no movement", st.StatementID)
		}

		now := s.now()
		if err := s.paymentRepo.MarkPaymentReversedInTx(ctx, tx, paymentID, actor.UserID, reason, now); err != nil {
			return nil, err
		}
		locked.IsReversed = true
		locked.ReversedAt = &now
		locked.ReversedBy = strPtr(actor.UserID)
		locked.ReversalReason = strPtr(reason)

		st.Touch(actor.UserID, now)
		if err := s.statementRepo.UpdateStatement(ctx, tx, *st); err != nil {
			return nil, err
		}
		return &domain.PaymentResult{Payment: *locked, Statement: *st}, nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrInvalidState) {
			s.LogError(ctx, err, "Failed to reverse payment", slog.String("layer", "closure"), slog.String("payment_id", paymentID))
		}
		return nil, err
	}
	if !result.Replayed {
		s.emitAudit(ctx, actor, domain.ActionPaymentReverse, "ACCOUNT_PAYMENT", paymentID, map[string]any{
			"statementId": result.Statement.StatementID,
			"reason":      reason,
		})
	}
	return result, nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.AccountPayment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

func (s *paymentService) ListPayments(ctx context.Context, statementID string, includeReversed bool) ([]domain.AccountPayment, error) {
	if _, err := s.statementRepo.FindStatementByID(ctx, nil, statementID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByStatement(ctx, nil, statementID, includeReversed)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []domain.AccountPayment{}
	}
	return payments, nil
}
