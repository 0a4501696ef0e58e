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
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const depositRequestPrefix = "deposit:"

type bankDepositService struct {
	BaseService
	txm         portsrepo.TransactionManager
	depositRepo portsrepo.DepositRepositoryFacade
	ledger      portssvc.LedgerSvcFacade
	guard       portssvc.IdempotencyGuard
	guardTTL    time.Duration
}

// NewBankDepositService creates the deposit service. guard may be nil.
func NewBankDepositService(txm portsrepo.TransactionManager, depositRepo portsrepo.DepositRepositoryFacade, ledger portssvc.LedgerSvcFacade, guard portssvc.IdempotencyGuard, guardTTL time.Duration, opts ...BaseOption) portssvc.DepositSvcFacade {
	return &bankDepositService{
		BaseService: newBaseService(opts...),
		txm:         txm,
		depositRepo: depositRepo,
		ledger:      ledger,
		guard:       guard,
		guardTTL:    guardTTL,
	}
}

var _ portssvc.DepositSvcFacade = (*bankDepositService)(nil)

func (s *bankDepositService) GetDeposit(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	return s.depositRepo.FindDepositByID(ctx, depositID)
}

func (s *bankDepositService) CreateDeposit(ctx context.Context, in domain.NewBankDeposit, actor domain.Actor) (*domain.DepositResult, error) {
	if in.BancaID == "" || in.RequestID == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "banca id and request id are required")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "deposit amount must be positive")
	}
	if !actor.CanActOnVentana(nil, &in.BancaID) {
		return nil, apperrors.Newf(apperrors.ErrForbidden, "actor cannot deposit for banca %s", in.BancaID)
	}

	if replay, err := s.replay(ctx, in.RequestID); err == nil {
		return replay, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	release, err := acquireGuard(ctx, &s.BaseService, s.guard, depositRequestPrefix+in.RequestID, s.guardTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	acc, err := s.ledger.GetOrCreateAccount(ctx, domain.OwnerBanca, in.BancaID, in.CurrencyCode, actor)
	if err != nil {
		return nil, err
	}

	depositDate := in.DepositDate
	if depositDate.IsZero() {
		depositDate = s.now()
	}
	entryRequestID := depositRequestPrefix + in.RequestID

	result, err := retry.DoValue(ctx, s.Retry, func(ctx context.Context) (*domain.DepositResult, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.DepositResult, error) {
			depositID := uuid.NewString()
			posted, err := s.ledger.AppendInTx(ctx, tx, acc.AccountID, domain.NewLedgerEntry{
				EntryType:     domain.EntryDeposit,
				ValueSigned:   in.Amount,
				ReferenceType: domain.RefBankDeposit,
				ReferenceID:   depositID,
				EntryDate:     depositDate,
				Description:   in.Reference,
				RequestID:     &entryRequestID,
				CreatedBy:     actor.UserID,
			})
			if err != nil {
				return nil, err
			}
			if posted.Replayed {
				return nil, apperrors.Newf(apperrors.ErrDuplicate, "deposit %s already posted", in.RequestID)
			}
			deposit := domain.BankDeposit{
				DepositID:     depositID,
				BancaID:       in.BancaID,
				AccountID:     acc.AccountID,
				Amount:        in.Amount,
				Reference:     in.Reference,
				DepositDate:   depositDate,
				RequestID:     in.RequestID,
				LedgerEntryID: posted.Entry.EntryID,
				CreatedAt:     posted.Entry.CreatedAt,
				CreatedBy:     actor.UserID,
			}
			if err := s.depositRepo.InsertDepositInTx(ctx, tx, deposit); err != nil {
				return nil, err
			}
			return &domain.DepositResult{Deposit: deposit, Entry: posted.Entry}, nil
		})
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		if replay, replayErr := s.replay(ctx, in.RequestID); replayErr == nil {
			return replay, nil
		}
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create bank deposit", slog.String("layer", "deposit"), slog.String("banca_id", in.BancaID))
		return nil, err
	}

	s.LogInfo(ctx, "Bank deposit posted",
		slog.String("layer", "deposit"),
		slog.String("deposit_id", result.Deposit.DepositID),
		slog.String("amount", in.Amount.String()))
	s.emitAudit(ctx, actor, domain.ActionDepositCreate, "BANK_DEPOSIT", result.Deposit.DepositID, map[string]any{
		"bancaId":   in.BancaID,
		"amount":    in.Amount.String(),
		"requestId": in.RequestID,
	})
	return result, nil
}

func (s *bankDepositService) replay(ctx context.Context, requestID string) (*domain.DepositResult, error) {
	deposit, err := s.depositRepo.FindDepositByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	entry, err := s.ledger.FindEntryByRequestID(ctx, depositRequestPrefix+requestID)
	if err != nil {
		return nil, err
	}
	return &domain.DepositResult{Deposit: *deposit, Entry: *entry, Replayed: true}, nil
}

// acquireGuard takes the in-flight lock for key. A guard outage is logged and
// ignored since the database unique indexes still hold.
func acquireGuard(ctx context.Context, base *BaseService, guard portssvc.IdempotencyGuard, key string, ttl time.Duration) (func(), error) {
	noop := func() {}
	if guard == nil {
		return noop, nil
	}
	ok, err := guard.Acquire(ctx, key, ttl)
	if err != nil {
		base.GetLogger(ctx).Warn("Idempotency guard unavailable", slog.String("key", key), slog.String("error", err.Error()))
		return noop, nil
	}
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrDuplicate, "request %s is already in flight", key)
	}
	return func() {
		if err := guard.Release(context.WithoutCancel(ctx), key); err != nil {
			base.GetLogger(ctx).Warn("Failed to release idempotency guard", slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}
