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
	"github.com/SscSPs/banca_settlement/internal/utils/accounting"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	defaultEntryPageSize = 50
	maxEntryPageSize     = 200
)

// transferCreditSuffix distinguishes the credit leg's request id from the debit leg's.
const transferCreditSuffix = ":in"

// ledgerService is the only writer of accounts.balance.
type ledgerService struct {
	BaseService
	txm         portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	entryRepo   portsrepo.LedgerEntryRepositoryFacade
}

// NewLedgerService creates the ledger core.
func NewLedgerService(txm portsrepo.TransactionManager, accountRepo portsrepo.AccountRepositoryFacade, entryRepo portsrepo.LedgerEntryRepositoryFacade, opts ...BaseOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(opts...),
		txm:         txm,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return acc, nil
}

// GetOrCreateAccount is race safe: concurrent creators converge on the row
// that won the unique (owner_type, owner_id) index.
func (s *ledgerService) GetOrCreateAccount(ctx context.Context, ownerType domain.OwnerType, ownerID, currencyCode string, actor domain.Actor) (*domain.Account, error) {
	if !ownerType.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "unknown owner type %q", ownerType)
	}
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "owner id is required")
	}
	if currencyCode == "" {
		currencyCode = domain.DefaultCurrency
	}

	return retry.DoValue(ctx, s.Retry, func(ctx context.Context) (*domain.Account, error) {
		acc, err := s.accountRepo.FindAccountByOwner(ctx, ownerType, ownerID)
		if err == nil {
			if acc.CurrencyCode != currencyCode {
				return nil, apperrors.Newf(apperrors.ErrValidation, "account %s is in %s, not %s", acc.AccountID, acc.CurrencyCode, currencyCode)
			}
			return acc, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		now := s.now()
		newAcc := domain.Account{
			AccountID:    uuid.NewString(),
			OwnerType:    ownerType,
			OwnerID:      ownerID,
			CurrencyCode: currencyCode,
			IsActive:     true,
			Balance:      decimal.Zero,
			AuditFields:  domain.NewAuditFields(actor.UserID, now),
		}
		if err := s.accountRepo.InsertAccountIfAbsent(ctx, newAcc); err != nil {
			return nil, err
		}
		acc, err = s.accountRepo.FindAccountByOwner(ctx, ownerType, ownerID)
		if err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "Ledger account ready",
			slog.String("layer", "ledger"),
			slog.String("account_id", acc.AccountID),
			slog.String("owner_type", string(ownerType)),
			slog.String("owner_id", ownerID))
		return acc, nil
	})
}

func (s *ledgerService) FindEntryByRequestID(ctx context.Context, requestID string) (*domain.LedgerEntry, error) {
	return s.entryRepo.FindEntryByRequestID(ctx, nil, requestID)
}

func validateNewEntry(in domain.NewLedgerEntry) error {
	if in.EntryType == "" {
		return apperrors.Newf(apperrors.ErrValidation, "entry type is required")
	}
	if in.ValueSigned.IsZero() {
		return apperrors.Newf(apperrors.ErrValidation, "entry value must not be zero")
	}
	if in.RequestID != nil && *in.RequestID == "" {
		return apperrors.Newf(apperrors.ErrValidation, "request id must not be empty when given")
	}
	return nil
}

// replayFor returns the existing entry when a request id was already applied.
// A request id reused against another account is a collision, not a replay.
func replayFor(existing *domain.LedgerEntry, accountID string) (*domain.PostedEntry, error) {
	if existing.AccountID != accountID {
		return nil, apperrors.Newf(apperrors.ErrDuplicate, "request id already used on account %s", existing.AccountID)
	}
	return &domain.PostedEntry{Entry: *existing, Replayed: true}, nil
}

func (s *ledgerService) AddLedgerEntry(ctx context.Context, accountID string, in domain.NewLedgerEntry) (*domain.PostedEntry, error) {
	if err := validateNewEntry(in); err != nil {
		return nil, err
	}
	if in.RequestID != nil {
		existing, err := s.entryRepo.FindEntryByRequestID(ctx, nil, *in.RequestID)
		if err == nil {
			return replayFor(existing, accountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	posted, err := retry.DoValue(ctx, s.policyFor(in.RequestID != nil), func(ctx context.Context) (*domain.PostedEntry, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.PostedEntry, error) {
			return s.AppendInTx(ctx, tx, accountID, in)
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to append ledger entry", slog.String("layer", "ledger"), slog.String("account_id", accountID))
		}
		return nil, err
	}
	if !posted.Replayed {
		s.emitAudit(ctx, domain.Actor{UserID: in.CreatedBy}, domain.ActionLedgerAppend, "LEDGER_ENTRY", posted.Entry.EntryID, map[string]any{
			"accountId":   accountID,
			"entryType":   string(posted.Entry.EntryType),
			"valueSigned": posted.Entry.ValueSigned.String(),
		})
	}
	return posted, nil
}

// AppendInTx locks the account, inserts the entry and moves the cached
// balance, all inside tx.
func (s *ledgerService) AppendInTx(ctx context.Context, tx pgx.Tx, accountID string, in domain.NewLedgerEntry) (*domain.PostedEntry, error) {
	if err := validateNewEntry(in); err != nil {
		return nil, err
	}

	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID})
	if err != nil {
		return nil, err
	}
	acc, ok := locked[accountID]
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrNotFound, "account %s", accountID)
	}
	if !acc.IsActive {
		return nil, apperrors.Newf(apperrors.ErrInvalidState, "account %s is inactive", accountID)
	}

	if in.EntryID != "" {
		_, err := s.entryRepo.FindEntryByID(ctx, tx, in.EntryID)
		if err == nil {
			return nil, apperrors.Newf(apperrors.ErrDuplicate, "entry id %s already exists", in.EntryID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	// Re-checked under the account lock so two racing appends of one event
	// on the same account cannot both pass.
	if in.RequestID != nil {
		existing, err := s.entryRepo.FindEntryByRequestID(ctx, tx, *in.RequestID)
		if err == nil {
			return replayFor(existing, accountID)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	now := s.now()
	entryID := in.EntryID
	if entryID == "" {
		entryID = uuid.NewString()
	}
	entryDate := in.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}
	entry := domain.LedgerEntry{
		EntryID:           entryID,
		AccountID:         accountID,
		EntryType:         in.EntryType,
		ValueSigned:       in.ValueSigned,
		ReferenceType:     in.ReferenceType,
		ReferenceID:       in.ReferenceID,
		EntryDate:         entryDate,
		Description:       in.Description,
		RequestID:         in.RequestID,
		ReversalOfEntryID: in.ReversalOfEntryID,
		BalanceAfter:      acc.Balance.Add(in.ValueSigned),
		CreatedAt:         now,
		CreatedBy:         in.CreatedBy,
	}
	if err := s.entryRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}

	newBalance, err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, accountID, in.ValueSigned, in.CreatedBy, now)
	if err != nil {
		return nil, err
	}
	if !newBalance.Equal(entry.BalanceAfter) {
		return nil, fmt.Errorf("%w: balance of %s moved under lock (%s != %s)", apperrors.ErrInternal, accountID, newBalance, entry.BalanceAfter)
	}

	s.LogDebug(ctx, "Ledger entry appended",
		slog.String("layer", "ledger"),
		slog.String("action", "append"),
		slog.String("entry_id", entry.EntryID),
		slog.String("account_id", accountID),
		slog.String("balance_after", newBalance.String()))
	return &domain.PostedEntry{Entry: entry}, nil
}

// ReverseEntry posts the negation of an entry. A second reversal of the same
// entry returns the first one.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, actor domain.Actor, reason string, requestID *string) (*domain.PostedEntry, error) {
	if err := requireAdmin(actor, "ledger reversal"); err != nil {
		return nil, err
	}
	original, err := s.entryRepo.FindEntryByID(ctx, nil, entryID)
	if err != nil {
		return nil, err
	}
	if original.IsReversal() {
		return nil, apperrors.Newf(apperrors.ErrInvalidState, "entry %s is itself a reversal", entryID)
	}
	if existing, err := s.entryRepo.FindReversalOf(ctx, entryID); err == nil {
		return &domain.PostedEntry{Entry: *existing, Replayed: true}, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if requestID == nil {
		requestID = strPtr("reversal:" + entryID)
	}
	description := reason
	if description == "" {
		description = "Reversal of " + entryID
	}
	posted, err := s.AddLedgerEntry(ctx, original.AccountID, domain.NewLedgerEntry{
		EntryType:         domain.EntryReversal,
		ValueSigned:       original.ValueSigned.Neg(),
		ReferenceType:     domain.RefLedgerEntry,
		ReferenceID:       original.EntryID,
		Description:       description,
		RequestID:         requestID,
		ReversalOfEntryID: &original.EntryID,
		CreatedBy:         actor.UserID,
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost the race on the one-reversal-per-entry index.
		if existing, findErr := s.entryRepo.FindReversalOf(ctx, entryID); findErr == nil {
			return &domain.PostedEntry{Entry: *existing, Replayed: true}, nil
		}
	}
	if err != nil {
		return nil, err
	}
	if !posted.Replayed {
		s.emitAudit(ctx, actor, domain.ActionLedgerReverse, "LEDGER_ENTRY", entryID, map[string]any{
			"reversalEntryId": posted.Entry.EntryID,
			"reason":          reason,
		})
	}
	return posted, nil
}

// PostTransfer books an inter-account payment document as a TRANSFER_OUT on
// the source and a TRANSFER_IN on the destination in one transaction.
func (s *ledgerService) PostTransfer(ctx context.Context, in domain.TransferInput, actor domain.Actor) (*domain.Transfer, error) {
	if in.FromAccountID == "" || in.ToAccountID == "" {
		return nil, apperrors.Newf(apperrors.ErrValidation, "both accounts are required")
	}
	if in.FromAccountID == in.ToAccountID {
		return nil, apperrors.Newf(apperrors.ErrValidation, "cannot transfer to the same account")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.Newf(apperrors.ErrValidation, "transfer amount must be positive")
	}
	debitValue, _ := accounting.CalculateSignedAmount(domain.EntryTransferOut, in.Amount)
	creditValue, _ := accounting.CalculateSignedAmount(domain.EntryTransferIn, in.Amount)

	var creditRequestID *string
	if in.RequestID != nil {
		creditRequestID = strPtr(*in.RequestID + transferCreditSuffix)
		if replay, err := s.findTransfer(ctx, *in.RequestID, *creditRequestID); err == nil {
			return replay, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	transfer, err := retry.DoValue(ctx, s.policyFor(in.RequestID != nil), func(ctx context.Context) (*domain.Transfer, error) {
		return inTx(ctx, s.txm, func(tx pgx.Tx) (*domain.Transfer, error) {
			// Both rows locked up front, in id order, so opposite transfers cannot deadlock.
			locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{in.FromAccountID, in.ToAccountID})
			if err != nil {
				return nil, err
			}
			from, okFrom := locked[in.FromAccountID]
			to, okTo := locked[in.ToAccountID]
			if !okFrom || !okTo {
				return nil, apperrors.Newf(apperrors.ErrNotFound, "transfer account")
			}
			if from.CurrencyCode != to.CurrencyCode {
				return nil, apperrors.Newf(apperrors.ErrValidation, "currency mismatch %s -> %s", from.CurrencyCode, to.CurrencyCode)
			}

			reference := in.Reference
			if reference == "" {
				reference = uuid.NewString()
			}
			debit, err := s.AppendInTx(ctx, tx, from.AccountID, domain.NewLedgerEntry{
				EntryType:     domain.EntryTransferOut,
				ValueSigned:   debitValue,
				ReferenceType: domain.RefTransfer,
				ReferenceID:   reference,
				EntryDate:     in.EntryDate,
				Description:   in.Description,
				RequestID:     in.RequestID,
				CreatedBy:     actor.UserID,
			})
			if err != nil {
				return nil, err
			}
			credit, err := s.AppendInTx(ctx, tx, to.AccountID, domain.NewLedgerEntry{
				EntryType:     domain.EntryTransferIn,
				ValueSigned:   creditValue,
				ReferenceType: domain.RefTransfer,
				ReferenceID:   reference,
				EntryDate:     in.EntryDate,
				Description:   in.Description,
				RequestID:     creditRequestID,
				CreatedBy:     actor.UserID,
			})
			if err != nil {
				return nil, err
			}
			return &domain.Transfer{Debit: debit.Entry, Credit: credit.Entry, Replayed: debit.Replayed && credit.Replayed}, nil
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post transfer",
			slog.String("layer", "ledger"),
			slog.String("from", in.FromAccountID),
			slog.String("to", in.ToAccountID))
		return nil, err
	}
	if !transfer.Replayed {
		s.emitAudit(ctx, actor, domain.ActionLedgerTransfer, "LEDGER_ENTRY", transfer.Debit.EntryID, map[string]any{
			"from":   in.FromAccountID,
			"to":     in.ToAccountID,
			"amount": in.Amount.String(),
		})
	}
	return transfer, nil
}

func (s *ledgerService) findTransfer(ctx context.Context, debitRequestID, creditRequestID string) (*domain.Transfer, error) {
	debit, err := s.entryRepo.FindEntryByRequestID(ctx, nil, debitRequestID)
	if err != nil {
		return nil, err
	}
	credit, err := s.entryRepo.FindEntryByRequestID(ctx, nil, creditRequestID)
	if err != nil {
		return nil, err
	}
	return &domain.Transfer{Debit: *debit, Credit: *credit, Replayed: true}, nil
}

// CalculateBalance re-sums the ledger without taking locks.
func (s *ledgerService) CalculateBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	totals, err := s.entryRepo.SumEntries(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Sum, nil
}

func (s *ledgerService) GetBalanceSummary(ctx context.Context, accountID string) (*domain.BalanceSummary, error) {
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	totals, err := s.entryRepo.SumEntries(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &domain.BalanceSummary{
		AccountID:     acc.AccountID,
		OwnerType:     acc.OwnerType,
		OwnerID:       acc.OwnerID,
		CurrencyCode:  acc.CurrencyCode,
		CachedBalance: acc.Balance,
		LedgerBalance: totals.Sum,
		TotalCredits:  totals.Credits,
		TotalDebits:   totals.Debits,
		EntryCount:    totals.Count,
		LastEntryAt:   totals.LastEntryAt,
		IsConsistent:  acc.Balance.Equal(totals.Sum),
	}, nil
}

func (s *ledgerService) ReconcileAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	summary, err := s.GetBalanceSummary(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	drift := summary.Drift()
	if !drift.IsZero() {
		s.GetLogger(ctx).Warn("Cached balance drifted from ledger",
			slog.String("layer", "ledger"),
			slog.String("action", "reconcile"),
			slog.String("account_id", accountID),
			slog.String("drift", drift.String()))
	}
	return drift, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}
	entries, next, err := s.entryRepo.ListEntriesByAccount(ctx, accountID, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, next, nil
}
