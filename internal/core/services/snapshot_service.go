package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
)

type snapshotService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	entryRepo    portsrepo.LedgerEntryReader
	snapshotRepo portsrepo.SnapshotRepositoryFacade
}

// NewSnapshotService creates the daily balance snapshot service.
func NewSnapshotService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.LedgerEntryReader, snapshotRepo portsrepo.SnapshotRepositoryFacade, opts ...BaseOption) portssvc.SnapshotSvcFacade {
	return &snapshotService{
		BaseService:  newBaseService(opts...),
		accountRepo:  accountRepo,
		entryRepo:    entryRepo,
		snapshotRepo: snapshotRepo,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

// TakeDailySnapshot recomputes the day from ledger entries, never from the
// cached balance, and upserts it.
func (s *snapshotService) TakeDailySnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	day := domain.BusinessDate(date, time.UTC)
	from, to := domain.DayBounds(day, s.Location)

	mv, err := s.entryRepo.SumEntriesBetween(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum ledger day", slog.String("account_id", accountID))
		return nil, err
	}
	snap := domain.DailyBalanceSnapshot{
		AccountID:      accountID,
		SnapshotDate:   day,
		OpeningBalance: mv.Opening,
		TotalDebits:    mv.Debits,
		TotalCredits:   mv.Credits,
		ClosingBalance: mv.Opening.Add(mv.Credits).Sub(mv.Debits),
		EntryCount:     mv.EntryCount,
		CreatedAt:      s.now(),
	}
	if err := s.snapshotRepo.UpsertSnapshot(ctx, snap); err != nil {
		s.LogError(ctx, err, "Failed to upsert daily snapshot", slog.String("account_id", accountID))
		return nil, err
	}
	s.emitAudit(ctx, domain.SystemActor, domain.ActionSnapshotTake, "ACCOUNT", accountID, map[string]any{
		"date":    day.Format(time.DateOnly),
		"closing": snap.ClosingBalance.String(),
	})
	return &snap, nil
}

func (s *snapshotService) GetSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error) {
	return s.snapshotRepo.FindSnapshot(ctx, accountID, domain.BusinessDate(date, time.UTC))
}
