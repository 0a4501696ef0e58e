package services

import (
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/platform/config"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// audit and guard may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, audit portssvc.AuditSink, guard portssvc.IdempotencyGuard) *portssvc.ServiceContainer {
	policy := retry.DefaultPolicy
	policy.MaxAttempts = cfg.RetryMaxAttempts
	policy.BaseDelay = cfg.RetryBaseDelay
	policy.MaxDelay = cfg.RetryMaxDelay

	base := []BaseOption{
		WithAuditSink(audit),
		WithRetryPolicy(policy),
		WithLocation(cfg.BusinessLocation),
	}

	container := &portssvc.ServiceContainer{}

	// Ledger first since deposits post through it
	container.Ledger = NewLedgerService(repos.TxManager, repos.AccountRepo, repos.EntryRepo, base...)
	container.Deposit = NewBankDepositService(repos.TxManager, repos.DepositRepo, container.Ledger, guard, cfg.IdempotencyTTL, base...)
	container.Snapshot = NewSnapshotService(repos.AccountRepo, repos.EntryRepo, repos.SnapshotRepo, base...)

	container.Commission = NewCommissionService(repos.HierarchyRepo, cfg.DefaultCommissionPercent, base...)
	container.Statement = NewStatementService(
		repos.TxManager,
		repos.StatementRepo,
		repos.PaymentRepo,
		repos.TicketRepo,
		repos.SorteoRepo,
		repos.HierarchyRepo,
		cfg.DefaultCommissionPercent,
		base...,
	)
	container.Payment = NewPaymentService(
		repos.TxManager,
		repos.StatementRepo,
		repos.PaymentRepo,
		container.Statement,
		guard,
		cfg.IdempotencyTTL,
		cfg.ReversalGuardZeroMovement,
		base...,
	)

	container.Ticket = NewTicketService(repos.TxManager, repos.SorteoRepo, repos.TicketRepo, repos.HierarchyRepo, cfg.DefaultCommissionPercent, base...)
	container.Sorteo = NewSorteoService(repos.TxManager, repos.SorteoRepo, repos.TicketRepo, container.Statement, cfg.SettlementTxTimeout, base...)

	return container
}
