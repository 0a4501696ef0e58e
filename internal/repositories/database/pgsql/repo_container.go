package pgsql

import (
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &BaseRepository{Pool: dbPool},
		AccountRepo:   newPgxAccountRepository(dbPool),
		EntryRepo:     newPgxLedgerEntryRepository(dbPool),
		DepositRepo:   newPgxDepositRepository(dbPool),
		SnapshotRepo:  newPgxSnapshotRepository(dbPool),
		StatementRepo: newPgxStatementRepository(dbPool),
		PaymentRepo:   newPgxPaymentRepository(dbPool),
		SorteoRepo:    newPgxSorteoRepository(dbPool),
		TicketRepo:    newPgxTicketRepository(dbPool),
		HierarchyRepo: newPgxHierarchyRepository(dbPool),
	}
}
