package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager     TransactionManager
	AccountRepo   AccountRepositoryFacade
	EntryRepo     LedgerEntryRepositoryFacade
	DepositRepo   DepositRepositoryFacade
	SnapshotRepo  SnapshotRepositoryFacade
	StatementRepo StatementRepositoryFacade
	PaymentRepo   PaymentRepositoryFacade
	SorteoRepo    SorteoRepositoryFacade
	TicketRepo    TicketRepositoryFacade
	HierarchyRepo HierarchyRepositoryFacade
}
