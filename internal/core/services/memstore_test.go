package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portsrepo "github.com/SscSPs/banca_settlement/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuditSink ---
type MockAuditSink struct {
	mock.Mock
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

func (m *MockAuditSink) Record(ctx context.Context, rec domain.AuditRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// Actions lists the recorded audit actions in order.
func (m *MockAuditSink) Actions() []string {
	var out []string
	for _, c := range m.Calls {
		if c.Method == "Record" {
			out = append(out, c.Arguments.Get(1).(domain.AuditRecord).Action)
		}
	}
	return out
}

func newAuditSink() *MockAuditSink {
	sink := &MockAuditSink{}
	sink.On("Record", mock.Anything, mock.Anything).Return(nil)
	return sink
}

// memState is everything the fake database holds. It is cloned on Begin and
// restored on Rollback.
type memState struct {
	accounts       map[string]domain.Account
	entries        []domain.LedgerEntry
	deposits       map[string]domain.BankDeposit
	snapshots      map[string]domain.DailyBalanceSnapshot
	statements     map[string]domain.AccountStatement
	payments       []domain.AccountPayment
	sorteos        map[string]domain.Sorteo
	multipliers    map[string]domain.Multiplier
	tickets        map[string]domain.Ticket
	ticketOrder    []string
	ticketPayments []domain.TicketPayment
}

func newMemState() *memState {
	return &memState{
		accounts:    map[string]domain.Account{},
		deposits:    map[string]domain.BankDeposit{},
		snapshots:   map[string]domain.DailyBalanceSnapshot{},
		statements:  map[string]domain.AccountStatement{},
		sorteos:     map[string]domain.Sorteo{},
		multipliers: map[string]domain.Multiplier{},
		tickets:     map[string]domain.Ticket{},
	}
}

func copyTicket(t domain.Ticket) domain.Ticket {
	t.Jugadas = append([]domain.Jugada(nil), t.Jugadas...)
	return t
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	c.entries = append(c.entries, s.entries...)
	for k, v := range s.deposits {
		c.deposits[k] = v
	}
	for k, v := range s.snapshots {
		c.snapshots[k] = v
	}
	for k, v := range s.statements {
		c.statements[k] = v
	}
	c.payments = append(c.payments, s.payments...)
	for k, v := range s.sorteos {
		c.sorteos[k] = v
	}
	for k, v := range s.multipliers {
		c.multipliers[k] = v
	}
	for k, v := range s.tickets {
		c.tickets[k] = copyTicket(v)
	}
	c.ticketOrder = append(c.ticketOrder, s.ticketOrder...)
	c.ticketPayments = append(c.ticketPayments, s.ticketPayments...)
	return c
}

// fakeTx holds the row locks it took until Commit or Rollback, the way
// SELECT ... FOR UPDATE does. Rollback restores the whole store to the
// snapshot taken at Begin, so tests that roll back must not overlap other
// transactions.
type fakeTx struct {
	pgx.Tx
	snapshot   *memState
	held       map[string]*sync.Mutex
	committed  bool
	rolledBack bool
}

// memStore implements every repository port plus the transaction manager.
type memStore struct {
	mu    sync.Mutex
	state *memState

	rowLocks map[string]*sync.Mutex

	vendedores map[string]domain.VendedorAssignment
	ventanas   map[string]domain.VentanaAssignment
	policies   map[string]*domain.CommissionPolicy

	begins       int
	rollbacks    int
	lastTimeout  time.Duration
	failOnUpdate error // returned by the next UpdateStatement call
}

func newMemStore() *memStore {
	return &memStore{
		state:      newMemState(),
		rowLocks:   map[string]*sync.Mutex{},
		vendedores: map[string]domain.VendedorAssignment{},
		ventanas:   map[string]domain.VentanaAssignment{},
		policies:   map[string]*domain.CommissionPolicy{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     m,
		AccountRepo:   m,
		EntryRepo:     m,
		DepositRepo:   m,
		SnapshotRepo:  m,
		StatementRepo: m,
		PaymentRepo:   m,
		SorteoRepo:    m,
		TicketRepo:    m,
		HierarchyRepo: m,
	}
}

var (
	_ portsrepo.TransactionManager          = (*memStore)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.LedgerEntryRepositoryFacade = (*memStore)(nil)
	_ portsrepo.DepositRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.SnapshotRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.StatementRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.PaymentRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.SorteoRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.TicketRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.HierarchyRepositoryFacade   = (*memStore)(nil)
)

func notFound(what, id string) error {
	return apperrors.Newf(apperrors.ErrNotFound, "%s %s not found", what, id)
}

func duplicate(what string) error {
	return apperrors.Newf(apperrors.ErrDuplicate, "%s already exists", what)
}

// --- seeding helpers ---

func (m *memStore) addVendedor(vendedorID, ventanaID, bancaID string) {
	m.vendedores[vendedorID] = domain.VendedorAssignment{VendedorID: vendedorID, VentanaID: ventanaID, BancaID: bancaID}
	m.ventanas[ventanaID] = domain.VentanaAssignment{VentanaID: ventanaID, BancaID: bancaID}
}

func (m *memStore) setPolicy(tier domain.CommissionOrigin, ownerID string, p *domain.CommissionPolicy) {
	m.policies[string(tier)+":"+ownerID] = p
}

func (m *memStore) addMultiplier(mult domain.Multiplier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.multipliers[mult.MultiplierID] = mult
}

func (m *memStore) putSorteo(s domain.Sorteo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.sorteos[s.SorteoID] = s
}

func (m *memStore) ticket(id string) domain.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyTicket(m.state.tickets[id])
}

func (m *memStore) ticketPaymentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.ticketPayments)
}

func (m *memStore) statementCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.statements)
}

func (m *memStore) entriesOf(accountID string) []domain.LedgerEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range m.state.entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

// corruptBalance simulates an out-of-band write to the cached balance.
func (m *memStore) corruptBalance(accountID string, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.state.accounts[accountID]
	a.Balance = balance
	m.state.accounts[accountID] = a
}

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begins++
	return &fakeTx{snapshot: m.state.clone(), held: map[string]*sync.Mutex{}}, nil
}

// lockRow blocks until tx owns the row lock for key. Reads outside a
// transaction take no lock.
func (m *memStore) lockRow(tx pgx.Tx, key string) {
	ft, ok := tx.(*fakeTx)
	if !ok || ft == nil {
		return
	}
	if _, held := ft.held[key]; held {
		return
	}
	m.mu.Lock()
	l, ok := m.rowLocks[key]
	if !ok {
		l = &sync.Mutex{}
		m.rowLocks[key] = l
	}
	m.mu.Unlock()
	l.Lock()
	ft.held[key] = l
}

func (ft *fakeTx) release() {
	for _, l := range ft.held {
		l.Unlock()
	}
	ft.held = map[string]*sync.Mutex{}
}

func (m *memStore) BeginWithTimeout(ctx context.Context, timeout time.Duration) (pgx.Tx, error) {
	m.mu.Lock()
	m.lastTimeout = timeout
	m.mu.Unlock()
	return m.Begin(ctx)
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	ft := tx.(*fakeTx)
	ft.committed = true
	ft.release()
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	ft := tx.(*fakeTx)
	if ft.committed || ft.rolledBack {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ft.rolledBack = true
	m.rollbacks++
	m.state = ft.snapshot
	ft.release()
	return nil
}

// --- Accounts ---

func (m *memStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.accounts[accountID]
	if !ok {
		return nil, notFound("account", accountID)
	}
	return &a, nil
}

func (m *memStore) FindAccountByOwner(ctx context.Context, ownerType domain.OwnerType, ownerID string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.state.accounts {
		if a.OwnerType == ownerType && a.OwnerID == ownerID {
			a := a
			return &a, nil
		}
	}
	return nil, notFound("account owner", ownerID)
}

func (m *memStore) InsertAccountIfAbsent(ctx context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.state.accounts {
		if a.OwnerType == account.OwnerType && a.OwnerID == account.OwnerID {
			return nil
		}
	}
	m.state.accounts[account.AccountID] = account
	return nil
}

func (m *memStore) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	ordered := append([]string(nil), accountIDs...)
	sort.Strings(ordered)
	for _, id := range ordered {
		m.lockRow(tx, "account:"+id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := m.state.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (m *memStore) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.accounts[accountID]
	if !ok {
		return decimal.Zero, notFound("account", accountID)
	}
	a.Balance = a.Balance.Add(delta)
	a.Touch(userID, now)
	m.state.accounts[accountID] = a
	return a.Balance, nil
}

// --- Ledger entries ---

func (m *memStore) FindEntryByID(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.state.entries {
		if e.EntryID == entryID {
			e := e
			return &e, nil
		}
	}
	return nil, notFound("ledger entry", entryID)
}

func (m *memStore) FindEntryByRequestID(ctx context.Context, tx pgx.Tx, requestID string) (*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.state.entries {
		if e.RequestID != nil && *e.RequestID == requestID {
			e := e
			return &e, nil
		}
	}
	return nil, notFound("ledger request", requestID)
}

func (m *memStore) FindReversalOf(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.state.entries {
		if e.ReversalOfEntryID != nil && *e.ReversalOfEntryID == entryID {
			e := e
			return &e, nil
		}
	}
	return nil, notFound("reversal of", entryID)
}

func (m *memStore) SumEntries(ctx context.Context, accountID string) (portsrepo.LedgerTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := portsrepo.LedgerTotals{Sum: decimal.Zero, Credits: decimal.Zero, Debits: decimal.Zero}
	for _, e := range m.state.entries {
		if e.AccountID != accountID {
			continue
		}
		t.Sum = t.Sum.Add(e.ValueSigned)
		if e.ValueSigned.IsPositive() {
			t.Credits = t.Credits.Add(e.ValueSigned)
		} else {
			t.Debits = t.Debits.Add(e.ValueSigned.Neg())
		}
		t.Count++
		at := e.CreatedAt
		t.LastEntryAt = &at
	}
	return t, nil
}

func (m *memStore) SumEntriesBetween(ctx context.Context, accountID string, from, to time.Time) (domain.DayMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv := domain.DayMovement{Opening: decimal.Zero, Debits: decimal.Zero, Credits: decimal.Zero}
	for _, e := range m.state.entries {
		if e.AccountID != accountID {
			continue
		}
		switch {
		case e.EntryDate.Before(from):
			mv.Opening = mv.Opening.Add(e.ValueSigned)
		case e.EntryDate.Before(to):
			if e.ValueSigned.IsPositive() {
				mv.Credits = mv.Credits.Add(e.ValueSigned)
			} else {
				mv.Debits = mv.Debits.Add(e.ValueSigned.Neg())
			}
			mv.EntryCount++
		}
	}
	return mv, nil
}

func (m *memStore) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.LedgerEntry
	for i := len(m.state.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.state.entries[i].AccountID == accountID {
			out = append(out, m.state.entries[i])
		}
	}
	return out, nil, nil
}

func (m *memStore) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.state.entries {
		if e.EntryID == entry.EntryID {
			return duplicate("ledger entry")
		}
		if e.RequestID != nil && entry.RequestID != nil && *e.RequestID == *entry.RequestID {
			return duplicate("ledger request id")
		}
	}
	m.state.entries = append(m.state.entries, entry)
	return nil
}

// --- Deposits and snapshots ---

func (m *memStore) InsertDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.BankDeposit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.state.deposits {
		if d.RequestID == deposit.RequestID {
			return duplicate("deposit")
		}
	}
	m.state.deposits[deposit.DepositID] = deposit
	return nil
}

func (m *memStore) FindDepositByID(ctx context.Context, depositID string) (*domain.BankDeposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.state.deposits[depositID]
	if !ok {
		return nil, notFound("deposit", depositID)
	}
	return &d, nil
}

func (m *memStore) FindDepositByRequestID(ctx context.Context, requestID string) (*domain.BankDeposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.state.deposits {
		if d.RequestID == requestID {
			d := d
			return &d, nil
		}
	}
	return nil, notFound("deposit request", requestID)
}

func snapshotKey(accountID string, date time.Time) string {
	return accountID + "|" + date.Format(time.DateOnly)
}

func (m *memStore) UpsertSnapshot(ctx context.Context, snapshot domain.DailyBalanceSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.snapshots[snapshotKey(snapshot.AccountID, snapshot.SnapshotDate)] = snapshot
	return nil
}

func (m *memStore) FindSnapshot(ctx context.Context, accountID string, date time.Time) (*domain.DailyBalanceSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.snapshots[snapshotKey(accountID, date)]
	if !ok {
		return nil, notFound("snapshot", accountID)
	}
	return &s, nil
}

// --- Statements ---

func eqPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameKey(st domain.AccountStatement, date time.Time, dim domain.StatementDimension, key domain.DimensionKey) bool {
	return st.StatementDate.Equal(date) && st.Dimension == dim &&
		eqPtr(st.BancaID, key.BancaID) && eqPtr(st.VentanaID, key.VentanaID) && eqPtr(st.VendedorID, key.VendedorID)
}

func (m *memStore) FindStatementByID(ctx context.Context, tx pgx.Tx, statementID string) (*domain.AccountStatement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.state.statements[statementID]
	if !ok {
		return nil, notFound("statement", statementID)
	}
	return &st, nil
}

func (m *memStore) FindStatement(ctx context.Context, tx pgx.Tx, date time.Time, key domain.DimensionKey) (*domain.AccountStatement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.state.statements {
		if sameKey(st, date, key.Dimension(), key) {
			st := st
			return &st, nil
		}
	}
	return nil, notFound("statement for", date.Format(time.DateOnly))
}

func (m *memStore) FindLegacyVendedorStatement(ctx context.Context, tx pgx.Tx, date time.Time, vendedorID string) (*domain.AccountStatement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.state.statements {
		if st.StatementDate.Equal(date) && st.Dimension == domain.DimensionVendedor &&
			st.VentanaID == nil && st.VendedorID != nil && *st.VendedorID == vendedorID {
			st := st
			return &st, nil
		}
	}
	return nil, notFound("legacy statement", vendedorID)
}

func (m *memStore) ListStatementsByDate(ctx context.Context, date time.Time, dimension domain.StatementDimension, bancaID, ventanaID *string) ([]domain.AccountStatement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AccountStatement
	for _, st := range m.state.statements {
		if !st.StatementDate.Equal(date) || st.Dimension != dimension {
			continue
		}
		if bancaID != nil && !eqPtr(st.BancaID, bancaID) {
			continue
		}
		if ventanaID != nil && !eqPtr(st.VentanaID, ventanaID) {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StatementID < out[j].StatementID })
	return out, nil
}

func (m *memStore) InsertStatementIfAbsent(ctx context.Context, tx pgx.Tx, statement domain.AccountStatement) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.state.statements {
		if sameKey(st, statement.StatementDate, statement.Dimension, statement.Key()) {
			return false, nil
		}
	}
	m.state.statements[statement.StatementID] = statement
	return true, nil
}

func (m *memStore) BackfillStatementLinkage(ctx context.Context, tx pgx.Tx, statementID string, ventanaID, bancaID *string, userID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.state.statements[statementID]
	if !ok {
		return notFound("statement", statementID)
	}
	key := domain.DimensionKey{BancaID: bancaID, VentanaID: ventanaID, VendedorID: st.VendedorID}
	for id, other := range m.state.statements {
		if id != statementID && sameKey(other, st.StatementDate, st.Dimension, key) {
			return duplicate("statement key")
		}
	}
	st.VentanaID = ventanaID
	st.BancaID = bancaID
	st.Touch(userID, now)
	m.state.statements[statementID] = st
	return nil
}

func (m *memStore) UpdateStatement(ctx context.Context, tx pgx.Tx, statement domain.AccountStatement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOnUpdate != nil {
		err := m.failOnUpdate
		m.failOnUpdate = nil
		return err
	}
	if _, ok := m.state.statements[statement.StatementID]; !ok {
		return notFound("statement", statement.StatementID)
	}
	m.state.statements[statement.StatementID] = statement
	return nil
}

func (m *memStore) DeleteStatement(ctx context.Context, tx pgx.Tx, statementID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state.statements, statementID)
	return nil
}

func (m *memStore) FindStatementForUpdate(ctx context.Context, tx pgx.Tx, statementID string) (*domain.AccountStatement, error) {
	m.lockRow(tx, "statement:"+statementID)
	return m.FindStatementByID(ctx, tx, statementID)
}

// --- Statement payments ---

func (m *memStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.AccountPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.payments {
		if p.PaymentID == paymentID {
			p := p
			return &p, nil
		}
	}
	return nil, notFound("payment", paymentID)
}

func (m *memStore) FindPaymentForUpdate(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.AccountPayment, error) {
	m.lockRow(tx, "payment:"+paymentID)
	return m.FindPaymentByID(ctx, paymentID)
}

func (m *memStore) FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.AccountPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.payments {
		if p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			p := p
			return &p, nil
		}
	}
	return nil, notFound("payment key", key)
}

func (m *memStore) ListPaymentsByStatement(ctx context.Context, tx pgx.Tx, statementID string, includeReversed bool) ([]domain.AccountPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AccountPayment
	for _, p := range m.state.payments {
		if p.StatementID == statementID && (includeReversed || !p.IsReversed) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) InsertPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.AccountPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.payments {
		if p.IdempotencyKey != nil && payment.IdempotencyKey != nil && *p.IdempotencyKey == *payment.IdempotencyKey {
			return duplicate("payment idempotency key")
		}
	}
	m.state.payments = append(m.state.payments, payment)
	return nil
}

func (m *memStore) MarkPaymentReversedInTx(ctx context.Context, tx pgx.Tx, paymentID, userID, reason string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.state.payments {
		if m.state.payments[i].PaymentID == paymentID {
			p := &m.state.payments[i]
			p.IsReversed = true
			p.ReversedAt = &now
			p.ReversedBy = &userID
			p.ReversalReason = &reason
			return nil
		}
	}
	return notFound("payment", paymentID)
}

func (m *memStore) DeletePaymentsByStatementInTx(ctx context.Context, tx pgx.Tx, statementID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.state.payments[:0:0]
	deleted := 0
	for _, p := range m.state.payments {
		if p.StatementID == statementID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	m.state.payments = kept
	return deleted, nil
}

// --- Sorteos ---

func (m *memStore) InsertSorteo(ctx context.Context, sorteo domain.Sorteo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.state.sorteos {
		if s.LoteriaID == sorteo.LoteriaID && s.ScheduledAt.Equal(sorteo.ScheduledAt) {
			return duplicate("sorteo")
		}
	}
	m.state.sorteos[sorteo.SorteoID] = sorteo
	return nil
}

func (m *memStore) FindSorteoByID(ctx context.Context, tx pgx.Tx, sorteoID string) (*domain.Sorteo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.sorteos[sorteoID]
	if !ok {
		return nil, notFound("sorteo", sorteoID)
	}
	return &s, nil
}

func (m *memStore) FindSorteoForUpdate(ctx context.Context, tx pgx.Tx, sorteoID string) (*domain.Sorteo, error) {
	m.lockRow(tx, "sorteo:"+sorteoID)
	return m.FindSorteoByID(ctx, tx, sorteoID)
}

func (m *memStore) FindSorteosByIDs(ctx context.Context, sorteoIDs []string) (map[string]domain.Sorteo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]domain.Sorteo, len(sorteoIDs))
	for _, id := range sorteoIDs {
		if s, ok := m.state.sorteos[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (m *memStore) UpdateSorteo(ctx context.Context, tx pgx.Tx, sorteo domain.Sorteo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.sorteos[sorteo.SorteoID] = sorteo
	return nil
}

func (m *memStore) FindMultiplierByID(ctx context.Context, tx pgx.Tx, multiplierID string) (*domain.Multiplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mult, ok := m.state.multipliers[multiplierID]
	if !ok {
		return nil, notFound("multiplier", multiplierID)
	}
	return &mult, nil
}

// --- Tickets ---

func (m *memStore) FindTicketByID(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.state.tickets[ticketID]
	if !ok {
		return nil, notFound("ticket", ticketID)
	}
	t = copyTicket(t)
	return &t, nil
}

func (m *memStore) FindTicketForUpdate(ctx context.Context, tx pgx.Tx, ticketID string) (*domain.Ticket, error) {
	m.lockRow(tx, "ticket:"+ticketID)
	return m.FindTicketByID(ctx, tx, ticketID)
}

func (m *memStore) ListTicketsBySorteo(ctx context.Context, tx pgx.Tx, sorteoID string) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Ticket
	for _, id := range m.state.ticketOrder {
		if t := m.state.tickets[id]; t.SorteoID == sorteoID {
			out = append(out, copyTicket(t))
		}
	}
	return out, nil
}

func (m *memStore) ListJugadaFactsForDay(ctx context.Context, tx pgx.Tx, date time.Time, key domain.DimensionKey) ([]domain.JugadaFact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.JugadaFact
	for _, id := range m.state.ticketOrder {
		t := m.state.tickets[id]
		if t.Status == domain.TicketCancelled || !t.BusinessDate.Equal(date) {
			continue
		}
		if (key.BancaID != nil && *key.BancaID != t.BancaID) ||
			(key.VentanaID != nil && *key.VentanaID != t.VentanaID) ||
			(key.VendedorID != nil && *key.VendedorID != t.VendedorID) {
			continue
		}
		for _, j := range t.Jugadas {
			out = append(out, domain.JugadaFact{
				Jugada:       j,
				SorteoID:     t.SorteoID,
				LoteriaID:    t.LoteriaID,
				BancaID:      t.BancaID,
				VentanaID:    t.VentanaID,
				VendedorID:   t.VendedorID,
				BusinessDate: t.BusinessDate,
			})
		}
	}
	return out, nil
}

func (m *memStore) InsertTicketInTx(ctx context.Context, tx pgx.Tx, ticket domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.tickets[ticket.TicketID]; ok {
		return duplicate("ticket")
	}
	m.state.tickets[ticket.TicketID] = copyTicket(ticket)
	m.state.ticketOrder = append(m.state.ticketOrder, ticket.TicketID)
	return nil
}

// UpdateTicketsInTx writes ticket columns only; lines go through UpdateJugadasInTx.
func (m *memStore) UpdateTicketsInTx(ctx context.Context, tx pgx.Tx, tickets []domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tickets {
		stored, ok := m.state.tickets[t.TicketID]
		if !ok {
			return notFound("ticket", t.TicketID)
		}
		t.Jugadas = stored.Jugadas
		m.state.tickets[t.TicketID] = t
	}
	return nil
}

func (m *memStore) UpdateJugadasInTx(ctx context.Context, tx pgx.Tx, jugadas []domain.Jugada) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range jugadas {
		t, ok := m.state.tickets[j.TicketID]
		if !ok {
			return notFound("ticket", j.TicketID)
		}
		t = copyTicket(t)
		for i := range t.Jugadas {
			if t.Jugadas[i].JugadaID == j.JugadaID {
				t.Jugadas[i] = j
			}
		}
		m.state.tickets[t.TicketID] = t
	}
	return nil
}

func (m *memStore) SetSorteoClosedInTx(ctx context.Context, tx pgx.Tx, sorteoID string, closed bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, t := range m.state.tickets {
		if t.SorteoID == sorteoID {
			t.IsSorteoClosed = closed
			m.state.tickets[id] = t
			n++
		}
	}
	return n, nil
}

func (m *memStore) InsertTicketPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.TicketPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.ticketPayments {
		if p.IdempotencyKey != nil && payment.IdempotencyKey != nil && *p.IdempotencyKey == *payment.IdempotencyKey {
			return duplicate("ticket payment idempotency key")
		}
	}
	m.state.ticketPayments = append(m.state.ticketPayments, payment)
	return nil
}

func (m *memStore) FindTicketPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.TicketPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.state.ticketPayments {
		if p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			p := p
			return &p, nil
		}
	}
	return nil, notFound("ticket payment key", key)
}

func (m *memStore) DeleteTicketPaymentsBySorteoInTx(ctx context.Context, tx pgx.Tx, sorteoID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.state.ticketPayments[:0:0]
	deleted := 0
	for _, p := range m.state.ticketPayments {
		if p.SorteoID == sorteoID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	m.state.ticketPayments = kept
	return deleted, nil
}

// --- Hierarchy ---

func (m *memStore) FindVendedorAssignment(ctx context.Context, vendedorID string) (*domain.VendedorAssignment, error) {
	a, ok := m.vendedores[vendedorID]
	if !ok {
		return nil, notFound("vendedor", vendedorID)
	}
	return &a, nil
}

func (m *memStore) FindVentanaAssignment(ctx context.Context, ventanaID string) (*domain.VentanaAssignment, error) {
	a, ok := m.ventanas[ventanaID]
	if !ok {
		return nil, notFound("ventana", ventanaID)
	}
	return &a, nil
}

func (m *memStore) FindPolicyStack(ctx context.Context, vendedorID, ventanaID, bancaID string) (domain.PolicyStack, error) {
	var stack domain.PolicyStack
	if vendedorID != "" {
		stack.User = m.policies[string(domain.OriginUser)+":"+vendedorID]
	}
	if ventanaID != "" {
		stack.Ventana = m.policies[string(domain.OriginVentana)+":"+ventanaID]
	}
	if bancaID != "" {
		stack.Banca = m.policies[string(domain.OriginBanca)+":"+bancaID]
	}
	return stack, nil
}
