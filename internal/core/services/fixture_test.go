package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	portssvc "github.com/SscSPs/banca_settlement/internal/core/ports/services"
	"github.com/SscSPs/banca_settlement/internal/core/services"
	"github.com/SscSPs/banca_settlement/internal/utils/retry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	testBanca    = "banca-1"
	testVentana  = "ventana-1"
	testVendedor = "vendedor-1"
	otherVendor  = "vendedor-2"
	testLoteria  = "loteria-1"
	numeroMult   = "mult-numero-90"
	reventMult   = "mult-reventado-200"
)

var (
	testNow   = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	testDay   = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	adminUser = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	bancaUser = domain.Actor{UserID: "banca-user", Role: domain.RoleBanca, BancaID: strp(testBanca)}
	ventUser  = domain.Actor{UserID: "ventana-user", Role: domain.RoleVentana, VentanaID: strp(testVentana), BancaID: strp(testBanca)}
	sellUser  = domain.Actor{UserID: testVendedor, Role: domain.RoleVendedor, VentanaID: strp(testVentana), BancaID: strp(testBanca)}
	otherVent = domain.Actor{UserID: "other-ventana", Role: domain.RoleVentana, VentanaID: strp("ventana-9"), BancaID: strp(testBanca)}
)

func strp(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pct(p string) *domain.CommissionPolicy {
	return &domain.CommissionPolicy{Version: 1, Rules: []domain.CommissionRule{{
		BetType:         domain.BetNumero,
		MultiplierRange: domain.MultiplierRange{Min: dec("0"), Max: dec("1000")},
		Percent:         dec(p),
	}, {
		BetType:         domain.BetReventado,
		MultiplierRange: domain.MultiplierRange{Min: dec("0"), Max: dec("1000")},
		Percent:         dec(p),
	}}}
}

// engineSuite wires every service over one in-memory store.
type engineSuite struct {
	suite.Suite
	ctx   context.Context
	store *memStore
	audit *MockAuditSink

	ledger     portssvc.LedgerSvcFacade
	deposits   portssvc.DepositSvcFacade
	snapshots  portssvc.SnapshotSvcFacade
	commission portssvc.CommissionSvcFacade
	statements portssvc.StatementSvcFacade
	payments   portssvc.PaymentSvcFacade
	tickets    portssvc.TicketSvcFacade
	sorteos    portssvc.SorteoSvcFacade
}

func (s *engineSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()
	s.audit = newAuditSink()

	s.store.addVendedor(testVendedor, testVentana, testBanca)
	s.store.addVendedor(otherVendor, testVentana, testBanca)
	s.store.addMultiplier(domain.Multiplier{MultiplierID: numeroMult, LoteriaID: testLoteria, Kind: domain.BetNumero, Name: "x90", ValueX: dec("90"), IsActive: true})
	s.store.addMultiplier(domain.Multiplier{MultiplierID: reventMult, LoteriaID: testLoteria, Kind: domain.BetReventado, Name: "x200", ValueX: dec("200"), IsActive: true})

	base := []services.BaseOption{
		services.WithAuditSink(s.audit),
		services.WithRetryPolicy(retry.Policy{MaxAttempts: 1}),
		services.WithLocation(time.UTC),
		services.WithClock(func() time.Time { return testNow }),
	}
	repos := s.store.provider()
	defaultPct := dec("5")

	s.ledger = services.NewLedgerService(repos.TxManager, repos.AccountRepo, repos.EntryRepo, base...)
	s.deposits = services.NewBankDepositService(repos.TxManager, repos.DepositRepo, s.ledger, nil, 0, base...)
	s.snapshots = services.NewSnapshotService(repos.AccountRepo, repos.EntryRepo, repos.SnapshotRepo, base...)
	s.commission = services.NewCommissionService(repos.HierarchyRepo, defaultPct, base...)
	s.statements = services.NewStatementService(repos.TxManager, repos.StatementRepo, repos.PaymentRepo, repos.TicketRepo, repos.SorteoRepo, repos.HierarchyRepo, defaultPct, base...)
	s.payments = services.NewPaymentService(repos.TxManager, repos.StatementRepo, repos.PaymentRepo, s.statements, nil, 0, true, base...)
	s.tickets = services.NewTicketService(repos.TxManager, repos.SorteoRepo, repos.TicketRepo, repos.HierarchyRepo, defaultPct, base...)
	s.sorteos = services.NewSorteoService(repos.TxManager, repos.SorteoRepo, repos.TicketRepo, s.statements, time.Minute, base...)
}

// openSorteo schedules and opens a draw of the test lottery.
func (s *engineSuite) openSorteo(name string, at time.Time) domain.Sorteo {
	created, err := s.sorteos.CreateSorteo(s.ctx, domain.NewSorteo{LoteriaID: testLoteria, Name: name, ScheduledAt: at}, adminUser)
	s.Require().NoError(err)
	opened, err := s.sorteos.Open(s.ctx, created.SorteoID, adminUser)
	s.Require().NoError(err)
	return *opened
}

func numero(number, amount string) domain.NewJugada {
	return domain.NewJugada{Type: domain.BetNumero, Number: number, Amount: dec(amount), MultiplierID: strp(numeroMult)}
}

func reventado(number, amount string) domain.NewJugada {
	return domain.NewJugada{Type: domain.BetReventado, Number: number, Amount: dec(amount)}
}

func (s *engineSuite) sell(sorteoID, vendedorID string, jugadas ...domain.NewJugada) domain.Ticket {
	t, err := s.tickets.CreateTicket(s.ctx, domain.NewTicket{SorteoID: sorteoID, VendedorID: vendedorID, Jugadas: jugadas}, adminUser)
	s.Require().NoError(err)
	return *t
}

func (s *engineSuite) sellerKey(vendedorID string) domain.DimensionKey {
	return domain.DimensionKey{VendedorID: strp(vendedorID)}
}

func (s *engineSuite) sellerStatement(vendedorID string) domain.AccountStatement {
	st, err := s.statements.GetStatement(s.ctx, testDay, s.sellerKey(vendedorID), adminUser)
	s.Require().NoError(err)
	return *st
}
