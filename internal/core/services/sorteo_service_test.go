package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type SorteoServiceTestSuite struct {
	engineSuite
	sorteo  domain.Sorteo
	ticketA domain.Ticket
	ticketB domain.Ticket
}

func TestSorteoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SorteoServiceTestSuite))
}

// SetupTest sells two tickets on an open draw:
// A (vendedor-1): NUMERO 47 for 100 and NUMERO 12 for 200
// B (vendedor-2): NUMERO 47 for 50 and REVENTADO 47 for 10
func (s *SorteoServiceTestSuite) SetupTest() {
	s.engineSuite.SetupTest()
	s.store.setPolicy(domain.OriginUser, testVendedor, pct("4"))
	s.store.setPolicy(domain.OriginVentana, testVentana, pct("10"))
	s.sorteo = s.openSorteo("Mediodia", testDay.Add(12*time.Hour))
	s.ticketA = s.sell(s.sorteo.SorteoID, testVendedor, numero("47", "100"), numero("12", "200"))
	s.ticketB = s.sell(s.sorteo.SorteoID, otherVendor, numero("47", "50"), reventado("47", "10"))
}

func (s *SorteoServiceTestSuite) evaluate47() *domain.EvaluationResult {
	res, err := s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{
		WinningNumber:     "47",
		ExtraOutcomeCode:  strp("ROJA"),
		ExtraMultiplierID: strp(reventMult),
	}, adminUser)
	s.Require().NoError(err)
	return res
}

func (s *SorteoServiceTestSuite) storedSellerStatement(vendedorID string) *domain.AccountStatement {
	st, err := s.store.FindStatement(s.ctx, nil, testDay, domain.DimensionKey{
		BancaID: strp(testBanca), VentanaID: strp(testVentana), VendedorID: strp(vendedorID),
	})
	s.Require().NoError(err)
	return st
}

func (s *SorteoServiceTestSuite) TestCreateTicket_StoresCommissionAndAttribution() {
	t := s.store.ticket(s.ticketA.TicketID)

	s.Equal(domain.TicketActive, t.Status)
	s.Equal(testVentana, t.VentanaID)
	s.Equal(testBanca, t.BancaID)
	s.True(testDay.Equal(t.BusinessDate))
	s.True(dec("300").Equal(t.TotalAmount))
	s.Require().Len(t.Jugadas, 2)
	s.True(dec("90").Equal(t.Jugadas[0].FinalMultiplierX))
	s.True(dec("4").Equal(t.Jugadas[0].CommissionAmount))
	s.Equal(domain.OriginUser, t.Jugadas[0].CommissionOrigin)
	s.NotEmpty(t.TicketNumber)

	b := s.store.ticket(s.ticketB.TicketID)
	s.True(b.Jugadas[1].FinalMultiplierX.IsZero(), "REVENTADO is priced at evaluation")
	s.Nil(b.Jugadas[1].MultiplierID)
}

func (s *SorteoServiceTestSuite) TestCreateTicket_Rejections() {
	_, err := s.tickets.CreateTicket(s.ctx, domain.NewTicket{SorteoID: s.sorteo.SorteoID, VendedorID: testVendedor}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation, "no lines")

	_, err = s.tickets.CreateTicket(s.ctx, domain.NewTicket{
		SorteoID: s.sorteo.SorteoID, VendedorID: testVendedor,
		Jugadas: []domain.NewJugada{{Type: domain.BetNumero, Number: "01", Amount: dec("5")}},
	}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation, "NUMERO without multiplier")

	_, err = s.tickets.CreateTicket(s.ctx, domain.NewTicket{
		SorteoID: s.sorteo.SorteoID, VendedorID: testVendedor,
		Jugadas: []domain.NewJugada{{Type: domain.BetNumero, Number: "01", Amount: dec("5"), MultiplierID: strp(reventMult)}},
	}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation, "REVENTADO multiplier on a NUMERO line")

	_, err = s.tickets.CreateTicket(s.ctx, domain.NewTicket{
		SorteoID: s.sorteo.SorteoID, VendedorID: testVendedor, Jugadas: []domain.NewJugada{numero("01", "5")},
	}, otherVent)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.tickets.CreateTicket(s.ctx, domain.NewTicket{
		SorteoID: s.sorteo.SorteoID, VendedorID: otherVendor, Jugadas: []domain.NewJugada{numero("01", "5")},
	}, sellUser)
	s.ErrorIs(err, apperrors.ErrForbidden, "a seller sells only for themselves")

	_, err = s.tickets.CreateTicket(s.ctx, domain.NewTicket{
		SorteoID: s.sorteo.SorteoID, VendedorID: testVendedor, Jugadas: []domain.NewJugada{numero("01", "5")},
	}, sellUser)
	s.NoError(err)

	scheduled, err := s.sorteos.CreateSorteo(s.ctx, domain.NewSorteo{LoteriaID: testLoteria, Name: "Noche", ScheduledAt: testDay.Add(20 * time.Hour)}, adminUser)
	s.Require().NoError(err)
	_, err = s.tickets.CreateTicket(s.ctx, domain.NewTicket{
		SorteoID: scheduled.SorteoID, VendedorID: testVendedor, Jugadas: []domain.NewJugada{numero("01", "5")},
	}, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "draw not open")
}

func (s *SorteoServiceTestSuite) TestCreateSorteo() {
	_, err := s.sorteos.CreateSorteo(s.ctx, domain.NewSorteo{LoteriaID: testLoteria, Name: "x", ScheduledAt: testNow}, ventUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.sorteos.CreateSorteo(s.ctx, domain.NewSorteo{LoteriaID: testLoteria, Name: " "}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	created, err := s.sorteos.CreateSorteo(s.ctx, domain.NewSorteo{LoteriaID: testLoteria, Name: " Tarde ", ScheduledAt: testNow}, adminUser)
	s.Require().NoError(err)
	s.Equal(domain.SorteoScheduled, created.Status)
	s.Equal("Tarde", created.Name)

	_, err = s.sorteos.Open(s.ctx, created.SorteoID, adminUser)
	s.Require().NoError(err)
	_, err = s.sorteos.Open(s.ctx, created.SorteoID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "already open")
}

func (s *SorteoServiceTestSuite) TestEvaluate_PayoutsAndCascade() {
	res := s.evaluate47()

	s.Equal(3, res.WinningLines)
	s.Equal(2, res.WinningTickets)
	s.Equal(2, res.TicketsTouched)
	s.True(dec("15500").Equal(res.TotalPayout))
	s.Equal(3, res.StatementsTouched, "one ventana and two vendedor statements")
	s.Equal(domain.SorteoEvaluated, res.Sorteo.Status)
	s.True(res.Sorteo.HasWinner)
	s.Equal("47", *res.Sorteo.WinningNumber)
	s.True(dec("200").Equal(*res.Sorteo.ExtraMultiplierX))
	s.Equal(time.Minute, s.store.lastTimeout)

	a := s.store.ticket(s.ticketA.TicketID)
	s.Equal(domain.TicketEvaluated, a.Status)
	s.True(a.IsWinner)
	s.True(dec("9000").Equal(a.TotalPayout))
	s.True(dec("9000").Equal(a.RemainingAmount))
	s.True(a.Jugadas[0].IsWinner)
	s.False(a.Jugadas[1].IsWinner)

	b := s.store.ticket(s.ticketB.TicketID)
	s.True(dec("6500").Equal(b.TotalPayout), "4500 NUMERO + 2000 REVENTADO")
	s.True(dec("200").Equal(b.Jugadas[1].FinalMultiplierX))
	s.Equal(reventMult, *b.Jugadas[1].MultiplierID)

	// stored rows were refreshed inside the evaluation, not on read
	st := s.storedSellerStatement(testVendedor)
	s.True(dec("9000").Equal(st.TotalPayouts))
	s.True(dec("-8730").Equal(st.Balance))

	s.Contains(s.audit.Actions(), domain.ActionSorteoEvaluate)
}

func (s *SorteoServiceTestSuite) TestEvaluate_Rejections() {
	_, err := s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "47"}, ventUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: " "}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "47", ExtraMultiplierID: strp(numeroMult)}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation, "extra multiplier must be REVENTADO")

	scheduled, err := s.sorteos.CreateSorteo(s.ctx, domain.NewSorteo{LoteriaID: testLoteria, Name: "Noche", ScheduledAt: testNow}, adminUser)
	s.Require().NoError(err)
	_, err = s.sorteos.Evaluate(s.ctx, scheduled.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "47"}, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *SorteoServiceTestSuite) TestEvaluate_WinningSideBetNeedsMultiplier() {
	_, err := s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "47"}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	sorteo, err := s.sorteos.GetSorteo(s.ctx, s.sorteo.SorteoID)
	s.Require().NoError(err)
	s.Equal(domain.SorteoOpen, sorteo.Status)
	s.Nil(sorteo.WinningNumber)
	s.Equal(domain.TicketActive, s.store.ticket(s.ticketB.TicketID).Status)

	// no REVENTADO line hits 12, so no extra multiplier is needed
	res, err := s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "12"}, adminUser)
	s.Require().NoError(err)
	s.True(dec("18000").Equal(res.TotalPayout))
	s.Nil(res.Sorteo.ExtraMultiplierX)
}

func (s *SorteoServiceTestSuite) TestEvaluate_NoWinners() {
	res, err := s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "99"}, adminUser)
	s.Require().NoError(err)
	s.False(res.Sorteo.HasWinner)
	s.Equal(0, res.WinningTickets)
	s.True(res.TotalPayout.IsZero())
	s.Equal(domain.TicketEvaluated, s.store.ticket(s.ticketA.TicketID).Status)
}

func (s *SorteoServiceTestSuite) TestRevertEvaluation_IsInverse() {
	_, err := s.payments.CreatePayment(s.ctx, domain.NewAccountPayment{
		Date: testDay, Key: s.sellerKey(testVendedor), Amount: dec("100"), Type: domain.PaymentTypePayment,
	}, ventUser)
	s.Require().NoError(err)

	s.evaluate47()
	_, err = s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("1000")}, ventUser)
	s.Require().NoError(err)

	_, err = s.sorteos.RevertEvaluation(s.ctx, s.sorteo.SorteoID, ventUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	res, err := s.sorteos.RevertEvaluation(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)
	s.Equal(1, res.TicketPaymentsGone)
	s.Equal(1, res.PaymentsDeleted)
	s.Equal(0, s.store.ticketPaymentCount())

	s.Equal(domain.SorteoOpen, res.Sorteo.Status)
	s.Nil(res.Sorteo.WinningNumber)
	s.Nil(res.Sorteo.ExtraMultiplierX)
	s.Nil(res.Sorteo.EvaluatedAt)
	s.False(res.Sorteo.HasWinner)

	a := s.store.ticket(s.ticketA.TicketID)
	s.Equal(domain.TicketActive, a.Status)
	s.False(a.IsWinner)
	s.True(a.TotalPayout.IsZero())
	s.True(a.TotalPaid.IsZero())
	s.Nil(a.LastPaymentAt)
	s.True(dec("90").Equal(a.Jugadas[0].FinalMultiplierX), "NUMERO keeps its sale multiplier")

	b := s.store.ticket(s.ticketB.TicketID)
	s.True(b.Jugadas[1].FinalMultiplierX.IsZero())
	s.Nil(b.Jugadas[1].MultiplierID)
	s.False(b.Jugadas[1].IsWinner)

	st := s.storedSellerStatement(testVendedor)
	s.True(st.TotalPayouts.IsZero())
	s.True(dec("270").Equal(st.RemainingBalance))
	s.True(st.CanEdit)

	again := s.evaluate47()
	s.True(dec("15500").Equal(again.TotalPayout), "re-evaluation reproduces the outcome")

	_, err = s.sorteos.RevertEvaluation(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)
	_, err = s.sorteos.RevertEvaluation(s.ctx, s.sorteo.SorteoID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "only EVALUATED reverts")
}

func (s *SorteoServiceTestSuite) TestRevertEvaluation_ReopensClosedStatements() {
	s.evaluate47()
	_, err := s.statements.CloseDay(s.ctx, testDay, s.sellerKey(testVendedor), adminUser)
	s.Require().NoError(err)

	_, err = s.sorteos.RevertEvaluation(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)

	st := s.storedSellerStatement(testVendedor)
	s.True(st.CanEdit)
	s.Nil(st.ClosedAt)
	s.True(dec("270").Equal(st.Balance))
}

func (s *SorteoServiceTestSuite) TestCloseWithCascade_AndForceOpen() {
	res, err := s.sorteos.CloseWithCascade(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)
	s.Equal(domain.SorteoClosed, res.Sorteo.Status)
	s.Equal(2, res.TicketsLocked)
	s.NotNil(res.Sorteo.ClosedAt)
	s.True(s.store.ticket(s.ticketA.TicketID).IsSorteoClosed)

	_, err = s.tickets.CancelTicket(s.ctx, s.ticketA.TicketID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "closed draw locks its tickets")

	_, err = s.sorteos.CloseWithCascade(s.ctx, s.sorteo.SorteoID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	opened, err := s.sorteos.ForceOpen(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)
	s.Equal(domain.SorteoOpen, opened.Status)
	s.Nil(opened.ClosedAt)
	s.False(s.store.ticket(s.ticketA.TicketID).IsSorteoClosed)

	_, err = s.sorteos.ForceOpen(s.ctx, s.sorteo.SorteoID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "only CLOSED can be force-opened")
}

func (s *SorteoServiceTestSuite) TestForceOpen_RefusesEvaluatedDraw() {
	s.evaluate47()
	_, err := s.sorteos.CloseWithCascade(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)

	_, err = s.sorteos.ForceOpen(s.ctx, s.sorteo.SorteoID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = s.sorteos.RevertEvaluation(s.ctx, s.sorteo.SorteoID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "a closed draw cannot be reverted")
}

func (s *SorteoServiceTestSuite) TestCancelTicket() {
	_, err := s.tickets.CancelTicket(s.ctx, s.ticketA.TicketID, otherVent)
	s.ErrorIs(err, apperrors.ErrForbidden)

	cancelled, err := s.tickets.CancelTicket(s.ctx, s.ticketA.TicketID, sellUser)
	s.Require().NoError(err)
	s.Equal(domain.TicketCancelled, cancelled.Status)
	s.Len(s.store.ticket(s.ticketA.TicketID).Jugadas, 2, "lines survive the cancel")

	_, err = s.tickets.CancelTicket(s.ctx, s.ticketA.TicketID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	st := s.sellerStatement(testVendedor)
	s.Equal(0, st.TicketCount, "cancelled tickets leave the statement")
	s.True(st.TotalSales.IsZero())

	res := s.evaluate47()
	s.Equal(1, res.TicketsTouched)
	s.Equal(domain.TicketCancelled, s.store.ticket(s.ticketA.TicketID).Status)

	_, err = s.tickets.CancelTicket(s.ctx, s.ticketB.TicketID, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "evaluated tickets cannot be cancelled")
}

func (s *SorteoServiceTestSuite) TestPayTicket() {
	_, err := s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("10")}, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState, "not evaluated yet")

	s.evaluate47()

	_, err = s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("0")}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("9000.01")}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation, "overpay")
	_, err = s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("10")}, otherVent)
	s.ErrorIs(err, apperrors.ErrForbidden)

	key := strp("prize-1")
	first, err := s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("4000"), IdempotencyKey: key}, ventUser)
	s.Require().NoError(err)
	s.False(first.Replayed)
	s.Equal(domain.MethodCash, first.Payment.Method)
	s.Equal(domain.TicketEvaluated, first.Ticket.Status)
	s.True(dec("5000").Equal(first.Ticket.RemainingAmount))

	replay, err := s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("4000"), IdempotencyKey: key}, ventUser)
	s.Require().NoError(err)
	s.True(replay.Replayed)
	s.Equal(first.Payment.TicketPaymentID, replay.Payment.TicketPaymentID)
	s.Equal(1, s.store.ticketPaymentCount())

	last, err := s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("5000")}, sellUser)
	s.Require().NoError(err)
	s.Equal(domain.TicketPaid, last.Ticket.Status)
	s.True(last.Ticket.RemainingAmount.IsZero())
	s.True(dec("9000").Equal(last.Ticket.TotalPaid))
	s.Equal(testVendedor, *last.Ticket.PaidBy)

	_, err = s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketA.TicketID, Amount: dec("1")}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation, "nothing left to pay")

	_, err = s.sorteos.CloseWithCascade(s.ctx, s.sorteo.SorteoID, adminUser)
	s.Require().NoError(err)
	paid, err := s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketB.TicketID, Amount: dec("6500")}, adminUser)
	s.Require().NoError(err, "prizes stay payable after the draw closes")
	s.Equal(domain.TicketPaid, paid.Ticket.Status)
}

func (s *SorteoServiceTestSuite) TestPayTicket_NonWinner() {
	_, err := s.sorteos.Evaluate(s.ctx, s.sorteo.SorteoID, domain.EvaluateSorteoInput{WinningNumber: "12"}, adminUser)
	s.Require().NoError(err)

	_, err = s.tickets.PayTicket(s.ctx, domain.NewTicketPayment{TicketID: s.ticketB.TicketID, Amount: dec("1")}, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}
