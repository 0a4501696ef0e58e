package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/banca_settlement/internal/apperrors"
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/SscSPs/banca_settlement/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StatementServiceTestSuite struct {
	engineSuite
	sorteo domain.Sorteo
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}

// SetupTest sells one ticket for the seller: 100 on 47 and 200 on 12, seller
// policy 4%, ventana policy 10%.
func (s *StatementServiceTestSuite) SetupTest() {
	s.engineSuite.SetupTest()
	s.store.setPolicy(domain.OriginUser, testVendedor, pct("4"))
	s.store.setPolicy(domain.OriginVentana, testVentana, pct("10"))
	s.sorteo = s.openSorteo("Mediodia", testDay.Add(12*time.Hour))
	s.sell(s.sorteo.SorteoID, testVendedor, numero("47", "100"), numero("12", "200"))
}

func (s *StatementServiceTestSuite) pay(amount string, typ domain.PaymentType, key *string, final bool) (*domain.PaymentResult, error) {
	return s.payments.CreatePayment(s.ctx, domain.NewAccountPayment{
		Date:           testDay,
		Key:            s.sellerKey(testVendedor),
		Amount:         dec(amount),
		Type:           typ,
		IsFinal:        final,
		IdempotencyKey: key,
	}, ventUser)
}

func (s *StatementServiceTestSuite) TestGetStatement_SettlementFormula() {
	st := s.sellerStatement(testVendedor)

	s.Equal(domain.DimensionVendedor, st.Dimension)
	s.Equal(testVentana, *st.VentanaID, "ventana inferred from the hierarchy")
	s.Equal(testBanca, *st.BancaID)
	s.Equal(1, st.TicketCount)
	s.True(dec("300").Equal(st.TotalSales))
	s.True(dec("12").Equal(st.VendedorCommission))
	s.True(dec("18").Equal(st.ListeroCommission))
	s.True(st.TotalPayouts.IsZero())
	s.True(dec("270").Equal(st.Balance), "sales - payouts - listero - vendedor")
	s.True(st.Balance.Equal(st.RemainingBalance))
	s.False(st.IsSettled, "no payment yet")
	s.True(st.CanEdit)

	ventana, err := s.statements.GetStatement(s.ctx, testDay, domain.DimensionKey{VentanaID: strp(testVentana)}, adminUser)
	s.Require().NoError(err)
	s.Equal(domain.DimensionVentana, ventana.Dimension)
	s.True(st.Balance.Equal(ventana.Balance))

	again := s.sellerStatement(testVendedor)
	s.Equal(st.StatementID, again.StatementID, "find-or-create converges on one row")
}

func (s *StatementServiceTestSuite) TestSellerCommissionIsSnapshotAtSale() {
	before := s.sellerStatement(testVendedor)
	s.store.setPolicy(domain.OriginUser, testVendedor, pct("9"))

	after := s.sellerStatement(testVendedor)
	s.True(before.VendedorCommission.Equal(after.VendedorCommission))
	s.True(dec("18").Equal(after.ListeroCommission))
}

func (s *StatementServiceTestSuite) TestCreatePayment_IdempotentAndDerived() {
	first, err := s.pay("100", domain.PaymentTypePayment, strp("pay-1"), false)
	s.Require().NoError(err)
	s.False(first.Replayed)
	s.True(dec("100").Equal(first.Statement.TotalPaid))
	s.True(dec("170").Equal(first.Statement.RemainingBalance))
	s.Equal(domain.MethodCash, first.Payment.Method)

	second, err := s.pay("100", domain.PaymentTypePayment, strp("pay-1"), false)
	s.Require().NoError(err)
	s.True(second.Replayed)
	s.Equal(first.Payment.PaymentID, second.Payment.PaymentID)
	s.True(dec("170").Equal(second.Statement.RemainingBalance))

	list, err := s.payments.ListPayments(s.ctx, first.Statement.StatementID, true)
	s.Require().NoError(err)
	s.Len(list, 1)

	coll, err := s.pay("30", domain.PaymentTypeCollection, nil, false)
	s.Require().NoError(err)
	s.True(dec("30").Equal(coll.Statement.TotalCollected))
	s.True(dec("200").Equal(coll.Statement.RemainingBalance), "balance - paid + collected")
}

// parallel runs fn n times concurrently and returns every error.
func parallel(n int, fn func() error) []error {
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fn()
		}(i)
	}
	wg.Wait()
	return errs
}

func (s *StatementServiceTestSuite) TestCreatePayment_ConcurrentPaymentsAllCounted() {
	s.sellerStatement(testVendedor)
	const payers = 12

	errs := parallel(payers, func() error {
		_, err := s.pay("10", domain.PaymentTypePayment, nil, false)
		return err
	})
	for _, err := range errs {
		s.Require().NoError(err)
	}

	st := s.sellerStatement(testVendedor)
	list, err := s.payments.ListPayments(s.ctx, st.StatementID, false)
	s.Require().NoError(err)
	s.Len(list, payers)
	s.True(dec("120").Equal(st.TotalPaid), "paid %s", st.TotalPaid)
	s.True(dec("150").Equal(st.RemainingBalance))
}

func (s *StatementServiceTestSuite) TestUpdate_ConcurrentDeltasAccumulate() {
	st := s.sellerStatement(testVendedor)
	const editors = 10

	errs := parallel(editors, func() error {
		_, err := s.statements.Update(s.ctx, st.StatementID, domain.StatementDeltas{TotalSales: dec("1.50")}, adminUser)
		return err
	})
	for _, err := range errs {
		s.Require().NoError(err)
	}

	after := s.sellerStatement(testVendedor)
	s.True(dec("15").Equal(after.Adjustments.TotalSales))
	s.True(dec("315").Equal(after.TotalSales))
	s.True(dec("285").Equal(after.Balance))
}

func (s *StatementServiceTestSuite) TestCreatePayment_FinalMustSettle() {
	_, err := s.pay("100", domain.PaymentTypePayment, nil, true)
	s.ErrorIs(err, apperrors.ErrValidation)

	st := s.sellerStatement(testVendedor)
	list, err := s.payments.ListPayments(s.ctx, st.StatementID, true)
	s.Require().NoError(err)
	s.Empty(list, "rejected final payment left nothing behind")

	res, err := s.pay("270", domain.PaymentTypePayment, nil, true)
	s.Require().NoError(err)
	s.True(res.Statement.IsSettled)
	s.False(res.Statement.CanEdit)
	s.NotNil(res.Statement.ClosedAt)

	_, err = s.pay("1", domain.PaymentTypePayment, nil, false)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func (s *StatementServiceTestSuite) TestCreatePayment_Rejections() {
	_, err := s.payments.CreatePayment(s.ctx, domain.NewAccountPayment{
		Date: testDay, Key: s.sellerKey(testVendedor), Amount: dec("10"), Type: domain.PaymentTypePayment,
	}, otherVent)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.payments.CreatePayment(s.ctx, domain.NewAccountPayment{
		Date: testDay.AddDate(0, 0, 1), Key: s.sellerKey(testVendedor), Amount: dec("10"), Type: domain.PaymentTypePayment,
	}, ventUser)
	s.ErrorIs(err, apperrors.ErrValidation, "future-dated statement")

	_, err = s.pay("0", domain.PaymentTypePayment, nil, false)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.payments.CreatePayment(s.ctx, domain.NewAccountPayment{
		Date: testDay, Key: s.sellerKey(testVendedor), Amount: dec("10"), Type: "GIFT",
	}, ventUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StatementServiceTestSuite) TestCreatePayment_FailureRollsBack() {
	s.store.failOnUpdate = assert.AnError
	_, err := s.pay("50", domain.PaymentTypePayment, strp("pay-x"), false)
	s.Error(err)

	st := s.sellerStatement(testVendedor)
	list, err := s.payments.ListPayments(s.ctx, st.StatementID, true)
	s.Require().NoError(err)
	s.Empty(list)
	s.True(st.TotalPaid.IsZero())
}

func (s *StatementServiceTestSuite) TestReversePayment() {
	res, err := s.pay("100", domain.PaymentTypePayment, nil, false)
	s.Require().NoError(err)

	_, err = s.payments.ReversePayment(s.ctx, res.Payment.PaymentID, ventUser, "wrong")
	s.ErrorIs(err, apperrors.ErrForbidden)

	rev, err := s.payments.ReversePayment(s.ctx, res.Payment.PaymentID, adminUser, "wrong amount")
	s.Require().NoError(err)
	s.True(rev.Payment.IsReversed)
	s.Equal("wrong amount", *rev.Payment.ReversalReason)
	s.True(dec("270").Equal(rev.Statement.RemainingBalance))
	s.True(rev.Statement.TotalPaid.IsZero())

	again, err := s.payments.ReversePayment(s.ctx, res.Payment.PaymentID, adminUser, "wrong amount")
	s.Require().NoError(err)
	s.True(again.Replayed)

	all, err := s.payments.ListPayments(s.ctx, res.Statement.StatementID, true)
	s.Require().NoError(err)
	s.Len(all, 1, "reversal never deletes")
	live, err := s.payments.ListPayments(s.ctx, res.Statement.StatementID, false)
	s.Require().NoError(err)
	s.Empty(live)

	_, err = s.payments.ReversePayment(s.ctx, "missing", adminUser, "")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StatementServiceTestSuite) TestReversePayment_ZeroMovementGuard() {
	key := s.sellerKey(otherVendor)
	res, err := s.payments.CreatePayment(s.ctx, domain.NewAccountPayment{
		Date: testDay, Key: key, Amount: dec("50"), Type: domain.PaymentTypePayment,
	}, adminUser)
	s.Require().NoError(err)

	_, err = s.payments.ReversePayment(s.ctx, res.Payment.PaymentID, adminUser, "oops")
	s.ErrorIs(err, apperrors.ErrValidation)

	stored, err := s.payments.GetPayment(s.ctx, res.Payment.PaymentID)
	s.Require().NoError(err)
	s.False(stored.IsReversed)

	repos := s.store.provider()
	lenient := services.NewPaymentService(repos.TxManager, repos.StatementRepo, repos.PaymentRepo, s.statements, nil, 0, false,
		services.WithClock(func() time.Time { return testNow }))
	rev, err := lenient.ReversePayment(s.ctx, res.Payment.PaymentID, adminUser, "oops")
	s.Require().NoError(err)
	s.True(rev.Payment.IsReversed)
}

func (s *StatementServiceTestSuite) TestCloseDay_LocksAndUnlock() {
	closed, err := s.statements.CloseDay(s.ctx, testDay, s.sellerKey(testVendedor), ventUser)
	s.Require().NoError(err)
	s.False(closed.CanEdit)

	again, err := s.statements.CloseDay(s.ctx, testDay, s.sellerKey(testVendedor), ventUser)
	s.Require().NoError(err)
	s.Equal(closed.ClosedAt, again.ClosedAt, "closing twice is a no-op")

	_, err = s.pay("10", domain.PaymentTypePayment, nil, false)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = s.statements.Update(s.ctx, closed.StatementID, domain.StatementDeltas{TicketCount: 1}, adminUser)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	_, err = s.statements.UnlockDay(s.ctx, closed.StatementID, ventUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	unlocked, err := s.statements.UnlockDay(s.ctx, closed.StatementID, adminUser)
	s.Require().NoError(err)
	s.True(unlocked.CanEdit)

	_, err = s.pay("10", domain.PaymentTypePayment, nil, false)
	s.NoError(err)

	_, err = s.statements.CloseDay(s.ctx, testDay, s.sellerKey(testVendedor), otherVent)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *StatementServiceTestSuite) TestFindOrCreate_BackfillsLegacyRow() {
	legacy := domain.AccountStatement{
		StatementID:   "legacy-1",
		StatementDate: testDay,
		Dimension:     domain.DimensionVendedor,
		VendedorID:    strp(otherVendor),
		CanEdit:       true,
	}
	_, err := s.store.InsertStatementIfAbsent(s.ctx, nil, legacy)
	s.Require().NoError(err)
	before := s.store.statementCount()

	st, err := s.statements.FindOrCreate(s.ctx, testDay, s.sellerKey(otherVendor), adminUser)
	s.Require().NoError(err)
	s.Equal("legacy-1", st.StatementID)
	s.Equal(testVentana, *st.VentanaID)
	s.Equal(before, s.store.statementCount())
}

func (s *StatementServiceTestSuite) TestFindOrCreate_LegacyCollisionKeepsConsolidated() {
	consolidated, err := s.statements.FindOrCreate(s.ctx, testDay, s.sellerKey(otherVendor), adminUser)
	s.Require().NoError(err)
	_, err = s.store.InsertStatementIfAbsent(s.ctx, nil, domain.AccountStatement{
		StatementID: "legacy-2", StatementDate: testDay, Dimension: domain.DimensionVendedor, VendedorID: strp(otherVendor),
	})
	s.Require().NoError(err)

	st, err := s.statements.FindOrCreate(s.ctx, testDay, s.sellerKey(otherVendor), adminUser)
	s.Require().NoError(err)
	s.Equal(consolidated.StatementID, st.StatementID)
}

func (s *StatementServiceTestSuite) TestUpdate_AppliesDeltas() {
	st := s.sellerStatement(testVendedor)
	updated, err := s.statements.Update(s.ctx, st.StatementID, domain.StatementDeltas{
		TotalSales: dec("10"), VendedorCommission: dec("1"),
	}, adminUser)
	s.Require().NoError(err)
	s.True(dec("310").Equal(updated.TotalSales))
	s.True(dec("279").Equal(updated.Balance))

	_, err = s.statements.Update(s.ctx, st.StatementID, domain.StatementDeltas{TicketCount: -5}, adminUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StatementServiceTestSuite) TestUpdate_DeltasSurviveRefresh() {
	st := s.sellerStatement(testVendedor)
	updated, err := s.statements.Update(s.ctx, st.StatementID, domain.StatementDeltas{TotalPayouts: dec("50")}, adminUser)
	s.Require().NoError(err)
	s.True(dec("220").Equal(updated.Balance))

	again := s.sellerStatement(testVendedor)
	s.True(dec("50").Equal(again.TotalPayouts), "adjustment kept across a recompute")
	s.True(dec("220").Equal(again.Balance))
	s.True(dec("50").Equal(again.Adjustments.TotalPayouts))

	s.sell(s.sorteo.SorteoID, testVendedor, numero("03", "100"))
	res, err := s.pay("10", domain.PaymentTypePayment, nil, false)
	s.Require().NoError(err)
	s.True(dec("400").Equal(res.Statement.TotalSales), "new lines still counted")
	s.True(dec("50").Equal(res.Statement.TotalPayouts))
	s.True(res.Statement.Balance.Sub(dec("10")).Equal(res.Statement.RemainingBalance))

	closed, err := s.statements.CloseDay(s.ctx, testDay, s.sellerKey(testVendedor), adminUser)
	s.Require().NoError(err)
	s.True(dec("50").Equal(closed.TotalPayouts), "close recomputes with the adjustment")
}

func (s *StatementServiceTestSuite) TestDeleteStatement_OnlyWhenEmpty() {
	st := s.sellerStatement(testVendedor)
	s.ErrorIs(s.statements.DeleteStatement(s.ctx, st.StatementID, adminUser), apperrors.ErrInvalidState)

	empty, err := s.statements.FindOrCreate(s.ctx, testDay, s.sellerKey(otherVendor), adminUser)
	s.Require().NoError(err)
	s.ErrorIs(s.statements.DeleteStatement(s.ctx, empty.StatementID, ventUser), apperrors.ErrForbidden)
	s.Require().NoError(s.statements.DeleteStatement(s.ctx, empty.StatementID, adminUser))

	_, err = s.statements.GetStatementByID(s.ctx, empty.StatementID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StatementServiceTestSuite) TestGetDailySummary() {
	s.sellerStatement(testVendedor)
	_, err := s.statements.FindOrCreate(s.ctx, testDay, s.sellerKey(otherVendor), adminUser)
	s.Require().NoError(err)
	_, err = s.pay("270", domain.PaymentTypePayment, nil, false)
	s.Require().NoError(err)

	sum, err := s.statements.GetDailySummary(s.ctx, testDay, nil, strp(testVentana))
	s.Require().NoError(err)
	s.Equal(2, sum.StatementCount)
	s.Equal(1, sum.SettledCount)
	s.Equal(1, sum.PendingCount)
	s.True(dec("300").Equal(sum.TotalSales))
	s.True(sum.RemainingBalance.IsZero())
}

func (s *StatementServiceTestSuite) TestGetDailySummary_RecomputesOnRead() {
	first := s.sellerStatement(testVendedor)
	s.True(dec("300").Equal(first.TotalSales))

	s.sell(s.sorteo.SorteoID, testVendedor, numero("03", "100"))
	s.sell(s.sorteo.SorteoID, otherVendor, numero("88", "50"))

	sum, err := s.statements.GetDailySummary(s.ctx, testDay, nil, strp(testVentana))
	s.Require().NoError(err)
	s.Equal(2, sum.StatementCount, "seller without a statement row is included")
	s.Equal(3, sum.TicketCount)
	s.True(dec("450").Equal(sum.TotalSales), "sales after the last read are counted")
	s.Equal(0, sum.SettledCount)
	s.Equal(2, sum.PendingCount)

	other, err := s.statements.FindOrCreate(s.ctx, testDay, s.sellerKey(otherVendor), adminUser)
	s.Require().NoError(err)
	s.True(dec("50").Equal(other.TotalSales), "statement persisted by the summary")

	none, err := s.statements.GetDailySummary(s.ctx, testDay, strp("banca-missing"), nil)
	s.Require().NoError(err)
	s.Equal(0, none.StatementCount)
	s.True(none.TotalSales.IsZero())
}

func (s *StatementServiceTestSuite) TestGetDayActivity_InterleavesAndEndsAtRemaining() {
	late := s.openSorteo("Noche", testDay.Add(14*time.Hour))
	s.sell(late.SorteoID, testVendedor, numero("05", "50"))
	res, err := s.pay("40", domain.PaymentTypePayment, nil, false)
	s.Require().NoError(err)

	rows, err := s.statements.GetDayActivity(s.ctx, res.Statement.StatementID)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal(domain.ActivityPayment, rows[0].Kind, "newest first")
	s.Equal(late.SorteoID, rows[1].ReferenceID)
	s.Equal(s.sorteo.SorteoID, rows[2].ReferenceID)
	s.Equal("Mediodia", rows[2].Label)

	st := s.sellerStatement(testVendedor)
	s.True(st.RemainingBalance.Equal(rows[0].AccumulatedBalance))
	s.True(rows[2].Amount.Equal(rows[2].AccumulatedBalance))
}

func TestInterleaveActivity_TieBreaks(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := services.InterleaveActivity([]domain.DayActivity{
		{Kind: domain.ActivityPayment, ReferenceID: "p1", OccurredAt: at, Amount: dec("-10")},
		{Kind: domain.ActivitySorteo, ReferenceID: "s1", OccurredAt: at, Amount: dec("100")},
		{Kind: domain.ActivityCollection, ReferenceID: "c1", OccurredAt: at.Add(-time.Hour), Amount: dec("5")},
	})

	assert.Equal(t, []string{"p1", "s1", "c1"}, []string{rows[0].ReferenceID, rows[1].ReferenceID, rows[2].ReferenceID})
	assert.True(t, dec("5").Equal(rows[2].AccumulatedBalance))
	assert.True(t, dec("105").Equal(rows[1].AccumulatedBalance))
	assert.True(t, dec("95").Equal(rows[0].AccumulatedBalance))
	assert.Empty(t, services.InterleaveActivity(nil))
}

func (s *StatementServiceTestSuite) TestCommissionWaterfall() {
	bet := domain.BetContext{LoteriaID: testLoteria, BetType: domain.BetNumero, FinalMultiplierX: dec("90")}

	res, err := s.commission.ResolveForVendedor(s.ctx, testVendedor, bet, dec("100"))
	s.Require().NoError(err)
	s.Equal(domain.OriginUser, res.Origin)
	s.True(dec("4").Equal(res.Amount))

	res, err = s.commission.ResolveForVendedor(s.ctx, otherVendor, bet, dec("100"))
	s.Require().NoError(err)
	s.Equal(domain.OriginVentana, res.Origin, "no seller policy falls through to the ventana")

	s.store.setPolicy(domain.OriginVentana, testVentana, nil)
	res, err = s.commission.ResolveForVendedor(s.ctx, otherVendor, bet, dec("100"))
	s.Require().NoError(err)
	s.Equal(domain.OriginDefault, res.Origin)
	s.True(dec("5").Equal(res.Amount))
	s.True(dec("5").Equal(s.commission.DefaultPercent()))

	listero, err := s.commission.ResolveListero(s.ctx, testVentana, testBanca, bet, dec("100"), dec("4"))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(1).Equal(listero), "default 5 - seller 4")

	_, err = s.commission.ResolveForVendedor(s.ctx, "ghost", bet, dec("1"))
	s.ErrorIs(err, apperrors.ErrNotFound)
}
