package accounting

import (
	"fmt"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementEpsilon is the tolerance under which a remaining balance counts as zero.
var SettlementEpsilon = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Round2 rounds a monetary amount to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsZeroAmount reports whether |d| is below the settlement epsilon.
func IsZeroAmount(d decimal.Decimal) bool {
	return d.Abs().LessThan(SettlementEpsilon)
}

// CalculateSignedAmount applies the conventional sign for a ledger entry type.
// Money entering the owner's account is positive, money leaving is negative.
// ADJUSTMENT and REVERSAL entries carry a caller-chosen sign and are rejected here.
func CalculateSignedAmount(entryType domain.LedgerEntryType, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", amount.String())
	}
	switch entryType {
	case domain.EntrySale, domain.EntryDeposit, domain.EntryTransferIn, domain.EntryCollection:
		return amount, nil
	case domain.EntryPayout, domain.EntryCommission, domain.EntryPayment, domain.EntryTransferOut:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("entry type '%s' has no conventional sign", entryType)
	}
}

// SplitSigned sums signed values into credits (positive) and debits (absolute of negatives).
func SplitSigned(values []decimal.Decimal) (credits, debits decimal.Decimal) {
	credits, debits = decimal.Zero, decimal.Zero
	for _, v := range values {
		if v.IsNegative() {
			debits = debits.Add(v.Abs())
		} else {
			credits = credits.Add(v)
		}
	}
	return credits, debits
}

// StatementBalance is totalSales − totalPayouts − listeroCommission − vendedorCommission.
func StatementBalance(sales, payouts, listero, vendedor decimal.Decimal) decimal.Decimal {
	return sales.Sub(payouts).Sub(listero).Sub(vendedor)
}

// RemainingBalance is balance − totalPaid + totalCollected.
func RemainingBalance(balance, paid, collected decimal.Decimal) decimal.Decimal {
	return balance.Sub(paid).Add(collected)
}

// IsSettled is true only with tickets, a zero remaining balance and at least
// one live payment or collection.
func IsSettled(ticketCount int, remaining decimal.Decimal, activePayments int) bool {
	return ticketCount > 0 && IsZeroAmount(remaining) && activePayments > 0
}

// DeriveStatement recomputes every derived field of a statement from its
// stored totals and the live payment totals.
func DeriveStatement(st *domain.AccountStatement, payments domain.PaymentTotals) {
	st.Balance = StatementBalance(st.TotalSales, st.TotalPayouts, st.ListeroCommission, st.VendedorCommission)
	st.TotalPaid = payments.TotalPaid
	st.TotalCollected = payments.TotalCollected
	st.RemainingBalance = RemainingBalance(st.Balance, st.TotalPaid, st.TotalCollected)
	st.IsSettled = IsSettled(st.TicketCount, st.RemainingBalance, payments.ActiveCount)
}

// ApplyAggregates sets the ticket-derived totals of a statement to the line
// aggregates plus the stored adjustments. The ticket count never drops below zero.
func ApplyAggregates(st *domain.AccountStatement, agg domain.StatementAggregates) {
	adj := st.Adjustments
	st.TicketCount = max(agg.TicketCount+adj.TicketCount, 0)
	st.TotalSales = agg.TotalSales.Add(adj.TotalSales)
	st.TotalPayouts = agg.TotalPayouts.Add(adj.TotalPayouts)
	st.ListeroCommission = agg.ListeroCommission.Add(adj.ListeroCommission)
	st.VendedorCommission = agg.VendedorCommission.Add(adj.VendedorCommission)
}

// ApplyDeltas adds signed deltas to the ticket-derived totals and records them
// in the statement adjustments. It refuses a result with a negative ticket count.
func ApplyDeltas(st *domain.AccountStatement, d domain.StatementDeltas) error {
	if st.TicketCount+d.TicketCount < 0 {
		return fmt.Errorf("ticket count would become negative (%d%+d)", st.TicketCount, d.TicketCount)
	}
	st.Adjustments = st.Adjustments.Add(d)
	st.TicketCount += d.TicketCount
	st.TotalSales = st.TotalSales.Add(d.TotalSales)
	st.TotalPayouts = st.TotalPayouts.Add(d.TotalPayouts)
	st.ListeroCommission = st.ListeroCommission.Add(d.ListeroCommission)
	st.VendedorCommission = st.VendedorCommission.Add(d.VendedorCommission)
	return nil
}

// PaymentEffect is the signed effect of a payment on the remaining balance.
func PaymentEffect(p domain.AccountPayment) decimal.Decimal {
	if p.Type == domain.PaymentTypeCollection {
		return p.Amount
	}
	return p.Amount.Neg()
}

// SumPayments totals the non-reversed payments and collections.
func SumPayments(payments []domain.AccountPayment) domain.PaymentTotals {
	totals := domain.PaymentTotals{TotalPaid: decimal.Zero, TotalCollected: decimal.Zero}
	for _, p := range payments {
		if p.IsReversed {
			continue
		}
		totals.ActiveCount++
		if p.Type == domain.PaymentTypeCollection {
			totals.TotalCollected = totals.TotalCollected.Add(p.Amount)
		} else {
			totals.TotalPaid = totals.TotalPaid.Add(p.Amount)
		}
	}
	return totals
}
