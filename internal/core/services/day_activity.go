package services

import (
	"context"
	"sort"

	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/SscSPs/banca_settlement/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// activityRank orders same-instant rows: draws before money movements.
func activityRank(k domain.ActivityKind) int {
	if k == domain.ActivitySorteo {
		return 0
	}
	return 1
}

// InterleaveActivity sorts rows ascending, accumulates the running balance,
// then returns them newest first for display.
func InterleaveActivity(rows []domain.DayActivity) []domain.DayActivity {
	out := make([]domain.DayActivity, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.Before(out[j].OccurredAt)
		}
		if activityRank(out[i].Kind) != activityRank(out[j].Kind) {
			return activityRank(out[i].Kind) < activityRank(out[j].Kind)
		}
		return out[i].ReferenceID < out[j].ReferenceID
	})
	running := decimal.Zero
	for i := range out {
		running = running.Add(out[i].Amount)
		out[i].AccumulatedBalance = running
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// GetDayActivity is a presentation over stored lines and payments; the
// oldest-to-newest accumulation ends at the statement's remaining balance.
func (s *statementService) GetDayActivity(ctx context.Context, statementID string) ([]domain.DayActivity, error) {
	st, err := s.statementRepo.FindStatementByID(ctx, nil, statementID)
	if err != nil {
		return nil, err
	}
	facts, err := s.ticketRepo.ListJugadaFactsForDay(ctx, nil, st.StatementDate, st.Key())
	if err != nil {
		return nil, err
	}

	bySorteo := make(map[string][]domain.JugadaFact)
	for _, f := range facts {
		bySorteo[f.SorteoID] = append(bySorteo[f.SorteoID], f)
	}
	ids := make([]string, 0, len(bySorteo))
	for id := range bySorteo {
		ids = append(ids, id)
	}
	sorteos, err := s.sorteoRepo.FindSorteosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.DayActivity, 0, len(ids))
	for _, id := range ids {
		agg, err := s.aggregate(ctx, bySorteo[id])
		if err != nil {
			return nil, err
		}
		row := domain.DayActivity{
			Kind:        domain.ActivitySorteo,
			ReferenceID: id,
			Label:       id,
			Amount:      accounting.StatementBalance(agg.TotalSales, agg.TotalPayouts, agg.ListeroCommission, agg.VendedorCommission),
		}
		if sorteo, ok := sorteos[id]; ok {
			row.Label = sorteo.Name
			row.OccurredAt = sorteo.ScheduledAt
		}
		rows = append(rows, row)
	}

	payments, err := s.paymentRepo.ListPaymentsByStatement(ctx, nil, statementID, false)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		kind := domain.ActivityPayment
		if p.Type == domain.PaymentTypeCollection {
			kind = domain.ActivityCollection
		}
		rows = append(rows, domain.DayActivity{
			Kind:        kind,
			ReferenceID: p.PaymentID,
			Label:       string(p.Method),
			OccurredAt:  p.PaymentDate,
			Amount:      accounting.PaymentEffect(p),
		})
	}
	return InterleaveActivity(rows), nil
}
