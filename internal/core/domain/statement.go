package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementDimension is the owner level a statement rolls up.
type StatementDimension string

const (
	DimensionBanca    StatementDimension = "BANCA"
	DimensionVentana  StatementDimension = "VENTANA"
	DimensionVendedor StatementDimension = "VENDEDOR"
)

// DimensionKey selects the owner of a statement. The most specific id present
// decides the dimension.
type DimensionKey struct {
	BancaID    *string `json:"bancaID,omitempty"`
	VentanaID  *string `json:"ventanaID,omitempty"`
	VendedorID *string `json:"vendedorID,omitempty"`
}

// Dimension returns the level selected by the most specific id set.
func (k DimensionKey) Dimension() StatementDimension {
	switch {
	case k.VendedorID != nil:
		return DimensionVendedor
	case k.VentanaID != nil:
		return DimensionVentana
	default:
		return DimensionBanca
	}
}

// IsEmpty reports whether no id is set.
func (k DimensionKey) IsEmpty() bool {
	return k.BancaID == nil && k.VentanaID == nil && k.VendedorID == nil
}

// AccountStatement is the daily rollup for one dimension.
type AccountStatement struct {
	StatementID        string             `json:"statementID"`
	StatementDate      time.Time          `json:"statementDate"`
	Dimension          StatementDimension `json:"dimension"`
	BancaID            *string            `json:"bancaID,omitempty"`
	VentanaID          *string            `json:"ventanaID,omitempty"`
	VendedorID         *string            `json:"vendedorID,omitempty"`
	TicketCount        int                `json:"ticketCount"`
	TotalSales         decimal.Decimal    `json:"totalSales"`
	TotalPayouts       decimal.Decimal    `json:"totalPayouts"`
	ListeroCommission  decimal.Decimal    `json:"listeroCommission"`
	VendedorCommission decimal.Decimal    `json:"vendedorCommission"`
	Balance            decimal.Decimal    `json:"balance"`
	TotalPaid          decimal.Decimal    `json:"totalPaid"`
	TotalCollected     decimal.Decimal    `json:"totalCollected"`
	RemainingBalance   decimal.Decimal    `json:"remainingBalance"`
	IsSettled          bool               `json:"isSettled"`
	CanEdit            bool               `json:"canEdit"`
	ClosedAt           *time.Time         `json:"closedAt,omitempty"`
	ClosedBy           *string            `json:"closedBy,omitempty"`
	// Adjustments accumulate every Update and are added on top of the
	// line totals at each refresh.
	Adjustments StatementDeltas `json:"adjustments"`
	AuditFields
}

// Key returns the dimension key of the statement.
func (s AccountStatement) Key() DimensionKey {
	return DimensionKey{BancaID: s.BancaID, VentanaID: s.VentanaID, VendedorID: s.VendedorID}
}

// StatementAggregates are the figures derived from the day's tickets and lines.
type StatementAggregates struct {
	TicketCount        int
	TotalSales         decimal.Decimal
	TotalPayouts       decimal.Decimal
	ListeroCommission  decimal.Decimal
	VendedorCommission decimal.Decimal
}

// StatementDeltas are signed adjustments applied by Update. The same shape
// holds the running adjustments of a statement.
type StatementDeltas struct {
	TicketCount        int             `json:"ticketCount"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalPayouts       decimal.Decimal `json:"totalPayouts"`
	ListeroCommission  decimal.Decimal `json:"listeroCommission"`
	VendedorCommission decimal.Decimal `json:"vendedorCommission"`
}

// NoDeltas is the zero adjustment with explicit decimal zeros.
func NoDeltas() StatementDeltas {
	return StatementDeltas{
		TotalSales:         decimal.Zero,
		TotalPayouts:       decimal.Zero,
		ListeroCommission:  decimal.Zero,
		VendedorCommission: decimal.Zero,
	}
}

// Add returns the field-wise sum of two deltas.
func (d StatementDeltas) Add(o StatementDeltas) StatementDeltas {
	return StatementDeltas{
		TicketCount:        d.TicketCount + o.TicketCount,
		TotalSales:         d.TotalSales.Add(o.TotalSales),
		TotalPayouts:       d.TotalPayouts.Add(o.TotalPayouts),
		ListeroCommission:  d.ListeroCommission.Add(o.ListeroCommission),
		VendedorCommission: d.VendedorCommission.Add(o.VendedorCommission),
	}
}

// PaymentTotals are the sums of the non-reversed payments of a statement.
type PaymentTotals struct {
	TotalPaid      decimal.Decimal
	TotalCollected decimal.Decimal
	ActiveCount    int
}

// StatementRef names one (date, dimension) touched by a draw.
type StatementRef struct {
	Date time.Time
	Key  DimensionKey
}

// DailySummary aggregates the seller statements of one day.
type DailySummary struct {
	Date               time.Time       `json:"date"`
	BancaID            *string         `json:"bancaID,omitempty"`
	VentanaID          *string         `json:"ventanaID,omitempty"`
	StatementCount     int             `json:"statementCount"`
	SettledCount       int             `json:"settledCount"`
	PendingCount       int             `json:"pendingCount"`
	TicketCount        int             `json:"ticketCount"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalPayouts       decimal.Decimal `json:"totalPayouts"`
	ListeroCommission  decimal.Decimal `json:"listeroCommission"`
	VendedorCommission decimal.Decimal `json:"vendedorCommission"`
	Balance            decimal.Decimal `json:"balance"`
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	TotalCollected     decimal.Decimal `json:"totalCollected"`
	RemainingBalance   decimal.Decimal `json:"remainingBalance"`
}

// ActivityKind distinguishes interleaved day activity rows.
type ActivityKind string

const (
	ActivitySorteo     ActivityKind = "SORTEO"
	ActivityPayment    ActivityKind = "PAYMENT"
	ActivityCollection ActivityKind = "COLLECTION"
)

// DayActivity is one row of the chronological day view.
type DayActivity struct {
	Kind               ActivityKind    `json:"kind"`
	ReferenceID        string          `json:"referenceID"`
	Label              string          `json:"label"`
	OccurredAt         time.Time       `json:"occurredAt"`
	Amount             decimal.Decimal `json:"amount"`
	AccumulatedBalance decimal.Decimal `json:"accumulatedBalance"`
}

// SorteoDayFigures is the per-draw slice of a statement day.
type SorteoDayFigures struct {
	SorteoID           string
	SorteoName         string
	ScheduledAt        time.Time
	TotalSales         decimal.Decimal
	TotalPayouts       decimal.Decimal
	ListeroCommission  decimal.Decimal
	VendedorCommission decimal.Decimal
}
