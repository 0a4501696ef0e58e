package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SorteoStatus is the lifecycle state of a draw.
type SorteoStatus string

const (
	SorteoScheduled SorteoStatus = "SCHEDULED"
	SorteoOpen      SorteoStatus = "OPEN"
	SorteoEvaluated SorteoStatus = "EVALUATED"
	SorteoClosed    SorteoStatus = "CLOSED"
)

// sorteoTransitions lists the legal moves. EVALUATED -> OPEN is reserved for
// revert and CLOSED -> OPEN for force-open; callers check those separately.
var sorteoTransitions = map[SorteoStatus][]SorteoStatus{
	SorteoScheduled: {SorteoOpen},
	SorteoOpen:      {SorteoEvaluated, SorteoClosed},
	SorteoEvaluated: {SorteoClosed, SorteoOpen},
	SorteoClosed:    {SorteoOpen},
}

// CanTransition reports whether from -> to is an edge of the state machine.
func CanTransition(from, to SorteoStatus) bool {
	for _, next := range sorteoTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Sorteo is a scheduled draw of a lottery.
type Sorteo struct {
	SorteoID          string           `json:"sorteoID"`
	LoteriaID         string           `json:"loteriaID"`
	Name              string           `json:"name"`
	ScheduledAt       time.Time        `json:"scheduledAt"`
	Status            SorteoStatus     `json:"status"`
	WinningNumber     *string          `json:"winningNumber,omitempty"`
	ExtraOutcomeCode  *string          `json:"extraOutcomeCode,omitempty"`
	ExtraMultiplierID *string          `json:"extraMultiplierID,omitempty"`
	ExtraMultiplierX  *decimal.Decimal `json:"extraMultiplierX,omitempty"`
	HasWinner         bool             `json:"hasWinner"`
	EvaluatedAt       *time.Time       `json:"evaluatedAt,omitempty"`
	EvaluatedBy       *string          `json:"evaluatedBy,omitempty"`
	ClosedAt          *time.Time       `json:"closedAt,omitempty"`
	AuditFields
}

// WasEvaluated reports whether the draw carries an evaluation outcome.
func (s Sorteo) WasEvaluated() bool {
	return s.WinningNumber != nil || s.EvaluatedAt != nil
}

// ClearOutcome resets every evaluation field.
func (s *Sorteo) ClearOutcome() {
	s.WinningNumber = nil
	s.ExtraOutcomeCode = nil
	s.ExtraMultiplierID = nil
	s.ExtraMultiplierX = nil
	s.HasWinner = false
	s.EvaluatedAt = nil
	s.EvaluatedBy = nil
}

// EvaluateSorteoInput carries the draw outcome.
type EvaluateSorteoInput struct {
	WinningNumber     string
	ExtraOutcomeCode  *string
	ExtraMultiplierID *string
}

// EvaluationResult summarizes what an evaluation or revert touched.
type EvaluationResult struct {
	Sorteo             Sorteo          `json:"sorteo"`
	WinningLines       int             `json:"winningLines"`
	WinningTickets     int             `json:"winningTickets"`
	TicketsTouched     int             `json:"ticketsTouched"`
	TotalPayout        decimal.Decimal `json:"totalPayout"`
	StatementsTouched  int             `json:"statementsTouched"`
	PaymentsDeleted    int             `json:"paymentsDeleted"`
	TicketPaymentsGone int             `json:"ticketPaymentsDeleted"`
}

// Multiplier is a catalog entry. Kind says which bet type it pays.
type Multiplier struct {
	MultiplierID string          `json:"multiplierID"`
	LoteriaID    string          `json:"loteriaID"`
	Kind         BetType         `json:"kind"`
	Name         string          `json:"name"`
	ValueX       decimal.Decimal `json:"valueX"`
	IsActive     bool            `json:"isActive"`
}

// NewSorteo schedules a draw.
type NewSorteo struct {
	LoteriaID   string
	Name        string
	ScheduledAt time.Time
}

// CloseResult reports the draw and how many tickets were locked.
type CloseResult struct {
	Sorteo        Sorteo `json:"sorteo"`
	TicketsLocked int    `json:"ticketsLocked"`
}
