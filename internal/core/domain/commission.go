package domain

import (
	"github.com/shopspring/decimal"
)

// BetType is the kind of bet line.
type BetType string

const (
	BetNumero    BetType = "NUMERO"
	BetReventado BetType = "REVENTADO"
)

// CommissionOrigin identifies which tier produced a commission.
type CommissionOrigin string

const (
	OriginUser    CommissionOrigin = "USER"
	OriginVentana CommissionOrigin = "VENTANA"
	OriginBanca   CommissionOrigin = "BANCA"
	OriginDefault CommissionOrigin = "DEFAULT"
)

// MultiplierRange is an inclusive range on the line's final multiplier.
type MultiplierRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains reports whether x lies inside the inclusive range.
func (r MultiplierRange) Contains(x decimal.Decimal) bool {
	return r.Min.LessThanOrEqual(x) && x.LessThanOrEqual(r.Max)
}

// CommissionRule is one entry of a policy. A nil LoteriaID matches any lottery.
type CommissionRule struct {
	ID              string          `json:"id,omitempty"`
	LoteriaID       *string         `json:"loteriaId,omitempty"`
	BetType         BetType         `json:"betType" validate:"required,oneof=NUMERO REVENTADO"`
	MultiplierRange MultiplierRange `json:"multiplierRange"`
	Percent         decimal.Decimal `json:"percent"`
}

// CommissionPolicy is an ordered rule list owned by a user, ventana or banca.
// Rules are evaluated in stored order and the first match wins.
type CommissionPolicy struct {
	Version int              `json:"version"`
	Rules   []CommissionRule `json:"rules" validate:"dive"`
}

// BetContext is what the resolver needs to know about a bet line.
type BetContext struct {
	LoteriaID        string          `json:"loteriaId"`
	BetType          BetType         `json:"betType"`
	FinalMultiplierX decimal.Decimal `json:"finalMultiplierX"`
}

// CommissionResult is the outcome of the waterfall.
type CommissionResult struct {
	Percent     decimal.Decimal  `json:"percent"`
	Amount      decimal.Decimal  `json:"commissionAmount"`
	Origin      CommissionOrigin `json:"origin"`
	MatchedRule *CommissionRule  `json:"matchedRule,omitempty"`
}
