package accounting

import (
	"github.com/SscSPs/banca_settlement/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CommissionAmount is round2(amount × percent / 100). Rounding happens here
// and nowhere downstream.
func CommissionAmount(amount, percent decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(percent).Div(hundred))
}

// RuleMatches reports whether a rule applies to the bet. A nil loteria on the
// rule is a wildcard.
func RuleMatches(rule domain.CommissionRule, bet domain.BetContext) bool {
	if rule.LoteriaID != nil && *rule.LoteriaID != bet.LoteriaID {
		return false
	}
	if rule.BetType != bet.BetType {
		return false
	}
	return rule.MultiplierRange.Contains(bet.FinalMultiplierX)
}

// ResolveCommission scans the policy rules in stored order and returns the
// first match. ok is false when nothing matches, which is not the same as 0%.
func ResolveCommission(policy *domain.CommissionPolicy, bet domain.BetContext) (percent decimal.Decimal, rule *domain.CommissionRule, ok bool) {
	if policy == nil {
		return decimal.Zero, nil, false
	}
	for i := range policy.Rules {
		if RuleMatches(policy.Rules[i], bet) {
			matched := policy.Rules[i]
			return matched.Percent, &matched, true
		}
	}
	return decimal.Zero, nil, false
}

// TierMatch is a successful resolution at one tier.
type TierMatch struct {
	Percent decimal.Decimal
	Origin  domain.CommissionOrigin
	Rule    *domain.CommissionRule
}

// TierResolver tries one tier and reports whether it matched.
type TierResolver func(bet domain.BetContext) (TierMatch, bool)

// PolicyTier resolves against one owner's policy.
func PolicyTier(origin domain.CommissionOrigin, policy *domain.CommissionPolicy) TierResolver {
	return func(bet domain.BetContext) (TierMatch, bool) {
		percent, rule, ok := ResolveCommission(policy, bet)
		if !ok {
			return TierMatch{}, false
		}
		return TierMatch{Percent: percent, Origin: origin, Rule: rule}, true
	}
}

// DefaultTier always matches with the system default.
func DefaultTier(percent decimal.Decimal) TierResolver {
	return func(domain.BetContext) (TierMatch, bool) {
		return TierMatch{Percent: percent, Origin: domain.OriginDefault}, true
	}
}

// Waterfall tries each tier in order and returns the first match. With no
// match at all it yields 0% from DEFAULT.
func Waterfall(bet domain.BetContext, tiers ...TierResolver) TierMatch {
	for _, tier := range tiers {
		if m, ok := tier(bet); ok {
			return m
		}
	}
	return TierMatch{Percent: decimal.Zero, Origin: domain.OriginDefault}
}

// ResolveWithFallback runs user → ventana → banca → default for a bet line.
func ResolveWithFallback(stack domain.PolicyStack, bet domain.BetContext, amount, defaultPercent decimal.Decimal) domain.CommissionResult {
	m := Waterfall(bet,
		PolicyTier(domain.OriginUser, stack.User),
		PolicyTier(domain.OriginVentana, stack.Ventana),
		PolicyTier(domain.OriginBanca, stack.Banca),
		DefaultTier(defaultPercent),
	)
	return domain.CommissionResult{
		Percent:     m.Percent,
		Amount:      CommissionAmount(amount, m.Percent),
		Origin:      m.Origin,
		MatchedRule: m.Rule,
	}
}

// ResolveWindowCommission resolves the ventana's own take for a bet, skipping
// the seller tier.
func ResolveWindowCommission(stack domain.PolicyStack, bet domain.BetContext, amount, defaultPercent decimal.Decimal) domain.CommissionResult {
	return ResolveWithFallback(domain.PolicyStack{Ventana: stack.Ventana, Banca: stack.Banca}, bet, amount, defaultPercent)
}

// ListeroCommission is max(0, windowCommission − sellerCommission).
func ListeroCommission(windowCommission, sellerCommission decimal.Decimal) decimal.Decimal {
	diff := windowCommission.Sub(sellerCommission)
	if diff.IsNegative() {
		return decimal.Zero
	}
	return diff
}

// ResolveListero is the ventana's share of a line above what the seller keeps.
func ResolveListero(stack domain.PolicyStack, bet domain.BetContext, amount, sellerCommission, defaultPercent decimal.Decimal) decimal.Decimal {
	window := ResolveWindowCommission(stack, bet, amount, defaultPercent)
	return ListeroCommission(window.Amount, sellerCommission)
}
