package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// scoreTier is one row of an ordered scoring table: a metric at or above Min
// earns Points. Rows are evaluated top-down, first match wins; below the last
// row the score falls back to a linear slope down to zero.
type scoreTier struct {
	Min    decimal.Decimal
	Points decimal.Decimal
}

// applyTiers walks an ordered tier table for a higher-is-better metric. slope
// scales the metric into points when it sits below every named tier.
func applyTiers(metric decimal.Decimal, tiers []scoreTier, slope decimal.Decimal) decimal.Decimal {
	for _, t := range tiers {
		if metric.GreaterThanOrEqual(t.Min) {
			return t.Points
		}
	}
	pts := metric.Mul(slope)
	if pts.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return pts
}

// HealthScorer computes the 0-100 composite health score from five capped
// subscores: protection 25, savings rate 25, emergency fund 20, debt load 15,
// net worth 15.
type HealthScorer struct {
	rules domain.PlannerRules
}

// NewHealthScorer creates a health scorer using the given planning rules.
func NewHealthScorer(rules domain.PlannerRules) *HealthScorer {
	return &HealthScorer{rules: rules}
}

var (
	savingsRateTiers = []scoreTier{
		{decimal.NewFromInt(20), decimal.NewFromInt(25)},
		{decimal.NewFromInt(15), decimal.NewFromInt(20)},
		{decimal.NewFromInt(10), decimal.NewFromInt(15)},
		{decimal.NewFromInt(5), decimal.NewFromInt(10)},
	}
	emergencyFundTiers = []scoreTier{
		{decimal.NewFromInt(6), decimal.NewFromInt(20)},
		{decimal.NewFromInt(3), decimal.NewFromInt(14)},
		{decimal.NewFromInt(1), decimal.NewFromInt(8)},
	}
	netWorthRatioTiers = []scoreTier{
		{decimal.NewFromInt(5), decimal.NewFromInt(15)},
		{decimal.NewFromInt(3), decimal.NewFromInt(11)},
		{decimal.NewFromInt(1), decimal.NewFromInt(7)},
	}
	// debtToIncomeTiers is lower-is-better: evaluated against the max bound.
	debtToIncomeTiers = []scoreTier{
		{decimal.NewFromInt(2), decimal.NewFromInt(15)},
		{decimal.NewFromInt(3), decimal.NewFromInt(11)},
		{decimal.NewFromInt(4), decimal.NewFromInt(7)},
		{decimal.NewFromInt(5), decimal.NewFromInt(3)},
	}
)

// Score computes the composite score and its breakdown. The five subscore
// caps sum to exactly 100.
func (h *HealthScorer) Score(hs *domain.HouseholdSnapshot, t Totals) (int, domain.HealthBreakdown) {
	b := domain.HealthBreakdown{
		Protection:    h.protectionScore(hs, t),
		SavingsRate:   applyTiers(t.SavingsRate, savingsRateTiers, decimal.NewFromInt(1)),
		EmergencyFund: applyTiers(t.EmergencyFundMonths, emergencyFundTiers, decimal.NewFromInt(8)),
		DebtLoad:      h.debtScore(t),
		NetWorth:      h.netWorthScore(t),
	}
	total := b.Protection.Add(b.SavingsRate).Add(b.EmergencyFund).Add(b.DebtLoad).Add(b.NetWorth)
	return int(total.Round(0).IntPart()), b
}

// protectionScore awards up to 12 points for life insurance gap closure, 8
// for disability coverage and 5 for an estate plan.
func (h *HealthScorer) protectionScore(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
	score := decimal.Zero

	needed := t.TotalIncome.Mul(h.rules.LifeInsuranceMultiple)
	if needed.GreaterThan(decimal.Zero) {
		ratio := hs.Insurance.LifeCoverage.Div(needed)
		if ratio.GreaterThan(decimal.NewFromInt(1)) {
			ratio = decimal.NewFromInt(1)
		}
		score = score.Add(ratio.Mul(decimal.NewFromInt(12)))
	} else {
		// No income means no coverage need.
		score = score.Add(decimal.NewFromInt(12))
	}

	if hs.Insurance.DisabilityCoverage {
		score = score.Add(decimal.NewFromInt(8))
	}
	if hs.Insurance.EstatePlan {
		score = score.Add(decimal.NewFromInt(5))
	}
	return score
}

// debtScore maps debt-to-income through the lower-is-better tier table.
func (h *HealthScorer) debtScore(t Totals) decimal.Decimal {
	if t.TotalLiabilities.IsZero() {
		return decimal.NewFromInt(15)
	}
	if t.TotalIncome.IsZero() {
		return decimal.Zero
	}
	for _, tier := range debtToIncomeTiers {
		if t.DebtToIncome.LessThanOrEqual(tier.Min) {
			return tier.Points
		}
	}
	return decimal.Zero
}

func (h *HealthScorer) netWorthScore(t Totals) decimal.Decimal {
	if t.TotalIncome.IsZero() {
		if t.NetWorth.GreaterThan(decimal.Zero) {
			return decimal.NewFromInt(15)
		}
		return decimal.Zero
	}
	ratio := t.NetWorth.Div(t.TotalIncome)
	return applyTiers(ratio, netWorthRatioTiers, decimal.NewFromInt(7))
}
