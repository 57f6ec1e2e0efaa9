package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// RetirementModel produces the deterministic shortfall projection and, via
// the Monte Carlo simulator, the stochastic outcome distribution.
type RetirementModel struct {
	estimator *SocialSecurityEstimator
	projector *GoalProjector
	simulator *MonteCarloSimulator
	defaults  domain.AssumptionDefaults
}

// NewRetirementModel creates a retirement model.
func NewRetirementModel(estimator *SocialSecurityEstimator, projector *GoalProjector, simulator *MonteCarloSimulator, defaults domain.AssumptionDefaults) *RetirementModel {
	return &RetirementModel{
		estimator: estimator,
		projector: projector,
		simulator: simulator,
		defaults:  defaults,
	}
}

// defaultRetirementAge applies when the household declares no retirement goal.
const defaultRetirementAge = 67

// Analyze runs the full deterministic projection plus the Monte Carlo
// distribution for one snapshot.
func (rm *RetirementModel) Analyze(hs *domain.HouseholdSnapshot, t Totals, now time.Time) *domain.RetirementAnalysis {
	retireAge := hs.Goals.RetirementAge
	if retireAge <= 0 {
		retireAge = defaultRetirementAge
	}
	years := retireAge - hs.Age
	if years < 0 {
		years = 0
	}

	inflation := hs.InflationOrDefault(rm.defaults.InflationRate)
	returnRate := hs.ReturnRateOrDefault(rm.defaults.ReturnRate)

	// Desired annual retirement income, today's dollars.
	desired := hs.Goals.RetirementIncome
	if desired.LessThanOrEqual(decimal.Zero) {
		desired = t.TotalIncome.Mul(rm.defaults.ReplacementRatio)
	}

	claimAge := rm.defaults.SSClaimAge
	if hs.Assumptions != nil && hs.Assumptions.SSClaimAge > 0 {
		claimAge = hs.Assumptions.SSClaimAge
	}
	birthYear := now.Year() - hs.Age
	ssAnnual := rm.estimator.AnnualBenefit(t.TotalIncome, claimAge, birthYear)

	// Inflate both sides to the retirement date before netting.
	inflationFactor := compoundAnnual(inflation, years)
	inflatedDesired := desired.Mul(inflationFactor)
	inflatedSS := ssAnnual.Mul(inflationFactor)

	neededFromSavings := inflatedDesired.Sub(inflatedSS)
	if neededFromSavings.LessThan(decimal.Zero) {
		neededFromSavings = decimal.Zero
	}
	target := neededFromSavings.Mul(rm.defaults.WithdrawalMultiple)

	balance := hs.RetirementBalance()
	monthlyContribution := rm.recurringMonthlyContribution(hs, t)
	projected := balance.Mul(compoundAnnual(returnRate, years))
	if years > 0 && monthlyContribution.GreaterThan(decimal.Zero) {
		monthlyRate := returnRate.Div(decimal.NewFromInt(100)).Div(twelve)
		if monthlyRate.IsZero() {
			projected = projected.Add(monthlyContribution.Mul(decimal.NewFromInt(int64(years * 12))))
		} else {
			projected = projected.Add(monthlyContribution.Mul(annuityFactor(monthlyRate, years*12)))
		}
	}

	gap := target.Sub(projected)
	if gap.LessThan(decimal.Zero) {
		gap = decimal.Zero
	}

	// RequiredMonthly is the extra contribution on top of the recurring one,
	// solved against the projection gap so it is zero whenever OnTrack holds.
	analysis := &domain.RetirementAnalysis{
		YearsToRetirement: years,
		TargetSavings:     target,
		ProjectedSavings:  projected,
		Gap:               gap,
		RequiredMonthly:   rm.projector.RequiredMonthlyContribution(decimal.Zero, gap, years*12, returnRate),
		SocialSecurity:    ssAnnual,
		OnTrack:           gap.IsZero(),
		PercentFunded:     progressPct(projected, target),
		ChartBands:        chartBands(balance, monthlyContribution.Mul(twelve), years),
	}

	if rm.simulator != nil {
		analysis.MonteCarlo = rm.simulator.Run(balance, monthlyContribution.Mul(twelve), t.TotalIncome.Mul(rm.defaults.ReplacementRatio).Mul(rm.defaults.WithdrawalMultiple), years)
	}

	return analysis
}

// recurringMonthlyContribution is the contribution assumed to continue until
// retirement: the declared annual savings target when present, otherwise the
// current monthly surplus.
func (rm *RetirementModel) recurringMonthlyContribution(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
	if hs.Goals.AnnualSavingsTarget.GreaterThan(decimal.Zero) {
		return hs.Goals.AnnualSavingsTarget.Div(twelve)
	}
	surplus := t.TotalIncome.Sub(t.AnnualExpenses)
	if surplus.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return surplus.Div(twelve)
}

// compoundAnnual is (1 + pct/100)^years.
func compoundAnnual(annualPct decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.NewFromInt(1)
	}
	base := decimal.NewFromInt(1).Add(annualPct.Div(decimal.NewFromInt(100)))
	return base.Pow(decimal.NewFromInt(int64(years)))
}

// chartBands produces the fixed-rate conservative/median/optimistic yearly
// paths used for charting continuity. These are not statistics of the random
// simulation.
func chartBands(balance, annualContribution decimal.Decimal, years int) *domain.ProjectionBands {
	bands := &domain.ProjectionBands{
		Years:        make([]int, years+1),
		Conservative: make([]decimal.Decimal, years+1),
		Median:       make([]decimal.Decimal, years+1),
		Optimistic:   make([]decimal.Decimal, years+1),
	}
	rates := []decimal.Decimal{
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.08),
		decimal.NewFromFloat(0.12),
	}
	paths := [][]decimal.Decimal{bands.Conservative, bands.Median, bands.Optimistic}
	for p, rate := range rates {
		b := balance
		paths[p][0] = b
		for y := 1; y <= years; y++ {
			b = b.Mul(decimal.NewFromInt(1).Add(rate)).Add(annualContribution)
			paths[p][y] = b
		}
	}
	for y := 0; y <= years; y++ {
		bands.Years[y] = y
	}
	return bands
}
