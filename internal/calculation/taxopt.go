package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// TaxOptimizer evaluates a fixed catalog of conditional saving opportunities
// against the snapshot, each with an estimated dollar impact at the
// household's effective tax rate.
type TaxOptimizer struct {
	taxCalc *TaxCalculator
	limits  domain.ContributionLimits
	plan529 map[string]decimal.Decimal
	rules   domain.PlannerRules
}

// NewTaxOptimizer creates a tax optimizer drawing its limits, 529 deduction
// caps and planning rules from the regulatory table.
func NewTaxOptimizer(taxCalc *TaxCalculator, reg *domain.RegulatoryConfig) *TaxOptimizer {
	return &TaxOptimizer{taxCalc: taxCalc, limits: reg.Limits, plan529: reg.Plan529, rules: reg.Planner}
}

// Analyze runs every catalog rule. Total potential savings is the sum of all
// triggered estimates; the optimized bill is the current bill less that
// total.
func (to *TaxOptimizer) Analyze(hs *domain.HouseholdSnapshot, t Totals) *domain.TaxOptimization {
	income := t.TotalIncome
	current := to.taxCalc.Calculate(income, hs.State, hs.FilingStatus)
	effRate := current.EffectiveRate.Div(decimal.NewFromInt(100))

	opt := &domain.TaxOptimization{CurrentTax: current}
	add := func(rec domain.TaxRecommendation) {
		opt.Recommendations = append(opt.Recommendations, rec)
		opt.PotentialSavings = opt.PotentialSavings.Add(rec.EstimatedSavings)
	}

	// Retirement account headroom against the annual limit. Without a
	// contribution figure in the snapshot, the declared savings target bounds
	// what is already flowing into the account.
	if income.GreaterThan(decimal.Zero) {
		contributed := decimal.Min(hs.Goals.AnnualSavingsTarget, to.limits.Limit401k)
		headroom := to.limits.Limit401k.Sub(contributed)
		if headroom.GreaterThan(decimal.Zero) {
			add(domain.TaxRecommendation{
				Title:            "Max out workplace retirement contributions",
				Description:      fmt.Sprintf("Contributing the remaining $%s of the annual limit defers tax at your marginal rate.", headroom.StringFixed(0)),
				EstimatedSavings: headroom.Mul(effRate),
				Difficulty:       "easy",
			})
		}
	}

	// HSA eligibility above the income floor.
	if income.GreaterThan(to.limits.HSAIncomeFloor) {
		limit := to.limits.LimitHSASingle
		if hs.FilingStatus == domain.FilingMarriedJoint || hs.Dependents > 0 {
			limit = to.limits.LimitHSAFamily
		}
		add(domain.TaxRecommendation{
			Title:            "Fund a health savings account",
			Description:      fmt.Sprintf("An HSA shelters up to $%s a year with triple tax advantage if paired with a qualifying health plan.", limit.StringFixed(0)),
			EstimatedSavings: limit.Mul(effRate),
			Difficulty:       "moderate",
		})
	}

	// Tax-loss harvesting proportional to the brokerage balance, capped at
	// the deductible-loss limit.
	if hs.Accounts.Brokerage.GreaterThan(decimal.Zero) {
		harvest := decimal.Min(hs.Accounts.Brokerage.Mul(to.rules.LossHarvestFraction), to.limits.CapitalLossLimit)
		if harvest.GreaterThan(decimal.Zero) {
			add(domain.TaxRecommendation{
				Title:            "Harvest taxable investment losses",
				Description:      fmt.Sprintf("Realizing roughly $%s of losses offsets ordinary income up to the annual deduction limit.", harvest.StringFixed(0)),
				EstimatedSavings: harvest.Mul(effRate),
				Difficulty:       "moderate",
			})
		}
	}

	// Backdoor Roth above the joint-filer income threshold.
	if hs.FilingStatus == domain.FilingMarriedJoint && income.GreaterThan(to.limits.BackdoorRothFloorMFJ) {
		add(domain.TaxRecommendation{
			Title:            "Use a backdoor Roth contribution",
			Description:      "Above the direct Roth IRA income limit, a nondeductible IRA contribution converted to Roth preserves tax-free growth.",
			EstimatedSavings: to.limits.LimitIRA.Mul(effRate),
			Difficulty:       "complex",
		})
	}

	// Charitable bunching proportional to income above the floor.
	if income.GreaterThan(to.limits.CharitableFloor) {
		bunched := income.Mul(decimal.NewFromFloat(0.02))
		add(domain.TaxRecommendation{
			Title:            "Bunch charitable contributions",
			Description:      "Concentrating two years of giving into one year clears the standard deduction and makes the gifts deductible.",
			EstimatedSavings: bunched.Mul(effRate),
			Difficulty:       "moderate",
		})
	}

	// State 529 deduction for enumerated states.
	if cap529, ok := to.plan529[hs.State]; ok && (hs.Dependents > 0 || hs.Goals.EducationTarget.GreaterThan(decimal.Zero)) {
		stateRate := decimal.Zero
		if income.GreaterThan(decimal.Zero) {
			stateRate = current.StateTax.Div(income)
		}
		add(domain.TaxRecommendation{
			Title:            "Deduct 529 plan contributions",
			Description:      fmt.Sprintf("%s allows deducting up to $%s of 529 contributions from state taxable income.", hs.State, cap529.StringFixed(0)),
			EstimatedSavings: cap529.Mul(stateRate),
			Difficulty:       "easy",
		})
	}

	opt.OptimizedTax = current.TotalTax.Sub(opt.PotentialSavings)
	if opt.OptimizedTax.LessThan(decimal.Zero) {
		opt.OptimizedTax = decimal.Zero
	}
	return opt
}
