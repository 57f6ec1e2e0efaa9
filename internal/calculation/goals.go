package calculation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finplan/finplan/internal/domain"
)

// GoalProjector solves for the level end-of-month contribution that funds a
// target amount over a horizon. It is reused by every declared goal and by
// the retirement shortfall.
type GoalProjector struct {
	log   *logrus.Logger
	rules domain.PlannerRules
}

// NewGoalProjector creates a goal projector. A nil logger falls back to the
// standard logrus logger.
func NewGoalProjector(log *logrus.Logger, rules domain.PlannerRules) *GoalProjector {
	if log == nil {
		log = logrus.New()
	}
	return &GoalProjector{log: log, rules: rules}
}

var twelve = decimal.NewFromInt(12)

// futureValue projects an amount forward n months at a monthly-compounded
// annual percentage rate.
func futureValue(amount decimal.Decimal, annualRatePct decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || annualRatePct.IsZero() {
		return amount
	}
	monthlyRate := annualRatePct.Div(decimal.NewFromInt(100)).Div(twelve)
	growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	return amount.Mul(growth)
}

// annuityFactor is ((1+r)^n - 1) / r, the future value of a 1-per-month
// ordinary annuity at monthly rate r over n months.
func annuityFactor(monthlyRate decimal.Decimal, months int) decimal.Decimal {
	growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	return growth.Sub(decimal.NewFromInt(1)).Div(monthlyRate)
}

// RequiredMonthlyContribution solves the ordinary-annuity future-value
// inversion for the payment that closes the gap between the projected current
// amount and the target. Invalid (negative) inputs return zero with a logged
// warning; the function never faults.
func (gp *GoalProjector) RequiredMonthlyContribution(current, target decimal.Decimal, monthsRemaining int, annualRatePct decimal.Decimal) decimal.Decimal {
	if current.LessThan(decimal.Zero) || target.LessThan(decimal.Zero) || annualRatePct.LessThan(decimal.Zero) {
		gp.log.WithFields(logrus.Fields{
			"current": current,
			"target":  target,
			"rate":    annualRatePct,
		}).Warn("goal solver received negative input, returning 0")
		return decimal.Zero
	}
	if monthsRemaining <= 0 {
		gap := target.Sub(current)
		if gap.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return gap
	}
	if target.LessThanOrEqual(current) {
		return decimal.Zero
	}

	gap := target.Sub(futureValue(current, annualRatePct, monthsRemaining))
	if gap.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if annualRatePct.IsZero() {
		return gap.Div(decimal.NewFromInt(int64(monthsRemaining)))
	}
	monthlyRate := annualRatePct.Div(decimal.NewFromInt(100)).Div(twelve)
	return gap.Div(annuityFactor(monthlyRate, monthsRemaining))
}

// ProjectGoals evaluates every declared goal, returning progress percentages
// (clamped to [0,100]) and required monthly contributions keyed by goal name.
func (gp *GoalProjector) ProjectGoals(hs *domain.HouseholdSnapshot, t Totals, defaults domain.AssumptionDefaults, now time.Time) (map[string]decimal.Decimal, map[string]decimal.Decimal) {
	progress := make(map[string]decimal.Decimal)
	required := make(map[string]decimal.Decimal)
	returnRate := hs.ReturnRateOrDefault(defaults.ReturnRate)
	yield := gp.rules.SavingsYieldPct

	if hs.Goals.EmergencyFundMonths > 0 {
		target := t.MonthlyExpenses.Mul(decimal.NewFromInt(int64(hs.Goals.EmergencyFundMonths)))
		current := hs.LiquidSavings()
		progress["emergency_fund"] = progressPct(current, target)
		// The emergency fund carries no target date, so it builds over the
		// configured horizon at the assumed savings yield.
		required["emergency_fund"] = gp.RequiredMonthlyContribution(current, target, gp.rules.EmergencyFundHorizonMonths, yield)
	}

	if hs.Goals.DownPaymentTarget.GreaterThan(decimal.Zero) {
		months := monthsUntil(now, hs.Goals.DownPaymentDate)
		current := hs.Accounts.Savings
		progress["down_payment"] = progressPct(current, hs.Goals.DownPaymentTarget)
		required["down_payment"] = gp.RequiredMonthlyContribution(current, hs.Goals.DownPaymentTarget, months, yield)
	}

	if hs.Goals.EducationTarget.GreaterThan(decimal.Zero) {
		months := yearsToCollege(hs, now) * 12
		current := hs.Goals.EducationSavings
		progress["education"] = progressPct(current, hs.Goals.EducationTarget)
		required["education"] = gp.RequiredMonthlyContribution(current, hs.Goals.EducationTarget, months, returnRate)
	}

	if mp := hs.Goals.MajorPurchase; mp != nil && mp.Amount.GreaterThan(decimal.Zero) {
		months := monthsUntil(now, mp.TargetDate)
		progress["major_purchase"] = progressPct(hs.Accounts.Savings, mp.Amount)
		required["major_purchase"] = gp.RequiredMonthlyContribution(decimal.Zero, mp.Amount, months, yield)
	}

	if hs.Goals.NetWorthTarget.GreaterThan(decimal.Zero) {
		months := 0
		if hs.Goals.RetirementAge > hs.Age {
			months = (hs.Goals.RetirementAge - hs.Age) * 12
		}
		current := t.NetWorth
		if current.LessThan(decimal.Zero) {
			current = decimal.Zero
		}
		progress["net_worth"] = progressPct(t.NetWorth, hs.Goals.NetWorthTarget)
		required["net_worth"] = gp.RequiredMonthlyContribution(current, hs.Goals.NetWorthTarget, months, returnRate)
	}

	if hs.Goals.AnnualSavingsTarget.GreaterThan(decimal.Zero) {
		actual := t.TotalIncome.Sub(t.AnnualExpenses)
		progress["savings_rate"] = progressPct(actual, hs.Goals.AnnualSavingsTarget)
		shortfall := hs.Goals.AnnualSavingsTarget.Sub(actual)
		if shortfall.GreaterThan(decimal.Zero) {
			required["savings_rate"] = shortfall.Div(twelve)
		} else {
			required["savings_rate"] = decimal.Zero
		}
	}

	return progress, required
}

// progressPct returns current/target as a percentage clamped to [0,100].
func progressPct(current, target decimal.Decimal) decimal.Decimal {
	if target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	pct := current.Div(target).Mul(decimal.NewFromInt(100))
	switch {
	case pct.LessThan(decimal.Zero):
		return decimal.Zero
	case pct.GreaterThan(decimal.NewFromInt(100)):
		return decimal.NewFromInt(100)
	default:
		return pct
	}
}

// monthsUntil returns whole months from now to the target date, zero for past
// or unset dates.
func monthsUntil(now, target time.Time) int {
	if target.IsZero() || !target.After(now) {
		return 0
	}
	months := (target.Year()-now.Year())*12 + int(target.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}

// yearsToCollege returns years until the youngest known child turns 18, with
// a ten-year default when no child ages are recorded.
func yearsToCollege(hs *domain.HouseholdSnapshot, now time.Time) int {
	if len(hs.ChildAges) == 0 {
		if hs.Dependents > 0 {
			return 18
		}
		return 10
	}
	youngest := hs.ChildAges[0]
	for _, age := range hs.ChildAges[1:] {
		if age < youngest {
			youngest = age
		}
	}
	years := 18 - youngest
	if years < 0 {
		return 0
	}
	return years
}
