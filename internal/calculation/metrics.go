package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// Totals are the aggregate figures every downstream calculator consumes.
type Totals struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
	TotalIncome      decimal.Decimal
	MonthlyExpenses  decimal.Decimal
	AnnualExpenses   decimal.Decimal

	DebtToIncome        decimal.Decimal
	SavingsRate         decimal.Decimal // percent of income
	EmergencyFundMonths decimal.Decimal
	LifeInsuranceGap    decimal.Decimal
}

// MetricsEngine aggregates snapshot fields into totals and ratios. All
// divisions guard the zero-denominator case by returning zero.
type MetricsEngine struct {
	rules domain.PlannerRules
}

// NewMetricsEngine creates a metrics engine using the given planning rules.
func NewMetricsEngine(rules domain.PlannerRules) *MetricsEngine {
	return &MetricsEngine{rules: rules}
}

// Aggregate computes all totals and ratios for a snapshot.
func (me *MetricsEngine) Aggregate(hs *domain.HouseholdSnapshot) Totals {
	a := hs.Accounts
	assets := a.Checking.Add(a.Savings).Add(a.Retirement401k).Add(a.RetirementIRA).
		Add(a.Brokerage).Add(a.HomeValue).Add(a.OtherAssets)

	l := hs.Liabilities
	liabilities := l.Mortgage.Add(l.StudentLoans).Add(l.CarLoans).
		Add(l.CreditCards).Add(l.OtherDebts)

	e := hs.MonthlyExpenses
	monthly := e.Housing.Add(e.Utilities).Add(e.Food).Add(e.Transportation).
		Add(e.Insurance).Add(e.Entertainment).Add(e.Other)
	annual := monthly.Mul(decimal.NewFromInt(12))

	income := hs.TotalIncome()

	t := Totals{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
		TotalIncome:      income,
		MonthlyExpenses:  monthly,
		AnnualExpenses:   annual,
	}

	if income.GreaterThan(decimal.Zero) {
		t.DebtToIncome = liabilities.Div(income)
		surplus := income.Sub(annual)
		if surplus.GreaterThan(decimal.Zero) {
			t.SavingsRate = surplus.Div(income).Mul(decimal.NewFromInt(100))
		}
	}

	if monthly.GreaterThan(decimal.Zero) {
		t.EmergencyFundMonths = hs.LiquidSavings().Div(monthly)
	}

	needed := income.Mul(me.rules.LifeInsuranceMultiple)
	if hs.Insurance.LifeCoverage.LessThan(needed) {
		t.LifeInsuranceGap = needed.Sub(hs.Insurance.LifeCoverage)
	}

	return t
}
