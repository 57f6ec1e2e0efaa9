package calculation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finplan/finplan/internal/domain"
)

// Engine orchestrates the full derivation for one snapshot: metrics first,
// then every analysis that consumes them, action items last. It holds no
// state between invocations; distinct snapshots may be analyzed concurrently.
type Engine struct {
	Metrics    *MetricsEngine
	Health     *HealthScorer
	Risk       *RiskAssessor
	Taxes      *TaxCalculator
	Goals      *GoalProjector
	Retirement *RetirementModel
	Debts      *DebtPayoffSimulator
	Portfolio  *PortfolioAnalyzer
	College    *CollegePlanner
	TaxOpt     *TaxOptimizer
	Actions    *ActionItemGenerator

	defaults domain.AssumptionDefaults

	// Now supplies the reference date for horizon calculations; tests pin it.
	Now func() time.Time
}

// NewEngine wires an engine from regulatory constants. A nil logger falls
// back to the standard logrus logger; seed drives the Monte Carlo generator.
func NewEngine(reg *domain.RegulatoryConfig, log *logrus.Logger, seed int64) *Engine {
	if reg == nil {
		reg = domain.DefaultRegulatoryConfig()
	}
	if log == nil {
		log = logrus.New()
	}
	taxes := NewTaxCalculator(reg)
	projector := NewGoalProjector(log, reg.Planner)
	estimator := NewSocialSecurityEstimator(reg.SocialSecurity)
	simulator := NewMonteCarloSimulator(reg.MonteCarlo, seed)

	return &Engine{
		Metrics:    NewMetricsEngine(reg.Planner),
		Health:     NewHealthScorer(reg.Planner),
		Risk:       NewRiskAssessor(reg.Planner),
		Taxes:      taxes,
		Goals:      projector,
		Retirement: NewRetirementModel(estimator, projector, simulator, reg.Defaults),
		Debts:      NewDebtPayoffSimulator(log),
		Portfolio:  NewPortfolioAnalyzer(),
		College:    NewCollegePlanner(projector, reg.Defaults),
		TaxOpt:     NewTaxOptimizer(taxes, reg),
		Actions:    NewActionItemGenerator(reg.Planner),
		defaults:   reg.Defaults,
		Now:        time.Now,
	}
}

// Analyze recomputes the full output graph for one snapshot.
func (e *Engine) Analyze(hs *domain.HouseholdSnapshot) (domain.DerivedMetrics, domain.RiskAssessment) {
	now := e.Now()
	totals := e.Metrics.Aggregate(hs)

	score, breakdown := e.Health.Score(hs, totals)
	risk := e.Risk.Assess(hs, totals)

	metrics := domain.DerivedMetrics{
		TotalAssets:         totals.TotalAssets,
		TotalLiabilities:    totals.TotalLiabilities,
		NetWorth:            totals.NetWorth,
		TotalIncome:         totals.TotalIncome,
		MonthlyExpenses:     totals.MonthlyExpenses,
		AnnualExpenses:      totals.AnnualExpenses,
		DebtToIncome:        totals.DebtToIncome,
		SavingsRate:         totals.SavingsRate,
		EmergencyFundMonths: totals.EmergencyFundMonths,
		LifeInsuranceGap:    totals.LifeInsuranceGap,
		HealthScore:         score,
		HealthBreakdown:     breakdown,
	}

	metrics.GoalProgress, metrics.RequiredContributions = e.Goals.ProjectGoals(hs, totals, e.defaults, now)
	metrics.Retirement = e.Retirement.Analyze(hs, totals, now)
	metrics.Portfolio = e.Portfolio.Analyze(hs.Portfolio, hs.Age)
	metrics.College = e.College.Analyze(hs, now)
	metrics.TaxOptimization = e.TaxOpt.Analyze(hs, totals)

	if len(hs.Debts) > 0 {
		metrics.DebtPayoff = e.Debts.Compare(hs.Debts, e.monthlySurplus(totals))
		if progress, ok := debtFreeProgress(hs, metrics.DebtPayoff, now); ok {
			metrics.GoalProgress["debt_free"] = progress
		}
	}

	metrics.ActionItems = e.Actions.Generate(hs, totals, risk, metrics.Retirement, metrics.Portfolio, now)

	return metrics, risk
}

// debtFreeProgress scores the debt-free-date goal against the recommended
// payoff plan: 100 when the plan clears the debts by the goal date, otherwise
// the share of the payoff horizon the goal date covers. Unset dates and
// non-convergent plans report no progress entry.
func debtFreeProgress(hs *domain.HouseholdSnapshot, dp *domain.DebtPayoffAnalysis, now time.Time) (decimal.Decimal, bool) {
	if hs.Goals.DebtFreeDate.IsZero() || dp == nil {
		return decimal.Decimal{}, false
	}
	plan := dp.Avalanche
	if dp.RecommendedMethod == "snowball" {
		plan = dp.Snowball
	}
	if !plan.Converged || plan.MonthsToPayoff <= 0 {
		return decimal.Decimal{}, false
	}
	available := monthsUntil(now, hs.Goals.DebtFreeDate)
	return progressPct(decimal.NewFromInt(int64(available)), decimal.NewFromInt(int64(plan.MonthsToPayoff))), true
}

// monthlySurplus is the extra payment budget available beyond minimums.
func (e *Engine) monthlySurplus(t Totals) decimal.Decimal {
	surplus := t.TotalIncome.Sub(t.AnnualExpenses).Div(twelve)
	if surplus.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return surplus
}
