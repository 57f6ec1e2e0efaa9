package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DerivedMetrics is the full derived output graph for one snapshot. It has no
// identity of its own; every field is recomputed wholesale on each call.
type DerivedMetrics struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	MonthlyExpenses  decimal.Decimal `json:"monthlyExpenses"`
	AnnualExpenses   decimal.Decimal `json:"annualExpenses"`

	DebtToIncome        decimal.Decimal `json:"debtToIncome"`
	SavingsRate         decimal.Decimal `json:"savingsRate"` // percent of income
	EmergencyFundMonths decimal.Decimal `json:"emergencyFundMonths"`
	LifeInsuranceGap    decimal.Decimal `json:"lifeInsuranceGap"`

	HealthScore     int             `json:"healthScore"`
	HealthBreakdown HealthBreakdown `json:"healthBreakdown"`

	GoalProgress          map[string]decimal.Decimal `json:"goalProgress,omitempty"`
	RequiredContributions map[string]decimal.Decimal `json:"requiredContributions,omitempty"`

	Retirement      *RetirementAnalysis `json:"retirement,omitempty"`
	Portfolio       *PortfolioAnalysis  `json:"portfolio,omitempty"`
	DebtPayoff      *DebtPayoffAnalysis `json:"debtPayoff,omitempty"`
	College         *CollegeAnalysis    `json:"college,omitempty"`
	TaxOptimization *TaxOptimization    `json:"taxOptimization,omitempty"`

	ActionItems []ActionItem `json:"actionItems,omitempty"`
}

// HealthBreakdown itemizes the composite health score. The five subscore caps
// are 25, 25, 20, 15 and 15 points and always sum to the reported total.
type HealthBreakdown struct {
	Protection    decimal.Decimal `json:"protection"`
	SavingsRate   decimal.Decimal `json:"savingsRate"`
	EmergencyFund decimal.Decimal `json:"emergencyFund"`
	DebtLoad      decimal.Decimal `json:"debtLoad"`
	NetWorth      decimal.Decimal `json:"netWorth"`
}

// TaxResult is the output of a single tax computation.
type TaxResult struct {
	StateTax      decimal.Decimal `json:"stateTax"`
	FederalTax    decimal.Decimal `json:"federalTax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"` // percent
}

// RetirementAnalysis is the deterministic retirement projection plus the
// optional Monte Carlo distribution.
type RetirementAnalysis struct {
	YearsToRetirement int               `json:"yearsToRetirement"`
	TargetSavings     decimal.Decimal   `json:"targetSavings"`
	ProjectedSavings  decimal.Decimal   `json:"projectedSavings"`
	Gap               decimal.Decimal   `json:"gap"`
	RequiredMonthly   decimal.Decimal   `json:"requiredMonthly"`
	SocialSecurity    decimal.Decimal   `json:"socialSecurity"` // estimated annual benefit at claim age
	OnTrack           bool              `json:"onTrack"`
	PercentFunded     decimal.Decimal   `json:"percentFunded"`
	ChartBands        *ProjectionBands  `json:"chartBands,omitempty"`
	MonteCarlo        *MonteCarloResult `json:"monteCarlo,omitempty"`
}

// ProjectionBands are fixed-rate conservative/median/optimistic yearly paths
// produced for charting continuity. They are not statistics of the random
// simulation and must not be read as its percentiles.
type ProjectionBands struct {
	Years        []int             `json:"years"`
	Conservative []decimal.Decimal `json:"conservative"` // 4% fixed
	Median       []decimal.Decimal `json:"median"`       // 8% fixed
	Optimistic   []decimal.Decimal `json:"optimistic"`   // 12% fixed
}

// MonteCarloResult summarizes the stochastic retirement simulation.
type MonteCarloResult struct {
	Simulations  int             `json:"simulations"`
	Percentile10 decimal.Decimal `json:"percentile10"`
	Median       decimal.Decimal `json:"median"`
	Percentile90 decimal.Decimal `json:"percentile90"`
	SuccessRate  decimal.Decimal `json:"successRate"` // fraction 0..1
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

// PortfolioAnalysis characterizes an allocation against the age-based target.
type PortfolioAnalysis struct {
	RiskScore        decimal.Decimal `json:"riskScore"` // 0-100, equals stock share
	ExpectedReturn   decimal.Decimal `json:"expectedReturn"`
	TargetStocksPct  decimal.Decimal `json:"targetStocksPct"`
	CurrentStocksPct decimal.Decimal `json:"currentStocksPct"`
	RebalanceNeeded  bool            `json:"rebalanceNeeded"`
	Warnings         []string        `json:"warnings,omitempty"`
}

// DebtPayoffAnalysis compares the avalanche and snowball orderings.
type DebtPayoffAnalysis struct {
	Avalanche         PayoffPlan      `json:"avalanche"`
	Snowball          PayoffPlan      `json:"snowball"`
	RecommendedMethod string          `json:"recommendedMethod"`
	InterestSavings   decimal.Decimal `json:"interestSavings"` // avalanche vs snowball
	MonthsSaved       int             `json:"monthsSaved"`
}

// PayoffPlan is the outcome of one simulated payoff ordering.
type PayoffPlan struct {
	Method            string          `json:"method"`
	MonthsToPayoff    int             `json:"monthsToPayoff"`
	TotalInterest     decimal.Decimal `json:"totalInterest"`
	PayoffOrder       []DebtPayoff    `json:"payoffOrder"`
	Converged         bool            `json:"converged"`
	NonConvergenceMsg string          `json:"nonConvergenceMsg,omitempty"`
}

// DebtPayoff records when a single debt reaches zero within a plan.
type DebtPayoff struct {
	Name         string          `json:"name"`
	MonthsToZero int             `json:"monthsToZero"`
	InterestPaid decimal.Decimal `json:"interestPaid"`
}

// CollegeAnalysis projects education costs for the snapshot's dependents.
type CollegeAnalysis struct {
	Children         []ChildProjection `json:"children"`
	TotalCost        decimal.Decimal   `json:"totalCost"`
	ProjectedSavings decimal.Decimal   `json:"projectedSavings"`
	Shortfall        decimal.Decimal   `json:"shortfall"`
	RequiredMonthly  decimal.Decimal   `json:"requiredMonthly"`
}

// ChildProjection is the projected cost for one dependent.
type ChildProjection struct {
	Age            int             `json:"age"`
	YearsToCollege int             `json:"yearsToCollege"`
	ProjectedCost  decimal.Decimal `json:"projectedCost"`
}

// TaxOptimization is the set of triggered tax-saving recommendations.
type TaxOptimization struct {
	CurrentTax       TaxResult           `json:"currentTax"`
	Recommendations  []TaxRecommendation `json:"recommendations"`
	PotentialSavings decimal.Decimal     `json:"potentialSavings"`
	OptimizedTax     decimal.Decimal     `json:"optimizedTax"`
}

// TaxRecommendation is one conditional saving opportunity.
type TaxRecommendation struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	EstimatedSavings decimal.Decimal `json:"estimatedSavings"`
	Difficulty       string          `json:"difficulty"` // easy, moderate, complex
}

// Priority orders action items; lower sorts first.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// ActionItem is one prioritized recommendation in the capped final list.
// Deadline is always populated, spaced out from the analysis date by the
// item's priority.
type ActionItem struct {
	Priority Priority  `json:"priority"`
	Category string    `json:"category"`
	Action   string    `json:"action"`
	Impact   string    `json:"impact"`
	Deadline time.Time `json:"deadline"`
}
