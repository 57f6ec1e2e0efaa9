package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryConfig is the versioned table of constants the calculators depend
// on: tax bracket data, Social Security bend points, contribution limits and
// default economic assumptions. These change yearly, so they live here as data
// (with coded defaults for the current data year) rather than inside
// algorithmic code. A YAML file with the same shape can override any section.
type RegulatoryConfig struct {
	Metadata       RegulatoryMetadata         `yaml:"metadata" json:"metadata"`
	FederalTax     FederalTaxRules            `yaml:"federal_tax" json:"federal_tax"`
	States         map[string]StateRules      `yaml:"states" json:"states"`
	SocialSecurity SocialSecurityRules        `yaml:"social_security" json:"social_security"`
	Limits         ContributionLimits         `yaml:"limits" json:"limits"`
	Defaults       AssumptionDefaults         `yaml:"defaults" json:"defaults"`
	MonteCarlo     MonteCarloDefaults         `yaml:"monte_carlo" json:"monte_carlo"`
	Planner        PlannerRules               `yaml:"planner" json:"planner"`
	Plan529        map[string]decimal.Decimal `yaml:"plan_529_deductions" json:"plan_529_deductions"`
}

// RegulatoryMetadata identifies the data vintage.
type RegulatoryMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	Description string `yaml:"description" json:"description"`
}

// TaxBracket is one row of a progressive bracket table: the marginal rate
// applies to income up to UpTo. The final row of a table uses a zero UpTo to
// mark the open-ended bracket.
type TaxBracket struct {
	UpTo decimal.Decimal `yaml:"up_to" json:"up_to"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"` // fraction, e.g. 0.22
}

// FederalTaxRules contains the federal bracket tables and standard deductions
// by filing status.
type FederalTaxRules struct {
	StandardDeductionSingle decimal.Decimal `yaml:"standard_deduction_single" json:"standard_deduction_single"`
	StandardDeductionMFJ    decimal.Decimal `yaml:"standard_deduction_mfj" json:"standard_deduction_mfj"`
	BracketsSingle          []TaxBracket    `yaml:"brackets_single" json:"brackets_single"`
	BracketsMFJ             []TaxBracket    `yaml:"brackets_mfj" json:"brackets_mfj"`
}

// StateRules contains one jurisdiction's bracket table. States without an
// income tax carry an empty table and the NoIncomeTax flag, which the
// calculator uses as a zero-rate fast path.
type StateRules struct {
	NoIncomeTax bool         `yaml:"no_income_tax,omitempty" json:"no_income_tax,omitempty"`
	Brackets    []TaxBracket `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}

// SocialSecurityRules holds the simplified PIA formula constants.
type SocialSecurityRules struct {
	BendPoint1        decimal.Decimal `yaml:"bend_point_1" json:"bend_point_1"` // monthly
	BendPoint2        decimal.Decimal `yaml:"bend_point_2" json:"bend_point_2"` // monthly
	Rate1             decimal.Decimal `yaml:"rate_1" json:"rate_1"`
	Rate2             decimal.Decimal `yaml:"rate_2" json:"rate_2"`
	Rate3             decimal.Decimal `yaml:"rate_3" json:"rate_3"`
	MaxMonthlyBenefit decimal.Decimal `yaml:"max_monthly_benefit" json:"max_monthly_benefit"`
	EarlyClaimPenalty decimal.Decimal `yaml:"early_claim_penalty" json:"early_claim_penalty"` // per year, fraction
	LateClaimCredit   decimal.Decimal `yaml:"late_claim_credit" json:"late_claim_credit"`     // per year, fraction
}

// ContributionLimits holds annual account limits and thresholds used by the
// tax optimizer.
type ContributionLimits struct {
	Limit401k            decimal.Decimal `yaml:"limit_401k" json:"limit_401k"`
	LimitIRA             decimal.Decimal `yaml:"limit_ira" json:"limit_ira"`
	LimitHSASingle       decimal.Decimal `yaml:"limit_hsa_single" json:"limit_hsa_single"`
	LimitHSAFamily       decimal.Decimal `yaml:"limit_hsa_family" json:"limit_hsa_family"`
	CapitalLossLimit     decimal.Decimal `yaml:"capital_loss_limit" json:"capital_loss_limit"`
	BackdoorRothFloorMFJ decimal.Decimal `yaml:"backdoor_roth_floor_mfj" json:"backdoor_roth_floor_mfj"`
	HSAIncomeFloor       decimal.Decimal `yaml:"hsa_income_floor" json:"hsa_income_floor"`
	CharitableFloor      decimal.Decimal `yaml:"charitable_floor" json:"charitable_floor"`
}

// AssumptionDefaults holds the economic assumptions applied when the snapshot
// does not override them. Rates are annual percentages.
type AssumptionDefaults struct {
	InflationRate      decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	ReturnRate         decimal.Decimal `yaml:"return_rate" json:"return_rate"`
	SalaryGrowthRate   decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	SSClaimAge         int             `yaml:"ss_claim_age" json:"ss_claim_age"`
	EducationInflation decimal.Decimal `yaml:"education_inflation" json:"education_inflation"`
	EducationGrowth    decimal.Decimal `yaml:"education_growth" json:"education_growth"`
	CollegeBaseCost    decimal.Decimal `yaml:"college_base_cost" json:"college_base_cost"`     // 4-year total, today's dollars
	WithdrawalMultiple decimal.Decimal `yaml:"withdrawal_multiple" json:"withdrawal_multiple"` // 4% rule => 25
	ReplacementRatio   decimal.Decimal `yaml:"replacement_ratio" json:"replacement_ratio"`     // fraction of income
}

// MonteCarloDefaults holds the stochastic simulation parameters.
type MonteCarloDefaults struct {
	Simulations   int             `yaml:"simulations" json:"simulations"`
	MeanReturnPct decimal.Decimal `yaml:"mean_return_pct" json:"mean_return_pct"`
	StdevPct      decimal.Decimal `yaml:"stdev_pct" json:"stdev_pct"`
}

// PlannerRules holds the planning heuristics the calculators apply: coverage
// multiples, screening floors and modeling horizons. Like the tax tables they
// are data, published guidance rather than statute, and a YAML override can
// retune them without touching calculator code.
type PlannerRules struct {
	LifeInsuranceMultiple      decimal.Decimal `yaml:"life_insurance_multiple" json:"life_insurance_multiple"`
	UmbrellaNetWorthFloor      decimal.Decimal `yaml:"umbrella_net_worth_floor" json:"umbrella_net_worth_floor"`
	RetirementGapFloor         decimal.Decimal `yaml:"retirement_gap_floor" json:"retirement_gap_floor"`
	HighAPRFloor               decimal.Decimal `yaml:"high_apr_floor" json:"high_apr_floor"` // annual percentage
	EmergencyFundHorizonMonths int             `yaml:"emergency_fund_horizon_months" json:"emergency_fund_horizon_months"`
	SavingsYieldPct            decimal.Decimal `yaml:"savings_yield_pct" json:"savings_yield_pct"`
	LossHarvestFraction        decimal.Decimal `yaml:"loss_harvest_fraction" json:"loss_harvest_fraction"` // of taxable holdings
}

func bracket(upTo int64, rate float64) TaxBracket {
	return TaxBracket{UpTo: decimal.NewFromInt(upTo), Rate: decimal.NewFromFloat(rate)}
}

func openBracket(rate float64) TaxBracket {
	return TaxBracket{Rate: decimal.NewFromFloat(rate)}
}

// DefaultRegulatoryConfig returns the coded 2024 data-year constants.
func DefaultRegulatoryConfig() *RegulatoryConfig {
	noTax := StateRules{NoIncomeTax: true}
	flat := func(rate float64) StateRules {
		return StateRules{Brackets: []TaxBracket{openBracket(rate)}}
	}
	return &RegulatoryConfig{
		Metadata: RegulatoryMetadata{
			DataYear:    2024,
			Description: "2024 federal and state tax data, SSA bend points and IRS limits",
		},
		FederalTax: FederalTaxRules{
			StandardDeductionSingle: decimal.NewFromInt(14600),
			StandardDeductionMFJ:    decimal.NewFromInt(29200),
			BracketsSingle: []TaxBracket{
				bracket(11600, 0.10),
				bracket(47150, 0.12),
				bracket(100525, 0.22),
				bracket(191950, 0.24),
				bracket(243725, 0.32),
				bracket(609350, 0.35),
				openBracket(0.37),
			},
			BracketsMFJ: []TaxBracket{
				bracket(23200, 0.10),
				bracket(94300, 0.12),
				bracket(201050, 0.22),
				bracket(383900, 0.24),
				bracket(487450, 0.32),
				bracket(731200, 0.35),
				openBracket(0.37),
			},
		},
		States: map[string]StateRules{
			"AK": noTax, "FL": noTax, "NV": noTax, "NH": noTax, "SD": noTax,
			"TN": noTax, "TX": noTax, "WA": noTax, "WY": noTax,
			"AZ": flat(0.025),
			"CO": flat(0.044),
			"GA": flat(0.0549),
			"IL": flat(0.0495),
			"IN": flat(0.0305),
			"KY": flat(0.040),
			"MA": flat(0.050),
			"MI": flat(0.0425),
			"NC": flat(0.045),
			"PA": flat(0.0307),
			"UT": flat(0.0465),
			"CA": {Brackets: []TaxBracket{
				bracket(10412, 0.01),
				bracket(24684, 0.02),
				bracket(38959, 0.04),
				bracket(54081, 0.06),
				bracket(68350, 0.08),
				bracket(349137, 0.093),
				bracket(418961, 0.103),
				bracket(698271, 0.113),
				openBracket(0.123),
			}},
			"NY": {Brackets: []TaxBracket{
				bracket(8500, 0.04),
				bracket(11700, 0.045),
				bracket(13900, 0.0525),
				bracket(80650, 0.055),
				bracket(215400, 0.06),
				bracket(1077550, 0.0685),
				openBracket(0.0882),
			}},
			"VA": {Brackets: []TaxBracket{
				bracket(3000, 0.02),
				bracket(5000, 0.03),
				bracket(17000, 0.05),
				openBracket(0.0575),
			}},
			"OH": {Brackets: []TaxBracket{
				bracket(26050, 0.0),
				bracket(100000, 0.0275),
				openBracket(0.035),
			}},
			"MD": {Brackets: []TaxBracket{
				bracket(1000, 0.02),
				bracket(2000, 0.03),
				bracket(3000, 0.04),
				bracket(100000, 0.0475),
				bracket(125000, 0.05),
				bracket(150000, 0.0525),
				bracket(250000, 0.055),
				openBracket(0.0575),
			}},
		},
		SocialSecurity: SocialSecurityRules{
			BendPoint1:        decimal.NewFromInt(1174),
			BendPoint2:        decimal.NewFromInt(7078),
			Rate1:             decimal.NewFromFloat(0.90),
			Rate2:             decimal.NewFromFloat(0.32),
			Rate3:             decimal.NewFromFloat(0.15),
			MaxMonthlyBenefit: decimal.NewFromInt(3822),
			EarlyClaimPenalty: decimal.NewFromFloat(0.07),
			LateClaimCredit:   decimal.NewFromFloat(0.08),
		},
		Limits: ContributionLimits{
			Limit401k:            decimal.NewFromInt(23000),
			LimitIRA:             decimal.NewFromInt(7000),
			LimitHSASingle:       decimal.NewFromInt(4150),
			LimitHSAFamily:       decimal.NewFromInt(8300),
			CapitalLossLimit:     decimal.NewFromInt(3000),
			BackdoorRothFloorMFJ: decimal.NewFromInt(240000),
			HSAIncomeFloor:       decimal.NewFromInt(50000),
			CharitableFloor:      decimal.NewFromInt(100000),
		},
		Defaults: AssumptionDefaults{
			InflationRate:      decimal.NewFromFloat(2.5),
			ReturnRate:         decimal.NewFromFloat(7.0),
			SalaryGrowthRate:   decimal.NewFromFloat(3.0),
			SSClaimAge:         67,
			EducationInflation: decimal.NewFromFloat(5.0),
			EducationGrowth:    decimal.NewFromFloat(7.0),
			CollegeBaseCost:    decimal.NewFromInt(120000),
			WithdrawalMultiple: decimal.NewFromInt(25),
			ReplacementRatio:   decimal.NewFromFloat(0.70),
		},
		MonteCarlo: MonteCarloDefaults{
			Simulations:   1000,
			MeanReturnPct: decimal.NewFromInt(8),
			StdevPct:      decimal.NewFromInt(12),
		},
		Planner: PlannerRules{
			LifeInsuranceMultiple:      decimal.NewFromInt(10),
			UmbrellaNetWorthFloor:      decimal.NewFromInt(500000),
			RetirementGapFloor:         decimal.NewFromInt(100000),
			HighAPRFloor:               decimal.NewFromInt(15),
			EmergencyFundHorizonMonths: 24,
			SavingsYieldPct:            decimal.NewFromFloat(2.0),
			LossHarvestFraction:        decimal.NewFromFloat(0.02),
		},
		Plan529: map[string]decimal.Decimal{
			"NY": decimal.NewFromInt(10000),
			"IL": decimal.NewFromInt(20000),
			"PA": decimal.NewFromInt(36000),
			"VA": decimal.NewFromInt(4000),
			"CO": decimal.NewFromInt(20700),
			"MD": decimal.NewFromInt(2500),
			"GA": decimal.NewFromInt(8000),
		},
	}
}
