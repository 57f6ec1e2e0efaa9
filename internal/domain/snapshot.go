package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilingStatus identifies the federal filing status used for bracket selection.
type FilingStatus string

const (
	FilingSingle       FilingStatus = "single"
	FilingMarriedJoint FilingStatus = "married_joint"
)

// HouseholdSnapshot is the complete input to the calculation engine. It is
// caller-owned and treated as immutable for the duration of a call; every
// derived output is recomputed from scratch on each invocation.
type HouseholdSnapshot struct {
	Age        int   `yaml:"age" json:"age"`
	Dependents int   `yaml:"dependents" json:"dependents"`
	ChildAges  []int `yaml:"child_ages,omitempty" json:"childAges,omitempty"`

	AnnualIncome decimal.Decimal `yaml:"annual_income" json:"annualIncome"`
	SpouseIncome decimal.Decimal `yaml:"spouse_income" json:"spouseIncome"`

	Accounts        Accounts        `yaml:"accounts" json:"accounts"`
	Liabilities     Liabilities     `yaml:"liabilities" json:"liabilities"`
	MonthlyExpenses MonthlyExpenses `yaml:"monthly_expenses" json:"monthlyExpenses"`
	Insurance       Insurance       `yaml:"insurance" json:"insurance"`

	State        string       `yaml:"state" json:"state"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filingStatus"`

	Goals       Goals         `yaml:"goals" json:"goals"`
	Debts       []DebtAccount `yaml:"debts,omitempty" json:"debts,omitempty"`
	Portfolio   *Allocation   `yaml:"portfolio,omitempty" json:"portfolio,omitempty"`
	Assumptions *Assumptions  `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
}

// Accounts holds current balances by account type.
type Accounts struct {
	Checking       decimal.Decimal `yaml:"checking" json:"checking"`
	Savings        decimal.Decimal `yaml:"savings" json:"savings"`
	Retirement401k decimal.Decimal `yaml:"retirement_401k" json:"retirement401k"`
	RetirementIRA  decimal.Decimal `yaml:"retirement_ira" json:"retirementIRA"`
	Brokerage      decimal.Decimal `yaml:"brokerage" json:"brokerage"`
	HomeValue      decimal.Decimal `yaml:"home_value" json:"homeValue"`
	OtherAssets    decimal.Decimal `yaml:"other_assets" json:"otherAssets"`
}

// Liabilities holds outstanding balances by debt type.
type Liabilities struct {
	Mortgage     decimal.Decimal `yaml:"mortgage" json:"mortgage"`
	StudentLoans decimal.Decimal `yaml:"student_loans" json:"studentLoans"`
	CarLoans     decimal.Decimal `yaml:"car_loans" json:"carLoans"`
	CreditCards  decimal.Decimal `yaml:"credit_cards" json:"creditCards"`
	OtherDebts   decimal.Decimal `yaml:"other_debts" json:"otherDebts"`
}

// MonthlyExpenses holds the seven tracked monthly expense categories.
type MonthlyExpenses struct {
	Housing        decimal.Decimal `yaml:"housing" json:"housing"`
	Utilities      decimal.Decimal `yaml:"utilities" json:"utilities"`
	Food           decimal.Decimal `yaml:"food" json:"food"`
	Transportation decimal.Decimal `yaml:"transportation" json:"transportation"`
	Insurance      decimal.Decimal `yaml:"insurance" json:"insurance"`
	Entertainment  decimal.Decimal `yaml:"entertainment" json:"entertainment"`
	Other          decimal.Decimal `yaml:"other" json:"other"`
}

// Insurance holds coverage amounts and protection flags.
type Insurance struct {
	LifeCoverage       decimal.Decimal `yaml:"life_coverage" json:"lifeCoverage"`
	DisabilityCoverage bool            `yaml:"disability_coverage" json:"disabilityCoverage"`
	UmbrellaCoverage   bool            `yaml:"umbrella_coverage" json:"umbrellaCoverage"`
	EstatePlan         bool            `yaml:"estate_plan" json:"estatePlan"`
}

// Goals holds the household's declared financial goals. All fields are
// optional; zero values mean the goal is not set.
type Goals struct {
	RetirementAge       int             `yaml:"retirement_age,omitempty" json:"retirementAge,omitempty"`
	RetirementIncome    decimal.Decimal `yaml:"retirement_income,omitempty" json:"retirementIncome,omitempty"`
	EmergencyFundMonths int             `yaml:"emergency_fund_months,omitempty" json:"emergencyFundMonths,omitempty"`
	DownPaymentTarget   decimal.Decimal `yaml:"down_payment_target,omitempty" json:"downPaymentTarget,omitempty"`
	DownPaymentDate     time.Time       `yaml:"down_payment_date,omitempty" json:"downPaymentDate,omitempty"`
	EducationTarget     decimal.Decimal `yaml:"education_target,omitempty" json:"educationTarget,omitempty"`
	EducationSavings    decimal.Decimal `yaml:"education_savings,omitempty" json:"educationSavings,omitempty"`
	DebtFreeDate        time.Time       `yaml:"debt_free_date,omitempty" json:"debtFreeDate,omitempty"`
	NetWorthTarget      decimal.Decimal `yaml:"net_worth_target,omitempty" json:"netWorthTarget,omitempty"`
	AnnualSavingsTarget decimal.Decimal `yaml:"annual_savings_target,omitempty" json:"annualSavingsTarget,omitempty"`
	MajorPurchase       *MajorPurchase  `yaml:"major_purchase,omitempty" json:"majorPurchase,omitempty"`
}

// MajorPurchase is a single planned one-off purchase.
type MajorPurchase struct {
	Name       string          `yaml:"name" json:"name"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	TargetDate time.Time       `yaml:"target_date" json:"targetDate"`
}

// DebtAccount is one entry in the optional detailed debt list used by the
// payoff simulator.
type DebtAccount struct {
	Name           string          `yaml:"name" json:"name"`
	Balance        decimal.Decimal `yaml:"balance" json:"balance"`
	APR            decimal.Decimal `yaml:"apr" json:"apr"` // annual rate as a percentage, e.g. 18.99
	MinimumPayment decimal.Decimal `yaml:"minimum_payment" json:"minimumPayment"`
}

// Allocation is a portfolio allocation in percentage points. The four asset
// class fields nominally sum to 100 but are normalized before blending.
type Allocation struct {
	StocksPct       decimal.Decimal `yaml:"stocks_pct" json:"stocksPct"`
	BondsPct        decimal.Decimal `yaml:"bonds_pct" json:"bondsPct"`
	CashPct         decimal.Decimal `yaml:"cash_pct" json:"cashPct"`
	OtherPct        decimal.Decimal `yaml:"other_pct" json:"otherPct"`
	ExpenseRatioPct decimal.Decimal `yaml:"expense_ratio_pct,omitempty" json:"expenseRatioPct,omitempty"`
}

// Assumptions carries optional overrides of the default economic assumptions.
// Rates are annual percentages (2.5 means 2.5%).
type Assumptions struct {
	InflationRate    decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflationRate,omitempty"`
	ReturnRate       decimal.Decimal `yaml:"return_rate,omitempty" json:"returnRate,omitempty"`
	SalaryGrowthRate decimal.Decimal `yaml:"salary_growth_rate,omitempty" json:"salaryGrowthRate,omitempty"`
	SSClaimAge       int             `yaml:"ss_claim_age,omitempty" json:"ssClaimAge,omitempty"`
}

// TotalIncome returns combined primary and spouse income.
func (hs *HouseholdSnapshot) TotalIncome() decimal.Decimal {
	return hs.AnnualIncome.Add(hs.SpouseIncome)
}

// RetirementBalance returns combined tax-advantaged retirement balances.
func (hs *HouseholdSnapshot) RetirementBalance() decimal.Decimal {
	return hs.Accounts.Retirement401k.Add(hs.Accounts.RetirementIRA)
}

// LiquidSavings returns checking plus savings balances.
func (hs *HouseholdSnapshot) LiquidSavings() decimal.Decimal {
	return hs.Accounts.Checking.Add(hs.Accounts.Savings)
}

// InflationOrDefault returns the snapshot's inflation assumption or the
// supplied default when unset.
func (hs *HouseholdSnapshot) InflationOrDefault(def decimal.Decimal) decimal.Decimal {
	if hs.Assumptions != nil && !hs.Assumptions.InflationRate.IsZero() {
		return hs.Assumptions.InflationRate
	}
	return def
}

// ReturnRateOrDefault returns the snapshot's investment return assumption or
// the supplied default when unset.
func (hs *HouseholdSnapshot) ReturnRateOrDefault(def decimal.Decimal) decimal.Decimal {
	if hs.Assumptions != nil && !hs.Assumptions.ReturnRate.IsZero() {
		return hs.Assumptions.ReturnRate
	}
	return def
}
