package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// riskTier maps a coverage ratio to a status and risk score. The shared table
// is ordered high-to-low and evaluated top-down, first match wins; a ratio
// below every row classifies as critical with the category's own score.
type riskTier struct {
	MinRatio decimal.Decimal
	Status   domain.RiskStatus
	Score    int
}

var riskTiers = []riskTier{
	{decimal.NewFromFloat(1.0), domain.RiskExcellent, 10},
	{decimal.NewFromFloat(0.7), domain.RiskGood, 40},
	{decimal.NewFromFloat(0.3), domain.RiskWarning, 70},
}

// riskCategoryDef describes one of the eight fixed categories: how to compute
// its higher-is-better coverage ratio plus its message and recommendation
// catalog by status.
type riskCategoryDef struct {
	name            string
	criticalScore   int
	ratio           func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal
	messages        map[domain.RiskStatus]string
	recommendations map[domain.RiskStatus][]string
}

// RiskAssessor classifies the eight risk categories independently and
// aggregates an overall score.
type RiskAssessor struct {
	categories []riskCategoryDef
}

// NewRiskAssessor creates a risk assessor with the fixed category set,
// parameterized by the given planning rules.
func NewRiskAssessor(rules domain.PlannerRules) *RiskAssessor {
	return &RiskAssessor{categories: riskCategoryDefs(rules)}
}

// Assess evaluates every category against the snapshot and totals.
func (ra *RiskAssessor) Assess(hs *domain.HouseholdSnapshot, t Totals) domain.RiskAssessment {
	assessment := domain.RiskAssessment{
		Categories: make([]domain.RiskCategory, 0, len(ra.categories)),
	}
	scoreSum := 0
	for _, def := range ra.categories {
		cat := classify(def, def.ratio(hs, t))
		scoreSum += cat.Score
		if cat.Status == domain.RiskCritical {
			assessment.CriticalGaps = append(assessment.CriticalGaps, cat.Name)
		}
		assessment.Categories = append(assessment.Categories, cat)
	}
	if len(ra.categories) > 0 {
		assessment.OverallScore = decimal.NewFromInt(int64(scoreSum)).
			Div(decimal.NewFromInt(int64(len(ra.categories))))
	}
	return assessment
}

func classify(def riskCategoryDef, ratio decimal.Decimal) domain.RiskCategory {
	status := domain.RiskCritical
	score := def.criticalScore
	for _, tier := range riskTiers {
		if ratio.GreaterThanOrEqual(tier.MinRatio) {
			status = tier.Status
			score = tier.Score
			break
		}
	}
	return domain.RiskCategory{
		Name:            def.name,
		Score:           score,
		Status:          status,
		Message:         def.messages[status],
		Recommendations: def.recommendations[status],
	}
}

func clampRatio(r decimal.Decimal) decimal.Decimal {
	if r.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return r
}

// retirementTargetMultiple returns the age-banded income multiple a household
// should have saved for retirement.
func retirementTargetMultiple(age int) decimal.Decimal {
	switch {
	case age >= 60:
		return decimal.NewFromInt(8)
	case age >= 50:
		return decimal.NewFromInt(6)
	case age >= 40:
		return decimal.NewFromInt(3)
	default:
		return decimal.NewFromInt(1)
	}
}

func riskCategoryDefs(rules domain.PlannerRules) []riskCategoryDef {
	one := decimal.NewFromInt(1)
	return []riskCategoryDef{
		{
			name:          "Life Insurance",
			criticalScore: 95,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				needed := t.TotalIncome.Mul(rules.LifeInsuranceMultiple)
				if needed.IsZero() {
					return one
				}
				return hs.Insurance.LifeCoverage.Div(needed)
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Life insurance coverage meets the recommended income multiple.",
				domain.RiskGood:      "Life insurance coverage is close to the recommended level.",
				domain.RiskWarning:   "Life insurance coverage falls well short of the recommended level.",
				domain.RiskCritical:  "Household income is largely unprotected against loss of life.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskGood:     {"Consider a small term policy to close the remaining coverage gap."},
				domain.RiskWarning:  {"Increase term life coverage toward 10x household income.", "Compare level-term quotes across carriers."},
				domain.RiskCritical: {"Obtain term life coverage of roughly 10x household income.", "Prioritize coverage for the primary earner first."},
			},
		},
		{
			name:          "Disability Insurance",
			criticalScore: 90,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				if hs.Insurance.DisabilityCoverage || t.TotalIncome.IsZero() {
					return one
				}
				return decimal.Zero
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Disability coverage is in place.",
				domain.RiskCritical:  "No disability coverage protects the household's earning power.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskCritical: {"Add long-term disability insurance covering 60% of income.", "Check whether an employer group policy is available first."},
			},
		},
		{
			name:          "Emergency Fund",
			criticalScore: 95,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				return t.EmergencyFundMonths.Div(decimal.NewFromInt(6))
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Emergency fund covers six or more months of expenses.",
				domain.RiskGood:      "Emergency fund covers most of the recommended six months.",
				domain.RiskWarning:   "Emergency fund covers only a small share of expenses.",
				domain.RiskCritical:  "Emergency savings would not absorb a short income interruption.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskGood:     {"Top the emergency fund up to a full six months of expenses."},
				domain.RiskWarning:  {"Automate monthly transfers until savings reach six months of expenses."},
				domain.RiskCritical: {"Build a starter emergency fund of one month of expenses immediately.", "Route any windfalls into savings until three months are covered."},
			},
		},
		{
			name:          "Debt Level",
			criticalScore: 90,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				if t.TotalLiabilities.IsZero() {
					return one
				}
				if t.TotalIncome.IsZero() {
					return decimal.Zero
				}
				// Inverted so higher is better: 2x income or less is fully safe.
				return clampRatio(decimal.NewFromInt(2).Div(t.DebtToIncome))
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Total debt is comfortably proportioned to income.",
				domain.RiskGood:      "Debt load is manageable but worth monitoring.",
				domain.RiskWarning:   "Debt load is high relative to income.",
				domain.RiskCritical:  "Debt load is far out of proportion to income.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskGood:     {"Avoid taking on new installment debt this year."},
				domain.RiskWarning:  {"Direct surplus cash at the highest-rate balance first."},
				domain.RiskCritical: {"Pay down high-interest debt before discretionary saving.", "Consider consolidating high-rate balances at a lower rate."},
			},
		},
		{
			name:          "Retirement Savings",
			criticalScore: 90,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				target := t.TotalIncome.Mul(retirementTargetMultiple(hs.Age))
				if target.IsZero() {
					return one
				}
				return hs.RetirementBalance().Div(target)
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Retirement savings meet the age-based target multiple.",
				domain.RiskGood:      "Retirement savings are approaching the age-based target.",
				domain.RiskWarning:   "Retirement savings lag the age-based target.",
				domain.RiskCritical:  "Retirement savings are far behind the age-based target.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskGood:     {"Raise retirement contributions by one or two percent of pay."},
				domain.RiskWarning:  {"Increase contributions at least to the full employer match.", "Review whether the allocation is growth-oriented enough."},
				domain.RiskCritical: {"Increase retirement contributions substantially this year.", "Capture the full employer match before any taxable investing."},
			},
		},
		{
			name:          "Estate Planning",
			criticalScore: 90,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				if hs.Insurance.EstatePlan {
					return one
				}
				return decimal.Zero
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Basic estate documents are in place.",
				domain.RiskCritical:  "No will or estate documents are on record.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskCritical: {"Prepare a will, durable power of attorney and healthcare directive.", "Confirm beneficiary designations on all retirement accounts."},
			},
		},
		{
			name:          "Liability Coverage",
			criticalScore: 90,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				if hs.Insurance.UmbrellaCoverage {
					return one
				}
				// Umbrella coverage only becomes a need once there is meaningful
				// net worth to protect.
				if t.NetWorth.LessThan(rules.UmbrellaNetWorthFloor) {
					return one
				}
				return decimal.Zero
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Liability exposure is covered for the household's net worth.",
				domain.RiskCritical:  "Net worth is exposed to liability claims without umbrella coverage.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskCritical: {"Add an umbrella liability policy of at least $1M.", "Coordinate umbrella limits with auto and home policies."},
			},
		},
		{
			name:          "Savings Rate",
			criticalScore: 90,
			ratio: func(hs *domain.HouseholdSnapshot, t Totals) decimal.Decimal {
				return t.SavingsRate.Div(decimal.NewFromInt(20))
			},
			messages: map[domain.RiskStatus]string{
				domain.RiskExcellent: "Savings rate meets the 20% benchmark.",
				domain.RiskGood:      "Savings rate is solid but short of the 20% benchmark.",
				domain.RiskWarning:   "Savings rate is well below the 20% benchmark.",
				domain.RiskCritical:  "The household is saving little or nothing of its income.",
			},
			recommendations: map[domain.RiskStatus][]string{
				domain.RiskGood:     {"Nudge automatic savings up by a percentage point."},
				domain.RiskWarning:  {"Review the largest expense categories for cuts to redirect into savings."},
				domain.RiskCritical: {"Set up an automatic transfer on payday, however small.", "Target a 10% savings rate as the first milestone."},
			},
		},
	}
}
