package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// SocialSecurityEstimator produces a simplified primary-insurance-amount
// estimate from the household's current income. It is a planning
// approximation, not a benefits statement: average indexed monthly earnings
// are taken as current income divided by twelve rather than a 35-year
// earnings history.
type SocialSecurityEstimator struct {
	rules domain.SocialSecurityRules
}

// NewSocialSecurityEstimator creates an estimator from regulatory constants.
func NewSocialSecurityEstimator(rules domain.SocialSecurityRules) *SocialSecurityEstimator {
	return &SocialSecurityEstimator{rules: rules}
}

// FullRetirementAge returns 67 for anyone born 1960 or later, 66 otherwise.
func FullRetirementAge(birthYear int) int {
	if birthYear >= 1960 {
		return 67
	}
	return 66
}

// MonthlyBenefit applies the two bend-point marginal rates to average monthly
// earnings, caps at the statutory maximum, then adjusts for early or late
// claiming relative to full retirement age.
func (sse *SocialSecurityEstimator) MonthlyBenefit(annualIncome decimal.Decimal, claimAge, birthYear int) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	aime := annualIncome.Div(twelve)
	r := sse.rules

	pia := decimal.Min(aime, r.BendPoint1).Mul(r.Rate1)
	if aime.GreaterThan(r.BendPoint1) {
		pia = pia.Add(decimal.Min(aime, r.BendPoint2).Sub(r.BendPoint1).Mul(r.Rate2))
	}
	if aime.GreaterThan(r.BendPoint2) {
		pia = pia.Add(aime.Sub(r.BendPoint2).Mul(r.Rate3))
	}
	if pia.GreaterThan(r.MaxMonthlyBenefit) {
		pia = r.MaxMonthlyBenefit
	}

	fra := FullRetirementAge(birthYear)
	if claimAge < 62 {
		claimAge = 62
	}
	if claimAge > 70 {
		claimAge = 70
	}
	switch {
	case claimAge < fra:
		years := decimal.NewFromInt(int64(fra - claimAge))
		pia = pia.Mul(decimal.NewFromInt(1).Sub(r.EarlyClaimPenalty.Mul(years)))
	case claimAge > fra:
		years := decimal.NewFromInt(int64(claimAge - fra))
		pia = pia.Mul(decimal.NewFromInt(1).Add(r.LateClaimCredit.Mul(years)))
	}
	if pia.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return pia
}

// AnnualBenefit is the monthly benefit times twelve.
func (sse *SocialSecurityEstimator) AnnualBenefit(annualIncome decimal.Decimal, claimAge, birthYear int) decimal.Decimal {
	return sse.MonthlyBenefit(annualIncome, claimAge, birthYear).Mul(twelve)
}
