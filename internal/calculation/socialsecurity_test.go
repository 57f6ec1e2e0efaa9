package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finplan/finplan/internal/domain"
)

func TestFullRetirementAge(t *testing.T) {
	assert.Equal(t, 67, FullRetirementAge(1960))
	assert.Equal(t, 67, FullRetirementAge(1985))
	assert.Equal(t, 66, FullRetirementAge(1959))
}

func TestMonthlyBenefitBendPoints(t *testing.T) {
	sse := NewSocialSecurityEstimator(domain.DefaultRegulatoryConfig().SocialSecurity)

	// $96,000/year is $8,000/month, crossing both bend points:
	// 1174 * 0.90 + (7078 - 1174) * 0.32 + (8000 - 7078) * 0.15 = 3084.18
	got := sse.MonthlyBenefit(decimal.NewFromInt(96000), 67, 1986)
	assert.True(t, got.Equal(decimal.NewFromFloat(3084.18)), "got %s", got)

	// Below the first bend point only the 90% rate applies.
	got = sse.MonthlyBenefit(decimal.NewFromInt(12000), 67, 1986)
	assert.True(t, got.Equal(decimal.NewFromInt(900)), "got %s", got)
}

func TestMonthlyBenefitCappedAtStatutoryMax(t *testing.T) {
	rules := domain.DefaultRegulatoryConfig().SocialSecurity
	sse := NewSocialSecurityEstimator(rules)
	got := sse.MonthlyBenefit(decimal.NewFromInt(600000), 67, 1986)
	assert.True(t, got.Equal(rules.MaxMonthlyBenefit), "got %s", got)
}

func TestMonthlyBenefitClaimAgeAdjustment(t *testing.T) {
	sse := NewSocialSecurityEstimator(domain.DefaultRegulatoryConfig().SocialSecurity)
	income := decimal.NewFromInt(96000)
	atFRA := sse.MonthlyBenefit(income, 67, 1986)

	// Five years early is a 35% reduction.
	early := sse.MonthlyBenefit(income, 62, 1986)
	assert.True(t, early.Equal(atFRA.Mul(decimal.NewFromFloat(0.65))), "got %s", early)

	// Three years of delayed credits is a 24% increase.
	late := sse.MonthlyBenefit(income, 70, 1986)
	assert.True(t, late.Equal(atFRA.Mul(decimal.NewFromFloat(1.24))), "got %s", late)

	// Claim ages outside [62, 70] clamp to the boundary.
	assert.True(t, sse.MonthlyBenefit(income, 55, 1986).Equal(early))
	assert.True(t, sse.MonthlyBenefit(income, 80, 1986).Equal(late))
}

func TestMonthlyBenefitNoIncome(t *testing.T) {
	sse := NewSocialSecurityEstimator(domain.DefaultRegulatoryConfig().SocialSecurity)
	assert.True(t, sse.MonthlyBenefit(decimal.Zero, 67, 1986).IsZero())
	assert.True(t, sse.MonthlyBenefit(decimal.NewFromInt(-100), 67, 1986).IsZero())
}

func TestAnnualBenefitIsTwelveMonths(t *testing.T) {
	sse := NewSocialSecurityEstimator(domain.DefaultRegulatoryConfig().SocialSecurity)
	monthly := sse.MonthlyBenefit(decimal.NewFromInt(96000), 67, 1986)
	annual := sse.AnnualBenefit(decimal.NewFromInt(96000), 67, 1986)
	assert.True(t, annual.Equal(monthly.Mul(decimal.NewFromInt(12))))
}
