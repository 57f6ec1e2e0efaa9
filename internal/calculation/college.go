package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// CollegePlanner projects education costs for the snapshot's dependents from
// a fixed four-year base cost compounded at the education inflation rate.
type CollegePlanner struct {
	projector *GoalProjector
	defaults  domain.AssumptionDefaults
}

// NewCollegePlanner creates a college planner.
func NewCollegePlanner(projector *GoalProjector, defaults domain.AssumptionDefaults) *CollegePlanner {
	return &CollegePlanner{projector: projector, defaults: defaults}
}

// Analyze projects each dependent's cost to their 18th birthday, sums the
// total, grows existing education savings to the youngest child's horizon and
// solves for the required monthly contribution.
func (cp *CollegePlanner) Analyze(hs *domain.HouseholdSnapshot, now time.Time) *domain.CollegeAnalysis {
	if hs.Dependents == 0 && len(hs.ChildAges) == 0 {
		return nil
	}

	ages := hs.ChildAges
	if len(ages) == 0 {
		// Ages unknown: treat each dependent as a newborn.
		ages = make([]int, hs.Dependents)
	}

	analysis := &domain.CollegeAnalysis{}
	youngestHorizon := 0
	for _, age := range ages {
		years := 18 - age
		if years < 0 {
			years = 0
		}
		if years > youngestHorizon {
			youngestHorizon = years
		}
		cost := cp.defaults.CollegeBaseCost.Mul(compoundAnnual(cp.defaults.EducationInflation, years))
		analysis.Children = append(analysis.Children, domain.ChildProjection{
			Age:            age,
			YearsToCollege: years,
			ProjectedCost:  cost,
		})
		analysis.TotalCost = analysis.TotalCost.Add(cost)
	}

	analysis.ProjectedSavings = hs.Goals.EducationSavings.Mul(compoundAnnual(cp.defaults.EducationGrowth, youngestHorizon))
	shortfall := analysis.TotalCost.Sub(analysis.ProjectedSavings)
	if shortfall.LessThan(decimal.Zero) {
		shortfall = decimal.Zero
	}
	analysis.Shortfall = shortfall
	analysis.RequiredMonthly = cp.projector.RequiredMonthlyContribution(
		hs.Goals.EducationSavings, analysis.TotalCost, youngestHorizon*12, cp.defaults.EducationGrowth)

	return analysis
}
