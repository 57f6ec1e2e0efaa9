package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// maxActionItems caps the final recommendation list.
const maxActionItems = 8

var priorityOrder = map[domain.Priority]int{
	domain.PriorityCritical: 0,
	domain.PriorityHigh:     1,
	domain.PriorityMedium:   2,
}

// deadlineFor spaces item deadlines by urgency: one month out for critical
// items, a quarter for high, half a year for medium.
func deadlineFor(p domain.Priority, now time.Time) time.Time {
	switch p {
	case domain.PriorityCritical:
		return now.AddDate(0, 1, 0)
	case domain.PriorityHigh:
		return now.AddDate(0, 3, 0)
	default:
		return now.AddDate(0, 6, 0)
	}
}

// ActionItemGenerator merges the risk assessment and sub-analyses into a
// deduplicated, prioritized, capped list.
type ActionItemGenerator struct {
	rules domain.PlannerRules
}

// NewActionItemGenerator creates an action item generator using the given
// planning rules.
func NewActionItemGenerator(rules domain.PlannerRules) *ActionItemGenerator {
	return &ActionItemGenerator{rules: rules}
}

// Generate builds the final list: one item per critical risk category, plus
// the fixed conditional items, deduplicated by category, sorted critical
// before high before medium, capped at eight. Every item carries a deadline
// derived from its priority.
func (g *ActionItemGenerator) Generate(hs *domain.HouseholdSnapshot, t Totals, risk domain.RiskAssessment, retirement *domain.RetirementAnalysis, portfolio *domain.PortfolioAnalysis, now time.Time) []domain.ActionItem {
	var items []domain.ActionItem
	seen := make(map[string]bool)

	add := func(item domain.ActionItem) {
		if seen[item.Category] {
			return
		}
		seen[item.Category] = true
		item.Deadline = deadlineFor(item.Priority, now)
		items = append(items, item)
	}

	for _, cat := range risk.Categories {
		if cat.Status != domain.RiskCritical {
			continue
		}
		action := cat.Message
		if len(cat.Recommendations) > 0 {
			action = cat.Recommendations[0]
		}
		add(domain.ActionItem{
			Priority: domain.PriorityCritical,
			Category: cat.Name,
			Action:   action,
			Impact:   "Closes a critical protection gap",
		})
	}

	if t.EmergencyFundMonths.LessThan(decimal.NewFromInt(3)) {
		add(domain.ActionItem{
			Priority: domain.PriorityHigh,
			Category: "Emergency Fund",
			Action:   "Build emergency savings to at least three months of expenses.",
			Impact:   "Shields the household from short income interruptions",
		})
	}

	if retirement != nil && retirement.Gap.GreaterThan(g.rules.RetirementGapFloor) {
		add(domain.ActionItem{
			Priority: domain.PriorityHigh,
			Category: "Retirement Savings",
			Action:   fmt.Sprintf("Increase retirement contributions by $%s per month to close the projected gap.", retirement.RequiredMonthly.StringFixed(0)),
			Impact:   fmt.Sprintf("Closes a projected $%s retirement shortfall", retirement.Gap.StringFixed(0)),
		})
	}

	for _, debt := range hs.Debts {
		if debt.APR.GreaterThan(g.rules.HighAPRFloor) {
			add(domain.ActionItem{
				Priority: domain.PriorityHigh,
				Category: "High-Interest Debt",
				Action:   fmt.Sprintf("Pay down %s (%s%% APR) ahead of other balances.", debt.Name, debt.APR.StringFixed(2)),
				Impact:   "Stops high-rate interest from compounding",
			})
			break
		}
	}

	if t.SavingsRate.LessThan(decimal.NewFromInt(10)) {
		add(domain.ActionItem{
			Priority: domain.PriorityMedium,
			Category: "Savings Rate",
			Action:   "Raise the household savings rate toward 10% of income.",
			Impact:   "Funds every other goal faster",
		})
	}

	if portfolio != nil && portfolio.RebalanceNeeded {
		add(domain.ActionItem{
			Priority: domain.PriorityMedium,
			Category: "Portfolio Allocation",
			Action:   fmt.Sprintf("Rebalance toward the %s%% target stock allocation.", portfolio.TargetStocksPct.StringFixed(0)),
			Impact:   "Aligns portfolio risk with the household's horizon",
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return priorityOrder[items[i].Priority] < priorityOrder[items[j].Priority]
	})
	if len(items) > maxActionItems {
		items = items[:maxActionItems]
	}
	return items
}
