package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/finplan/internal/domain"
)

var testNow = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func TestGenerateOrdersByPriority(t *testing.T) {
	g := NewActionItemGenerator(testPlanner())
	me := NewMetricsEngine(testPlanner())

	hs := testSnapshot()
	hs.Accounts.Checking = decimal.NewFromInt(1000)
	hs.Accounts.Savings = decimal.NewFromInt(2000)
	hs.Debts = []domain.DebtAccount{
		{Name: "Visa", Balance: decimal.NewFromInt(6000), APR: decimal.NewFromFloat(22.99), MinimumPayment: decimal.NewFromInt(120)},
	}
	totals := me.Aggregate(hs)

	risk := domain.RiskAssessment{
		Categories: []domain.RiskCategory{
			{Name: "Life Insurance", Status: domain.RiskCritical, Message: "coverage gap",
				Recommendations: []string{"Buy term coverage of ten times income."}},
			{Name: "Estate Planning", Status: domain.RiskWarning, Message: "no will"},
		},
	}
	retirement := &domain.RetirementAnalysis{
		Gap:             decimal.NewFromInt(400000),
		RequiredMonthly: decimal.NewFromInt(850),
	}
	portfolio := &domain.PortfolioAnalysis{
		RebalanceNeeded: true,
		TargetStocksPct: decimal.NewFromInt(70),
	}

	items := g.Generate(hs, totals, risk, retirement, portfolio, testNow)
	require.NotEmpty(t, items)

	// Critical risk items first, then high, then medium.
	last := 0
	for _, item := range items {
		rank := priorityOrder[item.Priority]
		assert.GreaterOrEqual(t, rank, last, "items out of priority order")
		last = rank
	}

	assert.Equal(t, "Life Insurance", items[0].Category)
	assert.Equal(t, "Buy term coverage of ten times income.", items[0].Action)

	categories := make([]string, len(items))
	for i, item := range items {
		categories[i] = item.Category
	}
	assert.Contains(t, categories, "Emergency Fund")
	assert.Contains(t, categories, "Retirement Savings")
	assert.Contains(t, categories, "High-Interest Debt")
	assert.Contains(t, categories, "Portfolio Allocation")
	// Warning-level risk categories do not generate items.
	assert.NotContains(t, categories, "Estate Planning")
}

func TestGenerateDeduplicatesByCategory(t *testing.T) {
	g := NewActionItemGenerator(testPlanner())
	me := NewMetricsEngine(testPlanner())
	hs := testSnapshot()
	hs.Accounts.Checking = decimal.Zero
	hs.Accounts.Savings = decimal.Zero
	totals := me.Aggregate(hs)

	// The critical risk category and the low-balance rule target the same
	// category name; only one survives.
	risk := domain.RiskAssessment{
		Categories: []domain.RiskCategory{
			{Name: "Emergency Fund", Status: domain.RiskCritical, Message: "no liquid savings",
				Recommendations: []string{"Open a high-yield savings account."}},
		},
	}

	items := g.Generate(hs, totals, risk, nil, nil, testNow)
	count := 0
	for _, item := range items {
		if item.Category == "Emergency Fund" {
			count++
			assert.Equal(t, domain.PriorityCritical, item.Priority)
		}
	}
	assert.Equal(t, 1, count)
}

func TestGenerateCapsAtEight(t *testing.T) {
	g := NewActionItemGenerator(testPlanner())
	me := NewMetricsEngine(testPlanner())
	hs := testSnapshot()
	hs.Accounts.Checking = decimal.Zero
	hs.Accounts.Savings = decimal.Zero
	hs.Debts = []domain.DebtAccount{
		{Name: "Visa", Balance: decimal.NewFromInt(6000), APR: decimal.NewFromFloat(22.99), MinimumPayment: decimal.NewFromInt(120)},
	}

	var risk domain.RiskAssessment
	for i := 0; i < 10; i++ {
		risk.Categories = append(risk.Categories, domain.RiskCategory{
			Name:    fmt.Sprintf("Category %d", i),
			Status:  domain.RiskCritical,
			Message: "gap",
		})
	}
	retirement := &domain.RetirementAnalysis{
		Gap:             decimal.NewFromInt(500000),
		RequiredMonthly: decimal.NewFromInt(900),
	}

	items := g.Generate(hs, me.Aggregate(hs), risk, retirement, nil, testNow)
	assert.Len(t, items, maxActionItems)
	for _, item := range items {
		// The cap trims from the low-priority end.
		assert.Equal(t, domain.PriorityCritical, item.Priority)
	}
}

func TestGenerateSetsPriorityDerivedDeadlines(t *testing.T) {
	g := NewActionItemGenerator(testPlanner())
	me := NewMetricsEngine(testPlanner())

	hs := testSnapshot()
	hs.Insurance.LifeCoverage = decimal.Zero
	hs.Accounts.Checking = decimal.NewFromInt(1000)
	hs.Accounts.Savings = decimal.NewFromInt(2000)
	totals := me.Aggregate(hs)

	risk := domain.RiskAssessment{
		Categories: []domain.RiskCategory{
			{Name: "Life Insurance", Status: domain.RiskCritical, Message: "coverage gap",
				Recommendations: []string{"Obtain term life coverage of roughly 10x household income."}},
		},
	}
	portfolio := &domain.PortfolioAnalysis{
		RebalanceNeeded: true,
		TargetStocksPct: decimal.NewFromInt(70),
	}

	items := g.Generate(hs, totals, risk, nil, portfolio, testNow)
	require.NotEmpty(t, items)

	deadlines := make(map[domain.Priority]time.Time)
	for _, item := range items {
		require.False(t, item.Deadline.IsZero(), "item %q (%s) has no deadline", item.Category, item.Priority)
		deadlines[item.Priority] = item.Deadline
	}

	assert.Equal(t, testNow.AddDate(0, 1, 0), deadlines[domain.PriorityCritical])
	assert.Equal(t, testNow.AddDate(0, 3, 0), deadlines[domain.PriorityHigh])
	assert.Equal(t, testNow.AddDate(0, 6, 0), deadlines[domain.PriorityMedium])
	assert.True(t, deadlines[domain.PriorityCritical].Before(deadlines[domain.PriorityMedium]))
}

func TestGenerateHealthyHouseholdHasFewItems(t *testing.T) {
	g := NewActionItemGenerator(testPlanner())
	me := NewMetricsEngine(testPlanner())
	hs := testSnapshot()

	items := g.Generate(hs, me.Aggregate(hs), domain.RiskAssessment{}, &domain.RetirementAnalysis{}, nil, testNow)
	assert.Empty(t, items)
}
