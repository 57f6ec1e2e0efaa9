package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/finplan/internal/domain"
)

func TestPortfolioBlendedReturn(t *testing.T) {
	pa := NewPortfolioAnalyzer()
	alloc := &domain.Allocation{
		StocksPct: decimal.NewFromInt(60),
		BondsPct:  decimal.NewFromInt(30),
		CashPct:   decimal.NewFromInt(10),
	}
	analysis := pa.Analyze(alloc, 40)
	require.NotNil(t, analysis)

	// 0.60*8.0 + 0.30*4.5 + 0.10*2.0 = 6.35
	assert.True(t, analysis.ExpectedReturn.Equal(decimal.NewFromFloat(6.35)), "got %s", analysis.ExpectedReturn)
	assert.True(t, analysis.RiskScore.Equal(decimal.NewFromInt(60)))
	assert.True(t, analysis.TargetStocksPct.Equal(decimal.NewFromInt(70)))
	assert.False(t, analysis.RebalanceNeeded, "60 vs 70 is within the 10-point band")
	assert.Empty(t, analysis.Warnings)
}

func TestPortfolioNormalization(t *testing.T) {
	pa := NewPortfolioAnalyzer()
	alloc := &domain.Allocation{
		StocksPct: decimal.NewFromInt(30),
		BondsPct:  decimal.NewFromInt(15),
		CashPct:   decimal.NewFromInt(5),
	}
	analysis := pa.Analyze(alloc, 40)
	require.NotNil(t, analysis)

	// 30/50 scales to 60% stocks; blended return matches the normalized mix.
	assert.True(t, analysis.CurrentStocksPct.Equal(decimal.NewFromInt(60)), "got %s", analysis.CurrentStocksPct)
	assert.True(t, analysis.ExpectedReturn.Equal(decimal.NewFromFloat(6.35)), "got %s", analysis.ExpectedReturn)
	assert.Contains(t, analysis.Warnings, "allocation percentages do not sum to 100")
}

func TestPortfolioRebalanceTrigger(t *testing.T) {
	pa := NewPortfolioAnalyzer()
	alloc := &domain.Allocation{
		StocksPct: decimal.NewFromInt(95),
		BondsPct:  decimal.NewFromInt(5),
	}
	// Target at 60 is 50, so a 45-point drift needs rebalancing.
	analysis := pa.Analyze(alloc, 60)
	require.NotNil(t, analysis)
	assert.True(t, analysis.RebalanceNeeded)
	assert.Contains(t, analysis.Warnings, "stock allocation above 90% is aggressive past age 50")
}

func TestPortfolioWarnings(t *testing.T) {
	pa := NewPortfolioAnalyzer()

	cashHeavy := pa.Analyze(&domain.Allocation{
		StocksPct: decimal.NewFromInt(40),
		BondsPct:  decimal.NewFromInt(20),
		CashPct:   decimal.NewFromInt(40),
	}, 35)
	assert.Contains(t, cashHeavy.Warnings, "cash allocation above 20% drags on long-run returns")
	assert.Contains(t, cashHeavy.Warnings, "stock allocation below 50% is conservative for a long horizon")

	pricey := pa.Analyze(&domain.Allocation{
		StocksPct:       decimal.NewFromInt(70),
		BondsPct:        decimal.NewFromInt(30),
		ExpenseRatioPct: decimal.NewFromFloat(1.4),
	}, 45)
	assert.Contains(t, pricey.Warnings, "fund expense ratio above 1.0% erodes returns")
}

func TestPortfolioNilAllocation(t *testing.T) {
	pa := NewPortfolioAnalyzer()
	assert.Nil(t, pa.Analyze(nil, 40))
}

func TestTargetStocksPctClamps(t *testing.T) {
	assert.True(t, targetStocksPct(25).Equal(decimal.NewFromInt(85)))
	assert.True(t, targetStocksPct(18).Equal(decimal.NewFromInt(90)))
	assert.True(t, targetStocksPct(75).Equal(decimal.NewFromInt(40)))
}
