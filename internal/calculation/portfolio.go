package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// Historical per-asset-class annual returns used for the blended expected
// return, in percent.
var (
	returnStocks = decimal.NewFromFloat(8.0)
	returnBonds  = decimal.NewFromFloat(4.5)
	returnCash   = decimal.NewFromFloat(2.0)
	returnOther  = decimal.NewFromFloat(6.0)
)

// PortfolioAnalyzer characterizes a stock/bond/cash/other allocation against
// an age-based target.
type PortfolioAnalyzer struct{}

// NewPortfolioAnalyzer creates a portfolio analyzer.
func NewPortfolioAnalyzer() *PortfolioAnalyzer {
	return &PortfolioAnalyzer{}
}

// Analyze evaluates the allocation. Percentages that do not sum to 100 are
// normalized before blending; the raw sum still drives the allocation
// warning.
func (pa *PortfolioAnalyzer) Analyze(alloc *domain.Allocation, age int) *domain.PortfolioAnalysis {
	if alloc == nil {
		return nil
	}
	hundred := decimal.NewFromInt(100)
	rawSum := alloc.StocksPct.Add(alloc.BondsPct).Add(alloc.CashPct).Add(alloc.OtherPct)

	stocks, bonds, cash, other := alloc.StocksPct, alloc.BondsPct, alloc.CashPct, alloc.OtherPct
	if rawSum.GreaterThan(decimal.Zero) && rawSum.Sub(hundred).Abs().GreaterThan(decimal.NewFromFloat(0.1)) {
		scale := hundred.Div(rawSum)
		stocks = stocks.Mul(scale)
		bonds = bonds.Mul(scale)
		cash = cash.Mul(scale)
		other = other.Mul(scale)
	}

	expectedReturn := stocks.Mul(returnStocks).
		Add(bonds.Mul(returnBonds)).
		Add(cash.Mul(returnCash)).
		Add(other.Mul(returnOther)).
		Div(hundred)

	target := targetStocksPct(age)
	drift := stocks.Sub(target).Abs()

	analysis := &domain.PortfolioAnalysis{
		RiskScore:        clampPct(stocks),
		ExpectedReturn:   expectedReturn,
		TargetStocksPct:  target,
		CurrentStocksPct: stocks,
		RebalanceNeeded:  drift.GreaterThan(decimal.NewFromInt(10)),
	}

	if rawSum.Sub(hundred).Abs().GreaterThan(decimal.NewFromFloat(0.1)) {
		analysis.Warnings = append(analysis.Warnings, "allocation percentages do not sum to 100")
	}
	if cash.GreaterThan(decimal.NewFromInt(20)) {
		analysis.Warnings = append(analysis.Warnings, "cash allocation above 20% drags on long-run returns")
	}
	if stocks.GreaterThan(decimal.NewFromInt(90)) && age > 50 {
		analysis.Warnings = append(analysis.Warnings, "stock allocation above 90% is aggressive past age 50")
	}
	if stocks.LessThan(decimal.NewFromInt(50)) && age < 40 {
		analysis.Warnings = append(analysis.Warnings, "stock allocation below 50% is conservative for a long horizon")
	}
	if alloc.ExpenseRatioPct.GreaterThan(decimal.NewFromFloat(1.0)) {
		analysis.Warnings = append(analysis.Warnings, "fund expense ratio above 1.0% erodes returns")
	}

	return analysis
}

// targetStocksPct is the age-based target: 110 minus age, clamped to
// [40, 90].
func targetStocksPct(age int) decimal.Decimal {
	target := 110 - age
	if target < 40 {
		target = 40
	}
	if target > 90 {
		target = 90
	}
	return decimal.NewFromInt(int64(target))
}

// clampPct clamps a percentage to [0, 100].
func clampPct(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if v.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return v
}
