package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/finplan/internal/domain"
)

func mcDefaults() domain.MonteCarloDefaults {
	return domain.DefaultRegulatoryConfig().MonteCarlo
}

func TestMonteCarloPercentilesAreOrdered(t *testing.T) {
	mc := NewMonteCarloSimulator(mcDefaults(), 42)
	result := mc.Run(decimal.NewFromInt(200000), decimal.NewFromInt(20000), decimal.NewFromInt(1500000), 25)
	require.NotNil(t, result)

	assert.Equal(t, 1000, result.Simulations)
	assert.True(t, result.Percentile10.LessThanOrEqual(result.Median),
		"p10 %s > median %s", result.Percentile10, result.Median)
	assert.True(t, result.Median.LessThanOrEqual(result.Percentile90),
		"median %s > p90 %s", result.Median, result.Percentile90)
	assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.SuccessRate.LessThanOrEqual(decimal.NewFromInt(1)))
	assert.True(t, result.TargetAmount.Equal(decimal.NewFromInt(1500000)))
}

func TestMonteCarloSeededRunsAreReproducible(t *testing.T) {
	balance := decimal.NewFromInt(100000)
	contribution := decimal.NewFromInt(12000)
	target := decimal.NewFromInt(800000)

	first := NewMonteCarloSimulator(mcDefaults(), 7).Run(balance, contribution, target, 20)
	second := NewMonteCarloSimulator(mcDefaults(), 7).Run(balance, contribution, target, 20)

	assert.True(t, first.Median.Equal(second.Median))
	assert.True(t, first.Percentile10.Equal(second.Percentile10))
	assert.True(t, first.Percentile90.Equal(second.Percentile90))
	assert.True(t, first.SuccessRate.Equal(second.SuccessRate))

	different := NewMonteCarloSimulator(mcDefaults(), 8).Run(balance, contribution, target, 20)
	assert.False(t, first.Median.Equal(different.Median), "distinct seeds should diverge")
}

func TestMonteCarloTrivialTargets(t *testing.T) {
	mc := NewMonteCarloSimulator(mcDefaults(), 1)
	sure := mc.Run(decimal.NewFromInt(500000), decimal.NewFromInt(10000), decimal.Zero, 10)
	assert.True(t, sure.SuccessRate.Equal(decimal.NewFromInt(1)), "zero target is always met")

	hopeless := mc.Run(decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(1_000_000_000), 5)
	assert.True(t, hopeless.SuccessRate.IsZero(), "got %s", hopeless.SuccessRate)
}

func TestMonteCarloZeroYears(t *testing.T) {
	mc := NewMonteCarloSimulator(mcDefaults(), 3)
	result := mc.Run(decimal.NewFromInt(250000), decimal.NewFromInt(10000), decimal.NewFromInt(250000), 0)
	// No compounding steps: every path ends at the starting balance.
	assert.True(t, result.Median.Equal(decimal.NewFromInt(250000)), "got %s", result.Median)
	assert.True(t, result.SuccessRate.Equal(decimal.NewFromInt(1)))
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	assert.InDelta(t, 10, percentileOf(sorted, 0), 1e-9)
	assert.InDelta(t, 30, percentileOf(sorted, 0.5), 1e-9)
	assert.InDelta(t, 50, percentileOf(sorted, 1), 1e-9)
	assert.InDelta(t, 46, percentileOf(sorted, 0.9), 1e-9)
	assert.InDelta(t, 0, percentileOf(nil, 0.5), 1e-9)
}

func TestBoxMullerSourceIsDeterministic(t *testing.T) {
	a := NewBoxMullerSource(99)
	b := NewBoxMullerSource(99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NormFloat64(), b.NormFloat64())
	}
}
