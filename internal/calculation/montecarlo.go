package calculation

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// mcWorkers is the fixed fan-out for the simulation. Keeping it constant
// (rather than tied to GOMAXPROCS) makes a seeded run reproducible on any
// machine: worker i always owns the same slice of paths with its own source.
const mcWorkers = 8

// MonteCarloSimulator runs independent compounding paths with annually
// sampled returns and summarizes the terminal-balance distribution.
type MonteCarloSimulator struct {
	cfg       domain.MonteCarloDefaults
	newSource func(seed int64) NormalSource
	seed      int64
}

// NewMonteCarloSimulator creates a simulator with the given base seed.
func NewMonteCarloSimulator(cfg domain.MonteCarloDefaults, seed int64) *MonteCarloSimulator {
	return &MonteCarloSimulator{
		cfg:       cfg,
		seed:      seed,
		newSource: func(s int64) NormalSource { return NewBoxMullerSource(s) },
	}
}

// Run simulates cfg.Simulations paths. Each path compounds the starting
// balance once per year at an independently sampled Normal(mean, stdev)
// return and adds the annual contribution, for yearsToRetirement years.
// Success is a terminal balance at or above target.
func (mc *MonteCarloSimulator) Run(balance, annualContribution, target decimal.Decimal, years int) *domain.MonteCarloResult {
	n := mc.cfg.Simulations
	if n <= 0 {
		n = 1000
	}
	mean, _ := mc.cfg.MeanReturnPct.Float64()
	stdev, _ := mc.cfg.StdevPct.Float64()
	startBalance, _ := balance.Float64()
	contribution, _ := annualContribution.Float64()
	targetF, _ := target.Float64()

	terminals := make([]float64, n)

	var wg sync.WaitGroup
	for w := 0; w < mcWorkers; w++ {
		start := w * n / mcWorkers
		end := (w + 1) * n / mcWorkers
		if start == end {
			continue
		}
		wg.Add(1)
		go func(src NormalSource, out []float64) {
			defer wg.Done()
			for i := range out {
				out[i] = simulatePath(src, startBalance, contribution, mean, stdev, years)
			}
		}(mc.newSource(mc.seed+int64(w)), terminals[start:end])
	}
	wg.Wait()

	sort.Float64s(terminals)

	successes := 0
	for _, t := range terminals {
		if t >= targetF {
			successes++
		}
	}

	return &domain.MonteCarloResult{
		Simulations:  n,
		Percentile10: decimal.NewFromFloat(percentileOf(terminals, 0.10)),
		Median:       decimal.NewFromFloat(percentileOf(terminals, 0.50)),
		Percentile90: decimal.NewFromFloat(percentileOf(terminals, 0.90)),
		SuccessRate:  decimal.NewFromInt(int64(successes)).Div(decimal.NewFromInt(int64(n))),
		TargetAmount: target,
	}
}

// simulatePath compounds one path to its terminal balance.
func simulatePath(src NormalSource, balance, contribution, mean, stdev float64, years int) float64 {
	b := balance
	for y := 0; y < years; y++ {
		annualReturn := (mean + stdev*src.NormFloat64()) / 100
		b = b*(1+annualReturn) + contribution
		if b < 0 {
			b = 0
		}
	}
	return b
}

// percentileOf reads an interpolated percentile from a sorted slice.
func percentileOf(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	if index == float64(lower) {
		return sorted[lower]
	}
	fraction := index - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*fraction
}
