package calculation

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/finplan/internal/domain"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSolverRoundTrip(t *testing.T) {
	// Emergency fund scenario: $5,000 now, $30,000 target, 12 months at 2%.
	gp := NewGoalProjector(quietLogger(), testPlanner())
	current := decimal.NewFromInt(5000)
	target := decimal.NewFromInt(30000)
	months := 12
	rate := decimal.NewFromInt(2)

	payment := gp.RequiredMonthlyContribution(current, target, months, rate)
	require.True(t, payment.GreaterThan(decimal.Zero))

	// Projecting both the balance and the solved payment forward must land on
	// the target within floating-point tolerance.
	monthlyRate := rate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	reached := futureValue(current, rate, months).Add(payment.Mul(annuityFactor(monthlyRate, months)))
	diff := reached.Sub(target).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)), "round trip off by %s", diff)
}

func TestSolverZeroRateFallsBackToLinear(t *testing.T) {
	gp := NewGoalProjector(quietLogger(), testPlanner())
	payment := gp.RequiredMonthlyContribution(decimal.Zero, decimal.NewFromInt(1200), 12, decimal.Zero)
	assert.True(t, payment.Equal(decimal.NewFromInt(100)), "got %s", payment)
}

func TestSolverEdgeCases(t *testing.T) {
	gp := NewGoalProjector(quietLogger(), testPlanner())
	tests := []struct {
		name     string
		current  float64
		target   float64
		months   int
		rate     float64
		expected float64
	}{
		{"target already met", 50000, 30000, 12, 5, 0},
		{"no months remaining", 10000, 25000, 0, 5, 15000},
		{"no months and target met", 30000, 25000, -3, 5, 0},
		{"negative current", -100, 30000, 12, 5, 0},
		{"negative target", 100, -30000, 12, 5, 0},
		{"negative rate", 100, 30000, 12, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gp.RequiredMonthlyContribution(
				decimal.NewFromFloat(tt.current), decimal.NewFromFloat(tt.target), tt.months, decimal.NewFromFloat(tt.rate))
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.expected)), "expected %.0f, got %s", tt.expected, got)
		})
	}
}

func TestProjectGoals(t *testing.T) {
	gp := NewGoalProjector(quietLogger(), testPlanner())
	me := NewMetricsEngine(testPlanner())
	hs := testSnapshot()
	hs.Goals.DownPaymentTarget = decimal.NewFromInt(60000)
	hs.Goals.DownPaymentDate = time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC)
	hs.Goals.EducationTarget = decimal.NewFromInt(100000)
	hs.Goals.EducationSavings = decimal.NewFromInt(20000)
	hs.Goals.NetWorthTarget = decimal.NewFromInt(1000000)

	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	defaults := domain.DefaultRegulatoryConfig().Defaults
	progress, required := gp.ProjectGoals(hs, me.Aggregate(hs), defaults, now)

	for _, key := range []string{"emergency_fund", "down_payment", "education", "net_worth", "savings_rate"} {
		p, ok := progress[key]
		require.True(t, ok, "missing progress for %s", key)
		assert.True(t, p.GreaterThanOrEqual(decimal.Zero) && p.LessThanOrEqual(decimal.NewFromInt(100)),
			"%s progress out of [0,100]: %s", key, p)
		_, ok = required[key]
		assert.True(t, ok, "missing required contribution for %s", key)
	}

	// Emergency target is 36,000 against 30,000 liquid: 83.33%.
	assert.True(t, progress["emergency_fund"].Round(2).Equal(decimal.NewFromFloat(83.33)),
		"got %s", progress["emergency_fund"])
	// Savings target of 24,000 is already outpaced by the 78,000 surplus.
	assert.True(t, progress["savings_rate"].Equal(decimal.NewFromInt(100)))
	assert.True(t, required["savings_rate"].IsZero())
}

func TestMonthsUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, monthsUntil(now, time.Time{}))
	assert.Equal(t, 0, monthsUntil(now, now.AddDate(0, 0, -5)))
	assert.Equal(t, 12, monthsUntil(now, time.Date(2027, 3, 20, 0, 0, 0, 0, time.UTC)))
}
