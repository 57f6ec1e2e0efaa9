package output

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/finplan/internal/calculation"
	"github.com/finplan/finplan/internal/domain"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	engine := calculation.NewEngine(domain.DefaultRegulatoryConfig(), log, 42)
	engine.Now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }

	hs := &domain.HouseholdSnapshot{
		Age:          40,
		Dependents:   2,
		ChildAges:    []int{6, 9},
		AnnualIncome: decimal.NewFromInt(95000),
		SpouseIncome: decimal.NewFromInt(55000),
		Accounts: domain.Accounts{
			Checking:       decimal.NewFromInt(8000),
			Savings:        decimal.NewFromInt(22000),
			Retirement401k: decimal.NewFromInt(180000),
			RetirementIRA:  decimal.NewFromInt(45000),
			Brokerage:      decimal.NewFromInt(30000),
		},
		MonthlyExpenses: domain.MonthlyExpenses{
			Housing: decimal.NewFromInt(2600),
			Food:    decimal.NewFromInt(1100),
		},
		Insurance: domain.Insurance{
			LifeCoverage:       decimal.NewFromInt(500000),
			DisabilityCoverage: true,
		},
		State:        "PA",
		FilingStatus: domain.FilingMarriedJoint,
		Goals: domain.Goals{
			RetirementAge:       65,
			EmergencyFundMonths: 6,
		},
		Debts: []domain.DebtAccount{
			{Name: "Visa", Balance: decimal.NewFromInt(6000), APR: decimal.NewFromFloat(19.99), MinimumPayment: decimal.NewFromInt(120)},
		},
		Portfolio: &domain.Allocation{
			StocksPct: decimal.NewFromInt(70),
			BondsPct:  decimal.NewFromInt(25),
			CashPct:   decimal.NewFromInt(5),
		},
	}

	metrics, risk := engine.Analyze(hs)
	return &Report{
		GeneratedAt: engine.Now(),
		Metrics:     metrics,
		Risk:        risk,
	}
}

func TestNewFormatterSelection(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter("json"))
	assert.IsType(t, &CSVFormatter{}, NewFormatter("csv"))
	assert.IsType(t, &TableFormatter{}, NewFormatter("table"))
	assert.IsType(t, &TableFormatter{}, NewFormatter(""))
}

func TestTableFormatterSections(t *testing.T) {
	out, err := (&TableFormatter{}).Format(sampleReport(t))
	require.NoError(t, err)

	for _, section := range []string{
		"FINANCIAL HEALTH REPORT",
		"OVERVIEW",
		"HEALTH SCORE BREAKDOWN",
		"RISK ASSESSMENT",
		"RETIREMENT",
		"DEBT PAYOFF",
		"COLLEGE PLANNING",
		"TAX OPTIMIZATION",
	} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "Generated: 2026-01-15")
	assert.Contains(t, out, "Net Worth")
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	report := sampleReport(t)
	out, err := (&JSONFormatter{Pretty: true}).Format(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "generatedAt")
	assert.Contains(t, decoded, "metrics")
	assert.Contains(t, decoded, "risk")

	compact, err := (&JSONFormatter{}).Format(report)
	require.NoError(t, err)
	assert.True(t, len(compact) < len(out), "compact output should be smaller")
}

func TestCSVFormatterParses(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleReport(t))
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(out))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	assert.Equal(t, []string{"metric", "value"}, rows[0])
	var sawRiskHeader bool
	for _, row := range rows {
		if row[0] == "risk_category" {
			sawRiskHeader = true
		}
	}
	assert.True(t, sawRiskHeader, "risk section header missing")
}
