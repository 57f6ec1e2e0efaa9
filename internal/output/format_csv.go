package output

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// CSVFormatter renders the report's headline metrics and risk categories as
// CSV rows for spreadsheet import.
type CSVFormatter struct{}

// Format generates CSV output for a report.
func (cf *CSVFormatter) Format(r *Report) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	m := r.Metrics

	rows := [][]string{
		{"metric", "value"},
		{"total_assets", m.TotalAssets.StringFixed(2)},
		{"total_liabilities", m.TotalLiabilities.StringFixed(2)},
		{"net_worth", m.NetWorth.StringFixed(2)},
		{"total_income", m.TotalIncome.StringFixed(2)},
		{"monthly_expenses", m.MonthlyExpenses.StringFixed(2)},
		{"savings_rate_pct", m.SavingsRate.StringFixed(2)},
		{"emergency_fund_months", m.EmergencyFundMonths.StringFixed(2)},
		{"debt_to_income", m.DebtToIncome.StringFixed(2)},
		{"health_score", strconv.Itoa(m.HealthScore)},
		{"overall_risk_score", r.Risk.OverallScore.StringFixed(2)},
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write metrics rows: %w", err)
	}

	riskRows := [][]string{{"risk_category", "status", "score", "message"}}
	for _, cat := range r.Risk.Categories {
		riskRows = append(riskRows, []string{cat.Name, string(cat.Status), strconv.Itoa(cat.Score), cat.Message})
	}
	if err := w.WriteAll(riskRows); err != nil {
		return "", fmt.Errorf("failed to write risk rows: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
