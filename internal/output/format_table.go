package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter renders a report as a console table.
type TableFormatter struct{}

// Format generates the full console report.
func (tf *TableFormatter) Format(r *Report) (string, error) {
	var sb strings.Builder
	m := r.Metrics

	sb.WriteString("FINANCIAL HEALTH REPORT\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02")))

	sb.WriteString("OVERVIEW\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %s\n", "Total Assets", money(m.TotalAssets)))
	sb.WriteString(fmt.Sprintf("%-28s %s\n", "Total Liabilities", money(m.TotalLiabilities)))
	sb.WriteString(fmt.Sprintf("%-28s %s\n", "Net Worth", money(m.NetWorth)))
	sb.WriteString(fmt.Sprintf("%-28s %s\n", "Annual Income", money(m.TotalIncome)))
	sb.WriteString(fmt.Sprintf("%-28s %s\n", "Monthly Expenses", money(m.MonthlyExpenses)))
	sb.WriteString(fmt.Sprintf("%-28s %s%%\n", "Savings Rate", m.SavingsRate.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-28s %s months\n", "Emergency Fund", m.EmergencyFundMonths.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-28s %d / 100\n\n", "Health Score", m.HealthScore))

	b := m.HealthBreakdown
	sb.WriteString("HEALTH SCORE BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-28s %s / 25\n", "Protection", b.Protection.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-28s %s / 25\n", "Savings Rate", b.SavingsRate.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-28s %s / 20\n", "Emergency Fund", b.EmergencyFund.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-28s %s / 15\n", "Debt Load", b.DebtLoad.StringFixed(1)))
	sb.WriteString(fmt.Sprintf("%-28s %s / 15\n\n", "Net Worth", b.NetWorth.StringFixed(1)))

	sb.WriteString("RISK ASSESSMENT\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-24s %-10s %6s  %s\n", "Category", "Status", "Score", "Message"))
	for _, cat := range r.Risk.Categories {
		sb.WriteString(fmt.Sprintf("%-24s %-10s %6d  %s\n", cat.Name, cat.Status, cat.Score, cat.Message))
	}
	sb.WriteString(fmt.Sprintf("\n%-28s %s\n", "Overall Risk Score", r.Risk.OverallScore.StringFixed(1)))
	if len(r.Risk.CriticalGaps) > 0 {
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Critical Gaps", strings.Join(r.Risk.CriticalGaps, ", ")))
	}
	sb.WriteString("\n")

	if ret := m.Retirement; ret != nil {
		sb.WriteString("RETIREMENT\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%-28s %d\n", "Years To Retirement", ret.YearsToRetirement))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Target Savings", money(ret.TargetSavings)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Projected Savings", money(ret.ProjectedSavings)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Gap", money(ret.Gap)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Required Monthly", money(ret.RequiredMonthly)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Est. Social Security", money(ret.SocialSecurity)))
		if mc := ret.MonteCarlo; mc != nil {
			sb.WriteString(fmt.Sprintf("%-28s %s (p10 %s / p90 %s)\n", "Simulated Median", money(mc.Median), money(mc.Percentile10), money(mc.Percentile90)))
			sb.WriteString(fmt.Sprintf("%-28s %s%%\n", "Success Rate", mc.SuccessRate.Mul(decimal.NewFromInt(100)).StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if dp := m.DebtPayoff; dp != nil {
		sb.WriteString("DEBT PAYOFF\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(formatPlanLine("Avalanche", dp.Avalanche.MonthsToPayoff, dp.Avalanche.TotalInterest, dp.Avalanche.Converged))
		sb.WriteString(formatPlanLine("Snowball", dp.Snowball.MonthsToPayoff, dp.Snowball.TotalInterest, dp.Snowball.Converged))
		sb.WriteString(fmt.Sprintf("%-28s %s (saves %s, %d months)\n\n", "Recommended", dp.RecommendedMethod, money(dp.InterestSavings), dp.MonthsSaved))
		if !dp.Avalanche.Converged {
			sb.WriteString("WARNING: " + dp.Avalanche.NonConvergenceMsg + "\n\n")
		}
	}

	if c := m.College; c != nil {
		sb.WriteString("COLLEGE PLANNING\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Projected Total Cost", money(c.TotalCost)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Projected Savings", money(c.ProjectedSavings)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n", "Shortfall", money(c.Shortfall)))
		sb.WriteString(fmt.Sprintf("%-28s %s\n\n", "Required Monthly", money(c.RequiredMonthly)))
	}

	if tx := m.TaxOptimization; tx != nil {
		sb.WriteString("TAX OPTIMIZATION\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("%-28s %s (effective %s%%)\n", "Current Tax", money(tx.CurrentTax.TotalTax), tx.CurrentTax.EffectiveRate.StringFixed(1)))
		for _, rec := range tx.Recommendations {
			sb.WriteString(fmt.Sprintf("  [%s] %-44s %s\n", rec.Difficulty, rec.Title, money(rec.EstimatedSavings)))
		}
		sb.WriteString(fmt.Sprintf("%-28s %s\n\n", "Potential Savings", money(tx.PotentialSavings)))
	}

	if len(m.ActionItems) > 0 {
		sb.WriteString("ACTION ITEMS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for i, item := range m.ActionItems {
			sb.WriteString(fmt.Sprintf("%d. [%s] %s: %s (by %s)\n", i+1, item.Priority, item.Category, item.Action, item.Deadline.Format("2006-01-02")))
		}
	}

	sb.WriteString(strings.Repeat("=", 72) + "\n")
	return sb.String(), nil
}

func formatPlanLine(label string, months int, interest decimal.Decimal, converged bool) string {
	if !converged {
		return fmt.Sprintf("%-28s does not converge\n", label)
	}
	return fmt.Sprintf("%-28s %d months, %s interest\n", label, months, money(interest))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
