package calculation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finplan/finplan/internal/domain"
)

// maxPayoffMonths caps the month-stepping loop.
const maxPayoffMonths = 360

// nonConvergenceMsg is the sentinel reported when the payment budget cannot
// cover the interest accruing on outstanding debt.
const nonConvergenceMsg = "monthly payment does not cover accruing interest; debt will continue growing"

// DebtPayoffSimulator runs the avalanche and snowball orderings through an
// identical month-stepping loop and compares them.
type DebtPayoffSimulator struct {
	log *logrus.Logger
}

// NewDebtPayoffSimulator creates a simulator. A nil logger falls back to the
// standard logrus logger.
func NewDebtPayoffSimulator(log *logrus.Logger) *DebtPayoffSimulator {
	if log == nil {
		log = logrus.New()
	}
	return &DebtPayoffSimulator{log: log}
}

// Compare simulates both orderings with the same monthly budget (sum of
// minimum payments plus extraMonthly) and recommends the cheaper method.
func (ds *DebtPayoffSimulator) Compare(debts []domain.DebtAccount, extraMonthly decimal.Decimal) *domain.DebtPayoffAnalysis {
	if len(debts) == 0 {
		return nil
	}
	if extraMonthly.LessThan(decimal.Zero) {
		extraMonthly = decimal.Zero
	}

	budget := extraMonthly
	for _, d := range debts {
		budget = budget.Add(d.MinimumPayment)
	}

	avalanche := ds.simulate(orderByAPRDesc(debts), budget, "avalanche")
	snowball := ds.simulate(orderByBalanceAsc(debts), budget, "snowball")

	analysis := &domain.DebtPayoffAnalysis{
		Avalanche:         avalanche,
		Snowball:          snowball,
		RecommendedMethod: "avalanche",
		InterestSavings:   snowball.TotalInterest.Sub(avalanche.TotalInterest),
		MonthsSaved:       snowball.MonthsToPayoff - avalanche.MonthsToPayoff,
	}
	if snowball.TotalInterest.LessThan(avalanche.TotalInterest) {
		analysis.RecommendedMethod = "snowball"
	}
	return analysis
}

// simulate steps one ordering month by month: accrue each open debt's
// interest onto its balance, apply minimum payments capped at the remaining
// balance and budget, then send any leftover budget in full at the first
// still-open debt in the ordering.
func (ds *DebtPayoffSimulator) simulate(debts []domain.DebtAccount, budget decimal.Decimal, method string) domain.PayoffPlan {
	n := len(debts)
	balances := make([]decimal.Decimal, n)
	interestPaid := make([]decimal.Decimal, n)
	paidOffMonth := make([]int, n)
	for i, d := range debts {
		balances[i] = d.Balance
	}

	plan := domain.PayoffPlan{Method: method, Converged: true}

	for month := 1; month <= maxPayoffMonths; month++ {
		startTotal := totalOf(balances)
		if startTotal.IsZero() {
			break
		}

		// Accrue this month's interest before any payment lands.
		for i := range debts {
			if balances[i].GreaterThan(decimal.Zero) {
				interest := balances[i].Mul(debts[i].APR.Div(decimal.NewFromInt(100))).Div(twelve)
				balances[i] = balances[i].Add(interest)
				interestPaid[i] = interestPaid[i].Add(interest)
			}
		}

		remaining := budget
		for i := range debts {
			if balances[i].LessThanOrEqual(decimal.Zero) || remaining.LessThanOrEqual(decimal.Zero) {
				continue
			}
			payment := decimal.Min(debts[i].MinimumPayment, balances[i], remaining)
			balances[i] = balances[i].Sub(payment)
			remaining = remaining.Sub(payment)
			if balances[i].LessThanOrEqual(decimal.Zero) && paidOffMonth[i] == 0 {
				paidOffMonth[i] = month
			}
		}

		// Leftover budget goes in full to the first open debt in the ordering.
		if remaining.GreaterThan(decimal.Zero) {
			for i := range debts {
				if balances[i].GreaterThan(decimal.Zero) {
					payment := decimal.Min(remaining, balances[i])
					balances[i] = balances[i].Sub(payment)
					if balances[i].LessThanOrEqual(decimal.Zero) && paidOffMonth[i] == 0 {
						paidOffMonth[i] = month
					}
					break
				}
			}
		}

		endTotal := totalOf(balances)
		if endTotal.IsZero() {
			plan.MonthsToPayoff = month
			break
		}
		if endTotal.GreaterThanOrEqual(startTotal) {
			plan.Converged = false
			plan.NonConvergenceMsg = nonConvergenceMsg
			ds.log.WithField("method", method).Warn(nonConvergenceMsg)
			break
		}
		plan.MonthsToPayoff = month
	}

	if !totalOf(balances).IsZero() && plan.Converged {
		// Hit the month cap without paying off and without a detected
		// divergence; report the cap rather than a clean payoff.
		plan.MonthsToPayoff = maxPayoffMonths
		plan.Converged = false
		plan.NonConvergenceMsg = nonConvergenceMsg
	}

	order := make([]domain.DebtPayoff, 0, n)
	for i, d := range debts {
		order = append(order, domain.DebtPayoff{
			Name:         d.Name,
			MonthsToZero: paidOffMonth[i],
			InterestPaid: interestPaid[i],
		})
		plan.TotalInterest = plan.TotalInterest.Add(interestPaid[i])
	}
	sort.SliceStable(order, func(a, b int) bool {
		// Unpaid debts (month 0) sort last.
		ma, mb := order[a].MonthsToZero, order[b].MonthsToZero
		if ma == 0 {
			return false
		}
		if mb == 0 {
			return true
		}
		return ma < mb
	})
	plan.PayoffOrder = order
	return plan
}

func totalOf(balances []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		if b.GreaterThan(decimal.Zero) {
			total = total.Add(b)
		}
	}
	return total
}

func orderByAPRDesc(debts []domain.DebtAccount) []domain.DebtAccount {
	ordered := make([]domain.DebtAccount, len(debts))
	copy(ordered, debts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].APR.GreaterThan(ordered[j].APR)
	})
	return ordered
}

func orderByBalanceAsc(debts []domain.DebtAccount) []domain.DebtAccount {
	ordered := make([]domain.DebtAccount, len(debts))
	copy(ordered, debts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Balance.LessThan(ordered[j].Balance)
	})
	return ordered
}
