package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/finplan/internal/domain"
)

// bracketRow is one row of a compiled progressive table: the marginal rate
// applies between the previous row's bound and UpperBound, and CumTaxToBound
// is the total tax owed by an income exactly at UpperBound. The final row has
// open == true and no upper bound.
type bracketRow struct {
	UpperBound    decimal.Decimal
	CumTaxToBound decimal.Decimal
	Rate          decimal.Decimal
	open          bool
}

// TaxCalculator evaluates federal and per-state progressive bracket tables.
// It is a leaf calculator with no dependencies on the rest of the engine.
type TaxCalculator struct {
	stdDeductionSingle decimal.Decimal
	stdDeductionMFJ    decimal.Decimal
	federalSingle      []bracketRow
	federalMFJ         []bracketRow
	states             map[string][]bracketRow
	noTaxStates        map[string]bool
}

// NewTaxCalculator compiles the regulatory bracket data into cumulative
// tables.
func NewTaxCalculator(reg *domain.RegulatoryConfig) *TaxCalculator {
	tc := &TaxCalculator{
		stdDeductionSingle: reg.FederalTax.StandardDeductionSingle,
		stdDeductionMFJ:    reg.FederalTax.StandardDeductionMFJ,
		federalSingle:      compileBrackets(reg.FederalTax.BracketsSingle),
		federalMFJ:         compileBrackets(reg.FederalTax.BracketsMFJ),
		states:             make(map[string][]bracketRow),
		noTaxStates:        make(map[string]bool),
	}
	for state, rules := range reg.States {
		if rules.NoIncomeTax {
			tc.noTaxStates[state] = true
			continue
		}
		tc.states[state] = compileBrackets(rules.Brackets)
	}
	return tc
}

// compileBrackets turns (upTo, rate) pairs into rows carrying the cumulative
// tax at each upper bound. A bracket with a zero UpTo is the open final row.
func compileBrackets(brackets []domain.TaxBracket) []bracketRow {
	rows := make([]bracketRow, 0, len(brackets))
	prevBound := decimal.Zero
	cum := decimal.Zero
	for _, b := range brackets {
		if b.UpTo.IsZero() {
			rows = append(rows, bracketRow{Rate: b.Rate, CumTaxToBound: cum, open: true})
			break
		}
		cum = cum.Add(b.UpTo.Sub(prevBound).Mul(b.Rate))
		rows = append(rows, bracketRow{UpperBound: b.UpTo, CumTaxToBound: cum, Rate: b.Rate})
		prevBound = b.UpTo
	}
	return rows
}

// evaluate walks a compiled table: find the bracket the income falls in, take
// the cumulative tax through the previous bound and add the marginal portion.
func evaluate(rows []bracketRow, income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) || len(rows) == 0 {
		return decimal.Zero
	}
	prevBound := decimal.Zero
	prevCum := decimal.Zero
	for _, row := range rows {
		if row.open || income.LessThanOrEqual(row.UpperBound) {
			return prevCum.Add(income.Sub(prevBound).Mul(row.Rate))
		}
		prevBound = row.UpperBound
		prevCum = row.CumTaxToBound
	}
	// Income above the last bounded row with no open row configured: tax the
	// remainder at the top rate.
	last := rows[len(rows)-1]
	return last.CumTaxToBound.Add(income.Sub(last.UpperBound).Mul(last.Rate))
}

// StateTax computes state income tax on taxable income. Unknown jurisdictions
// and no-income-tax states return zero.
func (tc *TaxCalculator) StateTax(income decimal.Decimal, state string) decimal.Decimal {
	if tc.noTaxStates[state] {
		return decimal.Zero
	}
	rows, ok := tc.states[state]
	if !ok {
		return decimal.Zero
	}
	return evaluate(rows, income)
}

// FederalTax computes federal income tax after the standard deduction for the
// given filing status.
func (tc *TaxCalculator) FederalTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	deduction := tc.stdDeductionSingle
	rows := tc.federalSingle
	if status == domain.FilingMarriedJoint {
		deduction = tc.stdDeductionMFJ
		rows = tc.federalMFJ
	}
	taxable := income.Sub(deduction)
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return evaluate(rows, taxable)
}

// Calculate produces the combined federal + state result for a household's
// taxable income. Negative income is treated as zero.
func (tc *TaxCalculator) Calculate(income decimal.Decimal, state string, status domain.FilingStatus) domain.TaxResult {
	if income.LessThan(decimal.Zero) {
		income = decimal.Zero
	}
	federal := tc.FederalTax(income, status)
	stateTax := tc.StateTax(income, state)
	total := federal.Add(stateTax)

	effective := decimal.Zero
	if income.GreaterThan(decimal.Zero) {
		effective = total.Div(income).Mul(decimal.NewFromInt(100))
	}
	return domain.TaxResult{
		StateTax:      stateTax,
		FederalTax:    federal,
		TotalTax:      total,
		EffectiveRate: effective,
	}
}
