package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/finplan/internal/domain"
)

func newTestTaxCalculator() *TaxCalculator {
	return NewTaxCalculator(domain.DefaultRegulatoryConfig())
}

func TestFederalTaxMFJScenario(t *testing.T) {
	// $150,000 joint income less the $29,200 standard deduction leaves
	// $120,800 taxable:
	//   23,200 x 10%            =  2,320
	//   (94,300-23,200) x 12%   =  8,532
	//   (120,800-94,300) x 22%  =  5,830
	// total                     = 16,682
	tc := newTestTaxCalculator()
	tax := tc.FederalTax(decimal.NewFromInt(150000), domain.FilingMarriedJoint)
	assert.True(t, tax.Equal(decimal.NewFromInt(16682)), "expected 16682, got %s", tax)
}

func TestFederalTaxBelowDeduction(t *testing.T) {
	tc := newTestTaxCalculator()
	tax := tc.FederalTax(decimal.NewFromInt(20000), domain.FilingMarriedJoint)
	assert.True(t, tax.IsZero(), "income below the standard deduction owes nothing, got %s", tax)
}

func TestStateTaxFastPathAndUnknown(t *testing.T) {
	tc := newTestTaxCalculator()
	income := decimal.NewFromInt(100000)

	assert.True(t, tc.StateTax(income, "TX").IsZero(), "no-income-tax state")
	assert.True(t, tc.StateTax(income, "ZZ").IsZero(), "unknown jurisdiction")
}

func TestStateTaxFlatAndProgressive(t *testing.T) {
	tc := newTestTaxCalculator()

	pa := tc.StateTax(decimal.NewFromInt(100000), "PA")
	assert.True(t, pa.Equal(decimal.NewFromInt(3070)), "PA flat 3.07%%, got %s", pa)

	// VA: 3000x2% + 2000x3% + 12000x5% + 3000x5.75% = 60+60+600+172.50
	va := tc.StateTax(decimal.NewFromInt(20000), "VA")
	assert.True(t, va.Equal(decimal.NewFromFloat(892.5)), "expected 892.50, got %s", va)
}

func TestTaxMonotonicInIncome(t *testing.T) {
	tc := newTestTaxCalculator()
	prev := decimal.Zero
	for income := int64(0); income <= 1000000; income += 10000 {
		result := tc.Calculate(decimal.NewFromInt(income), "CA", domain.FilingSingle)
		require.True(t, result.TotalTax.GreaterThanOrEqual(prev),
			"tax decreased from %s at income %d", prev, income)
		prev = result.TotalTax
	}
}

func TestEffectiveRateGuardsZeroIncome(t *testing.T) {
	tc := newTestTaxCalculator()
	result := tc.Calculate(decimal.Zero, "CA", domain.FilingSingle)
	assert.True(t, result.EffectiveRate.IsZero())
	assert.True(t, result.TotalTax.IsZero())
}

func TestCalculateCombinesStateAndFederal(t *testing.T) {
	tc := newTestTaxCalculator()
	result := tc.Calculate(decimal.NewFromInt(150000), "PA", domain.FilingMarriedJoint)

	assert.True(t, result.FederalTax.Equal(decimal.NewFromInt(16682)))
	assert.True(t, result.StateTax.Equal(decimal.NewFromInt(4605)), "PA taxes the full 150000, got %s", result.StateTax)
	assert.True(t, result.TotalTax.Equal(result.FederalTax.Add(result.StateTax)))
	assert.True(t, result.EffectiveRate.GreaterThan(decimal.Zero))
}

func TestNegativeIncomeTreatedAsZero(t *testing.T) {
	tc := newTestTaxCalculator()
	result := tc.Calculate(decimal.NewFromInt(-5000), "CA", domain.FilingSingle)
	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, result.EffectiveRate.IsZero())
}
