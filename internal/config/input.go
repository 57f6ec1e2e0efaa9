package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finplan/finplan/internal/domain"
)

// InputParser loads and validates household snapshot files. Validation lives
// here, at the collaborator edge: the calculation engine itself is a total
// function and assumes a well-formed snapshot.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadSnapshot loads a snapshot from a YAML file.
func (ip *InputParser) LoadSnapshot(filename string) (*domain.HouseholdSnapshot, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var snapshot domain.HouseholdSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateSnapshot(&snapshot); err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}
	return &snapshot, nil
}

// LoadRegulatory loads regulatory constant overrides from a YAML file,
// merged over the coded defaults by whole section.
func (ip *InputParser) LoadRegulatory(filename string) (*domain.RegulatoryConfig, error) {
	reg := domain.DefaultRegulatoryConfig()
	if filename == "" {
		return reg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("failed to parse regulatory YAML: %w", err)
	}
	return reg, nil
}

// ValidateSnapshot rejects malformed shapes and out-of-range caller input.
func (ip *InputParser) ValidateSnapshot(hs *domain.HouseholdSnapshot) error {
	if hs.Age < 0 || hs.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120, got %d", hs.Age)
	}
	if hs.Dependents < 0 {
		return fmt.Errorf("dependents cannot be negative, got %d", hs.Dependents)
	}
	for _, age := range hs.ChildAges {
		if age < 0 || age > 30 {
			return fmt.Errorf("child age must be between 0 and 30, got %d", age)
		}
	}
	if hs.AnnualIncome.LessThan(decimal.Zero) || hs.SpouseIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("income cannot be negative")
	}
	if hs.FilingStatus != "" && hs.FilingStatus != domain.FilingSingle && hs.FilingStatus != domain.FilingMarriedJoint {
		return fmt.Errorf("unknown filing status %q", hs.FilingStatus)
	}

	if err := validateNonNegative(map[string]decimal.Decimal{
		"checking":        hs.Accounts.Checking,
		"savings":         hs.Accounts.Savings,
		"retirement_401k": hs.Accounts.Retirement401k,
		"retirement_ira":  hs.Accounts.RetirementIRA,
		"brokerage":       hs.Accounts.Brokerage,
		"home_value":      hs.Accounts.HomeValue,
		"other_assets":    hs.Accounts.OtherAssets,
		"mortgage":        hs.Liabilities.Mortgage,
		"student_loans":   hs.Liabilities.StudentLoans,
		"car_loans":       hs.Liabilities.CarLoans,
		"credit_cards":    hs.Liabilities.CreditCards,
		"other_debts":     hs.Liabilities.OtherDebts,
	}); err != nil {
		return err
	}

	for i, debt := range hs.Debts {
		if debt.Name == "" {
			return fmt.Errorf("debt %d is missing a name", i)
		}
		if debt.Balance.LessThan(decimal.Zero) {
			return fmt.Errorf("debt %q has a negative balance", debt.Name)
		}
		if debt.APR.LessThan(decimal.Zero) || debt.APR.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("debt %q APR must be between 0 and 100, got %s", debt.Name, debt.APR)
		}
		if debt.MinimumPayment.LessThan(decimal.Zero) {
			return fmt.Errorf("debt %q has a negative minimum payment", debt.Name)
		}
	}

	if p := hs.Portfolio; p != nil {
		for name, pct := range map[string]decimal.Decimal{
			"stocks": p.StocksPct, "bonds": p.BondsPct, "cash": p.CashPct, "other": p.OtherPct,
		} {
			if pct.LessThan(decimal.Zero) || pct.GreaterThan(decimal.NewFromInt(100)) {
				return fmt.Errorf("portfolio %s allocation must be between 0 and 100, got %s", name, pct)
			}
		}
	}

	if hs.Goals.RetirementAge < 0 || hs.Goals.RetirementAge > 120 {
		return fmt.Errorf("retirement age must be between 0 and 120, got %d", hs.Goals.RetirementAge)
	}

	return nil
}

func validateNonNegative(fields map[string]decimal.Decimal) error {
	for name, v := range fields {
		if v.LessThan(decimal.Zero) {
			return fmt.Errorf("%s cannot be negative, got %s", name, v)
		}
	}
	return nil
}
