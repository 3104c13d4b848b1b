package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTaxRateTooHigh is returned when the tax rate would make the withdrawal gross-up
	// divide by zero or flip sign.
	ErrTaxRateTooHigh = errors.New("tax rate must be below 100%")

	// ErrNonFiniteInput is returned when a rate or amount is NaN or infinite.
	ErrNonFiniteInput = errors.New("input values must be finite numbers")
)

// RetirementInputs holds the assumptions for a single calculation request.
// Percentages are expressed as whole numbers (8 means 8%).
type RetirementInputs struct {
	CurrentAge               int     `yaml:"current_age" json:"current_age"`
	RetirementAge            int     `yaml:"retirement_age" json:"retirement_age"`
	CurrentSavings           float64 `yaml:"current_savings" json:"current_savings"`
	MonthlyContribution      float64 `yaml:"monthly_contribution" json:"monthly_contribution"`
	AnnualReturn             float64 `yaml:"annual_return" json:"annual_return"`
	InflationRate            float64 `yaml:"inflation_rate" json:"inflation_rate"`
	ContributionIncreaseRate float64 `yaml:"contribution_increase_rate" json:"contribution_increase_rate"`
	CurrentYearlySpending    float64 `yaml:"current_yearly_spending" json:"current_yearly_spending"`
	TaxRate                  float64 `yaml:"tax_rate" json:"tax_rate"`
}

// Validate rejects inputs the projection cannot evaluate. It performs no
// reasonableness checks: negative ages, negative rates and retirement ages before the
// current age are all accepted.
func (in RetirementInputs) Validate() error {
	floats := []struct {
		name  string
		value float64
	}{
		{"current_savings", in.CurrentSavings},
		{"monthly_contribution", in.MonthlyContribution},
		{"annual_return", in.AnnualReturn},
		{"inflation_rate", in.InflationRate},
		{"contribution_increase_rate", in.ContributionIncreaseRate},
		{"current_yearly_spending", in.CurrentYearlySpending},
		{"tax_rate", in.TaxRate},
	}
	for _, f := range floats {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s: %w", f.name, ErrNonFiniteInput)
		}
	}
	if in.TaxRate >= 100 {
		return fmt.Errorf("tax_rate %.2f: %w", in.TaxRate, ErrTaxRateTooHigh)
	}
	return nil
}

// MonthlyReturn returns the monthly compounding rate as a fraction.
func (in RetirementInputs) MonthlyReturn() float64 {
	return in.AnnualReturn / 100 / 12
}
