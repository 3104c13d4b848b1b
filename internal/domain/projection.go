package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Results are consumed as plain numbers by the HTTP and JSON outputs.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProjectionPoint is the net worth recorded at the start of an age-year.
type ProjectionPoint struct {
	Age      int             `json:"age" yaml:"age"`
	NetWorth decimal.Decimal `json:"net_worth" yaml:"net_worth"`
}

// Projection is ordered by ascending age with one point per integer age.
type Projection []ProjectionPoint

// At returns the point recorded for the given age.
func (p Projection) At(age int) (ProjectionPoint, bool) {
	if len(p) == 0 {
		return ProjectionPoint{}, false
	}
	// Points are contiguous, so the index is the age offset.
	idx := age - p[0].Age
	if idx < 0 || idx >= len(p) {
		return ProjectionPoint{}, false
	}
	return p[idx], true
}

// Peak returns the point with the highest net worth; the earliest wins ties.
func (p Projection) Peak() ProjectionPoint {
	var peak ProjectionPoint
	for i, point := range p {
		if i == 0 || point.NetWorth.GreaterThan(peak.NetWorth) {
			peak = point
		}
	}
	return peak
}

// DepletionAge returns the first age at which a previously positive net worth is
// recorded as zero.
func (p Projection) DepletionAge() (int, bool) {
	seenPositive := false
	for _, point := range p {
		if point.NetWorth.IsPositive() {
			seenPositive = true
			continue
		}
		if seenPositive && point.NetWorth.IsZero() {
			return point.Age, true
		}
	}
	return 0, false
}

// Ages returns the ages of the projection in order.
func (p Projection) Ages() []int {
	ages := make([]int, len(p))
	for i, point := range p {
		ages[i] = point.Age
	}
	return ages
}

// Values returns the recorded net worth values as floats, for charting.
func (p Projection) Values() []float64 {
	values := make([]float64, len(p))
	for i, point := range p {
		values[i] = point.NetWorth.InexactFloat64()
	}
	return values
}

// SummaryResult is the closed-form snapshot at the retirement age.
type SummaryResult struct {
	YearsToGrow               int             `json:"years_to_grow" yaml:"years_to_grow"`
	TotalSavings              decimal.Decimal `json:"total_savings" yaml:"total_savings"`
	RealTotalSavings          decimal.Decimal `json:"real_total_savings" yaml:"real_total_savings"`
	MonthlyIncomeInRetirement decimal.Decimal `json:"monthly_income_in_retirement" yaml:"monthly_income_in_retirement"`
	AfterTaxMonthlyIncome     decimal.Decimal `json:"after_tax_monthly_income" yaml:"after_tax_monthly_income"`
	FutureYearlySpending      decimal.Decimal `json:"future_yearly_spending" yaml:"future_yearly_spending"`
}

// CalculationResult bundles the summary, the projection and metrics derived from it.
type CalculationResult struct {
	Name                   string           `json:"name,omitempty"`
	Inputs                 RetirementInputs `json:"inputs"`
	EffectiveRetirementAge int              `json:"effective_retirement_age"`
	Summary                SummaryResult    `json:"summary"`
	Projection             Projection       `json:"projection"`
	PeakNetWorth           ProjectionPoint  `json:"peak_net_worth"`
	NetWorthAtRetirement   decimal.Decimal  `json:"net_worth_at_retirement"`
	NetWorthAt99           decimal.Decimal  `json:"net_worth_at_99"`
	DepletionAge           *int             `json:"depletion_age,omitempty"`
	Solvent                bool             `json:"solvent"`
}
