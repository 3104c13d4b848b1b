package compare

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario with its headline metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenario_name"`
	Description  string                    `json:"description,omitempty"`
	Result       *domain.CalculationResult `json:"-"`

	// Key Metrics
	RetirementAge int             `json:"retirement_age"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
	PeakNetWorth  decimal.Decimal `json:"peak_net_worth"`
	PeakAge       int             `json:"peak_age"`
	NetWorthAt99  decimal.Decimal `json:"net_worth_at_99"`
	DepletionAge  *int            `json:"depletion_age,omitempty"`
	Solvent       bool            `json:"solvent"`

	// Comparison to Base
	SavingsDiffFromBase  decimal.Decimal `json:"savings_diff_from_base"`
	NetWorthDiffFromBase decimal.Decimal `json:"net_worth_diff_from_base"`
	NetWorthPctFromBase  decimal.Decimal `json:"net_worth_pct_from_base"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"base_scenario_name"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"config_path,omitempty"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one calculation result
func (mc *MetricsCalculator) CalculateMetrics(name string, calc *domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  name,
		Result:        calc,
		RetirementAge: calc.EffectiveRetirementAge,
		TotalSavings:  calc.Summary.TotalSavings,
		PeakNetWorth:  calc.PeakNetWorth.NetWorth,
		PeakAge:       calc.PeakNetWorth.Age,
		NetWorthAt99:  calc.NetWorthAt99,
		DepletionAge:  calc.DepletionAge,
		Solvent:       calc.Solvent,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SavingsDiffFromBase = scenario.TotalSavings.Sub(base.TotalSavings)
	scenario.NetWorthDiffFromBase = scenario.NetWorthAt99.Sub(base.NetWorthAt99)

	if !base.NetWorthAt99.IsZero() {
		scenario.NetWorthPctFromBase = scenario.NetWorthDiffFromBase.
			Div(base.NetWorthAt99).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by net worth at 99
	best := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].NetWorthAt99.GreaterThan(best.NetWorthAt99) {
			best = &compSet.AlternativeResults[i]
		}
	}
	if best != base {
		recommendations = append(recommendations,
			"Largest Legacy: "+best.ScenarioName+" leaves $"+best.NetWorthDiffFromBase.StringFixed(0)+
				" more at age 99 than the base scenario")
	}

	// Solvency changes
	for _, alt := range compSet.AlternativeResults {
		switch {
		case base.Solvent && !alt.Solvent:
			msg := "At Risk: " + alt.ScenarioName + " runs out of money"
			if alt.DepletionAge != nil {
				msg += fmt.Sprintf(" at age %d", *alt.DepletionAge)
			}
			recommendations = append(recommendations, msg)
		case !base.Solvent && alt.Solvent:
			recommendations = append(recommendations,
				"Fixes Shortfall: "+alt.ScenarioName+" keeps the plan solvent through age 99")
		}
	}

	// Longest-lasting when the base depletes
	if base.DepletionAge != nil {
		longest := base
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.DepletionAge != nil && *alt.DepletionAge > *longest.DepletionAge {
				longest = alt
			}
		}
		if longest != base {
			recommendations = append(recommendations,
				fmt.Sprintf("Best Longevity: %s delays depletion by %d years",
					longest.ScenarioName, *longest.DepletionAge-*base.DepletionAge))
		}
	}

	return recommendations
}
