package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/shopspring/decimal"
)

// SensitivityParameter is one input swept across an evenly spaced range.
type SensitivityParameter struct {
	Name  string
	Min   float64
	Max   float64
	Steps int
}

// Validate checks the sweep bounds and that the parameter names a known input.
func (p SensitivityParameter) Validate() error {
	if _, err := transform.LookupVariable(p.Name); err != nil {
		return err
	}
	if p.Steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", p.Steps)
	}
	if p.Min > p.Max {
		return fmt.Errorf("min %g is greater than max %g", p.Min, p.Max)
	}
	return nil
}

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeSingleParameter runs the engine once per swept value of the parameter.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(base domain.RetirementInputs, parameter SensitivityParameter) (*domain.ParameterSensitivityAnalysis, error) {
	if err := parameter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sensitivity parameter: %w", err)
	}
	variable, _ := transform.LookupVariable(parameter.Name)

	values := sa.generateParameterValues(parameter)
	results := make([]domain.SensitivityResult, 0, len(values))

	for _, value := range values {
		modified := variable.Set(base, value)

		calc, err := sa.calculationEngine.Calculate(modified)
		if errors.Is(err, domain.ErrTaxRateTooHigh) {
			// Nothing can be withdrawn at this rate; count it as insolvent and keep sweeping.
			sa.calculationEngine.Logger.Debugf("sensitivity %s=%v: %v", parameter.Name, value, err)
			results = append(results, domain.SensitivityResult{Value: value})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to run projection for %s=%v: %w", parameter.Name, value, err)
		}

		results = append(results, domain.SensitivityResult{
			Value:                value,
			NetWorthAtRetirement: calc.NetWorthAtRetirement,
			NetWorthAt99:         calc.NetWorthAt99,
			PeakNetWorth:         calc.PeakNetWorth.NetWorth,
			DepletionAge:         calc.DepletionAge,
			Solvent:              calc.Solvent,
		})
	}

	sa.calculationEngine.Logger.Debugf("sensitivity sweep of %s ran %d projections", parameter.Name, len(results))

	return &domain.ParameterSensitivityAnalysis{
		Parameter: parameter.Name,
		Unit:      variable.Unit,
		BaseValue: variable.Get(base),
		Results:   results,
		Summary:   sa.calculateSensitivitySummary(parameter, results),
	}, nil
}

// generateParameterValues returns Steps evenly spaced values from Min to Max inclusive.
func (sa *SensitivityAnalyzer) generateParameterValues(parameter SensitivityParameter) []float64 {
	values := make([]float64, parameter.Steps)
	step := (parameter.Max - parameter.Min) / float64(parameter.Steps-1)
	for i := range values {
		values[i] = parameter.Min + float64(i)*step
	}
	values[len(values)-1] = parameter.Max
	return values
}

func (sa *SensitivityAnalyzer) calculateSensitivitySummary(parameter SensitivityParameter, results []domain.SensitivityResult) domain.SensitivitySummary {
	summary := domain.SensitivitySummary{}
	if len(results) == 0 {
		return summary
	}

	summary.MinNetWorthAt99 = results[0].NetWorthAt99
	summary.MaxNetWorthAt99 = results[0].NetWorthAt99
	for i, r := range results {
		summary.MinNetWorthAt99 = decimal.Min(summary.MinNetWorthAt99, r.NetWorthAt99)
		summary.MaxNetWorthAt99 = decimal.Max(summary.MaxNetWorthAt99, r.NetWorthAt99)
		if r.Solvent {
			summary.SolventCount++
			if summary.FirstSolventValue == nil {
				v := results[i].Value
				summary.FirstSolventValue = &v
			}
		}
	}

	switch summary.SolventCount {
	case len(results):
		summary.RiskLevel = domain.RiskLow
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("The plan stays solvent across the whole %s range.", parameter.Name))
	case 0:
		summary.RiskLevel = domain.RiskHigh
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("The plan runs out of money for every %s tested; other inputs need to change.", parameter.Name))
	default:
		summary.RiskLevel = domain.RiskMedium
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Solvency depends on %s; %d of %d values tested stay solvent.", parameter.Name, summary.SolventCount, len(results)))
	}

	return summary
}
