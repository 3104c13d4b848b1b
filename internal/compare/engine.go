package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// BaseScenarioName names the unmodified inputs in a comparison.
const BaseScenarioName = "base"

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// Templates lists built-in template names or ad-hoc transform specs
	// ("adjust:annual_return=-1").
	Templates []string
	// Scenarios lists named scenarios from the configuration file.
	Scenarios []string
	// AllScenarios compares every scenario in the configuration file.
	AllScenarios bool
}

// alternative is one named set of transforms to run against the base inputs.
type alternative struct {
	name        string
	description string
	transforms  []transform.InputTransform
}

// Compare runs the base inputs and every requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	alternatives, err := ce.resolveAlternatives(config, options)
	if err != nil {
		return nil, err
	}

	baseCalc, err := ce.CalcEngine.Calculate(config.Inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(BaseScenarioName, baseCalc)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		modified, err := transform.ApplyTransforms(config.Inputs, alt.transforms...)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt.name, err)
		}

		calc, err := ce.CalcEngine.Calculate(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.name, err)
		}
		calc.Name = alt.name

		altResult := ce.MetricsCalculator.CalculateMetrics(alt.name, calc)
		altResult.Description = alt.description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		results = append(results, altResult)

		ce.CalcEngine.Logger.Debugf("compared %s: net worth at 99 %s", alt.name, altResult.NetWorthAt99.StringFixed(2))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolveAlternatives turns template names, transform specs and scenario names into
// transform lists, failing on the first unknown name.
func (ce *CompareEngine) resolveAlternatives(config *domain.Configuration, options CompareOptions) ([]alternative, error) {
	var alternatives []alternative

	for _, name := range options.Templates {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if tmpl, ok := ce.TemplateRegistry.Get(name); ok {
			alternatives = append(alternatives, alternative{
				name:        tmpl.Name,
				description: tmpl.Description,
				transforms:  tmpl.Transforms,
			})
			continue
		}
		if strings.Contains(name, ":") {
			t, err := ce.TransformRegistry.ParseTransformSpec(name)
			if err != nil {
				return nil, fmt.Errorf("invalid transform %s: %w", name, err)
			}
			alternatives = append(alternatives, alternative{
				name:        name,
				description: t.Description(),
				transforms:  []transform.InputTransform{t},
			})
			continue
		}
		return nil, fmt.Errorf("template %s not found", name)
	}

	scenarioNames := options.Scenarios
	if options.AllScenarios {
		scenarioNames = nil
		for _, s := range config.Scenarios {
			scenarioNames = append(scenarioNames, s.Name)
		}
	}
	for _, name := range scenarioNames {
		scenario, ok := config.FindScenario(name)
		if !ok {
			return nil, fmt.Errorf("scenario %s not found in configuration", name)
		}
		alternatives = append(alternatives, alternative{
			name:        scenario.Name,
			description: scenario.Description,
			transforms:  transform.ScenarioTransforms(scenario.Overrides),
		})
	}

	return alternatives, nil
}
