package transform

import (
	"sort"
	"strings"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Retirement timing
	registry.Register(Template{
		Name:        "retire_later_1yr",
		Description: "Retire 1 year later",
		Transforms:  []InputTransform{&AdjustBy{Variable: "retirement_age", Delta: 1}},
	})
	registry.Register(Template{
		Name:        "retire_later_5yr",
		Description: "Retire 5 years later",
		Transforms:  []InputTransform{&AdjustBy{Variable: "retirement_age", Delta: 5}},
	})
	registry.Register(Template{
		Name:        "retire_earlier_5yr",
		Description: "Retire 5 years earlier",
		Transforms:  []InputTransform{&AdjustBy{Variable: "retirement_age", Delta: -5}},
	})

	// Spending and saving
	registry.Register(Template{
		Name:        "spend_less_10pct",
		Description: "Spend 10% less in retirement",
		Transforms:  []InputTransform{&ScaleBy{Variable: "current_yearly_spending", Factor: 0.9}},
	})
	registry.Register(Template{
		Name:        "spend_more_10pct",
		Description: "Spend 10% more in retirement",
		Transforms:  []InputTransform{&ScaleBy{Variable: "current_yearly_spending", Factor: 1.1}},
	})
	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Contribute 10% more each month",
		Transforms:  []InputTransform{&ScaleBy{Variable: "monthly_contribution", Factor: 1.1}},
	})
	registry.Register(Template{
		Name:        "save_less_10pct",
		Description: "Contribute 10% less each month",
		Transforms:  []InputTransform{&ScaleBy{Variable: "monthly_contribution", Factor: 0.9}},
	})

	// Market and tax assumptions
	registry.Register(Template{
		Name:        "conservative_returns",
		Description: "Investment returns 2 points lower",
		Transforms:  []InputTransform{&AdjustBy{Variable: "annual_return", Delta: -2}},
	})
	registry.Register(Template{
		Name:        "optimistic_returns",
		Description: "Investment returns 2 points higher",
		Transforms:  []InputTransform{&AdjustBy{Variable: "annual_return", Delta: 2}},
	})
	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Inflation 1 point higher",
		Transforms:  []InputTransform{&AdjustBy{Variable: "inflation_rate", Delta: 1}},
	})
	registry.Register(Template{
		Name:        "higher_taxes",
		Description: "Tax rate 5 points higher",
		Transforms:  []InputTransform{&AdjustBy{Variable: "tax_rate", Delta: 5}},
	})

	return registry
}

// ScenarioTransforms converts a scenario's overrides into SetValue transforms, ordered by
// variable name.
func ScenarioTransforms(overrides map[string]float64) []InputTransform {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	transforms := make([]InputTransform, 0, len(names))
	for _, name := range names {
		transforms = append(transforms, &SetValue{Variable: name, Value: overrides[name]})
	}
	return transforms
}
