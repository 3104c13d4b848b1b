package transform

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []InputTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	require.True(t, ok, "Expected to find template")
	assert.Equal(t, template.Name, retrieved.Name)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "Expected case-insensitive lookup to work")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok, "Expected not to find nonexistent template")
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	expected := []string{
		"conservative_returns",
		"high_inflation",
		"higher_taxes",
		"optimistic_returns",
		"retire_earlier_5yr",
		"retire_later_1yr",
		"retire_later_5yr",
		"save_less_10pct",
		"save_more_10pct",
		"spend_less_10pct",
		"spend_more_10pct",
	}
	assert.Equal(t, expected, registry.List())

	for _, name := range expected {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, tmpl.Description, name)
		assert.NotEmpty(t, tmpl.Transforms, name)
	}
}

func TestBuiltInTemplates_Apply(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestInputs()

	tests := []struct {
		template string
		check    func(t *testing.T, name string)
	}{
		{"retire_later_5yr", func(t *testing.T, name string) {
			out := applyTemplate(t, registry, name)
			assert.Equal(t, 65, out.RetirementAge)
		}},
		{"retire_earlier_5yr", func(t *testing.T, name string) {
			out := applyTemplate(t, registry, name)
			assert.Equal(t, 55, out.RetirementAge)
		}},
		{"spend_less_10pct", func(t *testing.T, name string) {
			out := applyTemplate(t, registry, name)
			assert.InDelta(t, 36000, out.CurrentYearlySpending, 1e-9)
		}},
		{"save_more_10pct", func(t *testing.T, name string) {
			out := applyTemplate(t, registry, name)
			assert.InDelta(t, 2200, out.MonthlyContribution, 1e-9)
		}},
		{"conservative_returns", func(t *testing.T, name string) {
			out := applyTemplate(t, registry, name)
			assert.Equal(t, 6.0, out.AnnualReturn)
		}},
		{"higher_taxes", func(t *testing.T, name string) {
			out := applyTemplate(t, registry, name)
			assert.Equal(t, 25.0, out.TaxRate)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			tt.check(t, tt.template)
		})
	}
	assert.Equal(t, 60, base.RetirementAge, "templates must not modify the base")
}

func applyTemplate(t *testing.T, registry *TemplateRegistry, name string) domain.RetirementInputs {
	t.Helper()
	tmpl, ok := registry.Get(name)
	require.True(t, ok)
	out, err := ApplyTransforms(createTestInputs(), tmpl.Transforms...)
	require.NoError(t, err)
	return out
}

func TestScenarioTransforms_Ordered(t *testing.T) {
	transforms := ScenarioTransforms(map[string]float64{
		"tax_rate":       15,
		"retirement_age": 62,
	})
	require.Len(t, transforms, 2)
	assert.Equal(t, "set_retirement_age", transforms[0].Name())
	assert.Equal(t, "set_tax_rate", transforms[1].Name())

	out, err := ApplyTransforms(createTestInputs(), transforms...)
	require.NoError(t, err)
	assert.Equal(t, 62, out.RetirementAge)
	assert.Equal(t, 15.0, out.TaxRate)
}
