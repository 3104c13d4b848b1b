package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Helper function to create a basic set of inputs
func createTestInputs() domain.RetirementInputs {
	return domain.RetirementInputs{
		CurrentAge:               30,
		RetirementAge:            60,
		CurrentSavings:           50000,
		MonthlyContribution:      2000,
		AnnualReturn:             8,
		InflationRate:            2,
		ContributionIncreaseRate: 3,
		CurrentYearlySpending:    40000,
		TaxRate:                  20,
	}
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestInputs()

	result, err := ApplyTransforms(base)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if result != base {
		t.Errorf("Expected inputs unchanged, got %+v", result)
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestInputs()

	result, err := ApplyTransforms(base,
		&SetValue{Variable: "retirement_age", Value: 65},
		&AdjustBy{Variable: "retirement_age", Delta: 2},
		&ScaleBy{Variable: "monthly_contribution", Factor: 1.5},
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.RetirementAge != 67 {
		t.Errorf("Expected retirement age 67, got %d", result.RetirementAge)
	}
	if result.MonthlyContribution != 3000 {
		t.Errorf("Expected monthly contribution 3000, got %v", result.MonthlyContribution)
	}
	if base.RetirementAge != 60 {
		t.Error("Base inputs should not be modified")
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestInputs(), &SetValue{Variable: "tax_rate", Value: 10}, nil)
	if err == nil {
		t.Error("Expected error for nil transform")
	}
}

func TestApplyTransforms_UnknownVariable(t *testing.T) {
	base := createTestInputs()

	result, err := ApplyTransforms(base, &AdjustBy{Variable: "salary", Delta: 1})
	if !errors.Is(err, ErrUnknownVariable) {
		t.Fatalf("Expected ErrUnknownVariable, got: %v", err)
	}
	var transformErr *TransformError
	if !errors.As(err, &transformErr) {
		t.Fatalf("Expected TransformError in chain, got %T", err)
	}
	if transformErr.TransformName != "adjust_salary" {
		t.Errorf("Expected transform name adjust_salary, got %s", transformErr.TransformName)
	}
	if result != base {
		t.Error("Failed transform should return the base inputs")
	}
}

func TestSetValue_RejectsNonFinite(t *testing.T) {
	_, err := (&SetValue{Variable: "annual_return", Value: math.NaN()}).Apply(createTestInputs())
	if !errors.Is(err, domain.ErrNonFiniteInput) {
		t.Errorf("Expected ErrNonFiniteInput, got: %v", err)
	}
}

func TestSetVariable_IntegerFloors(t *testing.T) {
	result, err := SetVariable(createTestInputs(), "retirement_age", 64.9)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.RetirementAge != 64 {
		t.Errorf("Expected floored retirement age 64, got %d", result.RetirementAge)
	}

	result, err = SetVariable(createTestInputs(), "current_age", -0.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.CurrentAge != -1 {
		t.Errorf("Expected floor of -0.5 to be -1, got %d", result.CurrentAge)
	}
}

func TestVariables_RoundTripEveryField(t *testing.T) {
	base := createTestInputs()

	for _, v := range Variables() {
		t.Run(v.Name, func(t *testing.T) {
			updated := v.Set(base, 42)
			if got := v.Get(updated); got != 42 {
				t.Errorf("Expected %s to read back 42, got %v", v.Name, got)
			}
			if v.DefaultMin > v.DefaultMax {
				t.Errorf("Default bounds inverted for %s", v.Name)
			}
		})
	}
}

func TestVariableNames_Sorted(t *testing.T) {
	names := VariableNames()
	if len(names) != 9 {
		t.Fatalf("Expected 9 variables, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names not sorted: %s before %s", names[i-1], names[i])
		}
	}
}

func TestGetVariable_Unknown(t *testing.T) {
	if _, err := GetVariable(createTestInputs(), "nope"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Expected ErrUnknownVariable, got: %v", err)
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantErr  bool
		wantName string
	}{
		{"set:retirement_age=65", false, "set_retirement_age"},
		{"adjust:annual_return=-1.5", false, "adjust_annual_return"},
		{"scale:current_yearly_spending=0.8", false, "scale_current_yearly_spending"},
		{"set", true, ""},
		{"bogus:tax_rate=1", true, ""},
		{"set:salary=1", true, ""},
		{"set:tax_rate=abc", true, ""},
		{"set:tax_rate", true, ""},
		{"set:tax_rate=1,annual_return=2", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tr.Name() != tt.wantName {
				t.Errorf("Expected name %s, got %s", tt.wantName, tr.Name())
			}
		})
	}
}

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	want := []string{"adjust", "scale", "set"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, names)
		}
	}
}

func TestParseAssignment(t *testing.T) {
	tr, err := ParseAssignment("current_yearly_spending = 55000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	result, err := tr.Apply(createTestInputs())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.CurrentYearlySpending != 55000 {
		t.Errorf("Expected spending 55000, got %v", result.CurrentYearlySpending)
	}

	if _, err := ParseAssignment("no_equals"); err == nil {
		t.Error("Expected error for missing '='")
	}
}

func TestTransformDescriptions(t *testing.T) {
	tests := []struct {
		transform InputTransform
		want      string
	}{
		{&SetValue{Variable: "retirement_age", Value: 65}, "Set retirement_age to 65"},
		{&AdjustBy{Variable: "annual_return", Delta: -2}, "Adjust annual_return by -2"},
		{&ScaleBy{Variable: "monthly_contribution", Factor: 1.1}, "Scale monthly_contribution by +10%"},
	}
	for _, tt := range tests {
		if got := tt.transform.Description(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
