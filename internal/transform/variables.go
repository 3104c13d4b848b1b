package transform

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// ErrUnknownVariable is returned for a name that is not a registered input variable.
var ErrUnknownVariable = errors.New("unknown variable")

// Variable describes one field of RetirementInputs that can be set, swept or solved for.
type Variable struct {
	Name        string
	Description string
	Unit        string // "years", "dollars" or "percent"
	Integer     bool
	DefaultMin  float64
	DefaultMax  float64

	get func(domain.RetirementInputs) float64
	set func(*domain.RetirementInputs, float64)
}

// Get reads the variable from the inputs.
func (v Variable) Get(in domain.RetirementInputs) float64 {
	return v.get(in)
}

// Set returns a copy of the inputs with the variable replaced. Integer variables take the
// floor of the value.
func (v Variable) Set(in domain.RetirementInputs, value float64) domain.RetirementInputs {
	v.set(&in, value)
	return in
}

// Applied returns the value Set actually stores.
func (v Variable) Applied(value float64) float64 {
	if v.Integer {
		return math.Floor(value)
	}
	return value
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}

var variables = map[string]Variable{
	"current_age": {
		Name: "current_age", Description: "Age today", Unit: "years", Integer: true,
		DefaultMin: 18, DefaultMax: 99,
		get: func(in domain.RetirementInputs) float64 { return float64(in.CurrentAge) },
		set: func(in *domain.RetirementInputs, v float64) { in.CurrentAge = floorInt(v) },
	},
	"retirement_age": {
		Name: "retirement_age", Description: "Age at which contributions stop and withdrawals begin", Unit: "years", Integer: true,
		DefaultMin: 18, DefaultMax: 100,
		get: func(in domain.RetirementInputs) float64 { return float64(in.RetirementAge) },
		set: func(in *domain.RetirementInputs, v float64) { in.RetirementAge = floorInt(v) },
	},
	"current_savings": {
		Name: "current_savings", Description: "Invested savings today", Unit: "dollars",
		DefaultMin: 0, DefaultMax: 10_000_000,
		get: func(in domain.RetirementInputs) float64 { return in.CurrentSavings },
		set: func(in *domain.RetirementInputs, v float64) { in.CurrentSavings = v },
	},
	"monthly_contribution": {
		Name: "monthly_contribution", Description: "Amount invested each month before retirement", Unit: "dollars",
		DefaultMin: 0, DefaultMax: 50_000,
		get: func(in domain.RetirementInputs) float64 { return in.MonthlyContribution },
		set: func(in *domain.RetirementInputs, v float64) { in.MonthlyContribution = v },
	},
	"annual_return": {
		Name: "annual_return", Description: "Nominal investment return, compounded monthly", Unit: "percent",
		DefaultMin: 0, DefaultMax: 20,
		get: func(in domain.RetirementInputs) float64 { return in.AnnualReturn },
		set: func(in *domain.RetirementInputs, v float64) { in.AnnualReturn = v },
	},
	"inflation_rate": {
		Name: "inflation_rate", Description: "Yearly inflation applied to spending", Unit: "percent",
		DefaultMin: 0, DefaultMax: 15,
		get: func(in domain.RetirementInputs) float64 { return in.InflationRate },
		set: func(in *domain.RetirementInputs, v float64) { in.InflationRate = v },
	},
	"contribution_increase_rate": {
		Name: "contribution_increase_rate", Description: "Yearly raise applied to the monthly contribution", Unit: "percent",
		DefaultMin: 0, DefaultMax: 20,
		get: func(in domain.RetirementInputs) float64 { return in.ContributionIncreaseRate },
		set: func(in *domain.RetirementInputs, v float64) { in.ContributionIncreaseRate = v },
	},
	"current_yearly_spending": {
		Name: "current_yearly_spending", Description: "Yearly spending in retirement, in today's dollars", Unit: "dollars",
		DefaultMin: 0, DefaultMax: 1_000_000,
		get: func(in domain.RetirementInputs) float64 { return in.CurrentYearlySpending },
		set: func(in *domain.RetirementInputs, v float64) { in.CurrentYearlySpending = v },
	},
	"tax_rate": {
		Name: "tax_rate", Description: "Tax rate on retirement withdrawals", Unit: "percent",
		DefaultMin: 0, DefaultMax: 99,
		get: func(in domain.RetirementInputs) float64 { return in.TaxRate },
		set: func(in *domain.RetirementInputs, v float64) { in.TaxRate = v },
	},
}

// LookupVariable returns the registered variable with the given name.
func LookupVariable(name string) (Variable, error) {
	v, ok := variables[name]
	if !ok {
		return Variable{}, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return v, nil
}

// Variables returns every registered variable sorted by name.
func Variables() []Variable {
	list := make([]Variable, 0, len(variables))
	for _, v := range variables {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// VariableNames returns the registered variable names sorted.
func VariableNames() []string {
	names := make([]string, 0, len(variables))
	for name := range variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetVariable reads the named variable from the inputs.
func GetVariable(in domain.RetirementInputs, name string) (float64, error) {
	v, err := LookupVariable(name)
	if err != nil {
		return 0, err
	}
	return v.Get(in), nil
}

// SetVariable returns a copy of the inputs with the named variable replaced.
func SetVariable(in domain.RetirementInputs, name string, value float64) (domain.RetirementInputs, error) {
	v, err := LookupVariable(name)
	if err != nil {
		return in, err
	}
	return v.Set(in, value), nil
}
