package breakeven

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultMaxIterations is the bisection iteration cap.
	DefaultMaxIterations = 20
	// DefaultTolerance stops the search once the bracket is narrower than this.
	DefaultTolerance = 1e-6
)

// Direction says which end of the solvent range the solver looks for.
type Direction string

const (
	// FindLowest searches for the smallest value that is still solvent.
	FindLowest Direction = "find_lowest"
	// FindHighest searches for the largest value that is still solvent.
	FindHighest Direction = "find_highest"
)

// Directions maps every solvable variable to the direction in which solvency improves.
// Raising spending hurts solvency, so it is the one variable searched from the top; for
// every other input a higher value is assumed to help.
var Directions = map[string]Direction{
	"current_age":                FindLowest,
	"retirement_age":             FindLowest,
	"current_savings":            FindLowest,
	"monthly_contribution":       FindLowest,
	"annual_return":              FindLowest,
	"inflation_rate":             FindLowest,
	"contribution_increase_rate": FindLowest,
	"current_yearly_spending":    FindHighest,
	"tax_rate":                   FindLowest,
}

// SolveRequest defines the parameters for one bisection run
type SolveRequest struct {
	Variable      string                  `json:"variable"`
	SearchMin     float64                 `json:"search_min"`
	SearchMax     float64                 `json:"search_max"`
	Base          domain.RetirementInputs `json:"base"`
	MaxIterations int                     `json:"max_iterations,omitempty"` // zero takes the solver default
	Tolerance     float64                 `json:"tolerance,omitempty"`      // zero takes the solver default
}

// SolveResult contains the outcome of a bisection run
type SolveResult struct {
	Variable  string    `json:"variable"`
	Direction Direction `json:"direction"`
	SearchMin float64   `json:"search_min"`
	SearchMax float64   `json:"search_max"`

	// Found is false when no trial value in the interval was solvent.
	Found bool `json:"found"`
	// Value is the boundary value found; nil when not found.
	Value *float64 `json:"value"`
	// AppliedValue is Value as stored in the inputs (floored for integer variables).
	AppliedValue *float64 `json:"applied_value,omitempty"`
	// NetWorthAt99 is the recorded net worth at age 99 when AppliedValue is used.
	NetWorthAt99 decimal.Decimal `json:"net_worth_at_99"`

	Iterations      int    `json:"iterations"`
	Converged       bool   `json:"converged"`
	ConvergenceInfo string `json:"convergence_info"`
}

// MultiSolveResult contains the results of solving every registered variable
type MultiSolveResult struct {
	Results         []SolveResult     `json:"results"`
	Errors          map[string]string `json:"errors,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	MaxIterations int
	Tolerance     float64
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
