package breakeven

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// Solver finds the boundary value of one input at which a plan becomes solvent
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// FindRequiredValue bisects [searchMin, searchMax] for the boundary value of variable at
// which net worth at age 99 is at least 1. ok is false when no trial value was solvent.
func FindRequiredValue(variable string, searchMin, searchMax float64, base domain.RetirementInputs) (value float64, ok bool, err error) {
	result, err := NewDefaultSolver(nil).Solve(context.Background(), SolveRequest{
		Variable:  variable,
		SearchMin: searchMin,
		SearchMax: searchMax,
		Base:      base,
	})
	if err != nil {
		return 0, false, err
	}
	if !result.Found {
		return 0, false, nil
	}
	return *result.Value, true, nil
}

// Solve runs the bisection described by req.
// The solvency predicate is assumed monotonic over the interval in the variable's
// direction; a non-monotonic interval yields an arbitrary solvent point or none.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	variable, direction, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	maxIterations := req.MaxIterations
	if maxIterations == 0 {
		maxIterations = s.Options.MaxIterations
	}
	if maxIterations == 0 {
		maxIterations = DefaultMaxIterations
	}
	tolerance := req.Tolerance
	if tolerance == 0 {
		tolerance = s.Options.Tolerance
	}
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	result := &SolveResult{
		Variable:  req.Variable,
		Direction: direction,
		SearchMin: req.SearchMin,
		SearchMax: req.SearchMax,
	}

	low, high := req.SearchMin, req.SearchMax
	var best *float64
	for result.Iterations < maxIterations {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := (low + high) / 2
		trial := variable.Set(req.Base, mid)

		solvent, err := calculation.IsSolvent(trial)
		if err != nil {
			// A trial value can itself be invalid (a tax rate of 100 or more); treat it as
			// not solvent and keep narrowing.
			if !errors.Is(err, domain.ErrTaxRateTooHigh) {
				return nil, &BreakEvenError{
					Operation: "solve",
					Message:   fmt.Sprintf("failed to project %s=%g", req.Variable, mid),
					Cause:     err,
				}
			}
			s.CalcEngine.Logger.Debugf("solve %s: trial %g rejected: %v", req.Variable, mid, err)
			solvent = false
		}
		s.CalcEngine.Logger.Debugf("solve %s: iteration %d value %g solvent=%t", req.Variable, result.Iterations, mid, solvent)

		if solvent {
			v := mid
			best = &v
			if direction == FindLowest {
				high = mid
			} else {
				low = mid
			}
		} else {
			if direction == FindLowest {
				low = mid
			} else {
				high = mid
			}
		}

		if high-low < tolerance {
			result.Converged = true
			break
		}
	}

	if best == nil {
		result.ConvergenceInfo = fmt.Sprintf("no solvent %s found in [%g, %g] after %d iterations",
			req.Variable, req.SearchMin, req.SearchMax, result.Iterations)
		s.CalcEngine.Logger.Infof("solve %s: %s", req.Variable, result.ConvergenceInfo)
		return result, nil
	}

	applied := variable.Applied(*best)
	netWorth, _, err := calculation.NetWorthAt(variable.Set(req.Base, *best), calculation.SolvencyAge)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to project solution", Cause: err}
	}

	result.Found = true
	result.Value = best
	result.AppliedValue = &applied
	result.NetWorthAt99 = netWorth
	if result.Converged {
		result.ConvergenceInfo = fmt.Sprintf("bracket narrowed below %g after %d iterations", tolerance, result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("stopped after %d iterations, bracket width %g", result.Iterations, high-low)
	}
	s.CalcEngine.Logger.Infof("solve %s: %g (%s)", req.Variable, *best, result.ConvergenceInfo)
	return result, nil
}

func (s *Solver) validate(req SolveRequest) (transform.Variable, Direction, error) {
	variable, err := transform.LookupVariable(req.Variable)
	if err != nil {
		return transform.Variable{}, "", &BreakEvenError{
			Operation: "validate_request",
			Message:   "cannot solve for this variable",
			Cause:     err,
		}
	}
	direction, ok := Directions[req.Variable]
	if !ok {
		return transform.Variable{}, "", &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("no solve direction registered for %s", req.Variable),
		}
	}
	if math.IsNaN(req.SearchMin) || math.IsNaN(req.SearchMax) || math.IsInf(req.SearchMin, 0) || math.IsInf(req.SearchMax, 0) {
		return transform.Variable{}, "", &BreakEvenError{
			Operation: "validate_request",
			Message:   "search bounds must be finite",
			Cause:     domain.ErrNonFiniteInput,
		}
	}
	if req.SearchMin > req.SearchMax {
		return transform.Variable{}, "", &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("search_min %g cannot be greater than search_max %g", req.SearchMin, req.SearchMax),
		}
	}
	if err := req.Base.Validate(); err != nil {
		return transform.Variable{}, "", &BreakEvenError{
			Operation: "validate_request",
			Message:   "invalid base inputs",
			Cause:     err,
		}
	}
	return variable, direction, nil
}
