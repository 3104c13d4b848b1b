package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// SolveAll solves every registered variable over its default bounds. A failure for one
// variable is recorded in Errors and does not stop the others; only context cancellation
// aborts the run.
func (s *Solver) SolveAll(ctx context.Context, base domain.RetirementInputs) (*MultiSolveResult, error) {
	multi := &MultiSolveResult{Errors: map[string]string{}}

	for _, variable := range transform.Variables() {
		result, err := s.Solve(ctx, SolveRequest{
			Variable:  variable.Name,
			SearchMin: variable.DefaultMin,
			SearchMax: variable.DefaultMax,
			Base:      base,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			multi.Errors[variable.Name] = err.Error()
			continue
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Errors) == 0 {
		multi.Errors = nil
	}
	multi.Recommendations = s.generateRecommendations(base, multi.Results)
	return multi, nil
}

// generateRecommendations compares each solved boundary against the current input value.
func (s *Solver) generateRecommendations(base domain.RetirementInputs, results []SolveResult) []string {
	var recs []string
	for _, r := range results {
		if !r.Found {
			continue
		}
		current, err := transform.GetVariable(base, r.Variable)
		if err != nil {
			continue
		}
		boundary := *r.AppliedValue

		switch r.Direction {
		case FindLowest:
			if current < boundary {
				recs = append(recs, fmt.Sprintf("Raise %s from %g to at least %g to stay solvent.", r.Variable, current, boundary))
			}
		case FindHighest:
			if current > boundary {
				recs = append(recs, fmt.Sprintf("Lower %s from %g to at most %g to stay solvent.", r.Variable, current, boundary))
			}
		}
	}
	return recs
}
