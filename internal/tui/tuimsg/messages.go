// Package tuimsg defines the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// InputsChangedMsg signals a slider changed the inputs; the root model recalculates
type InputsChangedMsg struct {
	Inputs domain.RetirementInputs
}

// ResetInputsMsg asks the root model to restore the inputs it started with
type ResetInputsMsg struct{}

// CalculationCompleteMsg carries a fresh calculation
type CalculationCompleteMsg struct {
	Result *domain.CalculationResult
	Err    error
}

// SolveRequestedMsg asks the root model to solve for a variable over [Min, Max]
type SolveRequestedMsg struct {
	Variable string
	Min      float64
	Max      float64
}

// SolveCompleteMsg carries the solver outcome
type SolveCompleteMsg struct {
	Result *breakeven.SolveResult
	Err    error
}

// ApplySolutionMsg asks the root model to adopt a solved value as the new input
type ApplySolutionMsg struct {
	Variable string
	Value    float64
}
