package transform

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// InputTransform defines a composable modification of a set of inputs.
// Transforms are used by scenario comparison, sensitivity sweeps and CLI overrides.
type InputTransform interface {
	// Apply returns a modified copy of the inputs.
	Apply(base domain.RetirementInputs) (domain.RetirementInputs, error)

	// Name returns a short identifier for this transform (e.g., "adjust_annual_return").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string
}

// ApplyTransforms applies transforms in order, each receiving the output of the previous one.
func ApplyTransforms(base domain.RetirementInputs, transforms ...InputTransform) (domain.RetirementInputs, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// SetValue replaces a variable with a fixed value.
type SetValue struct {
	Variable string
	Value    float64
}

func (t *SetValue) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	if err := checkFinite(t.Name(), t.Value); err != nil {
		return base, err
	}
	out, err := SetVariable(base, t.Variable, t.Value)
	if err != nil {
		return base, NewTransformError(t.Name(), "apply", "cannot set variable", err)
	}
	return out, nil
}

func (t *SetValue) Name() string { return "set_" + t.Variable }

func (t *SetValue) Description() string {
	return fmt.Sprintf("Set %s to %g", t.Variable, t.Value)
}

// AdjustBy adds a delta to a variable. Percent variables move by percentage points.
type AdjustBy struct {
	Variable string
	Delta    float64
}

func (t *AdjustBy) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	if err := checkFinite(t.Name(), t.Delta); err != nil {
		return base, err
	}
	v, err := LookupVariable(t.Variable)
	if err != nil {
		return base, NewTransformError(t.Name(), "apply", "cannot adjust variable", err)
	}
	return v.Set(base, v.Get(base)+t.Delta), nil
}

func (t *AdjustBy) Name() string { return "adjust_" + t.Variable }

func (t *AdjustBy) Description() string {
	return fmt.Sprintf("Adjust %s by %+g", t.Variable, t.Delta)
}

// ScaleBy multiplies a variable by a factor.
type ScaleBy struct {
	Variable string
	Factor   float64
}

func (t *ScaleBy) Apply(base domain.RetirementInputs) (domain.RetirementInputs, error) {
	if err := checkFinite(t.Name(), t.Factor); err != nil {
		return base, err
	}
	v, err := LookupVariable(t.Variable)
	if err != nil {
		return base, NewTransformError(t.Name(), "apply", "cannot scale variable", err)
	}
	return v.Set(base, v.Get(base)*t.Factor), nil
}

func (t *ScaleBy) Name() string { return "scale_" + t.Variable }

func (t *ScaleBy) Description() string {
	return fmt.Sprintf("Scale %s by %+.0f%%", t.Variable, (t.Factor-1)*100)
}

func checkFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewTransformError(name, "validate", "value must be finite", domain.ErrNonFiniteInput)
	}
	return nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
