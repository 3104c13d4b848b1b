package breakeven

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if opts.MaxIterations != DefaultMaxIterations {
		t.Errorf("Expected MaxIterations %d, got %d", DefaultMaxIterations, opts.MaxIterations)
	}
	if opts.Tolerance != DefaultTolerance {
		t.Errorf("Expected Tolerance %g, got %g", DefaultTolerance, opts.Tolerance)
	}
}

func TestBreakEvenError_Error(t *testing.T) {
	err := &BreakEvenError{
		Operation: "solve",
		Message:   "failed",
	}
	if err.Error() != "solve: failed" {
		t.Errorf("Unexpected message: %s", err.Error())
	}

	wrapped := &BreakEvenError{
		Operation: "validate_request",
		Message:   "invalid base inputs",
		Cause:     domain.ErrTaxRateTooHigh,
	}
	expected := "validate_request: invalid base inputs: tax rate must be below 100%"
	if wrapped.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, wrapped.Error())
	}
	if !errors.Is(wrapped, domain.ErrTaxRateTooHigh) {
		t.Error("Expected Unwrap to expose the cause")
	}
}
