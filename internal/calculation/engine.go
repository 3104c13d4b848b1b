package calculation

import (
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SolvencyAge is the age whose recorded net worth decides whether a plan is solvent.
const SolvencyAge = 99

// SolvencyThreshold is the minimum net worth at SolvencyAge for a solvent plan.
var SolvencyThreshold = decimal.NewFromInt(1)

// CalculationEngine runs the summary and the projection and derives the headline metrics
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Log per-age projection values
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes the summary, the projection and the metrics derived from both.
func (ce *CalculationEngine) Calculate(in domain.RetirementInputs) (*domain.CalculationResult, error) {
	projection, err := Project(in)
	if err != nil {
		ce.Logger.Warnf("rejected inputs: %v", err)
		return nil, err
	}
	summary := Summarize(in)
	retirementAge := EffectiveRetirementAge(in)

	if retirementAge != in.RetirementAge {
		ce.Logger.Infof("retirement age %d is before current age %d, retiring immediately", in.RetirementAge, in.CurrentAge)
	}
	if ce.Debug {
		for _, point := range projection {
			ce.Logger.Debugf("age %d: net worth %s", point.Age, point.NetWorth.StringFixed(2))
		}
	}

	result := &domain.CalculationResult{
		Inputs:                 in,
		EffectiveRetirementAge: retirementAge,
		Summary:                summary,
		Projection:             projection,
		PeakNetWorth:           projection.Peak(),
	}
	if point, ok := projection.At(retirementAge); ok {
		result.NetWorthAtRetirement = point.NetWorth
	}
	if point, ok := projection.At(SolvencyAge); ok {
		result.NetWorthAt99 = point.NetWorth
		result.Solvent = point.NetWorth.GreaterThanOrEqual(SolvencyThreshold)
	}
	if age, ok := projection.DepletionAge(); ok {
		result.DepletionAge = &age
	}

	ce.Logger.Debugf("calculated %d projection points, net worth at %d: %s", len(projection), SolvencyAge, result.NetWorthAt99.StringFixed(2))
	return result, nil
}

// NetWorthAt runs the projection and returns the value recorded at the given age.
func NetWorthAt(in domain.RetirementInputs, age int) (decimal.Decimal, bool, error) {
	projection, err := Project(in)
	if err != nil {
		return decimal.Zero, false, err
	}
	point, ok := projection.At(age)
	return point.NetWorth, ok, nil
}

// IsSolvent reports whether the projection leaves at least SolvencyThreshold at SolvencyAge.
// A projection that never reaches SolvencyAge is not solvent.
func IsSolvent(in domain.RetirementInputs) (bool, error) {
	value, ok, err := NetWorthAt(in, SolvencyAge)
	if err != nil {
		return false, fmt.Errorf("solvency check: %w", err)
	}
	return ok && value.GreaterThanOrEqual(SolvencyThreshold), nil
}
