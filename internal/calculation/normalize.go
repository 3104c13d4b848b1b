package calculation

import "github.com/rgehrsitz/nestegg/internal/domain"

// EffectiveRetirementAge returns the retirement age actually used by the summary and the
// projection. A retirement age earlier than the current age means retiring immediately.
func EffectiveRetirementAge(in domain.RetirementInputs) int {
	return max(in.CurrentAge, in.RetirementAge)
}
