package calculation

import (
	"testing"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityAnalyzer_Spending(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)

	analysis, err := analyzer.AnalyzeSingleParameter(baseInputs(), SensitivityParameter{
		Name:  "current_yearly_spending",
		Min:   40000,
		Max:   200000,
		Steps: 5,
	})
	require.NoError(t, err)

	require.Len(t, analysis.Results, 5)
	assert.Equal(t, "dollars", analysis.Unit)
	assert.Equal(t, 40000.0, analysis.BaseValue)
	assert.Equal(t, []float64{40000, 80000, 120000, 160000, 200000}, sweepValues(analysis))

	assert.True(t, analysis.Results[0].Solvent)
	assert.False(t, analysis.Results[4].Solvent)
	assert.Equal(t, domain.RiskMedium, analysis.Summary.RiskLevel)
	require.NotNil(t, analysis.Summary.FirstSolventValue)
	assert.Equal(t, 40000.0, *analysis.Summary.FirstSolventValue)
	assert.True(t, analysis.Summary.MinNetWorthAt99.IsZero())
	assert.True(t, analysis.Summary.MaxNetWorthAt99.Equal(analysis.Results[0].NetWorthAt99))

	for i := 1; i < len(analysis.Results); i++ {
		assert.True(t, analysis.Results[i].NetWorthAt99.LessThanOrEqual(analysis.Results[i-1].NetWorthAt99))
	}
}

func TestSensitivityAnalyzer_RiskLevels(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine())

	allSolvent, err := analyzer.AnalyzeSingleParameter(baseInputs(), SensitivityParameter{
		Name: "annual_return", Min: 7, Max: 10, Steps: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, allSolvent.Summary.RiskLevel)
	assert.Equal(t, 4, allSolvent.Summary.SolventCount)

	in := baseInputs()
	in.CurrentYearlySpending = 500000
	noneSolvent, err := analyzer.AnalyzeSingleParameter(in, SensitivityParameter{
		Name: "annual_return", Min: 0, Max: 4, Steps: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, noneSolvent.Summary.RiskLevel)
	assert.Nil(t, noneSolvent.Summary.FirstSolventValue)
	assert.NotEmpty(t, noneSolvent.Summary.Recommendations)
}

func TestSensitivityParameter_Validate(t *testing.T) {
	tests := []struct {
		name  string
		param SensitivityParameter
		ok    bool
	}{
		{"valid", SensitivityParameter{Name: "tax_rate", Min: 0, Max: 40, Steps: 5}, true},
		{"single point range", SensitivityParameter{Name: "tax_rate", Min: 10, Max: 10, Steps: 2}, true},
		{"unknown variable", SensitivityParameter{Name: "salary", Min: 0, Max: 1, Steps: 2}, false},
		{"too few steps", SensitivityParameter{Name: "tax_rate", Min: 0, Max: 1, Steps: 1}, false},
		{"inverted range", SensitivityParameter{Name: "tax_rate", Min: 5, Max: 1, Steps: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.param.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	err := SensitivityParameter{Name: "salary", Steps: 2}.Validate()
	assert.ErrorIs(t, err, transform.ErrUnknownVariable)
}

func TestSensitivityAnalyzer_PropagatesProjectionErrors(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)

	_, err := analyzer.AnalyzeSingleParameter(baseInputs(), SensitivityParameter{
		Name: "tax_rate", Min: 90, Max: 100, Steps: 3,
	})
	assert.ErrorIs(t, err, domain.ErrTaxRateTooHigh)
}

func sweepValues(a *domain.ParameterSensitivityAnalysis) []float64 {
	values := make([]float64, len(a.Results))
	for i, r := range a.Results {
		values[i] = r.Value
	}
	return values
}

func TestSensitivityAnalyzer_TaxRateUpTo100(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)

	analysis, err := analyzer.AnalyzeSingleParameter(baseInputs(), SensitivityParameter{
		Name: "tax_rate", Min: 0, Max: 100, Steps: 11,
	})
	require.NoError(t, err)
	require.Len(t, analysis.Results, 11)

	last := analysis.Results[10]
	assert.Equal(t, 100.0, last.Value)
	assert.False(t, last.Solvent)
	assert.True(t, last.NetWorthAt99.IsZero())
	assert.True(t, last.PeakNetWorth.IsZero())
	assert.Nil(t, last.DepletionAge)

	assert.True(t, analysis.Results[0].Solvent)
	assert.True(t, analysis.Summary.MinNetWorthAt99.IsZero())
	assert.Equal(t, domain.RiskMedium, analysis.Summary.RiskLevel)
}
