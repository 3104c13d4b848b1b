package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *domain.Configuration {
	return &domain.Configuration{
		Inputs: domain.RetirementInputs{
			CurrentAge:               30,
			RetirementAge:            60,
			CurrentSavings:           50000,
			MonthlyContribution:      2000,
			AnnualReturn:             8,
			InflationRate:            2,
			ContributionIncreaseRate: 3,
			CurrentYearlySpending:    40000,
			TaxRate:                  20,
		},
		Scenarios: []domain.Scenario{
			{Name: "big_spender", Description: "Spend five times as much", Overrides: map[string]float64{"current_yearly_spending": 200000}},
			{Name: "retire_at_55", Overrides: map[string]float64{"retirement_age": 55}},
		},
	}
}

func TestCompareEngine_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), testConfig(), CompareOptions{
		Templates: []string{"retire_later_5yr", "conservative_returns"},
	})
	require.NoError(t, err)

	assert.Equal(t, BaseScenarioName, compSet.BaseScenarioName)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "72245907.12", compSet.BaseResult.NetWorthAt99.StringFixed(2))
	assert.Equal(t, 60, compSet.BaseResult.RetirementAge)

	require.Len(t, compSet.AlternativeResults, 2)
	later := compSet.AlternativeResults[0]
	assert.Equal(t, "retire_later_5yr", later.ScenarioName)
	assert.Equal(t, "Retire 5 years later", later.Description)
	assert.Equal(t, 65, later.RetirementAge)
	assert.True(t, later.SavingsDiffFromBase.IsPositive())
	assert.True(t, later.NetWorthDiffFromBase.IsPositive())

	conservative := compSet.AlternativeResults[1]
	assert.True(t, conservative.NetWorthDiffFromBase.IsNegative())
	assert.True(t, conservative.NetWorthPctFromBase.IsNegative())
}

func TestCompareEngine_ConfigScenarios(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), testConfig(), CompareOptions{
		Scenarios: []string{"big_spender"},
	})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 1)
	spender := compSet.AlternativeResults[0]
	assert.Equal(t, "Spend five times as much", spender.Description)
	assert.False(t, spender.Solvent)
	require.NotNil(t, spender.DepletionAge)
	assert.Equal(t, 76, *spender.DepletionAge)
	assert.Equal(t, "big_spender", spender.Result.Name)
	assert.Contains(t, compSet.Recommendations, "At Risk: big_spender runs out of money at age 76")
}

func TestCompareEngine_AllScenariosAndTransformSpecs(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), testConfig(), CompareOptions{
		Templates:    []string{"adjust:annual_return=1"},
		AllScenarios: true,
	})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 3)
	assert.Equal(t, "adjust:annual_return=1", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "Adjust annual_return by +1", compSet.AlternativeResults[0].Description)
	assert.Equal(t, "big_spender", compSet.AlternativeResults[1].ScenarioName)
	assert.Equal(t, "retire_at_55", compSet.AlternativeResults[2].ScenarioName)
	assert.Equal(t, 55, compSet.AlternativeResults[2].RetirementAge)
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(nil)

	_, err := engine.Compare(context.Background(), nil, CompareOptions{})
	assert.Error(t, err)

	_, err = engine.Compare(context.Background(), testConfig(), CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = engine.Compare(context.Background(), testConfig(), CompareOptions{Scenarios: []string{"missing"}})
	assert.ErrorContains(t, err, "scenario missing not found")

	_, err = engine.Compare(context.Background(), testConfig(), CompareOptions{Templates: []string{"adjust:salary=1"}})
	assert.ErrorContains(t, err, "invalid transform")

	cfg := testConfig()
	cfg.Inputs.TaxRate = 100
	_, err = engine.Compare(context.Background(), cfg, CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrTaxRateTooHigh)

	cfg = testConfig()
	cfg.Inputs.TaxRate = 96
	_, err = engine.Compare(context.Background(), cfg, CompareOptions{Templates: []string{"higher_taxes"}})
	assert.ErrorIs(t, err, domain.ErrTaxRateTooHigh)
}

func TestCompareEngine_ContextCancelled(t *testing.T) {
	engine := NewCompareEngine(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Compare(ctx, testConfig(), CompareOptions{Templates: []string{"high_inflation"}})
	assert.ErrorIs(t, err, context.Canceled)
}
