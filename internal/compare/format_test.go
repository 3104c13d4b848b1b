package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ConfigPath:       "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:  "base",
			RetirementAge: 60,
			TotalSavings:  decimal.NewFromInt(4570823),
			PeakNetWorth:  decimal.NewFromInt(78038874),
			NetWorthAt99:  decimal.NewFromInt(72245907),
			Solvent:       true,
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:         "big_spender",
				Description:          "Spend more",
				RetirementAge:        60,
				TotalSavings:         decimal.NewFromInt(4570823),
				PeakNetWorth:         decimal.NewFromInt(4570823),
				NetWorthAt99:         decimal.Zero,
				DepletionAge:         intPtr(76),
				NetWorthDiffFromBase: decimal.NewFromInt(-72245907),
				NetWorthPctFromBase:  decimal.NewFromInt(-100),
			},
		},
		Recommendations: []string{"At Risk: big_spender runs out of money at age 76"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	assert.Contains(t, out, "RETIREMENT SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: base")
	assert.Contains(t, out, "Configuration: /path/to/plan.yaml")
	assert.Contains(t, out, "base (base)")
	assert.Contains(t, out, "$72.25M")
	assert.Contains(t, out, "age 76")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "Net Worth at 99:       -$72.25M (-100.0%)")
	assert.Contains(t, out, "• At Risk: big_spender")
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil
	set.ConfigPath = ""

	out := (&TableFormatter{}).Format(set)

	assert.NotContains(t, out, "COMPARISON TO BASE")
	assert.NotContains(t, out, "RECOMMENDATIONS")
	assert.NotContains(t, out, "Configuration:")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleSet())
	assert.Equal(t, "Base: base | big_spender: -$72.25M", out)
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	assert.Equal(t, "1.50M", tf.formatDecimal(decimal.NewFromInt(1500000)))
	assert.Equal(t, "2.5K", tf.formatDecimal(decimal.NewFromInt(2500)))
	assert.Equal(t, "999", tf.formatDecimal(decimal.NewFromInt(999)))
	assert.Equal(t, "+", tf.deltaSymbol(decimal.NewFromInt(1)))
	assert.Equal(t, "-", tf.deltaSymbol(decimal.NewFromInt(-1)))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Len(t, records[0], 12)
	assert.Equal(t, []string{"base", "base", "60", "4570823.00", "78038874.00", "0", "72245907.00", "", "true", "0.00", "0.00", "0.00"}, records[1])
	assert.Equal(t, "76", records[2][7])
	assert.Equal(t, "false", records[2][8])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleSet())
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"base_scenario_name\": \"base\"")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	alts := decoded["alternative_results"].([]any)
	require.Len(t, alts, 1)
	alt := alts[0].(map[string]any)
	assert.Equal(t, float64(76), alt["depletion_age"])
	assert.NotContains(t, alt, "Result")

	compact, err := (&JSONFormatter{}).Format(sampleSet())
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}
