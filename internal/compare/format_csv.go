package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Total Savings",
		"Peak Net Worth",
		"Peak Age",
		"Net Worth at 99",
		"Depletion Age",
		"Solvent",
		"Savings Diff from Base",
		"Net Worth Diff from Base",
		"Net Worth % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	// Write base scenario
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	// Write alternative scenarios
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	depletion := ""
	if result.DepletionAge != nil {
		depletion = strconv.Itoa(*result.DepletionAge)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.RetirementAge),
		result.TotalSavings.StringFixed(2),
		result.PeakNetWorth.StringFixed(2),
		strconv.Itoa(result.PeakAge),
		result.NetWorthAt99.StringFixed(2),
		depletion,
		strconv.FormatBool(result.Solvent),
		result.SavingsDiffFromBase.StringFixed(2),
		result.NetWorthDiffFromBase.StringFixed(2),
		result.NetWorthPctFromBase.StringFixed(2),
	}
}
