package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct {
	Currency string
}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Results) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	currency := orDefaultCurrency(scf.Currency)
	value := func(v float64) string { return FormatVariable(v, analysis.Unit, currency) }

	var buf bytes.Buffer
	first, last := analysis.Results[0], analysis.Results[len(analysis.Results)-1]
	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(analysis.Parameter, "_", " ")))
	fmt.Fprintf(&buf, "=================================================================\n")
	fmt.Fprintf(&buf, "Base Case: %s = %s\n", analysis.Parameter, value(analysis.BaseValue))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n", value(first.Value), value(last.Value), len(analysis.Results))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-20s %18s %18s %18s %-10s\n", analysis.Parameter, "At Retirement", "At Age 99", "Peak", "Runs Out")
	fmt.Fprintln(&buf, strings.Repeat("-", 88))
	for _, result := range analysis.Results {
		label := value(result.Value)
		if result.Value == analysis.BaseValue {
			label += " <- BASE"
		}
		runsOut := "never"
		if result.DepletionAge != nil {
			runsOut = "age " + strconv.Itoa(*result.DepletionAge)
		}
		fmt.Fprintf(&buf, "%-20s %18s %18s %18s %-10s\n",
			label,
			FormatCurrency(result.NetWorthAtRetirement, currency),
			FormatCurrency(result.NetWorthAt99, currency),
			FormatCurrency(result.PeakNetWorth, currency),
			runsOut)
	}
	fmt.Fprintln(&buf)

	summary := analysis.Summary
	fmt.Fprintf(&buf, "Net worth at 99 ranges from %s to %s\n",
		FormatCurrency(summary.MinNetWorthAt99, currency), FormatCurrency(summary.MaxNetWorthAt99, currency))
	fmt.Fprintf(&buf, "Solvent in %d of %d cases\n", summary.SolventCount, len(analysis.Results))
	fmt.Fprintln(&buf)

	riskEmoji := ""
	switch summary.RiskLevel {
	case domain.RiskLow:
		riskEmoji = "✅"
	case domain.RiskMedium:
		riskEmoji = "⚠️"
	case domain.RiskHigh:
		riskEmoji = "🔴"
	}
	fmt.Fprintf(&buf, "RISK LEVEL: %s %s\n", riskEmoji, summary.RiskLevel)
	fmt.Fprintln(&buf)

	if len(summary.Recommendations) > 0 {
		fmt.Fprintln(&buf, "RECOMMENDATIONS:")
		for _, rec := range summary.Recommendations {
			fmt.Fprintf(&buf, "  • %s\n", rec)
		}
	}
	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"parameter_name", "parameter_value", "net_worth_at_retirement", "net_worth_at_99", "peak_net_worth", "depletion_age", "solvent"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, result := range analysis.Results {
		depletion := ""
		if result.DepletionAge != nil {
			depletion = strconv.Itoa(*result.DepletionAge)
		}
		row := []string{
			analysis.Parameter,
			strconv.FormatFloat(result.Value, 'f', 4, 64),
			result.NetWorthAtRetirement.StringFixed(2),
			result.NetWorthAt99.StringFixed(2),
			result.PeakNetWorth.StringFixed(2),
			depletion,
			strconv.FormatBool(result.Solvent),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format, currency string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{Currency: currency} // Default to console
	}
}
