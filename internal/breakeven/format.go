package breakeven

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a report for one solve result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Variable:            %s\n", result.Variable))
	sb.WriteString(fmt.Sprintf("Direction:           %s\n", tf.formatDirection(result.Direction)))
	sb.WriteString(fmt.Sprintf("Search Range:        [%g, %g]\n", result.SearchMin, result.SearchMax))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Found)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Found {
		sb.WriteString("REQUIRED VALUE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Boundary Value:      %.6f\n", *result.Value))
		if result.AppliedValue != nil && *result.AppliedValue != *result.Value {
			sb.WriteString(fmt.Sprintf("Applied Value:       %g\n", *result.AppliedValue))
		}
		sb.WriteString(fmt.Sprintf("Net Worth at 99:     $%s\n", tf.formatCurrency(result.NetWorthAt99)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAll formats the results of solving every variable
func (tf *TableFormatter) FormatAll(result *MultiSolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN VALUES FOR ALL VARIABLES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-28s %-13s %16s %16s %4s\n",
		"Variable", "Direction", "Boundary", "Net Worth at 99", "Iter"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		boundary := "not found"
		netWorth := "-"
		if res.Found {
			boundary = fmt.Sprintf("%.4f", *res.AppliedValue)
			netWorth = "$" + tf.formatShort(res.NetWorthAt99)
		}
		sb.WriteString(fmt.Sprintf("%-28s %-13s %16s %16s %4d\n",
			tf.truncate(res.Variable, 28),
			string(res.Direction),
			boundary,
			netWorth,
			res.Iterations))
	}
	sb.WriteString("\n")

	if len(result.Errors) > 0 {
		sb.WriteString("ERRORS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		names := make([]string, 0, len(result.Errors))
		for name := range result.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("%s: %s\n", name, result.Errors[name]))
		}
		sb.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.marshal(result)
}

// FormatAll formats the results of solving every variable as JSON
func (jf *JSONFormatter) FormatAll(result *MultiSolveResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatResult renders one result as a console table.
func FormatResult(result *SolveResult) string {
	return (&TableFormatter{}).Format(result)
}

// FormatResults renders a SolveAll run as a console table.
func FormatResults(result *MultiSolveResult) string {
	return (&TableFormatter{}).FormatAll(result)
}

// Helper methods

func (tf *TableFormatter) formatStatus(found bool) string {
	if found {
		return "✓ Solvent boundary found"
	}
	return "⚠ No solvent value in range"
}

func (tf *TableFormatter) formatDirection(d Direction) string {
	switch d {
	case FindLowest:
		return "lowest solvent value"
	case FindHighest:
		return "highest solvent value"
	}
	return string(d)
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
