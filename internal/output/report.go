package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
)

// inputOrder is the order inputs are listed in reports.
var inputOrder = []string{
	"current_age",
	"retirement_age",
	"current_savings",
	"monthly_contribution",
	"annual_return",
	"inflation_rate",
	"contribution_increase_rate",
	"current_yearly_spending",
	"tax_rate",
}

type inputRow struct {
	Label string
	Value string
}

func inputRows(in domain.RetirementInputs, currency string) []inputRow {
	rows := make([]inputRow, 0, len(inputOrder))
	for _, name := range inputOrder {
		v, err := transform.LookupVariable(name)
		if err != nil {
			continue
		}
		rows = append(rows, inputRow{Label: v.Description, Value: FormatVariable(v.Get(in), v.Unit, currency)})
	}
	return rows
}

// Phase names the stage of life an age falls in.
func Phase(age, retirementAge int) string {
	if age < retirementAge {
		return "saving"
	}
	return "retired"
}

// Outlook is the one-line verdict on whether the money lasts.
func Outlook(result *domain.CalculationResult) string {
	if result.DepletionAge != nil {
		return fmt.Sprintf("Money runs out at age %d", *result.DepletionAge)
	}
	if result.Solvent {
		return "Money lasts through age 99"
	}
	return "Net worth at 99 is below the solvency threshold"
}

// MarkdownReport renders the result as a GitHub-flavored markdown document. It is the
// source for the markdown, pretty and html formats.
func MarkdownReport(result *domain.CalculationResult, currency string) string {
	var buf bytes.Buffer
	title := "Retirement Projection"
	if result.Name != "" {
		title += ": " + result.Name
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	fmt.Fprintln(&buf, "## Inputs")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Input | Value |")
	fmt.Fprintln(&buf, "|---|---:|")
	for _, row := range inputRows(result.Inputs, currency) {
		fmt.Fprintf(&buf, "| %s | %s |\n", row.Label, row.Value)
	}
	fmt.Fprintln(&buf)

	s := result.Summary
	fmt.Fprintf(&buf, "## At Retirement (age %d)\n\n", result.EffectiveRetirementAge)
	fmt.Fprintln(&buf, "| Metric | Value |")
	fmt.Fprintln(&buf, "|---|---:|")
	fmt.Fprintf(&buf, "| Years to grow | %d |\n", s.YearsToGrow)
	fmt.Fprintf(&buf, "| Total savings | %s |\n", FormatCurrency(s.TotalSavings, currency))
	fmt.Fprintf(&buf, "| In today's money | %s |\n", FormatCurrency(s.RealTotalSavings, currency))
	fmt.Fprintf(&buf, "| Monthly income (4%% rule) | %s |\n", FormatCurrency(s.MonthlyIncomeInRetirement, currency))
	fmt.Fprintf(&buf, "| After-tax monthly income | %s |\n", FormatCurrency(s.AfterTaxMonthlyIncome, currency))
	fmt.Fprintf(&buf, "| Yearly spending at retirement | %s |\n", FormatCurrency(s.FutureYearlySpending, currency))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Outlook")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "- Peak net worth: %s at age %d\n", FormatCurrency(result.PeakNetWorth.NetWorth, currency), result.PeakNetWorth.Age)
	fmt.Fprintf(&buf, "- Net worth at 99: %s\n", FormatCurrency(result.NetWorthAt99, currency))
	fmt.Fprintf(&buf, "- %s\n", Outlook(result))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "## Projection")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Age | Phase | Net Worth |")
	fmt.Fprintln(&buf, "|---:|---|---:|")
	for _, point := range result.Projection {
		fmt.Fprintf(&buf, "| %d | %s | %s |\n", point.Age, Phase(point.Age, result.EffectiveRetirementAge), FormatCurrency(point.NetWorth, currency))
	}
	return buf.String()
}

// WriteProjectionTable writes an aligned age/net worth table. step > 1 keeps every
// step-th age plus the retirement age, the depletion age and the final age.
func WriteProjectionTable(w io.Writer, result *domain.CalculationResult, currency string, step int) {
	fmt.Fprintf(w, "%-5s %-8s %20s\n", "Age", "Phase", "Net Worth")
	fmt.Fprintln(w, strings.Repeat("-", 35))
	last := len(result.Projection) - 1
	for i, point := range result.Projection {
		if step > 1 && !keepRow(result, i, last, step) {
			continue
		}
		marker := ""
		switch {
		case point.Age == result.EffectiveRetirementAge:
			marker = "  <- retirement"
		case result.DepletionAge != nil && point.Age == *result.DepletionAge:
			marker = "  <- depleted"
		}
		fmt.Fprintf(w, "%-5d %-8s %20s%s\n", point.Age, Phase(point.Age, result.EffectiveRetirementAge), FormatCurrency(point.NetWorth, currency), marker)
	}
}

func keepRow(result *domain.CalculationResult, i, last, step int) bool {
	age := result.Projection[i].Age
	if i == 0 || i == last || age%step == 0 || age == result.EffectiveRetirementAge {
		return true
	}
	return result.DepletionAge != nil && age == *result.DepletionAge
}
