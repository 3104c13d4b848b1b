package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/nestegg/internal/domain"
)

// ConsoleFormatter renders a plain-text report for terminals.
type ConsoleFormatter struct {
	Currency string
	// Step thins the projection table to every Step-th age; 0 means every 5 years.
	Step int
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	currency := orDefaultCurrency(c.Currency)
	step := c.Step
	if step == 0 {
		step = 5
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "=================================================================")
	if result.Name != "" {
		fmt.Fprintf(&buf, "RETIREMENT PROJECTION: %s\n", result.Name)
	} else {
		fmt.Fprintln(&buf, "RETIREMENT PROJECTION")
	}
	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "INPUTS:")
	for _, row := range inputRows(result.Inputs, currency) {
		fmt.Fprintf(&buf, "  %-52s %s\n", row.Label+":", row.Value)
	}
	fmt.Fprintln(&buf)

	s := result.Summary
	fmt.Fprintf(&buf, "AT RETIREMENT (age %d, %d years from now):\n", result.EffectiveRetirementAge, s.YearsToGrow)
	fmt.Fprintf(&buf, "  Total Savings:              %s\n", FormatCurrency(s.TotalSavings, currency))
	fmt.Fprintf(&buf, "  In Today's Money:           %s\n", FormatCurrency(s.RealTotalSavings, currency))
	fmt.Fprintf(&buf, "  Monthly Income (4%% rule):   %s\n", FormatCurrency(s.MonthlyIncomeInRetirement, currency))
	fmt.Fprintf(&buf, "  After-Tax Monthly Income:   %s\n", FormatCurrency(s.AfterTaxMonthlyIncome, currency))
	fmt.Fprintf(&buf, "  Yearly Spending:            %s\n", FormatCurrency(s.FutureYearlySpending, currency))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "OUTLOOK:")
	fmt.Fprintf(&buf, "  Peak Net Worth:             %s (age %d)\n", FormatCurrency(result.PeakNetWorth.NetWorth, currency), result.PeakNetWorth.Age)
	fmt.Fprintf(&buf, "  Net Worth at 99:            %s\n", FormatCurrency(result.NetWorthAt99, currency))
	fmt.Fprintf(&buf, "  %s\n", Outlook(result))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PROJECTION:")
	WriteProjectionTable(&buf, result, currency, step)
	return buf.Bytes(), nil
}
