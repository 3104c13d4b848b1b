package calculation

import (
	"math"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// SafeWithdrawalRate is the annual share of savings assumed sustainable in retirement.
const SafeWithdrawalRate = 0.04

// Summarize computes the end-of-accumulation snapshot without building a year-by-year
// history. It accepts any finite input, including a tax rate at or above 100%, in which
// case the after-tax income is zero or negative.
func Summarize(in domain.RetirementInputs) domain.SummaryResult {
	years := EffectiveRetirementAge(in) - in.CurrentAge
	months := years * 12
	monthlyRate := in.MonthlyReturn()

	lumpSum := in.CurrentSavings * math.Pow(1+monthlyRate, float64(months))

	// Contributions step up once a year, so they are accumulated month by month rather
	// than with an annuity formula.
	contributions := 0.0
	contribution := in.MonthlyContribution
	for m := 1; m <= months; m++ {
		contributions = (contributions + contribution) * (1 + monthlyRate)
		if m%12 == 0 {
			contribution *= 1 + in.ContributionIncreaseRate/100
		}
	}

	total := lumpSum + contributions
	inflationFactor := math.Pow(1+in.InflationRate/100, float64(years))
	monthlyIncome := total * SafeWithdrawalRate / 12

	return domain.SummaryResult{
		YearsToGrow:               years,
		TotalSavings:              roundCents(total),
		RealTotalSavings:          roundCents(total / inflationFactor),
		MonthlyIncomeInRetirement: roundCents(monthlyIncome),
		AfterTaxMonthlyIncome:     roundCents(monthlyIncome * (1 - in.TaxRate/100)),
		FutureYearlySpending:      roundCents(in.CurrentYearlySpending * inflationFactor),
	}
}

func roundCents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
