package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/shopspring/decimal"
)

// FinalAge is the last age recorded in every projection.
const FinalAge = 100

// Project simulates net worth month by month from the current age through FinalAge and
// records one point at the start of each age-year. Ages before the effective retirement
// age accumulate contributions; the retirement age and later ages draw down.
func Project(in domain.RetirementInputs) (domain.Projection, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}

	retirementAge := EffectiveRetirementAge(in)
	monthlyRate := in.MonthlyReturn()
	withdrawal := RetirementWithdrawal(in)

	netWorth := in.CurrentSavings
	contribution := in.MonthlyContribution

	projection := make(domain.Projection, 0, max(FinalAge-in.CurrentAge+1, 0))
	for age := in.CurrentAge; age <= FinalAge; age++ {
		projection = append(projection, domain.ProjectionPoint{
			Age:      age,
			NetWorth: truncateCents(netWorth),
		})

		if age < retirementAge {
			for month := 0; month < 12; month++ {
				netWorth = (netWorth + contribution) * (1 + monthlyRate)
			}
			contribution *= 1 + in.ContributionIncreaseRate/100
			continue
		}

		for month := 0; month < 12; month++ {
			netWorth = netWorth*(1+monthlyRate) - withdrawal/12
		}
		withdrawal *= 1 + in.InflationRate/100
		if netWorth < 0 {
			netWorth = 0
		}
	}
	return projection, nil
}

// RetirementWithdrawal returns the pre-tax yearly withdrawal needed in the first retirement
// year: today's spending inflated to the retirement age and grossed up for tax.
// The tax rate must be below 100.
func RetirementWithdrawal(in domain.RetirementInputs) float64 {
	years := EffectiveRetirementAge(in) - in.CurrentAge
	inflated := in.CurrentYearlySpending * math.Pow(1+in.InflationRate/100, float64(years))
	return inflated * 100 / (100 - in.TaxRate)
}

// truncateCents floors to whole cents so the recorded value never overstates net worth.
func truncateCents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Floor(v*100) / 100)
}
