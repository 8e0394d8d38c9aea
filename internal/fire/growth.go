package fire

import "math"

// MaxSimulationMonths caps the growth simulation at 100 years. Targets not met
// within the cap are Unreachable.
const MaxSimulationMonths = 100 * 12

// YearsToTarget estimates how long currentValue takes to reach targetValue
// with a fixed monthly contribution and annual return (decimal, 0.06 = 6%).
//
// Growth is simulated month by month:
//
//	portfolio = portfolio × (1 + annualRate/12) + monthlyContribution
//
// and the result is the first month the portfolio meets the target, in years.
func YearsToTarget(currentValue, monthlyContribution, annualRate, targetValue float64) Years {
	if currentValue >= targetValue {
		return Reached(0)
	}
	if math.IsInf(targetValue, 1) {
		return Unreachable
	}

	if annualRate == 0 {
		if monthlyContribution <= 0 {
			return Unreachable
		}
		gap := targetValue - currentValue
		return Reached(gap / monthlyContribution / 12)
	}

	months, ok := monthsToTarget(currentValue, monthlyContribution, annualRate/12, targetValue)
	if !ok {
		return Unreachable
	}
	return Reached(float64(months) / 12)
}

func monthsToTarget(portfolio, contribution, monthlyRate, target float64) (int, bool) {
	for month := 1; month <= MaxSimulationMonths; month++ {
		portfolio = portfolio*(1+monthlyRate) + contribution
		if portfolio >= target {
			return month, true
		}
	}
	return 0, false
}

// FutureValue projects presentValue forward by years with a monthly
// contribution and annual return (decimal). Years are rounded to whole months.
//
//	FV = PV × (1+r)^n + PMT × ((1+r)^n − 1) / r
func FutureValue(presentValue, monthlyContribution, annualRate, years float64) float64 {
	if years <= 0 {
		return presentValue
	}

	months := math.Round(years * 12)
	r := annualRate / 12
	if r == 0 {
		return presentValue + monthlyContribution*months
	}

	growth := math.Pow(1+r, months)
	return presentValue*growth + monthlyContribution*(growth-1)/r
}
