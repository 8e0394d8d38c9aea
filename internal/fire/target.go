package fire

import "math"

// AnnualExpenses converts monthly spending into a yearly figure.
func AnnualExpenses(monthlySpending float64) float64 {
	return monthlySpending * 12
}

// FireNumber returns the portfolio value whose withdrawals at
// withdrawalRatePercent cover monthlySpending.
//
//	FIRE number = annual expenses × (100 / withdrawal rate)
//
// A non-positive rate returns +Inf.
func FireNumber(monthlySpending, withdrawalRatePercent float64) float64 {
	if withdrawalRatePercent <= 0 {
		return math.Inf(1)
	}
	multiplier := 100 / withdrawalRatePercent
	return AnnualExpenses(monthlySpending) * multiplier
}

// SavingsRate returns contributions as a percentage of gross monthly income.
// Returns 0 if income is zero or negative.
func SavingsRate(monthlyContribution, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return monthlyContribution / monthlyIncome * 100
}
