package fire

// analyzeBridge checks whether accessible wealth (ISA + GIA) projected to the
// retirement date covers spending until the pension can be drawn.
//
// Spending is held constant through the gap and the GIA receives no further
// contributions.
func analyzeBridge(h holdings, annualExpenses, annualRate float64, yearsToRetirement, gapYears int) *Bridge {
	needed := float64(gapYears) * annualExpenses

	isa := FutureValue(h.isa, h.isaContrib, annualRate, float64(yearsToRetirement))
	gia := FutureValue(h.gia, 0, annualRate, float64(yearsToRetirement))
	accessible := isa + gia

	shortfall := needed - accessible
	if shortfall < 0 {
		shortfall = 0
	}

	return &Bridge{
		GapYears:            gapYears,
		AmountNeeded:        needed,
		ProjectedISA:        isa,
		ProjectedGIA:        gia,
		ProjectedAccessible: accessible,
		Viable:              accessible >= needed,
		Shortfall:           shortfall,
	}
}
