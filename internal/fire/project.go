package fire

import (
	"math"
	"time"
)

// Clock returns the current time. Projected dates are measured from it.
type Clock func() time.Time

// Policy holds the rule constants the engine is parameterised by.
type Policy struct {
	PensionAccessAge int
}

// DefaultPolicy returns the current UK policy.
func DefaultPolicy() Policy {
	return Policy{PensionAccessAge: DefaultPensionAccessAge}
}

// Projector runs projections under a fixed policy and clock.
// It holds no mutable state and is safe for concurrent use.
type Projector struct {
	policy Policy
	now    Clock
}

// NewProjector returns a Projector. A nil clock means time.Now.
func NewProjector(policy Policy, now Clock) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{policy: policy, now: now}
}

// Policy returns the projector's policy.
func (p *Projector) Policy() Policy {
	return p.policy
}

var defaultProjector = NewProjector(DefaultPolicy(), nil)

// Project runs a projection with the default policy and the wall clock.
func Project(s Snapshot) Result {
	return defaultProjector.Project(s)
}

// Project turns a Snapshot into a Result. It never fails: degenerate inputs
// resolve to sentinel values.
func (p *Projector) Project(s Snapshot) Result {
	h := s.holdings()

	annualExpenses := AnnualExpenses(s.MonthlySpending)
	fireNumber := FireNumber(s.MonthlySpending, s.WithdrawalRatePercent)

	gap := math.Max(0, fireNumber-h.netWorth)
	alreadyAtTarget := h.netWorth >= fireNumber

	progress := 0.0
	if fireNumber > 0 {
		progress = math.Min(100, h.netWorth/fireNumber*100)
		progress = math.Max(0, progress)
	}

	annualRate := s.ExpectedAnnualReturnPercent / 100

	years := Reached(0)
	if !alreadyAtTarget {
		years = YearsToTarget(h.netWorth, h.contributions, annualRate, fireNumber)
	}

	now := p.now()
	var targetDate *time.Time
	var targetAge *float64
	var behind *int
	if alreadyAtTarget {
		targetDate = &now
	} else if y, ok := years.Value(); ok {
		d := now.AddDate(0, int(math.Round(y*12)), 0)
		targetDate = &d

		age := float64(s.CurrentAge) + y
		targetAge = &age
		b := int(math.Round(age)) - s.TargetRetirementAge
		behind = &b
	}

	r := Result{
		AnnualExpenses:            annualExpenses,
		FireNumber:                fireNumber,
		TotalNetWorth:             h.netWorth,
		TotalMonthlyContributions: h.contributions,
		GapToTarget:               gap,
		ProgressPercent:           progress,
		SavingsRatePercent:        SavingsRate(h.contributions, s.MonthlyGrossIncome),
		YearsToTarget:             years,
		ProjectedTargetDate:       targetDate,
		AlreadyAtTarget:           alreadyAtTarget,
		ProjectedTargetAge:        targetAge,
		YearsBehindTarget:         behind,
		YearsToRetirement:         s.TargetRetirementAge - s.CurrentAge,
		YearsUntilPensionAccess:   p.policy.PensionAccessAge - s.TargetRetirementAge,
		RequiresBridge:            s.TargetRetirementAge < p.policy.PensionAccessAge,
	}

	if r.RequiresBridge {
		r.Bridge = analyzeBridge(h, annualExpenses, annualRate, r.YearsToRetirement, r.YearsUntilPensionAccess)
	}

	return r
}
