package fire

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var frozenNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

func frozenProjector() *Projector {
	return NewProjector(DefaultPolicy(), func() time.Time { return frozenNow })
}

func baseSnapshot() Snapshot {
	return Snapshot{
		CurrentAge:                  35,
		TargetRetirementAge:         57,
		MonthlySpending:             2000,
		WithdrawalRatePercent:       4,
		MonthlyGrossIncome:          4000,
		ExpectedAnnualReturnPercent: 6,
		CurrentNetWorth:             50000,
		MonthlyContributions:        1000,
	}
}

func TestProject_Totals(t *testing.T) {
	r := frozenProjector().Project(baseSnapshot())

	if r.AnnualExpenses != 24000 {
		t.Fatalf("AnnualExpenses = %.2f, want 24000", r.AnnualExpenses)
	}
	if r.FireNumber != 600000 {
		t.Fatalf("FireNumber = %.2f, want 600000", r.FireNumber)
	}
	if r.GapToTarget != 550000 {
		t.Fatalf("GapToTarget = %.2f, want 550000", r.GapToTarget)
	}
	if math.Abs(r.ProgressPercent-50000.0/600000*100) > 1e-9 {
		t.Fatalf("ProgressPercent = %.4f", r.ProgressPercent)
	}
	if r.SavingsRatePercent != 25 {
		t.Fatalf("SavingsRatePercent = %.2f, want 25", r.SavingsRatePercent)
	}
	if got := mustReach(t, r.YearsToTarget); got != 19.5 {
		t.Fatalf("YearsToTarget = %.2f, want 19.5", got)
	}
	if r.AlreadyAtTarget {
		t.Fatal("AlreadyAtTarget = true, want false")
	}
}

func TestProject_ProjectedDateAddsRoundedMonths(t *testing.T) {
	r := frozenProjector().Project(baseSnapshot())
	if r.ProjectedTargetDate == nil {
		t.Fatal("ProjectedTargetDate = nil, want a date")
	}
	want := frozenNow.AddDate(0, 234, 0)
	if !r.ProjectedTargetDate.Equal(want) {
		t.Fatalf("ProjectedTargetDate = %s, want %s", r.ProjectedTargetDate, want)
	}
	if r.ProjectedTargetAge == nil || *r.ProjectedTargetAge != 54.5 {
		t.Fatalf("ProjectedTargetAge = %v, want 54.5", r.ProjectedTargetAge)
	}
	// round(54.5) = 55, two years ahead of 57.
	if r.YearsBehindTarget == nil || *r.YearsBehindTarget != -2 {
		t.Fatalf("YearsBehindTarget = %v, want -2", r.YearsBehindTarget)
	}
}

func TestProject_AlreadyAtTargetBoundary(t *testing.T) {
	s := baseSnapshot()
	s.CurrentNetWorth = 600000

	r := frozenProjector().Project(s)
	if !r.AlreadyAtTarget {
		t.Fatal("AlreadyAtTarget = false, want true")
	}
	if got := mustReach(t, r.YearsToTarget); got != 0 {
		t.Fatalf("YearsToTarget = %.2f, want 0", got)
	}
	if r.GapToTarget != 0 {
		t.Fatalf("GapToTarget = %.2f, want 0", r.GapToTarget)
	}
	if r.ProgressPercent != 100 {
		t.Fatalf("ProgressPercent = %.2f, want 100", r.ProgressPercent)
	}
	if r.ProjectedTargetDate == nil || !r.ProjectedTargetDate.Equal(frozenNow) {
		t.Fatalf("ProjectedTargetDate = %v, want now", r.ProjectedTargetDate)
	}
	if r.ProjectedTargetAge != nil {
		t.Fatalf("ProjectedTargetAge = %v, want nil", *r.ProjectedTargetAge)
	}
}

func TestProject_ProgressClamped(t *testing.T) {
	s := baseSnapshot()
	s.CurrentNetWorth = 1_500_000
	if r := frozenProjector().Project(s); r.ProgressPercent != 100 {
		t.Fatalf("ProgressPercent = %.2f, want 100", r.ProgressPercent)
	}

	s.CurrentNetWorth = -20000
	if r := frozenProjector().Project(s); r.ProgressPercent != 0 {
		t.Fatalf("ProgressPercent with debt = %.2f, want 0", r.ProgressPercent)
	}
}

func TestProject_UnreachableHasNoDate(t *testing.T) {
	s := baseSnapshot()
	s.CurrentNetWorth = 0
	s.MonthlyContributions = 0
	s.ExpectedAnnualReturnPercent = 0

	r := frozenProjector().Project(s)
	if r.YearsToTarget.Reachable() {
		t.Fatalf("YearsToTarget = %s, want unreachable", r.YearsToTarget)
	}
	if r.ProjectedTargetDate != nil {
		t.Fatalf("ProjectedTargetDate = %s, want nil", r.ProjectedTargetDate)
	}
	if r.YearsBehindTarget != nil {
		t.Fatalf("YearsBehindTarget = %d, want nil", *r.YearsBehindTarget)
	}
}

func TestProject_ZeroWithdrawalRate(t *testing.T) {
	s := baseSnapshot()
	s.WithdrawalRatePercent = 0

	r := frozenProjector().Project(s)
	if !math.IsInf(r.FireNumber, 1) {
		t.Fatalf("FireNumber = %v, want +Inf", r.FireNumber)
	}
	if !math.IsInf(r.GapToTarget, 1) {
		t.Fatalf("GapToTarget = %v, want +Inf", r.GapToTarget)
	}
	if r.ProgressPercent != 0 {
		t.Fatalf("ProgressPercent = %.2f, want 0", r.ProgressPercent)
	}
	if r.YearsToTarget.Reachable() {
		t.Fatalf("YearsToTarget = %s, want unreachable", r.YearsToTarget)
	}
}

func TestProject_ZeroIncomeSavingsRate(t *testing.T) {
	s := baseSnapshot()
	s.MonthlyGrossIncome = 0
	s.MonthlyContributions = 500
	if r := frozenProjector().Project(s); r.SavingsRatePercent != 0 {
		t.Fatalf("SavingsRatePercent = %.2f, want 0", r.SavingsRatePercent)
	}
}

func TestProject_WrappersAreAuthoritative(t *testing.T) {
	s := baseSnapshot()
	s.CurrentNetWorth = 999999
	s.MonthlyContributions = 999999
	s.Wrappers = &Wrappers{
		ISABalance:                  20000,
		PensionBalance:              25000,
		GIABalance:                  5000,
		MonthlyISAContributions:     600,
		MonthlyPensionContributions: 400,
	}

	r := frozenProjector().Project(s)
	if r.TotalNetWorth != 50000 {
		t.Fatalf("TotalNetWorth = %.2f, want 50000", r.TotalNetWorth)
	}
	if r.TotalMonthlyContributions != 1000 {
		t.Fatalf("TotalMonthlyContributions = %.2f, want 1000", r.TotalMonthlyContributions)
	}
	if got := mustReach(t, r.YearsToTarget); got != 19.5 {
		t.Fatalf("YearsToTarget = %.2f, want 19.5 (same totals as aggregate case)", got)
	}
}

func TestProject_BridgeShortfall(t *testing.T) {
	s := Snapshot{
		CurrentAge:                  35,
		TargetRetirementAge:         50,
		MonthlySpending:             2000,
		WithdrawalRatePercent:       4,
		MonthlyGrossIncome:          5000,
		ExpectedAnnualReturnPercent: 6,
		Wrappers: &Wrappers{
			ISABalance:                  10000,
			PensionBalance:              60000,
			GIABalance:                  5000,
			MonthlyISAContributions:     200,
			MonthlyPensionContributions: 800,
		},
	}

	r := frozenProjector().Project(s)
	if !r.RequiresBridge {
		t.Fatal("RequiresBridge = false, want true")
	}
	if r.YearsToRetirement != 15 {
		t.Fatalf("YearsToRetirement = %d, want 15", r.YearsToRetirement)
	}
	if r.YearsUntilPensionAccess != 7 {
		t.Fatalf("YearsUntilPensionAccess = %d, want 7", r.YearsUntilPensionAccess)
	}

	b := r.Bridge
	if b == nil {
		t.Fatal("Bridge = nil, want analysis")
	}
	if b.GapYears != 7 {
		t.Fatalf("GapYears = %d, want 7", b.GapYears)
	}
	assertMoney(t, b.AmountNeeded, 168000, "AmountNeeded")
	assertMoney(t, b.ProjectedISA, FutureValue(10000, 200, 0.06, 15), "ProjectedISA")
	assertMoney(t, b.ProjectedGIA, FutureValue(5000, 0, 0.06, 15), "ProjectedGIA")
	assertMoney(t, b.ProjectedAccessible, b.ProjectedISA+b.ProjectedGIA, "ProjectedAccessible")

	if b.ProjectedAccessible >= 168000 {
		t.Fatalf("ProjectedAccessible = %.2f, expected a shortfall", b.ProjectedAccessible)
	}
	if b.Viable {
		t.Fatal("Viable = true, want false")
	}
	assertMoney(t, b.Shortfall, 168000-b.ProjectedAccessible, "Shortfall")
}

func TestProject_BridgeViable(t *testing.T) {
	s := Snapshot{
		CurrentAge:                  40,
		TargetRetirementAge:         52,
		MonthlySpending:             1500,
		WithdrawalRatePercent:       4,
		ExpectedAnnualReturnPercent: 5,
		Wrappers: &Wrappers{
			ISABalance:              150000,
			GIABalance:              20000,
			MonthlyISAContributions: 1000,
		},
	}

	b := frozenProjector().Project(s).Bridge
	if b == nil {
		t.Fatal("Bridge = nil, want analysis")
	}
	assertMoney(t, b.AmountNeeded, 5*18000, "AmountNeeded")
	if !b.Viable {
		t.Fatalf("Viable = false with %.2f accessible", b.ProjectedAccessible)
	}
	if b.Shortfall != 0 {
		t.Fatalf("Shortfall = %.2f, want 0", b.Shortfall)
	}
}

func TestProject_NoBridgeAtAccessAge(t *testing.T) {
	s := baseSnapshot()
	s.TargetRetirementAge = DefaultPensionAccessAge

	r := frozenProjector().Project(s)
	if r.RequiresBridge {
		t.Fatal("RequiresBridge = true, want false")
	}
	if r.Bridge != nil {
		t.Fatalf("Bridge = %+v, want nil", *r.Bridge)
	}
	if r.YearsUntilPensionAccess != 0 {
		t.Fatalf("YearsUntilPensionAccess = %d, want 0", r.YearsUntilPensionAccess)
	}

	s.TargetRetirementAge = 60
	r = frozenProjector().Project(s)
	if r.Bridge != nil || r.YearsUntilPensionAccess != -3 {
		t.Fatalf("late retirement: Bridge = %v, YearsUntilPensionAccess = %d", r.Bridge, r.YearsUntilPensionAccess)
	}
}

func TestProject_AggregateSnapshotHasNoAccessibleWealth(t *testing.T) {
	s := baseSnapshot()
	s.TargetRetirementAge = 50

	b := frozenProjector().Project(s).Bridge
	if b == nil {
		t.Fatal("Bridge = nil, want analysis")
	}
	if b.ProjectedAccessible != 0 || b.Viable {
		t.Fatalf("aggregate-only bridge: accessible %.2f, viable %v", b.ProjectedAccessible, b.Viable)
	}
}

func TestProject_PensionAccessAgeIsInjected(t *testing.T) {
	s := baseSnapshot()
	s.TargetRetirementAge = 57

	p := NewProjector(Policy{PensionAccessAge: 58}, func() time.Time { return frozenNow })
	r := p.Project(s)
	if !r.RequiresBridge || r.Bridge == nil || r.Bridge.GapYears != 1 {
		t.Fatalf("access age 58: RequiresBridge = %v, Bridge = %+v", r.RequiresBridge, r.Bridge)
	}
}

func TestProject_InvertedAgesDoNotPanic(t *testing.T) {
	s := baseSnapshot()
	s.CurrentAge = 60
	s.TargetRetirementAge = 45

	r := frozenProjector().Project(s)
	if r.YearsToRetirement != -15 {
		t.Fatalf("YearsToRetirement = %d, want -15", r.YearsToRetirement)
	}
	if r.Bridge == nil {
		t.Fatal("Bridge = nil, want analysis")
	}
	// No negative-time projection: balances stay as they are.
	if r.Bridge.ProjectedAccessible != 0 {
		t.Fatalf("ProjectedAccessible = %.2f, want 0", r.Bridge.ProjectedAccessible)
	}
}

func TestProject_Idempotent(t *testing.T) {
	p := frozenProjector()
	s := baseSnapshot()
	s.TargetRetirementAge = 48
	s.Wrappers = &Wrappers{ISABalance: 40000, PensionBalance: 10000, MonthlyISAContributions: 1000}

	a := p.Project(s)
	b := p.Project(s)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Project not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestProject_MonotonicInContribution(t *testing.T) {
	p := frozenProjector()
	prevYears := math.Inf(1)
	prevProgress := -1.0
	for c := 0.0; c <= 4000; c += 200 {
		s := baseSnapshot()
		s.MonthlyContributions = c
		r := p.Project(s)

		if r.ProgressPercent < prevProgress {
			t.Fatalf("progress fell to %.2f at contribution %.0f", r.ProgressPercent, c)
		}
		prevProgress = r.ProgressPercent

		if y, ok := r.YearsToTarget.Value(); ok {
			if y > prevYears {
				t.Fatalf("years rose to %.2f at contribution %.0f", y, c)
			}
			prevYears = y
		}
	}
}
