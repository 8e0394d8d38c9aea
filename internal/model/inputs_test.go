package model

import (
	"errors"
	"testing"
)

func TestDefaultInputsAreValid(t *testing.T) {
	if err := DefaultInputs().Validate(); err != nil {
		t.Fatalf("DefaultInputs().Validate() = %v, want nil", err)
	}
}

func TestSnapshotUsesBreakdown(t *testing.T) {
	in := DefaultInputs()
	in.ISABalance = 12000
	in.GIABalance = 3000

	s := in.Snapshot()
	if s.Wrappers == nil {
		t.Fatal("Snapshot().Wrappers = nil, want breakdown")
	}
	if s.Wrappers.ISABalance != 12000 || s.Wrappers.PensionBalance != 50000 || s.Wrappers.GIABalance != 3000 {
		t.Fatalf("Wrappers = %+v", *s.Wrappers)
	}
	if s.CurrentNetWorth != 65000 {
		t.Fatalf("CurrentNetWorth = %.0f, want 65000", s.CurrentNetWorth)
	}
	if s.MonthlyContributions != 1000 {
		t.Fatalf("MonthlyContributions = %.0f, want 1000", s.MonthlyContributions)
	}
	if s.WithdrawalRatePercent != 4 || s.ExpectedAnnualReturnPercent != 6 {
		t.Fatalf("rates = %.1f / %.1f", s.WithdrawalRatePercent, s.ExpectedAnnualReturnPercent)
	}
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	in := DefaultInputs()
	in.MonthlyIncome = 0
	in.TargetRetirementAge = 30
	in.WithdrawalRate = 7
	in.GIABalance = -1

	err := in.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Validate() = %v, want ValidationErrors", err)
	}

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field] = fe.Message
	}
	want := map[string]string{
		"monthlyIncome":       "income must be positive",
		"targetRetirementAge": "target retirement age must be after current age",
		"withdrawalRate":      "withdrawal rate must be between 3% and 5%",
		"giaBalance":          "GIA balance cannot be negative",
	}
	for f, msg := range want {
		if fields[f] != msg {
			t.Errorf("field %s message = %q, want %q", f, fields[f], msg)
		}
	}
	if len(verrs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(verrs), len(want), verrs)
	}
}

func TestRangeClamp(t *testing.T) {
	r := Constraints.ExpectedReturn
	if got := r.Clamp(10); got != 8 {
		t.Fatalf("Clamp(10) = %.1f, want 8", got)
	}
	if got := r.Clamp(1); got != 4 {
		t.Fatalf("Clamp(1) = %.1f, want 4", got)
	}
	if got := r.Clamp(5.5); got != 5.5 {
		t.Fatalf("Clamp(5.5) = %.1f, want 5.5", got)
	}
}
