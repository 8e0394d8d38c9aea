// Package model defines the user-facing inputs record that the wizard
// collects, the store persists and the engine consumes.
package model

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fyfire/internal/fire"
)

// SchemaVersion is the version of the Inputs layout written by this build.
// Version 1 held a single currentNetWorth / monthlyContributions pair.
const SchemaVersion = 2

// Inputs holds every answer the wizard collects.
type Inputs struct {
	CurrentAge          int `json:"currentAge" yaml:"current_age"`
	TargetRetirementAge int `json:"targetRetirementAge" yaml:"target_retirement_age"`

	MonthlySpending float64 `json:"monthlySpending" yaml:"monthly_spending"`
	WithdrawalRate  float64 `json:"withdrawalRate" yaml:"withdrawal_rate"` // percent, 4 means 4%

	ISABalance     float64 `json:"isaBalance" yaml:"isa_balance"`
	PensionBalance float64 `json:"pensionBalance" yaml:"pension_balance"`
	GIABalance     float64 `json:"giaBalance" yaml:"gia_balance"`

	MonthlyIncome               float64 `json:"monthlyIncome" yaml:"monthly_income"` // gross
	MonthlyISAContributions     float64 `json:"monthlyISAContributions" yaml:"monthly_isa_contributions"`
	MonthlyPensionContributions float64 `json:"monthlyPensionContributions" yaml:"monthly_pension_contributions"` // include employer

	ExpectedReturn float64 `json:"expectedReturn" yaml:"expected_return"` // percent
}

// DefaultInputs returns the values a first-time user starts from.
func DefaultInputs() Inputs {
	return Inputs{
		CurrentAge:                  35,
		TargetRetirementAge:         55,
		MonthlySpending:             2000,
		WithdrawalRate:              4,
		ISABalance:                  0,
		PensionBalance:              50000,
		GIABalance:                  0,
		MonthlyIncome:               4000,
		MonthlyISAContributions:     500,
		MonthlyPensionContributions: 500,
		ExpectedReturn:              6,
	}
}

// Range bounds a slider-style input.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// InputConstraints bounds the slider inputs.
type InputConstraints struct {
	WithdrawalRate Range `json:"withdrawalRate"`
	ExpectedReturn Range `json:"expectedReturn"`
}

// Constraints are the slider bounds the wizard offers.
var Constraints = InputConstraints{
	WithdrawalRate: Range{Min: 3, Max: 5, Step: 0.1},
	ExpectedReturn: Range{Min: 4, Max: 8, Step: 0.5},
}

// TotalNetWorth sums the three wrappers.
func (in Inputs) TotalNetWorth() float64 {
	return in.ISABalance + in.PensionBalance + in.GIABalance
}

// TotalMonthlyContributions sums ISA and pension contributions.
func (in Inputs) TotalMonthlyContributions() float64 {
	return in.MonthlyISAContributions + in.MonthlyPensionContributions
}

// Snapshot converts the inputs into the engine's breakdown-shaped snapshot.
func (in Inputs) Snapshot() fire.Snapshot {
	return fire.Snapshot{
		CurrentAge:                  in.CurrentAge,
		TargetRetirementAge:         in.TargetRetirementAge,
		MonthlySpending:             in.MonthlySpending,
		WithdrawalRatePercent:       in.WithdrawalRate,
		MonthlyGrossIncome:          in.MonthlyIncome,
		ExpectedAnnualReturnPercent: in.ExpectedReturn,
		CurrentNetWorth:             in.TotalNetWorth(),
		MonthlyContributions:        in.TotalMonthlyContributions(),
		Wrappers: &fire.Wrappers{
			ISABalance:                  in.ISABalance,
			PensionBalance:              in.PensionBalance,
			GIABalance:                  in.GIABalance,
			MonthlyISAContributions:     in.MonthlyISAContributions,
			MonthlyPensionContributions: in.MonthlyPensionContributions,
		},
	}
}

// FieldError is a user-facing validation failure for one input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failing field.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the inputs the way the wizard does before saving.
// It returns nil or a ValidationErrors.
func (in Inputs) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if in.CurrentAge <= 0 {
		add("currentAge", "current age must be positive")
	}
	if in.TargetRetirementAge <= in.CurrentAge {
		add("targetRetirementAge", "target retirement age must be after current age")
	}
	if in.MonthlySpending <= 0 {
		add("monthlySpending", "monthly spending must be positive")
	}
	if in.MonthlyIncome <= 0 {
		add("monthlyIncome", "income must be positive")
	}

	negatives := []struct {
		field string
		label string
		v     float64
	}{
		{"isaBalance", "ISA balance", in.ISABalance},
		{"pensionBalance", "pension balance", in.PensionBalance},
		{"giaBalance", "GIA balance", in.GIABalance},
		{"monthlyISAContributions", "ISA contributions", in.MonthlyISAContributions},
		{"monthlyPensionContributions", "pension contributions", in.MonthlyPensionContributions},
	}
	for _, n := range negatives {
		if n.v < 0 {
			add(n.field, "%s cannot be negative", n.label)
		}
	}

	if r := Constraints.WithdrawalRate; !r.Contains(in.WithdrawalRate) {
		add("withdrawalRate", "withdrawal rate must be between %g%% and %g%%", r.Min, r.Max)
	}
	if r := Constraints.ExpectedReturn; !r.Contains(in.ExpectedReturn) {
		add("expectedReturn", "expected return must be between %g%% and %g%%", r.Min, r.Max)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
