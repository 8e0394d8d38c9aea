package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fyfire/internal/model"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

// SetupValues backs the setup form. Money and age fields are strings so the
// form can show what the user typed and validate it in place.
type SetupValues struct {
	CurrentAge          string
	TargetRetirementAge string

	MonthlySpending string

	ISABalance     string
	PensionBalance string
	GIABalance     string

	MonthlyIncome string

	MonthlyISAContributions     string
	MonthlyPensionContributions string

	WithdrawalRate float64
	ExpectedReturn float64

	Theme string
}

// NewSetupValues pre-fills the form from in.
func NewSetupValues(in model.Inputs, themeName string) *SetupValues {
	return &SetupValues{
		CurrentAge:                  strconv.Itoa(in.CurrentAge),
		TargetRetirementAge:         strconv.Itoa(in.TargetRetirementAge),
		MonthlySpending:             formatAmount(in.MonthlySpending),
		ISABalance:                  formatAmount(in.ISABalance),
		PensionBalance:              formatAmount(in.PensionBalance),
		GIABalance:                  formatAmount(in.GIABalance),
		MonthlyIncome:               formatAmount(in.MonthlyIncome),
		MonthlyISAContributions:     formatAmount(in.MonthlyISAContributions),
		MonthlyPensionContributions: formatAmount(in.MonthlyPensionContributions),
		WithdrawalRate:              snapToStep(model.Constraints.WithdrawalRate, in.WithdrawalRate),
		ExpectedReturn:              snapToStep(model.Constraints.ExpectedReturn, in.ExpectedReturn),
		Theme:                       themeName,
	}
}

// Inputs parses the form values and validates the result.
func (v *SetupValues) Inputs() (model.Inputs, error) {
	var in model.Inputs
	var err error

	ints := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"current age", v.CurrentAge, &in.CurrentAge},
		{"target retirement age", v.TargetRetirementAge, &in.TargetRetirementAge},
	}
	for _, f := range ints {
		if *f.dst, err = parseAge(f.raw); err != nil {
			return model.Inputs{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	amounts := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"monthly spending", v.MonthlySpending, &in.MonthlySpending},
		{"ISA balance", v.ISABalance, &in.ISABalance},
		{"pension balance", v.PensionBalance, &in.PensionBalance},
		{"GIA balance", v.GIABalance, &in.GIABalance},
		{"monthly income", v.MonthlyIncome, &in.MonthlyIncome},
		{"ISA contributions", v.MonthlyISAContributions, &in.MonthlyISAContributions},
		{"pension contributions", v.MonthlyPensionContributions, &in.MonthlyPensionContributions},
	}
	for _, f := range amounts {
		if *f.dst, err = parseAmount(f.raw); err != nil {
			return model.Inputs{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}

	in.WithdrawalRate = v.WithdrawalRate
	in.ExpectedReturn = v.ExpectedReturn

	if err := in.Validate(); err != nil {
		return model.Inputs{}, err
	}
	return in, nil
}

// NewSetupForm builds the setup wizard, one group per step.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fyfire").
				Description("Answer a few questions about your finances.\nEverything stays on this machine."),
			huh.NewInput().
				Title("How old are you?").
				Value(&v.CurrentAge).
				Validate(validateAge),
			huh.NewInput().
				Title("At what age would you like to retire?").
				Value(&v.TargetRetirementAge).
				Validate(validateTargetAge(&v.CurrentAge)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly spending (£)").
				Description("What you expect to spend each month in retirement.").
				Value(&v.MonthlySpending).
				Validate(validatePositive),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("ISA balance (£)").
				Description("Stocks & shares and cash ISAs. Accessible any time, tax-free.").
				Value(&v.ISABalance).
				Validate(validateAmount),
			huh.NewInput().
				Title("Pension balance (£)").
				Description("Workplace and personal pensions. Locked until the pension access age.").
				Value(&v.PensionBalance).
				Validate(validateAmount),
			huh.NewInput().
				Title("GIA balance (£)").
				Description("General investment account. Accessible, subject to CGT.").
				Value(&v.GIABalance).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly gross income (£)").
				Value(&v.MonthlyIncome).
				Validate(validatePositive),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly ISA contributions (£)").
				Value(&v.MonthlyISAContributions).
				Validate(validateAmount),
			huh.NewInput().
				Title("Monthly pension contributions (£)").
				Description("Include employer contributions.").
				Value(&v.MonthlyPensionContributions).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Safe withdrawal rate").
				Description("The share of your portfolio you withdraw each year.").
				Options(rangeOptions(model.Constraints.WithdrawalRate)...).
				Value(&v.WithdrawalRate),
		),
		huh.NewGroup(
			huh.NewSelect[float64]().
				Title("Expected annual return").
				Description("Real return after inflation.").
				Options(rangeOptions(model.Constraints.ExpectedReturn)...).
				Value(&v.ExpectedReturn),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCatppuccin())
}

// rangeOptions lists every step of r as a select option.
func rangeOptions(r model.Range) []huh.Option[float64] {
	n := int(math.Round((r.Max-r.Min)/r.Step)) + 1
	opts := make([]huh.Option[float64], 0, n)
	for i := range n {
		v := snapToStep(r, r.Min+float64(i)*r.Step)
		opts = append(opts, huh.NewOption(fmt.Sprintf("%g%%", v), v))
	}
	return opts
}

// snapToStep rounds v onto r's step grid inside the range.
func snapToStep(r model.Range, v float64) float64 {
	v = r.Clamp(v)
	v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	return math.Round(v*1000) / 1000
}

var errNotANumber = errors.New("enter a number")

// parseAmount accepts "12,500", "£12500" and "12500.50".
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotANumber
	}
	return v, nil
}

func parseAge(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("enter a whole number of years")
	}
	return n, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateAge(s string) error {
	n, err := parseAge(s)
	if err != nil {
		return err
	}
	if n <= 0 || n > 120 {
		return errors.New("enter an age between 1 and 120")
	}
	return nil
}

// validateTargetAge reads *current when called, so it sees the age typed
// in the field above.
func validateTargetAge(current *string) func(string) error {
	return func(s string) error {
		if err := validateAge(s); err != nil {
			return err
		}
		now, err := parseAge(*current)
		if err != nil {
			return nil
		}
		if target, _ := parseAge(s); target <= now {
			return fmt.Errorf("must be after your current age (%d)", now)
		}
		return nil
	}
}

func validateAmount(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func validatePositive(s string) error {
	v, err := parseAmount(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return errors.New("must be more than zero")
	}
	return nil
}
