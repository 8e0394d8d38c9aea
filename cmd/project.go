package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/model"
	"github.com/theirongolddev/fyfire/internal/server"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project your FIRE number and ISA bridge (default command)",
	RunE:  runProject,
}

// overrides are one-off changes to the saved inputs. They are never saved.
var overrides struct {
	age, retireAt                                                      int
	spend, rate, ret, isa, pension, gia, income, isaContrib, penContrib float64
}

func init() {
	addOverrideFlags(rootCmd)
	addOverrideFlags(projectCmd)
	rootCmd.AddCommand(projectCmd)
}

func addOverrideFlags(c *cobra.Command) {
	f := c.Flags()
	f.IntVar(&overrides.age, "age", 0, "Current age")
	f.IntVar(&overrides.retireAt, "retire-at", 0, "Target retirement age")
	f.Float64Var(&overrides.spend, "spend", 0, "Monthly spending (£)")
	f.Float64Var(&overrides.rate, "rate", 0, "Withdrawal rate (%)")
	f.Float64Var(&overrides.ret, "return", 0, "Expected annual return (%)")
	f.Float64Var(&overrides.isa, "isa", 0, "ISA balance (£)")
	f.Float64Var(&overrides.pension, "pension", 0, "Pension balance (£)")
	f.Float64Var(&overrides.gia, "gia", 0, "GIA balance (£)")
	f.Float64Var(&overrides.income, "income", 0, "Monthly gross income (£)")
	f.Float64Var(&overrides.isaContrib, "isa-contrib", 0, "Monthly ISA contributions (£)")
	f.Float64Var(&overrides.penContrib, "pension-contrib", 0, "Monthly pension contributions incl. employer (£)")
}

// applyOverrides copies every flag the user set onto in.
func applyOverrides(c *cobra.Command, in model.Inputs) model.Inputs {
	f := c.Flags()
	ints := map[string]struct {
		src int
		dst *int
	}{
		"age":       {overrides.age, &in.CurrentAge},
		"retire-at": {overrides.retireAt, &in.TargetRetirementAge},
	}
	for name, v := range ints {
		if f.Changed(name) {
			*v.dst = v.src
		}
	}

	floats := map[string]struct {
		src float64
		dst *float64
	}{
		"spend":           {overrides.spend, &in.MonthlySpending},
		"rate":            {overrides.rate, &in.WithdrawalRate},
		"return":          {overrides.ret, &in.ExpectedReturn},
		"isa":             {overrides.isa, &in.ISABalance},
		"pension":         {overrides.pension, &in.PensionBalance},
		"gia":             {overrides.gia, &in.GIABalance},
		"income":          {overrides.income, &in.MonthlyIncome},
		"isa-contrib":     {overrides.isaContrib, &in.MonthlyISAContributions},
		"pension-contrib": {overrides.penContrib, &in.MonthlyPensionContributions},
	}
	for name, v := range floats {
		if f.Changed(name) {
			*v.dst = v.src
		}
	}
	return in
}

func runProject(c *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	in := applyOverrides(c, s.loadInputs(c.Context()))
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}

	res := s.projector.Project(in.Snapshot())
	s.log.Debug().
		Float64("fire_number", res.FireNumber).
		Stringer("years_to_fire", res.YearsToTarget).
		Bool("requires_bridge", res.RequiresBridge).
		Msg("projected")

	if flagJSON {
		return writeJSON(server.NewProjectionResponse(res, s.accessAge()))
	}

	fmt.Print(cli.RenderResult(in, res, s.accessAge()))
	return nil
}
