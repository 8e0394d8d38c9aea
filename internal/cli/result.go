package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

// RenderResult renders the full results view for one projection.
func RenderResult(in model.Inputs, r fire.Result, accessAge int) string {
	var b strings.Builder

	b.WriteString(RenderTitle("FIRE DASHBOARD"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  Your FIRE number  %s\n", headerStyle.Render(FormatGBP(r.FireNumber)))
	fmt.Fprintf(&b, "  %s\n\n", mutedStyle.Render(fmt.Sprintf("%s/yr ÷ %g%% withdrawal rate",
		FormatGBP(r.AnnualExpenses), in.WithdrawalRate)))
	fmt.Fprintf(&b, "  Progress  %s\n", RenderProgressBar(r.ProgressPercent, 30))
	fmt.Fprintf(&b, "  %s\n\n", mutedStyle.Render(FormatGBP(r.TotalNetWorth)+" of "+FormatGBP(r.FireNumber)))

	b.WriteString(renderOutlook(in, r))
	b.WriteString("\n")
	b.WriteString(renderBridge(in, r, accessAge))
	b.WriteString("\n")

	gap := FormatGBP(r.GapToTarget)
	if r.AlreadyAtTarget {
		gap = "£0"
	}
	dateLabel := "—"
	if r.AlreadyAtTarget {
		dateLabel = "Already FI"
	} else if r.ProjectedTargetDate != nil {
		dateLabel = FormatMonthYear(*r.ProjectedTargetDate)
	}
	b.WriteString(RenderTable(Table{
		Title:   "At a glance",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Gap to close", gap},
			{"Years to FIRE", yearsLabel(r)},
			{"Projected date", dateLabel},
			{"Expected annual return", FormatPercent(in.ExpectedReturn)},
			{"Savings rate", FormatPercent(r.SavingsRatePercent)},
			{"Contributions", FormatGBP(r.TotalMonthlyContributions) + "/mo of " + FormatGBP(in.MonthlyIncome) + "/mo"},
		},
	}))
	b.WriteString("\n")

	multiplier := "∞"
	if in.WithdrawalRate > 0 {
		multiplier = fmt.Sprintf("×%.1f", 100/in.WithdrawalRate)
	}
	b.WriteString(RenderTable(Table{
		Title:   "Calculation breakdown",
		Headers: []string{"Step", "Amount"},
		Rows: [][]string{
			{"Monthly spending", FormatGBP(in.MonthlySpending) + "/mo"},
			{"Annual expenses", FormatGBP(r.AnnualExpenses) + "/yr"},
			{fmt.Sprintf("Multiplier (100 ÷ %g%%)", in.WithdrawalRate), multiplier},
			{"---"},
			{"FIRE number", FormatGBP(r.FireNumber)},
		},
	}))

	return b.String()
}

func yearsLabel(r fire.Result) string {
	if r.AlreadyAtTarget {
		return "Now"
	}
	if !r.YearsToTarget.Reachable() {
		return "Never (increase contributions)"
	}
	return FormatYears(r.YearsToTarget)
}

// renderOutlook compares the target retirement age with when the FIRE
// number is projected to land.
func renderOutlook(in model.Inputs, r fire.Result) string {
	var b strings.Builder

	if r.AlreadyAtTarget {
		b.WriteString("  " + goodStyle.Render("You are financially independent."))
		fmt.Fprintf(&b, "\n  %s\n", mutedStyle.Render(fmt.Sprintf(
			"Your portfolio can sustain your spending at a %g%% withdrawal rate.", in.WithdrawalRate)))
		return b.String()
	}

	retire := max(0, r.YearsToRetirement)
	fmt.Fprintf(&b, "  Your target          Retire at %d (in %d yrs)\n", in.TargetRetirementAge, retire)

	if r.ProjectedTargetAge != nil {
		age := int(*r.ProjectedTargetAge + 0.5)
		fmt.Fprintf(&b, "  FIRE number reached  Age %d (%s)\n", age, yearsLabel(r))
	}
	if r.YearsBehindTarget != nil {
		behind := *r.YearsBehindTarget
		switch {
		case behind > 0:
			b.WriteString("  " + warnStyle.Render("Behind target        "+FormatYearCount(behind)) + "\n")
		case behind == 0:
			b.WriteString("  " + goodStyle.Render("On target") + "\n")
		default:
			b.WriteString("  " + goodStyle.Render("Ahead of target      "+FormatYearCount(-behind)) + "\n")
		}
	}

	if !r.YearsToTarget.Reachable() {
		b.WriteString("  " + warnStyle.Render(
			"The FIRE number will not be reached within 100 years at these contributions and returns.") + "\n")
	}
	return b.String()
}

func renderBridge(in model.Inputs, r fire.Result, accessAge int) string {
	if !r.RequiresBridge || r.Bridge == nil {
		return "  " + goodStyle.Render("No bridge needed") + "  " + mutedStyle.Render(fmt.Sprintf(
			"pension is accessible at retirement (age %d ≥ %d)", in.TargetRetirementAge, accessAge)) + "\n"
	}

	br := r.Bridge
	rows := [][]string{
		{"Bridge period", fmt.Sprintf("%d years", br.GapYears)},
		{"Bridge needed", FormatGBP(br.AmountNeeded)},
		{"---"},
		{"ISA at retirement (tax-free)", FormatGBP(br.ProjectedISA)},
		{"GIA at retirement (CGT)", FormatGBP(br.ProjectedGIA)},
		{"Total accessible", FormatGBP(br.ProjectedAccessible)},
	}

	var b strings.Builder
	b.WriteString(RenderTable(Table{
		Title:   fmt.Sprintf("ISA bridge (age %d → %d)", in.TargetRetirementAge, accessAge),
		Headers: []string{"Item", "Amount"},
		Rows:    rows,
	}))
	if br.Viable {
		b.WriteString("  " + goodStyle.Render("Bridge covered: ISA + GIA fund the gap to pension access") + "\n")
	} else {
		b.WriteString("  " + warnStyle.Render("Bridge shortfall: "+FormatGBP(br.Shortfall)) + "\n")
	}
	return b.String()
}
