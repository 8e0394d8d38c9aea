package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/tui/components"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	in := a.inputs
	r := a.result
	var b strings.Builder

	// Row 1: headline numbers
	yearsValue, yearsColor := a.yearsHeadline()
	cards := []components.Metric{
		{
			Label: "FIRE number",
			Value: cli.FormatGBP(r.FireNumber),
			Note:  fmt.Sprintf("%s/yr at %g%%", cli.FormatGBP(r.AnnualExpenses), in.WithdrawalRate),
			Color: t.AccentBright,
		},
		{
			Label: "Net worth",
			Value: cli.FormatGBP(r.TotalNetWorth),
			Note:  "gap " + cli.FormatGBP(r.GapToTarget),
		},
		{
			Label: "Years to FIRE",
			Value: yearsValue,
			Note:  a.dateNote(),
			Color: yearsColor,
		},
		{
			Label: "Savings rate",
			Value: cli.FormatPercent(r.SavingsRatePercent),
			Note:  cli.FormatGBP(r.TotalMonthlyContributions) + "/mo",
		},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	// Row 2: progress
	innerW := components.CardInnerWidth(cw)
	barW := max(10, innerW-8)
	b.WriteString(components.ContentCard("Progress to FIRE number",
		components.ProgressBar(r.ProgressPercent/100, barW), cw))
	b.WriteString("\n")

	// Row 3: what-if levers and outlook side by side
	halves := components.LayoutRow(cw, 2)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)

	lever := func(label, value, keys string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) +
			valueStyle.Render(fmt.Sprintf("%-12s", value)) +
			keyStyle.Render(keys)
	}
	levers := strings.Join([]string{
		lever("ISA contribution", cli.FormatGBP(in.MonthlyISAContributions)+"/mo", "[+ -]"),
		lever("Expected return", fmt.Sprintf("%g%%", in.ExpectedReturn), "[] []"),
		lever("Withdrawal rate", fmt.Sprintf("%g%%", in.WithdrawalRate), "[> <]"),
	}, "\n")

	b.WriteString(components.CardRow([]string{
		components.ContentCard("What if", levers, halves[0]),
		components.ContentCard("Outlook", a.outlookBody(), halves[1]),
	}))

	return b.String()
}

// yearsHeadline returns the years-to-FIRE value and its color.
func (a App) yearsHeadline() (string, lipgloss.Color) {
	t := theme.Active
	r := a.result
	switch {
	case r.AlreadyAtTarget:
		return "Now", t.Green
	case !r.YearsToTarget.Reachable():
		return "Never", t.Red
	default:
		return cli.FormatYears(r.YearsToTarget), t.TextPrimary
	}
}

func (a App) dateNote() string {
	r := a.result
	if r.AlreadyAtTarget {
		return "already FI"
	}
	if r.ProjectedTargetDate == nil {
		return "increase contributions"
	}
	return cli.FormatMonthYear(*r.ProjectedTargetDate)
}

func (a App) outlookBody() string {
	t := theme.Active
	r := a.result
	in := a.inputs

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	good := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	bad := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	lines := []string{
		muted.Render(fmt.Sprintf("Retire at %d (in %s)", in.TargetRetirementAge, cli.FormatYearCount(max(0, r.YearsToRetirement)))),
	}
	switch {
	case r.AlreadyAtTarget:
		lines = append(lines, good.Render("Financially independent"))
	case r.ProjectedTargetAge != nil:
		lines = append(lines, muted.Render(fmt.Sprintf("FIRE number at age %.0f", *r.ProjectedTargetAge)))
	default:
		lines = append(lines, bad.Render("Not reached within 100 years"))
	}
	if r.YearsBehindTarget != nil {
		switch behind := *r.YearsBehindTarget; {
		case behind > 0:
			lines = append(lines, bad.Render("Behind target by "+cli.FormatYearCount(behind)))
		case behind < 0:
			lines = append(lines, good.Render("Ahead of target by "+cli.FormatYearCount(-behind)))
		default:
			lines = append(lines, good.Render("On target"))
		}
	}
	return strings.Join(lines, "\n")
}
