package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/tui/components"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

func (a App) renderBridgeTab(cw int) string {
	t := theme.Active
	in := a.inputs
	r := a.result
	accessAge := a.projector.Policy().PensionAccessAge

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	good := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	bad := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	if !r.RequiresBridge || r.Bridge == nil {
		body := good.Render("No bridge needed") + "\n" + muted.Render(fmt.Sprintf(
			"Your pension is accessible when you retire (age %d ≥ %d).", in.TargetRetirementAge, accessAge))
		return components.ContentCard("ISA bridge", body, cw)
	}

	br := r.Bridge
	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Bridge period", Value: cli.FormatYearCount(br.GapYears), Note: fmt.Sprintf("age %d → %d", in.TargetRetirementAge, accessAge)},
		{Label: "Bridge needed", Value: cli.FormatGBP(br.AmountNeeded), Note: cli.FormatGBP(r.AnnualExpenses) + "/yr"},
		{Label: "Accessible at retirement", Value: cli.FormatGBP(br.ProjectedAccessible), Note: "ISA + GIA"},
	}, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	labelW := 18
	noteW := 14
	barW := max(10, innerW-labelW-noteW-8)

	share := func(v float64) float64 {
		if br.AmountNeeded <= 0 {
			return 1
		}
		return v / br.AmountNeeded
	}
	bars := strings.Join([]string{
		components.LabeledBar("ISA (tax-free)", share(br.ProjectedISA), cli.FormatGBP(br.ProjectedISA), labelW, barW),
		components.LabeledBar("GIA (CGT)", share(br.ProjectedGIA), cli.FormatGBP(br.ProjectedGIA), labelW, barW),
		components.LabeledBar("Total accessible", share(br.ProjectedAccessible), cli.FormatGBP(br.ProjectedAccessible), labelW, barW),
	}, "\n")

	var verdict string
	if br.Viable {
		verdict = good.Render("✓ Bridge covered")
	} else {
		verdict = bad.Render("✗ Shortfall " + cli.FormatGBP(br.Shortfall))
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("ISA bridge (age %d → %d)", in.TargetRetirementAge, accessAge),
		bars+"\n\n"+verdict, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("", muted.Render(
		"Pension wealth is locked until the access age. ISA and GIA balances must fund spending in the gap."), cw))

	return b.String()
}
