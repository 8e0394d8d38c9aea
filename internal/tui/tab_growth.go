package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/tui/components"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

const (
	minGrowthYears = 10
	maxGrowthYears = 40
)

// growthSeries projects total net worth at the end of each year from now.
// It runs a little past the projected FIRE year so the crossing is visible.
func (a App) growthSeries() ([]float64, []string) {
	in := a.inputs
	n := max(minGrowthYears, in.TargetRetirementAge-in.CurrentAge)
	if y, ok := a.result.YearsToTarget.Value(); ok && int(y)+3 > n {
		n = int(y) + 3
	}
	n = min(n, maxGrowthYears)

	values := make([]float64, n)
	labels := make([]string, n)
	for i := range values {
		year := float64(i + 1)
		values[i] = fire.FutureValue(in.TotalNetWorth(), in.TotalMonthlyContributions(), in.ExpectedReturn, year)
		labels[i] = strconv.Itoa(in.CurrentAge + i + 1)
	}
	return values, labels
}

func (a App) renderGrowthTab(cw, h int) string {
	t := theme.Active
	in := a.inputs
	r := a.result
	var b strings.Builder

	values, labels := a.growthSeries()
	chartH := max(8, h-8)
	if a.isCompactLayout() {
		chartH = max(6, h-10)
	}
	title := fmt.Sprintf("Projected net worth by age (%g%% return)", in.ExpectedReturn)
	b.WriteString(components.ContentCard(title,
		components.BarChart(values, labels, t.Blue, r.FireNumber, components.CardInnerWidth(cw), chartH),
		cw))
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	marker := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	legend := marker.Render("╌╌ ") + muted.Render("FIRE number "+cli.FormatGBP(r.FireNumber))
	if len(values) > 0 {
		last := len(values) - 1
		legend += muted.Render(fmt.Sprintf("    Age %s: %s", labels[last], cli.FormatGBP(values[last])))
	}
	b.WriteString(components.ContentCard("", legend, cw))

	return b.String()
}
