// Package tui provides the interactive Bubble Tea what-if dashboard for fyfire.
package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
	"github.com/theirongolddev/fyfire/internal/tui/components"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

// SaveFunc persists the adjusted inputs.
type SaveFunc func(model.Inputs) error

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	projector *fire.Projector
	save      SaveFunc

	inputs model.Inputs
	result fire.Result
	dirty  bool
	status string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5

	// ISAContributionStep is how much +/- moves the monthly ISA contribution.
	ISAContributionStep = 50.0
)

// NewApp creates the dashboard for in. save may be nil, which disables saving.
func NewApp(p *fire.Projector, in model.Inputs, save SaveFunc) App {
	a := App{
		projector: p,
		save:      save,
		inputs:    in,
	}
	a.recompute()
	return a
}

// Inputs returns the inputs as currently adjusted.
func (a App) Inputs() model.Inputs {
	return a.inputs
}

// Result returns the projection for the current inputs.
func (a App) Result() fire.Result {
	return a.result
}

func (a *App) recompute() {
	a.result = a.projector.Project(a.inputs.Snapshot())
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case SavedMsg:
		if msg.Err != nil {
			a.status = "save failed: " + msg.Err.Error()
			return a, nil
		}
		a.dirty = false
		a.status = "saved"
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg.String())
	}

	return a, nil
}

func (a App) updateKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "s":
		if a.save == nil {
			a.status = "saving disabled"
			return a, nil
		}
		a.status = "saving…"
		return a, saveCmd(a.save, a.inputs)

	case "+", "=":
		a.adjust(func(in *model.Inputs) {
			in.MonthlyISAContributions += ISAContributionStep
		})
	case "-", "_":
		a.adjust(func(in *model.Inputs) {
			in.MonthlyISAContributions = math.Max(0, in.MonthlyISAContributions-ISAContributionStep)
		})
	case "]":
		a.adjust(func(in *model.Inputs) {
			in.ExpectedReturn = stepRange(model.Constraints.ExpectedReturn, in.ExpectedReturn, 1)
		})
	case "[":
		a.adjust(func(in *model.Inputs) {
			in.ExpectedReturn = stepRange(model.Constraints.ExpectedReturn, in.ExpectedReturn, -1)
		})
	case ">", ".":
		a.adjust(func(in *model.Inputs) {
			in.WithdrawalRate = stepRange(model.Constraints.WithdrawalRate, in.WithdrawalRate, 1)
		})
	case "<", ",":
		a.adjust(func(in *model.Inputs) {
			in.WithdrawalRate = stepRange(model.Constraints.WithdrawalRate, in.WithdrawalRate, -1)
		})

	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

// adjust applies fn to the inputs and re-projects if anything changed.
func (a *App) adjust(fn func(*model.Inputs)) {
	before := a.inputs
	fn(&a.inputs)
	if a.inputs == before {
		return
	}
	a.dirty = true
	a.status = ""
	a.recompute()
}

// stepRange moves v by dir steps of r, snapped to the step grid and clamped.
func stepRange(r model.Range, v float64, dir int) float64 {
	next := v + float64(dir)*r.Step
	next = math.Round(next/r.Step) * r.Step
	// Snap away float noise such as 4.300000000000001.
	next = math.Round(next*1000) / 1000
	return r.Clamp(next)
}

func saveCmd(save SaveFunc, in model.Inputs) tea.Cmd {
	return func() tea.Msg {
		return SavedMsg{Err: save(in)}
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fyfire needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"What if", []struct{ key, desc string }{
			{"+ -", fmt.Sprintf("ISA contribution ±£%.0f/mo", ISAContributionStep)},
			{"] [", fmt.Sprintf("Expected return ±%g%%", model.Constraints.ExpectedReturn.Step)},
			{"> <", fmt.Sprintf("Withdrawal rate ±%g%%", model.Constraints.WithdrawalRate.Step)},
		}},
		{"Navigation", []struct{ key, desc string }{
			{"d g b", "Jump to tab"},
			{"← →", "Previous / Next tab"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"s", "Save inputs"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := lipgloss.NewStyle().Background(t.Surface).Width(w).Render(components.RenderTabBar(a.activeTab))

	status := a.status
	if status == "" && a.dirty {
		status = "unsaved changes"
	}
	statusBar := components.RenderStatusBar(w, "[+-]isa  [][]return  [<>]withdrawal  [s]ave  [?]help  [q]uit", status)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderDashboardTab(cw)
	case 1:
		content = a.renderGrowthTab(cw, contentH)
	case 2:
		content = a.renderBridgeTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the width rules RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + components.TabSeparatorWidth
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
