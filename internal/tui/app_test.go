package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
	"github.com/theirongolddev/fyfire/internal/tui/components"
)

func newTestApp(t *testing.T, save SaveFunc) App {
	t.Helper()
	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return NewApp(fire.NewProjector(fire.DefaultPolicy(), clock), model.DefaultInputs(), save)
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var m tea.Model
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		}
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

func TestISAContributionKeys(t *testing.T) {
	a := newTestApp(t, nil)
	before := a.Result()

	a, _ = press(t, a, "+", "+")
	if got := a.Inputs().MonthlyISAContributions; got != 600 {
		t.Fatalf("ISA contributions = %v, want 600", got)
	}
	if a.Result().TotalMonthlyContributions != before.TotalMonthlyContributions+100 {
		t.Fatalf("result not recomputed: contributions = %v", a.Result().TotalMonthlyContributions)
	}
	if !a.dirty {
		t.Fatal("app should be dirty after an adjustment")
	}

	for range 20 {
		a, _ = press(t, a, "-")
	}
	if got := a.Inputs().MonthlyISAContributions; got != 0 {
		t.Fatalf("ISA contributions = %v, want floor of 0", got)
	}
}

func TestReturnKeysClampToConstraints(t *testing.T) {
	a := newTestApp(t, nil)

	a, _ = press(t, a, "]")
	if got := a.Inputs().ExpectedReturn; got != 6.5 {
		t.Fatalf("return = %v, want 6.5", got)
	}
	for range 10 {
		a, _ = press(t, a, "]")
	}
	if got := a.Inputs().ExpectedReturn; got != model.Constraints.ExpectedReturn.Max {
		t.Fatalf("return = %v, want max %v", got, model.Constraints.ExpectedReturn.Max)
	}
	for range 20 {
		a, _ = press(t, a, "[")
	}
	if got := a.Inputs().ExpectedReturn; got != model.Constraints.ExpectedReturn.Min {
		t.Fatalf("return = %v, want min %v", got, model.Constraints.ExpectedReturn.Min)
	}
}

func TestWithdrawalKeysStepByTenth(t *testing.T) {
	a := newTestApp(t, nil)

	a, _ = press(t, a, ">", ">", ">")
	if got := a.Inputs().WithdrawalRate; got != 4.3 {
		t.Fatalf("withdrawal rate = %v, want 4.3", got)
	}
	// 2000*12 / 0.043
	want := fire.FireNumber(2000, 4.3)
	if got := a.Result().FireNumber; got != want {
		t.Fatalf("FireNumber = %v, want %v", got, want)
	}

	for range 30 {
		a, _ = press(t, a, "<")
	}
	if got := a.Inputs().WithdrawalRate; got != 3 {
		t.Fatalf("withdrawal rate = %v, want 3", got)
	}
}

func TestSaveKey(t *testing.T) {
	var saved model.Inputs
	a := newTestApp(t, func(in model.Inputs) error {
		saved = in
		return nil
	})

	a, _ = press(t, a, "+")
	a, cmd := press(t, a, "s")
	if cmd == nil {
		t.Fatal("s should return a save command")
	}
	msg := cmd()
	if saved.MonthlyISAContributions != 550 {
		t.Fatalf("saved ISA contributions = %v, want 550", saved.MonthlyISAContributions)
	}

	m, _ := a.Update(msg)
	a = m.(App)
	if a.dirty || a.status != "saved" {
		t.Fatalf("after save: dirty=%v status=%q", a.dirty, a.status)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	a := newTestApp(t, func(model.Inputs) error { return errors.New("disk full") })

	a, _ = press(t, a, "+")
	a, cmd := press(t, a, "s")
	m, _ := a.Update(cmd())
	a = m.(App)
	if !a.dirty {
		t.Fatal("failed save should leave the app dirty")
	}
	if !strings.Contains(a.status, "disk full") {
		t.Fatalf("status = %q, want the save error", a.status)
	}
}

func TestSaveDisabled(t *testing.T) {
	a := newTestApp(t, nil)
	_, cmd := press(t, a, "s")
	if cmd != nil {
		t.Fatal("save without a SaveFunc should not return a command")
	}
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t, nil)

	a, _ = press(t, a, "b")
	if a.activeTab != 2 {
		t.Fatalf("activeTab = %d, want 2", a.activeTab)
	}
	a, _ = press(t, a, "right")
	if a.activeTab != 0 {
		t.Fatalf("activeTab = %d, want wrap to 0", a.activeTab)
	}
	a, _ = press(t, a, "left")
	if a.activeTab != 2 {
		t.Fatalf("activeTab = %d, want wrap to 2", a.activeTab)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 1

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + components.TabSeparatorWidth
		}
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t, nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = m.(App)

	for i, want := range []string{"FIRE number", "Projected net worth", "ISA bridge"} {
		a.activeTab = i
		if view := a.View(); !strings.Contains(view, want) {
			t.Errorf("tab %d view missing %q", i, want)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t, nil)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if view := m.(App).View(); !strings.Contains(view, "too narrow") {
		t.Fatalf("narrow view = %q", view)
	}
}

func TestStepRange(t *testing.T) {
	r := model.Constraints.WithdrawalRate
	tests := []struct {
		v    float64
		dir  int
		want float64
	}{
		{4, 1, 4.1},
		{4.1, 1, 4.2},
		{3, -1, 3},
		{5, 1, 5},
	}
	for _, tt := range tests {
		if got := stepRange(r, tt.v, tt.dir); got != tt.want {
			t.Errorf("stepRange(%v, %d) = %v, want %v", tt.v, tt.dir, got, tt.want)
		}
	}
}
