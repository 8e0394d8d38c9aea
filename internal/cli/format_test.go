package cli

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "£0"},
		{999.49, "£999"},
		{1234567.5, "£1,234,568"},
		{600000, "£600,000"},
		{-250.5, "-£251"},
		{math.Inf(1), "∞"},
		{1e20, "£100,000,000,000,000,000,000"},
		{-1e20, "-£100,000,000,000,000,000,000"},
	}
	for _, tt := range tests {
		if got := FormatGBP(tt.in); got != tt.want {
			t.Errorf("FormatGBP(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(4); got != "4.0%" {
		t.Fatalf("FormatPercent(4) = %q, want 4.0%%", got)
	}
	if got := FormatPercent(43.75); got != "43.8%" {
		t.Fatalf("FormatPercent(43.75) = %q, want 43.8%%", got)
	}
}

func TestFormatMonthYear(t *testing.T) {
	d := time.Date(2031, time.March, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatMonthYear(d); got != "March 2031" {
		t.Fatalf("FormatMonthYear = %q, want March 2031", got)
	}
}

func TestFormatYears(t *testing.T) {
	tests := []struct {
		in   fire.Years
		want string
	}{
		{fire.Unreachable, "Never"},
		{fire.Reached(0), "Now"},
		{fire.Reached(19.5), "19.5 years"},
		{fire.Reached(22), "22.0 years"},
	}
	for _, tt := range tests {
		if got := FormatYears(tt.in); got != tt.want {
			t.Errorf("FormatYears(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderResult_BridgeSection(t *testing.T) {
	in := model.DefaultInputs()
	p := fire.NewProjector(fire.DefaultPolicy(), func() time.Time {
		return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	})
	out := RenderResult(in, p.Project(in.Snapshot()), fire.DefaultPensionAccessAge)

	for _, want := range []string{"£600,000", "ISA bridge (age 55 → 57)", "Bridge period", "Calculation breakdown"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderResult missing %q", want)
		}
	}
}

func TestRenderResult_NoBridge(t *testing.T) {
	in := model.DefaultInputs()
	in.TargetRetirementAge = 60
	out := RenderResult(in, fire.Project(in.Snapshot()), fire.DefaultPensionAccessAge)

	if !strings.Contains(out, "No bridge needed") {
		t.Fatalf("RenderResult missing no-bridge line:\n%s", out)
	}
}

func TestRenderTable_AlignsPoundSign(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "£1,000"}, {"y", "12"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	w := -1
	for _, l := range lines {
		lw := len([]rune(stripANSI(l)))
		if w == -1 {
			w = lw
		}
		if lw != w {
			t.Fatalf("row widths differ (%d vs %d):\n%s", lw, w, out)
		}
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
