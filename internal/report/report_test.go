package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Inputs)
	}{
		{"with bridge", func(*model.Inputs) {}},
		{"no bridge", func(in *model.Inputs) { in.TargetRetirementAge = 60 }},
		{"unreachable", func(in *model.Inputs) {
			in.MonthlyISAContributions = 0
			in.MonthlyPensionContributions = 0
			in.PensionBalance = 1000
			in.ExpectedReturn = 0
		}},
	}

	generated := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInputs()
			tt.mutate(&in)
			res := fire.NewProjector(fire.DefaultPolicy(), func() time.Time { return generated }).Project(in.Snapshot())

			var buf bytes.Buffer
			if err := WritePDF(&buf, in, res, fire.DefaultPensionAccessAge, generated); err != nil {
				t.Fatalf("WritePDF: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
				t.Fatalf("output starts %q, want %%PDF", buf.Bytes()[:min(8, buf.Len())])
			}
		})
	}
}

func TestWriterText_EncodesCP1252(t *testing.T) {
	w := newWriter(fpdf.New("P", "mm", "A4", ""))
	tests := []struct {
		in, want string
	}{
		{"£1,000", "\xa31,000"},
		{"£30,000/yr ÷ 4%", "\xa330,000/yr \xf7 4%"},
		{"age 55 → 57", "age 55 to 57"},
		{"∞", "n/a"},
	}
	for _, tt := range tests {
		if got := w.text(tt.in); got != tt.want {
			t.Errorf("text(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
