// Package report renders a one-page PDF summary of a projection.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

const (
	pageMargin   = 15.0
	contentWidth = 210 - 2*pageMargin
	labelWidth   = 110.0
)

// symbols swaps characters cp1252 has no code for with ASCII stand-ins.
var symbols = strings.NewReplacer(
	"∞", "n/a",
	"→", "to",
	"≥", ">=",
	"—", "-",
)

// writer wraps the fpdf document with the section helpers the report uses.
type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newWriter(pdf *fpdf.Fpdf) writer {
	return writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// text encodes s for the core fonts.
func (w writer) text(s string) string {
	return w.tr(symbols.Replace(s))
}

func (w writer) heading(text string) {
	w.pdf.Ln(6)
	w.pdf.SetFont("Arial", "B", 12)
	w.pdf.SetTextColor(0, 51, 102)
	w.pdf.SetFillColor(245, 247, 250)
	w.pdf.CellFormat(contentWidth, 8, w.text(text), "1", 1, "L", true, 0, "")
}

func (w writer) row(label, value string) {
	w.pdf.SetFont("Arial", "", 11)
	w.pdf.SetTextColor(50, 50, 50)
	w.pdf.CellFormat(labelWidth, 7, w.text(label), "L", 0, "L", false, 0, "")
	w.pdf.CellFormat(contentWidth-labelWidth, 7, w.text(value), "R", 1, "R", false, 0, "")
}

func (w writer) close() {
	w.pdf.CellFormat(contentWidth, 1, "", "LRB", 1, "C", false, 0, "")
}

func (w writer) note(text string, r, g, b int) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Arial", "I", 10)
	w.pdf.SetTextColor(r, g, b)
	w.pdf.MultiCell(contentWidth, 5, w.text(text), "", "L", false)
}

// WritePDF writes an A4 summary of res to out.
func WritePDF(out io.Writer, in model.Inputs, res fire.Result, accessAge int, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("FIRE projection", true)
	pdf.AddPage()

	w := newWriter(pdf)

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, "FIRE Projection", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated %s", generatedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 28)
	pdf.SetTextColor(36, 131, 123)
	pdf.CellFormat(contentWidth, 14, w.text(cli.FormatGBP(res.FireNumber)), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(contentWidth, 6, w.text(fmt.Sprintf("%s/yr ÷ %g%% withdrawal rate",
		cli.FormatGBP(res.AnnualExpenses), in.WithdrawalRate)), "", 1, "C", false, 0, "")

	w.heading("Where you are")
	w.row("Net worth", cli.FormatGBP(res.TotalNetWorth))
	w.row("Progress", cli.FormatPercent(res.ProgressPercent))
	w.row("Gap to close", cli.FormatGBP(res.GapToTarget))
	w.row("Monthly contributions", cli.FormatGBP(res.TotalMonthlyContributions))
	w.row("Savings rate", cli.FormatPercent(res.SavingsRatePercent))
	w.row("Expected annual return", cli.FormatPercent(in.ExpectedReturn))
	w.close()

	w.heading("Horizon")
	w.row("Target retirement age", fmt.Sprintf("%d (in %d yrs)", in.TargetRetirementAge, max(0, res.YearsToRetirement)))
	w.row("Years to FIRE", cli.FormatYears(res.YearsToTarget))
	switch {
	case res.AlreadyAtTarget:
		w.row("Projected date", "Already FI")
	case res.ProjectedTargetDate != nil:
		w.row("Projected date", cli.FormatMonthYear(*res.ProjectedTargetDate))
	default:
		w.row("Projected date", "-")
	}
	if res.ProjectedTargetAge != nil {
		w.row("Age at FIRE number", fmt.Sprintf("%.0f", *res.ProjectedTargetAge))
	}
	w.close()

	if !res.YearsToTarget.Reachable() {
		w.note("At these contributions and returns the FIRE number is not reached within 100 years.", 209, 77, 65)
	}

	if res.RequiresBridge && res.Bridge != nil {
		br := res.Bridge
		w.heading(fmt.Sprintf("ISA bridge (age %d → %d)", in.TargetRetirementAge, accessAge))
		w.row("Bridge period", fmt.Sprintf("%d years", br.GapYears))
		w.row("Bridge needed", cli.FormatGBP(br.AmountNeeded))
		w.row("ISA at retirement (tax-free)", cli.FormatGBP(br.ProjectedISA))
		w.row("GIA at retirement (subject to CGT)", cli.FormatGBP(br.ProjectedGIA))
		w.row("Total accessible", cli.FormatGBP(br.ProjectedAccessible))
		w.close()
		if br.Viable {
			w.note("Bridge covered: ISA and GIA fund the gap to pension access.", 135, 154, 57)
		} else {
			w.note(fmt.Sprintf("Bridge shortfall of %s between retirement (%d) and pension access (%d).",
				cli.FormatGBP(br.Shortfall), in.TargetRetirementAge, accessAge), 218, 112, 44)
		}
	} else {
		w.note(fmt.Sprintf("No bridge needed: pension is accessible at retirement (age %d ≥ %d).",
			in.TargetRetirementAge, accessAge), 135, 154, 57)
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
