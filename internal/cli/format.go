// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/theirongolddev/fyfire/internal/fire"
)

var gbPrinter = message.NewPrinter(language.BritishEnglish)

// FormatGBP formats a pound amount rounded to whole pounds.
// e.g., 1234567.5 -> "£1,234,568", -250 -> "-£250"
func FormatGBP(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "—"
	}

	d := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	d = d.Abs()
	// IntPart wraps past int64; larger values are whole already and print
	// exactly through %.0f.
	if d.LessThan(maxWholePounds) {
		return gbPrinter.Sprintf("%s£%d", sign, d.IntPart())
	}
	return gbPrinter.Sprintf("%s£%.0f", sign, d.InexactFloat64())
}

var maxWholePounds = decimal.NewFromInt(math.MaxInt64)

// FormatPercent formats a percentage value to one decimal place.
// e.g., 4 -> "4.0%"
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMonthYear formats a date as "March 2031".
func FormatMonthYear(t time.Time) string {
	return t.Format("January 2006")
}

// FormatYears renders a time-to-target estimate.
func FormatYears(y fire.Years) string {
	v, ok := y.Value()
	switch {
	case !ok:
		return "Never"
	case v == 0:
		return "Now"
	default:
		return fmt.Sprintf("%.1f years", v)
	}
}

// FormatYearCount pluralises a whole number of years: "1 yr", "3 yrs".
func FormatYearCount(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d yr", n)
	}
	return fmt.Sprintf("%d yrs", n)
}
