// Package format provides the currency and percentage formatting and parsing
// rules for calculator fields.
//
// There are three distinct currency renderings which must not be conflated:
// InputCurrency for live-edit field display (grouped, no decimals), Currency
// for read-only results (grouped, "$", exactly two decimals), and
// ShortCurrency for chart-axis labels (single magnitude suffix).
//
// Parsing fails soft: malformed text yields 0, never an error, because a
// calculator must keep computing through partial keystroke input.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/refi-calc/refi-calc/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// InputCurrency renders a value for an editable currency field: thousands
// separators, no decimal places (e.g., 500000 -> "500,000").
func InputCurrency(amount float64) string {
	return printer.Sprintf("%.0f", amount)
}

// Currency renders a result value with a dollar sign, thousands separators,
// and exactly two decimals, sign before the dollar sign (e.g., "-$1,234.50").
// Non-finite values render as their float text ("NaN", "+Inf") since the
// engine surfaces them rather than erroring.
func Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	formatted := groupThousands(decimal.NewFromFloat(math.Abs(amount)).StringFixed(2))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// ShortCurrency renders a value for chart-axis labels with a magnitude
// suffix: "b" (>= 1e9, one decimal), "m" (>= 1e6, one decimal), "k" (>= 1e3,
// no decimals), otherwise a plain integer. Sign goes before the dollar sign.
func ShortCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)

	switch {
	case abs >= 1e9:
		return sign + "$" + strconv.FormatFloat(abs/1e9, 'f', 1, 64) + "b"
	case abs >= 1e6:
		return sign + "$" + strconv.FormatFloat(abs/1e6, 'f', 1, 64) + "m"
	case abs >= 1e3:
		return sign + "$" + strconv.FormatFloat(abs/1e3, 'f', 0, 64) + "k"
	default:
		return sign + "$" + strconv.FormatFloat(abs, 'f', 0, 64)
	}
}

// ParseCurrency parses user-typed currency text. Grouping commas and
// surrounding space are stripped; anything that still fails to parse as a
// decimal number yields 0.
func ParseCurrency(text string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// ParsePercent parses user-typed percentage text into a decimal fraction.
// "%" characters and surrounding space are stripped, the remainder is parsed
// fail-soft to 0, and the result is divided by 100 ("6.5" -> 0.065).
func ParsePercent(text string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "%", ""))
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value / 100
}

// Percent renders a decimal fraction as its shortest human-percentage text
// without a "%" suffix (0.065 -> "6.5"). Used when a percent field display
// resynchronizes from the numeric value. Non-finite fractions render as
// their float text.
func Percent(fraction float64) string {
	if !mathutil.IsFinite(fraction) {
		return strconv.FormatFloat(fraction, 'f', -1, 64)
	}
	return decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).String()
}

func groupThousands(fixed string) string {
	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
