// Package field models the paired numeric/display state of an editable
// calculator field. The numeric value is the canonical input to the engine;
// the display string is what the user is currently typing, which may be an
// intermediate state (e.g. "1,50" or "6.") that is not yet a valid number.
package field

import (
	"strings"

	"github.com/refi-calc/refi-calc/pkg/format"
)

// CurrencyField holds a currency amount and its editable display text.
type CurrencyField struct {
	Value   float64
	Display string
}

// SetText applies a raw edit to the field: the text is parsed fail-soft, the
// numeric value stored, and the display reformatted with grouping separators.
// The returned cursor position is the given one shifted by the change in
// rendered length, so inserted or removed separators do not visually displace
// the caret. The result is clamped to the display bounds.
func (f *CurrencyField) SetText(raw string, cursor int) int {
	f.Value = format.ParseCurrency(raw)
	f.Display = format.InputCurrency(f.Value)

	cursor += len(f.Display) - len(raw)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(f.Display) {
		cursor = len(f.Display)
	}
	return cursor
}

// Sync resynchronizes the display text from the numeric value.
func (f *CurrencyField) Sync() {
	f.Display = format.InputCurrency(f.Value)
}

// PercentField holds a rate as a decimal fraction alongside its editable
// display text, which is the human percentage without a "%" suffix.
type PercentField struct {
	Value   float64
	Display string
}

// SetText applies a raw edit to the field: "%" characters are stripped, the
// remainder parsed fail-soft and divided by 100, and the stripped text kept
// verbatim as the display. Percent fields do not reformat per keystroke;
// doing so would fight decimal-point entry.
func (f *PercentField) SetText(raw string) {
	f.Value = format.ParsePercent(raw)
	f.Display = strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
}

// Sync resynchronizes the display text from the numeric value.
func (f *PercentField) Sync() {
	f.Display = format.Percent(f.Value)
}
