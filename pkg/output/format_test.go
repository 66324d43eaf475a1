package output

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/refi-calc/refi-calc/internal/refinance"
)

func scenarioInputs() refinance.MortgageInputs {
	return refinance.MortgageInputs{
		OriginalLoanSize: 500000,
		OriginalLoanTerm: 30,
		Rate:             0.065,
		MonthsPaid:       0,
		DownPayment:      100000,
		NewRate:          0.05,
		NewTerm:          30,
		RefiCostRate:     0.01,
	}
}

func TestBreakeven(t *testing.T) {
	tests := []struct {
		name     string
		result   refinance.CalculationResult
		expected string
	}{
		{"Typical horizon", refinance.CalculationResult{MonthlySavings: 476.23, MonthsToBreakeven: 10.5}, "10.5 months"},
		{"Singular month", refinance.CalculationResult{MonthlySavings: 5000, MonthsToBreakeven: 1.0}, "1.0 month"},
		{"Rounded plural", refinance.CalculationResult{MonthlySavings: 100, MonthsToBreakeven: 23.97}, "24.0 months"},
		{"No savings suppressed", refinance.CalculationResult{MonthlySavings: -50, MonthsToBreakeven: -100}, "n/a (no monthly savings)"},
		{"Zero savings suppressed", refinance.CalculationResult{MonthlySavings: 0, MonthsToBreakeven: math.Inf(1)}, "n/a (no monthly savings)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Breakeven(tt.result); result != tt.expected {
				t.Errorf("Breakeven(%+v) = %q, expected %q", tt.result, result, tt.expected)
			}
		})
	}
}

func TestPrettyString(t *testing.T) {
	inputs := scenarioInputs()
	result := refinance.Calculate(inputs)

	text := PrettyString(inputs, result)

	expectedFragments := []string{
		"--- Refinance comparison ---",
		"500,000 over 30 years at 6.5%",
		"Original monthly payment",
		"$3,160.34",
		"New monthly payment",
		"$2,684.11",
		"Monthly savings",
		"$476.23",
		"Breakeven",
		"10.5 months",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(text, fragment) {
			t.Errorf("PrettyString output missing %q:\n%s", fragment, text)
		}
	}
}

func TestPrettyStringSuppressesBreakevenWithoutSavings(t *testing.T) {
	inputs := scenarioInputs()
	inputs.NewRate = 0.08
	result := refinance.Calculate(inputs)

	text := PrettyString(inputs, result)
	if !strings.Contains(text, "n/a (no monthly savings)") {
		t.Errorf("expected breakeven suppression for negative savings:\n%s", text)
	}
	if !strings.Contains(text, "-$") {
		t.Errorf("expected negative currency values to be surfaced:\n%s", text)
	}
}

func TestPrettyStringZeroTermRendersNonFinite(t *testing.T) {
	// A zero-year term divides by zero in the payment formula; the table must
	// surface the resulting NaN/Inf figures rather than panic.
	inputs := scenarioInputs()
	inputs.OriginalLoanTerm = 0
	result := refinance.Calculate(inputs)

	text := PrettyString(inputs, result)
	if !strings.Contains(text, "Inf") && !strings.Contains(text, "NaN") {
		t.Errorf("expected non-finite figures in output:\n%s", text)
	}
}

func TestPrettyFormat(t *testing.T) {
	inputs := scenarioInputs()
	result := refinance.Calculate(inputs)

	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrettyFormat(inputs, result)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	if !strings.Contains(buf.String(), "--- Refinance comparison ---") {
		t.Errorf("PrettyFormat missing header, got:\n%s", buf.String())
	}
}

func TestCsvString(t *testing.T) {
	result := refinance.Calculate(scenarioInputs())

	text := CsvString(result)
	lines := strings.Split(strings.TrimSpace(text), "\n")

	if lines[0] != "\"metric\",\"value\"" {
		t.Errorf("CSV header = %q", lines[0])
	}
	if len(lines) != 10 {
		t.Errorf("expected 10 CSV lines, got %d:\n%s", len(lines), text)
	}
	if !strings.Contains(text, "\"originalMonthlyPayment\",\"3160.34\"") {
		t.Errorf("CSV missing raw payment row:\n%s", text)
	}
	if !strings.Contains(text, "\"newMonthlyPayment\",\"2684.11\"") {
		t.Errorf("CSV missing raw new payment row:\n%s", text)
	}
}

func TestCsvFormat(t *testing.T) {
	result := refinance.Calculate(scenarioInputs())

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	CsvFormat(result)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	if !strings.HasPrefix(buf.String(), "\"metric\",\"value\"") {
		t.Errorf("CsvFormat missing header, got:\n%s", buf.String())
	}
}

func TestNewResultPayloadBreakevenNull(t *testing.T) {
	finite := refinance.Calculate(scenarioInputs())
	payload := NewResultPayload(finite)
	if payload.MonthsToBreakeven == nil {
		t.Error("expected finite breakeven to be present")
	}

	infinite := finite
	infinite.MonthsToBreakeven = math.Inf(1)
	payload = NewResultPayload(infinite)
	if payload.MonthsToBreakeven != nil {
		t.Error("expected infinite breakeven to map to nil")
	}
}

func TestJSONString(t *testing.T) {
	inputs := scenarioInputs()
	result := refinance.Calculate(inputs)

	text, err := JSONString(inputs, result)
	if err != nil {
		t.Fatalf("JSONString() error = %v", err)
	}

	var decoded struct {
		Inputs refinance.MortgageInputs `json:"inputs"`
		Result ResultPayload            `json:"result"`
	}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}

	if decoded.Inputs != inputs {
		t.Errorf("inputs round-tripped to %+v", decoded.Inputs)
	}
	if decoded.Result.OriginalMonthlyPayment != result.OriginalMonthlyPayment {
		t.Errorf("originalMonthlyPayment = %v, expected %v",
			decoded.Result.OriginalMonthlyPayment, result.OriginalMonthlyPayment)
	}
	if decoded.Result.MonthsToBreakeven == nil {
		t.Fatal("expected monthsToBreakeven in JSON output")
	}
}

func TestJSONStringInfiniteBreakeven(t *testing.T) {
	// Identical zero-rate terms make savings exactly zero and breakeven +Inf;
	// the JSON encoding must carry null rather than fail.
	inputs := refinance.MortgageInputs{
		OriginalLoanSize: 360000,
		OriginalLoanTerm: 30,
		NewTerm:          30,
		RefiCostRate:     0.01,
	}
	result := refinance.Calculate(inputs)

	text, err := JSONString(inputs, result)
	if err != nil {
		t.Fatalf("JSONString() error = %v", err)
	}
	if !strings.Contains(text, "\"monthsToBreakeven\": null") {
		t.Errorf("expected null breakeven in output:\n%s", text)
	}
}

func TestNewFormattedPayload(t *testing.T) {
	result := refinance.Calculate(scenarioInputs())
	formatted := NewFormattedPayload(result)

	if formatted.OriginalMonthlyPayment != "$3,160.34" {
		t.Errorf("OriginalMonthlyPayment = %q", formatted.OriginalMonthlyPayment)
	}
	if formatted.NewMonthlyPayment != "$2,684.11" {
		t.Errorf("NewMonthlyPayment = %q", formatted.NewMonthlyPayment)
	}
	if formatted.MonthsToBreakeven != "10.5 months" {
		t.Errorf("MonthsToBreakeven = %q", formatted.MonthsToBreakeven)
	}
}
