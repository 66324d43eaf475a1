// Package output provides utilities for formatting and displaying
// refinance-comparison results.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/refi-calc/refi-calc/internal/refinance"
	"github.com/refi-calc/refi-calc/pkg/format"
	"github.com/refi-calc/refi-calc/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Breakeven renders the breakeven horizon for display. The engine returns the
// raw quotient, which is meaningless when there are no monthly savings; this
// is where that interpretation happens.
func Breakeven(result refinance.CalculationResult) string {
	if !mathutil.IsPositive(result.MonthlySavings) {
		return "n/a (no monthly savings)"
	}

	months := strconv.FormatFloat(result.MonthsToBreakeven, 'f', 1, 64)
	unit := "months"
	if months == "1.0" {
		unit = "month"
	}
	return months + " " + unit
}

// PrettyString returns a human-readable table of the comparison.
func PrettyString(inputs refinance.MortgageInputs, result refinance.CalculationResult) string {
	p := message.NewPrinter(language.English)

	var builder strings.Builder
	builder.WriteString("--- Refinance comparison ---\n")
	_, _ = p.Fprintf(&builder, "Loan of %s over %d years at %s%%, %d payments made\n",
		format.InputCurrency(inputs.OriginalLoanSize), inputs.OriginalLoanTerm,
		format.Percent(inputs.Rate), inputs.MonthsPaid)
	_, _ = p.Fprintf(&builder, "Offer of %d years at %s%% with %s%% closing costs\n\n",
		inputs.NewTerm, format.Percent(inputs.NewRate), format.Percent(inputs.RefiCostRate))

	rows := []struct {
		label string
		value string
	}{
		{"Original monthly payment", format.Currency(result.OriginalMonthlyPayment)},
		{"Current mortgage balance", format.Currency(result.CurrentMortgageBalance)},
		{"Current equity", format.Currency(result.CurrentEquity)},
		{"New loan size", format.Currency(result.NewLoanSize)},
		{"Refinance cost", format.Currency(result.RefiCost)},
		{"New monthly payment", format.Currency(result.NewMonthlyPayment)},
		{"Monthly savings", format.Currency(result.MonthlySavings)},
		{"Total savings", format.Currency(result.TotalSavings)},
		{"Breakeven", Breakeven(result)},
	}
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("%-24s | %s\n", row.label, row.value))
	}

	return builder.String()
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(inputs refinance.MortgageInputs, result refinance.CalculationResult) {
	fmt.Print(PrettyString(inputs, result))
}

// CsvString returns the comparison in comma-separated value format with raw
// two-decimal numbers, one metric per row.
func CsvString(result refinance.CalculationResult) string {
	var builder strings.Builder
	builder.WriteString("\"metric\",\"value\"\n")

	rows := []struct {
		metric string
		value  float64
	}{
		{"originalMonthlyPayment", result.OriginalMonthlyPayment},
		{"currentMortgageBalance", result.CurrentMortgageBalance},
		{"currentEquity", result.CurrentEquity},
		{"newLoanSize", result.NewLoanSize},
		{"refiCost", result.RefiCost},
		{"newMonthlyPayment", result.NewMonthlyPayment},
		{"monthlySavings", result.MonthlySavings},
		{"totalSavings", result.TotalSavings},
		{"monthsToBreakeven", result.MonthsToBreakeven},
	}
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("\"%s\",\"%.2f\"\n", row.metric, row.value))
	}

	return builder.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result refinance.CalculationResult) {
	fmt.Print(CsvString(result))
}

// ResultPayload is the JSON shape of a calculation result shared by the CLI
// and the HTTP API. MonthsToBreakeven is null when it is not a finite number,
// since JSON cannot carry infinities.
type ResultPayload struct {
	OriginalMonthlyPayment float64  `json:"originalMonthlyPayment"`
	CurrentMortgageBalance float64  `json:"currentMortgageBalance"`
	CurrentEquity          float64  `json:"currentEquity"`
	NewLoanSize            float64  `json:"newLoanSize"`
	RefiCost               float64  `json:"refiCost"`
	NewMonthlyPayment      float64  `json:"newMonthlyPayment"`
	MonthlySavings         float64  `json:"monthlySavings"`
	TotalSavings           float64  `json:"totalSavings"`
	MonthsToBreakeven      *float64 `json:"monthsToBreakeven"`
}

// NewResultPayload maps a calculation result onto its JSON shape.
func NewResultPayload(result refinance.CalculationResult) ResultPayload {
	payload := ResultPayload{
		OriginalMonthlyPayment: result.OriginalMonthlyPayment,
		CurrentMortgageBalance: result.CurrentMortgageBalance,
		CurrentEquity:          result.CurrentEquity,
		NewLoanSize:            result.NewLoanSize,
		RefiCost:               result.RefiCost,
		NewMonthlyPayment:      result.NewMonthlyPayment,
		MonthlySavings:         result.MonthlySavings,
		TotalSavings:           result.TotalSavings,
	}
	if mathutil.IsFinite(result.MonthsToBreakeven) {
		months := result.MonthsToBreakeven
		payload.MonthsToBreakeven = &months
	}
	return payload
}

// FormattedPayload carries every result figure as a display string.
type FormattedPayload struct {
	OriginalMonthlyPayment string `json:"originalMonthlyPayment"`
	CurrentMortgageBalance string `json:"currentMortgageBalance"`
	CurrentEquity          string `json:"currentEquity"`
	NewLoanSize            string `json:"newLoanSize"`
	RefiCost               string `json:"refiCost"`
	NewMonthlyPayment      string `json:"newMonthlyPayment"`
	MonthlySavings         string `json:"monthlySavings"`
	TotalSavings           string `json:"totalSavings"`
	MonthsToBreakeven      string `json:"monthsToBreakeven"`
}

// NewFormattedPayload renders a calculation result through the read-only
// display formatting rules.
func NewFormattedPayload(result refinance.CalculationResult) FormattedPayload {
	return FormattedPayload{
		OriginalMonthlyPayment: format.Currency(result.OriginalMonthlyPayment),
		CurrentMortgageBalance: format.Currency(result.CurrentMortgageBalance),
		CurrentEquity:          format.Currency(result.CurrentEquity),
		NewLoanSize:            format.Currency(result.NewLoanSize),
		RefiCost:               format.Currency(result.RefiCost),
		NewMonthlyPayment:      format.Currency(result.NewMonthlyPayment),
		MonthlySavings:         format.Currency(result.MonthlySavings),
		TotalSavings:           format.Currency(result.TotalSavings),
		MonthsToBreakeven:      Breakeven(result),
	}
}

// JSONString returns the comparison as indented JSON with stable field names
// matching the HTTP API's payload.
func JSONString(inputs refinance.MortgageInputs, result refinance.CalculationResult) (string, error) {
	payload := struct {
		Inputs refinance.MortgageInputs `json:"inputs"`
		Result ResultPayload            `json:"result"`
	}{
		Inputs: inputs,
		Result: NewResultPayload(result),
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}
