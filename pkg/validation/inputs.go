// Package validation provides input and configuration validation utilities.
//
// The numeric engine deliberately evaluates whatever it is given, so range
// validation lives here instead: findings are returned as warnings and never
// stop a calculation.
package validation

import (
	"fmt"

	"github.com/refi-calc/refi-calc/internal/refinance"
	"github.com/refi-calc/refi-calc/pkg/constants"
	"github.com/refi-calc/refi-calc/pkg/mathutil"
)

// ValidateInputs inspects mortgage inputs and returns human-readable warnings
// for values that are degenerate or likely mistyped. The calculation proceeds
// regardless; callers surface the warnings alongside the result.
func ValidateInputs(inputs refinance.MortgageInputs) []string {
	var warnings []string

	if inputs.OriginalLoanSize <= 0 {
		warnings = append(warnings, fmt.Sprintf("original loan size %.2f is not positive", inputs.OriginalLoanSize))
	}
	if inputs.OriginalLoanTerm <= 0 {
		warnings = append(warnings, fmt.Sprintf("original loan term %d years is not positive", inputs.OriginalLoanTerm))
	}
	if inputs.NewTerm <= 0 {
		warnings = append(warnings, fmt.Sprintf("new loan term %d years is not positive", inputs.NewTerm))
	}
	if inputs.MonthsPaid < 0 {
		warnings = append(warnings, fmt.Sprintf("months paid %d is negative", inputs.MonthsPaid))
	}
	if inputs.OriginalLoanTerm > 0 && inputs.MonthsPaid >= inputs.OriginalLoanTerm*constants.MonthsPerYear {
		warnings = append(warnings, fmt.Sprintf("months paid %d meets or exceeds the original term of %d months",
			inputs.MonthsPaid, inputs.OriginalLoanTerm*constants.MonthsPerYear))
	}
	if mathutil.IsNegative(inputs.DownPayment) {
		warnings = append(warnings, fmt.Sprintf("down payment %.2f is negative", inputs.DownPayment))
	}

	warnings = append(warnings, validateRate("rate", inputs.Rate)...)
	warnings = append(warnings, validateRate("new rate", inputs.NewRate)...)
	warnings = append(warnings, validateRate("refinance cost rate", inputs.RefiCostRate)...)

	return warnings
}

func validateRate(name string, rate float64) []string {
	var warnings []string

	if rate < 0 {
		warnings = append(warnings, fmt.Sprintf("%s %.4f is negative", name, rate))
	}
	if rate > 1 {
		warnings = append(warnings, fmt.Sprintf("%s %.2f looks like a human percentage; rates are decimal fractions (e.g. 0.065 for 6.5%%)", name, rate))
	}

	return warnings
}
