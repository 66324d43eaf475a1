// Package refinance implements the refinance-comparison engine: given a
// borrower's existing mortgage and a proposed refinance offer, it derives the
// present monthly payment, the remaining balance, the payment under the new
// terms, and the breakeven horizon at which closing costs are offset by
// monthly savings.
//
// The engine is pure: every result is a deterministic function of the inputs,
// nothing is rounded before display, and degenerate inputs flow through to
// NaN or infinities rather than errors. Interpretation of those values (for
// example a non-positive monthly savings making breakeven meaningless) is the
// caller's concern.
package refinance

import (
	"github.com/refi-calc/refi-calc/pkg/annuity"
	"github.com/refi-calc/refi-calc/pkg/constants"
	"github.com/refi-calc/refi-calc/pkg/mathutil"
)

// MortgageInputs describes the existing mortgage and the refinance offer.
// Rates are nominal annual rates as decimal fractions (0.065 = 6.5%);
// RefiCostRate is the closing cost as a fraction of the new loan principal.
type MortgageInputs struct {
	OriginalLoanSize float64 `json:"originalLoanSize"`
	OriginalLoanTerm int     `json:"originalLoanTerm"` // years
	Rate             float64 `json:"rate"`
	MonthsPaid       int     `json:"monthsPaid"`
	DownPayment      float64 `json:"downPayment"`
	NewRate          float64 `json:"newRate"`
	NewTerm          int     `json:"newTerm"` // years
	RefiCostRate     float64 `json:"refiCostRate"`
}

// CalculationResult holds every derived figure for one scenario. NewLoanSize
// always equals CurrentMortgageBalance exactly: the refinance pays off the
// remaining balance in full, no cash-out.
type CalculationResult struct {
	OriginalMonthlyPayment float64 `json:"originalMonthlyPayment"`
	CurrentMortgageBalance float64 `json:"currentMortgageBalance"`
	CurrentEquity          float64 `json:"currentEquity"`
	NewLoanSize            float64 `json:"newLoanSize"`
	RefiCost               float64 `json:"refiCost"`
	NewMonthlyPayment      float64 `json:"newMonthlyPayment"`
	MonthlySavings         float64 `json:"monthlySavings"`
	TotalSavings           float64 `json:"totalSavings"`
	MonthsToBreakeven      float64 `json:"monthsToBreakeven"`
}

// RemainingMonths returns the number of payments left on the original loan.
func RemainingMonths(inputs MortgageInputs) int {
	return inputs.OriginalLoanTerm*constants.MonthsPerYear - inputs.MonthsPaid
}

// Calculate evaluates the refinance comparison for one set of inputs.
//
// TotalSavings is accumulated over the remaining life of the original loan,
// not the new term: the economically meaningful question is what continuing
// the old loan would cost versus switching. MonthsToBreakeven is the raw
// quotient RefiCost / MonthlySavings and is negative or infinite when there
// are no savings; presentation layers suppress or relabel it.
func Calculate(inputs MortgageInputs) CalculationResult {
	monthlyRate := inputs.Rate / constants.MonthsPerYear
	originalTermMonths := float64(inputs.OriginalLoanTerm * constants.MonthsPerYear)
	remainingMonths := float64(RemainingMonths(inputs))

	originalMonthlyPayment := annuity.MonthlyPayment(monthlyRate, originalTermMonths, -inputs.OriginalLoanSize)
	currentMortgageBalance := annuity.PresentValue(monthlyRate, remainingMonths, -originalMonthlyPayment)
	currentEquity := inputs.OriginalLoanSize - currentMortgageBalance + inputs.DownPayment

	newLoanSize := currentMortgageBalance
	refiCost := inputs.RefiCostRate * newLoanSize
	newMonthlyPayment := annuity.MonthlyPayment(
		inputs.NewRate/constants.MonthsPerYear,
		float64(inputs.NewTerm*constants.MonthsPerYear),
		-newLoanSize,
	)

	monthlySavings := originalMonthlyPayment - newMonthlyPayment

	return CalculationResult{
		OriginalMonthlyPayment: originalMonthlyPayment,
		CurrentMortgageBalance: currentMortgageBalance,
		CurrentEquity:          currentEquity,
		NewLoanSize:            newLoanSize,
		RefiCost:               refiCost,
		NewMonthlyPayment:      newMonthlyPayment,
		MonthlySavings:         monthlySavings,
		TotalSavings:           monthlySavings * remainingMonths,
		MonthsToBreakeven:      refiCost / monthlySavings,
	}
}

// Finite reports whether every figure except MonthsToBreakeven is a finite
// number. MonthsToBreakeven is excluded because it is legitimately infinite
// when monthly savings are zero.
func (r CalculationResult) Finite() bool {
	values := []float64{
		r.OriginalMonthlyPayment,
		r.CurrentMortgageBalance,
		r.CurrentEquity,
		r.NewLoanSize,
		r.RefiCost,
		r.NewMonthlyPayment,
		r.MonthlySavings,
		r.TotalSavings,
	}
	for _, v := range values {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}
