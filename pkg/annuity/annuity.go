// Package annuity provides the level-payment annuity primitives used for
// mortgage amortization: the periodic payment that retires a present value,
// and the present value implied by a stream of remaining payments.
//
// All functions follow the spreadsheet sign convention: a loan is a negative
// present value, and the payment returned for a negative present value is
// positive (cash the borrower pays out). Inputs are not validated; degenerate
// arguments such as numPeriods == 0 fall through to IEEE-754 division
// semantics and yield NaN or an infinity rather than an error.
package annuity

import "math"

// MonthlyPayment computes the level payment that amortizes presentValue over
// numPeriods periods at monthlyRate per period.
func MonthlyPayment(monthlyRate, numPeriods, presentValue float64) float64 {
	if monthlyRate == 0 {
		// Straight-line amortization, no interest.
		return -presentValue / numPeriods
	}

	factor := math.Pow(1+monthlyRate, numPeriods)
	return -monthlyRate * presentValue * factor / (factor - 1)
}

// PresentValue computes the principal balance that would require paying
// payment for numPeriods more periods at monthlyRate per period. With a
// negative payment (cash out) the returned balance is positive.
func PresentValue(monthlyRate, numPeriods, payment float64) float64 {
	if monthlyRate == 0 {
		return -(payment * numPeriods)
	}

	d := math.Pow(1+monthlyRate, -numPeriods)
	c := math.Pow(1+monthlyRate, numPeriods)
	return -(d * (monthlyRate - payment + c*payment)) / monthlyRate
}
