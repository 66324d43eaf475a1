// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/refi-calc/refi-calc/pkg/constants"
)

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// IsFinite checks that a value is neither NaN nor infinite
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
