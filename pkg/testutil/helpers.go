// Package testutil provides common utility functions for testing.
package testutil

import "math"

// InDelta reports whether got is within delta of want.
func InDelta(got, want, delta float64) bool {
	return math.Abs(got-want) <= delta
}

// InRelative reports whether got is within tolerance relative error of want.
// A zero want falls back to an absolute comparison against the tolerance.
func InRelative(got, want, tolerance float64) bool {
	if want == 0 {
		return math.Abs(got) <= tolerance
	}
	return math.Abs(got-want) <= tolerance*math.Abs(want)
}
