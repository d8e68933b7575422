// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/compound-growth/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// NonNegative clamps a value to zero from below.
func NonNegative(val float64) float64 {
	return Max(val, 0)
}

// FloorAtLeast floors a value and clamps the result to minimum from below.
func FloorAtLeast(val float64, minimum int) int {
	floored := math.Floor(val)
	if math.IsNaN(floored) || floored < float64(minimum) {
		return minimum
	}
	if floored > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(floored)
}

// FloorNonNegative floors a value and clamps the result to zero from below.
func FloorNonNegative(val float64) int {
	return FloorAtLeast(val, 0)
}

// MonthsFromYears converts a possibly fractional year count into whole months.
func MonthsFromYears(years float64) int {
	return FloorNonNegative(years * constants.MonthsPerYear)
}
