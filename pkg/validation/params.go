package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/compound-growth/pkg/constants"
)

// Parameter checks never reject input: simulators clamp out-of-range values,
// so these only describe what the clamp is going to do.

// CheckNonNegative warns when a value will be clamped to zero.
func CheckNonNegative(simulation, field string, value float64) string {
	if math.IsNaN(value) {
		return fmt.Sprintf("Simulation '%s': %s is not a number and will be treated as 0", simulation, field)
	}
	if value < 0 {
		return fmt.Sprintf("Simulation '%s': %s is negative (%g) and will be clamped to 0", simulation, field, value)
	}
	return ""
}

// CheckWholeYears warns when a year count will be floored or clamped.
func CheckWholeYears(simulation, field string, value float64) string {
	if value < 0 {
		return fmt.Sprintf("Simulation '%s': %s is negative (%g); only the initial point will be produced", simulation, field, value)
	}
	if value != math.Floor(value) {
		return fmt.Sprintf("Simulation '%s': %s is fractional (%g) and will be floored to %g", simulation, field, value, math.Floor(value))
	}
	return ""
}

// CheckFrequency warns when a compounding frequency will be floored or raised to one.
func CheckFrequency(simulation string, value float64) string {
	if value < constants.MinimumFrequency {
		return fmt.Sprintf("Simulation '%s': frequency %g is below %d and will be raised to %d",
			simulation, value, constants.MinimumFrequency, constants.MinimumFrequency)
	}
	if value != math.Floor(value) {
		return fmt.Sprintf("Simulation '%s': frequency %g will be floored to %g", simulation, value, math.Floor(value))
	}
	return ""
}

// CheckPartialHorizon warns when a month-stepped horizon ends mid-year; those
// trailing months are never sampled.
func CheckPartialHorizon(simulation string, totalMonths int) string {
	if dropped := totalMonths % constants.MonthsPerYear; dropped != 0 {
		return fmt.Sprintf("Simulation '%s': horizon ends %d month(s) into a year; the partial year is not sampled", simulation, dropped)
	}
	return ""
}

// CheckScheduleWithinHorizon warns when the delayed schedule is still
// depositing at the end of the horizon.
func CheckScheduleWithinHorizon(simulation string, lagMonths, investingMonths, totalMonths int) string {
	if lagMonths+investingMonths > totalMonths {
		return fmt.Sprintf("Simulation '%s': delayed schedule runs past the horizon (%d > %d months)",
			simulation, lagMonths+investingMonths, totalMonths)
	}
	return ""
}
