// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/compound-growth/internal/simulate"
	"github.com/iwvelando/compound-growth/pkg/mathutil"
)

// FindResult finds a simulation result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []simulate.Result, name string) *simulate.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FinalValue returns the last sampled value of a result channel and whether
// the channel exists.
func FinalValue(result *simulate.Result, channel string) (float64, bool) {
	if result == nil {
		return 0, false
	}
	v, ok := result.Summary().Final[channel]
	return v, ok
}

// CentsEqual reports whether two amounts agree to the cent.
func CentsEqual(a, b float64) bool {
	return mathutil.Round(a) == mathutil.Round(b)
}
