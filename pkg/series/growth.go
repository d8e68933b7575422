package series

import (
	"math"

	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/mathutil"
)

// GrowthParams describes a single principal left to grow.
type GrowthParams struct {
	Principal float64 `json:"principal" yaml:"principal" mapstructure:"principal"`
	Rate      float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
	Years     float64 `json:"years" yaml:"years" mapstructure:"years"`
	Frequency float64 `json:"frequency" yaml:"frequency" mapstructure:"frequency"`
}

// NormalizedGrowth is GrowthParams after clamping.
type NormalizedGrowth struct {
	Principal float64
	Rate      float64
	Years     int
	Frequency int
}

// Normalize clamps the parameters to their valid ranges.
func (p GrowthParams) Normalize() NormalizedGrowth {
	return NormalizedGrowth{
		Principal: mathutil.NonNegative(p.Principal),
		Rate:      mathutil.NonNegative(p.Rate),
		Years:     mathutil.FloorNonNegative(p.Years),
		Frequency: mathutil.FloorAtLeast(p.Frequency, constants.MinimumFrequency),
	}
}

// GenerateGrowthSeries compares linear simple interest against discrete
// compounding at the given frequency, sampled once per year from year 0
// through the clamped horizon.
func GenerateGrowthSeries(params GrowthParams) []GrowthPoint {
	n := params.Normalize()
	freq := float64(n.Frequency)

	points := make([]GrowthPoint, 0, n.Years+1)
	for year := 0; year <= n.Years; year++ {
		y := float64(year)
		points = append(points, GrowthPoint{
			Year:     year,
			Simple:   n.Principal * (1 + n.Rate*y),
			Compound: n.Principal * math.Pow(1+n.Rate/freq, freq*y),
		})
	}

	return points
}
