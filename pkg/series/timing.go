package series

import (
	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/mathutil"
)

// TimingParams describes two identical deposit schedules where the late one
// starts DelayYears after the early one.
type TimingParams struct {
	Monthly        float64 `json:"monthly" yaml:"monthly" mapstructure:"monthly"`
	YearsInvesting float64 `json:"yearsInvesting" yaml:"yearsInvesting" mapstructure:"yearsInvesting"`
	DelayYears     float64 `json:"delayYears" yaml:"delayYears" mapstructure:"delayYears"`
	Rate           float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
	HorizonYears   float64 `json:"horizonYears" yaml:"horizonYears" mapstructure:"horizonYears"`
}

// NormalizedTiming is TimingParams after clamping, with every duration in
// whole months.
type NormalizedTiming struct {
	Monthly         float64
	Rate            float64
	TotalMonths     int
	InvestingMonths int
	LagMonths       int
}

// Normalize clamps the parameters and converts durations to months.
func (p TimingParams) Normalize() NormalizedTiming {
	return NormalizedTiming{
		Monthly:         mathutil.NonNegative(p.Monthly),
		Rate:            mathutil.NonNegative(p.Rate),
		TotalMonths:     mathutil.MonthsFromYears(p.HorizonYears),
		InvestingMonths: mathutil.MonthsFromYears(p.YearsInvesting),
		LagMonths:       mathutil.MonthsFromYears(p.DelayYears),
	}
}

// DroppedMonths reports how many trailing months of the horizon fall after
// the last whole year and therefore never appear in the sampled output.
func (n NormalizedTiming) DroppedMonths() int {
	return n.TotalMonths % constants.MonthsPerYear
}

// SimulateStartTiming steps both schedules month by month and samples them
// on whole-year boundaries. Interest accrues on both balances every month
// before that month's deposits land.
func SimulateStartTiming(params TimingParams) []TimingPoint {
	n := params.Normalize()
	monthlyRate := n.Rate / constants.MonthsPerYear
	lateEnd := n.LagMonths + n.InvestingMonths

	var early, late float64

	points := make([]TimingPoint, 0, n.TotalMonths/constants.MonthsPerYear+1)
	points = append(points, TimingPoint{Year: 0, Early: early, Late: late})

	for month := 1; month <= n.TotalMonths; month++ {
		early *= 1 + monthlyRate
		late *= 1 + monthlyRate

		if month <= n.InvestingMonths {
			early += n.Monthly
		}
		if month > n.LagMonths && month <= lateEnd {
			late += n.Monthly
		}

		if month%constants.MonthsPerYear == 0 {
			points = append(points, TimingPoint{
				Year:  month / constants.MonthsPerYear,
				Early: early,
				Late:  late,
			})
		}
	}

	return points
}
