// Package series holds the deterministic simulators that turn a handful of
// financial parameters into year-indexed time series. Every simulator is a
// total function: out-of-range input is clamped, never rejected.
package series

// GrowthPoint is one yearly sample of simple vs. compound growth.
type GrowthPoint struct {
	Year     int     `json:"year" yaml:"year"`
	Simple   float64 `json:"simple" yaml:"simple"`
	Compound float64 `json:"compound" yaml:"compound"`
}

// ContributionPoint is one yearly sample of a contribution account.
// Total is always Contributions + Interest.
type ContributionPoint struct {
	Year          int     `json:"year" yaml:"year"`
	Total         float64 `json:"total" yaml:"total"`
	Contributions float64 `json:"contributions" yaml:"contributions"`
	Interest      float64 `json:"interest" yaml:"interest"`
}

// TimingPoint is one yearly sample of the early vs. late deposit schedules.
type TimingPoint struct {
	Year  int     `json:"year" yaml:"year"`
	Early float64 `json:"early" yaml:"early"`
	Late  float64 `json:"late" yaml:"late"`
}
