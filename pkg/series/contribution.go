package series

import (
	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/mathutil"
)

// ContributionParams describes an account fed by monthly deposits and a
// yearly bonus.
type ContributionParams struct {
	Initial     float64 `json:"initial" yaml:"initial" mapstructure:"initial"`
	Monthly     float64 `json:"monthly" yaml:"monthly" mapstructure:"monthly"`
	AnnualBonus float64 `json:"annualBonus" yaml:"annualBonus" mapstructure:"annualBonus"`
	Rate        float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
	Years       float64 `json:"years" yaml:"years" mapstructure:"years"`
}

// NormalizedContribution is ContributionParams after clamping.
type NormalizedContribution struct {
	Initial     float64
	Monthly     float64
	AnnualBonus float64
	Rate        float64
	Years       int
}

// Normalize clamps the parameters to their valid ranges.
func (p ContributionParams) Normalize() NormalizedContribution {
	return NormalizedContribution{
		Initial:     mathutil.NonNegative(p.Initial),
		Monthly:     mathutil.NonNegative(p.Monthly),
		AnnualBonus: mathutil.NonNegative(p.AnnualBonus),
		Rate:        mathutil.NonNegative(p.Rate),
		Years:       mathutil.FloorNonNegative(p.Years),
	}
}

// SimulateContributionGrowth compounds the balance monthly, depositing the
// monthly amount after each month's interest and the bonus after the twelfth
// month. The initial deposit counts as a contribution.
func SimulateContributionGrowth(params ContributionParams) []ContributionPoint {
	n := params.Normalize()
	monthlyRate := n.Rate / constants.MonthsPerYear

	balance := n.Initial
	contributions := balance

	timeline := make([]ContributionPoint, 0, n.Years+1)
	timeline = append(timeline, contributionPoint(0, balance, contributions))

	for year := 1; year <= n.Years; year++ {
		for month := 0; month < constants.MonthsPerYear; month++ {
			balance *= 1 + monthlyRate
			if n.Monthly > 0 {
				balance += n.Monthly
				contributions += n.Monthly
			}
		}

		if n.AnnualBonus > 0 {
			balance += n.AnnualBonus
			contributions += n.AnnualBonus
		}

		timeline = append(timeline, contributionPoint(year, balance, contributions))
	}

	return timeline
}

// contributionPoint derives Total from the decomposition so that
// Total == Contributions + Interest holds bit for bit.
func contributionPoint(year int, balance, contributions float64) ContributionPoint {
	interest := balance - contributions
	return ContributionPoint{
		Year:          year,
		Total:         contributions + interest,
		Contributions: contributions,
		Interest:      interest,
	}
}
