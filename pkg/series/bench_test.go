package series

import "testing"

func BenchmarkGenerateGrowthSeries(b *testing.B) {
	params := GrowthParams{Principal: 10000, Rate: 0.07, Years: 100, Frequency: 365}
	for i := 0; i < b.N; i++ {
		_ = GenerateGrowthSeries(params)
	}
}

func BenchmarkSimulateContributionGrowth(b *testing.B) {
	params := ContributionParams{Initial: 1000, Monthly: 200, AnnualBonus: 1000, Rate: 0.06, Years: 100}
	for i := 0; i < b.N; i++ {
		_ = SimulateContributionGrowth(params)
	}
}

func BenchmarkSimulateStartTiming(b *testing.B) {
	params := TimingParams{Monthly: 200, YearsInvesting: 30, DelayYears: 10, Rate: 0.07, HorizonYears: 100}
	for i := 0; i < b.N; i++ {
		_ = SimulateStartTiming(params)
	}
}
