package config

import (
	"fmt"

	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here is fatal: the simulators clamp whatever they
// are given.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string
	add := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	if len(conf.ActiveSimulations()) == 0 {
		add("No active simulations configured")
	}

	seen := make(map[string]bool)
	for _, sim := range conf.Simulations {
		if sim.Name == "" {
			add("Simulation with empty name")
		} else if seen[sim.Name] {
			add(fmt.Sprintf("Simulation '%s' is defined more than once", sim.Name))
		}
		seen[sim.Name] = true

		if err := validation.ValidateKind(sim.Kind); err != nil {
			add(fmt.Sprintf("Simulation '%s' will be skipped: %v", sim.Name, err))
			continue
		}

		for _, w := range sim.Warnings() {
			add(w)
		}
	}

	switch conf.Cache.Backend {
	case constants.CacheBackendNone, constants.CacheBackendMemory, constants.CacheBackendRedis:
	default:
		add(fmt.Sprintf("Unknown cache backend '%s'; expected none, memory or redis", conf.Cache.Backend))
	}

	return warnings
}

// Warnings describes every clamp the simulator will apply to this
// simulation's parameters.
func (sim Simulation) Warnings() []string {
	var checks []string
	switch sim.Kind {
	case constants.KindGrowth:
		p := sim.Growth
		checks = []string{
			validation.CheckNonNegative(sim.Name, "principal", p.Principal),
			validation.CheckNonNegative(sim.Name, "rate", p.Rate),
			validation.CheckWholeYears(sim.Name, "years", p.Years),
			validation.CheckFrequency(sim.Name, p.Frequency),
		}
	case constants.KindContribution:
		p := sim.Contribution
		checks = []string{
			validation.CheckNonNegative(sim.Name, "initial", p.Initial),
			validation.CheckNonNegative(sim.Name, "monthly", p.Monthly),
			validation.CheckNonNegative(sim.Name, "annualBonus", p.AnnualBonus),
			validation.CheckNonNegative(sim.Name, "rate", p.Rate),
			validation.CheckWholeYears(sim.Name, "years", p.Years),
		}
	case constants.KindTiming:
		p := sim.Timing
		n := p.Normalize()
		checks = []string{
			validation.CheckNonNegative(sim.Name, "monthly", p.Monthly),
			validation.CheckNonNegative(sim.Name, "rate", p.Rate),
			validation.CheckNonNegative(sim.Name, "yearsInvesting", p.YearsInvesting),
			validation.CheckNonNegative(sim.Name, "delayYears", p.DelayYears),
			validation.CheckNonNegative(sim.Name, "horizonYears", p.HorizonYears),
			validation.CheckPartialHorizon(sim.Name, n.TotalMonths),
			validation.CheckScheduleWithinHorizon(sim.Name, n.LagMonths, n.InvestingMonths, n.TotalMonths),
		}
	}

	var warnings []string
	for _, w := range checks {
		if w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}
