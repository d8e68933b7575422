// Package simulate runs the configured simulations and collects their
// series, consulting the series cache when one is configured.
package simulate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/iwvelando/compound-growth/internal/cache"
	"github.com/iwvelando/compound-growth/internal/config"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/series"
	"go.uber.org/zap"
)

// Result holds the output of one simulation. Only the series matching Kind
// is populated.
type Result struct {
	ID           string                     `json:"id" yaml:"id"`
	Name         string                     `json:"name" yaml:"name"`
	Kind         string                     `json:"kind" yaml:"kind"`
	Cached       bool                       `json:"cached" yaml:"-"`
	Growth       []series.GrowthPoint       `json:"growth,omitempty" yaml:"growth,omitempty"`
	Contribution []series.ContributionPoint `json:"contribution,omitempty" yaml:"contribution,omitempty"`
	Timing       []series.TimingPoint       `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// Runner executes simulations.
type Runner struct {
	logger    *zap.Logger
	cache     cache.Repository
	keyPrefix string
}

// NewRunner creates a Runner. repo may be nil to disable caching.
func NewRunner(logger *zap.Logger, repo cache.Repository, keyPrefix string) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, cache: repo, keyPrefix: keyPrefix}
}

// Run processes every active simulation in conf, in order.
func (r *Runner) Run(ctx context.Context, conf config.Configuration) ([]Result, error) {
	var results []Result
	for _, sim := range conf.Simulations {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if !sim.Active {
			r.logger.Debug(fmt.Sprintf("skipping simulation %s because it is inactive", sim.Name),
				zap.String("op", "simulate.Run"),
			)
			continue
		}

		result, err := r.RunSimulation(ctx, sim)
		if err != nil {
			r.logger.Warn("skipping simulation",
				zap.String("op", "simulate.Run"),
				zap.String("simulation", sim.Name),
				zap.Error(err),
			)
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// RunSimulation computes a single simulation regardless of its Active flag.
func (r *Runner) RunSimulation(ctx context.Context, sim config.Simulation) (Result, error) {
	result := Result{
		ID:   uuid.NewString(),
		Name: sim.Name,
		Kind: sim.Kind,
	}

	switch sim.Kind {
	case constants.KindGrowth:
		result.Growth, result.Cached = cached(ctx, r, sim.Kind, sim.Growth.Normalize(), func() []series.GrowthPoint {
			return series.GenerateGrowthSeries(sim.Growth)
		})
	case constants.KindContribution:
		result.Contribution, result.Cached = cached(ctx, r, sim.Kind, sim.Contribution.Normalize(), func() []series.ContributionPoint {
			return series.SimulateContributionGrowth(sim.Contribution)
		})
	case constants.KindTiming:
		result.Timing, result.Cached = cached(ctx, r, sim.Kind, sim.Timing.Normalize(), func() []series.TimingPoint {
			return series.SimulateStartTiming(sim.Timing)
		})
	default:
		return result, fmt.Errorf("unknown simulation kind %q", sim.Kind)
	}

	if !result.Finite() {
		r.logger.Warn("simulation overflowed to a non-finite value",
			zap.String("op", "simulate.RunSimulation"),
			zap.String("simulation", result.Name),
			zap.String("kind", result.Kind),
		)
	}

	r.logger.Debug("simulation computed",
		zap.String("op", "simulate.RunSimulation"),
		zap.String("id", result.ID),
		zap.String("simulation", result.Name),
		zap.String("kind", result.Kind),
		zap.Int("points", result.Len()),
		zap.Bool("cached", result.Cached),
	)

	return result, nil
}

// cached returns the series stored under the normalized parameters, or
// computes and stores it. Cache failures are logged and otherwise ignored.
func cached[T any](ctx context.Context, r *Runner, kind string, normalized interface{}, compute func() []T) ([]T, bool) {
	if r.cache == nil {
		return compute(), false
	}

	key, err := cache.Key(r.keyPrefix, kind, normalized)
	if err != nil {
		r.logger.Warn("failed to derive cache key",
			zap.String("op", "simulate.cached"),
			zap.Error(err),
		)
		return compute(), false
	}

	if raw, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("cache lookup failed",
			zap.String("op", "simulate.cached"),
			zap.String("key", key),
			zap.Error(err),
		)
	} else if ok {
		var points []T
		if err := json.Unmarshal([]byte(raw), &points); err == nil {
			return points, true
		}
		r.logger.Warn("discarding undecodable cache entry",
			zap.String("op", "simulate.cached"),
			zap.String("key", key),
		)
	}

	points := compute()
	encoded, err := json.Marshal(points)
	if err != nil {
		r.logger.Warn("failed to encode series for cache",
			zap.String("op", "simulate.cached"),
			zap.Error(err),
		)
		return points, false
	}
	if err := r.cache.Set(ctx, key, string(encoded)); err != nil {
		r.logger.Warn("cache store failed",
			zap.String("op", "simulate.cached"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
	return points, false
}
