// Package cache stores computed series keyed by their normalized parameters.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/compound-growth/internal/config"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"go.uber.org/zap"
)

// Repository is a string key/value store for encoded series.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// New builds the repository selected by conf. It returns a nil Repository
// when caching is disabled and an error for an unknown backend.
func New(conf config.CacheConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch conf.Backend {
	case "", constants.CacheBackendNone:
		return nil, nil
	case constants.CacheBackendMemory:
		logger.Debug("using in-memory series cache",
			zap.String("op", "cache.New"),
			zap.Int("maxEntries", conf.MaxEntries),
		)
		mem, err := NewMemoryCache(conf.MaxEntries)
		if err != nil {
			return nil, err
		}
		return mem, nil
	case constants.CacheBackendRedis:
		logger.Debug("using redis series cache",
			zap.String("op", "cache.New"),
			zap.String("address", conf.Address),
			zap.Int("db", conf.DB),
		)
		return NewRedisCache(conf), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", conf.Backend)
	}
}

// Close releases repo's resources when the backend holds any.
func Close(repo Repository) error {
	if closer, ok := repo.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// Key derives a stable cache key from a kind and its normalized parameters.
func Key(prefix, kind string, params interface{}) (string, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key parameters: %w", err)
	}
	if prefix == "" {
		prefix = constants.DefaultCacheKeyPrefix
	}
	return prefix + ":" + kind + ":" + strconv.FormatUint(xxhash.Sum64(encoded), 16), nil
}
