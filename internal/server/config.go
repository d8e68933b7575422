package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/compound-growth/internal/config"
	"github.com/iwvelando/compound-growth/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxUploadSize   string               `yaml:"maxUploadSize"`
	MaxHorizonYears float64              `yaml:"maxHorizonYears"`
	Logging         config.LoggingConfig `yaml:"logging"`
	Cache           config.CacheConfig   `yaml:"cache"`
	uploadSizeBytes int64
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		MaxHorizonYears: constants.DefaultMaxHorizonYears,
		Logging:         config.LoggingConfig{},
		Cache:           defaultCacheConfig(),
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

// ApplyOverrides applies command line overrides on top of the loaded file.
// Empty values leave the file's settings in place.
func (c *Config) ApplyOverrides(address, maxUploadSize string, maxHorizonYears float64) error {
	if address = strings.TrimSpace(address); address != "" {
		c.Address = address
	}
	if strings.TrimSpace(maxUploadSize) != "" {
		size, err := ParseSize(maxUploadSize)
		if err != nil {
			return fmt.Errorf("invalid max upload size: %w", err)
		}
		if size <= 0 {
			return fmt.Errorf("invalid max upload size %q: must be positive", maxUploadSize)
		}
		c.SetUploadSizeBytes(size)
	}
	if maxHorizonYears < 0 || math.IsNaN(maxHorizonYears) || math.IsInf(maxHorizonYears, 0) {
		return fmt.Errorf("invalid max horizon %g: must be a finite, non-negative number of years", maxHorizonYears)
	}
	if maxHorizonYears > 0 {
		c.MaxHorizonYears = maxHorizonYears
	}
	return nil
}

func defaultCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Backend:    constants.CacheBackendMemory,
		KeyPrefix:  constants.DefaultCacheKeyPrefix,
		TTLSeconds: constants.DefaultCacheTTLSeconds,
		MaxEntries: constants.DefaultCacheMaxEntries,
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	if c.MaxHorizonYears <= 0 || math.IsNaN(c.MaxHorizonYears) || math.IsInf(c.MaxHorizonYears, 1) {
		c.MaxHorizonYears = constants.DefaultMaxHorizonYears
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = constants.CacheBackendMemory
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = constants.DefaultCacheKeyPrefix
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = constants.DefaultCacheTTLSeconds
	}
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = constants.DefaultCacheMaxEntries
	}
	if c.Cache.Backend == constants.CacheBackendRedis && c.Cache.Address == "" {
		c.Cache.Address = constants.DefaultRedisAddress
	}

	sizeStr := strings.TrimSpace(c.MaxUploadSize)
	if sizeStr == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
