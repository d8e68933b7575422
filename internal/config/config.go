// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/compound-growth/pkg/constants"
	"github.com/iwvelando/compound-growth/pkg/series"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for compound-growth.
type Configuration struct {
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
	Cache       CacheConfig   `yaml:"cache,omitempty"`
	Simulations []Simulation  `yaml:"simulations"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, pdf, yaml
	File   string `yaml:"file,omitempty"`   // optional destination, stdout when empty
}

// CacheConfig selects where computed series are cached.
type CacheConfig struct {
	Backend    string `yaml:"backend,omitempty"` // none, memory, redis
	Address    string `yaml:"address,omitempty"`
	Password   string `yaml:"password,omitempty"`
	DB         int    `yaml:"db,omitempty"`
	TTLSeconds int    `yaml:"ttlSeconds,omitempty"`
	KeyPrefix  string `yaml:"keyPrefix,omitempty"`
	MaxEntries int    `yaml:"maxEntries,omitempty"` // memory backend only
}

// Simulation is one named run of a simulator. Only the parameter block
// matching Kind is used.
type Simulation struct {
	Name         string                    `yaml:"name"`
	Kind         string                    `yaml:"kind"`
	Active       bool                      `yaml:"active"`
	Growth       series.GrowthParams       `yaml:"growth,omitempty"`
	Contribution series.ContributionParams `yaml:"contribution,omitempty"`
	Timing       series.TimingParams       `yaml:"timing,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

func (conf *Configuration) applyDefaults() {
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Cache.Backend == "" {
		conf.Cache.Backend = constants.CacheBackendNone
	}
	if conf.Cache.KeyPrefix == "" {
		conf.Cache.KeyPrefix = constants.DefaultCacheKeyPrefix
	}
	if conf.Cache.TTLSeconds <= 0 {
		conf.Cache.TTLSeconds = constants.DefaultCacheTTLSeconds
	}
	if conf.Cache.MaxEntries <= 0 {
		conf.Cache.MaxEntries = constants.DefaultCacheMaxEntries
	}
	if conf.Cache.Backend == constants.CacheBackendRedis && conf.Cache.Address == "" {
		conf.Cache.Address = constants.DefaultRedisAddress
	}
}

// HorizonYears is the number of years the simulation projects forward,
// before clamping.
func (sim Simulation) HorizonYears() float64 {
	switch sim.Kind {
	case constants.KindGrowth:
		return sim.Growth.Years
	case constants.KindContribution:
		return sim.Contribution.Years
	case constants.KindTiming:
		return sim.Timing.HorizonYears
	}
	return 0
}

// ActiveSimulations returns the simulations flagged active, in order.
func (conf *Configuration) ActiveSimulations() []Simulation {
	var active []Simulation
	for _, sim := range conf.Simulations {
		if sim.Active {
			active = append(active, sim)
		}
	}
	return active
}
