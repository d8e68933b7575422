// Package constants provides shared constants for the compound-growth application.
package constants

// Simulation constants
const (
	// MonthsPerYear is the number of monthly steps in a simulated year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// MinimumFrequency is the lowest compounding frequency accepted after clamping
	MinimumFrequency = 1
)

// Simulation kinds
const (
	// KindGrowth is a lump-sum simple vs. compound growth simulation
	KindGrowth = "growth"

	// KindContribution is a monthly deposit simulation with an annual bonus
	KindContribution = "contribution"

	// KindTiming compares an early and a delayed deposit schedule
	KindTiming = "timing"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatPDF is the PDF report output format
	OutputFormatPDF = "pdf"

	// OutputFormatYAML exports the raw series as a YAML document
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultMaxHorizonYears is the longest horizon the API will simulate
	DefaultMaxHorizonYears = 1000
)

// Cache defaults
const (
	// CacheBackendNone disables series caching
	CacheBackendNone = "none"

	// CacheBackendMemory keeps cached series in process memory
	CacheBackendMemory = "memory"

	// CacheBackendRedis stores cached series in Redis
	CacheBackendRedis = "redis"

	// DefaultCacheKeyPrefix namespaces every cache key
	DefaultCacheKeyPrefix = "compound-growth"

	// DefaultCacheTTLSeconds is how long a cached series lives in Redis
	DefaultCacheTTLSeconds = 3600

	// DefaultRedisAddress is used when the redis backend has no address
	DefaultRedisAddress = "localhost:6379"

	// DefaultCacheMaxEntries bounds the in-memory cache; least recently used
	// series are evicted beyond it
	DefaultCacheMaxEntries = 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
