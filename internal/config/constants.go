package config

const (
	// DefaultConfigFile is the YAML file read when no path is given.
	DefaultConfigFile = "devmetrics.yaml"
	// DefaultStoragePath is where metric history is kept.
	DefaultStoragePath = ".devmetrics/metrics.json"
	// DefaultCacheSize is the capacity of general purpose LRU caches.
	DefaultCacheSize = 100
	// DefaultMemoSize is the capacity of memoization caches.
	DefaultMemoSize = 128
	// DefaultTrendWindow is the number of samples used for trend reports.
	DefaultTrendWindow = 5
	// DefaultMinPriority is the floor applied to optimization suggestions.
	DefaultMinPriority = 0.7
	// DefaultLogLevel is the logrus level used when none is configured.
	DefaultLogLevel = "info"
)

// Environment variables that override file and default values.
const (
	EnvStoragePath = "DEVMETRICS_STORAGE_PATH"
	EnvCacheSize   = "DEVMETRICS_CACHE_SIZE"
	EnvMemoSize    = "DEVMETRICS_MEMO_SIZE"
	EnvTrendWindow = "DEVMETRICS_TREND_WINDOW"
	EnvMinPriority = "DEVMETRICS_MIN_PRIORITY"
	EnvLogLevel    = "LOG_LEVEL"

	EnvRecordTimings = "DEVMETRICS_RECORD_TIMINGS"
)
