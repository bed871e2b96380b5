package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/workwell/schema"
)

// Default values for configuration.
const (
	DefaultDays      = 30
	MaxDays          = 3650
	DefaultPrecision = 1
	DefaultCacheTTL  = 10 * time.Minute
	DefaultAddr      = ":8080"
	MaxCommentRunes  = 1000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the validated runtime configuration.
type Config struct {
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CompanyID    int64
	Days         int
	Metric       schema.Metric
	SortByMetric bool

	RecordBackend   schema.DatabaseBackend
	RecordDBConnect string // Please use env var as this is plaintext

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	Classifier      schema.ClassifierMode
	AnthropicAPIKey string
	LLMModel        string

	Addr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	RecordBackend   string `mapstructure:"record-backend"`
	RecordDBConnect string `mapstructure:"record-db-connect"`
	CacheBackend    string `mapstructure:"cache-backend"`
	CacheDBConnect  string `mapstructure:"cache-db-connect"`
	CacheTTL        string `mapstructure:"cache-ttl"`
	Classifier      string `mapstructure:"classifier"`
	AnthropicAPIKey string `mapstructure:"anthropic-api-key"`
	LLMModel        string `mapstructure:"llm-model"`

	// --- Fields shared by heatmap, stats and sectors ---
	Company    int64  `mapstructure:"company"`
	Days       int    `mapstructure:"days"`
	Metric     string `mapstructure:"metric"`
	SortMetric bool   `mapstructure:"sort-metric"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processReportWindow(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return processClassifier(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must start with 'redis://' or 'rediss://'")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processReportWindow handles the company, period and metric used by the reports.
func processReportWindow(cfg *Config, input *ConfigRawInput) error {
	if input.Company < 0 {
		return fmt.Errorf("company must be a positive ID (received %d)", input.Company)
	}
	cfg.CompanyID = input.Company

	if input.Days < 1 || input.Days > MaxDays {
		return fmt.Errorf("days must be between 1 and %d (received %d)", MaxDays, input.Days)
	}
	cfg.Days = input.Days

	cfg.Metric = schema.Metric(strings.ToLower(input.Metric))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be stress, happiness, anxiety, motivation", input.Metric)
	}
	cfg.SortByMetric = input.SortMetric
	return nil
}

// validateBackendConfigs validates record and cache backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Record Backend Validation ---
	cfg.RecordBackend = schema.DatabaseBackend(strings.ToLower(input.RecordBackend))
	if _, ok := schema.ValidRecordBackends[cfg.RecordBackend]; !ok {
		return fmt.Errorf("invalid record backend '%s'. must be sqlite, mysql, postgresql, none", input.RecordBackend)
	}
	cfg.RecordDBConnect = input.RecordDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RecordBackend, cfg.RecordDBConnect); err != nil {
		return err
	}

	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl '%s': %w", input.CacheTTL, err)
		}
		if ttl <= 0 {
			return fmt.Errorf("cache-ttl must be positive (received %s)", input.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.RecordBackend == schema.SQLiteBackend && cfg.CacheBackend == schema.SQLiteBackend {
		recordDBPath := cfg.RecordDBConnect
		if recordDBPath == "" {
			recordDBPath = GetRecordDBFilePath()
		}
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		if recordDBPath == cacheDBPath {
			return fmt.Errorf("record and cache storage must use different SQLite database files. Both resolve to %q", recordDBPath)
		}
	}
	return nil
}

// processClassifier validates the classifier mode and its credentials.
func processClassifier(cfg *Config, input *ConfigRawInput) error {
	cfg.Classifier = schema.ClassifierMode(strings.ToLower(input.Classifier))
	if _, ok := schema.ValidClassifierModes[cfg.Classifier]; !ok {
		return fmt.Errorf("invalid classifier '%s'. must be keyword, llm", input.Classifier)
	}
	cfg.AnthropicAPIKey = strings.TrimSpace(input.AnthropicAPIKey)
	cfg.LLMModel = strings.TrimSpace(input.LLMModel)
	if cfg.Classifier == schema.LLMClassifier && cfg.AnthropicAPIKey == "" {
		return fmt.Errorf("anthropic-api-key is required when classifier is %s", cfg.Classifier)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
