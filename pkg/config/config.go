// Package config loads and validates the concordance run configuration from
// YAML files with environment-variable overrides. It provides typed structs
// for every subsystem (Corpus, Analysis, Output, Postgres, Kafka, Redis, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
)

// MaxTopN is the largest number of ranked words a run may request.
const MaxTopN = 100

// Concordance strategies.
const (
	StrategyScan  = "scan"
	StrategyIndex = "index"
)

// Output sink names.
const (
	SinkCSV      = "csv"
	SinkJSON     = "json"
	SinkTable    = "table"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
	SinkRedis    = "redis"
)

// Config is the top-level run configuration.
type Config struct {
	Corpus   CorpusConfig   `yaml:"corpus"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Retry    RetryConfig    `yaml:"retry"`
	Logging  LoggingConfig  `yaml:"logging"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// CorpusConfig locates the input documents and the stop-word list.
type CorpusConfig struct {
	Directory     string `yaml:"directory"`
	Pattern       string `yaml:"pattern"`
	StopWordsFile string `yaml:"stopWordsFile"`
}

// AnalysisConfig controls ranking depth and how the concordance is built.
type AnalysisConfig struct {
	TopN     int           `yaml:"topN"`
	Strategy string        `yaml:"strategy"`
	Workers  int           `yaml:"workers"`
	Timeout  time.Duration `yaml:"timeout"`
}

// OutputConfig selects the sinks the result table is written to.
type OutputConfig struct {
	Sinks []string `yaml:"sinks"`
	Path  string   `yaml:"path"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// RedisConfig holds Redis connection and key layout parameters.
type RedisConfig struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	PoolSize  int           `yaml:"poolSize"`
	KeyPrefix string        `yaml:"keyPrefix"`
	TTL       time.Duration `yaml:"ttl"`
}

// RetryConfig bounds the backoff used by network sinks.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"maxAttempts"`
	InitialDelay time.Duration `yaml:"initialDelay"`
	MaxDelay     time.Duration `yaml:"maxDelay"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig toggles the per-stage span log.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig controls where run metrics are written. An empty
// TextfilePath disables the export.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfilePath"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values. Load does not validate; call Validate once flags are applied.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Configf(apperrors.ErrInvalidConfig, "reading config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Configf(apperrors.ErrInvalidConfig, "parsing config file %s: %v", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Directory: ".",
			Pattern:   "*.txt",
		},
		Analysis: AnalysisConfig{
			TopN:     10,
			Strategy: StrategyScan,
			Workers:  1,
		},
		Output: OutputConfig{
			Sinks: []string{SinkCSV},
			Path:  "-",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "concordance",
			User:            "concordance",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "concordance-entries",
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			PoolSize:  4,
			KeyPrefix: "concordance:",
			TTL:       24 * time.Hour,
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the run parameters before any processing starts. Every
// failure is a configuration error.
func (c *Config) Validate() error {
	if c.Corpus.Directory == "" {
		return apperrors.Configf(apperrors.ErrDirectoryNotFound, "no corpus directory given")
	}
	info, err := os.Stat(c.Corpus.Directory)
	if err != nil || !info.IsDir() {
		return apperrors.Configf(apperrors.ErrDirectoryNotFound, "the path specified does not exist: %s", c.Corpus.Directory)
	}
	if c.Corpus.Pattern == "" {
		return apperrors.Configf(apperrors.ErrInvalidConfig, "corpus pattern must not be empty")
	}
	if c.Analysis.TopN < 0 || c.Analysis.TopN > MaxTopN {
		return apperrors.Configf(apperrors.ErrTopNOutOfRange, "N must be between 0 and %d, got %d", MaxTopN, c.Analysis.TopN)
	}
	switch c.Analysis.Strategy {
	case StrategyScan, StrategyIndex:
	default:
		return apperrors.Configf(apperrors.ErrInvalidConfig, "unknown strategy %q", c.Analysis.Strategy)
	}
	if c.Analysis.Workers < 1 {
		return apperrors.Configf(apperrors.ErrInvalidConfig, "workers must be at least 1, got %d", c.Analysis.Workers)
	}
	if c.Analysis.Timeout < 0 {
		return apperrors.Configf(apperrors.ErrInvalidConfig, "timeout must not be negative")
	}
	if len(c.Output.Sinks) == 0 {
		return apperrors.Configf(apperrors.ErrInvalidConfig, "at least one output sink is required")
	}
	for _, sink := range c.Output.Sinks {
		switch sink {
		case SinkCSV, SinkJSON, SinkTable, SinkPostgres, SinkKafka, SinkRedis:
		default:
			return apperrors.Configf(apperrors.ErrInvalidConfig, "unknown output sink %q", sink)
		}
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return apperrors.Configf(apperrors.ErrInvalidConfig, "unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// HasSink reports whether name is among the configured sinks.
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Output.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

// applyEnvOverrides reads CC_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CC_CORPUS_DIRECTORY"); v != "" {
		cfg.Corpus.Directory = v
	}
	if v := os.Getenv("CC_CORPUS_PATTERN"); v != "" {
		cfg.Corpus.Pattern = v
	}
	if v := os.Getenv("CC_CORPUS_STOPWORDS_FILE"); v != "" {
		cfg.Corpus.StopWordsFile = v
	}
	if v := os.Getenv("CC_ANALYSIS_TOPN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.TopN = n
		}
	}
	if v := os.Getenv("CC_ANALYSIS_STRATEGY"); v != "" {
		cfg.Analysis.Strategy = v
	}
	if v := os.Getenv("CC_ANALYSIS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = n
		}
	}
	if v := os.Getenv("CC_ANALYSIS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Analysis.Timeout = d
		}
	}
	if v := os.Getenv("CC_OUTPUT_SINKS"); v != "" {
		cfg.Output.Sinks = strings.Split(v, ",")
	}
	if v := os.Getenv("CC_OUTPUT_PATH"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("CC_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("CC_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("CC_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("CC_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("CC_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("CC_POSTGRES_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("CC_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CC_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
	if v := os.Getenv("CC_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("CC_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CC_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CC_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CC_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.TextfilePath = v
	}
	if v := os.Getenv("CC_TRACING_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tracing.Enabled = b
		}
	}
}
