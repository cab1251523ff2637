// Package config loads and validates application configuration from YAML files
// with environment-variable overrides. It provides typed structs for every
// subsystem (Search, Tokenizer, Corpus, Database, Kafka, Logging, Metrics).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-questions/pkg/errors"
)

// Config is the top-level application configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Database  DatabaseConfig  `yaml:"database"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SearchConfig holds the two ranking cut-offs: how many documents feed the
// sentence stage and how many sentences are printed.
type SearchConfig struct {
	FileMatches     int `yaml:"fileMatches"`
	SentenceMatches int `yaml:"sentenceMatches"`
}

// TokenizerConfig controls optional normalisation on top of the default
// lowercase/punctuation/stopword pipeline.
type TokenizerConfig struct {
	Stem           bool     `yaml:"stem"`
	ExtraStopwords []string `yaml:"extraStopwords"`
}

// CorpusConfig controls how documents are read.
type CorpusConfig struct {
	Table           string `yaml:"table"`
	LoadConcurrency int    `yaml:"loadConcurrency"`
}

// DatabaseConfig holds connection pool settings for SQL corpus sources.
type DatabaseConfig struct {
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	PingTimeout     time.Duration `yaml:"pingTimeout"`
}

// KafkaConfig holds Kafka broker and topic settings for query events.
type KafkaConfig struct {
	Enabled bool        `yaml:"enabled"`
	Brokers []string    `yaml:"brokers"`
	Topics  KafkaTopics `yaml:"topics"`
}

// KafkaTopics maps logical topic names to their Kafka topic strings.
type KafkaTopics struct {
	QueryEvents string `yaml:"queryEvents"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls where the metrics registry is dumped at exit.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Search.FileMatches < 1 {
		return apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"search.fileMatches must be at least 1, got %d", c.Search.FileMatches)
	}
	if c.Search.SentenceMatches < 1 {
		return apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"search.sentenceMatches must be at least 1, got %d", c.Search.SentenceMatches)
	}
	if c.Corpus.LoadConcurrency < 1 {
		return apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"corpus.loadConcurrency must be at least 1, got %d", c.Corpus.LoadConcurrency)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return apperrors.New(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"kafka.enabled requires at least one broker")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			FileMatches:     1,
			SentenceMatches: 1,
		},
		Corpus: CorpusConfig{
			Table:           "documents",
			LoadConcurrency: 8,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
			PingTimeout:     5 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
			Topics: KafkaTopics{
				QueryEvents: "query-events",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads QA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QA_SEARCH_FILE_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.FileMatches = n
		}
	}
	if v := os.Getenv("QA_SEARCH_SENTENCE_MATCHES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.SentenceMatches = n
		}
	}
	if v := os.Getenv("QA_TOKENIZER_STEM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tokenizer.Stem = b
		}
	}
	if v := os.Getenv("QA_CORPUS_TABLE"); v != "" {
		cfg.Corpus.Table = v
	}
	if v := os.Getenv("QA_KAFKA_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Kafka.Enabled = b
		}
	}
	if v := os.Getenv("QA_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("QA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("QA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("QA_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}
