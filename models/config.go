// Package models defines the record/dataset data model and runtime configuration.
package models

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a processing run.
// Values are layered: defaults, YAML file, .env file, environment, CLI flags.
type Config struct {
	Input  string `yaml:"input" env:"TWEETSTATS_INPUT"`
	Output string `yaml:"output" env:"TWEETSTATS_OUTPUT"`

	TextColumn          string `yaml:"text_column" env:"TWEETSTATS_TEXT_COLUMN"`
	ClusterColumn       string `yaml:"cluster_column" env:"TWEETSTATS_CLUSTER_COLUMN"`
	TermFrequencyColumn string `yaml:"term_frequency_column" env:"TWEETSTATS_TERM_FREQUENCY_COLUMN"`
	LanguageColumn      string `yaml:"language_column" env:"TWEETSTATS_LANGUAGE_COLUMN"`

	ResultsDir   string `yaml:"results_dir" env:"TWEETSTATS_RESULTS_DIR"`
	WordCloudDir string `yaml:"word_cloud_dir" env:"TWEETSTATS_WORD_CLOUD_DIR"`
	HistogramDir string `yaml:"histogram_dir" env:"TWEETSTATS_HISTOGRAM_DIR"`

	TopCount          int `yaml:"top_count" env:"TWEETSTATS_TOP_COUNT"`
	PreviewRows       int `yaml:"preview_rows" env:"TWEETSTATS_PREVIEW_ROWS"`
	VocabularyPreview int `yaml:"vocabulary_preview" env:"TWEETSTATS_VOCABULARY_PREVIEW"`
	Workers           int `yaml:"workers" env:"TWEETSTATS_WORKERS"`

	StripMarkup    bool     `yaml:"strip_markup" env:"TWEETSTATS_STRIP_MARKUP"`
	DetectLanguage bool     `yaml:"detect_language" env:"TWEETSTATS_DETECT_LANGUAGE"`
	Languages      []string `yaml:"languages" env:"TWEETSTATS_LANGUAGES"`

	DatabasePath string `yaml:"database_path" env:"TWEETSTATS_DATABASE_PATH"`

	LogLevel  string `yaml:"log_level" env:"TWEETSTATS_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"TWEETSTATS_LOG_FORMAT"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Input:               "data/twitter_reduced.csv",
		Output:              "data/twitter_processed.csv",
		TextColumn:          "text",
		ClusterColumn:       "sentiment",
		TermFrequencyColumn: "term_frequency",
		LanguageColumn:      "language",
		ResultsDir:          "tweetstats-results",
		WordCloudDir:        "word_cloud_plots",
		HistogramDir:        "histograms",
		TopCount:            20,
		PreviewRows:         5,
		VocabularyPreview:   10,
		Workers:             1,
		Languages:           []string{"en", "es"},
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// LoadConfig builds a Config from defaults, the optional YAML file at path,
// an optional .env file and TWEETSTATS_* environment variables.
// An empty path skips the YAML layer. The result is not validated: callers
// overlay their own settings first and then call Validate.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"text_column", c.TextColumn},
		{"cluster_column", c.ClusterColumn},
		{"term_frequency_column", c.TermFrequencyColumn},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if c.TextColumn == c.ClusterColumn {
		return errors.New("text_column and cluster_column must differ")
	}
	if c.TopCount < 1 {
		return fmt.Errorf("top_count must be at least 1, got %d", c.TopCount)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.PreviewRows < 0 || c.VocabularyPreview < 0 {
		return errors.New("preview sizes must not be negative")
	}
	if c.DetectLanguage && len(c.Languages) < 2 {
		return errors.New("detect_language needs at least two languages")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}

	return nil
}
