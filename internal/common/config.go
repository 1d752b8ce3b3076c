package common

import (
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tweetstats/models"
)

// ResolveConfig loads the layered configuration named by --config and then
// applies the command-line flags the user set explicitly.
func ResolveConfig(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	setString := func(flag string, dst *string) {
		if c.IsSet(flag) {
			*dst = c.String(flag)
		}
	}
	setInt := func(flag string, dst *int) {
		if c.IsSet(flag) {
			*dst = c.Int(flag)
		}
	}
	setBool := func(flag string, dst *bool) {
		if c.IsSet(flag) {
			*dst = c.Bool(flag)
		}
	}

	setString("input", &cfg.Input)
	setString("output", &cfg.Output)
	setString("text-column", &cfg.TextColumn)
	setString("cluster-column", &cfg.ClusterColumn)
	setString("results-dir", &cfg.ResultsDir)
	setString("db", &cfg.DatabasePath)
	setString("log-level", &cfg.LogLevel)
	setString("log-format", &cfg.LogFormat)
	setInt("top", &cfg.TopCount)
	setInt("workers", &cfg.Workers)
	setInt("rows", &cfg.PreviewRows)
	setInt("vocab", &cfg.VocabularyPreview)
	setBool("strip-markup", &cfg.StripMarkup)
	setBool("detect-language", &cfg.DetectLanguage)

	if c.IsSet("languages") {
		cfg.Languages = nil
		for _, l := range strings.Split(c.String("languages"), ",") {
			if l = strings.TrimSpace(l); l != "" {
				cfg.Languages = append(cfg.Languages, l)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ActionLogger builds the logger for an action from cfg and --quiet.
func ActionLogger(c *cli.Context, cfg *models.Config) *slog.Logger {
	return NewLogger(cfg.LogLevel, cfg.LogFormat, c.Bool("quiet"))
}
