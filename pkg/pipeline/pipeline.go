// Package pipeline sequences the text-processing stages over a dataset:
// cleanup, stopword removal, term frequencies, vocabulary, cluster reports
// and the per-cluster frequency table.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/tweetstats/models"
	"github.com/dtnitsch/tweetstats/pkg/analytics"
	"github.com/dtnitsch/tweetstats/pkg/cluster"
	"github.com/dtnitsch/tweetstats/pkg/language"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
	"github.com/dtnitsch/tweetstats/pkg/markup"
	"github.com/dtnitsch/tweetstats/pkg/normalizer"
)

// Pipeline runs the processing stages configured by a models.Config.
type Pipeline struct {
	cfg    models.Config
	logger *slog.Logger
	tagger *language.Tagger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for stage progress.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTagger sets the language tagger, replacing the one New would build
// from cfg.Languages.
func WithTagger(t *language.Tagger) Option {
	return func(p *Pipeline) { p.tagger = t }
}

// New validates cfg and builds a pipeline. A language tagger is built only
// when cfg.DetectLanguage is set and none was supplied.
func New(cfg models.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	if cfg.DetectLanguage && p.tagger == nil {
		t, err := language.NewTagger(cfg.Languages)
		if err != nil {
			return nil, fmt.Errorf("failed to build language tagger: %w", err)
		}
		p.tagger = t
	}
	if p.tagger != nil {
		p.logger.Info("Language detection enabled", "languages", p.tagger.Codes())
	}

	return p, nil
}

// Result carries every artefact of a run.
type Result struct {
	// Dataset is the input after cleanup, with the term-frequency column
	// (and the language column when enabled). It still holds empty texts.
	Dataset *models.Dataset
	// Kept holds the records of Dataset whose text is non-empty.
	Kept *models.Dataset

	TermFrequencies []analytics.TermFrequency
	Vocabulary      analytics.Vocabulary

	Clusters     cluster.Report // over Dataset
	KeptClusters cluster.Report // over Kept
	EmptyBefore  cluster.EmptyReport
	EmptyAfter   cluster.EmptyReport

	Languages []language.Share // nil when detection is off

	Table mapreduce.ClusterTable // over Kept
}

// Run processes ds in place and returns the results. Any stage failure aborts
// the run; the dataset may then be partially transformed.
func (p *Pipeline) Run(ctx context.Context, ds *models.Dataset) (*Result, error) {
	textCol := p.cfg.TextColumn
	clusterCol := p.cfg.ClusterColumn
	res := &Result{Dataset: ds}

	step := func(name string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.logger.Debug("Running stage", "stage", name, "records", ds.Len())
		if err := fn(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"strip markup", func() error {
			if !p.cfg.StripMarkup {
				return nil
			}
			return markup.Strip(ds, textCol)
		}},
		{"detect language", func() error {
			if p.tagger == nil {
				return nil
			}
			if err := p.tagger.Tag(ds, textCol, p.cfg.LanguageColumn); err != nil {
				return err
			}
			shares, err := language.Distribution(ds, p.cfg.LanguageColumn)
			res.Languages = shares
			return err
		}},
		{"normalize", func() error {
			return normalizer.Normalize(ds, textCol)
		}},
		{"remove stopwords", func() error {
			return analytics.RemoveStopwords(ds, textCol)
		}},
		{"term frequencies", func() error {
			tfs, err := analytics.TermFrequencies(ds, textCol)
			res.TermFrequencies = tfs
			return err
		}},
		{"vocabulary", func() error {
			v, err := analytics.ExtractVocabulary(ds, textCol)
			res.Vocabulary = v
			return err
		}},
		{"term frequency column", func() error {
			return analytics.AddTermFrequencyColumn(ds, res.TermFrequencies, p.cfg.TermFrequencyColumn)
		}},
		{"cluster cardinality", func() error {
			r, err := cluster.Cardinality(ds, clusterCol)
			res.Clusters = r
			return err
		}},
		{"empty report", func() error {
			r, err := cluster.EmptyStats(ds, textCol)
			res.EmptyBefore = r
			return err
		}},
		{"eliminate empty", func() error {
			kept, err := cluster.EliminateEmpty(ds, textCol)
			res.Kept = kept
			return err
		}},
		{"empty report after elimination", func() error {
			r, err := cluster.EmptyStats(res.Kept, textCol)
			res.EmptyAfter = r
			return err
		}},
		{"kept cluster cardinality", func() error {
			r, err := cluster.Cardinality(res.Kept, clusterCol)
			res.KeptClusters = r
			return err
		}},
		{"cluster term frequencies", func() error {
			table, err := mapreduce.ReduceByClusterParallel(ctx, res.Kept, textCol, clusterCol, p.cfg.Workers)
			res.Table = table
			return err
		}},
	}

	for _, s := range steps {
		if err := step(s.name, s.fn); err != nil {
			return nil, err
		}
	}

	p.logger.Info("Pipeline complete",
		"records", ds.Len(),
		"kept", res.Kept.Len(),
		"clusters", res.Clusters.Count,
		"vocabulary", res.Vocabulary.Len())

	return res, nil
}
