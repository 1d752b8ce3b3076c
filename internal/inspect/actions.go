package inspect

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/tweetstats/internal/common"
	"github.com/dtnitsch/tweetstats/pkg/analytics"
	"github.com/dtnitsch/tweetstats/pkg/cluster"
	"github.com/dtnitsch/tweetstats/pkg/dataset"
	"github.com/dtnitsch/tweetstats/pkg/manifest"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
	"github.com/dtnitsch/tweetstats/pkg/normalizer"
	"github.com/dtnitsch/tweetstats/pkg/pipeline"
)

// InspectAction prints the first (or, with --last, the last) rows of a CSV
// without processing it.
func InspectAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	path := cfg.Input
	if c.NArg() > 0 {
		path = c.Args().First()
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%s: %d records, columns %v\n", path, ds.Len(), ds.Columns)
	if c.Bool("last") {
		tail := ds.Tail(cfg.PreviewRows)
		common.PrintRecords(out, ds.Columns, tail, ds.Len()-len(tail))
		return nil
	}
	common.PrintRecords(out, ds.Columns, ds.Head(cfg.PreviewRows), 0)
	return nil
}

// VocabAction prints the vocabulary size of the cleaned text column and its
// first words in ascending order.
func VocabAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	logger := common.ActionLogger(c, cfg)

	ds, err := dataset.Load(cfg.Input)
	if err != nil {
		return err
	}
	if !c.Bool("raw") {
		if err := normalizer.Normalize(ds, cfg.TextColumn); err != nil {
			return err
		}
		if err := analytics.RemoveStopwords(ds, cfg.TextColumn); err != nil {
			return err
		}
	}

	vocab, err := analytics.ExtractVocabulary(ds, cfg.TextColumn)
	if err != nil {
		return err
	}
	logger.Debug("Extracted vocabulary", "records", ds.Len(), "words", vocab.Len())

	out := c.App.Writer
	fmt.Fprintf(out, "Vocabulary size: %d\n", vocab.Len())
	for _, w := range analytics.SortedWords(vocab.Sorted(), cfg.VocabularyPreview) {
		fmt.Fprintln(out, w)
	}
	return nil
}

// ClustersAction runs the pipeline in memory and prints the cluster report.
// Nothing is written to disk.
func ClustersAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	samples := c.Int("samples")
	if samples < 0 {
		return fmt.Errorf("samples must not be negative, got %d", samples)
	}

	logger := common.ActionLogger(c, cfg)

	ds, err := dataset.Load(cfg.Input)
	if err != nil {
		return err
	}
	total := ds.Len()

	p, err := pipeline.New(*cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := p.Run(c.Context, ds)
	if err != nil {
		return err
	}

	m := manifest.Generate(manifest.Input{
		Source:       cfg.Input,
		TotalRecords: total,
		EmptyBefore:  res.EmptyBefore,
		EmptyAfter:   res.EmptyAfter,
		Clusters:     res.KeptClusters,
		Table:        res.Table,
		Vocabulary:   res.Vocabulary.Len(),
		Languages:    res.Languages,
	})

	out := c.App.Writer
	switch format := c.String("format"); format {
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("error marshalling report: %w", err)
		}
		fmt.Fprint(out, string(data))
	case "text", "":
		groups, err := cluster.GroupTexts(res.Kept, cfg.TextColumn, cfg.ClusterColumn)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, res.Clusters.String())
		for _, line := range res.EmptyBefore.Lines() {
			fmt.Fprintln(out, line)
		}
		for _, cs := range m.Clusters {
			common.Rule(out, fmt.Sprintf("Cluster %s (%d records, %d words)", cs.Label, cs.Records, cs.TotalWords))
			mapreduce.PrintTopKeywords(out, res.Table[cs.Label], cfg.TopCount)
			texts := groups[cs.Label]
			if len(texts) > samples {
				texts = texts[:samples]
			}
			for _, t := range texts {
				fmt.Fprintf(out, "  > %s\n", t)
			}
		}
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or text)", format)
	}
	return nil
}
