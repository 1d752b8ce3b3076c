package process

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tweetstats/internal/common"
	"github.com/dtnitsch/tweetstats/pkg/analytics"
	"github.com/dtnitsch/tweetstats/pkg/dataset"
	"github.com/dtnitsch/tweetstats/pkg/db"
	"github.com/dtnitsch/tweetstats/pkg/manifest"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
	"github.com/dtnitsch/tweetstats/pkg/pipeline"
	"github.com/dtnitsch/tweetstats/pkg/render"
	"github.com/dtnitsch/tweetstats/pkg/session"
	"github.com/dtnitsch/tweetstats/pkg/storage"
)

// storedTermsPerCluster caps the words recorded per cluster in the history.
const storedTermsPerCluster = 100

func ProcessAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	logger := common.ActionLogger(c, cfg)
	startTime := time.Now()
	out := c.App.Writer
	s := &storage.Storage{}

	raw, err := s.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	ds, err := dataset.ReadFrom(bytes.NewReader(raw), cfg.Input)
	if err != nil {
		return err
	}
	totalRecords := ds.Len()
	logger.Info("Loaded dataset", "path", cfg.Input, "records", totalRecords, "columns", ds.Columns)

	common.Rule(out, fmt.Sprintf("First %d records", cfg.PreviewRows))
	common.PrintRecords(out, ds.Columns, ds.Head(cfg.PreviewRows), 0)

	p, err := pipeline.New(*cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := p.Run(c.Context, ds)
	if err != nil {
		return err
	}

	tail := ds.Tail(cfg.PreviewRows)
	common.Rule(out, fmt.Sprintf("Last %d records after cleanup and stopword removal", cfg.PreviewRows))
	common.PrintRecords(out, ds.Columns, tail, ds.Len()-len(tail))

	tfPreview := res.TermFrequencies
	if len(tfPreview) > cfg.PreviewRows {
		tfPreview = tfPreview[:cfg.PreviewRows]
	}
	common.Rule(out, "Term frequencies")
	common.PrintTermFrequencies(out, tfPreview)

	common.Rule(out, fmt.Sprintf("First %d words of the sorted vocabulary (%d total)", cfg.VocabularyPreview, res.Vocabulary.Len()))
	for _, w := range analytics.SortedWords(res.Vocabulary.Sorted(), cfg.VocabularyPreview) {
		fmt.Fprintln(out, w)
	}

	if n := c.Int("show-record"); n >= 1 && n <= ds.Len() {
		common.Rule(out, fmt.Sprintf("Record %d", n))
		common.PrintRecords(out, ds.Columns, ds.Records[n-1:n], n-1)
	}

	if err := dataset.Write(ds, cfg.Output); err != nil {
		return fmt.Errorf("failed to write processed dataset: %w", err)
	}
	logger.Info("Wrote processed dataset", "path", cfg.Output)

	common.Rule(out, "Clusters")
	fmt.Fprintln(out, res.Clusters.String())
	for _, line := range res.EmptyBefore.Lines() {
		fmt.Fprintln(out, line)
	}
	for _, line := range res.EmptyAfter.Lines() {
		fmt.Fprintln(out, line)
	}
	if len(res.Languages) > 0 {
		common.Rule(out, "Languages")
		for _, l := range res.Languages {
			fmt.Fprintf(out, "%s: %d\n", l.Language, l.Records)
		}
	}

	for _, label := range res.Table.Labels() {
		common.Rule(out, fmt.Sprintf("Top %d words - cluster %s", cfg.TopCount, label))
		mapreduce.PrintTopKeywords(out, res.Table[label], cfg.TopCount)
	}

	runID := session.GenerateRunID()
	runDir, err := session.EnsureRunDir(cfg.ResultsDir, runID)
	if err != nil {
		return err
	}

	var rendered render.Output
	if !c.Bool("no-render") {
		dirs := render.Dirs{
			WordClouds: filepath.Join(runDir, cfg.WordCloudDir),
			Histograms: filepath.Join(runDir, cfg.HistogramDir),
		}
		rendered = render.RenderClusters(render.NewPlotEmitter(), res.Table, dirs, cfg.TopCount, logger)
		logger.Info("Rendered cluster plots", "files", len(rendered.Files), "errors", len(rendered.Errors))
	}

	m := manifest.Generate(manifest.Input{
		RunID:        runID,
		Source:       cfg.Input,
		SourceSHA256: common.ContentHash(raw),
		Output:       cfg.Output,
		TotalRecords: totalRecords,
		EmptyBefore:  res.EmptyBefore,
		EmptyAfter:   res.EmptyAfter,
		Clusters:     res.KeptClusters,
		Table:        res.Table,
		Vocabulary:   res.Vocabulary.Len(),
		Languages:    res.Languages,
		Render:       rendered,
		Now:          startTime,
	})
	yamlPath, _, err := manifest.Save(m, runDir, s)
	if err != nil {
		return err
	}

	if err := session.UpdateRunIndex(cfg.ResultsDir, session.RunInfo{
		RunID:        runID,
		Created:      startTime.UTC(),
		Source:       cfg.Input,
		Records:      totalRecords,
		KeptRecords:  res.Kept.Len(),
		Clusters:     res.KeptClusters.Count,
		LabelPreview: session.GetLabelPreview(res.KeptClusters.Labels, 3),
	}); err != nil {
		logger.Warn("failed to update run index", "error", err)
	}

	if cfg.DatabasePath != "" {
		if err := recordRun(cfg.DatabasePath, m, runDir, startTime, res.Table); err != nil {
			logger.Warn("failed to record run history", "error", err, "db", cfg.DatabasePath)
		}
	}

	logger.Info("Processing complete",
		"run_id", runID,
		"summary", yamlPath,
		"duration", time.Since(startTime).Round(time.Millisecond).String())
	fmt.Fprintf(out, "\nRun %s saved to %s\n", runID, runDir)

	if len(rendered.Errors) > 0 && c.Bool("strict-render") {
		return cli.Exit(fmt.Sprintf("%d plot(s) failed to render", len(rendered.Errors)), 1)
	}
	return nil
}

func recordRun(dbPath string, m manifest.RunManifest, runDir string, created time.Time, table mapreduce.ClusterTable) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	err = database.InsertRun(db.Run{
		RunID:          m.RunID,
		CreatedAt:      created,
		Source:         m.Source,
		SourceSHA256:   m.SourceSHA256,
		Output:         m.Output,
		TotalRecords:   m.TotalRecords,
		KeptRecords:    m.KeptRecords,
		EmptyRecords:   m.EmptyBefore.Empty,
		ClusterCount:   m.ClusterCount,
		VocabularySize: m.VocabularySize,
		RunDir:         runDir,
	})
	if err != nil {
		return err
	}
	return database.InsertClusterTerms(m.RunID, table, storedTermsPerCluster)
}
