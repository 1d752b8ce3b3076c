package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/tweetstats/internal/common"
	"github.com/dtnitsch/tweetstats/models"
	dbpkg "github.com/dtnitsch/tweetstats/pkg/db"
	"github.com/dtnitsch/tweetstats/pkg/manifest"
	"github.com/dtnitsch/tweetstats/pkg/session"
	"github.com/dtnitsch/tweetstats/pkg/storage"
)

// RunsAction lists recorded runs, newest first. Without a database it falls
// back to the results index.yaml.
func RunsAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	out := c.App.Writer
	limit := c.Int("limit")

	if cfg.DatabasePath == "" {
		return listFromIndex(c, cfg, limit)
	}

	database, err := dbpkg.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs found")
		return nil
	}

	// Print table header
	fmt.Fprintf(out, "%-26s %-20s %-8s %-8s %-8s %-8s %s\n",
		"Run", "Created", "Records", "Kept", "Clusters", "Vocab", "Source")
	fmt.Fprintln(out, strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Fprintf(out, "%-26s %-20s %-8d %-8d %-8d %-8d %s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.TotalRecords,
			r.KeptRecords,
			r.ClusterCount,
			r.VocabularySize,
			r.Source,
		)
	}

	fmt.Fprintf(out, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(out, "\nTip: Use 'tweetstats runs show <id>' to see details\n")

	return nil
}

func listFromIndex(c *cli.Context, cfg *models.Config, limit int) error {
	out := c.App.Writer
	index, err := session.LoadRunIndex(cfg.ResultsDir)
	if err != nil {
		return err
	}
	if len(index.Runs) == 0 {
		fmt.Fprintln(out, "No runs found")
		return nil
	}

	runs := index.Runs
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}

	fmt.Fprintf(out, "%-26s %-20s %-8s %-8s %-8s %s\n",
		"Run", "Created", "Records", "Kept", "Clusters", "Labels")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, r := range runs {
		fmt.Fprintf(out, "%-26s %-20s %-8d %-8d %-8d %s\n",
			r.RunID,
			r.Created.Local().Format("2006-01-02 15:04:05"),
			r.Records,
			r.KeptRecords,
			r.Clusters,
			strings.Join(r.LabelPreview, ","),
		)
	}
	fmt.Fprintf(out, "\nTotal: %d runs\n", len(runs))
	return nil
}

// runIDOrLatest returns the run ID from args, or the newest indexed run.
func runIDOrLatest(c *cli.Context, cfg *models.Config) (string, error) {
	if c.NArg() > 0 {
		id := c.Args().First()
		if _, err := session.RunCreatedAt(id); err != nil {
			return "", err
		}
		return id, nil
	}

	index, err := session.LoadRunIndex(cfg.ResultsDir)
	if err != nil {
		return "", err
	}
	if len(index.Runs) == 0 {
		return "", fmt.Errorf("no runs found. Run 'tweetstats process' first")
	}
	return index.Runs[0].RunID, nil
}

// RunAction shows one run: its manifest from the results directory and, when
// a database is configured, its stored top terms per cluster.
func RunAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	out := c.App.Writer

	runID, err := runIDOrLatest(c, cfg)
	if err != nil {
		return err
	}

	runDir := session.RunDir(cfg.ResultsDir, runID)
	if session.RunExists(cfg.ResultsDir, runID) {
		m, err := manifest.Load(runDir, &storage.Storage{})
		if err != nil {
			return err
		}

		if fields := c.String("fields"); fields != "" {
			data, err := json.MarshalIndent(common.FilterFields(m, fields), "", "  ")
			if err != nil {
				return fmt.Errorf("error marshalling run: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Run %s\n", m.RunID)
		fmt.Fprintln(out, strings.Repeat("=", 60))
		fmt.Fprintf(out, "Generated:   %s\n", m.GeneratedAt)
		fmt.Fprintf(out, "Directory:   %s\n", runDir)
		fmt.Fprintf(out, "Source:      %s (sha256 %s)\n", m.Source, m.SourceSHA256)
		fmt.Fprintf(out, "Output:      %s\n", m.Output)
		fmt.Fprintf(out, "Records:     %d total, %d kept\n", m.TotalRecords, m.KeptRecords)
		fmt.Fprintf(out, "Clusters:    %d in %s\n", m.ClusterCount, m.ClusterColumn)
		fmt.Fprintf(out, "Vocabulary:  %d words\n", m.VocabularySize)
		for _, line := range m.EmptyBefore.Lines() {
			fmt.Fprintln(out, line)
		}
		if len(m.RenderErrors) > 0 {
			fmt.Fprintf(out, "Render errors: %d\n", len(m.RenderErrors))
		}
	} else {
		fmt.Fprintf(out, "Run %s (no summary in %s)\n", runID, runDir)
	}

	if cfg.DatabasePath == "" {
		return nil
	}

	database, err := dbpkg.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	labels, err := database.RunClusters(runID)
	if err != nil {
		return err
	}
	for _, label := range labels {
		terms, err := database.TopClusterTerms(runID, label, cfg.TopCount)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nCluster %s:\n", label)
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for i, wc := range terms {
			fmt.Fprintf(out, "%2d. %s: %d\n", i+1, wc.Word, wc.Count)
		}
	}

	return nil
}

// DeleteAction removes a run from the results directory, the index and,
// when configured, the database.
func DeleteAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}
	logger := common.ActionLogger(c, cfg)

	if c.NArg() == 0 {
		return fmt.Errorf("run ID is required")
	}
	runID := c.Args().First()
	if _, err := session.RunCreatedAt(runID); err != nil {
		return err
	}

	indexed, err := session.RemoveRun(cfg.ResultsDir, runID)
	if err != nil {
		return err
	}
	found := indexed

	if cfg.DatabasePath != "" {
		database, err := dbpkg.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		switch err := database.DeleteRun(runID); {
		case err == nil:
			found = true
		case errors.Is(err, dbpkg.ErrRunNotFound):
			logger.Debug("Run not in database", "run_id", runID)
		default:
			return err
		}
	}

	if !found {
		return fmt.Errorf("run %s not found", runID)
	}
	logger.Info("Deleted run", "run_id", runID)
	fmt.Fprintf(c.App.Writer, "Deleted run %s\n", runID)
	return nil
}
