package session

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/tweetstats/pkg/storage"
)

var files = &storage.Storage{}

// RunInfo represents metadata about one processing run.
type RunInfo struct {
	RunID        string    `yaml:"run_id"`
	Created      time.Time `yaml:"created"`
	Source       string    `yaml:"source"`
	Records      int       `yaml:"records"`
	KeptRecords  int       `yaml:"kept_records"`
	Clusters     int       `yaml:"clusters"`
	LabelPreview []string  `yaml:"label_preview,omitempty"` // First 3 cluster labels
}

// RunIndex represents the index.yaml file at the results root.
type RunIndex struct {
	Runs []RunInfo `yaml:"runs"`
}

// GenerateRunID returns a new ULID. ULIDs sort by creation time, so the
// index and the run directories list chronologically.
func GenerateRunID() string {
	return ulid.Make().String()
}

// RunCreatedAt extracts the creation time encoded in a run ID.
func RunCreatedAt(runID string) (time.Time, error) {
	id, err := ulid.Parse(runID)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid run ID %q: %w", runID, err)
	}
	return ulid.Time(id.Time()), nil
}

// RunDir returns the full path to a run directory.
func RunDir(baseDir, runID string) string {
	return filepath.Join(baseDir, "runs", runID)
}

// RunIndexPath returns the path to the run index file (at results root).
func RunIndexPath(baseDir string) string {
	return filepath.Join(baseDir, "index.yaml")
}

// RunExists checks if a run directory exists and has a summary file.
func RunExists(baseDir, runID string) bool {
	return files.HasFile(filepath.Join(RunDir(baseDir, runID), "summary.yaml"))
}

// EnsureRunDir creates the run directory structure if it doesn't exist.
func EnsureRunDir(baseDir, runID string) (string, error) {
	runDir := RunDir(baseDir, runID)
	if err := files.EnsureDir(runDir); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return runDir, nil
}

// LoadRunIndex reads index.yaml. A missing file yields an empty index.
func LoadRunIndex(baseDir string) (*RunIndex, error) {
	var index RunIndex
	path := RunIndexPath(baseDir)
	if !files.HasFile(path) {
		return &index, nil
	}
	data, err := files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run index: %w", err)
	}
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse run index: %w", err)
	}
	return &index, nil
}

// UpdateRunIndex adds or updates a run entry in index.yaml, newest first.
func UpdateRunIndex(baseDir string, info RunInfo) error {
	index, err := LoadRunIndex(baseDir)
	if err != nil {
		return err
	}

	found := false
	for i, r := range index.Runs {
		if r.RunID == info.RunID {
			index.Runs[i] = info
			found = true
			break
		}
	}
	if !found {
		index.Runs = append(index.Runs, info)
	}

	return saveRunIndex(baseDir, index)
}

// RemoveRun deletes the run directory and drops the run from index.yaml.
// It reports whether the run was indexed.
func RemoveRun(baseDir, runID string) (bool, error) {
	if err := files.RemoveAll(RunDir(baseDir, runID)); err != nil {
		return false, err
	}

	index, err := LoadRunIndex(baseDir)
	if err != nil {
		return false, err
	}
	kept := index.Runs[:0]
	for _, r := range index.Runs {
		if r.RunID != runID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(index.Runs) {
		return false, nil
	}
	index.Runs = kept
	return true, saveRunIndex(baseDir, index)
}

func saveRunIndex(baseDir string, index *RunIndex) error {
	sort.Slice(index.Runs, func(i, j int) bool {
		return index.Runs[i].RunID > index.Runs[j].RunID
	})

	output, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal run index: %w", err)
	}
	if err := files.SaveFile(RunIndexPath(baseDir), output); err != nil {
		return fmt.Errorf("failed to write run index: %w", err)
	}
	return nil
}

// GetLabelPreview returns the first n labels for preview purposes.
func GetLabelPreview(labels []string, n int) []string {
	if len(labels) <= n {
		return labels
	}
	return labels[:n]
}
