package manifest

import (
	"github.com/dtnitsch/tweetstats/pkg/cluster"
	"github.com/dtnitsch/tweetstats/pkg/language"
)

// RunManifest summarizes one processing run. It is written next to the run's
// outputs as summary.yaml and summary.json so a run can be inspected without
// reloading the processed CSV.
type RunManifest struct {
	RunID          string              `json:"run_id" yaml:"run_id"`
	GeneratedAt    string              `json:"generated_at" yaml:"generated_at"`
	Source         string              `json:"source" yaml:"source"`
	SourceSHA256   string              `json:"source_sha256,omitempty" yaml:"source_sha256,omitempty"`
	Output         string              `json:"output" yaml:"output"`
	TotalRecords   int                 `json:"total_records" yaml:"total_records"`
	KeptRecords    int                 `json:"kept_records" yaml:"kept_records"`
	EmptyBefore    cluster.EmptyReport `json:"empty_before" yaml:"empty_before"`
	EmptyAfter     cluster.EmptyReport `json:"empty_after" yaml:"empty_after"`
	ClusterColumn  string              `json:"cluster_column" yaml:"cluster_column"`
	ClusterCount   int                 `json:"cluster_count" yaml:"cluster_count"`
	VocabularySize int                 `json:"vocabulary_size" yaml:"vocabulary_size"`
	Languages      []language.Share    `json:"languages,omitempty" yaml:"languages,omitempty"`
	Clusters       []ClusterSummary    `json:"clusters" yaml:"clusters"`
	RenderedFiles  []string            `json:"rendered_files,omitempty" yaml:"rendered_files,omitempty"`
	RenderErrors   []string            `json:"render_errors,omitempty" yaml:"render_errors,omitempty"`
}

// ClusterSummary holds the per-cluster slice of a run.
type ClusterSummary struct {
	Label       string   `json:"label" yaml:"label"`
	Records     int      `json:"records" yaml:"records"`
	TotalWords  int      `json:"total_words" yaml:"total_words"`
	TopKeywords []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"` // "word:count"
}
