package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/tweetstats/pkg/cluster"
	"github.com/dtnitsch/tweetstats/pkg/language"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
	"github.com/dtnitsch/tweetstats/pkg/render"
	"github.com/dtnitsch/tweetstats/pkg/storage"
)

const (
	YAMLFile = "summary.yaml"
	JSONFile = "summary.json"

	topKeywordCount = 25
)

// Input carries the run results a manifest is built from.
// This is filled by the process action to avoid circular dependencies.
type Input struct {
	RunID        string
	Source       string
	SourceSHA256 string
	Output       string
	TotalRecords int
	EmptyBefore  cluster.EmptyReport
	EmptyAfter   cluster.EmptyReport
	Clusters     cluster.Report // cardinality of the kept records
	Table        mapreduce.ClusterTable
	Vocabulary   int
	Languages    []language.Share
	Render       render.Output
	Now          time.Time // zero means time.Now()
}

// Generate builds the manifest for one run. Clusters are listed in label
// order and each carries its top keywords.
func Generate(in Input) RunManifest {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	m := RunManifest{
		RunID:          in.RunID,
		GeneratedAt:    now.UTC().Format(time.RFC3339),
		Source:         in.Source,
		SourceSHA256:   in.SourceSHA256,
		Output:         in.Output,
		TotalRecords:   in.TotalRecords,
		KeptRecords:    in.EmptyAfter.Total,
		EmptyBefore:    in.EmptyBefore,
		EmptyAfter:     in.EmptyAfter,
		ClusterColumn:  in.Clusters.Column,
		ClusterCount:   in.Clusters.Count,
		VocabularySize: in.Vocabulary,
		Languages:      in.Languages,
		RenderedFiles:  in.Render.Files,
		RenderErrors:   in.Render.Errors,
	}

	for _, label := range in.Table.Labels() {
		tf := in.Table[label]
		m.Clusters = append(m.Clusters, ClusterSummary{
			Label:       label,
			Records:     in.Clusters.Sizes[label],
			TotalWords:  tf.Total(),
			TopKeywords: mapreduce.TopKeywords(tf, topKeywordCount),
		})
	}

	return m
}

// Save writes the manifest as summary.yaml and summary.json into dir and
// returns both paths.
func Save(m RunManifest, dir string, s *storage.Storage) (yamlPath, jsonPath string, err error) {
	yamlData, err := yaml.Marshal(m)
	if err != nil {
		return "", "", fmt.Errorf("error marshalling manifest yaml: %w", err)
	}
	jsonData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("error marshalling manifest json: %w", err)
	}

	yamlPath = filepath.Join(dir, YAMLFile)
	if err := s.SaveFile(yamlPath, yamlData); err != nil {
		return "", "", fmt.Errorf("error saving manifest: %w", err)
	}
	jsonPath = filepath.Join(dir, JSONFile)
	if err := s.SaveFile(jsonPath, jsonData); err != nil {
		return "", "", fmt.Errorf("error saving manifest: %w", err)
	}

	return yamlPath, jsonPath, nil
}

// Load reads a summary.yaml written by Save.
func Load(dir string, s *storage.Storage) (*RunManifest, error) {
	data, err := s.ReadFile(filepath.Join(dir, YAMLFile))
	if err != nil {
		return nil, err
	}
	var m RunManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error parsing manifest: %w", err)
	}
	return &m, nil
}
