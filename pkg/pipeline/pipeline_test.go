package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/tweetstats/models"
	"github.com/dtnitsch/tweetstats/pkg/analytics"
	"github.com/dtnitsch/tweetstats/pkg/mapreduce"
)

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Columns: []string{"text", "sentiment"},
		Records: []models.Record{
			{"text": "I LOVE this sunny day! http://pic.ly/123", "sentiment": "4"},
			{"text": "@bob :( 100%", "sentiment": "0"},
			{"text": "Rainy day, so sad and cold", "sentiment": "0"},
			{"text": "the and of", "sentiment": "4"},
			{"text": "Sunny sunny &amp; happy", "sentiment": "4"},
		},
	}
}

func TestRun(t *testing.T) {
	cfg := models.DefaultConfig()
	p, err := New(cfg)
	require.NoError(t, err)

	ds := sampleDataset()
	res, err := p.Run(context.Background(), ds)
	require.NoError(t, err)

	texts := make([]string, ds.Len())
	for i, r := range ds.Records {
		texts[i] = r["text"]
	}
	assert.Equal(t, []string{
		"love sunny day",
		"",
		"rainy day sad cold",
		"",
		"sunny sunny amp happy",
	}, texts)

	assert.Equal(t, []string{"text", "sentiment", "term_frequency"}, ds.Columns)
	assert.Equal(t, `{"day":1,"love":1,"sunny":1}`, ds.Records[0]["term_frequency"])

	assert.Equal(t, 2, res.Clusters.Count)
	assert.Equal(t, 2, res.EmptyBefore.Empty)
	assert.InDelta(t, 40.0, res.EmptyBefore.Percentage, 1e-9)
	assert.False(t, res.EmptyAfter.HasEmpty())
	assert.Equal(t, 3, res.Kept.Len())
	assert.Equal(t, 8, res.Vocabulary.Len())
	assert.Nil(t, res.Languages)

	want := mapreduce.ClusterTable{
		"0": {"rainy": 1, "day": 1, "sad": 1, "cold": 1},
		"4": {"love": 1, "sunny": 3, "day": 1, "amp": 1, "happy": 1},
	}
	assert.Equal(t, want, res.Table)
	assert.Equal(t, map[string]int{"0": 1, "4": 2}, res.KeptClusters.Sizes)
}

func TestRun_StripMarkupAndParallel(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.StripMarkup = true
	cfg.Workers = 3

	p, err := New(cfg)
	require.NoError(t, err)

	res, err := p.Run(context.Background(), sampleDataset())
	require.NoError(t, err)

	// &amp; decodes to '&', which the symbol rule removes.
	assert.Equal(t, analytics.TermFrequency{"love": 1, "sunny": 3, "day": 1, "happy": 1}, res.Table["4"])
}

func TestRun_MissingColumn(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.ClusterColumn = "label"

	p, err := New(cfg)
	require.NoError(t, err)

	_, err = p.Run(context.Background(), sampleDataset())
	var mc *models.MissingColumnError
	require.True(t, errors.As(err, &mc), "error = %v", err)
	assert.Equal(t, "label", mc.Column)
	assert.Equal(t, 0, mc.Index)
}

func TestRun_Cancelled(t *testing.T) {
	p, err := New(models.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Run(ctx, sampleDataset())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyDataset(t *testing.T) {
	p, err := New(models.DefaultConfig())
	require.NoError(t, err)

	res, err := p.Run(context.Background(), &models.Dataset{Columns: []string{"text", "sentiment"}})
	require.NoError(t, err)
	assert.Zero(t, res.Clusters.Count)
	assert.False(t, res.EmptyBefore.HasEmpty())
	assert.Empty(t, res.Table)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Workers = 0
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = models.DefaultConfig()
	cfg.DetectLanguage = true
	cfg.Languages = []string{"en", "zz"}
	_, err = New(cfg)
	assert.Error(t, err)
}
