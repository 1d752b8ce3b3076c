package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/tweetstats/models"
)

func textDataset(texts ...string) *models.Dataset {
	ds := &models.Dataset{Columns: []string{"text"}}
	for _, t := range texts {
		ds.Records = append(ds.Records, models.Record{"text": t})
	}
	return ds
}

func TestTermFrequencies(t *testing.T) {
	ds := textDataset("this is a test tweet", "another example tweet", "this is just a tweet")

	tfs, err := TermFrequencies(ds, "text")
	require.NoError(t, err)

	want := []TermFrequency{
		{"this": 1, "is": 1, "a": 1, "test": 1, "tweet": 1},
		{"another": 1, "example": 1, "tweet": 1},
		{"this": 1, "is": 1, "just": 1, "a": 1, "tweet": 1},
	}
	assert.Equal(t, want, tfs)
}

func TestWordFrequency_CountsEqualTokens(t *testing.T) {
	a := &Analytics{}
	tests := []struct {
		text   string
		tokens int
	}{
		{"", 0},
		{"   ", 0},
		{"happy happy joy", 3},
		{"snake_case and día 2", 4},
		{"hello   hashtag", 2},
	}

	for _, tt := range tests {
		tf := a.WordFrequency(tt.text)
		assert.Equal(t, tt.tokens, tf.Total(), "text %q", tt.text)
		assert.Equal(t, len(a.Tokenize(tt.text)), tf.Total(), "text %q", tt.text)
	}

	assert.Equal(t, TermFrequency{"happy": 2, "joy": 1}, a.WordFrequency("happy happy joy"))
}

func TestTopN(t *testing.T) {
	tf := TermFrequency{"sun": 2, "happy": 5, "day": 2, "fun": 1, "art": 1}

	tests := []struct {
		n    int
		want []WordCount
	}{
		{3, []WordCount{{"happy", 5}, {"day", 2}, {"sun", 2}}},
		{10, []WordCount{{"happy", 5}, {"day", 2}, {"sun", 2}, {"art", 1}, {"fun", 1}}},
		{0, []WordCount{}},
		{-1, []WordCount{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TopN(tf, tt.n), "n=%d", tt.n)
	}

	assert.Empty(t, TopN(TermFrequency{}, 5))
	assert.Equal(t, "happy:5", WordCount{"happy", 5}.String())
}

func TestTermFrequencyAdd(t *testing.T) {
	tf := TermFrequency{"a": 1}
	tf.Add(TermFrequency{"a": 2, "b": 1})
	assert.Equal(t, TermFrequency{"a": 3, "b": 1}, tf)
}

func TestAddTermFrequencyColumn(t *testing.T) {
	ds := &models.Dataset{
		Columns: []string{"col1"},
		Records: []models.Record{{"col1": "val1"}, {"col1": "val2"}, {"col1": "val3"}},
	}
	tfs := []TermFrequency{
		{"term2": 2, "term1": 1},
		{"term1": 3, "term2": 4},
		nil,
	}

	require.NoError(t, AddTermFrequencyColumn(ds, tfs, "term_frequency"))

	assert.Equal(t, []string{"col1", "term_frequency"}, ds.Columns)
	assert.Equal(t, `{"term1":1,"term2":2}`, ds.Records[0]["term_frequency"])
	assert.Equal(t, `{}`, ds.Records[2]["term_frequency"])

	back, err := ParseTermFrequency(ds.Records[1]["term_frequency"])
	require.NoError(t, err)
	assert.Equal(t, TermFrequency{"term1": 3, "term2": 4}, back)

	assert.Error(t, AddTermFrequencyColumn(ds, tfs[:2], "term_frequency"))
}

func TestParseTermFrequency(t *testing.T) {
	tf, err := ParseTermFrequency("")
	require.NoError(t, err)
	assert.Empty(t, tf)

	_, err = ParseTermFrequency("not json")
	assert.Error(t, err)
}

func TestTermFrequencies_MissingColumn(t *testing.T) {
	ds := textDataset("fine")
	ds.Records = append(ds.Records, models.Record{"other": "x"})

	_, err := TermFrequencies(ds, "text")
	var mc *models.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, 1, mc.Index)
}
