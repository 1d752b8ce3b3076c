package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/tweetstats/models"
)

const sampleCSV = `text,sentiment
"Hello, world",4
,0
"multi
line",4
`

func TestRead(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "sentiment"}, ds.Columns)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "Hello, world", ds.Records[0]["text"])
	assert.Equal(t, "", ds.Records[1]["text"])
	assert.Equal(t, "multi\nline", ds.Records[2]["text"])
	assert.Equal(t, "4", ds.Records[2]["sentiment"])
}

func TestRead_StripsBOM(t *testing.T) {
	ds, err := Read(strings.NewReader("\ufefftext,sentiment\nhi,0\n"))
	require.NoError(t, err)
	assert.Equal(t, "text", ds.Columns[0])
	assert.Equal(t, "hi", ds.Records[0]["text"])
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"empty input", "", 0},
		{"short row", "text,sentiment\nonly-one\n", 2},
		{"long row", "text,sentiment\na,0\nb,4,extra\n", 3},
		{"duplicate header", "text,text\na,b\n", 1},
		{"bare quote", "text,sentiment\n\"unterminated,0\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			var me *models.MalformedInputError
			require.True(t, errors.As(err, &me), "error = %v, want *MalformedInputError", err)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, me.Line)
			}
		})
	}
}

func TestReadFrom_NamesSource(t *testing.T) {
	ds, err := ReadFrom(strings.NewReader(sampleCSV), "data/in.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "sentiment"}, ds.Columns)

	_, err = ReadFrom(strings.NewReader("text,sentiment\nonly-one\n"), "data/in.csv")
	var me *models.MalformedInputError
	require.True(t, errors.As(err, &me), "error = %v", err)
	assert.Equal(t, "data/in.csv", me.Source)
	assert.Equal(t, 2, me.Line)
}

func TestWriteTo_RoundTripKeepsColumnOrder(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, ds.AddColumn("term_frequency", []string{`{"hello":1}`, "{}", `{"line":1}`}))

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, ds))

	lines := strings.SplitN(buf.String(), "\n", 2)
	assert.Equal(t, "text,sentiment,term_frequency", lines[0])

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds.Columns, back.Columns)
	assert.Equal(t, ds.Records, back.Records)
}

func TestWriteTo_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name       string
		record     models.Record
		wantColumn string
	}{
		{"missing column", models.Record{"text": "b"}, "sentiment"},
		{"extra column", models.Record{"text": "b", "sentiment": "0", "extra": "x"}, "extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &models.Dataset{
				Columns: []string{"text", "sentiment"},
				Records: []models.Record{{"text": "a", "sentiment": "4"}, tt.record},
			}

			var buf bytes.Buffer
			err := WriteTo(&buf, ds)
			var sm *models.SchemaMismatchError
			require.True(t, errors.As(err, &sm), "error = %v, want *SchemaMismatchError", err)
			assert.Equal(t, 1, sm.Index)
			assert.Equal(t, tt.wantColumn, sm.Column)
		})
	}
}

func TestWriteTo_NoColumns(t *testing.T) {
	err := WriteTo(&bytes.Buffer{}, &models.Dataset{})
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	ds := models.NewDataset(
		models.Record{"sentiment": "0", "text": "sad day"},
		models.Record{"sentiment": "4", "text": "good day"},
	)

	require.NoError(t, Write(ds, path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sentiment", "text"}, back.Columns)
	assert.Equal(t, ds.Records, back.Records)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
