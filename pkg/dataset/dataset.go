// Package dataset loads and writes flat CSV tables as models.Dataset values.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtnitsch/tweetstats/models"
)

const utf8BOM = "\ufeff"

// Load reads the CSV file at path. The first row is the header.
func Load(path string) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer f.Close()

	return readCSV(f, path)
}

// Read decodes CSV data from r. The first row is the header.
func Read(r io.Reader) (*models.Dataset, error) {
	return readCSV(r, "<reader>")
}

// ReadFrom is Read with source naming the input in MalformedInputError.
func ReadFrom(r io.Reader, source string) (*models.Dataset, error) {
	return readCSV(r, source)
}

func readCSV(r io.Reader, source string) (*models.Dataset, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, &models.MalformedInputError{Source: source, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, malformed(source, err)
	}

	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if _, dup := seen[h]; dup {
			return nil, &models.MalformedInputError{Source: source, Line: 1, Err: fmt.Errorf("duplicate column %q", h)}
		}
		seen[h] = struct{}{}
	}

	ds := &models.Dataset{Columns: headers}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(source, err)
		}

		rec := make(models.Record, len(headers))
		for i, h := range headers {
			rec[h] = row[i]
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// malformed converts csv parse errors (which carry their own line number)
// into a MalformedInputError.
func malformed(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &models.MalformedInputError{Source: source, Line: pe.Line, Err: pe.Err}
	}
	return &models.MalformedInputError{Source: source, Err: err}
}

// Write serializes ds to path, creating parent directories as needed.
func Write(ds *models.Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := WriteTo(f, ds); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteTo writes ds as CSV: the header is ds.Columns, followed by one row per
// record in order. Every record must carry exactly the header's columns.
func WriteTo(w io.Writer, ds *models.Dataset) error {
	if len(ds.Columns) == 0 {
		return fmt.Errorf("cannot write header: %w", models.ErrEmptyDataset)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	row := make([]string, len(ds.Columns))
	for i, rec := range ds.Records {
		if err := checkSchema(i, rec, ds.Columns); err != nil {
			writer.Flush()
			return err
		}
		for j, col := range ds.Columns {
			row[j] = rec[col]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func checkSchema(index int, rec models.Record, columns []string) error {
	for _, col := range columns {
		if _, ok := rec[col]; !ok {
			return &models.SchemaMismatchError{Index: index, Column: col, Reason: "is missing"}
		}
	}
	if len(rec) != len(columns) {
		for _, key := range rec.Keys() {
			found := false
			for _, col := range columns {
				if col == key {
					found = true
					break
				}
			}
			if !found {
				return &models.SchemaMismatchError{Index: index, Column: key, Reason: "is not in the header"}
			}
		}
	}
	return nil
}
