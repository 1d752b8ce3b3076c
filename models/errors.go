package models

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when an operation needs at least one column or
// record to produce output (e.g. writing a CSV header).
var ErrEmptyDataset = errors.New("dataset is empty")

// MissingColumnError reports a record that lacks a column an operation reads.
// Index is the record's position in the dataset, -1 when unknown.
type MissingColumnError struct {
	Column string
	Index  int
}

func (e *MissingColumnError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("missing column %q", e.Column)
	}
	return fmt.Sprintf("record %d: missing column %q", e.Index, e.Column)
}

// MalformedInputError reports input that cannot be decoded into a table.
type MalformedInputError struct {
	Source string
	Line   int
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input %s (line %d): %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed input %s: %v", e.Source, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// SchemaMismatchError reports a record whose key set differs from the
// dataset header when serializing.
type SchemaMismatchError struct {
	Index  int
	Column string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("record %d: column %q %s", e.Index, e.Column, e.Reason)
}

// withIndex fills in the record index of a MissingColumnError coming from
// Record.Get. Other errors pass through unchanged.
func withIndex(err error, i int) error {
	var mc *MissingColumnError
	if errors.As(err, &mc) && mc.Index < 0 {
		return &MissingColumnError{Column: mc.Column, Index: i}
	}
	return err
}
