package models

import (
	"fmt"
	"sort"
)

// Record is one row of a dataset: column name -> raw string value.
type Record map[string]string

// Get returns the value stored under col, or a *MissingColumnError when the
// record has no such column. An empty value is not an error.
func (r Record) Get(col string) (string, error) {
	v, ok := r[col]
	if !ok {
		return "", &MissingColumnError{Column: col, Index: -1}
	}
	return v, nil
}

// Keys returns the record's column names in ascending order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dataset is an ordered collection of records. Columns keeps the header
// order (input header first, then derived columns in the order they were
// added) since Go maps carry no ordering.
type Dataset struct {
	Columns []string
	Records []Record
}

// NewDataset builds a dataset from records. Columns are taken from the first
// record, sorted.
func NewDataset(records ...Record) *Dataset {
	ds := &Dataset{Records: records}
	if len(records) > 0 {
		ds.Columns = records[0].Keys()
	}
	return ds
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Head returns up to n records from the start of the dataset.
func (d *Dataset) Head(n int) []Record {
	if n <= 0 {
		return nil
	}
	if n > len(d.Records) {
		n = len(d.Records)
	}
	return d.Records[:n]
}

// Tail returns up to n records from the end of the dataset.
func (d *Dataset) Tail(n int) []Record {
	if n <= 0 {
		return nil
	}
	start := len(d.Records) - n
	if start < 0 {
		start = 0
	}
	return d.Records[start:]
}

// HasColumn reports whether col is part of the dataset header.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Lookup returns the value of col for record i, failing fast with an indexed
// *MissingColumnError.
func (d *Dataset) Lookup(i int, col string) (string, error) {
	v, err := d.Records[i].Get(col)
	if err != nil {
		return "", withIndex(err, i)
	}
	return v, nil
}

// AddColumn sets col on every record to the value at the same index and
// appends col to the header if it is new.
func (d *Dataset) AddColumn(col string, values []string) error {
	if len(values) != len(d.Records) {
		return fmt.Errorf("add column %q: got %d values for %d records", col, len(values), len(d.Records))
	}
	for i, rec := range d.Records {
		rec[col] = values[i]
	}
	if !d.HasColumn(col) {
		d.Columns = append(d.Columns, col)
	}
	return nil
}

// Filter returns a new dataset holding the records for which keep returns
// true, in their original order. Records are shared, not copied.
func (d *Dataset) Filter(keep func(Record) bool) *Dataset {
	out := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Records: make([]Record, 0, len(d.Records)),
	}
	for _, rec := range d.Records {
		if keep(rec) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}
