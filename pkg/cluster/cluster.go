// Package cluster reports on the categorical grouping of a dataset and
// prunes records whose text is empty.
package cluster

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/tweetstats/models"
)

// Report describes the distinct values of a categorical column.
type Report struct {
	Column string         `json:"column" yaml:"column"`
	Count  int            `json:"count" yaml:"count"`
	Labels []string       `json:"labels" yaml:"labels"`
	Sizes  map[string]int `json:"sizes" yaml:"sizes"`
}

func (r Report) String() string {
	return fmt.Sprintf("The dataset has %d clusters in the %s column.", r.Count, r.Column)
}

// Cardinality counts the distinct values of col. A dataset with no records
// has zero clusters.
func Cardinality(ds *models.Dataset, col string) (Report, error) {
	sizes := make(map[string]int)
	for i := range ds.Records {
		label, err := ds.Lookup(i, col)
		if err != nil {
			return Report{}, err
		}
		sizes[label]++
	}

	labels := make([]string, 0, len(sizes))
	for l := range sizes {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	return Report{Column: col, Count: len(labels), Labels: labels, Sizes: sizes}, nil
}

// EmptyReport counts records whose text column holds an empty string.
type EmptyReport struct {
	Column     string  `json:"column" yaml:"column"`
	Total      int     `json:"total" yaml:"total"`
	Empty      int     `json:"empty" yaml:"empty"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// HasEmpty reports whether at least one record is empty.
func (r EmptyReport) HasEmpty() bool {
	return r.Empty > 0
}

// Lines renders the report the way the process command prints it.
func (r EmptyReport) Lines() []string {
	if !r.HasEmpty() {
		return []string{fmt.Sprintf("There are no empty elements in the %s", r.Column)}
	}
	return []string{
		fmt.Sprintf("There are empty elements in the %s", r.Column),
		fmt.Sprintf("The percentage of empty elements in the %s column is: %.2f%%", r.Column, r.Percentage),
	}
}

// EmptyStats counts empty values of col. A missing column is an error, not
// an empty value.
func EmptyStats(ds *models.Dataset, col string) (EmptyReport, error) {
	report := EmptyReport{Column: col, Total: ds.Len()}
	for i := range ds.Records {
		text, err := ds.Lookup(i, col)
		if err != nil {
			return EmptyReport{}, err
		}
		if text == "" {
			report.Empty++
		}
	}

	if report.Empty > 0 {
		report.Percentage = float64(report.Empty) / float64(report.Total) * 100
	}
	return report, nil
}

// EliminateEmpty returns a new dataset holding only the records whose col is
// non-empty, in their original order. ds is not modified.
func EliminateEmpty(ds *models.Dataset, col string) (*models.Dataset, error) {
	for i := range ds.Records {
		if _, err := ds.Lookup(i, col); err != nil {
			return nil, err
		}
	}
	return ds.Filter(func(r models.Record) bool { return r[col] != "" }), nil
}

// GroupTexts collects textCol per clusterCol value, in record order.
func GroupTexts(ds *models.Dataset, textCol, clusterCol string) (map[string][]string, error) {
	groups := make(map[string][]string)
	for i := range ds.Records {
		label, err := ds.Lookup(i, clusterCol)
		if err != nil {
			return nil, err
		}
		text, err := ds.Lookup(i, textCol)
		if err != nil {
			return nil, err
		}
		groups[label] = append(groups[label], text)
	}
	return groups, nil
}
