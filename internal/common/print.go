package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/tweetstats/models"
	"github.com/dtnitsch/tweetstats/pkg/analytics"
)

// PrintRecords prints records one block each, fields in column order.
// start is the dataset index of records[0]; printed numbers are 1-based.
func PrintRecords(w io.Writer, columns []string, records []models.Record, start int) {
	for i, rec := range records {
		fmt.Fprintf(w, "[%d]\n", start+i+1)
		for _, col := range columns {
			v, ok := rec[col]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %s: %s\n", col, v)
		}
	}
}

// PrintTermFrequencies prints one line per map, words ranked by count.
func PrintTermFrequencies(w io.Writer, tfs []analytics.TermFrequency) {
	for i, tf := range tfs {
		top := analytics.TopN(tf, len(tf))
		parts := make([]string, len(top))
		for j, wc := range top {
			parts[j] = wc.String()
		}
		fmt.Fprintf(w, "[%d] {%s}\n", i+1, strings.Join(parts, ", "))
	}
}

// Rule prints a section heading underlined with '='.
func Rule(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}
