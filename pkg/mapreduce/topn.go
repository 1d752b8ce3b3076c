package mapreduce

import (
	"fmt"
	"io"

	"github.com/dtnitsch/tweetstats/pkg/analytics"
)

// TopKeywords returns the top N keywords from aggregated word counts as formatted strings.
// Each string is formatted as "word:count" (e.g., "happy:1153").
// Ties are ordered by word ascending.
func TopKeywords(wordCounts analytics.TermFrequency, n int) []string {
	top := analytics.TopN(wordCounts, n)

	keywords := make([]string, len(top))
	for i, wc := range top {
		keywords[i] = wc.String()
	}

	return keywords
}

// PrintTopKeywords prints the top N keywords in a numbered list format.
func PrintTopKeywords(w io.Writer, wordCounts analytics.TermFrequency, n int) {
	for i, wc := range analytics.TopN(wordCounts, n) {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, wc.Word, wc.Count)
	}
}

// TopByCluster returns the top n words of every cluster, or all of them
// when n <= 0.
func TopByCluster(table ClusterTable, n int) map[string][]analytics.WordCount {
	out := make(map[string][]analytics.WordCount, len(table))
	for label, tf := range table {
		k := n
		if k <= 0 {
			k = len(tf)
		}
		out[label] = analytics.TopN(tf, k)
	}
	return out
}
