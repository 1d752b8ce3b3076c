// Package analytics computes word statistics over the text column of a
// dataset: stopword filtering, term frequencies and vocabulary.
package analytics

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/dtnitsch/tweetstats/models"
)

// TermFrequency maps a word to the number of times it occurs in a scope
// (one record or one cluster).
type TermFrequency map[string]int

// Total returns the sum of all counts.
func (tf TermFrequency) Total() int {
	total := 0
	for _, c := range tf {
		total += c
	}
	return total
}

// Add accumulates the counts of other into tf.
func (tf TermFrequency) Add(other TermFrequency) {
	for word, count := range other {
		tf[word] += count
	}
}

// WordCount is a word paired with its count, used for ranked output.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

func (wc WordCount) String() string {
	return fmt.Sprintf("%s:%d", wc.Word, wc.Count)
}

// wordPattern matches letter/digit/underscore runs, the Unicode form of \w+.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

type Analytics struct{}

// Tokenize returns the word tokens of text in order.
func (a *Analytics) Tokenize(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// WordFrequency counts every word token of text. Stopwords are not removed
// here; that happens upstream on the dataset.
func (a *Analytics) WordFrequency(text string) TermFrequency {
	frequencies := make(TermFrequency)
	for _, word := range a.Tokenize(text) {
		frequencies[word]++
	}
	return frequencies
}

// TopN returns up to n entries of tf ordered by count descending, then word
// ascending so that ties come out the same on every run.
func TopN(tf TermFrequency, n int) []WordCount {
	counts := make([]WordCount, 0, len(tf))
	for k, v := range tf {
		counts = append(counts, WordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// TermFrequencies computes one TermFrequency per record, in dataset order.
func TermFrequencies(ds *models.Dataset, col string) ([]TermFrequency, error) {
	a := &Analytics{}
	out := make([]TermFrequency, len(ds.Records))
	for i := range ds.Records {
		text, err := ds.Lookup(i, col)
		if err != nil {
			return nil, err
		}
		out[i] = a.WordFrequency(text)
	}
	return out, nil
}

// AddTermFrequencyColumn stores tfs[i] on record i under col as a JSON
// object with sorted keys.
func AddTermFrequencyColumn(ds *models.Dataset, tfs []TermFrequency, col string) error {
	if len(tfs) != ds.Len() {
		return fmt.Errorf("term frequency column: got %d entries for %d records", len(tfs), ds.Len())
	}

	values := make([]string, len(tfs))
	for i, tf := range tfs {
		if tf == nil {
			tf = TermFrequency{}
		}
		encoded, err := json.Marshal(tf)
		if err != nil {
			return fmt.Errorf("error encoding term frequency for record %d: %w", i, err)
		}
		values[i] = string(encoded)
	}

	return ds.AddColumn(col, values)
}

// ParseTermFrequency decodes a value written by AddTermFrequencyColumn.
func ParseTermFrequency(value string) (TermFrequency, error) {
	tf := TermFrequency{}
	if value == "" {
		return tf, nil
	}
	if err := json.Unmarshal([]byte(value), &tf); err != nil {
		return nil, fmt.Errorf("error decoding term frequency: %w", err)
	}
	return tf, nil
}
