package analytics

import (
	"sort"

	"github.com/dtnitsch/tweetstats/models"
	"github.com/dtnitsch/tweetstats/pkg/textutil"
)

// Vocabulary is the set of distinct whitespace-delimited words of a dataset.
type Vocabulary map[string]struct{}

// ExtractVocabulary unions the whitespace tokens of col across all records.
func ExtractVocabulary(ds *models.Dataset, col string) (Vocabulary, error) {
	vocab := make(Vocabulary)
	for i := range ds.Records {
		text, err := ds.Lookup(i, col)
		if err != nil {
			return nil, err
		}
		for _, w := range textutil.Fields(text) {
			vocab[w] = struct{}{}
		}
	}
	return vocab, nil
}

func (v Vocabulary) Len() int {
	return len(v)
}

func (v Vocabulary) Contains(word string) bool {
	_, ok := v[word]
	return ok
}

// Sorted returns the words in ascending order.
func (v Vocabulary) Sorted() []string {
	words := make([]string, 0, len(v))
	for w := range v {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// SortedWords returns the first n words of words in ascending order.
// words is not modified.
func SortedWords(words []string, n int) []string {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
