// Package language tags records with the detected language of their text.
package language

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/tweetstats/models"
)

// Unknown is written when no language could be detected.
const Unknown = "unknown"

// Tagger detects languages from a fixed candidate set.
type Tagger struct {
	detector lingua.LanguageDetector
	codes    []string
}

// NewTagger builds a detector restricted to the given ISO-639-1 codes
// (e.g. "en", "es"). At least two codes are required.
func NewTagger(codes []string) (*Tagger, error) {
	byCode := make(map[string]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		byCode[strings.ToLower(l.IsoCode639_1().String())] = l
	}

	var languages []lingua.Language
	var resolved []string
	seen := make(map[string]struct{})
	for _, c := range codes {
		code := strings.ToLower(strings.TrimSpace(c))
		l, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("unsupported language code %q", c)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		languages = append(languages, l)
		resolved = append(resolved, code)
	}
	if len(languages) < 2 {
		return nil, fmt.Errorf("language detection needs at least two languages, got %d", len(languages))
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &Tagger{detector: detector, codes: resolved}, nil
}

// Codes returns the candidate language codes.
func (t *Tagger) Codes() []string {
	return append([]string(nil), t.codes...)
}

// Detect returns the lowercase ISO-639-1 code for text, or Unknown.
func (t *Tagger) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}
	l, ok := t.detector.DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	return strings.ToLower(l.IsoCode639_1().String())
}

// Tag writes the detected language of textCol into langCol for every record.
func (t *Tagger) Tag(ds *models.Dataset, textCol, langCol string) error {
	values := make([]string, ds.Len())
	for i := range ds.Records {
		text, err := ds.Lookup(i, textCol)
		if err != nil {
			return err
		}
		values[i] = t.Detect(text)
	}
	return ds.AddColumn(langCol, values)
}

// Share is the number of records tagged with one language.
type Share struct {
	Language string `json:"language" yaml:"language"`
	Records  int    `json:"records" yaml:"records"`
}

// Distribution counts records per value of langCol, largest first.
func Distribution(ds *models.Dataset, langCol string) ([]Share, error) {
	counts := make(map[string]int)
	for i := range ds.Records {
		l, err := ds.Lookup(i, langCol)
		if err != nil {
			return nil, err
		}
		counts[l]++
	}

	out := make([]Share, 0, len(counts))
	for l, n := range counts {
		out = append(out, Share{Language: l, Records: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Records != out[j].Records {
			return out[i].Records > out[j].Records
		}
		return out[i].Language < out[j].Language
	})
	return out, nil
}
