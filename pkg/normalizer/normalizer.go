// Package normalizer cleans the free-text column of a dataset with a fixed,
// ordered chain of substitutions.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/dtnitsch/tweetstats/models"
	"github.com/dtnitsch/tweetstats/pkg/textutil"
)

// Rule is one step of the cleanup chain. Exactly one of Pattern or Apply is
// set; Pattern matches are replaced with Replacement.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
	Apply       func(string) string
}

func (r Rule) run(s string) string {
	if r.Apply != nil {
		return r.Apply(s)
	}
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

const nonSpace = `[^` + textutil.SpaceClass + `]`

// Later rules assume the earlier ones already ran: symbol_word relies on
// URLs being gone and on ASCII-only input for its word boundaries.
var defaultRules = []Rule{
	{Name: "url", Pattern: regexp.MustCompile(`http` + nonSpace + `+|www` + nonSpace + `+`)},
	{Name: "non_ascii", Apply: removeNonASCII},
	{Name: "symbol_word", Pattern: regexp.MustCompile(`[@;:']\b` + nonSpace + `+\b`)},
	{Name: "symbols", Pattern: regexp.MustCompile(`[^a-zA-Z0-9` + textutil.SpaceClass + `]`)},
	{Name: "digits", Pattern: regexp.MustCompile(`[0-9]+`)},
	{Name: "case_trim", Apply: func(s string) string { return textutil.Trim(strings.ToLower(s)) }},
}

// Rules returns a copy of the cleanup chain in application order.
func Rules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

func removeNonASCII(s string) string {
	out, _, _ := transform.String(asciiOnly, s)
	return out
}

// NormalizeText runs the full chain over s.
func NormalizeText(s string) string {
	for _, rule := range defaultRules {
		s = rule.run(s)
	}
	return s
}

// Normalize rewrites col of every record in place. It stops at the first
// record without the column; earlier records stay rewritten.
func Normalize(ds *models.Dataset, col string) error {
	for i, rec := range ds.Records {
		text, err := ds.Lookup(i, col)
		if err != nil {
			return err
		}
		rec[col] = NormalizeText(text)
	}
	return nil
}
