// Package markup strips HTML tags and entities from record text before it
// reaches the normalizer.
package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/tweetstats/models"
)

// StripText returns the visible text of s with tags removed and entities
// decoded ("Tom &amp; <b>Jerry</b>" -> "Tom & Jerry").
func StripText(s string) (string, error) {
	if !strings.ContainsAny(s, "<&") {
		return s, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", fmt.Errorf("failed to parse markup: %w", err)
	}

	return doc.Text(), nil
}

// Strip applies StripText to col of every record in place.
func Strip(ds *models.Dataset, col string) error {
	for i, rec := range ds.Records {
		text, err := ds.Lookup(i, col)
		if err != nil {
			return err
		}
		stripped, err := StripText(text)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		rec[col] = stripped
	}
	return nil
}
