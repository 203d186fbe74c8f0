// Package extractor turns FightMatrix pages into records and follow-up
// requests. Every function here is pure over its inputs.
package extractor

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ParseDocument parses an HTML body.
func ParseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
