// Package summarize derives plain-text descriptions from HTML content.
package summarize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const ellipsis = "…"

// PlainText strips markup from an HTML fragment, collapses whitespace
// and truncates the result to at most maxRunes runes. Truncation cuts
// on a word boundary where possible and appends an ellipsis.
func PlainText(html string, maxRunes int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if maxRunes <= 0 {
		return text, nil
	}

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text, nil
	}

	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + ellipsis, nil
}
