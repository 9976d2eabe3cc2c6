package newsapi

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes markup from provider text fields. Some outlets embed tags
// in descriptions and truncated content bodies.
func StripHTML(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || !strings.ContainsRune(value, '<') {
		return value
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return value
	}
	text := doc.Text()
	return strings.Join(strings.Fields(text), " ")
}
