package article

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Article is the normalized shape of a fetched news article. Records are
// immutable once fetched; downstream stages read them but never mutate.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	ImageURL    string `json:"urlToImage"`
	FetchedAt   string `json:"fetchedAt"`
}

// ID returns the stable identifier for the article: the first 16 bytes of the
// SHA-256 of its URL, hex encoded. Identical URLs always map to the same ID,
// so repeated fetches of the same story resolve to one cache entry.
func (a Article) ID() string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(a.URL)))
	return hex.EncodeToString(sum[:16])
}

// Normalize returns a copy with whitespace trimmed, text NFC-normalized, and
// the author defaulted. Upstream providers return inconsistently composed
// unicode and frequently omit the author entirely.
func (a Article) Normalize(fetchedAt time.Time) Article {
	out := Article{
		Title:       normText(a.Title),
		Description: normText(a.Description),
		URL:         strings.TrimSpace(a.URL),
		Content:     normText(a.Content),
		PublishedAt: strings.TrimSpace(a.PublishedAt),
		Source:      normText(a.Source),
		Author:      normText(a.Author),
		ImageURL:    strings.TrimSpace(a.ImageURL),
		FetchedAt:   strings.TrimSpace(a.FetchedAt),
	}
	if out.Author == "" {
		out.Author = "Unknown"
	}
	if out.FetchedAt == "" {
		out.FetchedAt = fetchedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// Body returns the best available long-form text: content when present,
// otherwise the description.
func (a Article) Body() string {
	if strings.TrimSpace(a.Content) != "" {
		return a.Content
	}
	return a.Description
}

func normText(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}
