package testsupport

import (
	"context"
	"testing"

	"sentinel/internal/article"
	"sentinel/internal/articlestore"
	"sentinel/internal/config"
)

// MustOpenStore opens the article store for the test config and closes it on
// cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *articlestore.Store {
	t.Helper()
	store, err := articlestore.Open(cfg.StorePath())
	if err != nil {
		t.Fatalf("open article store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedArticles caches the given articles and returns the batch ID.
func SeedArticles(t testing.TB, store *articlestore.Store, articles ...article.Article) string {
	t.Helper()
	batchID, err := store.PutBatch(context.Background(), articles)
	if err != nil {
		t.Fatalf("seed articles: %v", err)
	}
	return batchID
}

// Article returns a deterministic article fixture keyed by URL.
func Article(url string) article.Article {
	return article.Article{
		Title:       "Court Ruling Shakes Agency",
		Description: "A major ruling landed today.",
		URL:         url,
		Content:     "The court ruled against the agency.",
		PublishedAt: "2024-05-01T10:00:00Z",
		Source:      "Daily Ledger",
		Author:      "R. Calder",
		FetchedAt:   "2024-05-01T12:00:00Z",
	}
}
