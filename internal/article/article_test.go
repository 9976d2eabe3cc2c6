package article

import (
	"testing"
	"time"
)

func TestNormalizeDefaultsAuthor(t *testing.T) {
	a := Article{Title: "  Headline  ", URL: "http://example.com/a"}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got := a.Normalize(now)
	if got.Title != "Headline" {
		t.Fatalf("expected trimmed title, got %q", got.Title)
	}
	if got.Author != "Unknown" {
		t.Fatalf("expected default author, got %q", got.Author)
	}
	if got.FetchedAt != "2024-05-01T12:00:00Z" {
		t.Fatalf("unexpected fetchedAt %q", got.FetchedAt)
	}
}

func TestNormalizeKeepsExistingFetchedAt(t *testing.T) {
	a := Article{URL: "http://example.com/a", FetchedAt: "2024-01-01T00:00:00Z"}
	got := a.Normalize(time.Now())
	if got.FetchedAt != "2024-01-01T00:00:00Z" {
		t.Fatalf("fetchedAt overwritten: %q", got.FetchedAt)
	}
}

func TestIDStableAndURLKeyed(t *testing.T) {
	a := Article{Title: "One", URL: "http://example.com/story"}
	b := Article{Title: "Completely Different", URL: "http://example.com/story"}
	if a.ID() != b.ID() {
		t.Fatal("IDs for the same URL should match")
	}
	c := Article{URL: "http://example.com/other"}
	if a.ID() == c.ID() {
		t.Fatal("IDs for different URLs should differ")
	}
	if len(a.ID()) != 32 {
		t.Fatalf("expected 32 hex chars, got %d", len(a.ID()))
	}
}

func TestBodyPrefersContent(t *testing.T) {
	a := Article{Content: "full text", Description: "blurb"}
	if a.Body() != "full text" {
		t.Fatalf("expected content, got %q", a.Body())
	}
	a.Content = "  "
	if a.Body() != "blurb" {
		t.Fatalf("expected description fallback, got %q", a.Body())
	}
}
