package textutil

import (
	"strings"
	"testing"
	"unicode"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation stripped", "DOJ Opens New Probe Into Elite Fraud!", "doj-opens-new-probe-into-elite-fraud"},
		{"apostrophes and quotes", `Judge: "It's Over"`, "judge-its-over"},
		{"hyphen runs collapse", "Breaking -- News --- Now", "breaking-news-now"},
		{"underscores kept", "snake_case title", "snake_case-title"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.title); got != tc.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
			}
		})
	}
}

func TestSlugifyBoundedAndIdempotent(t *testing.T) {
	titles := []string{
		"A Very Long Headline That Keeps Going And Going And Going Until It Exceeds Any Sane Filename Limit",
		"short",
		"Trailing separator exactly at the cutoff point here - and more",
		"Ünïcode Tïtles Wörk Töö",
	}
	for _, title := range titles {
		slug := Slugify(title)
		if len([]rune(slug)) > 50 {
			t.Errorf("slug %q exceeds 50 runes", slug)
		}
		for _, r := range slug {
			if r != '-' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				t.Errorf("slug %q contains unexpected rune %q", slug, r)
			}
		}
		if slug != strings.ToLower(slug) {
			t.Errorf("slug %q is not lowercase", slug)
		}
		if again := Slugify(slug); again != slug {
			t.Errorf("Slugify not idempotent: %q -> %q", slug, again)
		}
		if strings.HasSuffix(slug, "-") || strings.HasPrefix(slug, "-") {
			t.Errorf("slug %q has dangling hyphen", slug)
		}
	}
}

func TestTruncateDisplay(t *testing.T) {
	if got := TruncateDisplay("short", 20); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	got := TruncateDisplay("a headline that is definitely too wide", 10)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}
