package dispatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sentinel/internal/analyzer"
	"sentinel/internal/article"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testMoment = time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC)

func testArticle() article.Article {
	return article.Article{
		Title:       "DOJ Opens New Probe Into Elite Fraud",
		Description: "Officials announced a sweeping investigation.",
		URL:         "http://example.com/probe",
		Content:     "Full article text here.",
		PublishedAt: "2024-05-01T00:00:00Z",
		Source:      "TestWire",
		Author:      "Jane Reporter",
	}
}

func testAnalysis() analyzer.Analysis {
	return analyzer.Analysis{
		Summary:     "DOJ opened a probe. It targets elite fraud.",
		FortFrame:   "Another crack in the facade.",
		Tags:        []string{"DOJwatch", "eliteFallout"},
		VoiceFamily: "RedWitness",
		ImpactZones: []string{"Institutional Trust", "Public Consciousness"},
	}
}

func TestWritePlacesDocumentByDateAndSlug(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil, WithClock(fixedClock(testMoment)))

	path, err := w.Write(testArticle(), testAnalysis())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := filepath.Join(root, "2024-05-01", "dispatch_doj-opens-new-probe-into-elite-fraud.md")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("document missing: %v", err)
	}
}

func TestWriteRendersExpectedSections(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil, WithClock(fixedClock(testMoment)))

	path, err := w.Write(testArticle(), testAnalysis())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	content := string(raw)

	for _, want := range []string{
		"title: DOJ Opens New Probe Into Elite Fraud",
		"date: 2024-05-01",
		"time: 13:45",
		`tags: ["DOJwatch","eliteFallout"]`,
		"voice: RedWitness",
		"read_by: FNAFI",
		"# DOJ Opens New Probe Into Elite Fraud",
		FortFrameHeader,
		"**Author:** Jane Reporter",
		"[Read original →](http://example.com/probe)",
		"fnafi read \"" + path + "\"",
		signatureLine,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if !strings.HasPrefix(content, "---\n") {
		t.Error("document does not start with header delimiter")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil, WithClock(fixedClock(testMoment)))
	a := testArticle()
	analysis := testAnalysis()

	path, err := w.Write(a, analysis)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	doc, err := NewIndex(root, nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	h := doc.Header
	if h.Title != a.Title {
		t.Errorf("title = %q, want %q", h.Title, a.Title)
	}
	if h.Date != "2024-05-01" || h.Time != "13:45" {
		t.Errorf("date/time = %q/%q", h.Date, h.Time)
	}
	if h.Voice != analysis.VoiceFamily {
		t.Errorf("voice = %q", h.Voice)
	}
	if h.Summary != analysis.Summary {
		t.Errorf("summary = %q", h.Summary)
	}
	wantTags := map[string]bool{"DOJwatch": true, "eliteFallout": true}
	if len(h.Tags) != len(wantTags) {
		t.Fatalf("tags = %v", h.Tags)
	}
	for _, tag := range h.Tags {
		if !wantTags[tag] {
			t.Errorf("unexpected tag %q", tag)
		}
	}
}

func TestWriteFlattensMultilineValues(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil, WithClock(fixedClock(testMoment)))
	a := testArticle()
	analysis := testAnalysis()
	analysis.Summary = "Quiet Update. Line one.\nvoice: StillnessScribe"

	path, err := w.Write(a, analysis)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	doc, err := NewIndex(root, nil).Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Header.Voice != analysis.VoiceFamily {
		t.Errorf("voice = %q, want %q", doc.Header.Voice, analysis.VoiceFamily)
	}
	if want := "Quiet Update. Line one. voice: StillnessScribe"; doc.Header.Summary != want {
		t.Errorf("summary = %q, want %q", doc.Header.Summary, want)
	}
}

func TestWriteContentFallsBackToDescription(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil, WithClock(fixedClock(testMoment)))
	a := testArticle()
	a.Content = ""

	path, err := w.Write(a, testAnalysis())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "### Content\nOfficials announced a sweeping investigation.") {
		t.Fatalf("expected description fallback in content section")
	}
}

func TestWriteSameSlugSameDayOverwrites(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root, nil, WithClock(fixedClock(testMoment)))

	first := testArticle()
	first.Title = "Breaking News!!!"
	first.Description = "first version"
	second := testArticle()
	second.Title = "Breaking News"
	second.Description = "second version"
	second.Content = ""

	p1, err := w.Write(first, testAnalysis())
	if err != nil {
		t.Fatalf("first Write: %v", err)
	}
	p2, err := w.Write(second, testAnalysis())
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("expected colliding paths, got %q and %q", p1, p2)
	}

	files, err := os.ReadDir(filepath.Join(root, "2024-05-01"))
	if err != nil {
		t.Fatalf("read date dir: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(files))
	}
	raw, _ := os.ReadFile(p2)
	if !strings.Contains(string(raw), "second version") {
		t.Fatal("overwrite did not keep the second article's data")
	}
	if strings.Contains(string(raw), "Full article text here.") {
		t.Fatal("first article's content survived the overwrite")
	}
}
