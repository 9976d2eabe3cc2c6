package analyzer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"sentinel/internal/article"
)

type stubCapability struct {
	payload string
	err     error
	calls   int
}

func (s *stubCapability) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.payload, s.err
}

func TestBasicAnalysisKeywordTags(t *testing.T) {
	a := article.Article{
		Title:       "DOJ Opens New Probe Into Elite Fraud",
		Description: "Officials announced...",
		Source:      "TestWire",
		URL:         "http://x",
		PublishedAt: "2024-05-01T00:00:00Z",
	}
	got := BasicAnalysis(a)

	wantTags := []string{"DOJwatch", "eliteFallout"}
	if !reflect.DeepEqual(got.Tags, wantTags) {
		t.Fatalf("tags = %v, want %v", got.Tags, wantTags)
	}
	// Description has no legal keyword, so the voice stays analytical.
	if got.VoiceFamily != "TruthKeeper" {
		t.Fatalf("voice = %q, want TruthKeeper", got.VoiceFamily)
	}
	if got.Summary != "DOJ Opens New Probe Into Elite Fraud. Officials announced..." {
		t.Fatalf("unexpected summary %q", got.Summary)
	}
	if !reflect.DeepEqual(got.ImpactZones, []string{"Institutional Trust", "Public Consciousness"}) {
		t.Fatalf("unexpected impact zones %v", got.ImpactZones)
	}
}

func TestBasicAnalysisVoiceFromContent(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"survivor keywords win", "A survivor described the trauma in court.", "SurvivorVoice"},
		{"legal keywords", "The court heard legal arguments.", "RedWitness"},
		{"no keywords", "Markets were quiet today.", "TruthKeeper"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BasicAnalysis(article.Article{Title: "Plain Headline", Content: tc.content})
			if got.VoiceFamily != tc.want {
				t.Fatalf("voice = %q, want %q", got.VoiceFamily, tc.want)
			}
		})
	}
}

func TestBasicAnalysisDefaultsWhenNoKeywords(t *testing.T) {
	got := BasicAnalysis(article.Article{Title: "Quiet Day"})
	if !reflect.DeepEqual(got.Tags, []string{"TruthEmerging"}) {
		t.Fatalf("tags = %v, want [TruthEmerging]", got.Tags)
	}
	if got.Summary != "Quiet Day. Details emerging." {
		t.Fatalf("unexpected summary %q", got.Summary)
	}
}

func TestBasicAnalysisPure(t *testing.T) {
	a := article.Article{
		Title:       "Survivor Testimony Shakes Trial",
		Description: "A victim spoke.",
		Content:     "Court proceedings continued as the survivor testified.",
	}
	first := BasicAnalysis(a)
	for i := 0; i < 5; i++ {
		if got := BasicAnalysis(a); !reflect.DeepEqual(got, first) {
			t.Fatalf("analysis not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestAnalyzeUsesCapability(t *testing.T) {
	stub := &stubCapability{payload: `{
		"summary": "Something happened. It matters.",
		"fort_frame": "The mask slips again.",
		"tags": ["PowerShift", "DOJwatch"],
		"voice_family": "StillnessScribe",
		"impact_zones": ["Power Structure", "Institutional Trust"]
	}`}
	an := New(stub, nil)
	got := an.Analyze(context.Background(), article.Article{Title: "Headline"})
	if stub.calls != 1 {
		t.Fatalf("capability called %d times", stub.calls)
	}
	if got.VoiceFamily != "StillnessScribe" {
		t.Fatalf("voice = %q", got.VoiceFamily)
	}
	if !reflect.DeepEqual(got.Tags, []string{"PowerShift", "DOJwatch"}) {
		t.Fatalf("tags = %v", got.Tags)
	}
}

func TestAnalyzeCodeFencedPayload(t *testing.T) {
	stub := &stubCapability{payload: "```json\n{\"summary\":\"S.\",\"fort_frame\":\"F.\",\"tags\":[\"DOJwatch\"],\"voice_family\":\"TruthKeeper\",\"impact_zones\":[\"Institutional Trust\"]}\n```"}
	an := New(stub, nil)
	got := an.Analyze(context.Background(), article.Article{Title: "Headline"})
	if got.FortFrame != "F." {
		t.Fatalf("expected fenced payload to decode, got %+v", got)
	}
}

func TestAnalyzeFallsBackOnError(t *testing.T) {
	stub := &stubCapability{err: errors.New("timeout")}
	an := New(stub, nil)
	a := article.Article{Title: "Court Ruling Due", Description: "desc"}
	got := an.Analyze(context.Background(), a)
	if !reflect.DeepEqual(got, BasicAnalysis(a)) {
		t.Fatalf("expected basic analysis fallback, got %+v", got)
	}
}

func TestAnalyzeFallsBackOnMalformedPayload(t *testing.T) {
	for _, payload := range []string{
		"not json at all",
		`{"summary":""}`,
		`{"summary":"S.","fort_frame":"F.","tags":["NotAVocabTag"],"voice_family":"TruthKeeper","impact_zones":["Institutional Trust"]}`,
		`{"summary":"S.","fort_frame":"F.","tags":["DOJwatch"],"voice_family":"MysteryVoice","impact_zones":["Institutional Trust"]}`,
	} {
		stub := &stubCapability{payload: payload}
		an := New(stub, nil)
		a := article.Article{Title: "Plain Headline"}
		got := an.Analyze(context.Background(), a)
		if !reflect.DeepEqual(got, BasicAnalysis(a)) {
			t.Errorf("payload %q: expected fallback, got %+v", payload, got)
		}
	}
}

func TestNormalizeAnalysisCapsSummary(t *testing.T) {
	in := Analysis{
		Summary:     "One. Two. Three. Four. Five.",
		FortFrame:   "Frame.",
		Tags:        []string{"DOJwatch"},
		VoiceFamily: "TruthKeeper",
		ImpactZones: []string{"Institutional Trust"},
	}
	out, ok := normalizeAnalysis(in)
	if !ok {
		t.Fatal("expected analysis to validate")
	}
	if out.Summary != "One. Two. Three." {
		t.Fatalf("summary = %q", out.Summary)
	}
}

func TestBuildPromptCapsContent(t *testing.T) {
	long := make([]rune, 2500)
	for i := range long {
		long[i] = 'x'
	}
	prompt := BuildPrompt(article.Article{Title: "T", Description: "D", Content: string(long)})
	if len([]rune(prompt)) > 1100 {
		t.Fatalf("prompt too long: %d runes", len([]rune(prompt)))
	}
}
