package analyzer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"

	"sentinel/internal/article"
	"sentinel/internal/logging"
)

const maxSummarySentences = 3

// Capability is an external analysis provider: it takes the system and user
// prompts and returns the raw JSON payload produced by the model. The llm and
// anthropic service clients both satisfy it.
type Capability interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Annotator turns an article into an Analysis, preferring the configured
// capability and degrading to the deterministic keyword analysis on any
// failure. Capability errors never propagate to the caller.
type Annotator struct {
	capability Capability
	logger     *slog.Logger
}

// New constructs an Annotator. A nil capability yields deterministic analysis
// only; a nil logger is replaced with a no-op logger.
func New(capability Capability, logger *slog.Logger) *Annotator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Annotator{
		capability: capability,
		logger:     logging.WithComponent(logger, "analyzer"),
	}
}

// Analyze annotates the article. The returned analysis always carries a valid
// voice family and at least one tag from the controlled vocabulary.
func (an *Annotator) Analyze(ctx context.Context, a article.Article) Analysis {
	if an.capability == nil {
		return BasicAnalysis(a)
	}

	payload, err := an.capability.CompleteJSON(ctx, SystemPrompt, BuildPrompt(a))
	if err != nil {
		an.logger.Warn("analysis capability failed, using basic analysis",
			logging.String("title", a.Title),
			logging.Error(err))
		return BasicAnalysis(a)
	}

	var parsed Analysis
	if err := decodePayload(payload, &parsed); err != nil {
		an.logger.Warn("analysis payload unusable, using basic analysis",
			logging.String("title", a.Title),
			logging.Error(err))
		return BasicAnalysis(a)
	}

	normalized, ok := normalizeAnalysis(parsed)
	if !ok {
		an.logger.Warn("analysis payload failed validation, using basic analysis",
			logging.String("title", a.Title))
		return BasicAnalysis(a)
	}
	return normalized
}

// normalizeAnalysis trims fields, drops vocabulary violations, and caps the
// summary length. It reports false when the payload deviates too far from the
// contract to be trusted.
func normalizeAnalysis(in Analysis) (Analysis, bool) {
	out := Analysis{
		Summary:     capSentences(strings.TrimSpace(in.Summary), maxSummarySentences),
		FortFrame:   strings.TrimSpace(in.FortFrame),
		VoiceFamily: strings.TrimSpace(in.VoiceFamily),
	}
	if out.Summary == "" || out.FortFrame == "" {
		return Analysis{}, false
	}
	if !KnownVoiceFamily(out.VoiceFamily) {
		return Analysis{}, false
	}

	for _, tag := range in.Tags {
		tag = strings.TrimSpace(tag)
		if KnownTag(tag) {
			out.Tags = append(out.Tags, tag)
		}
	}
	if len(out.Tags) == 0 {
		return Analysis{}, false
	}
	if len(out.Tags) > 4 {
		out.Tags = out.Tags[:4]
	}

	for _, zone := range in.ImpactZones {
		zone = strings.TrimSpace(zone)
		if KnownImpactZone(zone) {
			out.ImpactZones = append(out.ImpactZones, zone)
		}
	}
	if len(out.ImpactZones) == 0 {
		return Analysis{}, false
	}
	if len(out.ImpactZones) > 3 {
		out.ImpactZones = out.ImpactZones[:3]
	}

	return out, true
}

// capSentences keeps at most limit sentences of text, using UAX #29 sentence
// segmentation so abbreviations do not cause premature cuts.
func capSentences(text string, limit int) string {
	if text == "" || limit <= 0 {
		return ""
	}
	var b strings.Builder
	count := 0
	tokens := sentences.FromString(text)
	for tokens.Next() {
		b.WriteString(tokens.Value())
		count++
		if count >= limit {
			break
		}
	}
	if count == 0 {
		return text
	}
	return strings.TrimSpace(b.String())
}
