package analyzer

import (
	"strings"

	"sentinel/internal/article"
)

const fallbackFortFrame = "Another crack in the facade. The system shows its true face."

var (
	dojTagKeywords      = []string{"court", "trial", "justice", "doj"}
	eliteTagKeywords    = []string{"elite", "wealth", "power"}
	survivorTagKeywords = []string{"victim", "survivor", "testimony"}

	survivorVoiceKeywords = []string{"victim", "survivor", "trauma"}
	legalVoiceKeywords    = []string{"court", "legal", "justice"}
)

// BasicAnalysis produces the deterministic keyword-driven annotation used when
// no language model is configured or the model call fails. It is pure: the
// same article always yields the same analysis.
func BasicAnalysis(a article.Article) Analysis {
	titleLower := strings.ToLower(a.Title)
	bodyLower := strings.ToLower(a.Body())

	tags := make([]string, 0, 3)
	if containsAny(titleLower, dojTagKeywords) {
		tags = append(tags, "DOJwatch")
	}
	if containsAny(titleLower, eliteTagKeywords) {
		tags = append(tags, "eliteFallout")
	}
	if containsAny(titleLower, survivorTagKeywords) {
		tags = append(tags, "SurvivorWitness")
	}
	if len(tags) == 0 {
		tags = append(tags, "TruthEmerging")
	}
	if len(tags) > 3 {
		tags = tags[:3]
	}

	voice := "TruthKeeper"
	switch {
	case containsAny(bodyLower, survivorVoiceKeywords):
		voice = "SurvivorVoice"
	case containsAny(bodyLower, legalVoiceKeywords):
		voice = "RedWitness"
	}

	description := a.Description
	if strings.TrimSpace(description) == "" {
		description = "Details emerging."
	}

	return Analysis{
		Summary:     a.Title + ". " + description,
		FortFrame:   fallbackFortFrame,
		Tags:        tags,
		VoiceFamily: voice,
		ImpactZones: []string{"Institutional Trust", "Public Consciousness"},
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
