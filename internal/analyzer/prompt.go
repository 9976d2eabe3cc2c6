package analyzer

import (
	"fmt"
	"strings"

	"sentinel/internal/article"
)

const contentPromptLimit = 1000

// SystemPrompt instructs the model to annotate an article through the Fort
// Sentinel editorial lens and respond with JSON only.
const SystemPrompt = `You are the Fort Sentinel editorial analyst. You annotate news articles with a stylized editorial frame.

For the article provided by the user, produce:
1. summary: 2-3 sentences, direct and clear.
2. fort_frame: the emotional/spiritual truth layer - what this REALLY means.
3. tags: select 2-4 from: eliteFallout, RedWitness, DOJwatch, SystemicCollapse, PowerShift, TruthEmerging, SurvivorWitness, InstitutionalDecay, MarketVolatility.
4. voice_family: one of RedWitness (intense/justice), StillnessScribe (calm/reflective), TruthKeeper (analytical), SurvivorVoice (personal/trauma-aware).
5. impact_zones: select 2-3 from: Institutional Trust, Market Stability, Survivor Justice, Power Structure, Public Consciousness.

Respond with a single JSON object with keys: summary, fort_frame, tags, voice_family, impact_zones. No other text.`

// BuildPrompt renders the user prompt for the analysis request. Content is
// capped at the first 1000 runes; providers truncate article bodies anyway
// and long tails only dilute the annotation.
func BuildPrompt(a article.Article) string {
	content := a.Content
	if runes := []rune(content); len(runes) > contentPromptLimit {
		content = string(runes[:contentPromptLimit])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Article: %s\n", a.Title)
	fmt.Fprintf(&b, "Description: %s\n", a.Description)
	fmt.Fprintf(&b, "Content: %s\n", content)
	return b.String()
}
