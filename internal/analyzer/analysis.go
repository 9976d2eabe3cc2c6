package analyzer

// Analysis is the editorial annotation produced once per article. It is never
// revisited after creation; the dispatch writer serializes it verbatim.
type Analysis struct {
	Summary     string   `json:"summary"`
	FortFrame   string   `json:"fort_frame"`
	Tags        []string `json:"tags"`
	VoiceFamily string   `json:"voice_family"`
	ImpactZones []string `json:"impact_zones"`
}

// Controlled vocabularies. Fixed at build time, not extensible at runtime.
var (
	// Tags an analysis may carry.
	Tags = []string{
		"eliteFallout",
		"RedWitness",
		"DOJwatch",
		"SystemicCollapse",
		"PowerShift",
		"TruthEmerging",
		"SurvivorWitness",
		"InstitutionalDecay",
		"MarketVolatility",
	}

	// VoiceFamilies name the narration style profiles.
	VoiceFamilies = []string{
		"RedWitness",
		"StillnessScribe",
		"TruthKeeper",
		"SurvivorVoice",
	}

	// ImpactZones name the societal domains an article's events may affect.
	ImpactZones = []string{
		"Institutional Trust",
		"Market Stability",
		"Survivor Justice",
		"Power Structure",
		"Public Consciousness",
	}
)

var (
	tagSet         = toSet(Tags)
	voiceFamilySet = toSet(VoiceFamilies)
	impactZoneSet  = toSet(ImpactZones)
)

// KnownTag reports whether tag belongs to the controlled tag vocabulary.
func KnownTag(tag string) bool {
	_, ok := tagSet[tag]
	return ok
}

// KnownVoiceFamily reports whether name is a recognized voice family.
func KnownVoiceFamily(name string) bool {
	_, ok := voiceFamilySet[name]
	return ok
}

// KnownImpactZone reports whether zone belongs to the impact zone vocabulary.
func KnownImpactZone(zone string) bool {
	_, ok := impactZoneSet[zone]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
