// Package analyzer annotates fetched articles with the Fort Sentinel
// editorial frame: a short summary, an emotional reframing sentence, tags and
// impact zones from fixed vocabularies, and a narration voice family.
//
// Annotation prefers an external model behind the Capability interface. Any
// provider failure degrades to BasicAnalysis, a pure keyword classifier, so
// callers never see an annotation error.
package analyzer
