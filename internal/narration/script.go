package narration

import (
	"strings"

	"sentinel/internal/dispatch"
)

// BuildScript assembles the narration text for a dispatch document: an
// ordered sequence of sections joined by blank lines. The Fort Frame section
// is included only when the body actually carries the marker; summary and
// impact zones are included when present.
func BuildScript(doc dispatch.Document) string {
	sections := make([]string, 0, 5)
	sections = append(sections, "Fort Sentinel Dispatch: "+doc.Header.Title)
	sections = append(sections, "Date: "+doc.Header.Date)

	if frame := extractFortFrame(doc.Body); frame != "" {
		sections = append(sections, "Fort Frame: "+frame)
	}
	if summary := strings.TrimSpace(doc.Header.Summary); summary != "" {
		sections = append(sections, "Summary: "+summary)
	}
	if len(doc.Header.ImpactZones) > 0 {
		sections = append(sections, "Impact Zones: "+strings.Join(doc.Header.ImpactZones, ", "))
	}

	return strings.Join(sections, "\n\n")
}

// extractFortFrame returns the trimmed text between the Fort Frame header and
// the next "##"-prefixed section, or the rest of the body when no further
// section follows. Empty when the marker is absent.
func extractFortFrame(body string) string {
	start := strings.Index(body, dispatch.FortFrameHeader)
	if start < 0 {
		return ""
	}
	start += len(dispatch.FortFrameHeader)
	rest := body[start:]
	if end := strings.Index(rest, "##"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
