package textutil

import (
	"strings"
	"unicode"
)

const maxSlugLen = 50

// Slugify converts a title into a filesystem-safe slug. The title is
// lowercased, characters that are not word characters, whitespace, or hyphens
// are removed, runs of whitespace and hyphens collapse to a single hyphen,
// and the result is capped at 50 runes.
//
// Slugify is idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	if lowered == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(lowered))
	pendingHyphen := false
	for _, r := range lowered {
		switch {
		case isWordRune(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		default:
			// stripped
		}
	}

	slug := b.String()
	runes := []rune(slug)
	if len(runes) > maxSlugLen {
		slug = string(runes[:maxSlugLen])
	}
	// Truncation can land on a hyphen; trim it so re-slugging is stable.
	return strings.TrimRight(slug, "-")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// TruncateDisplay shortens value to at most width terminal cells, appending an
// ellipsis when truncation occurred. Width accounting is display-width aware
// so CJK titles do not overflow table columns.
func TruncateDisplay(value string, width int) string {
	return truncateDisplay(value, width)
}
