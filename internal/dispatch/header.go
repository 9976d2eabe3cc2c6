package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const headerDelimiter = "---"

// ErrNoHeader marks content that does not begin with a header block.
var ErrNoHeader = errors.New("dispatch: missing header block")

// headerKeys whitelists the keys a header block may carry. Unknown lines are
// ignored rather than rejected so hand-edited dispatches keep parsing.
var headerKeys = map[string]struct{}{
	"title":        {},
	"date":         {},
	"time":         {},
	"source":       {},
	"tags":         {},
	"voice":        {},
	"summary":      {},
	"impact_zones": {},
	"read_by":      {},
}

// ParseDocument splits raw file content into a parsed header and the markdown
// body. The header block is delimited by lines containing exactly "---"; the
// parser walks lines rather than splitting on the delimiter substring, so a
// horizontal rule inside the body cannot corrupt the header.
func ParseDocument(content string) (Header, string, error) {
	var header Header

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != headerDelimiter {
		return header, "", ErrNoHeader
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == headerDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return header, "", ErrNoHeader
	}

	for _, line := range lines[1:end] {
		key, value, ok := splitHeaderLine(line)
		if !ok {
			continue
		}
		if err := assignHeaderField(&header, key, value); err != nil {
			return Header{}, "", err
		}
	}

	body := strings.Join(lines[end+1:], "\n")
	return header, body, nil
}

// splitHeaderLine tokenizes one "key: value" line. Lines without the
// colon-space separator or with unrecognized keys are skipped silently.
func splitHeaderLine(line string) (string, string, bool) {
	line = strings.TrimRight(line, "\r")
	key, value, found := strings.Cut(line, ": ")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if _, known := headerKeys[key]; !known {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func assignHeaderField(header *Header, key, value string) error {
	switch key {
	case "title":
		header.Title = unquote(value)
	case "date":
		header.Date = unquote(value)
	case "time":
		header.Time = unquote(value)
	case "source":
		header.Source = unquote(value)
	case "voice":
		header.Voice = unquote(value)
	case "summary":
		header.Summary = unquote(value)
	case "read_by":
		header.ReadBy = unquote(value)
	case "tags":
		tags, err := decodeStringArray(value)
		if err != nil {
			return fmt.Errorf("dispatch: parse tags: %w", err)
		}
		header.Tags = tags
		header.RawTags = value
	case "impact_zones":
		zones, err := decodeStringArray(value)
		if err != nil {
			return fmt.Errorf("dispatch: parse impact_zones: %w", err)
		}
		header.ImpactZones = zones
	}
	return nil
}

func decodeStringArray(value string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// unquote strips one pair of surrounding double quotes, matching how values
// are occasionally hand-quoted in older dispatches.
func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value[1 : len(value)-1]
	}
	return value
}

// renderHeader serializes the header block, delimiters included. Array values
// are JSON literals so they round-trip through ParseDocument.
func renderHeader(h Header) (string, error) {
	tags, err := json.Marshal(h.Tags)
	if err != nil {
		return "", fmt.Errorf("dispatch: encode tags: %w", err)
	}
	zones, err := json.Marshal(h.ImpactZones)
	if err != nil {
		return "", fmt.Errorf("dispatch: encode impact_zones: %w", err)
	}

	var b strings.Builder
	b.WriteString(headerDelimiter + "\n")
	fmt.Fprintf(&b, "title: %s\n", headerValue(h.Title))
	fmt.Fprintf(&b, "date: %s\n", headerValue(h.Date))
	fmt.Fprintf(&b, "time: %s\n", headerValue(h.Time))
	fmt.Fprintf(&b, "source: %s\n", headerValue(h.Source))
	fmt.Fprintf(&b, "tags: %s\n", tags)
	fmt.Fprintf(&b, "voice: %s\n", headerValue(h.Voice))
	fmt.Fprintf(&b, "summary: %s\n", headerValue(h.Summary))
	fmt.Fprintf(&b, "impact_zones: %s\n", zones)
	fmt.Fprintf(&b, "read_by: %s\n", headerValue(h.ReadBy))
	b.WriteString(headerDelimiter + "\n")
	return b.String(), nil
}

var headerLineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// headerValue flattens a scalar onto a single line. A line break inside a
// value would otherwise start a forged header line and change the key set the
// parser recovers.
func headerValue(value string) string {
	return strings.TrimSpace(headerLineBreaks.Replace(value))
}
