package dispatch

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sentinel/internal/logging"
)

// ErrNotFound marks a dispatch path that does not exist in the store.
var ErrNotFound = errors.New("dispatch: not found")

// Filter narrows a listing. Tag is a substring test against the serialized
// tags value; Date is an exact match against the header date. Malformed
// filter values simply match nothing.
type Filter struct {
	Tag  string
	Date string
}

// Index discovers and parses dispatch documents beneath a store root.
type Index struct {
	root   string
	logger *slog.Logger
}

// NewIndex constructs an Index over the store rooted at dir.
func NewIndex(dir string, logger *slog.Logger) *Index {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Index{
		root:   dir,
		logger: logging.WithComponent(logger, "dispatch"),
	}
}

// List scans the store and returns matching dispatch summaries, newest date
// first. A missing store root yields an empty listing, and documents that
// cannot be read or parsed are skipped; a broken file must never abort the
// whole index.
func (idx *Index) List(filter Filter) ([]Summary, error) {
	entries, err := os.ReadDir(idx.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("dispatch: read store root: %w", err)
	}

	summaries := make([]Summary, 0, 16)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dateDir := filepath.Join(idx.root, entry.Name())
		files, err := os.ReadDir(dateDir)
		if err != nil {
			idx.logger.Debug("skipping unreadable date directory",
				logging.String("dir", dateDir),
				logging.Error(err))
			continue
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
				continue
			}
			path := filepath.Join(dateDir, file.Name())
			summary, ok := idx.load(path)
			if !ok {
				continue
			}
			if !matches(summary.Header, filter) {
				continue
			}
			summaries = append(summaries, summary)
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})
	return summaries, nil
}

// Latest returns the newest dispatch matching the filter.
func (idx *Index) Latest(filter Filter) (Summary, error) {
	summaries, err := idx.List(filter)
	if err != nil {
		return Summary{}, err
	}
	if len(summaries) == 0 {
		return Summary{}, ErrNotFound
	}
	return summaries[0], nil
}

// Read loads a single dispatch document, header and body.
func (idx *Index) Read(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Document{}, fmt.Errorf("dispatch: read document: %w", err)
	}
	header, body, err := ParseDocument(string(raw))
	if err != nil {
		return Document{}, fmt.Errorf("dispatch: parse %s: %w", path, err)
	}
	return Document{Path: path, Header: header, Body: body}, nil
}

func (idx *Index) load(path string) (Summary, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		// Possibly a writer mid-flight on the same file; skip this pass.
		idx.logger.Debug("skipping unreadable dispatch",
			logging.String("path", path),
			logging.Error(err))
		return Summary{}, false
	}
	header, _, err := ParseDocument(string(raw))
	if err != nil {
		idx.logger.Debug("skipping malformed dispatch",
			logging.String("path", path),
			logging.Error(err))
		return Summary{}, false
	}
	return Summary{Path: path, Header: header}, true
}

func matches(header Header, filter Filter) bool {
	if filter.Tag != "" && !strings.Contains(header.RawTags, filter.Tag) {
		return false
	}
	if filter.Date != "" && filter.Date != header.Date {
		return false
	}
	return true
}
