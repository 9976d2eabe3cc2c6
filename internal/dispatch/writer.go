package dispatch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sentinel/internal/analyzer"
	"sentinel/internal/article"
	"sentinel/internal/logging"
	"sentinel/internal/textutil"
)

// Writer persists annotated articles as dispatch documents beneath a store
// root, one date-named directory per generation day.
type Writer struct {
	root   string
	logger *slog.Logger
	now    func() time.Time
}

// WriterOption customizes a Writer.
type WriterOption func(*Writer)

// WithClock overrides the generation timestamp source (used by tests).
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter constructs a Writer rooted at dir.
func NewWriter(dir string, logger *slog.Logger, opts ...WriterOption) *Writer {
	if logger == nil {
		logger = logging.NewNop()
	}
	w := &Writer{
		root:   dir,
		logger: logging.WithComponent(logger, "dispatch"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the article and its analysis into a dispatch document and
// returns the path it was written to. The filename is fully determined by the
// title slug and the generation date; a colliding dispatch written on the
// same day is overwritten without warning.
func (w *Writer) Write(a article.Article, analysis analyzer.Analysis) (string, error) {
	now := w.now()
	date := now.Format("2006-01-02")

	dateDir := filepath.Join(w.root, date)
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", fmt.Errorf("dispatch: create date directory: %w", err)
	}

	slug := textutil.Slugify(a.Title)
	path := filepath.Join(dateDir, "dispatch_"+slug+".md")

	header := Header{
		Title:       a.Title,
		Date:        date,
		Time:        now.Format("15:04"),
		Source:      a.Source,
		Tags:        analysis.Tags,
		Voice:       analysis.VoiceFamily,
		Summary:     analysis.Summary,
		ImpactZones: analysis.ImpactZones,
		ReadBy:      readByMarker,
	}

	content, err := renderDocument(header, a, analysis, path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("dispatch: write document: %w", err)
	}

	w.logger.Info("wrote dispatch",
		logging.String("path", path),
		logging.String("voice", analysis.VoiceFamily))
	return path, nil
}

func renderDocument(header Header, a article.Article, analysis analyzer.Analysis, path string) (string, error) {
	head, err := renderHeader(header)
	if err != nil {
		return "", err
	}

	content := a.Body()
	if strings.TrimSpace(content) == "" {
		content = "Content not available"
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\n")
	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	fmt.Fprintf(&b, "%s\n%s\n\n", FortFrameHeader, analysis.FortFrame)
	fmt.Fprintf(&b, "%s\n%s\n\n", summaryHeader, analysis.Summary)
	fmt.Fprintf(&b, "%s\n", detailsHeader)
	fmt.Fprintf(&b, "**Source:** %s  \n", a.Source)
	fmt.Fprintf(&b, "**Published:** %s  \n", a.PublishedAt)
	fmt.Fprintf(&b, "**Author:** %s\n\n", a.Author)
	fmt.Fprintf(&b, "### Content\n%s\n\n", content)
	fmt.Fprintf(&b, "[Read original →](%s)\n\n", a.URL)
	fmt.Fprintf(&b, "%s\n", listenHeader)
	fmt.Fprintf(&b, "```bash\nfnafi read \"%s\"\n```\n\n", path)
	fmt.Fprintf(&b, "%s\n%s\n", headerDelimiter, signatureLine)
	return b.String(), nil
}
