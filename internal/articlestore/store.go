package articlestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"sentinel/internal/article"
)

// ErrNotFound reports that no cached article matches the requested ID.
var ErrNotFound = errors.New("article not found")

// Store caches fetched articles in SQLite so dispatches can be generated from
// a stable ID after the fetch that produced them.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id           TEXT PRIMARY KEY,
    batch_id     TEXT NOT NULL,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    url          TEXT NOT NULL,
    content      TEXT NOT NULL DEFAULT '',
    published_at TEXT NOT NULL DEFAULT '',
    source       TEXT NOT NULL DEFAULT '',
    author       TEXT NOT NULL DEFAULT '',
    image_url    TEXT NOT NULL DEFAULT '',
    fetched_at   TEXT NOT NULL DEFAULT '',
    stored_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_batch ON articles(batch_id);
CREATE INDEX IF NOT EXISTS idx_articles_stored ON articles(stored_at);
`

// Option customizes the store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open initializes or connects to the article cache database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("article store: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("article store: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("article store: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("article store: apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("article store: init schema: %w", err)
	}

	store := &Store{db: db, path: path, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// PutBatch stores a set of articles under a fresh batch ID and returns it.
// Articles whose URL already exists are overwritten with the newer copy.
func (s *Store) PutBatch(ctx context.Context, articles []article.Article) (string, error) {
	batchID := ulid.Make().String()
	storedAt := s.now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("article store: begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsert = `
INSERT INTO articles (id, batch_id, title, description, url, content, published_at, source, author, image_url, fetched_at, stored_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    batch_id = excluded.batch_id,
    title = excluded.title,
    description = excluded.description,
    content = excluded.content,
    published_at = excluded.published_at,
    source = excluded.source,
    author = excluded.author,
    image_url = excluded.image_url,
    fetched_at = excluded.fetched_at,
    stored_at = excluded.stored_at`
	for _, a := range articles {
		if _, err := tx.ExecContext(ctx, upsert,
			a.ID(), batchID, a.Title, a.Description, a.URL, a.Content,
			a.PublishedAt, a.Source, a.Author, a.ImageURL, a.FetchedAt, storedAt); err != nil {
			return "", fmt.Errorf("article store: insert %s: %w", a.ID(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("article store: commit batch: %w", err)
	}
	return batchID, nil
}

// Get returns the cached article with the given ID.
func (s *Store) Get(ctx context.Context, id string) (article.Article, error) {
	query, args, err := selectColumns().Where(sq.Eq{"id": strings.TrimSpace(id)}).ToSql()
	if err != nil {
		return article.Article{}, fmt.Errorf("article store: build query: %w", err)
	}
	row := s.db.QueryRowContext(ctx, query, args...)
	entry, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return article.Article{}, ErrNotFound
	}
	if err != nil {
		return article.Article{}, fmt.Errorf("article store: get %s: %w", id, err)
	}
	return entry, nil
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	BatchID string
	Source  string
	Limit   int
}

// List returns cached articles newest first, optionally filtered.
func (s *Store) List(ctx context.Context, filter Filter) ([]article.Article, error) {
	builder := selectColumns().OrderBy("stored_at DESC", "id ASC")
	if batch := strings.TrimSpace(filter.BatchID); batch != "" {
		builder = builder.Where(sq.Eq{"batch_id": batch})
	}
	if source := strings.TrimSpace(filter.Source); source != "" {
		builder = builder.Where(sq.Eq{"source": source})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("article store: build query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("article store: list: %w", err)
	}
	defer rows.Close()

	var articles []article.Article
	for rows.Next() {
		entry, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("article store: scan row: %w", err)
		}
		articles = append(articles, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("article store: list rows: %w", err)
	}
	return articles, nil
}

// Prune removes entries stored before the retention cutoff and returns how
// many were deleted.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-retention).Format(time.RFC3339)
	query, args, err := sq.Delete("articles").Where(sq.Lt{"stored_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("article store: build prune: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("article store: prune: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("article store: prune rows affected: %w", err)
	}
	return deleted, nil
}

// Count returns the number of cached articles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return 0, fmt.Errorf("article store: count: %w", err)
	}
	return count, nil
}

func selectColumns() sq.SelectBuilder {
	return sq.Select(
		"title", "description", "url", "content", "published_at",
		"source", "author", "image_url", "fetched_at",
	).From("articles")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (article.Article, error) {
	var a article.Article
	err := row.Scan(
		&a.Title, &a.Description, &a.URL, &a.Content, &a.PublishedAt,
		&a.Source, &a.Author, &a.ImageURL, &a.FetchedAt,
	)
	return a, err
}
