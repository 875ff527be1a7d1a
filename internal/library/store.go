// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists citable sources and their full text in SQLite
// so documents can be compared against everything collected so far. It
// also keeps a history of similarity analyses.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/citeguard/pkg/types"
)

const dbFile = "library.db"

// ErrNotFound is returned when no source has the requested ID.
var ErrNotFound = errors.New("source not found")

// Source is a stored source: its citation metadata plus the text used for
// similarity comparison.
type Source struct {
	ID      string    `json:"id" yaml:"id"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`
	Content string    `json:"content,omitempty" yaml:"content,omitempty"`

	types.SourceMetadata `yaml:",inline"`
}

// Text returns the source as a similarity comparison target.
func (s Source) Text() types.SourceText {
	return types.SourceText{ID: s.ID, Title: s.Title, Content: s.Content}
}

// Store manages the library SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	fts        bool
	now        func() time.Time
	logger     *zap.Logger
}

// NewStore opens or creates the library database at cfg.Dir/library.db and
// creates the schema if it does not exist.
func NewStore(cfg types.LibraryConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
		now:        time.Now,
		logger:     logger.With(zap.String("component", "library")),
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			publication_name TEXT,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			url TEXT,
			doi TEXT,
			access_date TEXT,
			source_type TEXT,
			content TEXT NOT NULL DEFAULT '',
			added_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sources_doi ON sources(doi)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document_title TEXT,
			score REAL NOT NULL,
			flagged_count INTEGER NOT NULL,
			total_matches INTEGER NOT NULL,
			sources_checked INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			recommendations TEXT,
			analyzed_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sources_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		s.fts = true
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE sources_fts USING fts5(title, content, content=sources, content_rowid=rowid)`,
		`CREATE TRIGGER sources_ai AFTER INSERT ON sources BEGIN
			INSERT INTO sources_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
		END`,
		`CREATE TRIGGER sources_ad AFTER DELETE ON sources BEGIN
			INSERT INTO sources_fts(sources_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
		END`,
		`CREATE TRIGGER sources_au AFTER UPDATE ON sources BEGIN
			INSERT INTO sources_fts(sources_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
			INSERT INTO sources_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
		END`,
	}
	for i, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			// Without the sqlite_fts5 build tag the module is missing;
			// search falls back to substring matching.
			if i == 0 && strings.Contains(err.Error(), "no such module") {
				s.logger.Warn("FTS5 unavailable, library search uses substring matching")
				return nil
			}
			return fmt.Errorf("creating FTS: %w", err)
		}
	}
	s.fts = true
	return nil
}

// AddSource stores m with its full text and returns the stored source. A
// source whose DOI is already in the library is updated in place and keeps
// its ID.
func (s *Store) AddSource(ctx context.Context, m types.SourceMetadata, content string) (Source, error) {
	if strings.TrimSpace(m.Title) == "" {
		return Source{}, errors.New("source title is required")
	}
	m.SourceType = m.SourceType.Normalize()

	src := Source{
		ID:             uuid.NewString(),
		AddedAt:        s.now().UTC().Truncate(time.Second),
		Content:        content,
		SourceMetadata: m,
	}

	authorsJSON, err := json.Marshal(m.Authors)
	if err != nil {
		return Source{}, fmt.Errorf("marshaling authors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Source{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if m.DOI != "" {
		var existing string
		err := tx.QueryRowContext(ctx, `SELECT id FROM sources WHERE doi = ?`, m.DOI).Scan(&existing)
		switch {
		case err == nil:
			src.ID = existing
		case !errors.Is(err, sql.ErrNoRows):
			return Source{}, fmt.Errorf("looking up DOI: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sources (id, title, authors, year, publication_name, volume,
			issue, pages, url, doi, access_date, source_type, content, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, authors = excluded.authors, year = excluded.year,
			publication_name = excluded.publication_name, volume = excluded.volume,
			issue = excluded.issue, pages = excluded.pages, url = excluded.url,
			access_date = excluded.access_date, source_type = excluded.source_type,
			content = excluded.content, added_at = excluded.added_at`,
		src.ID, m.Title, string(authorsJSON), m.Year, m.PublicationName, m.Volume,
		m.Issue, m.Pages, m.URL, m.DOI, m.AccessDate, string(m.SourceType),
		content, src.AddedAt.Format(time.RFC3339),
	); err != nil {
		return Source{}, fmt.Errorf("inserting source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Source{}, fmt.Errorf("committing source: %w", err)
	}

	s.logger.Debug("source stored", zap.String("id", src.ID), zap.String("title", m.Title))
	return src, nil
}

const sourceColumns = `s.id, s.title, s.authors, s.year, s.publication_name, s.volume,
	s.issue, s.pages, s.url, s.doi, s.access_date, s.source_type, s.content, s.added_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSource reads sourceColumns followed by any extra destinations.
func scanSource(row rowScanner, extra ...any) (Source, error) {
	var (
		src         Source
		authorsJSON sql.NullString
		sourceType  string
		addedAt     string
	)
	dest := []any{
		&src.ID, &src.Title, &authorsJSON, &src.Year, &src.PublicationName, &src.Volume,
		&src.Issue, &src.Pages, &src.URL, &src.DOI, &src.AccessDate, &sourceType,
		&src.Content, &addedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Source{}, err
	}
	src.SourceType = types.SourceType(sourceType)
	if authorsJSON.Valid && authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &src.Authors); err != nil {
			return Source{}, fmt.Errorf("decoding authors of source %s: %w", src.ID, err)
		}
	}
	t, err := time.Parse(time.RFC3339, addedAt)
	if err != nil {
		return Source{}, fmt.Errorf("parsing added_at of source %s: %w", src.ID, err)
	}
	src.AddedAt = t
	return src, nil
}

// GetSource returns the source with the given ID.
func (s *Store) GetSource(ctx context.Context, id string) (Source, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sourceColumns+` FROM sources s WHERE s.id = ?`, id)
	src, err := scanSource(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Source{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Source{}, fmt.Errorf("looking up source: %w", err)
	}
	return src, nil
}

// RemoveSource deletes the source with the given ID.
func (s *Store) RemoveSource(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// SourceTexts returns every stored source as a comparison target, oldest
// first.
func (s *Store) SourceTexts(ctx context.Context) ([]types.SourceText, error) {
	sources, err := s.ListSources(ctx, 0)
	if err != nil {
		return nil, err
	}
	texts := make([]types.SourceText, len(sources))
	for i, src := range sources {
		texts[i] = src.Text()
	}
	return texts, nil
}
