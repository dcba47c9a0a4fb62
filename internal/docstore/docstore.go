package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Metadata is one stored document's catalog row. FilePath points at the
// stored upload and never leaves the server.
type Metadata struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title,omitempty"`
	FilePath    string    `json:"-"`
	ContentHash string    `json:"content_hash"`
	Pages       int       `json:"page_count"`
	Words       int       `json:"word_count"`
	Sentences   int       `json:"sentence_count"`
	Tokens      int       `json:"token_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is the SQLite-backed document catalog.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	log *slog.Logger
}

// Open initializes the catalog database at path, creating the parent
// directory and the schema as needed.
func Open(path string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// modernc sqlite allows a single writer; one connection avoids
	// SQLITE_BUSY under concurrent workers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Warn("sqlite pragma failed", "pragma", pragma, "error", err)
		}
	}

	s := &Store{db: db, log: log}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		file_path TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		page_count INTEGER NOT NULL DEFAULT 0,
		word_count INTEGER NOT NULL DEFAULT 0,
		sentence_count INTEGER NOT NULL DEFAULT 0,
		token_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_content_hash ON documents(content_hash);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const selectCols = `SELECT id, filename, title, file_path, content_hash,
	page_count, word_count, sentence_count, token_count, created_at
	FROM documents`

// Put inserts or replaces a document row.
func (s *Store) Put(ctx context.Context, m Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents
		(id, filename, title, file_path, content_hash,
		 page_count, word_count, sentence_count, token_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Filename, m.Title, m.FilePath, m.ContentHash,
		m.Pages, m.Words, m.Sentences, m.Tokens, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("store document %s: %w", m.ID, err)
	}
	return nil
}

// Get returns the document with the given id, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scanOne(s.db.QueryRowContext(ctx, selectCols+" WHERE id = ?", id))
}

// FindByHash returns a document with the given content hash, or nil. Used to
// skip re-ingesting an already stored upload.
func (s *Store) FindByHash(ctx context.Context, hash string) (*Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scanOne(s.db.QueryRowContext(ctx, selectCols+" WHERE content_hash = ? LIMIT 1", hash))
}

// List returns all documents, newest first.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, selectCols+" ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []Metadata
	for rows.Next() {
		var m Metadata
		if err := rows.Scan(&m.ID, &m.Filename, &m.Title, &m.FilePath, &m.ContentHash,
			&m.Pages, &m.Words, &m.Sentences, &m.Tokens, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes a document row and reports whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanOne(row *sql.Row) (*Metadata, error) {
	var m Metadata
	err := row.Scan(&m.ID, &m.Filename, &m.Title, &m.FilePath, &m.ContentHash,
		&m.Pages, &m.Words, &m.Sentences, &m.Tokens, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &m, nil
}
