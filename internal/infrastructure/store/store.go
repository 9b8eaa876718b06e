// Package store persists harvested articles in a sqlite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tesso57/feedsmith/internal/domain/harvest"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	guid             TEXT PRIMARY KEY,
	title            TEXT NOT NULL DEFAULT '',
	link             TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	content          TEXT NOT NULL DEFAULT '',
	author_name      TEXT NOT NULL DEFAULT '',
	author_email     TEXT NOT NULL DEFAULT '',
	source_url       TEXT NOT NULL DEFAULT '',
	source_title     TEXT NOT NULL DEFAULT '',
	categories       TEXT NOT NULL DEFAULT '[]',
	enclosure_url    TEXT NOT NULL DEFAULT '',
	enclosure_length TEXT NOT NULL DEFAULT '',
	enclosure_type   TEXT NOT NULL DEFAULT '',
	published_at     INTEGER,
	saved_at         INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source_url, published_at DESC);
`

// Store is a sqlite-backed article repository. It is safe for
// concurrent use.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces articles by their key.
func (s *Store) Upsert(articles []harvest.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO articles
		(guid, title, link, description, content, author_name, author_email,
		 source_url, source_title, categories,
		 enclosure_url, enclosure_length, enclosure_type, published_at, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, a := range articles {
		cats, err := json.Marshal(a.Categories)
		if err != nil {
			return err
		}
		var published any
		if a.PublishedAt != nil {
			published = a.PublishedAt.Unix()
		}
		savedAt := a.SavedAt
		if savedAt.IsZero() {
			savedAt = time.Now()
		}
		if _, err := stmt.Exec(
			a.Key(), a.Title, a.Link, a.Description, a.Content,
			a.AuthorName, a.AuthorEmail, a.SourceURL, a.SourceTitle, string(cats),
			a.EnclosureURL, a.EnclosureLength, a.EnclosureType,
			published, savedAt.Unix(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListBySources returns articles from the given source URLs, newest
// first; undated articles sort last. An empty source list means every
// source; limit <= 0 means no limit.
func (s *Store) ListBySources(sources []string, limit int) ([]harvest.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT guid, title, link, description, content, author_name, author_email,
		       source_url, source_title, categories,
		       enclosure_url, enclosure_length, enclosure_type, published_at, saved_at
		FROM articles`
	var args []any
	if len(sources) > 0 {
		placeholders := strings.Repeat("?,", len(sources))
		query += " WHERE source_url IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, src := range sources {
			args = append(args, src)
		}
	}
	query += " ORDER BY published_at IS NULL, published_at DESC, saved_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []harvest.Article
	for rows.Next() {
		var a harvest.Article
		var cats string
		var published sql.NullInt64
		var savedAt int64
		if err := rows.Scan(
			&a.GUID, &a.Title, &a.Link, &a.Description, &a.Content,
			&a.AuthorName, &a.AuthorEmail, &a.SourceURL, &a.SourceTitle, &cats,
			&a.EnclosureURL, &a.EnclosureLength, &a.EnclosureType,
			&published, &savedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cats), &a.Categories); err != nil {
			a.Categories = nil
		}
		if published.Valid {
			t := time.Unix(published.Int64, 0).UTC()
			a.PublishedAt = &t
		}
		a.SavedAt = time.Unix(savedAt, 0).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// Prune keeps only the newest perSource articles for every source and
// deletes the rest.
func (s *Store) Prune(perSource int) error {
	if perSource <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		DELETE FROM articles WHERE guid IN (
			SELECT guid FROM (
				SELECT guid, ROW_NUMBER() OVER (
					PARTITION BY source_url
					ORDER BY published_at IS NULL, published_at DESC, saved_at DESC
				) AS rn
				FROM articles
			) WHERE rn > ?
		)`, perSource)
	return err
}
