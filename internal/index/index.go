// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index maintains a SQLite full-text index over the publication
// store. The JSON store stays the source of truth; the index is a
// disposable projection rebuilt from it on demand.
//
// The FTS5 virtual table requires mattn/go-sqlite3 to be compiled with
// the sqlite_fts5 build tag: build and test with -tags sqlite_fts5.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/scholarops/pubsync/pkg/types"
)

const dbFile = "index.db"

// Store manages the search index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index database at cfg.IndexDir/index.db,
// creating the schema when it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS publications (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			citations INTEGER,
			source TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_source ON publications(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='pubs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE pubs_fts USING fts5(title, authors, venue, content=publications, content_rowid=rowid)`,
			`CREATE TRIGGER pubs_ai AFTER INSERT ON publications BEGIN
				INSERT INTO pubs_fts(rowid, title, authors, venue) VALUES (new.rowid, new.title, new.authors, new.venue);
			END`,
			`CREATE TRIGGER pubs_ad AFTER DELETE ON publications BEGIN
				INSERT INTO pubs_fts(pubs_fts, rowid, title, authors, venue) VALUES('delete', old.rowid, old.title, old.authors, old.venue);
			END`,
			`CREATE TRIGGER pubs_au AFTER UPDATE ON publications BEGIN
				INSERT INTO pubs_fts(pubs_fts, rowid, title, authors, venue) VALUES('delete', old.rowid, old.title, old.authors, old.venue);
				INSERT INTO pubs_fts(rowid, title, authors, venue) VALUES (new.rowid, new.title, new.authors, new.venue);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Rebuild replaces the index contents with the given publications in a
// single transaction. The delete runs through the triggers so the FTS
// table stays in sync.
func (s *Store) Rebuild(ctx context.Context, pubs []types.Publication) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM publications`); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (title, authors, year, venue, citations, source)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, pub := range pubs {
		_, err := stmt.ExecContext(ctx,
			pub.Title, pub.Authors.String(), int(pub.Year),
			pub.Venue, pub.Citations, string(pub.Source),
		)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", pub.Title, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of indexed publications.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM publications`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting publications: %w", err)
	}
	return n, nil
}
