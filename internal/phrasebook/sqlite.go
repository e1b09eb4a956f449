package phrasebook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS phrasebook (
	id      TEXT PRIMARY KEY,
	data    TEXT NOT NULL,
	version INTEGER NOT NULL
)`

// SQLiteStore keeps entries in a single SQLite file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the phrasebook database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create phrasebook directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phrasebook database: %w", err)
	}
	// One connection avoids SQLITE_BUSY between our own goroutines
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create phrasebook table: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

// Put inserts or replaces an entry
func (s *SQLiteStore) Put(ctx context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO phrasebook (id, data, version) VALUES (?, ?, ?)`,
		doc.ID, string(doc.Data), doc.PhrasebookVersion)
	if err != nil {
		return fmt.Errorf("failed to store phrasebook entry %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns the entry with the given id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Document, error) {
	var (
		data    string
		version int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, version FROM phrasebook WHERE id = ?`, id).Scan(&data, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read phrasebook entry %s: %w", id, err)
	}

	doc := &Document{ID: id, Data: []byte(data), PhrasebookVersion: version}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Remove deletes the entry with the given id
func (s *SQLiteStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM phrasebook WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove phrasebook entry %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all entries this version can read, newest first
func (s *SQLiteStore) List(ctx context.Context) ([]*Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data, version FROM phrasebook WHERE version <= ? ORDER BY id DESC`, CurrentVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to list phrasebook: %w", err)
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		var (
			doc  Document
			data string
		)
		if err := rows.Scan(&doc.ID, &data, &doc.PhrasebookVersion); err != nil {
			return nil, fmt.Errorf("failed to scan phrasebook entry: %w", err)
		}
		doc.Data = []byte(data)
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
