package store

import (
	"context"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"

	"github.com/code1379/bookmark/internal/auth"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	description TEXT,
	tags TEXT NOT NULL DEFAULT '[]',
	category_id INTEGER REFERENCES categories(id),
	created_at INTEGER NOT NULL DEFAULT (unixepoch())
);`

// SQLiteStore is the in-process fallback backend, used when the remote
// database is not configured. It is a complete parallel implementation of
// the Store contract, not a cache: the same schema D1 carries, applied to
// an in-memory sqlite database and seeded with deterministic fixture data
// for local development. The single connection serializes all access, so
// invariants that span tables hold under concurrent requests.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens an in-memory database, applies the schema and
// seeds the demo fixtures.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	// An in-memory database exists per connection; more than one would
	// each see their own empty schema.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed fixtures: %w", err)
	}
	return s, nil
}

// Query executes the statement and returns its rows. Statements that
// produce no rows (plain INSERT, UPDATE, DELETE) return an empty slice.
func (s *SQLiteStore) Query(ctx context.Context, query string, params ...any) ([]Row, error) {
	result, err := s.db.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer result.Close()

	rows := []Row{}
	for result.Next() {
		row := map[string]any{}
		if err := result.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rows = append(rows, Row(row))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) seed() error {
	demoHash, err := auth.HashPassword("Demo@123456")
	if err != nil {
		return err
	}

	now := time.Now().Unix()

	if _, err := s.db.Exec(
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		"demo", "demo@example.local", demoHash, now,
	); err != nil {
		return err
	}

	categories := []string{"Design Resources", "Development"}
	for _, name := range categories {
		if _, err := s.db.Exec(
			"INSERT INTO categories (user_id, name, created_at) VALUES (1, ?, ?)", name, now,
		); err != nil {
			return err
		}
	}

	bookmarks := []struct {
		title       string
		url         string
		description string
		tags        string
		categoryID  any
		createdAt   int64
	}{
		{"Figma", "https://figma.com/files/project-alpha", "Collaborative interface design tool.", `["design","ui"]`, 1, now - 120},
		{"Dribbble Inspiration", "https://dribbble.com/shots/popular", "Discover inspiration from top designers.", `["inspiration"]`, 1, now - 3600},
		{"UX Collective", "https://medium.com/ux-collective", "Curated UX stories and product design articles.", `["reading"]`, nil, now - 7200},
	}
	for _, b := range bookmarks {
		if _, err := s.db.Exec(
			"INSERT INTO bookmarks (user_id, title, url, description, tags, category_id, created_at) VALUES (1, ?, ?, ?, ?, ?, ?)",
			b.title, b.url, b.description, b.tags, b.categoryID, b.createdAt,
		); err != nil {
			return err
		}
	}

	return nil
}
