// Package store persists user configuration: prefix routes, the folder
// exclusion set, and last-used paths. It backs the settings collaborator
// with a small local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// ErrNotFound is returned when a requested setting doesn't exist.
var ErrNotFound = errors.New("not found")

// Store is a settings store over a single SQLite file.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS prefix_folders (
		prefix TEXT NOT NULL,
		folder TEXT NOT NULL,
		PRIMARY KEY (prefix, folder)
	)`,
	`CREATE TABLE IF NOT EXISTS excluded_folders (
		folder TEXT PRIMARY KEY
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// Open opens (creating if needed) the settings database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}

	// SQLite benefits from a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadRoutes reads the persisted prefix routes and exclusion set.
func (s *Store) LoadRoutes() (map[string][]string, []string, error) {
	routes := make(map[string][]string)

	rows, err := s.db.Query(`SELECT prefix, folder FROM prefix_folders ORDER BY prefix, folder`)
	if err != nil {
		return nil, nil, fmt.Errorf("load prefix routes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var prefix, folder string
		if err := rows.Scan(&prefix, &folder); err != nil {
			return nil, nil, fmt.Errorf("scan prefix route: %w", err)
		}
		routes[prefix] = append(routes[prefix], folder)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("load prefix routes: %w", err)
	}

	var exclusions []string
	exRows, err := s.db.Query(`SELECT folder FROM excluded_folders ORDER BY folder`)
	if err != nil {
		return nil, nil, fmt.Errorf("load exclusions: %w", err)
	}
	defer exRows.Close()
	for exRows.Next() {
		var folder string
		if err := exRows.Scan(&folder); err != nil {
			return nil, nil, fmt.Errorf("scan exclusion: %w", err)
		}
		exclusions = append(exclusions, folder)
	}
	if err := exRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("load exclusions: %w", err)
	}
	return routes, exclusions, nil
}

// SaveRoutes replaces the persisted prefix routes and exclusion set.
func (s *Store) SaveRoutes(routes map[string][]string, exclusions []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM prefix_folders`); err != nil {
		return fmt.Errorf("clear prefix routes: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM excluded_folders`); err != nil {
		return fmt.Errorf("clear exclusions: %w", err)
	}
	for prefix, folders := range routes {
		for _, folder := range folders {
			if _, err := tx.Exec(
				`INSERT INTO prefix_folders (prefix, folder) VALUES (?, ?)`,
				prefix, folder,
			); err != nil {
				return fmt.Errorf("save prefix route %s: %w", prefix, err)
			}
		}
	}
	for _, folder := range exclusions {
		if _, err := tx.Exec(
			`INSERT INTO excluded_folders (folder) VALUES (?)`, folder,
		); err != nil {
			return fmt.Errorf("save exclusion %s: %w", folder, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Get reads a setting value; ErrNotFound when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// Set writes a setting value, replacing any existing one.
func (s *Store) Set(key, value string) error {
	if _, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
