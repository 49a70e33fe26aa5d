// Package store keeps the small durable extras that do not belong in the
// session state file: pinned folders, visit counts, and misc settings.
package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Visit is one row of the recents list.
type Visit struct {
	Path      string
	Count     int
	LastVisit time.Time
}

type Store struct {
	conn *sql.DB
}

// Open initializes the database connection and schema
func Open(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Performance Tuning
	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return nil, err
	}

	// Schema - Pinned folders table
	pinnedQuery := `
	CREATE TABLE IF NOT EXISTS pinned (
		path TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(pinnedQuery); err != nil {
		return nil, err
	}

	// Schema - Visits table; last_visit holds Unix nanoseconds so
	// ordering survives bursts within the same second
	visitsQuery := `
	CREATE TABLE IF NOT EXISTS visits (
		path TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0,
		last_visit INTEGER NOT NULL DEFAULT 0
	);
	`
	if _, err := db.Exec(visitsQuery); err != nil {
		return nil, err
	}

	// Schema - Settings table
	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		return nil, err
	}

	return &Store{conn: db}, nil
}

// AddPin pins a folder. Pinning an already-pinned path is a no-op.
func (s *Store) AddPin(path string) error {
	// Use INSERT OR IGNORE to handle duplicates gracefully
	_, err := s.conn.Exec("INSERT OR IGNORE INTO pinned (path) VALUES (?)", path)
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	return err
}

// RemovePin unpins a folder.
func (s *Store) RemovePin(path string) error {
	_, err := s.conn.Exec("DELETE FROM pinned WHERE path = ?", path)
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	return err
}

// Pins returns pinned folders in the order they were pinned.
func (s *Store) Pins() ([]string, error) {
	rows, err := s.conn.Query("SELECT path FROM pinned ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pins []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err == nil {
			pins = append(pins, path)
		}
	}
	return pins, rows.Err()
}

// RecordVisit bumps the visit count and timestamp for a folder.
func (s *Store) RecordVisit(path string) error {
	_, err := s.conn.Exec(`
		INSERT INTO visits (path, count, last_visit) VALUES (?, 1, ?)
		ON CONFLICT(path) DO UPDATE SET count = count + 1, last_visit = excluded.last_visit`,
		path, time.Now().UnixNano())
	if err != nil {
		log.Printf("Store Error recording visit: %v", err)
	}
	return err
}

// RecentVisits returns the most recently visited folders, newest first.
func (s *Store) RecentVisits(limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.conn.Query(
		"SELECT path, count, last_visit FROM visits ORDER BY last_visit DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var nanos int64
		if err := rows.Scan(&v.Path, &v.Count, &nanos); err == nil {
			v.LastVisit = time.Unix(0, nanos)
			visits = append(visits, v)
		}
	}
	return visits, rows.Err()
}

// ClearVisits empties the recents list.
func (s *Store) ClearVisits() error {
	_, err := s.conn.Exec("DELETE FROM visits")
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	return err
}

// Settings returns all stored key-value settings.
func (s *Store) Settings() (map[string]string, error) {
	rows, err := s.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}
	return settings, rows.Err()
}

// SetSetting upserts a key-value setting.
func (s *Store) SetSetting(key, value string) error {
	// Use INSERT OR REPLACE to upsert the setting
	_, err := s.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		log.Printf("Store Error saving setting: %v", err)
	}
	return err
}

// contextKeyPrefix namespaces context definitions within the settings
// table.
const contextKeyPrefix = "context:"

// ContextQuery returns the stored query for a named context.
func (s *Store) ContextQuery(name string) (string, bool) {
	var value string
	err := s.conn.QueryRow(
		"SELECT value FROM settings WHERE key = ?", contextKeyPrefix+name).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("Store Error: %v", err)
		}
		return "", false
	}
	return value, true
}

// SetContextQuery stores or replaces a named context definition.
func (s *Store) SetContextQuery(name, query string) error {
	return s.SetSetting(contextKeyPrefix+name, query)
}

// RemoveContext deletes a named context definition.
func (s *Store) RemoveContext(name string) error {
	_, err := s.conn.Exec("DELETE FROM settings WHERE key = ?", contextKeyPrefix+name)
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	return err
}

// Contexts returns all stored context definitions by name.
func (s *Store) Contexts() (map[string]string, error) {
	rows, err := s.conn.Query(
		"SELECT key, value FROM settings WHERE key LIKE ?", contextKeyPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contexts := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			contexts[key[len(contextKeyPrefix):]] = value
		}
	}
	return contexts, rows.Err()
}

func (s *Store) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}
