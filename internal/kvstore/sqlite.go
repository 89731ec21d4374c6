package kvstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS entries (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLite stores the mapping as rows of a single SQLite table.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates a SQLite database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// Load reads every row. Values not stored as TEXT are corruption.
func (s *SQLite) Load() (Mapping, error) {
	rows, err := s.db.Query(`SELECT key, value, typeof(value) FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	m := Mapping{}
	for rows.Next() {
		var key, valueType string
		var value string
		if err := rows.Scan(&key, &value, &valueType); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if valueType != "text" {
			return nil, &CorruptError{Path: s.path, Reason: fmt.Sprintf("bad map: value for %q is %s, not text", key, valueType)}
		}
		m[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return m, nil
}

// Save replaces all rows with m in one transaction.
func (s *SQLite) Save(m Mapping) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, k := range m.Keys() {
		if _, err := stmt.Exec(k, m[k]); err != nil {
			return fmt.Errorf("inserting %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
