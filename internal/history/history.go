// Package history provides a SQLite-backed revision log: every save
// records the share token and checksum it produced, so earlier
// configurations stay recoverable by pasting an old token back in.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/dagaz/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS revisions (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	token     TEXT NOT NULL,
	checksum  TEXT NOT NULL DEFAULT '',
	raw_bytes INTEGER NOT NULL DEFAULT 0,
	saved_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_revisions_saved_at ON revisions(saved_at);
`

// Revision is one recorded save.
type Revision struct {
	ID       int64     `json:"id"`
	Token    string    `json:"token"`
	Checksum string    `json:"checksum"`
	RawBytes int       `json:"rawBytes"`
	SavedAt  time.Time `json:"savedAt"`
}

// Log defines the revision log operations. Consumers should depend on
// this interface rather than the concrete *DB type.
type Log interface {
	Append(token, checksum string, rawBytes int) error
	Recent(limit int) ([]Revision, error)
	Latest() (*Revision, error)
	Prune(keep int) error
	Close() error
}

// Verify *DB satisfies Log at compile time.
var _ Log = (*DB)(nil)

// DB wraps a sql.DB with revision-log operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Append records one save.
func (db *DB) Append(token, checksum string, rawBytes int) error {
	_, err := db.conn.Exec(`
		INSERT INTO revisions (token, checksum, raw_bytes, saved_at)
		VALUES (?, ?, ?, ?)
	`, token, checksum, rawBytes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns the newest revisions, most recent first.
func (db *DB) Recent(limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, token, checksum, raw_bytes, saved_at
		FROM revisions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Token, &r.Checksum, &r.RawBytes, &r.SavedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Latest returns the most recent revision.
func (db *DB) Latest() (*Revision, error) {
	var r Revision
	err := db.conn.QueryRow(`
		SELECT id, token, checksum, raw_bytes, saved_at
		FROM revisions
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&r.ID, &r.Token, &r.Checksum, &r.RawBytes, &r.SavedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: latest: %w", err)
	}
	return &r, nil
}

// Prune deletes everything but the newest keep revisions.
func (db *DB) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := db.conn.Exec(`
		DELETE FROM revisions
		WHERE id NOT IN (SELECT id FROM revisions ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return fmt.Errorf("history: prune: %w", err)
	}
	return nil
}
