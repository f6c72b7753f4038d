package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quickexport/internal/ports"

	_ "modernc.org/sqlite"
)

// Log implements ports.ExportLog over a SQLite database.
type Log struct {
	db   *sql.DB
	path string
}

// Ensure Log implements ExportLog
var _ ports.ExportLog = (*Log)(nil)

// Open creates or opens the history database at the given path.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS exports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			node TEXT NOT NULL,
			exporter TEXT NOT NULL,
			path TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_exports_node ON exports(node);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup history database: %w", err)
	}

	return &Log{db: db, path: path}, nil
}

// Record inserts one export attempt.
func (l *Log) Record(entry ports.ExportEntry) error {
	_, err := l.db.Exec(
		`INSERT INTO exports (node, exporter, path, status, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Node, entry.Exporter, entry.Path, entry.Status, entry.Message, entry.When.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// Recent returns up to limit recorded exports, newest first.
func (l *Log) Recent(limit int) ([]ports.ExportEntry, error) {
	rows, err := l.db.Query(
		`SELECT node, exporter, path, status, message, created_at FROM exports ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query export history: %w", err)
	}
	defer rows.Close()

	var entries []ports.ExportEntry
	for rows.Next() {
		var e ports.ExportEntry
		var created int64
		if err := rows.Scan(&e.Node, &e.Exporter, &e.Path, &e.Status, &e.Message, &created); err != nil {
			return nil, fmt.Errorf("failed to scan export entry: %w", err)
		}
		e.When = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
