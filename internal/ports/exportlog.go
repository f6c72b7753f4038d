package ports

import "time"

// ExportEntry is one recorded export attempt.
type ExportEntry struct {
	Node     string
	Exporter string
	Path     string
	Status   string
	Message  string
	When     time.Time
}

// ExportLog records finished export attempts for later inspection.
type ExportLog interface {
	Record(entry ExportEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]ExportEntry, error)
	Close() error
}
