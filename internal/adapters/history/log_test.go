package history

import (
	"path/filepath"
	"testing"
	"time"

	"quickexport/internal/ports"
)

func TestLogRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "history.db")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer log.Close()

	when := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entries := []ports.ExportEntry{
		{Node: "Props", Exporter: "fbx", Path: "/out/Props.fbx", Status: "exported", When: when},
		{Node: "Terrain", Exporter: "fbx", Path: "/out/Terrain.fbx", Status: "error", Message: "export directory does not exist", When: when.Add(time.Minute)},
		{Node: "Props", Exporter: "fbx", Path: "/out/Props.fbx", Status: "exported", When: when.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := log.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d entries, want 2", len(got))
	}
	// Newest first.
	if got[0].Node != "Props" || !got[0].When.Equal(when.Add(2*time.Minute)) {
		t.Errorf("Recent()[0] = %+v, want the latest Props entry", got[0])
	}
	if got[1].Node != "Terrain" || got[1].Status != "error" || got[1].Message != "export directory does not exist" {
		t.Errorf("Recent()[1] = %+v, want the Terrain error entry", got[1])
	}
}

func TestLogPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	entry := ports.ExportEntry{Node: "Props", Exporter: "fbx", Path: "/out/Props.fbx", Status: "exported", When: time.Now()}
	if err := log.Record(entry); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	log, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer log.Close()
	got, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 || got[0].Node != "Props" {
		t.Errorf("Recent() after reopen = %+v, want the recorded entry", got)
	}
}

func TestLogRecentEmpty(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer log.Close()

	got, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() on an empty log = %+v, want nothing", got)
	}
}
