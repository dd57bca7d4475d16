package storage

import (
	"path/filepath"
	"testing"
)

func TestGetSet(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := db.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := db.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v1" {
		t.Errorf("Get: got %q, want %q", got, "v1")
	}

	// Overwrite
	if err := db.Set("k", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := db.Get("k"); got != "v2" {
		t.Errorf("Get after overwrite: got %q, want %q", got, "v2")
	}
}

func TestGetMissingKey(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	got, err := db.Get("absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "" {
		t.Errorf("missing key: got %q, want empty", got)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if got, _ := db.Get("k"); got != "v" {
		t.Errorf("value not persisted across reopen: got %q", got)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if got, _ := m.Get("k"); got != "" {
		t.Errorf("missing key: got %q, want empty", got)
	}
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := m.Get("k"); got != "v" {
		t.Errorf("Get: got %q, want %q", got, "v")
	}
}
