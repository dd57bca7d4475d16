// Package codec serializes the store to versioned backup documents and
// merges external documents back in.
package codec

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kpeters/atd/internal/models"
	"github.com/kpeters/atd/internal/store"
)

// Version is the backup document schema tag
const Version = "1.0"

// ErrInvalidFormat is returned when an import document is malformed or its
// tasks field is missing or not an array. The store is left untouched.
var ErrInvalidFormat = errors.New("invalid backup format")

//go:embed backup.schema.json
var backupSchema string

var envelope = jsonschema.MustCompileString("backup.schema.json", backupSchema)

// Backup is the export document envelope
type Backup struct {
	Tasks      []*models.Task    `json:"tasks"`
	Categories []models.Category `json:"categories"`
	ExportDate time.Time         `json:"exportDate"`
	Version    string            `json:"version"`
}

// Policy selects how imported data is combined with existing data
type Policy int

const (
	// Replace discards existing tasks and re-seeds categories before
	// appending the imported ones
	Replace Policy = iota
	// Merge appends imported tasks after existing ones and skips imported
	// categories whose exact name already exists
	Merge
)

// Export produces the indented JSON backup document for the store
func Export(st *store.Store) ([]byte, error) {
	b := Backup{
		Tasks:      st.Tasks(),
		Categories: st.Categories(),
		ExportDate: time.Now(),
		Version:    Version,
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return append(data, '\n'), nil
}

// BackupFilename returns the date-stamped default export filename
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("todo-backup-%s.json", now.Format("2006-01-02"))
}

// WriteBackup exports the store to path. If path is a directory or empty,
// the date-stamped default filename is used. Returns the path written.
func WriteBackup(st *store.Store, path string) (string, error) {
	if path == "" {
		path = BackupFilename(time.Now())
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, BackupFilename(time.Now()))
	}

	data, err := Export(st)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

// Import parses data and merges it into the store under the given policy.
// Tasks without an id get a fresh one; everything else in the document is
// trusted as-is. On any validation failure the store is not mutated.
// Returns the number of imported tasks.
func Import(st *store.Store, data []byte, policy Policy) (int, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := envelope.Validate(doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	imported := make([]*models.Task, 0, len(b.Tasks))
	for _, t := range b.Tasks {
		if t == nil {
			continue
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		imported = append(imported, t)
	}
	b.Tasks = imported

	var tasks []*models.Task
	var categories []models.Category
	switch policy {
	case Replace:
		tasks = b.Tasks
		categories = append(store.SeedCategories(), b.Categories...)
	case Merge:
		tasks = append(st.Tasks(), b.Tasks...)
		categories = st.Categories()
		for _, imported := range b.Categories {
			exists := false
			for _, c := range categories {
				// Exact-case match, unlike the case-insensitive check
				// applied when creating categories by hand
				if c.Name == imported.Name {
					exists = true
					break
				}
			}
			if !exists {
				categories = append(categories, imported)
			}
		}
	default:
		return 0, fmt.Errorf("unknown import policy %d", policy)
	}

	if err := st.Restore(tasks, categories); err != nil {
		return 0, err
	}
	return len(b.Tasks), nil
}

// ImportFile reads path and imports it under the given policy
func ImportFile(st *store.Store, path string, policy Policy) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read backup: %w", err)
	}
	return Import(st, data, policy)
}
