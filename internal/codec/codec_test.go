package codec

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kpeters/atd/internal/models"
	"github.com/kpeters/atd/internal/storage"
	"github.com/kpeters/atd/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(storage.NewMemory(), nil)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	return s
}

func TestExportEnvelope(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(store.TaskInput{Title: "Buy milk", Tags: "errand"})

	data, err := Export(s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc["version"] != Version {
		t.Errorf("version: got %v, want %q", doc["version"], Version)
	}
	if _, ok := doc["exportDate"].(string); !ok {
		t.Error("exportDate missing")
	}
	tasks, ok := doc["tasks"].([]any)
	if !ok || len(tasks) != 1 {
		t.Errorf("tasks: got %v", doc["tasks"])
	}
	categories, ok := doc["categories"].([]any)
	if !ok || len(categories) != 4 {
		t.Errorf("categories: got %v", doc["categories"])
	}
}

func TestExportImportReplaceRoundTrip(t *testing.T) {
	src := newTestStore(t)
	created, _ := src.CreateTask(store.TaskInput{
		Title:    "Buy milk",
		Category: "shopping",
		Priority: models.PriorityHigh,
		DueDate:  "2024-06-01",
		DueTime:  "09:00",
		Tags:     "errand, food",
	})

	data, err := Export(src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := newTestStore(t)
	n, err := Import(dst, data, Replace)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("imported count: got %d, want 1", n)
	}

	got, ok := dst.Task(created.ID)
	if !ok {
		t.Fatal("imported task should keep its id")
	}
	if got.Title != created.Title || got.DueDate != created.DueDate || got.DueTime != created.DueTime {
		t.Errorf("imported task mismatch: %+v", got)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("priority: got %q", got.Priority)
	}
	if got.Category == nil || *got.Category != "shopping" {
		t.Error("category not preserved")
	}
	if len(got.Tags) != 2 {
		t.Errorf("tags: got %v", got.Tags)
	}
}

func TestImportAssignsMissingIDs(t *testing.T) {
	s := newTestStore(t)

	data := []byte(`{"tasks": [{"title": "No id"}, {"id": "keep-me", "title": "Has id"}]}`)
	if _, err := Import(s, data, Replace); err != nil {
		t.Fatalf("Import: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID == "" {
		t.Error("task without id should get a fresh one")
	}
	if tasks[1].ID != "keep-me" {
		t.Errorf("existing id should be trusted, got %q", tasks[1].ID)
	}
}

func TestImportReplaceReseedsCategories(t *testing.T) {
	s := newTestStore(t)
	s.CreateCategory(store.CategoryInput{Name: "Doomed", Color: "#000000"})

	data := []byte(`{"tasks": [], "categories": [{"id": "x", "name": "Imported", "color": "#111111"}]}`)
	if _, err := Import(s, data, Replace); err != nil {
		t.Fatalf("Import: %v", err)
	}

	categories := s.Categories()
	if len(categories) != 5 {
		t.Fatalf("got %d categories, want seeds + imported = 5", len(categories))
	}
	if categories[0].Name != "Work" {
		t.Error("seed categories should come first")
	}
	if categories[4].Name != "Imported" {
		t.Error("imported categories should follow the seeds")
	}
}

func TestImportMerge(t *testing.T) {
	s := newTestStore(t)
	existing, _ := s.CreateTask(store.TaskInput{Title: "Existing"})

	data := []byte(`{
		"tasks": [{"id": "imp-1", "title": "Imported"}],
		"categories": [
			{"id": "c1", "name": "Work", "color": "#111111"},
			{"id": "c2", "name": "work", "color": "#222222"},
			{"id": "c3", "name": "Brand new", "color": "#333333"}
		]
	}`)
	n, err := Import(s, data, Merge)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 1 {
		t.Errorf("imported count: got %d, want 1", n)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != existing.ID {
		t.Error("existing tasks keep priority on top")
	}
	if tasks[1].ID != "imp-1" {
		t.Error("imported tasks append after existing ones")
	}

	// Merge compares names exact-case: "Work" collides with the seed,
	// "work" does not
	names := map[string]bool{}
	for _, c := range s.Categories() {
		names[c.ID] = true
	}
	if names["c1"] {
		t.Error("exact-name collision should be skipped")
	}
	if !names["c2"] || !names["c3"] {
		t.Error("non-colliding categories should be appended")
	}
}

func TestImportInvalidFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{not json`},
		{"missing tasks", `{"categories": []}`},
		{"tasks not an array", `{"tasks": "not-an-array"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			kept, _ := s.CreateTask(store.TaskInput{Title: "Keep me"})

			_, err := Import(s, []byte(tt.data), Replace)
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("got %v, want ErrInvalidFormat", err)
			}

			// Prior state untouched
			if len(s.Tasks()) != 1 || s.Tasks()[0].ID != kept.ID {
				t.Error("failed import must not mutate tasks")
			}
			if len(s.Categories()) != 4 {
				t.Error("failed import must not mutate categories")
			}
		})
	}
}

func TestWriteBackup(t *testing.T) {
	s := newTestStore(t)
	s.CreateTask(store.TaskInput{Title: "Buy milk"})

	dir := t.TempDir()
	path, err := WriteBackup(s, dir)
	if err != nil {
		t.Fatalf("WriteBackup: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "todo-backup-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected backup filename %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}

	dst := newTestStore(t)
	if _, err := Import(dst, data, Replace); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if len(dst.Tasks()) != 1 {
		t.Error("backup file should round-trip")
	}
}

func TestImportFileMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := ImportFile(s, filepath.Join(t.TempDir(), "absent.json"), Merge); err == nil {
		t.Error("expected an error for a missing file")
	}
}
