// Package store holds the authoritative task and category collections and
// mediates every mutation. Each mutation ends with a full flush of both
// collections to the key-value layer, so the persisted state always trails
// the in-memory state by at most one write.
package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/kpeters/atd/internal/models"
	"github.com/kpeters/atd/internal/storage"
)

// Persistence keys
const (
	tasksKey      = "todo-tasks"
	categoriesKey = "todo-categories"
	themeKey      = "todo-theme"
)

// SeedCategories returns the built-in categories used when no category data
// has been persisted yet, and re-seeded on replace imports.
func SeedCategories() []models.Category {
	return []models.Category{
		{ID: "work", Name: "Work", Color: "#3b82f6"},
		{ID: "personal", Name: "Personal", Color: "#10b981"},
		{ID: "shopping", Name: "Shopping", Color: "#f59e0b"},
		{ID: "health", Name: "Health", Color: "#ef4444"},
	}
}

// Store owns the task and category collections
type Store struct {
	kv     storage.KV
	logger *log.Logger

	tasks      []*models.Task
	categories []models.Category
}

// New creates a store bound to kv and loads the persisted collections.
// A nil logger disables logging.
func New(kv storage.KV, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{kv: kv, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	raw, err := s.kv.Get(tasksKey)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.tasks); err != nil {
			return fmt.Errorf("parse tasks: %w", err)
		}
	}

	// Backfill ids and creation timestamps missing from older data
	for _, t := range s.tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now()
		}
	}

	raw, err = s.kv.Get(categoriesKey)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if raw == "" {
		s.categories = SeedCategories()
	} else if err := json.Unmarshal([]byte(raw), &s.categories); err != nil {
		return fmt.Errorf("parse categories: %w", err)
	}

	s.logger.Debug("loaded store", "tasks", len(s.tasks), "categories", len(s.categories))
	return nil
}

// flush writes both collections to the key-value layer
func (s *Store) flush() error {
	tasks, err := json.Marshal(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	categories, err := json.Marshal(s.categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := s.kv.Set(tasksKey, string(tasks)); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := s.kv.Set(categoriesKey, string(categories)); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	return nil
}

// Tasks returns the task sequence, most recently created first unless a
// mutation has reordered it. Callers must not modify the returned slice.
func (s *Store) Tasks() []*models.Task {
	tasks := make([]*models.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Task returns the task with the given id
func (s *Store) Task(id string) (*models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Categories returns the category sequence in append order
func (s *Store) Categories() []models.Category {
	categories := make([]models.Category, len(s.categories))
	copy(categories, s.categories)
	return categories
}

// Category returns the category with the given id
func (s *Store) Category(id string) (models.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// Counts holds the per-view task totals shown in the sidebar
type Counts struct {
	All       int
	Today     int
	Upcoming  int
	Completed int
}

// Counts computes the sidebar totals at the given instant
func (s *Store) Counts(now time.Time) Counts {
	c := Counts{All: len(s.tasks)}
	for _, t := range s.tasks {
		if t.DueOn(now) {
			c.Today++
		}
		if t.Upcoming(now) {
			c.Upcoming++
		}
		if t.Completed {
			c.Completed++
		}
	}
	return c
}

// Theme returns the persisted theme name, or "" if none has been saved
func (s *Store) Theme() (string, error) {
	return s.kv.Get(themeKey)
}

// SetTheme persists the theme name
func (s *Store) SetTheme(theme string) error {
	return s.kv.Set(themeKey, theme)
}

// Restore replaces both collections wholesale and flushes. It is the commit
// point for imports: callers validate before invoking so that a failed import
// never reaches this method.
func (s *Store) Restore(tasks []*models.Task, categories []models.Category) error {
	prevTasks, prevCategories := s.tasks, s.categories
	s.tasks, s.categories = tasks, categories
	if err := s.flush(); err != nil {
		s.tasks, s.categories = prevTasks, prevCategories
		return err
	}
	s.logger.Info("restored collections", "tasks", len(tasks), "categories", len(categories))
	return nil
}
