package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kpeters/atd/internal/models"
)

// TaskInput carries the user-editable fields of a task. Tags is the raw
// comma-separated form as typed.
type TaskInput struct {
	Title       string
	Description string
	Category    string // category id, empty for none
	Priority    models.Priority
	DueDate     string
	DueTime     string
	Tags        string
}

func (in TaskInput) category() *string {
	if in.Category == "" {
		return nil
	}
	c := in.Category
	return &c
}

// CreateTask creates a new task and inserts it at the front of the sequence
func (s *Store) CreateTask(in TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now()
	t := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    in.category(),
		Priority:    in.Priority.OrDefault(),
		DueDate:     in.DueDate,
		DueTime:     in.DueTime,
		Tags:        models.SplitTags(in.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.tasks = append([]*models.Task{t}, s.tasks...)
	if err := s.flush(); err != nil {
		return nil, err
	}

	s.logger.Debug("created task", "id", t.ID, "title", t.Title)
	return t, nil
}

// UpdateTask overwrites all mutable fields of the task with the given id
func (s *Store) UpdateTask(id string, in TaskInput) (*models.Task, error) {
	t, ok := s.Task(id)
	if !ok {
		return nil, ErrNotFound
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	t.Title = title
	t.Description = strings.TrimSpace(in.Description)
	t.Category = in.category()
	t.Priority = in.Priority.OrDefault()
	t.DueDate = in.DueDate
	t.DueTime = in.DueTime
	t.Tags = models.SplitTags(in.Tags)
	t.UpdatedAt = time.Now()

	if err := s.flush(); err != nil {
		return nil, err
	}

	s.logger.Debug("updated task", "id", t.ID, "title", t.Title)
	return t, nil
}

// DeleteTask removes the task with the given id
func (s *Store) DeleteTask(id string) error {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if err := s.flush(); err != nil {
				return err
			}
			s.logger.Debug("deleted task", "id", id, "title", t.Title)
			return nil
		}
	}
	return ErrNotFound
}

// ToggleComplete flips the completed flag of the task with the given id
func (s *Store) ToggleComplete(id string) (*models.Task, error) {
	t, ok := s.Task(id)
	if !ok {
		return nil, ErrNotFound
	}

	t.Completed = !t.Completed
	t.UpdatedAt = time.Now()

	if err := s.flush(); err != nil {
		return nil, err
	}

	s.logger.Debug("toggled task", "id", t.ID, "completed", t.Completed)
	return t, nil
}

// DuplicateTask clones the task with the given id. The copy gets a fresh id
// and timestamps, is never completed, carries a copy marker in its title, and
// is inserted at the front of the sequence.
func (s *Store) DuplicateTask(id string) (*models.Task, error) {
	src, ok := s.Task(id)
	if !ok {
		return nil, ErrNotFound
	}

	now := time.Now()
	dup := &models.Task{
		ID:          uuid.NewString(),
		Title:       src.Title + " (Copy)",
		Description: src.Description,
		Category:    src.Category,
		Priority:    src.Priority,
		DueDate:     src.DueDate,
		DueTime:     src.DueTime,
		Tags:        append([]string{}, src.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.tasks = append([]*models.Task{dup}, s.tasks...)
	if err := s.flush(); err != nil {
		return nil, err
	}

	s.logger.Debug("duplicated task", "id", src.ID, "copy", dup.ID)
	return dup, nil
}
