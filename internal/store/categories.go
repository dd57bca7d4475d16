package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kpeters/atd/internal/models"
)

// CategoryInput carries the user-editable fields of a category
type CategoryInput struct {
	Name  string
	Color string
}

// CreateCategory creates a new category and appends it to the sequence.
// Names must be unique case-insensitively.
func (s *Store) CreateCategory(in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return nil, ErrDuplicateName
		}
	}

	c := models.Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: in.Color,
	}
	s.categories = append(s.categories, c)

	if err := s.flush(); err != nil {
		return nil, err
	}

	s.logger.Debug("created category", "id", c.ID, "name", c.Name)
	return &c, nil
}

// DeleteCategory removes the category with the given id, first rewriting
// every task that references it to uncategorized.
func (s *Store) DeleteCategory(id string) error {
	idx := -1
	for i, c := range s.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	for _, t := range s.tasks {
		if t.Category != nil && *t.Category == id {
			t.Category = nil
		}
	}
	s.categories = append(s.categories[:idx], s.categories[idx+1:]...)

	if err := s.flush(); err != nil {
		return err
	}

	s.logger.Debug("deleted category", "id", id)
	return nil
}
