package view

import (
	"time"

	"github.com/kpeters/atd/internal/models"
)

// DueBucket classifies a task's due date relative to a clock reading
type DueBucket int

const (
	DueNone DueBucket = iota
	DueOverdue
	DueToday
	DueTomorrow
	DueLater
)

// Bucket returns the due bucket of t at now (date-only comparison)
func Bucket(t *models.Task, now time.Time) DueBucket {
	due, ok := t.Due()
	if !ok {
		return DueNone
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case due.Before(today):
		return DueOverdue
	case due.Equal(today):
		return DueToday
	case due.Equal(today.AddDate(0, 0, 1)):
		return DueTomorrow
	}
	return DueLater
}

// DueLabel renders the due date text shown on a task row, with the
// display-only due time appended when present. Returns "" for tasks
// without a due date.
func DueLabel(t *models.Task, now time.Time) string {
	var label string
	switch Bucket(t, now) {
	case DueNone:
		return ""
	case DueOverdue:
		label = "Overdue"
	case DueToday:
		label = "Today"
	case DueTomorrow:
		label = "Tomorrow"
	default:
		due, _ := t.Due()
		label = due.Format("Jan 2, 2006")
	}
	if t.DueTime != "" {
		label += " at " + t.DueTime
	}
	return label
}
