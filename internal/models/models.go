package models

import (
	"strings"
	"time"
)

// Priority is a task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the numeric rank used for priority sorting (higher is more urgent)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Valid reports whether p is one of the known priority levels
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// OrDefault returns p, or medium when p is empty or unknown
func (p Priority) OrDefault() Priority {
	if p.Valid() {
		return p
	}
	return PriorityMedium
}

// DueDateLayout is the calendar-date format used for task due dates
const DueDateLayout = "2006-01-02"

// Task represents a single task
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    *string   `json:"category"` // nil if uncategorized
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"dueDate,omitempty"` // date-only, DueDateLayout
	DueTime     string    `json:"dueTime,omitempty"` // display only
	Tags        []string  `json:"tags"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Due returns the due date at local midnight, or false if the task has no
// parseable due date.
func (t *Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DueDateLayout, t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DueOn reports whether the task is due on the calendar day of ref
func (t *Task) DueOn(ref time.Time) bool {
	d, ok := t.Due()
	if !ok {
		return false
	}
	y1, m1, d1 := d.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Upcoming reports whether the task counts toward the upcoming view at now.
// The due date evaluates as local midnight, so a task due today stops being
// upcoming as soon as any part of the day has elapsed.
func (t *Task) Upcoming(now time.Time) bool {
	d, ok := t.Due()
	return ok && d.After(now) && !t.Completed
}

// InCategory reports whether the task's category reference equals id,
// where a nil id matches uncategorized tasks.
func (t *Task) InCategory(id *string) bool {
	if id == nil || t.Category == nil {
		return id == nil && t.Category == nil
	}
	return *t.Category == *id
}

// Category represents a named, colored bucket a task may belong to
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SplitTags parses a comma-separated tag list, trimming whitespace and
// dropping empty entries while preserving order.
func SplitTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags renders a tag list back to comma-separated form for editing
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
