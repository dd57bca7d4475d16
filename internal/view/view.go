// Package view derives the display list from store state. Apply is pure:
// the same tasks, query, and clock reading always produce the same output,
// and the input slice is never modified.
package view

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kpeters/atd/internal/models"
)

// View selects a subset of tasks for display
type View string

const (
	ViewAll       View = "all"
	ViewToday     View = "today"
	ViewUpcoming  View = "upcoming"
	ViewCompleted View = "completed"
	ViewCategory  View = "category"
)

// SortBy selects the comparator applied after filtering
type SortBy string

const (
	SortCreated      SortBy = "created"
	SortDueDate      SortBy = "dueDate"
	SortPriority     SortBy = "priority"
	SortAlphabetical SortBy = "alphabetical"
)

// Query is the full view/filter/sort state
type Query struct {
	View     View
	Category *string         // only meaningful for ViewCategory; nil matches uncategorized
	Priority models.Priority // empty = no filter
	Search   string          // empty = no filter
	SortBy   SortBy
}

// Case-insensitive, locale-aware comparisons for alphabetical sort
var collator = collate.New(language.Und, collate.Loose)

// Apply filters and sorts tasks for display. Filters run in fixed order
// (view, priority, search) before the sort. The result shares task pointers
// with the input; an empty result is normal.
func Apply(tasks []*models.Task, q Query, now time.Time) []*models.Task {
	out := make([]*models.Task, 0, len(tasks))

	for _, t := range tasks {
		if !matchView(t, q, now) {
			continue
		}
		if q.Priority != "" && t.Priority != q.Priority {
			continue
		}
		if q.Search != "" && !matchSearch(t, q.Search) {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, q.SortBy)
	return out
}

func matchView(t *models.Task, q Query, now time.Time) bool {
	switch q.View {
	case ViewToday:
		return t.DueOn(now)
	case ViewUpcoming:
		return t.Upcoming(now)
	case ViewCompleted:
		return t.Completed
	case ViewCategory:
		return t.InCategory(q.Category)
	}
	return true
}

func matchSearch(t *models.Task, query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortTasks(tasks []*models.Task, by SortBy) {
	switch by {
	case SortDueDate:
		// Tasks without a due date sort last
		sort.SliceStable(tasks, func(i, j int) bool {
			di, iok := tasks[i].Due()
			dj, jok := tasks[j].Due()
			if !iok || !jok {
				return iok
			}
			return di.Before(dj)
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortAlphabetical:
		sort.SliceStable(tasks, func(i, j int) bool {
			return collator.CompareString(tasks[i].Title, tasks[j].Title) < 0
		})
	default: // SortCreated
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}
