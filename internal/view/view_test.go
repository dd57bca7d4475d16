package view

import (
	"testing"
	"time"

	"github.com/kpeters/atd/internal/models"
)

// Fixed clock for every test: Friday 2024-01-05, mid-afternoon
var now = time.Date(2024, 1, 5, 15, 0, 0, 0, time.Local)

func task(title string, mut ...func(*models.Task)) *models.Task {
	t := &models.Task{
		ID:       title,
		Title:    title,
		Priority: models.PriorityMedium,
		Tags:     []string{},
	}
	for _, m := range mut {
		m(t)
	}
	return t
}

func due(d string) func(*models.Task)      { return func(t *models.Task) { t.DueDate = d } }
func done() func(*models.Task)             { return func(t *models.Task) { t.Completed = true } }
func prio(p models.Priority) func(*models.Task) {
	return func(t *models.Task) { t.Priority = p }
}
func inCat(id string) func(*models.Task) {
	return func(t *models.Task) { t.Category = &id }
}
func createdAt(ts time.Time) func(*models.Task) {
	return func(t *models.Task) { t.CreatedAt = ts }
}

func titles(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func assertOrder(t *testing.T, got []*models.Task, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("got %v, want %v", titles(got), want)
		}
	}
}

func TestViewToday(t *testing.T) {
	tasks := []*models.Task{
		task("today", due("2024-01-05")),
		task("tomorrow", due("2024-01-06")),
		task("undated"),
	}

	got := Apply(tasks, Query{View: ViewToday}, now)
	assertOrder(t, got, "today")
}

func TestViewUpcoming(t *testing.T) {
	tasks := []*models.Task{
		task("tomorrow", due("2024-01-06")),
		task("done tomorrow", due("2024-01-06"), done()),
		// Due today evaluates as midnight, already behind the clock
		task("today", due("2024-01-05")),
		task("yesterday", due("2024-01-04")),
		task("undated"),
	}

	got := Apply(tasks, Query{View: ViewUpcoming}, now)
	assertOrder(t, got, "tomorrow")
}

func TestViewCompleted(t *testing.T) {
	tasks := []*models.Task{
		task("open"),
		task("closed", done()),
	}

	got := Apply(tasks, Query{View: ViewCompleted}, now)
	assertOrder(t, got, "closed")
}

func TestViewCategory(t *testing.T) {
	tasks := []*models.Task{
		task("work task", inCat("work")),
		task("health task", inCat("health")),
		task("loose task"),
	}

	work := "work"
	got := Apply(tasks, Query{View: ViewCategory, Category: &work}, now)
	assertOrder(t, got, "work task")

	// nil category filter matches uncategorized tasks
	got = Apply(tasks, Query{View: ViewCategory}, now)
	assertOrder(t, got, "loose task")
}

func TestPriorityFilter(t *testing.T) {
	tasks := []*models.Task{
		task("high", prio(models.PriorityHigh)),
		task("low", prio(models.PriorityLow)),
	}

	got := Apply(tasks, Query{View: ViewAll, Priority: models.PriorityHigh}, now)
	assertOrder(t, got, "high")
}

func TestSearchFilter(t *testing.T) {
	tasks := []*models.Task{
		task("Buy milk"),
		task("Walk dog"),
		task("Errands", func(t *models.Task) { t.Description = "milk and eggs" }),
		task("Tagged", func(t *models.Task) { t.Tags = []string{"Milkshake"} }),
	}

	got := Apply(tasks, Query{View: ViewAll, Search: "milk"}, now)
	assertOrder(t, got, "Buy milk", "Errands", "Tagged")
}

func TestSortPriority(t *testing.T) {
	tasks := []*models.Task{
		task("low", prio(models.PriorityLow)),
		task("high", prio(models.PriorityHigh)),
		task("medium", prio(models.PriorityMedium)),
	}

	got := Apply(tasks, Query{View: ViewAll, SortBy: SortPriority}, now)
	assertOrder(t, got, "high", "medium", "low")
}

func TestSortDueDate(t *testing.T) {
	tasks := []*models.Task{
		task("none"),
		task("later", due("2024-01-05")),
		task("sooner", due("2024-01-01")),
	}

	got := Apply(tasks, Query{View: ViewAll, SortBy: SortDueDate}, now)
	assertOrder(t, got, "sooner", "later", "none")
}

func TestSortAlphabetical(t *testing.T) {
	tasks := []*models.Task{
		task("banana"),
		task("Apple"),
		task("cherry"),
	}

	got := Apply(tasks, Query{View: ViewAll, SortBy: SortAlphabetical}, now)
	assertOrder(t, got, "Apple", "banana", "cherry")
}

func TestSortCreated(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	tasks := []*models.Task{
		task("oldest", createdAt(base)),
		task("newest", createdAt(base.Add(2*time.Hour))),
		task("middle", createdAt(base.Add(time.Hour))),
	}

	got := Apply(tasks, Query{View: ViewAll, SortBy: SortCreated}, now)
	assertOrder(t, got, "newest", "middle", "oldest")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := []*models.Task{
		task("b", createdAt(now.Add(-time.Hour))),
		task("a", createdAt(now)),
	}

	Apply(tasks, Query{View: ViewAll, SortBy: SortAlphabetical}, now)
	if tasks[0].Title != "b" {
		t.Error("input slice order must not change")
	}

	// Same inputs, same output
	first := Apply(tasks, Query{View: ViewAll, SortBy: SortCreated}, now)
	second := Apply(tasks, Query{View: ViewAll, SortBy: SortCreated}, now)
	assertOrder(t, first, "a", "b")
	assertOrder(t, second, "a", "b")
}

func TestEmptyResult(t *testing.T) {
	got := Apply(nil, Query{View: ViewAll}, now)
	if len(got) != 0 {
		t.Errorf("got %d tasks, want 0", len(got))
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		name string
		task *models.Task
		want DueBucket
	}{
		{"no due date", task("x"), DueNone},
		{"overdue", task("x", due("2024-01-04")), DueOverdue},
		{"today", task("x", due("2024-01-05")), DueToday},
		{"tomorrow", task("x", due("2024-01-06")), DueTomorrow},
		{"later", task("x", due("2024-02-01")), DueLater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bucket(tt.task, now); got != tt.want {
				t.Errorf("Bucket: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueLabel(t *testing.T) {
	if got := DueLabel(task("x", due("2024-01-05")), now); got != "Today" {
		t.Errorf("got %q, want Today", got)
	}
	if got := DueLabel(task("x", due("2024-02-01")), now); got != "Feb 1, 2024" {
		t.Errorf("got %q, want Feb 1, 2024", got)
	}
	withTime := task("x", due("2024-01-06"))
	withTime.DueTime = "09:30"
	if got := DueLabel(withTime, now); got != "Tomorrow at 09:30" {
		t.Errorf("got %q, want Tomorrow at 09:30", got)
	}
	if got := DueLabel(task("x"), now); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
