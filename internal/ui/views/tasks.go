package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/kpeters/atd/internal/codec"
	"github.com/kpeters/atd/internal/models"
	"github.com/kpeters/atd/internal/store"
	"github.com/kpeters/atd/internal/ui/keys"
	"github.com/kpeters/atd/internal/ui/styles"
	"github.com/kpeters/atd/internal/view"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSidebar FocusArea = iota
	FocusSearchInput
	FocusTaskList
)

// deleteKind distinguishes what a pending delete confirmation targets
type deleteKind int

const (
	deleteTask deleteKind = iota
	deleteCategory
)

// Named views shown at the top of the sidebar, before the categories
var navViews = []view.View{view.ViewAll, view.ViewToday, view.ViewUpcoming, view.ViewCompleted}

var navLabels = map[view.View]string{
	view.ViewAll:       "All Tasks",
	view.ViewToday:     "Today",
	view.ViewUpcoming:  "Upcoming",
	view.ViewCompleted: "Completed",
}

var priorityFilters = []models.Priority{"", models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

var sortModes = []view.SortBy{view.SortCreated, view.SortDueDate, view.SortPriority, view.SortAlphabetical}

// TaskListView is the main screen: sidebar, filters, and the task list
type TaskListView struct {
	store  *store.Store
	logger *log.Logger
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// View/filter/sort state fed to the view engine
	currentView     view.View
	currentCategory *string
	priorityFilter  models.Priority
	sortBy          view.SortBy
	searchInput     textinput.Model

	// Derived display state
	tasks  []*models.Task
	counts store.Counts

	// UI state
	focus         FocusArea
	sidebarCursor int
	cursor        int
	scrollY       int

	// Task form state (see forms.go)
	editing         bool
	editingID       string // empty while creating
	editFocusIdx    int
	editTitle       textinput.Model
	editDesc        textinput.Model
	editDueDate     textinput.Model
	editDueTime     textinput.Model
	editTags        textinput.Model
	editCategoryIdx int // 0 = no category, i+1 = categories[i]
	editPriorityIdx int

	// Category form state
	addingCategory bool
	catFocusIdx    int
	catName        textinput.Model
	catColorIdx    int

	// Delete confirmation
	confirmingDelete bool
	deleteTarget     deleteKind
	deleteTargetID   string
	deleteTargetName string

	// Status toast
	status      string
	statusError bool
	statusSeq   int

	// Help popup
	showHelpPopup bool
}

// NewTaskListView creates the main view
func NewTaskListView(st *store.Store, logger *log.Logger, startView view.View, startSort view.SortBy) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	v := &TaskListView{
		store:       st,
		logger:      logger,
		styles:      styles.NewStyles(),
		keys:        keys.Default(),
		currentView: startView,
		sortBy:      startSort,
		searchInput: search,
		focus:       FocusTaskList,
	}
	v.initForms()
	v.refresh()
	return v
}

// ReloadStyles rebuilds styles after a theme change
func (v *TaskListView) ReloadStyles() {
	v.styles = styles.NewStyles()
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// refresh recomputes the display list and sidebar counts from store state
func (v *TaskListView) refresh() {
	now := time.Now()
	v.counts = v.store.Counts(now)
	v.tasks = view.Apply(v.store.Tasks(), view.Query{
		View:     v.currentView,
		Category: v.currentCategory,
		Priority: v.priorityFilter,
		Search:   strings.TrimSpace(v.searchInput.Value()),
		SortBy:   v.sortBy,
	}, now)
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
}

type statusExpiredMsg struct{ seq int }

// setStatus shows an ephemeral toast at the bottom of the screen
func (v *TaskListView) setStatus(msg string, isError bool) tea.Cmd {
	v.status = msg
	v.statusError = isError
	v.statusSeq++
	seq := v.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case statusExpiredMsg:
		// Only clear if no newer toast replaced this one
		if msg.seq == v.statusSeq {
			v.status = ""
		}
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateTaskForm(msg)
		}
		if v.addingCategory {
			return v.updateCategoryForm(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While typing in the search box, don't process hotkeys
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.searchInput.Blur()
			v.searchInput.Reset()
			v.focus = FocusTaskList
			v.refresh()
			return v, nil
		case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Tab):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.refresh()
			return v, cmd
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Tab):
		v.cycleFocus()
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Up):
		v.moveCursor(-1)
		return v, nil

	case key.Matches(msg, v.keys.Down):
		v.moveCursor(1)
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focus == FocusSidebar {
			v.selectSidebarItem()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if v.focus == FocusTaskList && len(v.tasks) > 0 {
			v.startEditTask(v.tasks[v.cursor])
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if v.focus == FocusTaskList && len(v.tasks) > 0 {
			return v, v.toggleTask(v.tasks[v.cursor])
		}
		return v, nil

	case key.Matches(msg, v.keys.Duplicate):
		if v.focus == FocusTaskList && len(v.tasks) > 0 {
			return v, v.duplicateTask(v.tasks[v.cursor])
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		return v.startDelete()

	case key.Matches(msg, v.keys.Category):
		v.startNewCategory()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Priority):
		v.cyclePriorityFilter()
		return v, nil

	case key.Matches(msg, v.keys.Sort):
		v.cycleSort()
		return v, nil

	case key.Matches(msg, v.keys.Export):
		return v, v.exportBackup()

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) cycleFocus() {
	v.searchInput.Blur()
	switch v.focus {
	case FocusSidebar:
		v.focus = FocusTaskList
	case FocusTaskList:
		v.focus = FocusSidebar
	default:
		v.focus = FocusTaskList
	}
}

func (v *TaskListView) moveCursor(dir int) {
	switch v.focus {
	case FocusSidebar:
		items := len(navViews) + len(v.store.Categories())
		v.sidebarCursor = clamp(v.sidebarCursor+dir, 0, items-1)
	case FocusTaskList:
		if len(v.tasks) > 0 {
			v.cursor = clamp(v.cursor+dir, 0, len(v.tasks)-1)
			v.ensureVisible()
		}
	}
}

// selectSidebarItem switches to the view or category under the sidebar cursor
func (v *TaskListView) selectSidebarItem() {
	if v.sidebarCursor < len(navViews) {
		v.currentView = navViews[v.sidebarCursor]
		v.currentCategory = nil
	} else {
		categories := v.store.Categories()
		idx := v.sidebarCursor - len(navViews)
		if idx < len(categories) {
			id := categories[idx].ID
			v.currentView = view.ViewCategory
			v.currentCategory = &id
		}
	}
	v.cursor = 0
	v.scrollY = 0
	v.refresh()
}

func (v *TaskListView) cyclePriorityFilter() {
	for i, p := range priorityFilters {
		if p == v.priorityFilter {
			v.priorityFilter = priorityFilters[(i+1)%len(priorityFilters)]
			break
		}
	}
	v.cursor = 0
	v.scrollY = 0
	v.refresh()
}

func (v *TaskListView) cycleSort() {
	for i, s := range sortModes {
		if s == v.sortBy {
			v.sortBy = sortModes[(i+1)%len(sortModes)]
			break
		}
	}
	v.refresh()
}

func (v *TaskListView) toggleTask(task *models.Task) tea.Cmd {
	toggled, err := v.store.ToggleComplete(task.ID)
	if err != nil {
		v.logger.Warn("toggle failed", "id", task.ID, "err", err)
		return v.setStatus("Could not update task", true)
	}
	v.refresh()
	if toggled.Completed {
		return v.setStatus(fmt.Sprintf("Task completed! %q", toggled.Title), false)
	}
	return v.setStatus(fmt.Sprintf("Task reopened %q", toggled.Title), false)
}

func (v *TaskListView) duplicateTask(task *models.Task) tea.Cmd {
	dup, err := v.store.DuplicateTask(task.ID)
	if err != nil {
		v.logger.Warn("duplicate failed", "id", task.ID, "err", err)
		return v.setStatus("Could not duplicate task", true)
	}
	v.refresh()
	return v.setStatus(fmt.Sprintf("Task duplicated: %q", dup.Title), false)
}

func (v *TaskListView) startDelete() (tea.Model, tea.Cmd) {
	switch v.focus {
	case FocusTaskList:
		if len(v.tasks) > 0 {
			v.confirmingDelete = true
			v.deleteTarget = deleteTask
			v.deleteTargetID = v.tasks[v.cursor].ID
			v.deleteTargetName = v.tasks[v.cursor].Title
		}
	case FocusSidebar:
		categories := v.store.Categories()
		idx := v.sidebarCursor - len(navViews)
		if idx >= 0 && idx < len(categories) {
			v.confirmingDelete = true
			v.deleteTarget = deleteCategory
			v.deleteTargetID = categories[idx].ID
			v.deleteTargetName = categories[idx].Name
		}
	}
	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		return v, v.performDelete()
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) performDelete() tea.Cmd {
	var err error
	if v.deleteTarget == deleteCategory {
		err = v.store.DeleteCategory(v.deleteTargetID)
		// Keep the sidebar cursor in range after removal
		items := len(navViews) + len(v.store.Categories())
		v.sidebarCursor = clamp(v.sidebarCursor, 0, items-1)
		// Drop the category filter if it pointed at the deleted category
		if v.currentCategory != nil && *v.currentCategory == v.deleteTargetID {
			v.currentView = view.ViewAll
			v.currentCategory = nil
		}
	} else {
		err = v.store.DeleteTask(v.deleteTargetID)
	}
	if err != nil {
		v.logger.Warn("delete failed", "id", v.deleteTargetID, "err", err)
		return v.setStatus("Could not delete", true)
	}
	v.refresh()
	return v.setStatus(fmt.Sprintf("Deleted %q", v.deleteTargetName), false)
}

func (v *TaskListView) exportBackup() tea.Cmd {
	path, err := codec.WriteBackup(v.store, "")
	if err != nil {
		v.logger.Error("export failed", "err", err)
		return v.setStatus("Export failed", true)
	}
	v.logger.Info("exported backup", "path", path)
	return v.setStatus("Exported to "+path, false)
}

func (v *TaskListView) ensureVisible() {
	// Each task item is 2 lines
	availableHeight := v.height - 10
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := max(availableHeight/2, 1)

	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderTaskForm()
	}
	if v.addingCategory {
		return v.renderCategoryForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderSidebar(),
		v.renderTaskList(),
	))
	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	title := s.Title.Render("atd")

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(styles.ContentWidth(v.width)-40, 16, 40)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	filterLabel := "all priorities"
	if v.priorityFilter != "" {
		filterLabel = string(v.priorityFilter) + " priority"
	}
	filters := s.TitleMuted.Render(fmt.Sprintf("%s • sort: %s", filterLabel, v.sortBy))

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", searchBox, "  ", filters)
}

func (v *TaskListView) renderSidebar() string {
	s := v.styles
	categories := v.store.Categories()

	var items []string
	for i, nav := range navViews {
		label := fmt.Sprintf("%-10s %s", navLabels[nav], s.SidebarCount.Render(fmt.Sprintf("%d", v.navCount(nav))))
		items = append(items, v.navStyle(i, nav == v.currentView && v.currentCategory == nil).Render(label))
	}
	items = append(items, "")

	for i, c := range categories {
		active := v.currentCategory != nil && *v.currentCategory == c.ID
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		items = append(items, v.navStyle(len(navViews)+i, active).Render(dot+" "+c.Name))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return s.Sidebar.Render(content)
}

func (v *TaskListView) navStyle(idx int, active bool) lipgloss.Style {
	if v.focus == FocusSidebar && idx == v.sidebarCursor {
		return v.styles.NavSelected
	}
	if active {
		return v.styles.NavActive
	}
	return v.styles.NavItem
}

func (v *TaskListView) navCount(nav view.View) int {
	switch nav {
	case view.ViewToday:
		return v.counts.Today
	case view.ViewUpcoming:
		return v.counts.Upcoming
	case view.ViewCompleted:
		return v.counts.Completed
	}
	return v.counts.All
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks here. Press 'n' to create one.")
	}

	availableHeight := v.height - 10
	if availableHeight < 2 {
		availableHeight = 2
	}
	visibleItems := max(availableHeight/2, 1)

	var items []string
	endIdx := min(v.scrollY+visibleItems, len(v.tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(v.tasks[i], i == v.cursor && v.focus == FocusTaskList))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(task *models.Task, selected bool) string {
	s := v.styles
	now := time.Now()
	width := max(styles.ContentWidth(v.width)-30, 24)

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	titleStyle := lipgloss.NewStyle()
	if task.Completed {
		titleStyle = s.TaskDone
	}

	var prioStyle lipgloss.Style
	switch task.Priority {
	case models.PriorityHigh:
		prioStyle = s.PriorityHigh
	case models.PriorityLow:
		prioStyle = s.PriorityLow
	default:
		prioStyle = s.PriorityMedium
	}
	titleLine := checkbox + " " + prioStyle.Render("!") + " " + titleStyle.Render(task.Title)

	// Meta line: category, due date, tags
	var meta []string
	if task.Category != nil {
		if c, ok := v.store.Category(*task.Category); ok {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
			meta = append(meta, dot+" "+c.Name)
		}
	}
	if label := view.DueLabel(task, now); label != "" {
		var dueStyle lipgloss.Style
		switch view.Bucket(task, now) {
		case view.DueOverdue:
			dueStyle = s.TaskOverdue
		case view.DueToday:
			dueStyle = s.TaskDueToday
		default:
			dueStyle = s.TaskDue
		}
		meta = append(meta, dueStyle.Render(label))
	}
	for _, tag := range task.Tags {
		meta = append(meta, s.Tag.Render("#"+tag))
	}
	metaLine := s.TitleMuted.Render("no details")
	if len(meta) > 0 {
		metaLine = strings.Join(meta, "  ")
	}

	itemStyle := s.ListItem
	if selected {
		itemStyle = s.ListSelected
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		itemStyle.Width(width).Render(titleLine),
		itemStyle.Width(width).Render("    "+metaLine),
	)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	kind := "task"
	note := ""
	if v.deleteTarget == deleteCategory {
		kind = "category"
		note = "\n" + s.TitleMuted.Render("Tasks in this category become uncategorized.")
	}

	box := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(fmt.Sprintf("Delete %s?", kind)),
		"",
		fmt.Sprintf("%q", v.deleteTargetName)+note,
		"",
		s.TitleMuted.Render("y: delete • n/esc: cancel"),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
		s.Input.Render(box))
}

func (v *TaskListView) renderStatus() string {
	if v.status == "" {
		return ""
	}
	if v.statusError {
		return v.styles.StatusError.Render(v.status)
	}
	return v.styles.Status.Render(v.status)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s done • %s dup • %s del • %s search • %s filter • %s sort • %s category • %s export • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("spc"),
			v.styles.HelpKey.Render("y"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("p"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("c"),
			v.styles.HelpKey.Render("^s"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles

	helpItems := []string{
		s.HelpKey.Render("tab") + "    switch sidebar/list focus",
		s.HelpKey.Render("↵") + "      select view or category",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("space") + "  toggle complete",
		s.HelpKey.Render("y") + "      duplicate task",
		s.HelpKey.Render("d") + "      delete task or category",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("p") + "      cycle priority filter",
		s.HelpKey.Render("s") + "      cycle sort mode",
		s.HelpKey.Render("c") + "      new category",
		s.HelpKey.Render("ctrl+s") + " export backup",
		s.HelpKey.Render("ctrl+t") + " toggle theme",
		s.HelpKey.Render("q") + "      quit",
	}

	box := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, helpItems...),
		"",
		s.TitleMuted.Render("press any key to close"),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center,
		s.Input.Render(box))
}
