package views

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kpeters/atd/internal/models"
	"github.com/kpeters/atd/internal/store"
)

// Task form field indexes
const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDueDate
	fieldDueTime
	fieldTags
	fieldSave
	fieldCount
)

// Category form field indexes
const (
	catFieldName = iota
	catFieldColor
	catFieldSave
	catFieldCount
)

var priorityChoices = []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}

// Preset swatches offered when creating a category
var colorPresets = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899"}

func (v *TaskListView) initForms() {
	v.editTitle = textinput.New()
	v.editTitle.Placeholder = "Task title"
	v.editTitle.CharLimit = 200

	v.editDesc = textinput.New()
	v.editDesc.Placeholder = "Description (optional)"
	v.editDesc.CharLimit = 500

	v.editDueDate = textinput.New()
	v.editDueDate.Placeholder = "YYYY-MM-DD"
	v.editDueDate.CharLimit = 10

	v.editDueTime = textinput.New()
	v.editDueTime.Placeholder = "HH:MM"
	v.editDueTime.CharLimit = 5

	v.editTags = textinput.New()
	v.editTags.Placeholder = "tag, another tag"
	v.editTags.CharLimit = 200

	v.catName = textinput.New()
	v.catName.Placeholder = "Category name"
	v.catName.CharLimit = 50
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingID = ""
	v.editFocusIdx = fieldTitle

	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDueDate.Reset()
	v.editDueTime.Reset()
	v.editTags.Reset()
	v.editPriorityIdx = 1 // medium

	// Preselect the category when a category view is active
	v.editCategoryIdx = 0
	if v.currentCategory != nil {
		for i, c := range v.store.Categories() {
			if c.ID == *v.currentCategory {
				v.editCategoryIdx = i + 1
				break
			}
		}
	}

	v.focusEditField()
}

func (v *TaskListView) startEditTask(task *models.Task) {
	v.editing = true
	v.editingID = task.ID
	v.editFocusIdx = fieldTitle

	v.editTitle.SetValue(task.Title)
	v.editDesc.SetValue(task.Description)
	v.editDueDate.SetValue(task.DueDate)
	v.editDueTime.SetValue(task.DueTime)
	v.editTags.SetValue(models.JoinTags(task.Tags))

	v.editPriorityIdx = 1
	for i, p := range priorityChoices {
		if p == task.Priority {
			v.editPriorityIdx = i
			break
		}
	}

	v.editCategoryIdx = 0
	if task.Category != nil {
		for i, c := range v.store.Categories() {
			if c.ID == *task.Category {
				v.editCategoryIdx = i + 1
				break
			}
		}
	}

	v.focusEditField()
}

// focusEditField focuses the text input matching editFocusIdx and blurs the rest
func (v *TaskListView) focusEditField() {
	inputs := []*textinput.Model{&v.editTitle, &v.editDesc, &v.editDueDate, &v.editDueTime, &v.editTags}
	focused := v.editInput()
	for _, in := range inputs {
		if in == focused {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// editInput returns the text input for the focused field, or nil for
// cycler fields and the save button
func (v *TaskListView) editInput() *textinput.Model {
	switch v.editFocusIdx {
	case fieldTitle:
		return &v.editTitle
	case fieldDescription:
		return &v.editDesc
	case fieldDueDate:
		return &v.editDueDate
	case fieldDueTime:
		return &v.editDueTime
	case fieldTags:
		return &v.editTags
	}
	return nil
}

func (v *TaskListView) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "tab", msg.String() == "shift+tab":
		dir := 1
		if msg.String() == "shift+tab" {
			dir = -1
		}
		v.editFocusIdx = (v.editFocusIdx + dir + fieldCount) % fieldCount
		v.focusEditField()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == fieldSave {
			return v, v.submitTask()
		}
		v.editFocusIdx = (v.editFocusIdx + 1) % fieldCount
		v.focusEditField()
		return v, textinput.Blink
	}

	// Cycler fields react to left/right and space
	switch v.editFocusIdx {
	case fieldCategory:
		n := len(v.store.Categories()) + 1
		switch msg.String() {
		case "left", "h":
			v.editCategoryIdx = (v.editCategoryIdx - 1 + n) % n
		case "right", "l", " ":
			v.editCategoryIdx = (v.editCategoryIdx + 1) % n
		}
		return v, nil
	case fieldPriority:
		n := len(priorityChoices)
		switch msg.String() {
		case "left", "h":
			v.editPriorityIdx = (v.editPriorityIdx - 1 + n) % n
		case "right", "l", " ":
			v.editPriorityIdx = (v.editPriorityIdx + 1) % n
		}
		return v, nil
	case fieldSave:
		return v, nil
	}

	var cmd tea.Cmd
	in := v.editInput()
	*in, cmd = in.Update(msg)
	return v, cmd
}

func (v *TaskListView) submitTask() tea.Cmd {
	input := store.TaskInput{
		Title:       v.editTitle.Value(),
		Description: v.editDesc.Value(),
		Priority:    priorityChoices[v.editPriorityIdx],
		DueDate:     v.editDueDate.Value(),
		DueTime:     v.editDueTime.Value(),
		Tags:        v.editTags.Value(),
	}
	if v.editCategoryIdx > 0 {
		categories := v.store.Categories()
		if v.editCategoryIdx-1 < len(categories) {
			input.Category = categories[v.editCategoryIdx-1].ID
		}
	}

	var (
		task *models.Task
		err  error
	)
	if v.editingID == "" {
		task, err = v.store.CreateTask(input)
	} else {
		task, err = v.store.UpdateTask(v.editingID, input)
	}
	if err != nil {
		if errors.Is(err, store.ErrEmptyTitle) {
			return v.setStatus("Title cannot be empty", true)
		}
		v.logger.Warn("save task failed", "err", err)
		return v.setStatus("Could not save task", true)
	}

	v.editing = false
	v.refresh()
	if v.editingID == "" {
		return v.setStatus("Task created: "+task.Title, false)
	}
	return v.setStatus("Task updated: "+task.Title, false)
}

func (v *TaskListView) renderTaskForm() string {
	s := v.styles

	heading := "New Task"
	if v.editingID != "" {
		heading = "Edit Task"
	}

	categoryLabel := "None"
	if v.editCategoryIdx > 0 {
		categories := v.store.Categories()
		if v.editCategoryIdx-1 < len(categories) {
			c := categories[v.editCategoryIdx-1]
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
			categoryLabel = dot + " " + c.Name
		}
	}

	rows := []string{
		s.Title.Render(heading),
		"",
		v.formRow("Title", v.inputBox(v.editTitle, fieldTitle)),
		v.formRow("Details", v.inputBox(v.editDesc, fieldDescription)),
		v.formRow("Category", v.cyclerBox(categoryLabel, fieldCategory)),
		v.formRow("Priority", v.cyclerBox(string(priorityChoices[v.editPriorityIdx]), fieldPriority)),
		v.formRow("Due date", v.inputBox(v.editDueDate, fieldDueDate)),
		v.formRow("Due time", v.inputBox(v.editDueTime, fieldDueTime)),
		v.formRow("Tags", v.inputBox(v.editTags, fieldTags)),
		"",
		v.saveButton(v.editFocusIdx == fieldSave),
		"",
		v.renderStatus(),
		s.TitleMuted.Render("tab: next field • ←/→: change choice • esc: cancel"),
	}

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
}

func (v *TaskListView) formRow(label, field string) string {
	labelStyle := v.styles.TitleMuted.Width(10)
	return lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render(label), " ", field)
}

func (v *TaskListView) inputBox(in textinput.Model, idx int) string {
	style := v.styles.Input
	if v.editFocusIdx == idx {
		style = v.styles.InputFocused
	}
	return style.Width(40).Render(in.View())
}

func (v *TaskListView) cyclerBox(label string, idx int) string {
	style := v.styles.Input
	if v.editFocusIdx == idx {
		style = v.styles.InputFocused
	}
	return style.Width(40).Render("◂ " + label + " ▸")
}

func (v *TaskListView) saveButton(focused bool) string {
	if focused {
		return v.styles.ButtonFocused.Render("Save")
	}
	return v.styles.Button.Render("Save")
}

func (v *TaskListView) startNewCategory() {
	v.addingCategory = true
	v.catFocusIdx = catFieldName
	v.catColorIdx = 0
	v.catName.Reset()
	v.catName.Focus()
}

func (v *TaskListView) updateCategoryForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.addingCategory = false
		return v, nil

	case msg.String() == "tab", msg.String() == "shift+tab":
		dir := 1
		if msg.String() == "shift+tab" {
			dir = -1
		}
		v.catFocusIdx = (v.catFocusIdx + dir + catFieldCount) % catFieldCount
		if v.catFocusIdx == catFieldName {
			v.catName.Focus()
		} else {
			v.catName.Blur()
		}
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Enter):
		if v.catFocusIdx == catFieldSave {
			return v, v.submitCategory()
		}
		v.catFocusIdx = (v.catFocusIdx + 1) % catFieldCount
		if v.catFocusIdx == catFieldName {
			v.catName.Focus()
		} else {
			v.catName.Blur()
		}
		return v, textinput.Blink
	}

	if v.catFocusIdx == catFieldColor {
		n := len(colorPresets)
		switch msg.String() {
		case "left", "h":
			v.catColorIdx = (v.catColorIdx - 1 + n) % n
		case "right", "l", " ":
			v.catColorIdx = (v.catColorIdx + 1) % n
		}
		return v, nil
	}
	if v.catFocusIdx != catFieldName {
		return v, nil
	}

	var cmd tea.Cmd
	v.catName, cmd = v.catName.Update(msg)
	return v, cmd
}

func (v *TaskListView) submitCategory() tea.Cmd {
	created, err := v.store.CreateCategory(store.CategoryInput{
		Name:  v.catName.Value(),
		Color: colorPresets[v.catColorIdx],
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyName):
			return v.setStatus("Name cannot be empty", true)
		case errors.Is(err, store.ErrDuplicateName):
			return v.setStatus("A category with that name already exists", true)
		}
		v.logger.Warn("create category failed", "err", err)
		return v.setStatus("Could not create category", true)
	}

	v.addingCategory = false
	v.refresh()
	return v.setStatus("Category created: "+created.Name, false)
}

func (v *TaskListView) renderCategoryForm() string {
	s := v.styles

	var swatches []string
	for i, color := range colorPresets {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
		if i == v.catColorIdx {
			swatches = append(swatches, "["+dot+"]")
		} else {
			swatches = append(swatches, " "+dot+" ")
		}
	}
	colorStyle := s.Input
	if v.catFocusIdx == catFieldColor {
		colorStyle = s.InputFocused
	}
	colorRow := colorStyle.Width(40).Render(lipgloss.JoinHorizontal(lipgloss.Center, swatches...))

	nameStyle := s.Input
	if v.catFocusIdx == catFieldName {
		nameStyle = s.InputFocused
	}

	rows := []string{
		s.Title.Render("New Category"),
		"",
		v.formRow("Name", nameStyle.Width(40).Render(v.catName.View())),
		v.formRow("Color", colorRow),
		"",
		v.saveButton(v.catFocusIdx == catFieldSave),
		"",
		v.renderStatus(),
		s.TitleMuted.Render("tab: next field • ←/→: pick color • esc: cancel"),
	}

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
}
