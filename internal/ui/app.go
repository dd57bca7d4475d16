// Package ui implements the terminal interface.
package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/kpeters/atd/internal/store"
	"github.com/kpeters/atd/internal/ui/keys"
	"github.com/kpeters/atd/internal/ui/styles"
	"github.com/kpeters/atd/internal/ui/views"
	"github.com/kpeters/atd/internal/view"
)

// App is the root model. It owns global concerns, theme switching and
// window sizing, and delegates everything else to the task list view.
type App struct {
	store  *store.Store
	logger *log.Logger
	keys   keys.KeyMap
	view   *views.TaskListView
}

// New creates the application model
func New(st *store.Store, logger *log.Logger, startView view.View, startSort view.SortBy) *App {
	theme, err := st.Theme()
	if err != nil {
		logger.Warn("load theme failed", "err", err)
	}
	styles.SetTheme(theme)

	return &App{
		store:  st,
		logger: logger,
		keys:   keys.Default(),
		view:   views.NewTaskListView(st, logger, startView, startSort),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.view.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, a.keys.Theme) {
		a.toggleTheme()
		return a, nil
	}

	model, cmd := a.view.Update(msg)
	a.view = model.(*views.TaskListView)
	return a, cmd
}

// View renders the application
func (a *App) View() string {
	return a.view.View()
}

func (a *App) toggleTheme() {
	next := "dark"
	if styles.Current.Name == "dark" {
		next = "light"
	}
	styles.SetTheme(next)
	if err := a.store.SetTheme(next); err != nil {
		a.logger.Warn("persist theme failed", "err", err)
	}
	a.view.ReloadStyles()
}
