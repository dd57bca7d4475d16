package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// Light is the default color theme
var Light = Theme{
	Name: "light",

	Background:    lipgloss.Color("#ffffff"),
	Foreground:    lipgloss.Color("#1f2937"),
	ForegroundDim: lipgloss.Color("#6b7280"),

	Primary:   lipgloss.Color("#3b82f6"),
	Secondary: lipgloss.Color("#8b5cf6"),

	Success: lipgloss.Color("#10b981"),
	Warning: lipgloss.Color("#f59e0b"),
	Error:   lipgloss.Color("#ef4444"),

	Border:      lipgloss.Color("#d1d5db"),
	BorderFocus: lipgloss.Color("#3b82f6"),
	Selection:   lipgloss.Color("#dbeafe"),
}

// Dark mirrors the light palette on a dark background
var Dark = Theme{
	Name: "dark",

	Background:    lipgloss.Color("#111827"),
	Foreground:    lipgloss.Color("#f9fafb"),
	ForegroundDim: lipgloss.Color("#9ca3af"),

	Primary:   lipgloss.Color("#60a5fa"),
	Secondary: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#34d399"),
	Warning: lipgloss.Color("#fbbf24"),
	Error:   lipgloss.Color("#f87171"),

	Border:      lipgloss.Color("#374151"),
	BorderFocus: lipgloss.Color("#60a5fa"),
	Selection:   lipgloss.Color("#1e3a8a"),
}

// Current holds the active theme
var Current = Light

// SetTheme switches the active theme by name
func SetTheme(name string) {
	if name == "dark" {
		Current = Dark
	} else {
		Current = Light
	}
}

// MaxWidth is the maximum content width for the app
const MaxWidth = 100

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Sidebar
	Sidebar      lipgloss.Style
	NavItem      lipgloss.Style
	NavSelected  lipgloss.Style
	NavActive    lipgloss.Style
	SidebarCount lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Task item pieces
	TaskDone     lipgloss.Style
	TaskOverdue  lipgloss.Style
	TaskDueToday lipgloss.Style
	TaskDue      lipgloss.Style
	Tag          lipgloss.Style

	// Priority markers
	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	// Status toast
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Sidebar: lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		NavItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		NavSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Padding(0, 1).
			Bold(true),

		SidebarCount: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		TaskDueToday: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		TaskDue: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Tag: lipgloss.NewStyle().
			Foreground(t.Secondary),

		PriorityHigh: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		PriorityMedium: lipgloss.NewStyle().
			Foreground(t.Warning),

		PriorityLow: lipgloss.NewStyle().
			Foreground(t.Success),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),
	}
}
