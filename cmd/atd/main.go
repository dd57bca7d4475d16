package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kpeters/atd/internal/codec"
	"github.com/kpeters/atd/internal/config"
	"github.com/kpeters/atd/internal/logging"
	"github.com/kpeters/atd/internal/storage"
	"github.com/kpeters/atd/internal/store"
	"github.com/kpeters/atd/internal/ui"
	"github.com/kpeters/atd/internal/view"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `atd - a todo manager for the terminal

Usage:
  atd                                 run the interactive UI
  atd export [path]                   write a backup file
  atd import [--replace|--merge] <f>  restore from a backup file
  atd --version                       print version information
`

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("atd %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}
	if len(os.Args) > 1 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		fmt.Print(usage)
		os.Exit(0)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	dataFile := cfg.DataFile
	if dataFile == "" {
		dataFile, err = storage.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data path: %v\n", err)
			os.Exit(1)
		}
	}
	db, err := storage.Open(dataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	st, err := store.New(db, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			runExport(st, os.Args[2:])
			return
		case "import":
			runImport(st, os.Args[2:])
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", os.Args[1], usage)
			os.Exit(1)
		}
	}

	// Config theme applies only until the store has a persisted choice
	if theme, err := st.Theme(); err == nil && theme == "" && cfg.Theme != "" {
		if err := st.SetTheme(cfg.Theme); err != nil {
			logger.Warn("persist theme failed", "err", err)
		}
	}

	app := ui.New(st, logger, view.View(cfg.DefaultView), view.SortBy(cfg.DefaultSort))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func runExport(st *store.Store, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	written, err := codec.WriteBackup(st, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d tasks to %s\n", len(st.Tasks()), written)
}

func runImport(st *store.Store, args []string) {
	policy := codec.Merge
	var path string
	for _, arg := range args {
		switch arg {
		case "--replace":
			policy = codec.Replace
		case "--merge":
			policy = codec.Merge
		default:
			path = arg
		}
	}
	if path == "" {
		fmt.Fprintf(os.Stderr, "Usage: atd import [--replace|--merge] <file>\n")
		os.Exit(1)
	}

	n, err := codec.ImportFile(st, path, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing backup: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d tasks from %s\n", n, path)
}
