// Package logging sets up the application log file. Logs go to a file under
// the user state directory so they never fight the TUI for the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New opens the log file and returns a leveled logger plus a close func
func New(level string) (*log.Logger, func(), error) {
	path, err := logPath()
	if err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		Level:           parseLevel(level),
		ReportTimestamp: true,
		Prefix:          "atd",
	})

	return logger, func() { file.Close() }, nil
}

func logPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}

	appDir := filepath.Join(stateDir, "atd")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "atd.log"), nil
}

func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
