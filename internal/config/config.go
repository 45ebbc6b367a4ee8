package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnvVar overrides the configuration directory
	HomeEnvVar = "RESTDECK_HOME"
)

var (
	// ConfigDir is the global configuration directory (~/.restdeck)
	ConfigDir string

	// EnvironmentsFile stores environments and the active environment id
	EnvironmentsFile string

	// HistoryFile stores the last sent requests
	HistoryFile string

	// SavedRequestsFile stores named requests
	SavedRequestsFile string

	// DatabasePath is the SQLite database file for analytics
	DatabasePath string

	// SettingsFile holds user preferences (JSON with comments)
	SettingsFile string

	// KeybindsFile holds user keybinding overrides
	KeybindsFile string

	// LogFile receives log output while the TUI owns the terminal
	LogFile string
)

// Initialize sets up the configuration directory and paths.
// dir overrides the location; when empty RESTDECK_HOME and then ~/.restdeck are used.
func Initialize(dir string) error {
	if dir == "" {
		dir = os.Getenv(HomeEnvVar)
	}
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".restdeck")
	}

	SetPaths(dir)

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// SetPaths points every file path at dir without touching the filesystem
func SetPaths(dir string) {
	ConfigDir = dir
	EnvironmentsFile = filepath.Join(dir, "environments.json")
	HistoryFile = filepath.Join(dir, "history.json")
	SavedRequestsFile = filepath.Join(dir, "saved-requests.json")
	DatabasePath = filepath.Join(dir, "restdeck.db")
	SettingsFile = filepath.Join(dir, "settings.jsonc")
	KeybindsFile = filepath.Join(dir, "keybinds.json")
	LogFile = filepath.Join(dir, "restdeck.log")
}
