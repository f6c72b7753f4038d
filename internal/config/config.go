package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultSceneFile    = "scene.toml"
	DefaultSettingsFile = "QuickExportConfig.ini"
)

// ScenePath returns the scene description path from QUICKEXPORT_SCENE,
// falling back to DefaultSceneFile in the working directory.
func ScenePath() string {
	if env := os.Getenv("QUICKEXPORT_SCENE"); env != "" {
		return env
	}
	return DefaultSceneFile
}

// SettingsPath returns the settings document path from
// QUICKEXPORT_CONFIG, falling back to DefaultSettingsFile next to the
// scene description.
func SettingsPath() string {
	if env := os.Getenv("QUICKEXPORT_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(filepath.Dir(ScenePath()), DefaultSettingsFile)
}

// HistoryPath returns the export-history database path from
// QUICKEXPORT_HISTORY, falling back to ~/.quickexport/history.db.
func HistoryPath() string {
	if env := os.Getenv("QUICKEXPORT_HISTORY"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".quickexport", "history.db")
	}
	return filepath.Join(home, ".quickexport", "history.db")
}
