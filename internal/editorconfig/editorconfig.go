package editorconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PrefsPath is the path to the editor preferences file, relative to the process
// working directory.
const PrefsPath = "config/editor.json"

// Prefs holds editor-only preferences (debug overlays, grid). Persisted across runs.
// Level data is separate and handled by the level store.
type Prefs struct {
	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	GridVisible  bool `json:"grid_visible"`
	SnapEnabled  bool `json:"snap_enabled"`
}

// DefaultPrefs returns default preferences (overlays off, grid on, snapping on).
func DefaultPrefs() Prefs {
	return Prefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		SnapEnabled:  true,
	}
}

// LoadPrefs reads preferences from config/editor.json. If the file is missing or
// invalid, returns DefaultPrefs() and does not create a file.
func LoadPrefs() Prefs {
	data, err := os.ReadFile(PrefsPath)
	if err != nil {
		return DefaultPrefs()
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPrefs()
	}
	return p
}

// SavePrefs writes preferences to config/editor.json, creating the config directory
// if needed.
func SavePrefs(p Prefs) error {
	dir := filepath.Dir(PrefsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(PrefsPath, data, 0644)
}
