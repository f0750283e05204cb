package editorconfig

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir switches to dir for the duration of the test, like t.Chdir
// (which needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}

func TestLoadPrefs_MissingOrInvalidFallsBack(t *testing.T) {
	chdir(t, t.TempDir())
	if got := LoadPrefs(); got != DefaultPrefs() {
		t.Fatalf("missing file: got %+v want defaults", got)
	}
	writeConfig(t, PrefsPath, "{not json")
	if got := LoadPrefs(); got != DefaultPrefs() {
		t.Fatalf("invalid file: got %+v want defaults", got)
	}
}

func TestLoadPrefs_RoundTrip(t *testing.T) {
	chdir(t, t.TempDir())
	want := Prefs{ShowFPS: true, GridVisible: false, SnapEnabled: true}
	if err := SavePrefs(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := LoadPrefs(); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
