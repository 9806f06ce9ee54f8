package storage

import (
	"os"
	"testing"

	"github.com/dkoval/ivory/internal/engine"
)

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Depth != engine.DefaultDepth {
		t.Errorf("default depth = %d, want %d", prefs.Depth, engine.DefaultDepth)
	}
	if prefs.Workers != engine.DefaultWorkers {
		t.Errorf("default workers = %d, want %d", prefs.Workers, engine.DefaultWorkers)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	// Nothing saved yet: defaults.
	prefs, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Depth != engine.DefaultDepth || prefs.Workers != engine.DefaultWorkers {
		t.Errorf("fresh store should return defaults, got %+v", prefs)
	}

	prefs.Depth = 5
	prefs.Workers = 4
	if err := store.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	loaded, err := store.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded.Depth != 5 || loaded.Workers != 4 {
		t.Errorf("loaded %+v, want depth 5 workers 4", loaded)
	}
	if loaded.LastUsed.IsZero() {
		t.Error("LastUsed not stamped on save")
	}
}

func TestDataPaths(t *testing.T) {
	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
}
