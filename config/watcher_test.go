package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/najoast/actorkit/core"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actors.json")
	initial, _ := json.Marshal(map[string]any{"foo": map[string]any{"mode": "in-memory"}})
	if err := os.WriteFile(path, initial, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w, err := NewWatcher(path, NewLoader(), core.SilentLogger())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if got := w.Document()["foo"].Mode; got != core.ModeInMemory {
		t.Fatalf("initial document foo.Mode = %q, want in-memory", got)
	}

	changed := make(chan Document, 1)
	w.OnChange(func(d Document) { changed <- d })

	updated, _ := json.Marshal(map[string]any{"foo": map[string]any{"mode": "forked"}})
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case d := <-changed:
		if d["foo"].Mode != core.ModeForked {
			t.Errorf("reloaded foo.Mode = %q, want forked", d["foo"].Mode)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload callback")
	}
}
