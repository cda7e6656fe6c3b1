package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/najoast/actorkit/core"
)

func TestResolveDocumentDirect(t *testing.T) {
	l := NewLoader()
	doc := Document{"foo": core.Placement{Mode: core.ModeForked}}

	got := l.Resolve(doc, core.SilentLogger())
	if got["foo"].Mode != core.ModeForked {
		t.Errorf("got %+v, want foo.Mode=forked", got)
	}
}

func TestResolvePathString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actors.json")
	data, _ := json.Marshal(map[string]any{"foo": map[string]any{"mode": "forked", "clusterSize": 3}})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := NewLoader()
	got := l.Resolve(path, core.SilentLogger())
	if got["foo"].Mode != core.ModeForked || got["foo"].ClusterSize != 3 {
		t.Errorf("got %+v, want foo={forked,3}", got["foo"])
	}
}

func TestResolvePathStringYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actors.yaml")
	data := []byte("foo:\n  mode: forked\n  clusterSize: 3\n  retries: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := NewLoader()
	got := l.Resolve(path, core.SilentLogger())
	foo := got["foo"]
	if foo.Mode != core.ModeForked || foo.ClusterSize != 3 {
		t.Errorf("got %+v, want foo={forked,3}", foo)
	}
	if foo.Extra["retries"] != float64(5) {
		t.Errorf("got Extra[retries]=%v, want 5", foo.Extra["retries"])
	}
}

func TestMalformedYAMLDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actors.yaml")
	if err := os.WriteFile(path, []byte("foo: [unterminated"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := NewLoader()
	got := l.Resolve(path, core.SilentLogger())
	if len(got) != 0 {
		t.Errorf("expected empty config on parse failure, got %+v", got)
	}
}

// TestAbsentUsesDefaultPathFallback realizes spec.md §8's scenario 6: a
// nonexistent path falls back to the default path, and when that is also
// absent the system proceeds with an empty config.
func TestAbsentUsesDefaultPathFallback(t *testing.T) {
	dir := t.TempDir()
	cwd, _ := os.Getwd()
	defer os.Chdir(cwd)
	_ = os.Chdir(dir)

	l := NewLoader()
	got := l.Resolve("/nonexistent/actors.json", core.SilentLogger())
	if len(got) != 0 {
		t.Errorf("expected empty config, got %+v", got)
	}
}

func TestMalformedJSONDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actors.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	l := NewLoader().SetDefaultPath(path)
	got := l.Resolve(nil, core.SilentLogger())
	if len(got) != 0 {
		t.Errorf("expected empty config on parse failure, got %+v", got)
	}
}

func TestDocumentLookupMissingIsZeroValue(t *testing.T) {
	var doc Document
	p := doc.Lookup("missing")
	if p.Mode != "" || p.ClusterSize != 0 {
		t.Errorf("Lookup on nil Document = %+v, want zero value", p)
	}
}
