package config

import "github.com/najoast/actorkit/core"

// Document is a configuration file's parsed shape, per spec.md §6: a JSON
// object mapping decapitalized actor names to placement overrides.
type Document map[string]core.Placement

// DefaultPath is the fallback location tried when no config source is
// given, or when the given path cannot be loaded. It is relative, so it
// resolves against the process's current working directory.
const DefaultPath = "actors.json"

// Lookup returns the entry for name (already decapitalized by the
// caller), or the zero Placement if absent.
func (d Document) Lookup(name string) core.Placement {
	if d == nil {
		return core.Placement{}
	}
	return d[name]
}
