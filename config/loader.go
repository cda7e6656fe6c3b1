package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/najoast/actorkit/core"
)

// Loader resolves the configuration source described in spec.md §4.6:
// (a) a data record used directly, (b) a path string read and parsed as
// JSON (or as YAML when it ends in .yaml or .yml), or (c) absent, in which case a default path is tried before
// falling back to an empty document. Modeled on the teacher's
// config.Loader (config/loader.go), scaled from its AppConfig schema
// down to the single Document map this spec calls for.
type Loader struct {
	defaultPath string
}

// NewLoader returns a Loader that falls back to DefaultPath.
func NewLoader() *Loader {
	return &Loader{defaultPath: DefaultPath}
}

// SetDefaultPath overrides the fallback path tried when input is absent.
func (l *Loader) SetDefaultPath(path string) *Loader {
	l.defaultPath = path
	return l
}

// Resolve implements the three-way source resolution. Any failure to
// read or parse is logged at warn and degrades to the next fallback;
// per spec.md §5 this never prevents the system from starting.
func (l *Loader) Resolve(input any, log core.Logger) Document {
	switch v := input.(type) {
	case Document:
		return v
	case map[string]core.Placement:
		return Document(v)
	case string:
		doc, err := l.loadFromFile(v)
		if err != nil {
			log.Warnf("config: failed to load %q (%v), trying default path", v, err)
			return l.tryDefaultPath(log)
		}
		return doc
	case nil:
		return l.tryDefaultPath(log)
	default:
		log.Warnf("config: unsupported config source type %T, starting with empty config", input)
		return Document{}
	}
}

func (l *Loader) tryDefaultPath(log core.Logger) Document {
	doc, err := l.loadFromFile(l.defaultPath)
	if err != nil {
		log.Warnf("config: no usable config at %q (%v), starting with empty config", l.defaultPath, err)
		return Document{}
	}
	return doc
}

// loadFromFile reads path and parses it as YAML or JSON by extension,
// generalizing the teacher's config.Loader (config/loader.go), which
// supports both formats the same way.
func (l *Loader) loadFromFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return l.parseYAML(data)
	default:
		return l.parseJSON(data)
	}
}

func (l *Loader) parseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return doc, nil
}

// parseYAML decodes into a generic map and re-marshals through JSON so
// Placement's MarshalJSON/UnmarshalJSON flatten logic is exercised for
// YAML sources too, instead of duplicating it against yaml.Node.
func (l *Loader) parseYAML(data []byte) (Document, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return l.parseJSON(jsonBytes)
}
