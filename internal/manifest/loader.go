package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

// Source identifies where a loaded manifest came from.
type Source int

const (
	SourceJSON Source = iota
	SourceYAML
	SourceEmbedded
)

func (s Source) String() string {
	switch s {
	case SourceJSON:
		return "json"
	case SourceYAML:
		return "yaml"
	case SourceEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Loaded is the outcome of a successful Load.
type Loaded struct {
	Manifest *Manifest
	Source   Source
	Path     string       // file read; empty for SourceEmbedded
	Issues   []FieldIssue // overrides that were skipped during synthesis
}

// Load locates and decodes the manifest for stem in dir according to mode.
// A missing file yields ErrNotFound; a malformed one yields *ParseError.
func Load(mode Mode, dir, stem string) (*Loaded, error) {
	jsonPath := filepath.Join(dir, stem+".json")
	yamlPath := filepath.Join(dir, stem+".yaml")

	switch m := mode.(type) {
	case AutoMode:
		tried := []string{jsonPath, yamlPath}
		if l, err := loadFile(jsonPath, SourceJSON); !errors.Is(err, ErrNotFound) {
			return l, err
		}
		if l, err := loadFile(yamlPath, SourceYAML); !errors.Is(err, ErrNotFound) {
			return l, err
		}
		if m.Fallback != nil {
			return synthesize(m.Fallback.Fields), nil
		}
		return nil, fmt.Errorf("%w: looked for %s", ErrNotFound, strings.Join(tried, ", "))
	case JSONMode:
		l, err := loadFile(jsonPath, SourceJSON)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: looked for %s", ErrNotFound, jsonPath)
		}
		return l, err
	case YAMLMode:
		l, err := loadFile(yamlPath, SourceYAML)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: looked for %s", ErrNotFound, yamlPath)
		}
		return l, err
	case EmbeddedMode:
		return synthesize(m.Fields), nil
	default:
		return nil, &ModeError{Value: fmt.Sprint(mode)}
	}
}

// ParseJSON decodes a manifest from JSON. Keys must match the capitalized
// field names exactly; any other key, including a differently-cased one,
// is ignored.
func ParseJSON(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	names := jsonNames()
	for k := range raw {
		if !names[k] {
			delete(raw, k)
		}
	}
	exact, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(exact, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// jsonNames is the set of JSON keys declared on Manifest.
var jsonNames = sync.OnceValue(func() map[string]bool {
	names := map[string]bool{}
	t := reflect.TypeFor[Manifest]()
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names[name] = true
		}
	}
	return names
})

// ParseYAML decodes a manifest from YAML using snake_case field names.
// Unknown keys are ignored.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func loadFile(path string, source Source) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var m *Manifest
	switch source {
	case SourceJSON:
		m, err = ParseJSON(data)
	default:
		m, err = ParseYAML(data)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Format: source.String(), Err: err}
	}
	return &Loaded{Manifest: m, Source: source, Path: path}, nil
}

func synthesize(f Fields) *Loaded {
	m, issues := f.Synthesize()
	return &Loaded{Manifest: m, Source: SourceEmbedded, Issues: issues}
}
