package manifest

import (
	"strings"
)

// Mode selects where the loader looks for a manifest. It is a closed set:
// AutoMode, JSONMode, YAMLMode and EmbeddedMode.
type Mode interface {
	String() string
	isMode()
}

// AutoMode tries <stem>.json, then <stem>.yaml, then Fallback when it is
// non-nil.
type AutoMode struct {
	Fallback *EmbeddedMode
}

// JSONMode reads only <stem>.json.
type JSONMode struct{}

// YAMLMode reads only <stem>.yaml.
type YAMLMode struct{}

// EmbeddedMode synthesizes a manifest from inline field overrides.
type EmbeddedMode struct {
	Fields Fields
}

func (AutoMode) isMode()     {}
func (JSONMode) isMode()     {}
func (YAMLMode) isMode()     {}
func (EmbeddedMode) isMode() {}

func (AutoMode) String() string     { return "auto" }
func (JSONMode) String() string     { return "json" }
func (YAMLMode) String() string     { return "yaml" }
func (EmbeddedMode) String() string { return "embedded" }

// ModeNames lists the accepted --manifest-type values.
var ModeNames = []string{"auto", "json", "yaml", "embedded"}

// ParseMode maps a mode name onto its Mode. The empty string means auto.
// fields feed EmbeddedMode, and AutoMode's fallback when embeddedFallback
// is set.
func ParseMode(name string, fields Fields, embeddedFallback bool) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		if embeddedFallback {
			return AutoMode{Fallback: &EmbeddedMode{Fields: fields}}, nil
		}
		return AutoMode{}, nil
	case "json":
		return JSONMode{}, nil
	case "yaml":
		return YAMLMode{}, nil
	case "embedded":
		return EmbeddedMode{Fields: fields}, nil
	default:
		return nil, &ModeError{Value: name}
	}
}
