package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no manifest source could be located for the
// requested mode.
var ErrNotFound = errors.New("manifest not found")

// ErrVersionComponents is returned when the requested number of version
// components is outside 1..4.
var ErrVersionComponents = errors.New("version components must be between 1 and 4")

// ErrInvalidVersion is returned when the build version is not a dotted
// sequence of unsigned integers.
var ErrInvalidVersion = errors.New("invalid assembly version")

// ModeError reports an unrecognized manifest resolution mode.
type ModeError struct {
	Value string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("unknown manifest type %q: must be one of %s", e.Value, strings.Join(ModeNames, ", "))
}

// ParseError wraps a JSON or YAML decoding failure with the file it came from.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s manifest %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError lists every required field that is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest is missing required fields: %s", strings.Join(e.Missing, ", "))
}
