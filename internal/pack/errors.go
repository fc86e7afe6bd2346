package pack

import (
	"errors"
	"fmt"

	"github.com/plugpack-labs/plugpack/internal/archive"
	"github.com/plugpack-labs/plugpack/internal/manifest"
)

// Kind classifies a pipeline failure.
type Kind string

const (
	KindConfig     Kind = "config"
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	KindParse      Kind = "parse"
	KindIO         Kind = "io"
)

// ConfigError reports an invalid setting.
type ConfigError struct {
	Setting string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Setting, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// KindOf classifies err. Errors that are not configuration, lookup,
// validation or parse failures are I/O failures.
func KindOf(err error) Kind {
	var (
		ce *ConfigError
		me *manifest.ModeError
		ve *manifest.ValidationError
		pe *manifest.ParseError
	)
	switch {
	case errors.As(err, &ce), errors.As(err, &me),
		errors.Is(err, manifest.ErrVersionComponents),
		errors.Is(err, manifest.ErrInvalidVersion),
		errors.Is(err, archive.ErrIncludeExcludeConflict):
		return KindConfig
	case errors.Is(err, manifest.ErrNotFound):
		return KindNotFound
	case errors.As(err, &ve):
		return KindValidation
	case errors.As(err, &pe):
		return KindParse
	default:
		return KindIO
	}
}

// reportedError marks an error that has already been logged.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already logged by the pipeline.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
