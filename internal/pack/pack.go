package pack

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/plugpack-labs/plugpack/internal/archive"
	"github.com/plugpack-labs/plugpack/internal/manifest"
)

// Outcome describes a successful run.
type Outcome struct {
	Manifest     *manifest.Manifest
	Source       manifest.Source
	SourcePath   string // empty for embedded manifests
	Warnings     []manifest.Warning
	ManifestPath string          // canonical manifest written by Run; empty for Resolve
	Bundle       *archive.Result // nil unless MakeZip
}

// Resolve loads and merges the manifest described by opts without writing
// anything. The returned Report carries missing fields and warnings; a
// non-empty Missing list is also returned as a *manifest.ValidationError.
// OutputDir is not needed.
func Resolve(opts Options, log zerolog.Logger) (*Outcome, *manifest.Report, error) {
	opts = opts.Normalized()
	if err := checkRequired(opts, false); err != nil {
		return nil, nil, fail(log, err)
	}
	return resolve(opts, log)
}

// Run executes the whole pipeline. Every failure is logged, with the
// setting, file or fields that caused it, before it is returned.
func Run(opts Options, log zerolog.Logger) (*Outcome, error) {
	opts = opts.Normalized()
	if err := checkRequired(opts, true); err != nil {
		return nil, fail(log, err)
	}
	if opts.MakeZip && len(opts.Include) > 0 && len(opts.Exclude) > 0 {
		return nil, fail(log, &ConfigError{Setting: "include/exclude", Err: archive.ErrIncludeExcludeConflict})
	}

	out, _, err := resolve(opts, log)
	if err != nil {
		return nil, err
	}

	path, err := manifest.Write(out.Manifest, opts.OutputDir, opts.AssemblyName)
	if err != nil {
		return nil, fail(log, err)
	}
	out.ManifestPath = path
	log.Info().Str("path", path).Str("version", out.Manifest.AssemblyVersion).Msg("wrote manifest")

	if !opts.MakeZip {
		return out, nil
	}

	bundle, err := archive.Assemble(archive.Config{
		OutputDir:    opts.OutputDir,
		AssemblyName: opts.AssemblyName,
		Include:      opts.Include,
		Exclude:      opts.Exclude,
		HandleImages: opts.HandleImages,
		ImagesPath:   opts.ImagesPath,
		TempDir:      opts.TempDir,
	})
	if err != nil {
		return nil, fail(log, err)
	}
	out.Bundle = bundle
	log.Info().
		Str("archive", bundle.ArchivePath).
		Int("entries", len(bundle.Entries)).
		Strs("images", bundle.Images).
		Msg("assembled bundle")

	return out, nil
}

func resolve(opts Options, log zerolog.Logger) (*Outcome, *manifest.Report, error) {
	mode, err := manifest.ParseMode(opts.ManifestType, opts.Fields, opts.EmbeddedFallback)
	if err != nil {
		return nil, nil, fail(log, &ConfigError{Setting: "manifest type", Err: err})
	}

	loaded, err := manifest.Load(mode, opts.ProjectDir, opts.AssemblyName)
	if err != nil {
		return nil, nil, fail(log, err)
	}
	log.Debug().Str("source", loaded.Source.String()).Str("path", loaded.Path).Msg("loaded manifest")
	for _, issue := range loaded.Issues {
		log.Debug().Str("field", issue.Key).Str("value", issue.Value).Msgf("ignoring field override: %s", issue.Reason)
	}

	report, err := manifest.Merge(loaded.Manifest, manifest.Derived{
		InternalName: opts.AssemblyName,
		Version:      opts.AssemblyVersion,
		Components:   opts.VersionComponents,
	})
	if err != nil {
		setting := "assembly version"
		if errors.Is(err, manifest.ErrVersionComponents) {
			setting = "version components"
		}
		return nil, nil, fail(log, &ConfigError{Setting: setting, Err: err})
	}
	for _, w := range report.Warnings {
		log.Warn().Str("field", w.Path).Msg(w.Message)
	}

	out := &Outcome{
		Manifest:   loaded.Manifest,
		Source:     loaded.Source,
		SourcePath: loaded.Path,
		Warnings:   report.Warnings,
	}
	if err := report.Err(); err != nil {
		return out, report, fail(log, err)
	}
	return out, report, nil
}

func checkRequired(opts Options, writes bool) error {
	required := []struct {
		setting string
		value   string
		skip    bool
	}{
		{"project directory", opts.ProjectDir, false},
		{"output directory", opts.OutputDir, !writes},
		{"assembly name", opts.AssemblyName, false},
		{"assembly version", opts.AssemblyVersion, false},
	}
	var missing []error
	for _, r := range required {
		if r.value == "" && !r.skip {
			missing = append(missing, &ConfigError{Setting: r.setting, Err: errors.New("value is required")})
		}
	}
	return errors.Join(missing...)
}

// fail logs err once with its classification and the detail that
// identifies its cause, then marks it as reported.
func fail(log zerolog.Logger, err error) error {
	if err == nil || Reported(err) {
		return err
	}

	ev := log.Error().Str("kind", string(KindOf(err)))
	var (
		ce *ConfigError
		ve *manifest.ValidationError
		pe *manifest.ParseError
	)
	switch {
	case errors.As(err, &ve):
		ev = ev.Strs("missing", ve.Missing)
	case errors.As(err, &pe):
		ev = ev.Str("path", pe.Path).Str("format", pe.Format)
	case errors.As(err, &ce):
		ev = ev.Str("setting", ce.Setting)
	}
	ev.Msg(describe(err))

	return &reportedError{err: err}
}

func describe(err error) string {
	switch KindOf(err) {
	case KindConfig:
		return fmt.Sprintf("configuration error: %v", err)
	case KindNotFound:
		return fmt.Sprintf("no manifest found: %v", err)
	case KindValidation:
		return err.Error()
	case KindParse:
		return fmt.Sprintf("malformed manifest: %v", err)
	default:
		return fmt.Sprintf("packaging failed: %v", err)
	}
}
