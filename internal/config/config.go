package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/plugpack-labs/plugpack/internal/branding"
	"github.com/plugpack-labs/plugpack/internal/manifest"
	"github.com/plugpack-labs/plugpack/internal/pack"
)

const fileType = "yaml"

// Setting keys. Each matches a command-line flag name; the environment
// variable is the key upper-cased with the branding prefix, dashes
// replaced by underscores (e.g. PLUGPACK_OUTPUT_DIR).
const (
	KeyProjectDir        = "project-dir"
	KeyOutputDir         = "output-dir"
	KeyAssemblyName      = "assembly-name"
	KeyAssemblyVersion   = "assembly-version"
	KeyManifestType      = "manifest-type"
	KeyVersionComponents = "version-components"
	KeyMakeZip           = "make-zip"
	KeyHandleImages      = "handle-images"
	KeyImagesPath        = "images-path"
	KeyInclude           = "include"
	KeyExclude           = "exclude"
	KeyField             = "field"
	KeyEmbeddedFallback  = "embedded-fallback"
	KeyLogLevel          = "log-level"

	// KeyFields is the config-file map of embedded overrides.
	KeyFields = "fields"
)

// FileName returns the per-project config file name (plugpack.yaml).
func FileName() string {
	return branding.ConfigName() + "." + fileType
}

// FilePath returns the config file path inside projectDir.
func FilePath(projectDir string) string {
	return filepath.Join(projectDir, FileName())
}

// Load builds a Viper instance layering flags over environment variables
// over <project-dir>/plugpack.yaml over flag defaults. A missing config
// file is not an error.
func Load(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	projectDir := v.GetString(KeyProjectDir)
	if projectDir == "" {
		projectDir = "."
	}
	path := FilePath(projectDir)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return v, nil
	}

	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return v, nil
}

// PackOptions turns resolved settings into pipeline options. Field
// overrides from the config file's fields map are applied first, then
// --field assignments.
func PackOptions(v *viper.Viper) (pack.Options, error) {
	fields, err := fileFields(v)
	if err != nil {
		return pack.Options{}, &pack.ConfigError{Setting: KeyFields, Err: err}
	}
	raw, err := fieldAssignments(v)
	if err != nil {
		return pack.Options{}, &pack.ConfigError{Setting: KeyField, Err: err}
	}
	assigned, err := manifest.ParseFieldAssignments(raw)
	if err != nil {
		return pack.Options{}, &pack.ConfigError{Setting: KeyField, Err: err}
	}
	for k, val := range assigned {
		fields[k] = val
	}
	if len(fields) == 0 {
		fields = nil
	}

	return pack.Options{
		ProjectDir:        v.GetString(KeyProjectDir),
		OutputDir:         v.GetString(KeyOutputDir),
		AssemblyName:      v.GetString(KeyAssemblyName),
		AssemblyVersion:   v.GetString(KeyAssemblyVersion),
		ManifestType:      v.GetString(KeyManifestType),
		VersionComponents: v.GetInt(KeyVersionComponents),
		MakeZip:           v.GetBool(KeyMakeZip),
		HandleImages:      v.GetBool(KeyHandleImages),
		ImagesPath:        v.GetString(KeyImagesPath),
		Include:           pack.SplitList(v.GetString(KeyInclude)),
		Exclude:           pack.SplitList(v.GetString(KeyExclude)),
		Fields:            fields,
		EmbeddedFallback:  v.GetBool(KeyEmbeddedFallback) || len(assigned) > 0,
	}, nil
}

// fileFields reads the fields map. List values are joined with
// manifest.ListSeparator; nested maps are rejected.
func fileFields(v *viper.Viper) (manifest.Fields, error) {
	fields := manifest.Fields{}
	for k, val := range v.GetStringMap(KeyFields) {
		key := strings.ToLower(k)
		switch val := val.(type) {
		case nil:
			fields[key] = ""
		case []any:
			items := make([]string, len(val))
			for i, item := range val {
				s, err := cast.ToStringE(item)
				if err != nil {
					return nil, fmt.Errorf("field %s item %d: %w", key, i, err)
				}
				items[i] = s
			}
			fields[key] = strings.Join(items, manifest.ListSeparator)
		default:
			s, err := cast.ToStringE(val)
			if err != nil {
				return nil, fmt.Errorf("field %s: unsupported value %v", key, val)
			}
			fields[key] = s
		}
	}
	return fields, nil
}

// fieldAssignments returns the key=value overrides. Flags and config-file
// lists arrive as slices. The environment variable holds one assignment per
// line, so values may contain spaces and commas.
func fieldAssignments(v *viper.Viper) ([]string, error) {
	switch raw := v.Get(KeyField).(type) {
	case nil:
		return nil, nil
	case []string:
		return raw, nil
	case string:
		var out []string
		for _, line := range strings.Split(raw, "\n") {
			if line = strings.TrimSpace(strings.TrimSuffix(line, "\r")); line != "" {
				out = append(out, line)
			}
		}
		return out, nil
	default:
		return cast.ToStringSliceE(raw)
	}
}
