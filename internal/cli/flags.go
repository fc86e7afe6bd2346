package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/plugpack-labs/plugpack/internal/config"
	"github.com/plugpack-labs/plugpack/internal/manifest"
	"github.com/plugpack-labs/plugpack/internal/pack"
)

// addManifestFlags registers the settings that locate and resolve a manifest.
func addManifestFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyProjectDir, ".", "Directory holding <assembly-name>.json or .yaml")
	fs.String(config.KeyAssemblyName, "", "Assembly name; becomes InternalName and the file stem")
	fs.String(config.KeyAssemblyVersion, "", "Assembly version, e.g. 1.2.3.4")
	fs.String(config.KeyManifestType, "auto", "Manifest source: one of "+strings.Join(manifest.ModeNames, ", "))
	fs.Int(config.KeyVersionComponents, pack.DefaultVersionComponents, "Number of version components to keep (1-4)")
	fs.StringArray(config.KeyField, nil, "Embedded manifest field as key=value (repeatable; PLUGPACK_FIELD takes one per line)")
	fs.Bool(config.KeyEmbeddedFallback, false, "In auto mode, build the manifest from fields when no file exists")
}

// addBundleFlags registers the settings that control what gets written.
func addBundleFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyOutputDir, "", "Plugin build output directory")
	fs.Bool(config.KeyMakeZip, false, "Assemble <output-dir>/<assembly-name>/ with latest.zip")
	fs.Bool(config.KeyHandleImages, true, "Copy icon.png and image1-5.png into the bundle")
	fs.String(config.KeyImagesPath, pack.DefaultImagesPath, "Images directory, relative to the output directory")
	fs.String(config.KeyInclude, "", "Semicolon-separated files to archive (replaces the default set)")
	fs.String(config.KeyExclude, "", "Semicolon-separated files to leave out of the archive")
}

// packOptions resolves flags, environment and the project config file.
func packOptions(fs *pflag.FlagSet) (pack.Options, error) {
	v, err := config.Load(fs)
	if err != nil {
		return pack.Options{}, &pack.ConfigError{Setting: "config file", Err: err}
	}
	return config.PackOptions(v)
}
