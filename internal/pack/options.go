package pack

import (
	"strings"

	"github.com/plugpack-labs/plugpack/internal/manifest"
	"github.com/plugpack-labs/plugpack/internal/platform"
)

// Defaults for optional settings.
const (
	DefaultVersionComponents = 4
	DefaultImagesPath        = "images"
)

// Options is the complete, already-resolved input of one packaging run.
type Options struct {
	ProjectDir        string
	OutputDir         string
	AssemblyName      string
	AssemblyVersion   string
	ManifestType      string // auto, json, yaml or embedded; empty means auto
	VersionComponents int    // 1..4; zero means DefaultVersionComponents
	MakeZip           bool
	HandleImages      bool
	ImagesPath        string // relative to OutputDir; empty means DefaultImagesPath
	Include           []string
	Exclude           []string
	Fields            manifest.Fields // embedded overrides
	EmbeddedFallback  bool            // let auto mode synthesize from Fields
	TempDir           string          // staging dir for the archive; empty means the system default
}

// Normalized returns a copy of o with path separators canonicalized and
// defaults filled in. o itself is not modified.
func (o Options) Normalized() Options {
	n := o
	n.ProjectDir = platform.NormalizePath(o.ProjectDir)
	n.OutputDir = platform.NormalizePath(o.OutputDir)
	n.ImagesPath = platform.NormalizePath(o.ImagesPath)
	if n.ImagesPath == "" {
		n.ImagesPath = DefaultImagesPath
	}
	if n.VersionComponents == 0 {
		n.VersionComponents = DefaultVersionComponents
	}
	n.Include = append([]string(nil), o.Include...)
	n.Exclude = append([]string(nil), o.Exclude...)
	return n
}

// SplitList splits a semicolon-delimited path list, trimming whitespace and
// dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, manifest.ListSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
