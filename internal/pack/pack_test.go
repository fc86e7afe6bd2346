package pack

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plugpack-labs/plugpack/internal/manifest"
)

const assembly = "SamplePlugin"

const validYAML = `author: Jane Doe
name: Sample Plugin
description: Does sample things.
punchline: Samples, fast.
internal_name: NotTheAssembly
assembly_version: 0.0.0.1
`

type fixture struct {
	project string
	output  string
	logs    *bytes.Buffer
	log     zerolog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	var buf bytes.Buffer
	return &fixture{
		project: t.TempDir(),
		output:  t.TempDir(),
		logs:    &buf,
		log:     zerolog.New(&buf),
	}
}

func (f *fixture) write(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (f *fixture) options() Options {
	return Options{
		ProjectDir:      f.project,
		OutputDir:       f.output,
		AssemblyName:    assembly,
		AssemblyVersion: "1.2.3.4",
		HandleImages:    true,
	}
}

func (f *fixture) manifestPath() string {
	return filepath.Join(f.output, assembly+".json")
}

func TestRun_WritesMergedManifest(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.project, assembly+".yaml", validYAML)

	opts := f.options()
	opts.VersionComponents = 3
	out, err := Run(opts, f.log)
	require.NoError(t, err)

	assert.Equal(t, manifest.SourceYAML, out.Source)
	assert.Equal(t, f.manifestPath(), out.ManifestPath)
	assert.Nil(t, out.Bundle)

	written, err := manifest.Load(manifest.JSONMode{}, f.output, assembly)
	require.NoError(t, err)
	assert.Equal(t, assembly, written.Manifest.InternalName)
	assert.Equal(t, "1.2.3", written.Manifest.AssemblyVersion)
	assert.Equal(t, manifest.DefaultAPILevel, *written.Manifest.APILevel)
	assert.Contains(t, f.logs.String(), "wrote manifest")
}

func TestRun_MakeZip(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.project, assembly+".yaml", validYAML)
	f.write(t, f.output, assembly+".dll", "binary")
	f.write(t, f.output, "images/icon.png", "icon")

	opts := f.options()
	opts.MakeZip = true
	opts.TempDir = t.TempDir()
	out, err := Run(opts, f.log)
	require.NoError(t, err)
	require.NotNil(t, out.Bundle)

	bundle := filepath.Join(f.output, assembly)
	assert.FileExists(t, filepath.Join(bundle, assembly+".json"))
	assert.FileExists(t, filepath.Join(bundle, "latest.zip"))
	assert.FileExists(t, filepath.Join(bundle, "images", "icon.png"))

	r, err := zip.OpenReader(filepath.Join(bundle, "latest.zip"))
	require.NoError(t, err)
	defer r.Close()
	var names []string
	for _, zf := range r.File {
		names = append(names, zf.Name)
	}
	assert.ElementsMatch(t, []string{assembly + ".dll", assembly + ".json"}, names)
}

func TestRun_IncludeExcludeConflictBeforeAnyWrite(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.project, assembly+".yaml", validYAML)

	opts := f.options()
	opts.MakeZip = true
	opts.Include = []string{"a.dll"}
	opts.Exclude = []string{"b.dll"}
	_, err := Run(opts, f.log)

	require.Error(t, err)
	assert.Equal(t, KindConfig, KindOf(err))
	assert.True(t, Reported(err))
	assert.NoFileExists(t, f.manifestPath())
	assert.Contains(t, f.logs.String(), `"setting":"include/exclude"`)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		modify   func(*Options)
		kind     Kind
		logMatch string
	}{
		{
			name:     "no manifest",
			kind:     KindNotFound,
			logMatch: "no manifest found",
		},
		{
			name:     "missing required fields",
			files:    map[string]string{assembly + ".json": `{"Author": "Jane"}`},
			kind:     KindValidation,
			logMatch: `"missing":["Name","Description","Punchline"]`,
		},
		{
			name:     "malformed json",
			files:    map[string]string{assembly + ".json": `{"Author": `},
			kind:     KindParse,
			logMatch: `"format":"json"`,
		},
		{
			name:     "unknown manifest type",
			files:    map[string]string{assembly + ".yaml": validYAML},
			modify:   func(o *Options) { o.ManifestType = "xml" },
			kind:     KindConfig,
			logMatch: `"setting":"manifest type"`,
		},
		{
			name:     "bad version components",
			files:    map[string]string{assembly + ".yaml": validYAML},
			modify:   func(o *Options) { o.VersionComponents = 7 },
			kind:     KindConfig,
			logMatch: `"setting":"version components"`,
		},
		{
			name:     "bad version",
			files:    map[string]string{assembly + ".yaml": validYAML},
			modify:   func(o *Options) { o.AssemblyVersion = "one.two" },
			kind:     KindConfig,
			logMatch: `"setting":"assembly version"`,
		},
		{
			name:     "missing options",
			modify:   func(o *Options) { o.AssemblyName = ""; o.OutputDir = "" },
			kind:     KindConfig,
			logMatch: "configuration error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for name, content := range tt.files {
				f.write(t, f.project, name, content)
			}
			opts := f.options()
			if tt.modify != nil {
				tt.modify(&opts)
			}

			out, err := Run(opts, f.log)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.True(t, Reported(err))
			assert.Contains(t, f.logs.String(), tt.logMatch)
			assert.NoFileExists(t, f.manifestPath())
		})
	}
}

func TestRun_MissingOptionsReportsEverySetting(t *testing.T) {
	f := newFixture(t)
	_, err := Run(Options{}, f.log)
	require.Error(t, err)
	for _, setting := range []string{"project directory", "output directory", "assembly name", "assembly version"} {
		assert.Contains(t, err.Error(), setting)
	}
}

func TestRun_EmbeddedModeKeepsDefaultsForBadOverrides(t *testing.T) {
	f := newFixture(t)
	f.logs.Reset()
	f.log = zerolog.New(f.logs).Level(zerolog.DebugLevel)

	opts := f.options()
	opts.ManifestType = "embedded"
	opts.Fields = manifest.Fields{
		"author":      "Jane",
		"name":        "Inline",
		"description": "d",
		"punchline":   "p",
		"api_level":   "not-a-number",
		"tags":        "a; b",
	}
	out, err := Run(opts, f.log)
	require.NoError(t, err)

	assert.Equal(t, manifest.SourceEmbedded, out.Source)
	assert.Equal(t, manifest.DefaultAPILevel, *out.Manifest.APILevel)
	assert.Equal(t, []string{"a", "b"}, out.Manifest.Tags)
	assert.Contains(t, f.logs.String(), "ignoring field override")
}

func TestRun_AutoModeEmbeddedFallback(t *testing.T) {
	f := newFixture(t)
	opts := f.options()
	opts.EmbeddedFallback = true
	opts.Fields = manifest.Fields{"author": "A", "name": "N", "description": "D", "punchline": "P"}

	out, err := Run(opts, f.log)
	require.NoError(t, err)
	assert.Equal(t, manifest.SourceEmbedded, out.Source)
}

func TestResolve_DoesNotWrite(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.project, assembly+".yaml", validYAML+"image_urls: [ftp://nope]\n")

	out, report, err := Resolve(f.options(), f.log)
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.NotEmpty(t, out.Warnings)
	assert.Empty(t, out.ManifestPath)
	assert.NoFileExists(t, f.manifestPath())
}

func TestResolve_DoesNotNeedOutputDir(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.project, assembly+".yaml", validYAML)
	opts := f.options()
	opts.OutputDir = ""

	out, _, err := Resolve(opts, f.log)
	require.NoError(t, err)
	assert.Equal(t, "Sample Plugin", out.Manifest.Name)
}

func TestResolve_ReturnsReportOnValidationFailure(t *testing.T) {
	f := newFixture(t)
	f.write(t, f.project, assembly+".yaml", "author: Jane\n")

	out, report, err := Resolve(f.options(), f.log)
	require.Error(t, err)
	require.NotNil(t, report)
	require.NotNil(t, out)
	assert.Equal(t, []string{"Name", "Description", "Punchline"}, report.Missing)
}

func TestOptionsNormalized(t *testing.T) {
	orig := Options{
		ProjectDir: `proj\sub/`,
		OutputDir:  "out/",
		Include:    []string{"a"},
	}
	n := orig.Normalized()

	assert.Equal(t, filepath.Join("proj", "sub"), n.ProjectDir)
	assert.Equal(t, "out", n.OutputDir)
	assert.Equal(t, DefaultImagesPath, n.ImagesPath)
	assert.Equal(t, DefaultVersionComponents, n.VersionComponents)

	n.Include[0] = "changed"
	assert.Equal(t, "a", orig.Include[0], "Normalized must not share slices with the original")
	assert.Equal(t, `proj\sub/`, orig.ProjectDir)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"a.dll", "sub/b.json"}, SplitList(" a.dll ;; sub/b.json;"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindIO, KindOf(errors.New("disk on fire")))
	assert.Equal(t, KindNotFound, KindOf(manifest.ErrNotFound))
	assert.Equal(t, KindValidation, KindOf(&manifest.ValidationError{Missing: []string{"Name"}}))
	assert.Equal(t, KindParse, KindOf(&manifest.ParseError{Err: errors.New("x")}))
	assert.Equal(t, KindConfig, KindOf(&manifest.ModeError{Value: "x"}))
}
