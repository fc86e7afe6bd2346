package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/plugpack-labs/plugpack/internal/manifest"
)

// Supported starter formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ManifestData holds the values substituted into a starter manifest.
type ManifestData struct {
	AssemblyName string
	Author       string
	Name         string
	Punchline    string
	Description  string
	RepoURL      string
}

// NewManifestData fills placeholder text for anything the caller left empty.
func NewManifestData(assemblyName, author string) *ManifestData {
	if author == "" {
		author = "Your Name"
	}
	return &ManifestData{
		AssemblyName: assemblyName,
		Author:       author,
		Name:         assemblyName,
		Punchline:    fmt.Sprintf("%s in one line.", assemblyName),
		Description:  fmt.Sprintf("A longer description of what %s does.", assemblyName),
	}
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	Path     string
	Warnings []string
}

// Generate writes <dir>/<AssemblyName>.<format> from the embedded template.
// It refuses to overwrite an existing manifest in either format.
func Generate(format string, data *ManifestData, dir string) (*Result, error) {
	if format != FormatYAML && format != FormatJSON {
		return nil, fmt.Errorf("unsupported format %q: must be %q or %q", format, FormatYAML, FormatJSON)
	}
	if data.AssemblyName == "" {
		return nil, errors.New("assembly name is required")
	}

	for _, ext := range []string{FormatJSON, FormatYAML} {
		existing := filepath.Join(dir, data.AssemblyName+"."+ext)
		if _, err := os.Stat(existing); err == nil {
			return nil, fmt.Errorf("manifest %s already exists; remove it first", existing)
		}
	}

	tmplPath := path.Join("scaffolds", "manifest."+format+".tmpl")
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(tmplPath).Funcs(template.FuncMap{"quote": quote}).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	outPath := filepath.Join(dir, data.AssemblyName+"."+format)
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outPath, err)
	}

	result := &Result{Path: outPath}

	// Check the generated manifest the same way the packager will.
	var m *manifest.Manifest
	if format == FormatJSON {
		m, err = manifest.ParseJSON(buf.Bytes())
	} else {
		m, err = manifest.ParseYAML(buf.Bytes())
	}
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not parse generated manifest: %v", err))
		return result, nil
	}
	report := manifest.Validate(m)
	for _, field := range report.Missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s is empty", field))
	}
	for _, w := range report.Warnings {
		result.Warnings = append(result.Warnings, w.String())
	}

	return result, nil
}

// quote renders s as a JSON string literal, which is also a valid YAML
// double-quoted scalar.
func quote(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
