//go:build integration

package integration_test

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const assemblyName = "SamplePlugin"

// testEnv holds paths to an isolated plugin project and its build output.
type testEnv struct {
	ProjectDir string // holds SamplePlugin.json / .yaml and plugpack.yaml
	OutputDir  string // mock build output (bin/Release)
	TempDir    string // archive staging directory
	Logs       *strings.Builder
	Log        zerolog.Logger
}

// setupTestEnv creates a project with a mock build output: the plugin
// assembly, a dependency in a subdirectory, a debug symbol file, and the
// well-known images.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logs := &strings.Builder{}
	env := &testEnv{
		ProjectDir: t.TempDir(),
		OutputDir:  t.TempDir(),
		TempDir:    t.TempDir(),
		Logs:       logs,
		Log:        zerolog.New(logs),
	}

	writeFile(t, filepath.Join(env.OutputDir, assemblyName+".dll"), "assembly bytes")
	writeFile(t, filepath.Join(env.OutputDir, assemblyName+".pdb"), "symbols")
	writeFile(t, filepath.Join(env.OutputDir, "deps", "Newtonsoft.Json.dll"), "dependency")
	writeFile(t, filepath.Join(env.OutputDir, "images", "icon.png"), "icon")
	writeFile(t, filepath.Join(env.OutputDir, "images", "image1.png"), "shot 1")
	writeFile(t, filepath.Join(env.OutputDir, "images", "notes.txt"), "not an image")

	return env
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// zipContents returns the archive's entries mapped to their content.
func zipContents(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer r.Close()

	out := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
