package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName returns the manifest file name for an assembly.
func FileName(assemblyName string) string {
	return assemblyName + ".json"
}

// Encode renders m as two-space indented JSON with "\n" line endings and a
// single trailing newline. Absent fields are omitted.
func Encode(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	out := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
	return out, nil
}

// Write encodes m to <outputDir>/<assemblyName>.json, replacing any
// existing file, and returns the path written.
func Write(m *Manifest, outputDir, assemblyName string) (string, error) {
	data, err := Encode(m)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	path := filepath.Join(outputDir, FileName(assemblyName))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return path, nil
}
