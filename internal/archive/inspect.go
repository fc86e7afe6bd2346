package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry is one file stored in a bundle archive.
type Entry struct {
	Name string
	Size uint64 // uncompressed
}

// Contents describes an assembled bundle directory.
type Contents struct {
	BundleDir    string
	ManifestPath string
	Entries      []Entry
	Images       []string
}

// Inspect reads a bundle directory produced by Assemble. The manifest is
// expected at <bundleDir>/<base name of bundleDir>.json.
func Inspect(bundleDir string) (*Contents, error) {
	bundleDir = filepath.Clean(bundleDir)
	c := &Contents{
		BundleDir:    bundleDir,
		ManifestPath: filepath.Join(bundleDir, filepath.Base(bundleDir)+".json"),
	}
	if _, err := os.Stat(c.ManifestPath); err != nil {
		return nil, fmt.Errorf("bundle manifest: %w", err)
	}

	archivePath := filepath.Join(bundleDir, ArchiveFileName)
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", archivePath, err)
	}
	defer r.Close()
	for _, f := range r.File {
		c.Entries = append(c.Entries, Entry{Name: f.Name, Size: f.UncompressedSize64})
	}

	imagesDir := filepath.Join(bundleDir, ImagesDirName)
	for _, name := range WellKnownImages() {
		_, err := os.Stat(filepath.Join(imagesDir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking image %s: %w", name, err)
		}
		c.Images = append(c.Images, name)
	}
	return c, nil
}
