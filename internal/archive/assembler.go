package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/plugpack-labs/plugpack/internal/platform"
)

// ArchiveFileName is the name of the archive inside the bundle directory.
const ArchiveFileName = "latest.zip"

// ImagesDirName is the bundle subdirectory that receives well-known images.
const ImagesDirName = "images"

// Config describes one assembly run. It is treated as immutable.
type Config struct {
	OutputDir    string   // build output; also where the bundle directory is created
	AssemblyName string   // names the bundle directory and the manifest file
	Include      []string // relative paths to archive verbatim
	Exclude      []string // relative paths to leave out of the enumeration
	HandleImages bool     // copy well-known images beside the archive instead of into it
	ImagesPath   string   // images directory, relative to OutputDir
	TempDir      string   // where the archive is written before the move; "" means os.TempDir
}

// BundleDir returns <OutputDir>/<AssemblyName>.
func (c Config) BundleDir() string {
	return filepath.Join(c.OutputDir, c.AssemblyName)
}

// ManifestPath returns the canonical manifest the bundle copies.
func (c Config) ManifestPath() string {
	return filepath.Join(c.OutputDir, c.AssemblyName+".json")
}

// Result describes a finished bundle.
type Result struct {
	BundleDir   string
	ArchivePath string
	Entries     []string // archive entry names, in write order
	Images      []string // image file names copied into the bundle
}

// Assemble builds the bundle described by cfg. Include/exclude conflicts
// are rejected before anything on disk changes. On an I/O failure the
// bundle directory may be incomplete and the temporary archive is left
// behind, but latest.zip is never published without its manifest.
func Assemble(cfg Config) (*Result, error) {
	if len(cfg.Include) > 0 && len(cfg.Exclude) > 0 {
		return nil, ErrIncludeExcludeConflict
	}

	bundleDir := cfg.BundleDir()
	if err := os.RemoveAll(bundleDir); err != nil {
		return nil, fmt.Errorf("removing existing bundle %s: %w", bundleDir, err)
	}

	files, err := SelectFiles(cfg.OutputDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if cfg.HandleImages {
		files = withoutImages(files, cfg.ImagesPath)
	}

	tmpPath, err := writeZip(cfg.TempDir, cfg.OutputDir, files)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(bundleDir, 0755); err != nil {
		return nil, fmt.Errorf("creating bundle directory %s: %w", bundleDir, err)
	}
	manifestSrc := cfg.ManifestPath()
	if err := platform.CopyFile(manifestSrc, filepath.Join(bundleDir, filepath.Base(manifestSrc))); err != nil {
		return nil, fmt.Errorf("copying manifest %s: %w", manifestSrc, err)
	}

	var images []string
	if cfg.HandleImages {
		images, err = copyImages(filepath.Join(cfg.OutputDir, platform.NormalizePath(cfg.ImagesPath)), filepath.Join(bundleDir, ImagesDirName))
		if err != nil {
			return nil, err
		}
	}

	archivePath := filepath.Join(bundleDir, ArchiveFileName)
	if err := platform.MoveFile(tmpPath, archivePath); err != nil {
		return nil, fmt.Errorf("publishing archive: %w", err)
	}

	return &Result{
		BundleDir:   bundleDir,
		ArchivePath: archivePath,
		Entries:     files,
		Images:      images,
	}, nil
}

// writeZip writes files (relative to root) into a new zip in tmpDir and
// returns its path. The file is closed before returning.
func writeZip(tmpDir, root string, files []string) (string, error) {
	tmp, err := os.CreateTemp(tmpDir, "plugpack-*.zip")
	if err != nil {
		return "", fmt.Errorf("creating temporary archive: %w", err)
	}
	tmpPath := tmp.Name()

	zw := zip.NewWriter(tmp)
	for _, rel := range files {
		if err := addFile(zw, root, rel); err != nil {
			zw.Close()
			tmp.Close()
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("finalizing archive %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing archive %s: %w", tmpPath, err)
	}
	return tmpPath, nil
}

func addFile(zw *zip.Writer, root, rel string) error {
	src := filepath.Join(root, filepath.FromSlash(rel))
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", rel, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("archiving %s: %w", rel, err)
	}
	if info.IsDir() {
		return fmt.Errorf("archiving %s: is a directory", rel)
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", rel, err)
	}
	hdr.Name = rel
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", rel, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("archiving %s: %w", rel, err)
	}
	return nil
}

// copyImages copies every well-known image present in srcDir into dstDir,
// creating dstDir only when there is at least one image.
func copyImages(srcDir, dstDir string) ([]string, error) {
	var copied []string
	for _, name := range WellKnownImages() {
		src := filepath.Join(srcDir, name)
		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("checking image %s: %w", src, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		if len(copied) == 0 {
			if err := os.MkdirAll(dstDir, 0755); err != nil {
				return copied, fmt.Errorf("creating images directory %s: %w", dstDir, err)
			}
		}
		if err := platform.CopyFile(src, filepath.Join(dstDir, name)); err != nil {
			return copied, fmt.Errorf("copying image %s: %w", src, err)
		}
		copied = append(copied, name)
	}
	return copied, nil
}
