package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/plugpack-labs/plugpack/internal/platform"
)

// ErrIncludeExcludeConflict is returned when both an include and an exclude
// list are supplied.
var ErrIncludeExcludeConflict = errors.New("include and exclude lists are mutually exclusive")

// IconFileName is the well-known icon image.
const IconFileName = "icon.png"

// MaxScreenshots is the number of numbered screenshot images recognized.
const MaxScreenshots = 5

// WellKnownImages returns the image file names handled outside the archive:
// the icon followed by image1.png through image5.png.
func WellKnownImages() []string {
	names := []string{IconFileName}
	for i := 1; i <= MaxScreenshots; i++ {
		names = append(names, fmt.Sprintf("image%d.png", i))
	}
	return names
}

// SelectFiles returns the relative, slash-separated paths to archive.
//
// With an include list the entries are returned verbatim and are not
// checked for existence. Otherwise every regular file under dir, including
// symlinks to regular files, is enumerated and any path equal to an
// exclude entry is dropped. Matching is exact string comparison.
func SelectFiles(dir string, include, exclude []string) ([]string, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, ErrIncludeExcludeConflict
	}
	if len(include) > 0 {
		return append([]string(nil), include...), nil
	}

	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}

	fsys := os.DirFS(dir)
	var files []string
	err := doublestar.GlobWalk(fsys, "**", func(p string, d fs.DirEntry) error {
		if excluded[p] {
			return nil
		}
		regular, err := isRegularFile(fsys, p, d)
		if err != nil {
			return err
		}
		if regular {
			files = append(files, p)
		}
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// isRegularFile reports whether d is a regular file, following symlinks.
// A dangling link is an error.
func isRegularFile(fsys fs.FS, p string, d fs.DirEntry) (bool, error) {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular(), nil
	}
	info, err := fs.Stat(fsys, p)
	if err != nil {
		return false, fmt.Errorf("following link %s: %w", p, err)
	}
	return info.Mode().IsRegular(), nil
}

// withoutImages drops <imagesPath>/<name> for every well-known image.
func withoutImages(files []string, imagesPath string) []string {
	skip := make(map[string]bool)
	base := platform.SlashPath(imagesPath)
	for _, name := range WellKnownImages() {
		skip[path.Join(base, name)] = true
	}

	kept := files[:0:0]
	for _, f := range files {
		if !skip[f] {
			kept = append(kept, f)
		}
	}
	return kept
}
