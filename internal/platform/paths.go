package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath rewrites p to use the host's directory separator and drops
// any trailing separators. Both '/' and '\' are accepted as separators so
// paths written on one platform resolve on another. A bare root ("/" or
// "C:\") keeps its separator. The empty string maps to itself.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	sep := string(os.PathSeparator)
	p = strings.NewReplacer("/", sep, `\`, sep).Replace(p)

	trimmed := strings.TrimRight(p, sep)
	if trimmed == "" {
		return sep
	}
	if vol := filepath.VolumeName(trimmed); vol != "" && vol == trimmed && len(trimmed) < len(p) {
		return trimmed + sep
	}
	return trimmed
}

// SlashPath returns p in forward-slash form with no trailing slash. Archive
// entry names and include/exclude lists are compared in this form.
func SlashPath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
