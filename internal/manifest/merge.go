package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxVersionComponents is the largest component count FormatVersion accepts.
const MaxVersionComponents = 4

// Derived carries the build-derived values the merger stamps onto every
// manifest.
type Derived struct {
	InternalName string
	Version      string
	Components   int
}

// FormatVersion renders version with exactly components dot-separated
// numeric parts. A leading "v" and any "-prerelease" or "+build" suffix are
// dropped. Longer versions are truncated and shorter ones padded with "0".
func FormatVersion(version string, components int) (string, error) {
	if components < 1 || components > MaxVersionComponents {
		return "", fmt.Errorf("%w: got %d", ErrVersionComponents, components)
	}

	v := strings.TrimSpace(version)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if i := strings.IndexAny(v, "+-"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return "", fmt.Errorf("%w: %q is empty", ErrInvalidVersion, version)
	}

	parts := strings.Split(v, ".")
	nums := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return "", fmt.Errorf("%w: component %q of %q is not a number", ErrInvalidVersion, p, version)
		}
		nums[i] = n
	}

	out := make([]string, components)
	for i := range out {
		if i < len(nums) {
			out[i] = strconv.FormatUint(nums[i], 10)
		} else {
			out[i] = "0"
		}
	}
	return strings.Join(out, "."), nil
}

// Merge overwrites the derived fields of m, applies static defaults and
// validates the result. The error return covers malformed derived input
// only; missing fields are reported in the Report.
func Merge(m *Manifest, d Derived) (*Report, error) {
	version, err := FormatVersion(d.Version, d.Components)
	if err != nil {
		return nil, err
	}

	m.InternalName = d.InternalName
	m.AssemblyVersion = version
	ApplyDefaults(m)

	return Validate(m), nil
}
