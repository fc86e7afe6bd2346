package platform

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func native(p string) string {
	return strings.ReplaceAll(p, "/", string(filepath.Separator))
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "bin/Release", native("bin/Release")},
		{"backslashes", `bin\Release\net8`, native("bin/Release/net8")},
		{"mixed", `bin/Release\net8`, native("bin/Release/net8")},
		{"trailing slash", "out/", native("out")},
		{"trailing backslashes", `out\\`, native("out")},
		{"root", "/", native("/")},
		{"single name", "images", "images"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestNormalizePathVolumeRoot(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("volume names only exist on Windows")
	}
	assert.Equal(t, `C:\`, NormalizePath("C:/"))
}

func TestNormalizePathProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.StringMatching(`[a-z/\\]{0,20}`).Draw(t, "path")
		out := NormalizePath(in)

		other := "/"
		if filepath.Separator == '/' {
			other = `\`
		}
		if strings.Contains(out, other) {
			t.Fatalf("NormalizePath(%q) = %q still contains %q", in, out, other)
		}
		if len(out) > 1 && strings.HasSuffix(out, string(filepath.Separator)) && filepath.VolumeName(out) == "" {
			t.Fatalf("NormalizePath(%q) = %q has a trailing separator", in, out)
		}
		if NormalizePath(out) != out {
			t.Fatalf("NormalizePath not idempotent for %q", in)
		}
	})
}

func TestSlashPath(t *testing.T) {
	assert.Equal(t, "", SlashPath(""))
	assert.Equal(t, "images", SlashPath(`images\`))
	assert.Equal(t, "assets/images", SlashPath(`assets\images`))
	assert.Equal(t, "/", SlashPath("//"))
}
