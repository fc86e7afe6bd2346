// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's //go:embed
// bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	EnvPrefix   string `yaml:"env_prefix"`
	ConfigName  string `yaml:"config_name"`
	GitHubRepo  string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "plugpack",
			DisplayName: "PlugPack",
			Description: "Post-build manifest and archive packager for plugins",
			EnvPrefix:   "PLUGPACK",
			ConfigName:  "plugpack",
			GitHubRepo:  "plugpack-labs/plugpack",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "plugpack").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "PlugPack").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "PLUGPACK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigName returns the base name of the per-project config file
// (e.g., "plugpack" for plugpack.yaml).
func ConfigName() string { load(); return defaults.ConfigName }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log-level") → "PLUGPACK_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	suffix = strings.ReplaceAll(suffix, "-", "_")
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
