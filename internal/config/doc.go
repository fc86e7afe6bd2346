// Package config resolves packaging settings from command-line flags,
// PLUGPACK_* environment variables and an optional plugpack.yaml in the
// project directory, and turns them into pack.Options.
package config
