// Package cli defines the Cobra command tree for the plugpack CLI. Each file
// in this package registers one top-level command (pack, manifest, init,
// etc.) with the root command. Commands resolve settings through the config
// package and delegate the work to internal packages; they only handle flag
// parsing and output formatting.
package cli
