// Package scaffold generates starter plugin manifests from embedded
// templates. It powers the "plugpack init" command.
package scaffold
