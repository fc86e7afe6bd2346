// Package pack runs the post-build packaging pipeline: load the manifest,
// merge build-derived fields, validate, write the canonical JSON and,
// optionally, assemble the bundle. Each run is driven by one immutable
// Options value.
package pack
