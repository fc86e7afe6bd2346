// Package archive assembles the distributable bundle for a build: it zips
// the build output into latest.zip and stages it, with the canonical
// manifest and well-known images, into <output>/<assembly>/.
//
// The archive is written to a temporary file and moved into the bundle
// directory only after the manifest and images are in place, so a visible
// latest.zip always has its manifest next to it.
package archive
