// Package platform provides cross-platform filesystem helpers: separator
// normalization for user-supplied paths, permission management, and file
// copy/move operations with a copy fallback when a rename crosses
// filesystems. On Windows, Chmod is a no-op.
package platform
