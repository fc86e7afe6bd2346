// Package manifest loads, merges, validates and writes plugin manifests.
//
// A manifest is read from <stem>.json, <stem>.yaml or synthesized from
// inline field overrides, depending on the resolution Mode. Merge stamps
// the build-derived internal name and version onto it and applies static
// defaults; Validate reports every missing required field together with
// advisory warnings from an embedded JSON Schema. Write emits the canonical
// JSON form consumed by the archive step.
package manifest
