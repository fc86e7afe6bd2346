package manifest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ListSeparator splits list-valued field overrides.
const ListSeparator = ";"

// Fields holds inline manifest overrides keyed by their YAML field names
// (e.g. "author", "api_level", "tags"). Values are raw strings.
type Fields map[string]string

// FieldIssue records an override that was not applied.
type FieldIssue struct {
	Key    string
	Value  string
	Reason string
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
	kindList
)

type fieldSpec struct {
	kind fieldKind
	set  func(m *Manifest, v any)
}

func stringField(f func(m *Manifest) *string) fieldSpec {
	return fieldSpec{kind: kindString, set: func(m *Manifest, v any) { *f(m) = v.(string) }}
}

func listField(f func(m *Manifest) *[]string) fieldSpec {
	return fieldSpec{kind: kindList, set: func(m *Manifest, v any) { *f(m) = v.([]string) }}
}

var fieldSpecs = map[string]fieldSpec{
	"author":                   stringField(func(m *Manifest) *string { return &m.Author }),
	"name":                     stringField(func(m *Manifest) *string { return &m.Name }),
	"internal_name":            stringField(func(m *Manifest) *string { return &m.InternalName }),
	"assembly_version":         stringField(func(m *Manifest) *string { return &m.AssemblyVersion }),
	"description":              stringField(func(m *Manifest) *string { return &m.Description }),
	"punchline":                stringField(func(m *Manifest) *string { return &m.Punchline }),
	"changelog":                stringField(func(m *Manifest) *string { return &m.Changelog }),
	"applicable_version":       stringField(func(m *Manifest) *string { return &m.ApplicableVersion }),
	"minimum_required_version": stringField(func(m *Manifest) *string { return &m.MinimumRequiredVersion }),
	"repo_url":                 stringField(func(m *Manifest) *string { return &m.RepoURL }),
	"icon_url":                 stringField(func(m *Manifest) *string { return &m.IconURL }),
	"feedback_message":         stringField(func(m *Manifest) *string { return &m.FeedbackMessage }),

	"api_level":     {kind: kindInt, set: func(m *Manifest, v any) { m.APILevel = ptr(v.(int)) }},
	"load_priority": {kind: kindInt, set: func(m *Manifest, v any) { m.LoadPriority = ptr(v.(int)) }},
	"load_required_state": {kind: kindInt, set: func(m *Manifest, v any) {
		m.LoadRequiredState = ptr(LoadRequiredState(v.(int)))
	}},

	"load_sync":        {kind: kindBool, set: func(m *Manifest, v any) { m.LoadSync = ptr(v.(bool)) }},
	"can_unload_async": {kind: kindBool, set: func(m *Manifest, v any) { m.CanUnloadAsync = ptr(v.(bool)) }},
	"accepts_feedback": {kind: kindBool, set: func(m *Manifest, v any) { m.AcceptsFeedback = ptr(v.(bool)) }},

	"tags":          listField(func(m *Manifest) *[]string { return &m.Tags }),
	"category_tags": listField(func(m *Manifest) *[]string { return &m.CategoryTags }),
	"image_urls":    listField(func(m *Manifest) *[]string { return &m.ImageURLs }),
}

// FieldNames returns every accepted override key, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(fieldSpecs))
	for name := range fieldSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Synthesize builds a manifest from defaults overlaid with f. Empty values
// keep the default. Integer and boolean values that fail to parse also keep
// the default; they, and unknown keys, are returned as issues rather than
// errors.
func (f Fields) Synthesize() (*Manifest, []FieldIssue) {
	m := New()
	var issues []FieldIssue

	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := f[key]
		spec, ok := fieldSpecs[strings.ToLower(key)]
		if !ok {
			issues = append(issues, FieldIssue{Key: key, Value: raw, Reason: "unknown field"})
			continue
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}

		switch spec.kind {
		case kindString:
			spec.set(m, raw)
		case kindInt:
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				issues = append(issues, FieldIssue{Key: key, Value: raw, Reason: "not an integer"})
				continue
			}
			spec.set(m, n)
		case kindBool:
			b, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				issues = append(issues, FieldIssue{Key: key, Value: raw, Reason: "not a boolean"})
				continue
			}
			spec.set(m, b)
		case kindList:
			spec.set(m, splitList(raw))
		}
	}

	return m, issues
}

// ParseFieldAssignments turns "key=value" strings into Fields. Later
// assignments to the same key win.
func ParseFieldAssignments(assignments []string) (Fields, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	f := make(Fields, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field override %q: expected key=value", a)
		}
		f[strings.ToLower(key)] = value
	}
	return f, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ListSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
