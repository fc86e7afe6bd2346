package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// RequiredFields lists the fields a manifest must carry, in report order.
var RequiredFields = []string{"Name", "Author", "Description", "Punchline"}

// Report is the outcome of validating a manifest. Missing fields are fatal;
// warnings are advisory.
type Report struct {
	Missing  []string
	Warnings []Warning
}

// Warning is a single advisory finding.
type Warning struct {
	Path    string // JSON pointer into the written manifest, e.g. "/ImageUrls"
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return w.Path + ": " + w.Message
}

// Valid reports whether no required field is missing.
func (r *Report) Valid() bool {
	return len(r.Missing) == 0
}

// Err returns a *ValidationError naming every missing field, or nil.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Missing: append([]string(nil), r.Missing...)}
}

// Validate checks the required fields, collecting every one that is
// missing, then gathers advisory warnings.
func Validate(m *Manifest) *Report {
	r := &Report{}
	values := map[string]string{
		"Name":        m.Name,
		"Author":      m.Author,
		"Description": m.Description,
		"Punchline":   m.Punchline,
	}
	for _, field := range RequiredFields {
		if strings.TrimSpace(values[field]) == "" {
			r.Missing = append(r.Missing, field)
		}
	}

	r.Warnings = append(r.Warnings, schemaWarnings(m)...)
	if v := m.MinimumRequiredVersion; v != "" {
		if _, err := semver.NewVersion(strings.TrimPrefix(v, "v")); err != nil {
			r.Warnings = append(r.Warnings, Warning{
				Path:    "/MinimumRequiredVersion",
				Message: fmt.Sprintf("%q is not a valid version: %v", v, err),
			})
		}
	}
	if v := strings.TrimSpace(m.ApplicableVersion); v != "" && !strings.EqualFold(v, DefaultApplicableVersion) {
		if _, err := semver.NewConstraint(v); err != nil {
			r.Warnings = append(r.Warnings, Warning{
				Path:    "/ApplicableVersion",
				Message: fmt.Sprintf("%q is neither %q nor a version constraint: %v", v, DefaultApplicableVersion, err),
			})
		}
	}
	return r
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("manifest.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// schemaWarnings validates the canonical JSON form of m against the
// embedded schema. Any failure, including an unusable schema, becomes a
// warning.
func schemaWarnings(m *Manifest) []Warning {
	schema, err := getSchema()
	if err != nil {
		return []Warning{{Message: fmt.Sprintf("schema unavailable: %v", err)}}
	}

	data, err := Encode(m)
	if err != nil {
		return []Warning{{Message: fmt.Sprintf("encoding manifest: %v", err)}}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []Warning{{Message: fmt.Sprintf("preparing JSON for validation: %v", err)}}
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Warning{{Message: err.Error()}}
	}

	var warnings []Warning
	collectWarnings(ve, &warnings)
	if len(warnings) == 0 {
		return []Warning{{Message: ve.Error()}}
	}
	return dedupe(warnings)
}

// collectWarnings walks the error tree and keeps leaf errors.
func collectWarnings(ve *jsonschema.ValidationError, out *[]Warning) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectWarnings(cause, out)
		}
		return
	}

	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	// Container errors carry no detail of their own.
	if keyword == "allOf" || keyword == "$ref" || keyword == "" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*out = append(*out, Warning{Path: path, Message: msg})
}

func dedupe(warnings []Warning) []Warning {
	seen := make(map[Warning]bool, len(warnings))
	var result []Warning
	for _, w := range warnings {
		if !seen[w] {
			seen[w] = true
			result = append(result, w)
		}
	}
	return result
}
