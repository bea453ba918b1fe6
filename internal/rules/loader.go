package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Load parses a declarative rule document into an ordered sequence of Rule
// records. Boolean fields absent from the document default to false, which
// falls out of YAML's zero-value unmarshaling for bool.
//
// A structural parse failure yields a single MalformedDocumentError and no
// rules. Per-entry problems (missing name/pattern/replace_with, or a name
// duplicated within this document) yield a SchemaViolationError for that
// entry; the entry is omitted but its siblings still load. Both failure
// kinds are returned as warnings alongside whatever rules did load — the
// caller decides whether to treat them as fatal.
func Load(doc []byte, source string) ([]Rule, []error) {
	var parsed Document
	if err := yaml.Unmarshal(doc, &parsed); err != nil {
		return nil, []error{&MalformedDocumentError{Source: source, Err: err}}
	}

	seen := make(map[string]bool, len(parsed.Rules))
	out := make([]Rule, 0, len(parsed.Rules))
	var warnings []error

	for i, r := range parsed.Rules {
		if r.Name == "" {
			warnings = append(warnings, &SchemaViolationError{Source: source, Index: i, Reason: "missing required field \"name\""})
			continue
		}
		if r.Pattern == "" {
			warnings = append(warnings, &SchemaViolationError{Source: source, Index: i, Reason: fmt.Sprintf("rule %q: missing required field \"pattern\"", r.Name)})
			continue
		}
		if r.ReplaceWith == "" {
			warnings = append(warnings, &SchemaViolationError{Source: source, Index: i, Reason: fmt.Sprintf("rule %q: missing required field \"replace_with\"", r.Name)})
			continue
		}
		if seen[r.Name] {
			warnings = append(warnings, &SchemaViolationError{Source: source, Index: i, Reason: fmt.Sprintf("duplicate rule name %q within document", r.Name)})
			continue
		}
		seen[r.Name] = true
		r.Source = source
		out = append(out, r)
	}

	return out, warnings
}
