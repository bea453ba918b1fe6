package rules

import _ "embed"

//go:embed defaults.yaml
var defaultsDocument []byte

// DefaultSource is the source label attached to every rule loaded from the
// embedded default document.
const DefaultSource = "embedded defaults"

// Defaults parses and returns the embedded default rule set. It never
// returns a MalformedDocumentError in practice since the document ships
// with the binary, but callers still receive any per-rule warnings so a
// bad edit to defaults.yaml surfaces during development rather than
// silently dropping a rule.
func Defaults() ([]Rule, []error) {
	return Load(defaultsDocument, DefaultSource)
}
