// Package rules parses declarative redaction rule documents and composes
// the active rule set from defaults, user overlays, and enable/disable
// lists. It performs no regex compilation; see internal/compile for that.
package rules

// Rule is a named, declarative redaction directive as loaded from a rule
// document. It is immutable once loaded.
type Rule struct {
	Name                   string `yaml:"name"`
	Pattern                string `yaml:"pattern"`
	ReplaceWith            string `yaml:"replace_with"`
	Description            string `yaml:"description,omitempty"`
	Multiline              bool   `yaml:"multiline"`
	DotMatchesNewLine      bool   `yaml:"dot_matches_new_line"`
	OptIn                  bool   `yaml:"opt_in"`
	ProgrammaticValidation bool   `yaml:"programmatic_validation"`

	// Source labels the document this rule came from (file path, "embedded
	// defaults", etc.), used only for diagnostics.
	Source string `yaml:"-"`
}

// Document is the top-level shape of a rule document: a list under the
// `rules` key.
type Document struct {
	Rules []Rule `yaml:"rules"`
}

// ActiveSet selects how opt-in rules are treated during composition.
type ActiveSet string

const (
	// ActiveSetDefault leaves opt-in rules inactive unless explicitly
	// enabled by name.
	ActiveSetDefault ActiveSet = "default"
	// ActiveSetStrict activates every rule, including opt-in ones.
	ActiveSetStrict ActiveSet = "strict"
)
