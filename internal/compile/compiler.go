// Package compile turns accepted Rule records into a CompiledRuleSet: each
// rule's pattern compiled into a regexp.Regexp bound to its replacement
// template and, for rules flagged programmatic_validation, a validator
// reference resolved from the validator registry.
package compile

import (
	"fmt"
	"regexp"
	"regexp/syntax"

	"cleanstream/internal/rules"
	"cleanstream/internal/validate"
)

// DefaultMaxProgramSize bounds the compiled regex program size (spec
// §4.3's "per-pattern compiled-size ceiling"). The stdlib regexp package
// does not expose a compiled byte size, so this is approximated as the
// instruction count from regexp/syntax times an estimated bytes-per-
// instruction figure; it is a guard against pathological patterns, not an
// exact accounting.
const DefaultMaxProgramSize = 10 * 1024 * 1024

const estimatedBytesPerInst = 32

// CompiledRule is the result of compiling one Rule.
type CompiledRule struct {
	Name                   string
	Matcher                *regexp.Regexp
	ReplaceWith            string
	OptIn                  bool
	ProgrammaticValidation bool
	Validator              validate.Func // nil if none registered for Name
}

// CompiledRuleSet is an ordered, immutable sequence of CompiledRules. Rule
// order fixes the resolver's ultimate tie-break (spec §4.5).
type CompiledRuleSet struct {
	Rules []CompiledRule
}

// PatternCompilationError is a warning: the named rule's pattern failed to
// compile, or otherwise failed a compile-time policy check (size cap,
// matches-empty-string rejection). The rule is dropped; compilation
// continues with the remaining rules.
type PatternCompilationError struct {
	Name string
	Err  error
}

func (e *PatternCompilationError) Error() string {
	return fmt.Sprintf("compile: rule %q: %v", e.Name, e.Err)
}

func (e *PatternCompilationError) Unwrap() error { return e.Err }

// Compiler compiles an active rule list into a CompiledRuleSet.
type Compiler struct {
	// MaxProgramSize overrides DefaultMaxProgramSize when positive.
	MaxProgramSize int
	// Registry overrides validate.Default() when non-nil.
	Registry *validate.Registry
}

// NewCompiler returns a Compiler using the default size cap and the
// built-in validator registry.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile compiles each active rule in order. A rule that fails to
// compile, exceeds the size cap, or can match an empty substring (spec §9
// open question: such rules are rejected at compile time) is skipped with
// a PatternCompilationError; it never aborts compilation of the rest.
func (c *Compiler) Compile(active []rules.Rule) (*CompiledRuleSet, []error) {
	maxSize := c.MaxProgramSize
	if maxSize <= 0 {
		maxSize = DefaultMaxProgramSize
	}
	registry := c.Registry
	if registry == nil {
		registry = validate.Default()
	}

	compiled := make([]CompiledRule, 0, len(active))
	var warnings []error

	for _, r := range active {
		full := inlineFlags(r) + r.Pattern

		parsed, err := syntax.Parse(full, syntax.Perl)
		if err != nil {
			warnings = append(warnings, &PatternCompilationError{Name: r.Name, Err: err})
			continue
		}
		prog, err := syntax.Compile(parsed)
		if err != nil {
			warnings = append(warnings, &PatternCompilationError{Name: r.Name, Err: err})
			continue
		}
		if size := len(prog.Inst) * estimatedBytesPerInst; size > maxSize {
			warnings = append(warnings, &PatternCompilationError{
				Name: r.Name,
				Err:  fmt.Errorf("compiled program size %d bytes exceeds cap %d bytes", size, maxSize),
			})
			continue
		}

		re, err := regexp.Compile(full)
		if err != nil {
			warnings = append(warnings, &PatternCompilationError{Name: r.Name, Err: err})
			continue
		}
		if loc := re.FindStringIndex(""); loc != nil {
			warnings = append(warnings, &PatternCompilationError{
				Name: r.Name,
				Err:  fmt.Errorf("pattern can match an empty substring"),
			})
			continue
		}

		cr := CompiledRule{
			Name:                   r.Name,
			Matcher:                re,
			ReplaceWith:            r.ReplaceWith,
			OptIn:                  r.OptIn,
			ProgrammaticValidation: r.ProgrammaticValidation,
		}
		if r.ProgrammaticValidation {
			cr.Validator = registry.Lookup(r.Name)
		}
		compiled = append(compiled, cr)
	}

	return &CompiledRuleSet{Rules: compiled}, warnings
}

func inlineFlags(r rules.Rule) string {
	switch {
	case r.Multiline && r.DotMatchesNewLine:
		return "(?ms)"
	case r.Multiline:
		return "(?m)"
	case r.DotMatchesNewLine:
		return "(?s)"
	default:
		return ""
	}
}
