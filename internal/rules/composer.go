package rules

import "fmt"

// UnknownRuleNameError is a warning: a name supplied in an enable or
// disable list does not match any rule in the merged set. It never
// prevents composition from proceeding.
type UnknownRuleNameError struct {
	Name string
	List string // "enable" or "disable"
}

func (e *UnknownRuleNameError) Error() string {
	return fmt.Sprintf("rules: unknown rule name %q in %s list", e.Name, e.List)
}

// Merge combines a default rule set with an optional user rule set. A user
// rule with the same name as a default wholly replaces it, in place; a
// user rule with a new name is appended after the defaults, in the order
// it appeared in the user document. The result preserves this merged
// document order, which is the tie-break the resolver ultimately falls
// back on (spec §4.5).
func Merge(defaults, user []Rule) []Rule {
	merged := make([]Rule, len(defaults))
	copy(merged, defaults)

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.Name] = i
	}

	for _, r := range user {
		if i, ok := index[r.Name]; ok {
			merged[i] = r
			continue
		}
		index[r.Name] = len(merged)
		merged = append(merged, r)
	}

	return merged
}

// Compose applies the enable/disable lists and the active-set selector to
// a merged rule list, yielding the rules that should go on to compilation.
//
// A rule is candidate-active if it is not opt-in, or if it is opt-in and
// either its name was explicitly enabled or selector is ActiveSetStrict. A
// candidate-active rule is filtered out if its name appears in disable —
// disable always wins over enable. Names in enable/disable that match no
// rule in merged are reported as warnings and otherwise ignored.
func Compose(merged []Rule, enable, disable []string, selector ActiveSet) ([]Rule, []error) {
	names := make(map[string]bool, len(merged))
	for _, r := range merged {
		names[r.Name] = true
	}

	var warnings []error
	enabled := make(map[string]bool, len(enable))
	for _, n := range enable {
		enabled[n] = true
		if !names[n] {
			warnings = append(warnings, &UnknownRuleNameError{Name: n, List: "enable"})
		}
	}
	disabled := make(map[string]bool, len(disable))
	for _, n := range disable {
		disabled[n] = true
		if !names[n] {
			warnings = append(warnings, &UnknownRuleNameError{Name: n, List: "disable"})
		}
	}

	active := make([]Rule, 0, len(merged))
	for _, r := range merged {
		candidateActive := !r.OptIn || enabled[r.Name] || selector == ActiveSetStrict
		if candidateActive && !disabled[r.Name] {
			active = append(active, r)
		}
	}

	return active, warnings
}
