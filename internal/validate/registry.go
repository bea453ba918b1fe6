// Package validate implements the closed, process-global validator
// registry (spec §6c). Validators are pure functions of the matched
// substring; the registry is populated once, on the first call to
// Default, and is read-only thereafter, so it is safe to share across concurrent
// sanitize calls. Rule documents reference a validator by name — there is
// no mechanism for a rule document to register a new one.
package validate

import "sync"

// Func is a programmatic validator: given the raw matched text, it
// returns whether the match should be retained.
type Func func(matched string) bool

// Registry is a read-after-init, name-keyed validator lookup table.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register binds a validator to a name. Intended to be called only during
// process initialization (by Default's one-time setup or by a binary's
// own startup code registering additional built-ins); rule documents cannot
// reach this method.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Lookup returns the validator bound to name, or nil if none is
// registered. A nil return is not an error: the rule compiler treats a
// missing validator as "match always approved" (spec §4.3).
func (r *Registry) Lookup(name string) Func {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.funcs[name]
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry containing the validators
// that ship with this binary (us_ssn, uk_nino). It is built once, lazily,
// and is safe for concurrent use thereafter.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		defaultRegistry.Register("us_ssn", USSSN)
		defaultRegistry.Register("uk_nino", UKNINO)
	})
	return defaultRegistry
}
