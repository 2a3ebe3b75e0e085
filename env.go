package lispy

import "sort"

// Env is one lexical frame: a table of bindings plus a link to the enclosing
// frame. Frames are shared by every closure that captured them and the outer
// link is fixed at construction, so the chain can never form a cycle.
type Env struct {
	outer *Env
	table map[string]Value
}

// NewEnv creates a frame binding params[i] to args[i] under outer (which may
// be nil for the global frame). Mismatched lengths fail with ArityMismatch.
func NewEnv(params []string, args []Value, outer *Env) (*Env, error) {
	if len(params) != len(args) {
		return nil, newError(KindArityMismatch, "expected %d argument(s), got %d", len(params), len(args))
	}
	e := &Env{outer: outer, table: make(map[string]Value, len(params))}
	for i, p := range params {
		e.table[p] = args[i]
	}
	return e, nil
}

// newFrame is NewEnv for callers that already know the lengths agree.
func newFrame(outer *Env) *Env {
	return &Env{outer: outer, table: make(map[string]Value)}
}

// Outer returns the enclosing frame, or nil for the global frame.
func (e *Env) Outer() *Env { return e.outer }

// Find returns the innermost frame, starting at e, that binds name.
func (e *Env) Find(name string) (*Env, error) {
	for f := e; f != nil; f = f.outer {
		if _, ok := f.table[name]; ok {
			return f, nil
		}
	}
	return nil, newError(KindUnboundSymbol, "%s", name)
}

// Get returns the value of the nearest visible binding of name.
func (e *Env) Get(name string) (Value, error) {
	f, err := e.Find(name)
	if err != nil {
		return Void, err
	}
	return f.table[name], nil
}

// Set overwrites the nearest existing binding of name. It never creates a
// binding; an unbound name fails with UnboundSymbol.
func (e *Env) Set(name string, v Value) error {
	f, err := e.Find(name)
	if err != nil {
		return err
	}
	f.table[name] = v
	return nil
}

// Define binds name in this frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Names lists every name visible from e, sorted and without duplicates.
func (e *Env) Names() []string {
	seen := map[string]struct{}{}
	var out []string
	for f := e; f != nil; f = f.outer {
		for k := range f.table {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
