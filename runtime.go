// runtime.go
//
// Construction of the global environment. Built-ins are ordinary bindings in
// the global frame, so the evaluator has no special cases for them and user
// code may redefine them.
package lispy

// NewGlobalEnv returns a fresh global environment holding every built-in:
// arithmetic, comparison, boolean, list and math procedures plus #t and #f.
func NewGlobalEnv() *Env {
	env := newFrame(nil)
	registerCoreBuiltins(env)
	registerListBuiltins(env)
	registerMathBuiltins(env)
	return env
}

// primDefiner returns a helper that binds host functions into env as
// primitives. max < 0 means variadic.
func primDefiner(env *Env) func(name string, min, max int, fn func([]Value) (Value, error)) {
	return func(name string, min, max int, fn func([]Value) (Value, error)) {
		env.Define(name, PrimVal(&Primitive{Name: name, MinArgs: min, MaxArgs: max, Fn: fn}))
	}
}
