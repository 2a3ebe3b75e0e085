// interpreter.go: the public entry point for embedding the interpreter.
//
// An Interpreter owns one persistent global environment. Every top-level
// evaluation holds the interpreter's lock, so concurrent callers (the MCP
// server handles requests on several goroutines) are serialized and never
// mutate the environment chain at the same time. The package-level Eval and
// Read functions stay available for callers that manage their own Env and
// their own synchronization.
//
// Failures are all-or-nothing per top-level expression, with one documented
// exception: define/set! effects committed before the failing step are kept.
package lispy

import (
	"context"
	"sync"

	"github.com/masahitojp/lispy3/internal/debug"
)

// Version is reported by the CLI.
var Version = "0.3.0"

// Interpreter evaluates source against a persistent global environment.
type Interpreter struct {
	mu       sync.Mutex
	global   *Env
	maxDepth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMaxDepth caps evaluation depth; deeper recursion fails with
// DepthExceeded instead of growing the Go stack. 0 means no cap.
func WithMaxDepth(n int) Option {
	return func(ip *Interpreter) { ip.maxDepth = n }
}

// WithTrace installs fn as the evaluator's trace sink (process-wide).
func WithTrace(fn func(...interface{})) Option {
	return func(*Interpreter) { debug.SetLogger(fn) }
}

// NewInterpreter returns an interpreter whose global environment holds the
// built-ins.
func NewInterpreter(opts ...Option) *Interpreter {
	ip := &Interpreter{global: NewGlobalEnv()}
	for _, o := range opts {
		o(ip)
	}
	return ip
}

// Reset discards every user binding by replacing the global environment.
func (ip *Interpreter) Reset() {
	ip.mu.Lock()
	ip.global = NewGlobalEnv()
	ip.mu.Unlock()
}

// Names lists the names bound in the global environment, sorted.
func (ip *Interpreter) Names() []string {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.global.Names()
}

// RegisterPrimitive binds a host function in the global environment.
// max < 0 means variadic.
func (ip *Interpreter) RegisterPrimitive(name string, min, max int, fn func([]Value) (Value, error)) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	primDefiner(ip.global)(name, min, max, fn)
}

// Eval evaluates one expression in the global environment.
func (ip *Interpreter) Eval(x Value) (Value, error) {
	return ip.EvalContext(context.Background(), x)
}

// EvalContext is Eval with cooperative cancellation.
func (ip *Interpreter) EvalContext(ctx context.Context, x Value) (Value, error) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	return ip.eval(ctx, x)
}

// EvalSource reads every top-level expression in src and evaluates them in
// order, returning the last value (Void for empty input). Nothing is
// evaluated if src does not read cleanly.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.EvalSourceContext(context.Background(), src)
}

// EvalSourceContext is EvalSource with cooperative cancellation.
func (ip *Interpreter) EvalSourceContext(ctx context.Context, src string) (Value, error) {
	last := Void
	err := ip.EvalSourceEach(ctx, src, func(_, v Value) { last = v })
	if err != nil {
		return Void, err
	}
	return last, nil
}

// EvalSourceEach is EvalSourceContext calling visit with each top-level
// expression and its value. It stops at the first failure; visit still sees
// every expression evaluated before it. visit runs after the interpreter's
// lock is released, so it may call back into ip.
func (ip *Interpreter) EvalSourceEach(ctx context.Context, src string, visit func(x, v Value)) error {
	xs, err := ReadAll(src)
	if err != nil {
		return err
	}
	vs, err := ip.evalAll(ctx, xs)
	if visit != nil {
		for i, v := range vs {
			visit(xs[i], v)
		}
	}
	return err
}

func (ip *Interpreter) evalAll(ctx context.Context, xs []Value) ([]Value, error) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	vs := make([]Value, 0, len(xs))
	for _, x := range xs {
		v, err := ip.eval(ctx, x)
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

func (ip *Interpreter) eval(ctx context.Context, x Value) (Value, error) {
	ev := &evaluator{ctx: ctx, maxDepth: ip.maxDepth}
	return ev.eval(x, ip.global)
}
