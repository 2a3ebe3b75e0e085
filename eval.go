// eval.go
//
// The evaluator. A list whose first element is one of the keywords below is a
// special form; any other list is an application. Keywords are recognized by
// the literal symbol in head position and cannot be shadowed.
//
//	(quote e)                 e, unevaluated
//	(if test conseq alt)      only #f selects alt
//	(set! var exp)            overwrite nearest binding; no value
//	(define var exp)          bind in the current frame; no value
//	(lambda (params...) body) closure over the current frame
//	(begin e1 ... en)         value of en; at least one expression
//
// Recursion uses the Go call stack. Unless a depth cap is configured, very
// deep recursion is bounded only by the host stack.
package lispy

import (
	"context"
	"fmt"

	"github.com/masahitojp/lispy3/internal/debug"
)

type formKind int

const (
	formApply formKind = iota
	formQuote
	formIf
	formSet
	formDefine
	formLambda
	formBegin
)

var keywords = map[string]formKind{
	"quote":  formQuote,
	"if":     formIf,
	"set!":   formSet,
	"define": formDefine,
	"lambda": formLambda,
	"begin":  formBegin,
}

// Keywords lists the special-form keywords (used for completion).
func Keywords() []string {
	return []string{"begin", "define", "if", "lambda", "quote", "set!"}
}

func classify(items []Value) formKind {
	if len(items) > 0 && items[0].IsSymbol() {
		if k, ok := keywords[items[0].SymbolName()]; ok {
			return k
		}
	}
	return formApply
}

type evaluator struct {
	ctx      context.Context
	maxDepth int
	depth    int
}

// Eval evaluates x in env.
func Eval(x Value, env *Env) (Value, error) {
	return EvalContext(context.Background(), x, env)
}

// EvalContext is Eval with cooperative cancellation: ctx is checked before
// every recursive step and a cancelled ctx fails with Interrupted.
func EvalContext(ctx context.Context, x Value, env *Env) (Value, error) {
	ev := &evaluator{ctx: ctx}
	return ev.eval(x, env)
}

// Apply calls a procedure value with already-evaluated arguments.
func Apply(proc Value, args []Value) (Value, error) {
	ev := &evaluator{ctx: context.Background()}
	return ev.apply(proc, args)
}

func (ev *evaluator) eval(x Value, env *Env) (Value, error) {
	if err := ev.ctx.Err(); err != nil {
		return Void, newError(KindInterrupted, "%v", err)
	}
	if ev.maxDepth > 0 {
		ev.depth++
		defer func() { ev.depth-- }()
		if ev.depth > ev.maxDepth {
			return Void, newError(KindDepthExceeded, "recursion deeper than %d", ev.maxDepth)
		}
	}

	switch x.Tag {
	case VTSym:
		return env.Get(x.SymbolName())
	case VTList:
	default:
		return x, nil
	}

	items := x.Items()
	switch classify(items) {
	case formQuote:
		if len(items) != 2 {
			return Void, malformed("quote", "(quote exp)", items)
		}
		return items[1], nil

	case formIf:
		if len(items) != 4 {
			return Void, malformed("if", "(if test conseq alt)", items)
		}
		test, err := ev.eval(items[1], env)
		if err != nil {
			return Void, err
		}
		if Truthy(test) {
			return ev.eval(items[2], env)
		}
		return ev.eval(items[3], env)

	case formSet:
		if len(items) != 3 || !items[1].IsSymbol() {
			return Void, malformed("set!", "(set! var exp)", items)
		}
		v, err := ev.eval(items[2], env)
		if err != nil {
			return Void, err
		}
		if err := env.Set(items[1].SymbolName(), v); err != nil {
			return Void, err
		}
		return Void, nil

	case formDefine:
		if len(items) != 3 || !items[1].IsSymbol() {
			return Void, malformed("define", "(define var exp)", items)
		}
		v, err := ev.eval(items[2], env)
		if err != nil {
			return Void, err
		}
		env.Define(items[1].SymbolName(), v)
		return Void, nil

	case formLambda:
		if len(items) != 3 || items[1].Tag != VTList {
			return Void, malformed("lambda", "(lambda (params...) body)", items)
		}
		params, err := paramNames(items[1].Items())
		if err != nil {
			return Void, err
		}
		return ClosureVal(&Closure{Params: params, Body: items[2], Env: env}), nil

	case formBegin:
		if len(items) == 1 {
			return Void, newError(KindEmptyBegin, "(begin) needs at least one expression")
		}
		var v Value
		for _, e := range items[1:] {
			var err error
			if v, err = ev.eval(e, env); err != nil {
				return Void, err
			}
		}
		return v, nil
	}

	if len(items) == 0 {
		return Void, newError(KindNotAProcedure, "cannot apply ()")
	}
	proc, err := ev.eval(items[0], env)
	if err != nil {
		return Void, err
	}
	args := make([]Value, len(items)-1)
	for i, a := range items[1:] {
		if args[i], err = ev.eval(a, env); err != nil {
			return Void, err
		}
	}
	return ev.apply(proc, args)
}

func (ev *evaluator) apply(proc Value, args []Value) (Value, error) {
	switch proc.Tag {
	case VTPrim:
		p := proc.Data.(*Primitive)
		if len(args) < p.MinArgs || (p.MaxArgs >= 0 && len(args) > p.MaxArgs) {
			return Void, newError(KindArityMismatch, "%s: expected %s, got %d", p.Name, arityText(p.MinArgs, p.MaxArgs), len(args))
		}
		if debug.Enabled() {
			debug.Logf("apply %s %s", p.Name, Print(List(args...)))
		}
		v, err := p.Fn(args)
		if err != nil {
			if _, ok := KindOf(err); !ok {
				err = newError(KindPrimitiveFailed, "%s: %v", p.Name, err)
			}
			return Void, err
		}
		return v, nil

	case VTClosure:
		c := proc.Data.(*Closure)
		if len(args) != len(c.Params) {
			return Void, newError(KindArityMismatch, "%s: expected %s, got %d", Print(proc), arityText(len(c.Params), len(c.Params)), len(args))
		}
		frame, err := NewEnv(c.Params, args, c.Env)
		if err != nil {
			return Void, err
		}
		if debug.Enabled() {
			debug.Logf("apply %s %s", Print(proc), Print(List(args...)))
		}
		return ev.eval(c.Body, frame)
	}
	return Void, newError(KindNotAProcedure, "%s is not a procedure", Print(proc))
}

func paramNames(xs []Value) ([]string, error) {
	names := make([]string, len(xs))
	seen := make(map[string]struct{}, len(xs))
	for i, x := range xs {
		if !x.IsSymbol() {
			return nil, newError(KindMalformedSpecialForm, "lambda: parameter %s is not a symbol", Print(x))
		}
		name := x.SymbolName()
		if _, dup := seen[name]; dup {
			return nil, newError(KindMalformedSpecialForm, "lambda: duplicate parameter %s", name)
		}
		seen[name] = struct{}{}
		names[i] = name
	}
	return names, nil
}

func malformed(form, shape string, items []Value) error {
	return newError(KindMalformedSpecialForm, "%s: expected %s, got %s", form, shape, Print(List(items...)))
}

func arityText(min, max int) string {
	switch {
	case max < 0:
		return fmt.Sprintf("at least %d argument(s)", min)
	case min == max:
		return fmt.Sprintf("%d argument(s)", min)
	default:
		return fmt.Sprintf("%d to %d argument(s)", min, max)
	}
}
