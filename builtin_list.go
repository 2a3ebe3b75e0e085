package lispy

// ---- list built-ins ----------------------------------------------------
//
// Lists are plain slices. No primitive mutates its arguments: cons and
// append build fresh slices, cdr returns a view that is never written.

func registerListBuiltins(env *Env) {
	define := primDefiner(env)

	// (cons x xs) prepends x to a copy of xs.
	define("cons", 2, 2, func(args []Value) (Value, error) {
		xs, err := listArg("cons", args[1])
		if err != nil {
			return Void, err
		}
		out := make([]Value, 0, len(xs)+1)
		out = append(out, args[0])
		out = append(out, xs...)
		return List(out...), nil
	})
	define("car", 1, 1, func(args []Value) (Value, error) {
		xs, err := listArg("car", args[0])
		if err != nil {
			return Void, err
		}
		if len(xs) == 0 {
			return Void, newError(KindPrimitiveFailed, "car: empty list")
		}
		return xs[0], nil
	})
	// (cdr ()) is ().
	define("cdr", 1, 1, func(args []Value) (Value, error) {
		xs, err := listArg("cdr", args[0])
		if err != nil {
			return Void, err
		}
		if len(xs) == 0 {
			return List(), nil
		}
		return List(xs[1:]...), nil
	})
	define("append", 0, -1, func(args []Value) (Value, error) {
		out := []Value{}
		for _, a := range args {
			xs, err := listArg("append", a)
			if err != nil {
				return Void, err
			}
			out = append(out, xs...)
		}
		return List(out...), nil
	})
	define("list", 0, -1, func(args []Value) (Value, error) {
		return List(append([]Value{}, args...)...), nil
	})
	define("list?", 1, 1, func(args []Value) (Value, error) {
		return Bool(args[0].Tag == VTList), nil
	})
	define("null?", 1, 1, func(args []Value) (Value, error) {
		return Bool(args[0].Tag == VTList && len(args[0].Items()) == 0), nil
	})
	define("symbol?", 1, 1, func(args []Value) (Value, error) {
		return Bool(args[0].Tag == VTSym), nil
	})
	define("length", 1, 1, func(args []Value) (Value, error) {
		xs, err := listArg("length", args[0])
		if err != nil {
			return Void, err
		}
		return Int(int64(len(xs))), nil
	})
}

func listArg(name string, v Value) ([]Value, error) {
	if v.Tag != VTList {
		return nil, newError(KindPrimitiveFailed, "%s: expected a list, got %s", name, Print(v))
	}
	return v.Items(), nil
}
