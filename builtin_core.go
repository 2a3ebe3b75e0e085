package lispy

// ---- arithmetic, comparison and boolean built-ins ----------------------

func registerCoreBuiltins(env *Env) {
	define := primDefiner(env)

	env.Define("#t", True)
	env.Define("#f", False)

	// (+ x ...) sums; (+) is 0
	define("+", 0, -1, func(args []Value) (Value, error) {
		return foldNumbers("+", Int(0), args, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	})
	// (* x ...) multiplies; (*) is 1
	define("*", 0, -1, func(args []Value) (Value, error) {
		return foldNumbers("*", Int(1), args, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	})
	// (- x) negates; (- x y ...) subtracts left to right
	define("-", 1, -1, func(args []Value) (Value, error) {
		if len(args) == 1 {
			return foldNumbers("-", Int(0), args, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
		}
		return foldNumbers("-", args[0], args[1:], func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	})
	// (/ x) is 1/x; (/ x y ...) divides left to right. Always a float.
	define("/", 1, -1, func(args []Value) (Value, error) {
		acc := 1.0
		rest := args
		if len(args) > 1 {
			f, err := number("/", args[0])
			if err != nil {
				return Void, err
			}
			acc, rest = f, args[1:]
		}
		for _, a := range rest {
			d, err := number("/", a)
			if err != nil {
				return Void, err
			}
			if d == 0 {
				return Void, newError(KindPrimitiveFailed, "/: division by zero")
			}
			acc /= d
		}
		return Num(acc), nil
	})

	compare := func(name string, ok func(c int) bool) {
		define(name, 2, 2, func(args []Value) (Value, error) {
			c, ordered, err := compareNumbers(name, args[0], args[1])
			if err != nil {
				return Void, err
			}
			return Bool(ordered && ok(c)), nil
		})
	}
	compare(">", func(c int) bool { return c > 0 })
	compare("<", func(c int) bool { return c < 0 })
	compare(">=", func(c int) bool { return c >= 0 })
	compare("<=", func(c int) bool { return c <= 0 })
	compare("=", func(c int) bool { return c == 0 })

	define("equal?", 2, 2, func(args []Value) (Value, error) {
		return Bool(Equal(args[0], args[1])), nil
	})
	define("eq?", 2, 2, func(args []Value) (Value, error) {
		return Bool(Identical(args[0], args[1])), nil
	})
	// (not x) is #t only for #f, matching if.
	define("not", 1, 1, func(args []Value) (Value, error) {
		return Bool(!Truthy(args[0])), nil
	})
}

// number returns v as a float64 or fails naming the primitive.
func number(name string, v Value) (float64, error) {
	if !v.IsNumber() {
		return 0, newError(KindPrimitiveFailed, "%s: expected a number, got %s", name, Print(v))
	}
	return toFloat(v), nil
}

// foldNumbers folds args into acc. The result stays an int while every
// operand is an int and becomes a float as soon as one is not.
func foldNumbers(name string, acc Value, args []Value, ints func(a, b int64) int64, floats func(a, b float64) float64) (Value, error) {
	if !acc.IsNumber() {
		return Void, newError(KindPrimitiveFailed, "%s: expected a number, got %s", name, Print(acc))
	}
	for _, a := range args {
		if !a.IsNumber() {
			return Void, newError(KindPrimitiveFailed, "%s: expected a number, got %s", name, Print(a))
		}
		if acc.Tag == VTInt && a.Tag == VTInt {
			acc = Int(ints(acc.Data.(int64), a.Data.(int64)))
			continue
		}
		acc = Num(floats(toFloat(acc), toFloat(a)))
	}
	return acc, nil
}

// compareNumbers returns -1, 0 or 1. ordered is false when a NaN is involved;
// every comparison with NaN is then false.
func compareNumbers(name string, a, b Value) (c int, ordered bool, err error) {
	if !a.IsNumber() || !b.IsNumber() {
		return 0, false, newError(KindPrimitiveFailed, "%s: cannot compare %s and %s", name, Print(a), Print(b))
	}
	if a.Tag == VTInt && b.Tag == VTInt {
		x, y := a.Data.(int64), b.Data.(int64)
		switch {
		case x < y:
			return -1, true, nil
		case x > y:
			return 1, true, nil
		}
		return 0, true, nil
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1, true, nil
	case x > y:
		return 1, true, nil
	case x == y:
		return 0, true, nil
	}
	return 0, false, nil
}
