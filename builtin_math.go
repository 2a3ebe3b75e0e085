package lispy

import "math"

// --- Math library -------------------------------------------------------
//
// Names follow the host math library. Float functions accept ints and floats
// and return floats; floor/ceil/trunc return ints.

func registerMathBuiltins(env *Env) {
	define := primDefiner(env)

	// Constants
	env.Define("pi", Num(math.Pi))
	env.Define("e", Num(math.E))
	env.Define("tau", Num(2*math.Pi))
	env.Define("inf", Num(math.Inf(1)))
	env.Define("nan", Num(math.NaN()))

	// Unary float helpers
	un1 := func(name string, f func(float64) float64) {
		define(name, 1, 1, func(args []Value) (Value, error) {
			x, err := number(name, args[0])
			if err != nil {
				return Void, err
			}
			return Num(f(x)), nil
		})
	}
	un1("sin", math.Sin)
	un1("cos", math.Cos)
	un1("tan", math.Tan)
	un1("asin", math.Asin)
	un1("acos", math.Acos)
	un1("atan", math.Atan)
	un1("sinh", math.Sinh)
	un1("cosh", math.Cosh)
	un1("tanh", math.Tanh)
	un1("asinh", math.Asinh)
	un1("acosh", math.Acosh)
	un1("atanh", math.Atanh)
	un1("exp", math.Exp)
	un1("expm1", math.Expm1)
	un1("log10", math.Log10)
	un1("log2", math.Log2)
	un1("log1p", math.Log1p)
	un1("sqrt", math.Sqrt)
	un1("fabs", math.Abs)
	un1("erf", math.Erf)
	un1("erfc", math.Erfc)
	un1("gamma", math.Gamma)
	un1("lgamma", func(x float64) float64 {
		v, _ := math.Lgamma(x)
		return v
	})
	un1("degrees", func(x float64) float64 { return x * 180 / math.Pi })
	un1("radians", func(x float64) float64 { return x * math.Pi / 180 })

	// Binary float helpers
	bin := func(name string, f func(x, y float64) float64) {
		define(name, 2, 2, func(args []Value) (Value, error) {
			x, err := number(name, args[0])
			if err != nil {
				return Void, err
			}
			y, err := number(name, args[1])
			if err != nil {
				return Void, err
			}
			return Num(f(x, y)), nil
		})
	}
	bin("atan2", math.Atan2)
	bin("pow", math.Pow)
	bin("fmod", math.Mod)
	bin("hypot", math.Hypot)
	bin("copysign", math.Copysign)

	// (log x) is the natural log; (log x base) divides by log(base).
	define("log", 1, 2, func(args []Value) (Value, error) {
		x, err := number("log", args[0])
		if err != nil {
			return Void, err
		}
		if len(args) == 1 {
			return Num(math.Log(x)), nil
		}
		base, err := number("log", args[1])
		if err != nil {
			return Void, err
		}
		return Num(math.Log(x) / math.Log(base)), nil
	})

	// Rounding to ints
	toInt := func(name string, f func(float64) float64) {
		define(name, 1, 1, func(args []Value) (Value, error) {
			if args[0].Tag == VTInt {
				return args[0], nil
			}
			x, err := number(name, args[0])
			if err != nil {
				return Void, err
			}
			r := f(x)
			if math.IsNaN(r) || math.IsInf(r, 0) || r < math.MinInt64 || r >= math.MaxInt64 {
				return Void, newError(KindPrimitiveFailed, "%s: cannot convert %s to an integer", name, formatFloat(x))
			}
			return Int(int64(r)), nil
		})
	}
	toInt("floor", math.Floor)
	toInt("ceil", math.Ceil)
	toInt("trunc", math.Trunc)

	// Predicates
	pred := func(name string, f func(float64) bool) {
		define(name, 1, 1, func(args []Value) (Value, error) {
			x, err := number(name, args[0])
			if err != nil {
				return Void, err
			}
			return Bool(f(x)), nil
		})
	}
	pred("isnan", math.IsNaN)
	pred("isinf", func(x float64) bool { return math.IsInf(x, 0) })
	pred("isfinite", func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) })

	define("abs", 1, 1, func(args []Value) (Value, error) {
		if args[0].Tag == VTInt {
			n := args[0].Data.(int64)
			if n == math.MinInt64 {
				return Void, newError(KindPrimitiveFailed, "abs: |%d| overflows int64", n)
			}
			if n < 0 {
				n = -n
			}
			return Int(n), nil
		}
		x, err := number("abs", args[0])
		if err != nil {
			return Void, err
		}
		return Num(math.Abs(x)), nil
	})
	define("factorial", 1, 1, func(args []Value) (Value, error) {
		n, err := intArg("factorial", args[0])
		if err != nil {
			return Void, err
		}
		if n < 0 {
			return Void, newError(KindPrimitiveFailed, "factorial: not defined for negative values")
		}
		acc := int64(1)
		for i := int64(2); i <= n; i++ {
			if acc > math.MaxInt64/i {
				return Void, newError(KindPrimitiveFailed, "factorial: %d! overflows int64", n)
			}
			acc *= i
		}
		return Int(acc), nil
	})
	// gcd works on magnitudes in uint64 so that |MinInt64| is representable;
	// only the result has to fit an int64.
	define("gcd", 0, -1, func(args []Value) (Value, error) {
		acc := uint64(0)
		for _, a := range args {
			n, err := intArg("gcd", a)
			if err != nil {
				return Void, err
			}
			m := uint64(n)
			if n < 0 {
				m = -m
			}
			for m != 0 {
				acc, m = m, acc%m
			}
		}
		if acc > math.MaxInt64 {
			return Void, newError(KindPrimitiveFailed, "gcd: result %d overflows int64", acc)
		}
		return Int(int64(acc)), nil
	})
}

func intArg(name string, v Value) (int64, error) {
	if v.Tag != VTInt {
		return 0, newError(KindPrimitiveFailed, "%s: expected an integer, got %s", name, Print(v))
	}
	return v.Data.(int64), nil
}
