// printer_test.go
package lispy

import (
	"math"
	"testing"
)

func Test_Printer_Values(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"int", Int(42), "42"},
		{"negative int", Int(-3), "-3"},
		{"float", Num(3.5), "3.5"},
		{"whole float", Num(2), "2.0"},
		{"large float", Num(1e21), "1e+21"},
		{"inf", Num(math.Inf(1)), "inf"},
		{"-inf", Num(math.Inf(-1)), "-inf"},
		{"nan", Num(math.NaN()), "nan"},
		{"true", True, "#t"},
		{"false", False, "#f"},
		{"symbol", Sym("set!"), "set!"},
		{"empty list", List(), "()"},
		{"nested", List(Int(1), List(Sym("a"), List()), Num(0.5)), "(1 (a ()) 0.5)"},
		{"void", Void, "#<void>"},
		{"primitive", PrimVal(&Primitive{Name: "car"}), "#<primitive car>"},
		{"closure", ClosureVal(&Closure{Params: []string{"x", "y"}}), "#<lambda (x y)>"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Print(c.v); got != c.want {
				t.Fatalf("want %q, got %q", c.want, got)
			}
		})
	}
}

func Test_Printer_String_Method(t *testing.T) {
	v := List(Sym("quote"), Sym("x"))
	if v.String() != "(quote x)" {
		t.Fatalf("String(): got %q", v.String())
	}
}
