package lispy

import (
	"errors"
	"reflect"
	"testing"
)

func Test_Env_NewEnv_Binds_Params(t *testing.T) {
	outer := newFrame(nil)
	e, err := NewEnv([]string{"a", "b"}, []Value{Int(1), Int(2)}, outer)
	if err != nil {
		t.Fatalf("NewEnv error: %v", err)
	}
	if e.Outer() != outer {
		t.Fatalf("outer link not kept")
	}
	v, err := e.Get("b")
	if err != nil || !reflect.DeepEqual(v, Int(2)) {
		t.Fatalf("Get(b): want 2, got %v, %v", v, err)
	}
}

func Test_Env_NewEnv_Arity_Mismatch(t *testing.T) {
	_, err := NewEnv([]string{"a", "b"}, []Value{Int(1)}, nil)
	if !errors.Is(err, ErrArityMismatch) {
		t.Fatalf("want ArityMismatch, got %v", err)
	}
}

func Test_Env_Find_Nearest_Frame(t *testing.T) {
	global := newFrame(nil)
	global.Define("x", Int(1))
	global.Define("y", Int(2))
	inner, _ := NewEnv([]string{"x"}, []Value{Int(10)}, global)

	f, err := inner.Find("x")
	if err != nil || f != inner {
		t.Fatalf("Find(x): want inner frame, got %p, %v", f, err)
	}
	f, err = inner.Find("y")
	if err != nil || f != global {
		t.Fatalf("Find(y): want global frame, got %p, %v", f, err)
	}
	if _, err := inner.Find("zzz"); !errors.Is(err, ErrUnboundSymbol) {
		t.Fatalf("Find(zzz): want UnboundSymbol, got %v", err)
	}
}

func Test_Env_Set_Overwrites_Nearest_Binding(t *testing.T) {
	global := newFrame(nil)
	global.Define("x", Int(1))
	inner := newFrame(global)

	if err := inner.Set("x", Int(5)); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v, _ := global.Get("x"); !reflect.DeepEqual(v, Int(5)) {
		t.Fatalf("global x: want 5, got %s", Print(v))
	}
	if _, ok := inner.table["x"]; ok {
		t.Fatalf("Set must not create a binding in the inner frame")
	}
}

func Test_Env_Set_Unbound_Fails(t *testing.T) {
	e := newFrame(nil)
	if err := e.Set("nope", Int(1)); !errors.Is(err, ErrUnboundSymbol) {
		t.Fatalf("want UnboundSymbol, got %v", err)
	}
	if _, err := e.Get("nope"); err == nil {
		t.Fatalf("failed Set must not bind")
	}
}

func Test_Env_Define_Shadows(t *testing.T) {
	global := newFrame(nil)
	global.Define("x", Int(1))
	inner := newFrame(global)
	inner.Define("x", Int(2))

	if v, _ := inner.Get("x"); !reflect.DeepEqual(v, Int(2)) {
		t.Fatalf("inner x: want 2, got %s", Print(v))
	}
	if v, _ := global.Get("x"); !reflect.DeepEqual(v, Int(1)) {
		t.Fatalf("global x: want 1, got %s", Print(v))
	}
}

func Test_Env_Names(t *testing.T) {
	global := newFrame(nil)
	global.Define("b", Int(1))
	global.Define("a", Int(1))
	inner := newFrame(global)
	inner.Define("b", Int(2))
	inner.Define("c", Int(3))

	want := []string{"a", "b", "c"}
	if got := inner.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}
