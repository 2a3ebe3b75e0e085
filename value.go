// value.go
//
// The runtime value model. A single tagged carrier, Value, is used both for
// the syntax tree produced by the reader and for the results of evaluation:
// a list read from source and a list built by `cons` share one representation.
//
// Tags:
//   - VTVoid   : the absent result of `define` and `set!` (no payload)
//   - VTBool   : bool; only #f is false (see Truthy)
//   - VTInt    : int64
//   - VTNum    : float64
//   - VTSym    : symbol name (string)
//   - VTList   : []Value (ordered, possibly empty)
//   - VTPrim   : *Primitive (host procedure)
//   - VTClosure: *Closure (user procedure)
package lispy

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTVoid    ValueTag = iota // no payload
	VTBool                    // bool
	VTInt                     // int64
	VTNum                     // float64
	VTSym                     // string
	VTList                    // []Value
	VTPrim                    // *Primitive
	VTClosure                 // *Closure
)

var tagNames = [...]string{
	VTVoid:    "void",
	VTBool:    "bool",
	VTInt:     "int",
	VTNum:     "float",
	VTSym:     "symbol",
	VTList:    "list",
	VTPrim:    "primitive",
	VTClosure: "closure",
}

func (t ValueTag) String() string {
	if t >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "tag(" + strconv.Itoa(int(t)) + ")"
}

// Value is the universal expression/value carrier.
//
// Invariants:
//   - Tag==VTVoid  → Data is nil.
//   - Tag==VTList  → Data is []Value (never nil; empty lists hold []Value{}).
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Void is the result of forms that produce no useful value.
var Void = Value{Tag: VTVoid}

// True and False are the two boolean values (bound to #t and #f globally).
var (
	True  = Value{Tag: VTBool, Data: true}
	False = Value{Tag: VTBool, Data: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}
func Int(n int64) Value   { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Sym(s string) Value  { return Value{Tag: VTSym, Data: s} }

// List builds a VTList from xs. The slice is used as-is.
func List(xs ...Value) Value {
	if xs == nil {
		xs = []Value{}
	}
	return Value{Tag: VTList, Data: xs}
}

// Primitive is a host-supplied procedure. MaxArgs < 0 means variadic.
type Primitive struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      func(args []Value) (Value, error)
}

// Closure is a user-defined procedure. Env is the defining environment; it is
// shared, never copied.
type Closure struct {
	Params []string
	Body   Value
	Env    *Env
}

func PrimVal(p *Primitive) Value   { return Value{Tag: VTPrim, Data: p} }
func ClosureVal(c *Closure) Value  { return Value{Tag: VTClosure, Data: c} }
func (v Value) IsVoid() bool       { return v.Tag == VTVoid }
func (v Value) IsSymbol() bool     { return v.Tag == VTSym }
func (v Value) IsList() bool       { return v.Tag == VTList }
func (v Value) IsNumber() bool     { return v.Tag == VTInt || v.Tag == VTNum }
func (v Value) IsProcedure() bool  { return v.Tag == VTPrim || v.Tag == VTClosure }
func (v Value) Items() []Value     { return v.Data.([]Value) }
func (v Value) SymbolName() string { return v.Data.(string) }
func (v Value) String() string     { return Print(v) }
func (v Value) GoString() string   { return fmt.Sprintf("%s(%s)", v.Tag, Print(v)) }

// Truthy reports whether v counts as true in a conditional. Only the boolean
// #f is false; 0 and () are true.
func Truthy(v Value) bool {
	if v.Tag == VTBool {
		return v.Data.(bool)
	}
	return true
}

// Equal is structural equality. Ints and floats compare numerically; lists
// compare element-wise; procedures compare by identity.
func Equal(a, b Value) bool {
	if a.IsNumber() && b.IsNumber() {
		if a.Tag == VTInt && b.Tag == VTInt {
			return a.Data.(int64) == b.Data.(int64)
		}
		return toFloat(a) == toFloat(b)
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTVoid:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTSym:
		return a.Data.(string) == b.Data.(string)
	case VTList:
		ax, bx := a.Items(), b.Items()
		if len(ax) != len(bx) {
			return false
		}
		for i := range ax {
			if !Equal(ax[i], bx[i]) {
				return false
			}
		}
		return true
	case VTPrim:
		return a.Data.(*Primitive) == b.Data.(*Primitive)
	case VTClosure:
		return a.Data.(*Closure) == b.Data.(*Closure)
	}
	return false
}

// Identical implements eq?: atoms compare by tag and value, lists by backing
// storage (two empty lists are identical), procedures by identity.
func Identical(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	if a.Tag == VTList {
		ax, bx := a.Items(), b.Items()
		if len(ax) == 0 || len(bx) == 0 {
			return len(ax) == len(bx)
		}
		return len(ax) == len(bx) && &ax[0] == &bx[0]
	}
	return Equal(a, b)
}

func toFloat(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}
