package lispy

import (
	"math"
	"strconv"
	"strings"
)

/* ---------- printer ---------- */

// Print renders v in surface syntax. For anything the reader can produce,
// Parse(Print(v)) is structurally equal to v, except that NaN reads back as
// a NaN, which is never equal to itself. Procedures and the void value
// have no surface syntax and render as #<...> placeholders.
func Print(v Value) string {
	var b strings.Builder
	write(&b, v)
	return b.String()
}

func write(b *strings.Builder, v Value) {
	switch v.Tag {
	case VTVoid:
		b.WriteString("#<void>")
	case VTBool:
		if v.Data.(bool) {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case VTInt:
		b.WriteString(strconv.FormatInt(v.Data.(int64), 10))
	case VTNum:
		b.WriteString(formatFloat(v.Data.(float64)))
	case VTSym:
		b.WriteString(v.Data.(string))
	case VTList:
		b.WriteByte('(')
		for i, x := range v.Items() {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, x)
		}
		b.WriteByte(')')
	case VTPrim:
		b.WriteString("#<primitive ")
		b.WriteString(v.Data.(*Primitive).Name)
		b.WriteByte('>')
	case VTClosure:
		b.WriteString("#<lambda (")
		b.WriteString(strings.Join(v.Data.(*Closure).Params, " "))
		b.WriteString(")>")
	default:
		b.WriteString("#<unknown>")
	}
}

// formatFloat always marks a float as a float: 2.0 prints "2.0", never "2",
// so that reading it back does not produce an int.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
