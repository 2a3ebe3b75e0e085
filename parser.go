// parser.go
//
// The reader turns tokens into expression trees. Read consumes tokens from
// the front of a shared slice, so a nested list takes exactly its own tokens
// and leaves the rest for the caller:
//
//	toks := Tokenize("(a (b c)) d")
//	x, _ := Read(&toks)   // (a (b c)); toks is now ["d"]
//
// Atoms are classified int first, then float, then symbol. Ints may group
// digits with single underscores; floats follow decimal notation plus inf,
// infinity and nan. Out-of-range literals still read as floats.
package lispy

import (
	"errors"
	"strconv"
	"strings"
)

// Read reads one expression from the front of *tokens, removing the tokens
// it consumed. It fails with UnexpectedEOF when tokens run out before the
// expression is complete and with UnmatchedCloseParen on a stray ")".
func Read(tokens *[]string) (Value, error) {
	if len(*tokens) == 0 {
		return Void, newError(KindUnexpectedEOF, "unexpected EOF while reading")
	}
	tok := (*tokens)[0]
	*tokens = (*tokens)[1:]

	switch tok {
	case "(":
		items := []Value{}
		for {
			if len(*tokens) == 0 {
				return Void, newError(KindUnexpectedEOF, "unexpected EOF while reading list")
			}
			if (*tokens)[0] == ")" {
				*tokens = (*tokens)[1:]
				return List(items...), nil
			}
			x, err := Read(tokens)
			if err != nil {
				return Void, err
			}
			items = append(items, x)
		}
	case ")":
		return Void, newError(KindUnmatchedCloseParen, "unexpected )")
	default:
		return atom(tok), nil
	}
}

func atom(tok string) Value {
	if n, err := strconv.ParseInt(intDigits(tok), 10, 64); err == nil {
		return Int(n)
	}
	if hexPrefixed(tok) {
		return Sym(tok)
	}
	// out-of-range literals read as ±inf or 0
	f, err := strconv.ParseFloat(tok, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return Num(f)
	}
	return Sym(tok)
}

// intDigits drops underscores that sit between two digits ("1_000"). Any
// other underscore leaves tok unchanged so that it fails to parse.
func intDigits(tok string) string {
	if !strings.Contains(tok, "_") {
		return tok
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] != '_' {
			continue
		}
		if i == 0 || i == len(tok)-1 || !isDigit(tok[i-1]) || !isDigit(tok[i+1]) {
			return tok
		}
	}
	return strings.ReplaceAll(tok, "_", "")
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// hexPrefixed reports a 0x/0X literal; hex floats are not numbers here.
func hexPrefixed(tok string) bool {
	t := strings.TrimPrefix(strings.TrimPrefix(tok, "-"), "+")
	return strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X")
}

// Parse reads the first expression of src. Tokens after it are ignored.
func Parse(src string) (Value, error) {
	toks := Tokenize(src)
	return Read(&toks)
}

// ReadAll reads every top-level expression of src in order. Empty or
// all-whitespace input yields no expressions and no error.
func ReadAll(src string) ([]Value, error) {
	toks := Tokenize(src)
	var out []Value
	for len(toks) > 0 {
		x, err := Read(&toks)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}
