// lexer_test.go
package lispy

import (
	"reflect"
	"testing"
)

func wantTokens(t *testing.T, src string, want []string) {
	t.Helper()
	got := Tokenize(src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("\nsource:\n%s\nwant tokens:\n%q\ngot tokens:\n%q\n", src, want, got)
	}
}

func Test_Lexer_Define_Form(t *testing.T) {
	wantTokens(t, "(define r 10)", []string{"(", "define", "r", "10", ")"})
}

func Test_Lexer_Parens_Need_No_Spaces(t *testing.T) {
	wantTokens(t, "(a(b)c)", []string{"(", "a", "(", "b", ")", "c", ")"})
	wantTokens(t, "())(", []string{"(", ")", ")", "("})
}

func Test_Lexer_Whitespace_Runs(t *testing.T) {
	wantTokens(t, "  (+\t1\n\n   2 )  ", []string{"(", "+", "1", "2", ")"})
}

func Test_Lexer_Empty_Input(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t "} {
		got := Tokenize(src)
		if got == nil || len(got) != 0 {
			t.Fatalf("Tokenize(%q): want empty non-nil slice, got %#v", src, got)
		}
	}
}

func Test_Lexer_Atoms_Kept_Verbatim(t *testing.T) {
	wantTokens(t, "set! #t -3.5e2 equal? 'x", []string{"set!", "#t", "-3.5e2", "equal?", "'x"})
}
