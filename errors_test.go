// errors_test.go
package lispy

import (
	"errors"
	"fmt"
	"testing"
)

func Test_Errors_Render_Kind_And_Message(t *testing.T) {
	err := newError(KindUnboundSymbol, "%s", "x")
	if got := err.Error(); got != "UnboundSymbol: x" {
		t.Fatalf("got %q", got)
	}
	if got := (&Error{Kind: KindEmptyBegin}).Error(); got != "EmptyBegin" {
		t.Fatalf("got %q", got)
	}
}

func Test_Errors_Is_Matches_Kind_Only(t *testing.T) {
	err := newError(KindArityMismatch, "f: expected 1 argument(s), got 2")
	if !errors.Is(err, ErrArityMismatch) {
		t.Fatalf("errors.Is should match by kind")
	}
	if errors.Is(err, ErrUnboundSymbol) {
		t.Fatalf("errors.Is matched the wrong kind")
	}
}

func Test_Errors_KindOf_Through_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading prelude: %w", newError(KindNotAProcedure, "3 is not a procedure"))
	k, ok := KindOf(wrapped)
	if !ok || k != KindNotAProcedure {
		t.Fatalf("KindOf: want NotAProcedure, got %v (ok=%v)", k, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatalf("KindOf should not find a kind in a plain error")
	}
}

func Test_Errors_Kind_Names(t *testing.T) {
	for k := KindUnexpectedEOF; k <= KindDepthExceeded; k++ {
		if kindNames[k] == "" || k.String() != kindNames[k] {
			t.Fatalf("kind %d has no name", int(k))
		}
	}
	if got := ErrorKind(99).String(); got != "ErrorKind(99)" {
		t.Fatalf("unknown kind: got %q", got)
	}
}
