// errors.go: error kinds raised by the reader and the evaluator.
//
// Every core operation either returns a value or fails with exactly one
// *Error whose Kind names the failure. Front-ends render err.Error() as a
// single line ("UnboundSymbol: x") and keep going; the core never recovers
// from its own errors.
//
// Matching:
//
//	errors.Is(err, ErrUnboundSymbol)   // kind comparison, message ignored
//	KindOf(err)                        // extract the kind from a wrapped error
//	IsIncomplete(err)                  // reader ran out of tokens mid-expression
package lispy

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies a failure.
type ErrorKind int

const (
	KindUnexpectedEOF ErrorKind = iota
	KindUnmatchedCloseParen
	KindUnboundSymbol
	KindArityMismatch
	KindMalformedSpecialForm
	KindEmptyBegin
	KindNotAProcedure
	KindPrimitiveFailed
	KindInterrupted
	KindDepthExceeded
)

var kindNames = [...]string{
	KindUnexpectedEOF:        "UnexpectedEOF",
	KindUnmatchedCloseParen:  "UnmatchedCloseParen",
	KindUnboundSymbol:        "UnboundSymbol",
	KindArityMismatch:        "ArityMismatch",
	KindMalformedSpecialForm: "MalformedSpecialForm",
	KindEmptyBegin:           "EmptyBegin",
	KindNotAProcedure:        "NotAProcedure",
	KindPrimitiveFailed:      "PrimitiveFailed",
	KindInterrupted:          "Interrupted",
	KindDepthExceeded:        "DepthExceeded",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is the single error type of the core.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnexpectedEOF        = &Error{Kind: KindUnexpectedEOF}
	ErrUnmatchedCloseParen  = &Error{Kind: KindUnmatchedCloseParen}
	ErrUnboundSymbol        = &Error{Kind: KindUnboundSymbol}
	ErrArityMismatch        = &Error{Kind: KindArityMismatch}
	ErrMalformedSpecialForm = &Error{Kind: KindMalformedSpecialForm}
	ErrEmptyBegin           = &Error{Kind: KindEmptyBegin}
	ErrNotAProcedure        = &Error{Kind: KindNotAProcedure}
	ErrPrimitiveFailed      = &Error{Kind: KindPrimitiveFailed}
	ErrInterrupted          = &Error{Kind: KindInterrupted}
	ErrDepthExceeded        = &Error{Kind: KindDepthExceeded}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsIncomplete reports whether err means the input ended inside an
// expression. Interactive front-ends use it to prompt for continuation lines.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF)
}
