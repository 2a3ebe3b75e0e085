// lexer.go
package lispy

import "strings"

var parenSpacer = strings.NewReplacer("(", " ( ", ")", " ) ")

// Tokenize splits source text into tokens. Parentheses always become
// standalone tokens; any run of whitespace separates the rest. Empty input
// yields an empty (non-nil) slice.
func Tokenize(src string) []string {
	toks := strings.Fields(parenSpacer.Replace(src))
	if toks == nil {
		return []string{}
	}
	return toks
}
