/*
 * EdgeQL Lexer - Character Classes
 *
 * ASCII fast paths plus the Unicode letter rules for identifiers.
 */

package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isIdentStart checks the ASCII identifier start characters [A-Za-z_]
func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

// isIdentContRune checks identifier continuation characters: ASCII
// letters, digits and '_', or any Unicode letter or digit
func isIdentContRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStart(byte(r)) || isDigit(byte(r))
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// startsWithLetter reports whether the unscanned input starts with a
// Unicode letter
func startsWithLetter(ctx *LexerContext) bool {
	r, size := ctx.PeekRune()
	return size > 0 && unicode.IsLetter(r)
}

// isWhitespace checks [ \t\n\r\f\v]
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// isDunder reports whether name is wrapped in double underscores with
// something in between
func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}
