/*
EdgeQL Lexer - Whitespace and Comment Handling

EdgeQL has a single comment form: '#' up to the end of the line.
*/

package lexer

// skipWhitespace skips whitespace and # comments
func (l *Lexer) skipWhitespace() {
	for {
		b, ok := l.context.PeekByte()
		if !ok {
			return
		}

		if isWhitespace(b) {
			l.context.NextByte()
			continue
		}

		if b == '#' {
			l.skipLineComment()
			continue
		}

		return
	}
}

// skipLineComment consumes a comment up to, but not including, the newline
func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.context.PeekByte()
		if !ok || b == '\n' {
			return
		}
		l.context.NextByte()
	}
}
