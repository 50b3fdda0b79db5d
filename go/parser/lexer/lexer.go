/*
 * EdgeQL Lexer - Core Lexer Implementation
 *
 * Segments EdgeQL source text into tokens. Every scanned word is resolved
 * through keywords.Classify; the lexer keeps no keyword list of its own,
 * so keyword recognition cannot drift from the keyword table.
 */

package lexer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/joshuanianji/edgedb/go/mterrors"
	"github.com/joshuanianji/edgedb/go/parser/keywords"
)

// multiCharOps lists operators longer than one character, longest first
// so that the first prefix match is the longest one.
var multiCharOps = []string{
	"?!=",
	".<", ".>", "//", "??", "::", ":=", "->", "++", "!=", "?=", "<=", ">=", "+=", "-=",
}

// punctuation holds the characters that form a token on their own. Their
// TokenType is the character value.
const punctuation = ".,()[]{};:+-*/%^<>=&|@"

// Lexer represents the main lexer instance
type Lexer struct {
	context *LexerContext
}

// NewLexer creates a new EdgeQL lexer instance
func NewLexer(input string) *Lexer {
	return &Lexer{
		context: NewLexerContext(input),
	}
}

// Tokenize scans the whole input and returns its tokens, ending with EOF.
// It stops at the first error.
func Tokenize(input string) ([]*Token, error) {
	l := NewLexer(input)
	var tokens []*Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token from the input stream. After the first
// error every call returns that same error.
func (l *Lexer) NextToken() (*Token, error) {
	if l.context.Err != nil {
		return nil, l.context.Err
	}

	l.skipWhitespace()

	start := l.context.mark()
	if l.context.AtEOF() {
		return l.newToken(EOF, start, ""), nil
	}

	tok, err := l.scanToken(start)
	if err != nil {
		return nil, err
	}
	l.context.PrevType = tok.Type
	return tok, nil
}

// GetContext returns the lexer context (for testing and debugging)
func (l *Lexer) GetContext() *LexerContext {
	return l.context
}

func (l *Lexer) scanToken(start position) (*Token, error) {
	b, _ := l.context.PeekByte()

	// Order matters: string prefixes must be tried before identifiers
	switch {
	case isDigit(b):
		return l.scanNumber(start)

	case b == '\'' || b == '"':
		return l.scanString(start, false, false)

	case b == '`':
		return l.scanQuotedIdent(start)

	case b == '$':
		return l.scanDollar(start)

	case b == 'r' || b == 'b':
		if raw, isBytes, n := l.stringPrefix(); n > 0 {
			l.context.AdvanceBy(n)
			return l.scanString(start, raw, isBytes)
		}
		return l.scanIdentifier(start)

	case isIdentStart(b):
		return l.scanIdentifier(start)

	case b >= utf8.RuneSelf:
		if startsWithLetter(l.context) {
			return l.scanIdentifier(start)
		}
		return nil, l.unexpectedCharacter(start)

	default:
		return l.scanOperatorOrPunctuation(start)
	}
}

// scanIdentifier scans a word and classifies it. Keywords come back as
// KEYWORD tokens tagged with their category; everything else is IDENT.
func (l *Lexer) scanIdentifier(start position) (*Token, error) {
	l.skipIdentCont()
	text := l.context.GetCurrentText(start.offset)

	if kw, ok := keywords.LookupKeyword(text); ok {
		tok := l.newToken(KEYWORD, start, kw.Name)
		tok.Category = kw.Category
		return tok, nil
	}

	// Keyword lookup runs first, so the reserved __type__ style names
	// never reach this check
	if isDunder(text) {
		return nil, l.context.SetError(ForbiddenIdentifier, mterrors.EQ1003(text), start, false)
	}

	return l.newToken(IDENT, start, text), nil
}

// skipIdentCont consumes identifier continuation characters
func (l *Lexer) skipIdentCont() {
	for {
		r, size := l.context.PeekRune()
		if size == 0 || !isIdentContRune(r) {
			return
		}
		l.context.AdvanceBy(size)
	}
}

// scanQuotedIdent scans a `backtick quoted` name. A doubled backtick
// stands for one backtick. The contents are never classified, which is
// how a keyword is written as a name.
func (l *Lexer) scanQuotedIdent(start position) (*Token, error) {
	l.context.NextByte() // opening backtick

	var name strings.Builder
	for {
		b, ok := l.context.NextByte()
		if !ok {
			return nil, l.context.SetError(UnterminatedQuotedIdent, mterrors.EQ2002(), start, true)
		}
		if b == '`' {
			if next, ok := l.context.PeekByte(); ok && next == '`' {
				l.context.NextByte()
				name.WriteByte('`')
				continue
			}
			break
		}
		name.WriteByte(b)
	}

	value := name.String()
	var problem string
	switch {
	case value == "":
		problem = "backtick quotes cannot be empty"
	case value[0] == '@' || value[0] == '$':
		problem = fmt.Sprintf("backtick-quoted name cannot start with %q", value[:1])
	case strings.Contains(value, "::"):
		problem = "backtick-quoted name cannot contain \"::\""
	case isDunder(value):
		problem = "backtick-quoted names surrounded by double underscores are forbidden"
	}
	if problem != "" {
		return nil, l.context.SetError(InvalidQuotedIdent, mterrors.EQ2003(problem), start, false)
	}

	return l.newToken(QUOTED_IDENT, start, value), nil
}

// stringPrefix detects r'', b'', br'' and rb'' string prefixes. It returns
// the prefix length, or 0 if the input does not start a prefixed string.
func (l *Lexer) stringPrefix() (raw, isBytes bool, n int) {
	prefixes := []struct {
		prefix  string
		raw     bool
		isBytes bool
	}{
		{"br", true, true},
		{"rb", true, true},
		{"r", true, false},
		{"b", false, true},
	}
	for _, p := range prefixes {
		if !l.context.HasPrefix(p.prefix) {
			continue
		}
		if q, ok := l.context.PeekByteAt(len(p.prefix)); ok && (q == '\'' || q == '"') {
			return p.raw, p.isBytes, len(p.prefix)
		}
	}
	return false, false, 0
}

// scanString scans a quoted string whose opening quote is the current
// byte. Backslash escapes are skipped over, not decoded, unless raw.
func (l *Lexer) scanString(start position, raw, isBytes bool) (*Token, error) {
	quote, _ := l.context.NextByte()
	bodyStart := l.context.ScanPos

	for {
		b, ok := l.context.NextByte()
		if !ok {
			return nil, l.context.SetError(UnterminatedString, mterrors.EQ2001(string(quote)), start, true)
		}
		if b == '\\' && !raw {
			if _, ok := l.context.NextByte(); !ok {
				return nil, l.context.SetError(UnterminatedString, mterrors.EQ2001(string(quote)), start, true)
			}
			continue
		}
		if b == quote {
			break
		}
	}

	body := string(l.context.ScanBuf[bodyStart : l.context.ScanPos-1])
	if isBytes {
		return l.newToken(BCONST, start, body), nil
	}
	return l.newToken(SCONST, start, body), nil
}

// scanDollar handles everything starting with '$': $$..$$ and $tag$..$tag$
// strings, and $name / $1 parameters.
func (l *Lexer) scanDollar(start position) (*Token, error) {
	l.context.NextByte() // '$'

	b, ok := l.context.PeekByte()
	switch {
	case ok && b == '$':
		l.context.NextByte()
		return l.scanDollarQuotedBody(start, "$$")

	case ok && isDigit(b):
		for {
			d, ok := l.context.PeekByte()
			if !ok || !isDigit(d) {
				break
			}
			l.context.NextByte()
		}
		if r, size := l.context.PeekRune(); size > 0 && isIdentContRune(r) {
			l.skipIdentCont()
			return nil, l.context.SetError(InvalidNumber, mterrors.EQ2005(l.context.GetCurrentText(start.offset)), start, false)
		}
		text := l.context.GetCurrentText(start.offset)
		return l.newToken(PARAM, start, text[1:]), nil

	case ok && (isIdentStart(b) || b >= utf8.RuneSelf && startsWithLetter(l.context)):
		l.skipIdentCont()
		name := l.context.GetCurrentText(start.offset)[1:]
		if next, ok := l.context.PeekByte(); ok && next == '$' {
			l.context.NextByte()
			return l.scanDollarQuotedBody(start, "$"+name+"$")
		}
		return l.newToken(PARAM, start, name), nil

	default:
		return nil, l.context.SetError(UnexpectedCharacter, mterrors.EQ2004("$"), start, false)
	}
}

// scanDollarQuotedBody scans up to and including the closing tag
func (l *Lexer) scanDollarQuotedBody(start position, tag string) (*Token, error) {
	rest := l.context.ScanBuf[l.context.ScanPos:]
	idx := bytes.Index(rest, []byte(tag))
	if idx < 0 {
		l.context.AdvanceBy(len(rest))
		return nil, l.context.SetError(UnterminatedString, mterrors.EQ2001(tag), start, true)
	}

	body := string(rest[:idx])
	l.context.AdvanceBy(idx + len(tag))
	return l.newToken(SCONST, start, body), nil
}

// scanNumber scans integer, float and n-suffixed numeric literals
func (l *Lexer) scanNumber(start position) (*Token, error) {
	typ := ICONST
	l.skipDigits()

	// Fraction. After a '.' the digits are a tuple index (t.0.1), so the
	// decimal point belongs to the next token.
	if b, ok := l.context.PeekByte(); ok && b == '.' && l.context.PrevType != TokenType('.') {
		if d, ok := l.context.PeekByteAt(1); ok && isDigit(d) {
			l.context.NextByte()
			l.skipDigits()
			typ = FCONST
		}
	}

	// Exponent
	if b, ok := l.context.PeekByte(); ok && (b == 'e' || b == 'E') {
		offset := 1
		if s, ok := l.context.PeekByteAt(1); ok && (s == '+' || s == '-') {
			offset = 2
		}
		if d, ok := l.context.PeekByteAt(offset); ok && isDigit(d) {
			l.context.AdvanceBy(offset)
			l.skipDigits()
			typ = FCONST
		}
	}

	if b, ok := l.context.PeekByte(); ok && b == 'n' {
		l.context.NextByte()
		typ = NCONST
	}

	// Anything glued to the number is junk, not a separate identifier
	if r, size := l.context.PeekRune(); size > 0 && isIdentContRune(r) {
		l.skipIdentCont()
		return nil, l.context.SetError(InvalidNumber, mterrors.EQ2005(l.context.GetCurrentText(start.offset)), start, false)
	}

	text := l.context.GetCurrentText(start.offset)
	if !validDigitSeparators(text) {
		return nil, l.context.SetError(InvalidNumber, mterrors.EQ2005(text), start, false)
	}

	return l.newToken(typ, start, strings.ReplaceAll(text, "_", "")), nil
}

func (l *Lexer) skipDigits() {
	for {
		b, ok := l.context.PeekByte()
		if !ok || !(isDigit(b) || b == '_') {
			return
		}
		l.context.NextByte()
	}
}

// validDigitSeparators reports whether every '_' in a numeric literal sits
// between two digits.
func validDigitSeparators(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			continue
		}
		if i == 0 || i == len(text)-1 || !isDigit(text[i-1]) || !isDigit(text[i+1]) {
			return false
		}
	}
	return true
}

// scanOperatorOrPunctuation scans operators and single-character tokens
func (l *Lexer) scanOperatorOrPunctuation(start position) (*Token, error) {
	for _, op := range multiCharOps {
		if l.context.HasPrefix(op) {
			l.context.AdvanceBy(len(op))
			return l.newToken(OP, start, op), nil
		}
	}

	b, _ := l.context.PeekByte()
	if strings.IndexByte(punctuation, b) >= 0 {
		l.context.NextByte()
		return l.newToken(TokenType(b), start, string(b)), nil
	}

	return nil, l.unexpectedCharacter(start)
}

func (l *Lexer) unexpectedCharacter(start position) *LexerError {
	r, _ := l.context.PeekRune()
	return l.context.SetError(UnexpectedCharacter, mterrors.EQ2004(string(r)), start, false)
}

func (l *Lexer) newToken(typ TokenType, start position, value string) *Token {
	return &Token{
		Type:     typ,
		Text:     l.context.GetCurrentText(start.offset),
		Value:    value,
		Position: start.offset,
		Line:     start.line,
		Column:   start.column,
	}
}
