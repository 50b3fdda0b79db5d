/*
 * EdgeQL Lexer - Core Tests
 */

package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuanianji/edgedb/go/mterrors"
	"github.com/joshuanianji/edgedb/go/parser/keywords"
)

// tokenTypes returns the types of tokens, without the trailing EOF
func tokenTypes(tokens []*Token) []TokenType {
	var types []TokenType
	for _, tok := range tokens {
		if tok.Type != EOF {
			types = append(types, tok.Type)
		}
	}
	return types
}

func TestEmptyInput(t *testing.T) {
	tests := []string{"", "   ", "\n\t", "# only a comment", "# a\n# b\n"}

	for _, input := range tests {
		tokens, err := Tokenize(input)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, EOF, tokens[0].Type)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := NewLexer("x")
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, IDENT, tok.Type)

	for range 3 {
		tok, err = l.NextToken()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Type)
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
		values   []string
	}{
		{"path", "User.<friends", []TokenType{IDENT, OP, IDENT}, []string{"User", ".<", "friends"}},
		{"forward_link", "a.>b", []TokenType{IDENT, OP, IDENT}, []string{"a", ".>", "b"}},
		{"namespace", "std::len", []TokenType{IDENT, OP, IDENT}, []string{"std", "::", "len"}},
		{"assign", "x := 1", []TokenType{IDENT, OP, ICONST}, []string{"x", ":=", "1"}},
		{"coalesce", "a ?? b", []TokenType{IDENT, OP, IDENT}, []string{"a", "??", "b"}},
		{"not_distinct", "a ?!= b", []TokenType{IDENT, OP, IDENT}, []string{"a", "?!=", "b"}},
		{"distinct_eq", "a ?= b", []TokenType{IDENT, OP, IDENT}, []string{"a", "?=", "b"}},
		{"concat", "a ++ b", []TokenType{IDENT, OP, IDENT}, []string{"a", "++", "b"}},
		{"floor_div", "a // b", []TokenType{IDENT, OP, IDENT}, []string{"a", "//", "b"}},
		{"arrow", "-> str", []TokenType{OP, IDENT}, []string{"->", "str"}},
		{"compare", "a <= b >= c != d", []TokenType{IDENT, OP, IDENT, OP, IDENT, OP, IDENT}, []string{"a", "<=", "b", ">=", "c", "!=", "d"}},
		{"add_assign", "a += 1", []TokenType{IDENT, OP, ICONST}, []string{"a", "+=", "1"}},
		{
			"single_chars", "(),;[]{}+-*/%^<>&|@=",
			[]TokenType{'(', ')', ',', ';', '[', ']', '{', '}', '+', '-', '*', '/', '%', '^', '<', '>', '&', '|', '@', '='},
			[]string{"(", ")", ",", ";", "[", "]", "{", "}", "+", "-", "*", "/", "%", "^", "<", ">", "&", "|", "@", "="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokenTypes(tokens))

			var values []string
			for _, tok := range tokens[:len(tokens)-1] {
				values = append(values, tok.Value)
			}
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		typ      TokenType
		expected string
	}{
		{"single_quoted", `'hello'`, SCONST, "hello"},
		{"double_quoted", `"hello"`, SCONST, "hello"},
		{"escaped_quote", `'it\'s'`, SCONST, `it\'s`},
		{"other_quote_inside", `"it's"`, SCONST, "it's"},
		{"raw", `r'C:\path'`, SCONST, `C:\path`},
		{"bytes", `b'\x00ab'`, BCONST, `\x00ab`},
		{"raw_bytes", `br'\d+'`, BCONST, `\d+`},
		{"raw_bytes_rb", `rb"\d+"`, BCONST, `\d+`},
		{"dollar_empty_tag", "$$a 'b' \"c\"$$", SCONST, "a 'b' \"c\""},
		{"dollar_tag", "$fn$ select $$ $fn$", SCONST, " select $$ "},
		{"multiline", "'a\nb'", SCONST, "a\nb"},
		{"keyword_inside", "'select'", SCONST, "select"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.typ, tokens[0].Type)
			assert.Equal(t, tt.expected, tokens[0].Value)
			assert.Equal(t, tt.input, tokens[0].Text)
		})
	}
}

func TestStringPrefixLettersAreIdentifiers(t *testing.T) {
	tokens, err := Tokenize("r b br rb rbx")
	require.NoError(t, err)
	assert.Equal(t, []TokenType{IDENT, IDENT, IDENT, IDENT, IDENT}, tokenTypes(tokens))
}

func TestParameters(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$name", "name"},
		{"$0", "0"},
		{"$12", "12"},
		{"$select", "select"},
		{"$_x1", "_x1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, PARAM, tokens[0].Type)
			assert.Equal(t, tt.expected, tokens[0].Value)
			assert.Equal(t, keywords.NotAKeyword, tokens[0].Category)
		})
	}
}

func TestQuotedIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"`select`", "select"},
		{"`my name`", "my name"},
		{"`a``b`", "a`b"},
		{"`Window`", "Window"},
		{"`__x`", "__x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, QUOTED_IDENT, tokens[0].Type)
			assert.Equal(t, tt.expected, tokens[0].Value)
			assert.Equal(t, keywords.NotAKeyword, tokens[0].Category)
		})
	}
}

func TestComments(t *testing.T) {
	tokens, err := Tokenize("select # trailing select\n  1 # another\n")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, KEYWORD, tokens[0].Type)
	assert.Equal(t, ICONST, tokens[1].Type)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[1].Column)
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("select\n  über := 'x'")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	expected := []struct {
		position, line, column int
	}{
		{0, 1, 1},
		{9, 2, 3},
		{15, 2, 8},
		{18, 2, 11},
		{21, 2, 14},
	}
	for i, exp := range expected {
		assert.Equal(t, exp.position, tokens[i].Position, "token %d position", i)
		assert.Equal(t, exp.line, tokens[i].Line, "token %d line", i)
		assert.Equal(t, exp.column, tokens[i].Column, "token %d column", i)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errType   LexerErrorType
		errID     string
		atEOF     bool
		line, col int
	}{
		{"unterminated_single", "select 'abc", UnterminatedString, "EQ2001", true, 1, 8},
		{"unterminated_double", `"abc\"`, UnterminatedString, "EQ2001", true, 1, 1},
		{"unterminated_dollar", "$$abc", UnterminatedString, "EQ2001", true, 1, 1},
		{"unterminated_tag", "$a$ abc $b$", UnterminatedString, "EQ2001", true, 1, 1},
		{"unterminated_backtick", "`abc", UnterminatedQuotedIdent, "EQ2002", true, 1, 1},
		{"empty_backtick", "``", InvalidQuotedIdent, "EQ2003", false, 1, 1},
		{"backtick_at", "`@x`", InvalidQuotedIdent, "EQ2003", false, 1, 1},
		{"backtick_dollar", "`$x`", InvalidQuotedIdent, "EQ2003", false, 1, 1},
		{"backtick_namespace", "`a::b`", InvalidQuotedIdent, "EQ2003", false, 1, 1},
		{"backtick_dunder", "`__foo__`", InvalidQuotedIdent, "EQ2003", false, 1, 1},
		{"dunder", "select __foo__", ForbiddenIdentifier, "EQ1003", false, 1, 8},
		{"unexpected_char", "a ~ b", UnexpectedCharacter, "EQ2004", false, 1, 3},
		{"unexpected_question", "a ? b", UnexpectedCharacter, "EQ2004", false, 1, 3},
		{"lone_dollar", "$ ", UnexpectedCharacter, "EQ2004", false, 1, 1},
		{"non_letter_unicode", "a → b", UnexpectedCharacter, "EQ2004", false, 1, 3},
		{"number_junk", "\n12abc", InvalidNumber, "EQ2005", false, 2, 1},
		{"param_junk", "$1abc", InvalidNumber, "EQ2005", false, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)

			var lexErr *LexerError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.errType, lexErr.Type)
			assert.Equal(t, tt.atEOF, lexErr.AtEOF)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.col, lexErr.Column)

			assert.Equal(t, tt.errID, mterrors.ID(err))
			assert.True(t, mterrors.IsError(err, tt.errID))
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	l := NewLexer("a ~ b")
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Value)

	_, first := l.NextToken()
	require.Error(t, first)
	_, second := l.NextToken()
	assert.Same(t, first, second)
}

func TestTokenizeReturnsTokensBeforeError(t *testing.T) {
	tokens, err := Tokenize("select x, 'oops")
	require.Error(t, err)
	assert.Equal(t, []TokenType{KEYWORD, IDENT, ','}, tokenTypes(tokens))
}

func TestLexerErrorMessages(t *testing.T) {
	_, err := Tokenize("select __foo__")
	require.Error(t, err)

	var lexErr *LexerError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, `EQ1003: identifiers surrounded by double underscores are forbidden: "__foo__" (line 1, column 8)`, lexErr.Error())

	detailed := lexErr.DetailedError()
	assert.Contains(t, detailed, `at or near "__foo__"`)
	assert.Contains(t, detailed, "at line 1, column 8 (position 7)")
	assert.Contains(t, detailed, "Hint: ")

	_, err = Tokenize("'abc")
	require.True(t, errors.As(err, &lexErr))
	assert.True(t, strings.HasPrefix(lexErr.DetailedError(), "EQ2001: unterminated string, quoted by ' at end of input"))
}

func TestAsIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		errID    string
	}{
		{"plain", "my_table", "my_table", ""},
		{"unreserved", "Cardinality", "Cardinality", ""},
		{"quoted_reserved", "`select`", "select", ""},
		{"current_reserved", "Select", "", "EQ1001"},
		{"future_reserved", "window", "", "EQ1002"},
		{"dunder_reserved", "__type__", "", "EQ1001"},
		{"number", "42", "", "EQ1004"},
		{"string", "'x'", "", "EQ1004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)

			name, err := tokens[0].AsIdentifier()
			if tt.errID != "" {
				require.Error(t, err)
				assert.Equal(t, tt.errID, mterrors.ID(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestTokenIsKeyword(t *testing.T) {
	tokens, err := Tokenize("select type window foo")
	require.NoError(t, err)

	assert.True(t, tokens[0].IsKeyword())
	assert.True(t, tokens[0].IsKeyword(keywords.CurrentReserved))
	assert.False(t, tokens[0].IsKeyword(keywords.Unreserved))
	assert.True(t, tokens[1].IsKeyword(keywords.Unreserved, keywords.FutureReserved))
	assert.True(t, tokens[2].IsKeyword(keywords.FutureReserved))
	assert.False(t, tokens[3].IsKeyword())
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		typ      TokenType
		expected string
	}{
		{EOF, "EOF"},
		{IDENT, "IDENT"},
		{KEYWORD, "KEYWORD"},
		{OP, "OP"},
		{TokenType('('), "'('"},
		{TokenType(9999), "TokenType(9999)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.typ.String())
	}
}

func TestTokenString(t *testing.T) {
	tokens, err := Tokenize("SELECT foo")
	require.NoError(t, err)
	assert.Equal(t, "KEYWORD(select, CURRENT_RESERVED_KEYWORD) at 1:1", tokens[0].String())
	assert.Equal(t, `IDENT("foo") at 1:8`, tokens[1].String())
}

// BenchmarkTokenize benchmarks lexing a small query.
func BenchmarkTokenize(b *testing.B) {
	query := `
		WITH module default
		SELECT User {
			name,
			friends: { name } FILTER .age > 30 ORDER BY .name LIMIT 10
		} FILTER .name ILIKE 'a%' AND EXISTS .email;`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(query); err != nil {
			b.Fatal(err)
		}
	}
}

func TestTokenTypeText(t *testing.T) {
	for _, typ := range []TokenType{EOF, IDENT, KEYWORD, QUOTED_IDENT, ICONST, FCONST, NCONST, SCONST, BCONST, PARAM, OP, '(', ';'} {
		text, err := typ.MarshalText()
		require.NoError(t, err)

		var got TokenType
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, typ, got)
	}

	var bad TokenType
	assert.Error(t, bad.UnmarshalText([]byte("NOPE")))
}
