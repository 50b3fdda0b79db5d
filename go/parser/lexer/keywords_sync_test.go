/*
 * EdgeQL Lexer - Keyword Agreement Tests
 *
 * Every word in the keyword table must come out of the lexer as a KEYWORD
 * token of the same category, and ordinary names must not.
 */

package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuanianji/edgedb/go/parser/keywords"
)

// TestEveryKeywordTokenizesAsKeyword feeds each table entry through the
// full lexer in several spellings.
func TestEveryKeywordTokenizesAsKeyword(t *testing.T) {
	all := keywords.AllKeywords()
	require.NotEmpty(t, all)

	for _, kw := range all {
		for _, spelling := range []string{kw.Name, strings.ToUpper(kw.Name)} {
			tokens, err := Tokenize(spelling)
			require.NoError(t, err, "tokenizing %q", spelling)
			require.Len(t, tokens, 2, "expected keyword + EOF for %q", spelling)

			tok := tokens[0]
			assert.Equal(t, KEYWORD, tok.Type, "%q should be a keyword token", spelling)
			assert.Equal(t, kw.Category, tok.Category, "category mismatch for %q", spelling)
			assert.Equal(t, kw.Name, tok.Value, "keyword value should be canonical for %q", spelling)
			assert.Equal(t, spelling, tok.Text, "keyword text should be preserved for %q", spelling)
		}
	}
}

// TestKeywordsInsideStatement checks classification in context rather
// than as isolated words.
func TestKeywordsInsideStatement(t *testing.T) {
	tokens, err := Tokenize("SELECT User { name } FILTER .name = 'x' ORDER BY .name LIMIT 1")
	require.NoError(t, err)

	expected := []struct {
		typ      TokenType
		category keywords.Category
		value    string
	}{
		{KEYWORD, keywords.CurrentReserved, "select"},
		{IDENT, keywords.NotAKeyword, "User"},
		{TokenType('{'), keywords.NotAKeyword, "{"},
		{IDENT, keywords.NotAKeyword, "name"},
		{TokenType('}'), keywords.NotAKeyword, "}"},
		{KEYWORD, keywords.CurrentReserved, "filter"},
		{TokenType('.'), keywords.NotAKeyword, "."},
		{IDENT, keywords.NotAKeyword, "name"},
		{TokenType('='), keywords.NotAKeyword, "="},
		{SCONST, keywords.NotAKeyword, "x"},
		{KEYWORD, keywords.CurrentReserved, "order"},
		{KEYWORD, keywords.Unreserved, "by"},
		{TokenType('.'), keywords.NotAKeyword, "."},
		{IDENT, keywords.NotAKeyword, "name"},
		{KEYWORD, keywords.CurrentReserved, "limit"},
		{ICONST, keywords.NotAKeyword, "1"},
		{EOF, keywords.NotAKeyword, ""},
	}

	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		assert.Equal(t, exp.typ, tokens[i].Type, "token %d type", i)
		assert.Equal(t, exp.category, tokens[i].Category, "token %d category", i)
		assert.Equal(t, exp.value, tokens[i].Value, "token %d value", i)
	}
}

// TestNonKeywordsTokenizeAsIdentifiers covers names that look close to
// keywords.
func TestNonKeywordsTokenizeAsIdentifiers(t *testing.T) {
	names := []string{
		"foo", "my_table", "x1", "totally_not_a_keyword",
		"selected", "_select", "select_", "withs", "Typeof2",
		"__", "____", "_", "a__b__",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			tokens, err := Tokenize(name)
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, IDENT, tokens[0].Type)
			assert.Equal(t, keywords.NotAKeyword, tokens[0].Category)
			assert.Equal(t, name, tokens[0].Value)
		})
	}
}

// TestQuotedKeywordIsName makes sure backticks turn any keyword into a name.
func TestQuotedKeywordIsName(t *testing.T) {
	for _, word := range keywords.CurrentReservedKeywords() {
		if strings.HasPrefix(word, "__") {
			// Dunder names cannot be backtick-quoted
			continue
		}
		tokens, err := Tokenize("`" + word + "`")
		require.NoError(t, err, "quoting %q", word)
		require.Len(t, tokens, 2)
		assert.Equal(t, QUOTED_IDENT, tokens[0].Type)
		assert.Equal(t, word, tokens[0].Value)
	}
}
