/*
 * EdgeQL Identifier Quoting
 *
 * Decides whether a name can be written bare and backtick-quotes it when it
 * cannot. Keyword checks go through the lexer, which classifies words with
 * the keywords package, so there is no separate reserved word list here.
 */

package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuanianji/edgedb/go/mterrors"
	"github.com/joshuanianji/edgedb/go/parser/lexer"
)

// CheckBareIdentifier returns nil if name can be written without quotes in
// an identifier position. Reserved keywords fail with EQ1001 or EQ1002,
// double-underscore names with EQ1003, and anything that does not scan as
// a single word with EQ1004.
func CheckBareIdentifier(name string) error {
	tokens, err := lexer.Tokenize(name)
	if err != nil {
		var lexErr *lexer.LexerError
		if errors.As(err, &lexErr) && lexErr.Type == lexer.ForbiddenIdentifier {
			return lexErr.Err
		}
		return mterrors.EQ1004(name)
	}

	// One word followed by EOF, covering the whole input
	if len(tokens) != 2 || tokens[0].Text != name {
		return mterrors.EQ1004(name)
	}

	tok := tokens[0]
	if tok.Type != lexer.IDENT && tok.Type != lexer.KEYWORD {
		return mterrors.EQ1004(name)
	}
	_, err = tok.AsIdentifier()
	return err
}

// NeedsQuoting reports whether name must be backtick-quoted to be used as
// an identifier.
func NeedsQuoting(name string) bool {
	return CheckBareIdentifier(name) != nil
}

// QuoteIdent returns name unchanged when it can be written bare, and
// otherwise wrapped in backticks with inner backticks doubled.
//
// Some names have no backtick form: the empty name, names starting with
// '@' or '$', names containing "::" and double-underscore names. For those
// QuoteIdent returns the EQ2003 error the lexer gives the quoted text.
func QuoteIdent(name string) (string, error) {
	if !NeedsQuoting(name) {
		return name, nil
	}

	quoted := "`" + strings.ReplaceAll(name, "`", "``") + "`"
	if _, err := lexer.Tokenize(quoted); err != nil {
		var lexErr *lexer.LexerError
		if errors.As(err, &lexErr) {
			return "", lexErr.Err
		}
		return "", err
	}
	return quoted, nil
}

// QuoteQualifiedName quotes each part and joins them with "::", as in
// default::User. It fails on the first part QuoteIdent rejects.
func QuoteQualifiedName(parts ...string) (string, error) {
	quoted := make([]string, len(parts))
	for i, part := range parts {
		q, err := QuoteIdent(part)
		if err != nil {
			return "", fmt.Errorf("quoting name part %d: %w", i, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, "::"), nil
}
