/*
 * EdgeQL Lexer - Error Handling
 *
 * Lexer errors carry the source position of the offending token together
 * with a coded mterrors error, which Unwrap exposes to errors.As.
 */

package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/joshuanianji/edgedb/go/mterrors"
)

// LexerErrorType represents different categories of lexer errors
type LexerErrorType int

const (
	UnterminatedString LexerErrorType = iota
	UnterminatedQuotedIdent
	InvalidQuotedIdent
	UnexpectedCharacter
	InvalidNumber
	ForbiddenIdentifier // __name__ that is not a keyword
)

func (t LexerErrorType) String() string {
	switch t {
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedQuotedIdent:
		return "UnterminatedQuotedIdent"
	case InvalidQuotedIdent:
		return "InvalidQuotedIdent"
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case InvalidNumber:
		return "InvalidNumber"
	case ForbiddenIdentifier:
		return "ForbiddenIdentifier"
	default:
		return fmt.Sprintf("LexerErrorType(%d)", int(t))
	}
}

// LexerError represents a lexical analysis error
type LexerError struct {
	Type     LexerErrorType
	Err      *mterrors.Error
	Position int    // Byte offset of the token that failed
	Line     int    // 1-based
	Column   int    // 1-based
	NearText string // Source text at the error, for context
	AtEOF    bool   // Input ended inside the token
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Err.Error(), e.Line, e.Column)
}

func (e *LexerError) Unwrap() error {
	return e.Err
}

// DetailedError returns a multi-line message including the near text.
func (e *LexerError) DetailedError() string {
	var parts []string
	switch {
	case e.AtEOF:
		parts = append(parts, fmt.Sprintf("%s at end of input", e.Err.Error()))
	case e.NearText != "":
		parts = append(parts, fmt.Sprintf("%s at or near \"%s\"", e.Err.Error(), e.NearText))
	default:
		parts = append(parts, e.Err.Error())
	}
	parts = append(parts, fmt.Sprintf("at line %d, column %d (position %d)", e.Line, e.Column, e.Position))
	if e.Err.Description != "" {
		parts = append(parts, "Hint: "+e.Err.Description)
	}
	return strings.Join(parts, "\n")
}

const maxNearTextLength = 20

// nearText returns up to maxNearTextLength characters of input starting at
// pos, stopping at the first newline.
func nearText(input []byte, pos int) string {
	if pos < 0 || pos >= len(input) {
		return ""
	}
	end := pos
	for n := 0; end < len(input) && n < maxNearTextLength; n++ {
		if input[end] == '\n' {
			break
		}
		_, size := utf8.DecodeRune(input[end:])
		end += size
	}
	return string(input[pos:end])
}
