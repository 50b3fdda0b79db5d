/*
 * EdgeQL Lexer - Token Definitions
 *
 * Token types produced by the lexer. Single-character punctuation uses the
 * character itself as its TokenType, so named types start above the ASCII
 * range.
 */

package lexer

import (
	"fmt"

	"github.com/joshuanianji/edgedb/go/mterrors"
	"github.com/joshuanianji/edgedb/go/parser/keywords"
)

// TokenType represents EdgeQL token types.
type TokenType int

// EOF marks the end of input.
const EOF TokenType = 0

const (
	// Named tokens start after the ASCII range
	IDENT        TokenType = iota + 256 // Bare identifier, not a keyword
	KEYWORD                             // Word found in the keyword table
	QUOTED_IDENT                        // `backtick quoted` name
	ICONST                              // Integer constant
	FCONST                              // Float constant
	NCONST                              // n-suffixed decimal or bigint constant
	SCONST                              // String constant
	BCONST                              // Bytes constant b'...'
	PARAM                               // $name or $1
	OP                                  // Multi-character operator
)

var tokenNames = map[TokenType]string{
	EOF:          "EOF",
	IDENT:        "IDENT",
	KEYWORD:      "KEYWORD",
	QUOTED_IDENT: "QUOTED_IDENT",
	ICONST:       "ICONST",
	FCONST:       "FCONST",
	NCONST:       "NCONST",
	SCONST:       "SCONST",
	BCONST:       "BCONST",
	PARAM:        "PARAM",
	OP:           "OP",
}

// String returns the string representation of a TokenType.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	if t > 0 && t < 128 {
		return fmt.Sprintf("'%c'", rune(t))
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the names
// produced by MarshalText.
func (t *TokenType) UnmarshalText(text []byte) error {
	s := string(text)
	for typ, name := range tokenNames {
		if name == s {
			*t = typ
			return nil
		}
	}
	if len(s) == 3 && s[0] == '\'' && s[2] == '\'' {
		*t = TokenType(s[1])
		return nil
	}
	return fmt.Errorf("unknown token type %q", s)
}

// Token is a single lexical unit with its source position.
type Token struct {
	Type TokenType `json:"type" yaml:"type" toml:"type"`

	// Text is the token exactly as written in the source.
	Text string `json:"text" yaml:"text" toml:"text"`

	// Value is the decoded token value: the canonical lowercase spelling
	// for keywords, the unescaped name for quoted identifiers, the body of
	// string and bytes literals, the name of parameters, numbers without
	// their '_' separators, and Text otherwise.
	Value string `json:"value" yaml:"value" toml:"value"`

	// Category is set for KEYWORD tokens only.
	Category keywords.Category `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`

	Position int `json:"position" yaml:"position" toml:"position"` // Byte offset in the input
	Line     int `json:"line" yaml:"line" toml:"line"`             // 1-based
	Column   int `json:"column" yaml:"column" toml:"column"`       // 1-based, in characters
}

// IsKeyword returns true if the token is a keyword of one of the given
// categories, or of any category when none are given.
func (t *Token) IsKeyword(categories ...keywords.Category) bool {
	if t.Type != KEYWORD {
		return false
	}
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if t.Category == c {
			return true
		}
	}
	return false
}

// AsIdentifier returns the name the token stands for when it is used in an
// identifier position. Unreserved keywords are accepted as names; reserved
// keywords are rejected with a coded error.
func (t *Token) AsIdentifier() (string, error) {
	switch t.Type {
	case IDENT:
		return t.Text, nil
	case QUOTED_IDENT:
		return t.Value, nil
	case KEYWORD:
		switch t.Category {
		case keywords.Unreserved:
			return t.Text, nil
		case keywords.FutureReserved:
			return "", mterrors.EQ1002(t.Text)
		case keywords.CurrentReserved:
			return "", mterrors.EQ1001(t.Text)
		default:
			return "", mterrors.EQ9001(fmt.Sprintf("keyword token %q without category", t.Text))
		}
	default:
		return "", mterrors.EQ1004(t.Text)
	}
}

func (t *Token) String() string {
	if t.Type == KEYWORD {
		return fmt.Sprintf("%s(%s, %s) at %d:%d", t.Type, t.Value, t.Category, t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Text, t.Line, t.Column)
}
