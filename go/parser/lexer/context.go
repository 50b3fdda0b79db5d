/*
 * EdgeQL Lexer - Context Management
 *
 * The scan buffer and position bookkeeping for one lexer instance. There
 * is no global state; each Lexer owns its own context.
 */

package lexer

import (
	"unicode/utf8"

	"github.com/joshuanianji/edgedb/go/mterrors"
)

// LexerContext represents the complete scanning state of a lexer
type LexerContext struct {
	ScanBuf    []byte // The text being scanned
	ScanBufLen int
	ScanPos    int // Current byte offset

	LineNumber   int // Current line number (1-based)
	ColumnNumber int // Current column number (1-based, in characters)

	// PrevType is the type of the last token returned; tuple element
	// access (t.0.1) depends on it.
	PrevType TokenType

	// Err is the first error encountered. Once set, the lexer keeps
	// returning it.
	Err *LexerError
}

// NewLexerContext creates a new lexer context positioned at the start of input
func NewLexerContext(input string) *LexerContext {
	return &LexerContext{
		ScanBuf:      []byte(input),
		ScanBufLen:   len(input),
		LineNumber:   1,
		ColumnNumber: 1,
		PrevType:     EOF,
	}
}

// getByteAt returns the byte at the specified offset from current position
func (ctx *LexerContext) getByteAt(offset int) (byte, bool) {
	pos := ctx.ScanPos + offset
	if pos < 0 || pos >= ctx.ScanBufLen {
		return 0, false
	}
	return ctx.ScanBuf[pos], true
}

// PeekByte returns the byte at the current position without advancing
func (ctx *LexerContext) PeekByte() (byte, bool) {
	return ctx.getByteAt(0)
}

// PeekByteAt returns the byte offset bytes ahead without advancing
func (ctx *LexerContext) PeekByteAt(offset int) (byte, bool) {
	return ctx.getByteAt(offset)
}

// NextByte returns the current byte and advances the position
func (ctx *LexerContext) NextByte() (byte, bool) {
	b, ok := ctx.PeekByte()
	if !ok {
		return 0, false
	}
	ctx.advancePosition(b)
	return b, true
}

// HasPrefix reports whether the unscanned input starts with s
func (ctx *LexerContext) HasPrefix(s string) bool {
	if ctx.ScanPos+len(s) > ctx.ScanBufLen {
		return false
	}
	return string(ctx.ScanBuf[ctx.ScanPos:ctx.ScanPos+len(s)]) == s
}

// AdvanceBy moves the scan position forward by n bytes
func (ctx *LexerContext) AdvanceBy(n int) {
	for i := 0; i < n && ctx.ScanPos < ctx.ScanBufLen; i++ {
		ctx.advancePosition(ctx.ScanBuf[ctx.ScanPos])
	}
}

// advancePosition updates position tracking when consuming a byte
func (ctx *LexerContext) advancePosition(b byte) {
	ctx.ScanPos++

	if b == '\n' {
		ctx.LineNumber++
		ctx.ColumnNumber = 1
	} else if utf8.RuneStart(b) {
		// Continuation bytes do not start a new column
		ctx.ColumnNumber++
	}
}

// PeekRune returns the rune at the current position and its width
func (ctx *LexerContext) PeekRune() (rune, int) {
	if ctx.AtEOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(ctx.ScanBuf[ctx.ScanPos:])
}

// AdvanceRune moves forward by one rune
func (ctx *LexerContext) AdvanceRune() rune {
	r, size := ctx.PeekRune()
	ctx.AdvanceBy(size)
	return r
}

// AtEOF returns true if we're at the end of input
func (ctx *LexerContext) AtEOF() bool {
	return ctx.ScanPos >= ctx.ScanBufLen
}

// GetCurrentText returns the text from start position to current position
func (ctx *LexerContext) GetCurrentText(startPos int) string {
	if startPos < 0 || startPos > ctx.ScanPos {
		return ""
	}
	return string(ctx.ScanBuf[startPos:ctx.ScanPos])
}

// SetError records the first lexer error and returns it. Later errors are
// dropped because the lexer stops at the first one.
func (ctx *LexerContext) SetError(errorType LexerErrorType, err *mterrors.Error, start position, atEOF bool) *LexerError {
	if ctx.Err != nil {
		return ctx.Err
	}
	ctx.Err = &LexerError{
		Type:     errorType,
		Err:      err,
		Position: start.offset,
		Line:     start.line,
		Column:   start.column,
		NearText: nearText(ctx.ScanBuf, start.offset),
		AtEOF:    atEOF,
	}
	return ctx.Err
}

// position is a saved scan location
type position struct {
	offset int
	line   int
	column int
}

// mark returns the current scan location
func (ctx *LexerContext) mark() position {
	return position{offset: ctx.ScanPos, line: ctx.LineNumber, column: ctx.ColumnNumber}
}
