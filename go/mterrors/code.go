// Copyright 2022 The Vitess Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Modifications Copyright 2025 Supabase, Inc.

package mterrors

import (
	"errors"
	"fmt"
)

// Errors added to the list of variables below must be added to the Errors slice a little below in this same file.
// This will enable the auto-documentation of error codes by the edgeqlkw errors command.

var (
	// EQ1001 reserved keyword used as an identifier
	EQ1001 = errorWithID("EQ1001", "reserved keyword %q cannot be used as an identifier", "The word is used by the EdgeQL grammar and can only be used as a name when quoted with backticks.")
	// EQ1002 future reserved keyword used as an identifier
	EQ1002 = errorWithID("EQ1002", "%q is reserved for future use and cannot be used as an identifier", "The word is not used by the grammar yet but is reserved so a later version can give it a meaning. Quote it with backticks to use it as a name.")
	// EQ1003 double-underscore identifier
	EQ1003 = errorWithID("EQ1003", "identifiers surrounded by double underscores are forbidden: %q", "Names of the form __name__ are reserved for system use.")
	// EQ1004 not a bare identifier
	EQ1004 = errorWithID("EQ1004", "%q is not a valid bare identifier", "Bare names start with a letter or '_' and continue with letters, digits or '_'. Any other name must be quoted with backticks.")

	// EQ2001 unterminated string
	EQ2001 = errorWithID("EQ2001", "unterminated string, quoted by %s", "A string literal was opened but never closed before the end of input.")
	// EQ2002 unterminated quoted identifier
	EQ2002 = errorWithID("EQ2002", "unterminated backtick name", "A backtick-quoted name was opened but never closed before the end of input.")
	// EQ2003 invalid quoted identifier
	EQ2003 = errorWithID("EQ2003", "invalid quoted name: %s", "Backtick-quoted names must be non-empty, must not start with '@' or '$' and must not contain '::'.")
	// EQ2004 unexpected character
	EQ2004 = errorWithID("EQ2004", "unexpected character %q", "The character cannot start any EdgeQL token.")
	// EQ2005 invalid numeric literal
	EQ2005 = errorWithID("EQ2005", "invalid numeric literal %q", "Numbers may use '_' between digits, one decimal point, an exponent and an optional 'n' suffix.")

	// EQ9001 General Error
	EQ9001 = errorWithID("EQ9001", "[BUG] %s", "This error should not happen and is a bug. Please file an issue on GitHub: https://github.com/joshuanianji/edgedb/issues/new/choose.")

	// Errors is a list of errors that must match all the variables
	// defined above to enable auto-documentation of error codes.
	Errors = []func(args ...any) *Error{
		EQ1001,
		EQ1002,
		EQ1003,
		EQ1004,
		EQ2001,
		EQ2002,
		EQ2003,
		EQ2004,
		EQ2005,
		EQ9001,
	}
)

// Error is an error carrying a stable ID and a long-form description.
type Error struct {
	Err         error
	Description string
	ID          string
}

func (o *Error) Error() string {
	return o.Err.Error()
}

func (o *Error) Cause() error {
	return o.Err
}

func (o *Error) Unwrap() error {
	return o.Err
}

var _ error = (*Error)(nil)

// errorWithID returns a constructor for errors with the given ID. The short
// message is only formatted when arguments are supplied, so calling the
// constructor without arguments yields the raw template for documentation.
func errorWithID(id string, short, long string) func(args ...any) *Error {
	return func(args ...any) *Error {
		s := short
		if len(args) != 0 {
			s = fmt.Sprintf(s, args...)
		}

		return &Error{
			Err:         errors.New(id + ": " + s),
			Description: long,
			ID:          id,
		}
	}
}

// ID returns the error ID of the first *Error in err's chain, or "".
func ID(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.ID
	}
	return ""
}

// IsError reports whether err carries the error ID code. Message text is
// not consulted, since messages quote user input.
func IsError(err error, code string) bool {
	if err == nil {
		return false
	}
	return ID(err) == code
}
