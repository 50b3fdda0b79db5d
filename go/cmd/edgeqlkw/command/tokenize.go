// Copyright 2025 Supabase, Inc.
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

package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuanianji/edgedb/go/parser/lexer"
)

// stdinName is the path that stands for standard input
const stdinName = "-"

// fileTokens is the tokenize result for one input
type fileTokens struct {
	Path   string         `json:"path" yaml:"path" toml:"path"`
	Tokens []*lexer.Token `json:"tokens" yaml:"tokens" toml:"tokens"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`

	err error
}

type tokenizeOutput struct {
	Files []*fileTokens `json:"files" yaml:"files" toml:"files"`
}

// tokenizeFiles lexes every path with at most workers files in flight.
// Read errors abort the whole run; lexer errors are kept per file.
func tokenizeFiles(cmd *cobra.Command, fs afero.Fs, paths []string, workers int) ([]*fileTokens, error) {
	results := make([]*fileTokens, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := readSource(cmd.InOrStdin(), fs, path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			tokens, err := lexer.Tokenize(string(src))
			results[i] = &fileTokens{Path: path, Tokens: tokens, err: err}
			if err != nil {
				results[i].Error = err.Error()
				slog.Debug("tokenize failed", "path", path, "err", err)
			} else {
				slog.Debug("tokenized file", "path", path, "tokens", len(tokens))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readSource(stdin io.Reader, fs afero.Fs, path string) ([]byte, error) {
	if path == stdinName {
		return io.ReadAll(stdin)
	}
	return afero.ReadFile(fs, path)
}

// runTokenize prints the tokens of each file, or of stdin without args
func (ec *EdgeqlkwCommand) runTokenize(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{stdinName}
	}
	if n := countStdin(paths); n > 1 {
		return fmt.Errorf("standard input given %d times", n)
	}

	results, err := tokenizeFiles(cmd, ec.fs, paths, ec.cfg.Workers)
	if err != nil {
		return err
	}

	if ec.cfg.Format != "text" {
		if err := writeStructured(cmd.OutOrStdout(), ec.cfg.Format, tokenizeOutput{Files: results}); err != nil {
			return err
		}
	} else if err := ec.printTokens(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.err))
		}
	}
	return errors.Join(errs...)
}

func (ec *EdgeqlkwCommand) printTokens(w io.Writer, results []*fileTokens) error {
	p := ec.palette()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		for _, tok := range r.Tokens {
			if tok.Type == lexer.EOF {
				continue
			}
			location := fmt.Sprintf("%s:%d:%d", r.Path, tok.Line, tok.Column)
			if tok.Type == lexer.KEYWORD {
				fmt.Fprintf(tw, "%s\t%s\t%q\t%s\n", location, tok.Type, tok.Value, p.category(tok.Category).Sprint(categoryLabel(tok.Category)))
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%q\t\n", location, tok.Type, tok.Value)
		}
		if r.err != nil {
			fmt.Fprintf(tw, "%s\t%s\n", r.Path, p.failure().Sprint(r.err.Error()))
		}
	}
	return tw.Flush()
}

func countStdin(paths []string) int {
	n := 0
	for _, path := range paths {
		if path == stdinName {
			n++
		}
	}
	return n
}

func (ec *EdgeqlkwCommand) newTokenizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize [FILE...]",
		Short: "Print the tokens of EdgeQL files",
		Long: `Tokenize each file and print one token per line with its position. Keywords
show their category. With no files, or with "-", standard input is read.

Files are tokenized concurrently, up to --workers at a time.`,
		RunE: ec.runTokenize,
	}
}
