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
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuanianji/edgedb/go/mterrors"
)

// errorDoc documents one error code
type errorDoc struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Message     string `json:"message" yaml:"message" toml:"message"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

type errorDocList struct {
	Errors []errorDoc `json:"errors" yaml:"errors" toml:"errors"`
}

// errorDocs builds the documentation from the unformatted error templates
func errorDocs() []errorDoc {
	docs := make([]errorDoc, 0, len(mterrors.Errors))
	for _, f := range mterrors.Errors {
		e := f()
		docs = append(docs, errorDoc{
			ID:          e.ID,
			Message:     strings.TrimPrefix(e.Error(), e.ID+": "),
			Description: e.Description,
		})
	}
	return docs
}

func (ec *EdgeqlkwCommand) runErrors(cmd *cobra.Command, args []string) error {
	docs := errorDocs()
	if ec.cfg.Format != "text" {
		return writeStructured(cmd.OutOrStdout(), ec.cfg.Format, errorDocList{Errors: docs})
	}

	p := ec.palette()
	w := cmd.OutOrStdout()
	for _, d := range docs {
		p.header().Fprint(w, d.ID)
		fmt.Fprintf(w, "  %s\n    %s\n", d.Message, d.Description)
	}
	return nil
}

func (ec *EdgeqlkwCommand) newErrorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "errors",
		Short: "List error codes",
		Long:  "List the error codes reported by the lexer and identifier checks, with their message templates and descriptions.",
		Args:  cobra.NoArgs,
		RunE:  ec.runErrors,
	}
}
