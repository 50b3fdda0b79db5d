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

	"github.com/spf13/cobra"

	"github.com/joshuanianji/edgedb/go/parser/keywords"
)

// keywordList is the structured form of the list command output
type keywordList struct {
	Keywords []keywords.Keyword `json:"keywords" yaml:"keywords" toml:"keywords"`
}

// runList prints the keyword tiers, optionally limited to one category
func (ec *EdgeqlkwCommand) runList(cmd *cobra.Command, args []string) error {
	categories := keywords.Categories()
	if name, _ := cmd.Flags().GetString("category"); name != "" {
		c, err := keywords.ParseCategory(name)
		if err != nil {
			return err
		}
		if c == keywords.NotAKeyword {
			return fmt.Errorf("category %q has no keywords", name)
		}
		categories = []keywords.Category{c}
	}

	if ec.cfg.Format != "text" {
		var out keywordList
		for _, c := range categories {
			for _, word := range keywords.KeywordsByCategory(c) {
				out.Keywords = append(out.Keywords, keywords.Keyword{Name: word, Category: c})
			}
		}
		return writeStructured(cmd.OutOrStdout(), ec.cfg.Format, out)
	}

	p := ec.palette()
	w := cmd.OutOrStdout()
	for i, c := range categories {
		words := keywords.KeywordsByCategory(c)
		if i > 0 {
			fmt.Fprintln(w)
		}
		p.header().Fprintf(w, "%s (%d)\n", categoryLabel(c), len(words))
		wordColor := p.category(c)
		for _, word := range words {
			wordColor.Fprintln(w, word)
		}
	}
	return nil
}

// categoryLabel returns the lowercase text form of a category
func categoryLabel(c keywords.Category) string {
	text, err := c.MarshalText()
	if err != nil {
		return c.String()
	}
	return string(text)
}

func (ec *EdgeqlkwCommand) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List keywords by tier",
		Long:  "List every keyword grouped by tier, in table order. Use --category to show a single tier.",
		Args:  cobra.NoArgs,
		RunE:  ec.runList,
	}

	cmd.Flags().String("category", "", "Only list one tier (unreserved, future_reserved, current_reserved)")

	return cmd
}
