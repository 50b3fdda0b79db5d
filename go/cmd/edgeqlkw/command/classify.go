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
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuanianji/edgedb/go/parser/keywords"
	"github.com/joshuanianji/edgedb/go/parser/quote"
)

// classification describes one word given to the classify command
type classification struct {
	Word            string            `json:"word" yaml:"word" toml:"word"`
	Category        keywords.Category `json:"category" yaml:"category" toml:"category"`
	CanBeIdentifier bool              `json:"can_be_identifier" yaml:"can_be_identifier" toml:"can_be_identifier"`
	// Quoted is empty when the word has no backtick form
	Quoted          string            `json:"quoted,omitempty" yaml:"quoted,omitempty" toml:"quoted,omitempty"`
}

type classificationList struct {
	Words []classification `json:"words" yaml:"words" toml:"words"`
}

func classifyWord(word string) classification {
	// A word with no backtick form leaves Quoted empty
	quoted, _ := quote.QuoteIdent(word)
	return classification{
		Word:            word,
		Category:        keywords.Classify(word),
		CanBeIdentifier: quote.CheckBareIdentifier(word) == nil,
		Quoted:          quoted,
	}
}

// runClassify prints the category of each argument
func (ec *EdgeqlkwCommand) runClassify(cmd *cobra.Command, args []string) error {
	var out classificationList
	for _, word := range args {
		result := classifyWord(word)
		slog.Debug("classified word", "word", word, "category", result.Category.String())
		out.Words = append(out.Words, result)
	}

	if ec.cfg.Format != "text" {
		return writeStructured(cmd.OutOrStdout(), ec.cfg.Format, out)
	}

	p := ec.palette()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, result := range out.Words {
		var bare string
		switch {
		case result.CanBeIdentifier:
			bare = "bare"
		case result.Quoted != "":
			bare = "quote as " + result.Quoted
		default:
			bare = "cannot be quoted"
		}
		// Colored column last so escape codes do not skew alignment
		fmt.Fprintf(tw, "%s\t%s\t%s\n", result.Word, bare, p.category(result.Category).Sprint(categoryLabel(result.Category)))
	}
	return tw.Flush()
}

func (ec *EdgeqlkwCommand) newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify WORD...",
		Short: "Show the keyword category of words",
		Long: `Classify each word as unreserved, future_reserved, current_reserved or
not_a_keyword. Matching is case-insensitive for ASCII letters only.`,
		Args: cobra.MinimumNArgs(1),
		RunE: ec.runClassify,
	}
}
