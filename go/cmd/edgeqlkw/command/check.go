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
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuanianji/edgedb/go/mterrors"
	"github.com/joshuanianji/edgedb/go/parser/keywords"
	"github.com/joshuanianji/edgedb/go/parser/lexer"
)

type tierCount struct {
	Category keywords.Category `json:"category" yaml:"category" toml:"category"`
	Count    int               `json:"count" yaml:"count" toml:"count"`
}

// checkReport is the structured form of the check command output
type checkReport struct {
	Tiers []tierCount `json:"tiers" yaml:"tiers" toml:"tiers"`
	Total int         `json:"total" yaml:"total" toml:"total"`
}

// checkTokenizerAgreement scans every keyword, as written and upper-cased,
// and reports any word the lexer does not return as a keyword of the
// same category.
func checkTokenizerAgreement() error {
	var errs []error
	for _, kw := range keywords.AllKeywords() {
		for _, spelling := range []string{kw.Name, strings.ToUpper(kw.Name)} {
			tokens, err := lexer.Tokenize(spelling)
			if err != nil {
				errs = append(errs, fmt.Errorf("tokenizing %q: %w", spelling, err))
				continue
			}
			if len(tokens) != 2 || tokens[0].Type != lexer.KEYWORD || tokens[0].Category != kw.Category {
				errs = append(errs, fmt.Errorf("lexer disagrees on %q: want %s keyword, got %s", spelling, kw.Category, tokens[0]))
			}
		}
	}
	return errors.Join(errs...)
}

// runCheck validates the keyword tables and reports the tier sizes
func (ec *EdgeqlkwCommand) runCheck(cmd *cobra.Command, args []string) error {
	if err := keywords.Validate(); err != nil {
		return mterrors.EQ9001(fmt.Sprintf("keyword table is inconsistent: %v", err))
	}
	if err := checkTokenizerAgreement(); err != nil {
		return mterrors.EQ9001(fmt.Sprintf("keyword table and lexer disagree: %v", err))
	}

	var report checkReport
	for _, c := range keywords.Categories() {
		n := len(keywords.KeywordsByCategory(c))
		report.Tiers = append(report.Tiers, tierCount{Category: c, Count: n})
		report.Total += n
	}

	if ec.cfg.Format != "text" {
		return writeStructured(cmd.OutOrStdout(), ec.cfg.Format, report)
	}

	p := ec.palette()
	w := cmd.OutOrStdout()
	for _, tc := range report.Tiers {
		label := fmt.Sprintf("%-17s", categoryLabel(tc.Category))
		fmt.Fprintf(w, "%s %3d\n", p.category(tc.Category).Sprint(label), tc.Count)
	}
	fmt.Fprintf(w, "%-17s %3d\n", "total", report.Total)
	fmt.Fprintln(w, "ok")
	return nil
}

func (ec *EdgeqlkwCommand) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the keyword table",
		Long: `Check that keyword tiers are disjoint and lowercase, and that the lexer
recognizes every keyword with the same category in any letter case.`,
		Args: cobra.NoArgs,
		RunE: ec.runCheck,
	}
}
