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
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/joshuanianji/edgedb/go/cliutil"
)

// EdgeqlkwCommand holds the state shared by edgeqlkw commands
type EdgeqlkwCommand struct {
	fs     afero.Fs
	loader *cliutil.Loader
	cfg    *cliutil.Config
	lg     *cliutil.Logger
}

// GetRootCommand creates the root command reading files from the OS
// filesystem.
func GetRootCommand() (*cobra.Command, *EdgeqlkwCommand) {
	return NewRootCommand(afero.NewOsFs())
}

// NewRootCommand creates the root command with all subcommands. Input
// files, config files and log files are all accessed through fs.
func NewRootCommand(fs afero.Fs) (*cobra.Command, *EdgeqlkwCommand) {
	ec := &EdgeqlkwCommand{
		fs:     fs,
		loader: cliutil.NewLoader(fs),
	}

	root := &cobra.Command{
		Use:   "edgeqlkw",
		Short: "Inspect the EdgeQL keyword table",
		Long: `edgeqlkw lists and classifies EdgeQL keywords, tokenizes EdgeQL files
and checks that the keyword table is consistent.

Keywords fall into three tiers:
  unreserved        usable as plain identifiers
  future_reserved   rejected as identifiers, reserved for later use
  current_reserved  rejected as identifiers

Configuration:
  Settings are read from flags, then EDGEQLKW_* environment variables,
  then an edgeqlkw.{yaml,toml,json} file found in --config-path or given
  with --config-file.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors have already been reported with usage by now
			cmd.SilenceUsage = true

			cfg, err := ec.loader.Load()
			if err != nil {
				return err
			}
			ec.cfg = cfg

			ec.lg, err = cliutil.SetupLogging(cfg, ec.fs, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		},
	}

	ec.loader.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		ec.newListCommand(),
		ec.newClassifyCommand(),
		ec.newTokenizeCommand(),
		ec.newCheckCommand(),
		ec.newErrorsCommand(),
	)

	return root, ec
}

// Close releases the log output opened for the command. Cobra skips
// post-run hooks when a command fails, so callers close after Execute
// returns whatever the outcome.
func (ec *EdgeqlkwCommand) Close() error {
	return ec.lg.Close()
}

// Config returns the configuration loaded for the running command. It is
// nil before the command runs.
func (ec *EdgeqlkwCommand) Config() *cliutil.Config {
	return ec.cfg
}
