// Copyright 2025 The tclsem Authors
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

// Package cmd implements the tclsem command tree.
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel string
	workers  int
}

// New returns the tclsem root command.
func New() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tclsem",
		Short: "tclsem indexes Tcl-family scripts and serves editor queries",
		Long: `tclsem is a semantic indexer for Tcl-family scripts.

It parses scripts into syntax trees, discovers namespaces and procedure
definitions, resolves call sites to definitions with arity-based
overload selection, and answers go-to-definition and find-references
queries over the resulting index.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(flags.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level %q: %w", flags.logLevel, err)
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn",
		"log verbosity: debug, info, warn, error")
	cmd.PersistentFlags().IntVar(&flags.workers, "workers", 0,
		"rebuild worker pool size (0 means the built-in default)")

	cmd.AddCommand(newIndexCmd(flags))
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Main runs the tclsem tool and returns the code for passing to
// os.Exit.
func Main() int {
	if err := New().Execute(); err != nil {
		return 1
	}
	return 0
}
