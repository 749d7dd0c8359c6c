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

package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the language server over stdio",
		Long: `Serve runs tclsem as a language server for an attached editor.

This build does not include a stdio transport; the lsp package defines
the adapter a transport binds to. Use "tclsem index" to exercise the
indexer from the command line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("stdio transport is not included in this build")
		},
	}
}
