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

// Tclsem is a semantic indexer and language server for Tcl-family
// scripts: it parses scripts into syntax trees, indexes namespaces and
// procedure definitions, and resolves call sites to definitions.
package main

import (
	"os"

	"github.com/tcl-lsp/tclsem/cmd/tclsem/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
