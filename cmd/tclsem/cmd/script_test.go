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
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"golang.org/x/tools/txtar"

	"github.com/tcl-lsp/tclsem/errors"
	"github.com/tcl-lsp/tclsem/syntax"
	"github.com/tcl-lsp/tclsem/token"
)

// TestScript runs the txtar scripts in testdata/script, each of which
// drives the tclsem binary end to end.
func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:                 filepath.Join("testdata", "script"),
		RequireExplicitExec: true,
		RequireUniqueNames:  true,
	})
}

// TestFixtureScriptsParse checks that every .tcl file embedded in the
// script fixtures parses cleanly, so a fixture edit can't silently
// start exercising the parser's error recovery instead of the CLI.
func TestFixtureScriptsParse(t *testing.T) {
	root := filepath.Join("testdata", "script")
	err := filepath.WalkDir(root, func(fullpath string, entry fs.DirEntry, err error) error {
		if err != nil || !strings.HasSuffix(fullpath, ".txtar") {
			return err
		}
		a, err := txtar.ParseFile(fullpath)
		if err != nil {
			return err
		}
		for _, f := range a.Files {
			if !strings.HasSuffix(f.Name, ".tcl") {
				continue
			}
			t.Run(path.Join(fullpath, f.Name), func(t *testing.T) {
				errs := &errors.List{}
				syntax.ParseScript(token.NewFile(f.Name, f.Data), errs)
				if errs.Len() > 0 {
					t.Errorf("fixture does not parse cleanly: %v", errs)
				}
			})
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"tclsem": Main,
	}))
}
