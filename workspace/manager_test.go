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

package workspace_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/rogpeppe/go-internal/txtar"
	"github.com/sirupsen/logrus"

	"github.com/tcl-lsp/tclsem/entity"
	"github.com/tcl-lsp/tclsem/token"
	"github.com/tcl-lsp/tclsem/workspace"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// openAll opens every file of a txtar archive in a fresh Manager and
// waits for the rebuilds to land.
func openAll(t *testing.T, archive string) *workspace.Manager {
	t.Helper()
	m := workspace.NewManager(workspace.Options{Logger: quietLogger()})
	for _, f := range txtar.Parse([]byte(archive)).Files {
		m.DidOpen(f.Name, "tcl", 1, string(f.Data))
	}
	qt.Assert(t, qt.IsNil(m.Close()))
	return m
}

const crossFileArchive = `
-- app.tcl --
namespace eval App {
    proc Run {} { puts running }
}
-- main.tcl --
App::Run
`

func TestCrossFileDefinition(t *testing.T) {
	m := openAll(t, crossFileArchive)

	// cursor on "App::Run" in main.tcl, line 0, column 0
	defs := m.DefinitionAt("main.tcl", token.Position{Line: 0, Column: 0})
	qt.Assert(t, qt.HasLen(defs, 1))
	qt.Assert(t, qt.Equals(defs[0].Kind, entity.DEFINITION))
	qt.Assert(t, qt.Equals(defs[0].Location.Position().Filename, "app.tcl"))
	qt.Assert(t, qt.Equals(defs[0].Location.Position().Line, 1))
}

func TestCrossFileReferencesIncludeUsage(t *testing.T) {
	m := openAll(t, crossFileArchive)

	refs := m.ReferencesAt("main.tcl", token.Position{Line: 0, Column: 0})
	qt.Assert(t, qt.HasLen(refs, 2))
	qt.Assert(t, qt.Equals(refs[0].Kind, entity.DEFINITION))
	qt.Assert(t, qt.Equals(refs[1].Kind, entity.USAGE))
}

func TestQueryOffCommandNameReturnsNothing(t *testing.T) {
	m := openAll(t, crossFileArchive)

	// cursor on "Run"'s body word inside app.tcl, not a command name
	defs := m.DefinitionAt("app.tcl", token.Position{Line: 1, Column: 16})
	qt.Assert(t, qt.IsNil(defs))
}

func TestQueryUnknownDocumentReturnsNothing(t *testing.T) {
	m := openAll(t, crossFileArchive)
	qt.Assert(t, qt.IsNil(m.DefinitionAt("missing.tcl", token.Position{})))
}

func TestDidChangeRequiresNewerVersion(t *testing.T) {
	m := workspace.NewManager(workspace.Options{Logger: quietLogger()})
	m.DidOpen("a.tcl", "tcl", 3, "proc P {} {}")

	qt.Assert(t, qt.IsFalse(m.DidChange("a.tcl", 3, []workspace.Change{{Text: ""}})))
	qt.Assert(t, qt.IsFalse(m.DidChange("a.tcl", 2, []workspace.Change{{Text: ""}})))
	qt.Assert(t, qt.IsTrue(m.DidChange("a.tcl", 4, []workspace.Change{{Text: "proc Q {} {}"}})))
	qt.Assert(t, qt.IsNil(m.Close()))

	idx := m.Snapshot()
	qt.Assert(t, qt.HasLen(idx.Procedures.ByName("Q"), 1))
	qt.Assert(t, qt.HasLen(idx.Procedures.ByName("P"), 0))
}

func TestDidChangeRequiresSingleFullChange(t *testing.T) {
	m := workspace.NewManager(workspace.Options{Logger: quietLogger()})
	m.DidOpen("a.tcl", "tcl", 1, "proc P {} {}")

	two := []workspace.Change{{Text: "x"}, {Text: "y"}}
	qt.Assert(t, qt.IsFalse(m.DidChange("a.tcl", 2, two)))
	qt.Assert(t, qt.IsFalse(m.DidChange("a.tcl", 2, nil)))
	qt.Assert(t, qt.IsNil(m.Close()))
}

func TestEditReplacesIndexAtomically(t *testing.T) {
	m := workspace.NewManager(workspace.Options{Logger: quietLogger()})
	m.DidOpen("a.tcl", "tcl", 1, "proc Old {} {}")
	qt.Assert(t, qt.IsNil(m.Close()))

	before := m.Snapshot()
	qt.Assert(t, qt.HasLen(before.Procedures.ByName("Old"), 1))

	m.DidChange("a.tcl", 2, []workspace.Change{{Text: "proc New {} {}"}})
	qt.Assert(t, qt.IsNil(m.Close()))

	// the snapshot taken before the edit is untouched; the fresh one
	// has only the new definition
	qt.Assert(t, qt.HasLen(before.Procedures.ByName("Old"), 1))
	after := m.Snapshot()
	qt.Assert(t, qt.HasLen(after.Procedures.ByName("Old"), 0))
	qt.Assert(t, qt.HasLen(after.Procedures.ByName("New"), 1))
}

func TestDidCloseLeavesIndexResidue(t *testing.T) {
	m := openAll(t, crossFileArchive)
	m.DidClose("app.tcl")

	// closing does not scrub app.tcl's contributions...
	idx := m.Snapshot()
	qt.Assert(t, qt.HasLen(idx.Procedures.ByName("Run"), 1))

	// ...but the next rebuild of any other document does
	m.DidChange("main.tcl", 2, []workspace.Change{{Text: "App::Run"}})
	qt.Assert(t, qt.IsNil(m.Close()))
	qt.Assert(t, qt.HasLen(m.Snapshot().Procedures.ByName("Run"), 0))
}

func TestConcurrentEditsConverge(t *testing.T) {
	m := workspace.NewManager(workspace.Options{Logger: quietLogger()})
	m.DidOpen("a.tcl", "tcl", 1, "proc P0 {} {}")
	for v := 2; v <= 20; v++ {
		text := fmt.Sprintf("proc P%d {} {}", v%10)
		m.DidChange("a.tcl", v, []workspace.Change{{Text: text}})
	}
	qt.Assert(t, qt.IsNil(m.Close()))

	// the final index reflects the final edit (version 20 -> P0)
	qt.Assert(t, qt.HasLen(m.Snapshot().Procedures.ByName("P0"), 1))
}
