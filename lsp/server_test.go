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

package lsp_test

import (
	"io"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/sirupsen/logrus"

	"github.com/tcl-lsp/tclsem/lsp"
	"github.com/tcl-lsp/tclsem/workspace"
)

func newServer(t *testing.T) (*lsp.Server, *workspace.Manager) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := workspace.NewManager(workspace.Options{Logger: log})
	return lsp.NewServer(m, log), m
}

func TestInitializeAdvertisesCapabilities(t *testing.T) {
	s, _ := newServer(t)
	res, err := s.Initialize()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(res.Capabilities.DefinitionProvider))
	qt.Assert(t, qt.IsTrue(res.Capabilities.ReferencesProvider))
	qt.Assert(t, qt.IsTrue(res.Capabilities.TextDocumentSync.OpenClose))
	qt.Assert(t, qt.Equals(res.Capabilities.TextDocumentSync.Change, lsp.SyncFull))
}

func TestRequestsBeforeInitializedAreDropped(t *testing.T) {
	s, m := newServer(t)
	s.DidOpen(lsp.TextDocumentItem{URI: "a.tcl", LanguageID: "tcl", Version: 1, Text: "proc P {} {}"})
	qt.Assert(t, qt.IsNil(m.Close()))
	qt.Assert(t, qt.Equals(m.Snapshot().Procedures.Len(), 0))
}

func TestDefinitionRoundTrip(t *testing.T) {
	s, m := newServer(t)
	_, err := s.Initialize()
	qt.Assert(t, qt.IsNil(err))
	s.Initialized()

	s.DidOpen(lsp.TextDocumentItem{
		URI:        "a.tcl",
		LanguageID: "tcl",
		Version:    1,
		Text:       "proc Greet {who} {}\nGreet world\n",
	})
	qt.Assert(t, qt.IsNil(m.Close()))

	locs := s.Definition(lsp.TextDocumentPositionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "a.tcl"},
		Position:     lsp.Position{Line: 1, Character: 0},
	})
	qt.Assert(t, qt.HasLen(locs, 1))
	qt.Assert(t, qt.Equals(locs[0].URI, "a.tcl"))
	qt.Assert(t, qt.Equals(locs[0].Range.Start, lsp.Position{Line: 0, Character: 5}))
}

func TestReferencesRoundTrip(t *testing.T) {
	s, m := newServer(t)
	_, err := s.Initialize()
	qt.Assert(t, qt.IsNil(err))
	s.Initialized()

	s.DidOpen(lsp.TextDocumentItem{
		URI:        "a.tcl",
		LanguageID: "tcl",
		Version:    1,
		Text:       "proc Greet {who} {}\nGreet world\nGreet again\n",
	})
	qt.Assert(t, qt.IsNil(m.Close()))

	locs := s.References(lsp.TextDocumentPositionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: "a.tcl"},
		Position:     lsp.Position{Line: 2, Character: 3},
	})
	qt.Assert(t, qt.HasLen(locs, 3))
}

func TestShutdownStopsDocumentTraffic(t *testing.T) {
	s, m := newServer(t)
	_, err := s.Initialize()
	qt.Assert(t, qt.IsNil(err))
	s.Initialized()
	s.Shutdown()

	s.DidOpen(lsp.TextDocumentItem{URI: "a.tcl", LanguageID: "tcl", Version: 1, Text: "proc P {} {}"})
	qt.Assert(t, qt.IsNil(s.Exit()))
	qt.Assert(t, qt.Equals(m.Snapshot().Procedures.Len(), 0))
}

func TestInitializeTwiceFails(t *testing.T) {
	s, _ := newServer(t)
	_, err := s.Initialize()
	qt.Assert(t, qt.IsNil(err))
	s.Initialized()
	_, err = s.Initialize()
	qt.Assert(t, qt.IsNotNil(err))
}
