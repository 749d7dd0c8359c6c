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

package lsp

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tcl-lsp/tclsem/entity"
	"github.com/tcl-lsp/tclsem/token"
	"github.com/tcl-lsp/tclsem/workspace"
)

// Core is the document-manager surface the adapter drives. It is
// implemented by workspace.Manager; the indirection exists so a
// transport layer can be tested against a fake without standing up the
// real rebuild machinery.
type Core interface {
	DidOpen(uri, languageID string, version int, text string)
	DidChange(uri string, newVersion int, changes []workspace.Change) bool
	DidClose(uri string)
	DefinitionAt(uri string, pos token.Position) []entity.Reference
	ReferencesAt(uri string, pos token.Position) []entity.Reference
	Close() error
}

var _ Core = (*workspace.Manager)(nil)

type serverState int

const (
	stateCreated serverState = iota
	stateInitialized
	stateShutdown
)

// Server is the protocol-side state machine. One Server serves one
// editor connection; requests arriving outside the
// initialize/shutdown window are rejected rather than forwarded to
// the core.
type Server struct {
	core  Core
	log   logrus.FieldLogger
	state serverState
}

// NewServer returns a Server in the pre-initialize state.
func NewServer(core Core, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{core: core, log: log}
}

// Initialize answers the handshake with the server's capabilities:
// full-document sync, go-to-definition, and find-references.
func (s *Server) Initialize() (InitializeResult, error) {
	if s.state != stateCreated {
		return InitializeResult{}, fmt.Errorf("lsp: initialize received in state %d", s.state)
	}
	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: TextDocumentSyncOptions{
				OpenClose: true,
				Change:    SyncFull,
			},
			DefinitionProvider: true,
			ReferencesProvider: true,
		},
	}, nil
}

// Initialized completes the handshake.
func (s *Server) Initialized() {
	s.state = stateInitialized
}

// Shutdown stops accepting document traffic. The connection stays up
// until Exit.
func (s *Server) Shutdown() {
	s.state = stateShutdown
}

// Exit tears the core down and reports any error from draining its
// rebuild pool.
func (s *Server) Exit() error {
	return s.core.Close()
}

// DidOpen forwards a newly opened document to the core.
func (s *Server) DidOpen(item TextDocumentItem) {
	if !s.accepting("didOpen") {
		return
	}
	s.core.DidOpen(item.URI, item.LanguageID, item.Version, item.Text)
}

// DidChange forwards an edit. Malformed notifications (stale version,
// not exactly one full-document change) are dropped by the core with a
// log; they are protocol errors, not failures.
func (s *Server) DidChange(id VersionedTextDocumentIdentifier, changes []TextDocumentContentChangeEvent) {
	if !s.accepting("didChange") {
		return
	}
	wsChanges := make([]workspace.Change, len(changes))
	for i, ch := range changes {
		wsChanges[i] = workspace.Change{Text: ch.Text}
	}
	s.core.DidChange(id.URI, id.Version, wsChanges)
}

// DidClose forwards a close notification.
func (s *Server) DidClose(id TextDocumentIdentifier) {
	if !s.accepting("didClose") {
		return
	}
	s.core.DidClose(id.URI)
}

// Definition answers textDocument/definition: the DEFINITION site of
// the procedure named at the given position, or nothing if the cursor
// is not on a resolvable command name.
func (s *Server) Definition(params TextDocumentPositionParams) []Location {
	if !s.accepting("definition") {
		return nil
	}
	refs := s.core.DefinitionAt(params.TextDocument.URI, toTokenPosition(params.Position))
	return toLocations(refs)
}

// References answers textDocument/references: every recorded reference
// to the procedure named at the given position.
func (s *Server) References(params TextDocumentPositionParams) []Location {
	if !s.accepting("references") {
		return nil
	}
	refs := s.core.ReferencesAt(params.TextDocument.URI, toTokenPosition(params.Position))
	return toLocations(refs)
}

func (s *Server) accepting(method string) bool {
	if s.state != stateInitialized {
		s.log.WithFields(logrus.Fields{"method": method, "state": int(s.state)}).
			Warn("dropping request outside initialize/shutdown window")
		return false
	}
	return true
}

func toTokenPosition(p Position) token.Position {
	return token.Position{Line: p.Line, Column: p.Character}
}

// toLocations expands stored references into wire locations. The
// ranges are zero-width: a reference records where a name starts, not
// how far it extends, and clients treat an empty range at the target
// as "jump here".
func toLocations(refs []entity.Reference) []Location {
	if len(refs) == 0 {
		return nil
	}
	locs := make([]Location, len(refs))
	for i, ref := range refs {
		pos := ref.Location.Position()
		p := Position{Line: pos.Line, Character: pos.Column}
		locs[i] = Location{URI: pos.Filename, Range: Range{Start: p, End: p}}
	}
	return locs
}
