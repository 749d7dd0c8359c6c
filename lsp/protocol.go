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

// Package lsp is the editor-protocol adapter: it maps inbound editor
// requests onto the document manager and translates positions between
// the wire's (line, character) pairs and token positions. Transport
// framing and JSON (de)serialisation are external collaborators — this
// package defines the request/response shapes a transport layer would
// bind to, and nothing below it knows the protocol exists.
package lsp

// Position is a 0-based (line, character) pair as it appears on the
// wire.
type Position struct {
	Line      int
	Character int
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

// Location is a range within a named document.
type Location struct {
	URI   string
	Range Range
}

// TextDocumentItem carries a document's full content on didOpen.
type TextDocumentItem struct {
	URI        string
	LanguageID string
	Version    int
	Text       string
}

// TextDocumentIdentifier names a document.
type TextDocumentIdentifier struct {
	URI string
}

// VersionedTextDocumentIdentifier names a document at a specific
// version.
type VersionedTextDocumentIdentifier struct {
	URI     string
	Version int
}

// TextDocumentContentChangeEvent is one element of a didChange
// notification. Only whole-document changes are accepted: Text is the
// document's complete new content.
type TextDocumentContentChangeEvent struct {
	Text string
}

// TextDocumentPositionParams addresses a position within a document,
// shared by the definition and references requests.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier
	Position     Position
}

// TextDocumentSyncKind selects how document content is synchronised.
type TextDocumentSyncKind int

// SyncFull is the only kind the server advertises: every didChange
// carries the full document text.
const SyncFull TextDocumentSyncKind = 1

// TextDocumentSyncOptions is the sync-related slice of the server's
// advertised capabilities.
type TextDocumentSyncOptions struct {
	OpenClose bool
	Change    TextDocumentSyncKind
}

// ServerCapabilities is what the server advertises in response to
// initialize.
type ServerCapabilities struct {
	TextDocumentSync   TextDocumentSyncOptions
	DefinitionProvider bool
	ReferencesProvider bool
}

// InitializeResult is the response to the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities
}
