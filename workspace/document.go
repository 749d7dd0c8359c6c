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

// Package workspace implements the concurrent document manager: per-URI
// (text, version, parse tree) records plus a single global semantic
// index, rebuilt on a bounded single-writer strand and published under
// an atomic pointer so readers never observe a torn rebuild.
package workspace

import "github.com/tcl-lsp/tclsem/syntax"

// DocumentState is a per-URI record's lifecycle state.
type DocumentState int

const (
	StateOpen DocumentState = iota
	StateClosed
)

func (s DocumentState) String() string {
	if s == StateClosed {
		return "CLOSED"
	}
	return "OPEN"
}

// document is the manager's per-URI record: item (uri, languageId,
// version, text) plus the most recently published parse tree.
type document struct {
	uri        string
	languageID string
	version    int
	text       string
	script     *syntax.Script
	state      DocumentState
}

// Change is one element of a didChange notification's content-change
// array. Only whole-document ("Full") sync is supported; incremental
// changes are rejected as a protocol error.
type Change struct {
	Text string
}
