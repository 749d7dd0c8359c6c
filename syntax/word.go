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

// Package syntax implements the syntactic parser and the
// recognised-command specialisation: turning raw source bytes into a
// Script tree of typed Calls built from Words. Commands that introduce
// scope or structure (proc, namespace eval, the loop constructs) get
// typed Call variants whose literal body words are recursively parsed
// as nested scripts.
package syntax

import (
	"github.com/tcl-lsp/tclsem/token"
)

// WordKind discriminates Word's tagged variant. Word is a flattened
// struct with per-kind payload fields rather than an interface
// hierarchy.
type WordKind int

const (
	// WordText is a literal byte slice.
	WordText WordKind = iota
	// WordVariable is a $name substitution.
	WordVariable
	// WordArrayAccess is a $name(idx...) substitution.
	WordArrayAccess
	// WordScript holds an owned child Script, from a [...] command
	// substitution or a body word recognised as code.
	WordScript
	// WordTokenList is a heterogeneous concatenation of sub-words.
	WordTokenList
	// WordExpand marks a word prefixed by the {*} expansion marker.
	WordExpand
	// WordList is a word reinterpreted as a list of sub-words (used for
	// proc argument specs).
	WordList
	// WordError carries a diagnostic at a specific location.
	WordError
)

func (k WordKind) String() string {
	switch k {
	case WordText:
		return "TEXT"
	case WordVariable:
		return "VARIABLE"
	case WordArrayAccess:
		return "ARRAY_ACCESS"
	case WordScript:
		return "SCRIPT"
	case WordTokenList:
		return "TOKEN_LIST"
	case WordExpand:
		return "EXPAND"
	case WordList:
		return "LIST"
	case WordError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Word is one syntactic unit of a command. Every Word carries its
// position and its literal source slice; a Word exclusively owns any
// nested Words or child Script reachable through its payload fields.
// There are no back-pointers: traversals carry context explicitly.
type Word struct {
	Kind WordKind
	Pos  token.Pos
	Text []byte

	// VariableName is set for WordVariable and WordArrayAccess.
	VariableName string
	// ArrayIndex is set for WordArrayAccess: the sequence of words
	// making up $name(idx...)'s index expression.
	ArrayIndex []Word

	// Script is set for WordScript.
	Script *Script

	// Parts is set for WordTokenList (heterogeneous sub-fragments) and
	// for WordList (list elements, themselves re-split into up to two
	// sub-parts for proc argument specs).
	Parts []Word

	// Inner is set for WordExpand: the word the {*} marker applies to.
	Inner *Word

	// Message is set for WordError.
	Message string
}

// Location returns the Word's source location, satisfying any consumer
// that wants a uniform "has a Pos" accessor.
func (w *Word) Location() token.Pos { return w.Pos }
