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

package syntax

import "github.com/tcl-lsp/tclsem/token"

// CallKind discriminates the small closed set of commands the
// recogniser specialises, plus the generic USER fallback that every
// other command gets.
type CallKind int

const (
	CallUser CallKind = iota
	CallProc
	CallNamespaceEval
	CallWhile
	CallFor
	CallForeach
	CallIf
)

func (k CallKind) String() string {
	switch k {
	case CallProc:
		return "PROC"
	case CallNamespaceEval:
		return "NAMESPACE_EVAL"
	case CallWhile:
		return "WHILE"
	case CallFor:
		return "FOR"
	case CallForeach:
		return "FOREACH"
	case CallIf:
		return "IF"
	default:
		return "USER"
	}
}

// Call is one command in source order: a kind, its words (including the
// command-name word at index 0), and the absolute lexical namespace
// path in effect at the call site, which the index pass resolves
// lookups against.
type Call struct {
	Kind             CallKind
	Words            []Word
	LexicalNamespace []string
	Pos              token.Pos
}

// Script is a sequence of Calls in source order, owning them and
// (transitively, through Word payloads) every nested Word and Script
// beneath them.
type Script struct {
	Pos      token.Pos
	Commands []Call
}
