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

// Package locate implements the cursor locator: given a Script and a
// target source position, find the innermost enclosing
// (call, argument-index, word) triple. Locating is a pure function
// from a position to a structural element, with no mutable state of
// its own.
package locate

import (
	"github.com/tcl-lsp/tclsem/syntax"
	"github.com/tcl-lsp/tclsem/token"
)

// Cursor is the innermost word enclosing or immediately preceding a
// queried position, along with the call and argument index it belongs
// to. A zero Cursor (Call == nil) means the position matched nothing.
type Cursor struct {
	Call          *syntax.Call
	ArgumentIndex int
	Word          *syntax.Word
}

// Found reports whether the cursor landed on an actual word.
func (c Cursor) Found() bool {
	return c.Call != nil
}

// Locate walks script in source order and returns the latest word
// whose start position does not yet exceed pos, descending into
// SCRIPT, TOKEN_LIST, and EXPAND payloads along the way. It is safe to
// call concurrently with other reads of the same Script, as it never
// mutates it.
func Locate(script *syntax.Script, pos token.Position) Cursor {
	var result Cursor
	locateScript(script, pos, &result)
	return result
}

func locateScript(script *syntax.Script, pos token.Position, result *Cursor) (stop bool) {
	if script == nil {
		return false
	}
	for i := range script.Commands {
		call := &script.Commands[i]
		for arg := range call.Words {
			word := &call.Words[arg]
			wordPos := word.Pos.Position()
			if pastTarget(wordPos, pos) {
				return true
			}

			if word.Kind == syntax.WordScript {
				if locateScript(word.Script, pos, result) {
					return true
				}
				continue
			}

			*result = Cursor{Call: call, ArgumentIndex: arg, Word: word}

			if descended := locateWordChildren(word, pos, result); descended {
				return true
			}
		}
	}
	return false
}

// locateWordChildren descends into TOKEN_LIST/EXPAND sub-words, which
// can themselves carry nested SCRIPT payloads (e.g. a quoted word
// containing a command substitution).
func locateWordChildren(word *syntax.Word, pos token.Position, result *Cursor) bool {
	switch word.Kind {
	case syntax.WordTokenList:
		for i := range word.Parts {
			part := &word.Parts[i]
			if pastTarget(part.Pos.Position(), pos) {
				return true
			}
			if part.Kind == syntax.WordScript {
				if locateScript(part.Script, pos, result) {
					return true
				}
				continue
			}
			*result = Cursor{Call: result.Call, ArgumentIndex: result.ArgumentIndex, Word: part}
		}
	case syntax.WordExpand:
		if word.Inner != nil && word.Inner.Kind == syntax.WordScript {
			return locateScript(word.Inner.Script, pos, result)
		}
	}
	return false
}

// pastTarget reports whether p lies strictly after pos in line/column
// order.
func pastTarget(p, pos token.Position) bool {
	if p.Line != pos.Line {
		return p.Line > pos.Line
	}
	return p.Column > pos.Column
}
