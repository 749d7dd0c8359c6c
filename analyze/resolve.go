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

package analyze

import (
	"github.com/tcl-lsp/tclsem/entity"
	"github.com/tcl-lsp/tclsem/name"
	"github.com/tcl-lsp/tclsem/syntax"
)

// Resolve is pass 2: it walks the same Script as Scan, resolves USER
// call sites to procedure definitions via FindProc+BestFit, and
// records their USAGE references.
func Resolve(idx *entity.Index, script *syntax.Script) {
	ctx := newScanContext(idx.GlobalNamespaceID)
	resolveScript(idx, ctx, script)
}

// Build runs both passes in order: pass 1 discovers entities, pass 2
// resolves references against the now-complete entity tables.
func Build(idx *entity.Index, script *syntax.Script) {
	Scan(idx, script)
	Resolve(idx, script)
}

func resolveScript(idx *entity.Index, ctx *ScanContext, script *syntax.Script) {
	if script == nil {
		return
	}
	for i := range script.Commands {
		call := &script.Commands[i]
		switch call.Kind {
		case syntax.CallNamespaceEval:
			target := namespaceEvalTarget(idx, string(call.Words[2].Text), ctx.current())
			ctx.push(target)
			resolveWord(idx, ctx, call.Words[3])
			ctx.pop()

		case syntax.CallProc:
			qn := name.Split(string(call.Words[1].Text))
			parentID := resolveQualified(idx, qn, ctx.current())
			ctx.push(parentID)
			resolveWord(idx, ctx, call.Words[3])
			ctx.pop()

		case syntax.CallUser:
			if len(call.Words) > 0 && call.Words[0].Kind == syntax.WordText {
				candidates := FindProc(idx, ctx.current(), string(call.Words[0].Text))
				if best, ok := BestFit(idx, candidates, len(call.Words)-1); ok {
					idx.Procedures.AddReference(best, call.Words[0].Pos, entity.USAGE)
				}
			}
			for _, w := range call.Words {
				resolveWord(idx, ctx, w)
			}

		default:
			for _, w := range call.Words {
				resolveWord(idx, ctx, w)
			}
		}
	}
}

func resolveWord(idx *entity.Index, ctx *ScanContext, w syntax.Word) {
	switch w.Kind {
	case syntax.WordArrayAccess:
		// Variable uses are not resolved to definitions; only the
		// index-expression sub-words, which may themselves contain
		// nested commands, are walked.
		for _, idxWord := range w.ArrayIndex {
			resolveWord(idx, ctx, idxWord)
		}
	case syntax.WordTokenList:
		for _, part := range w.Parts {
			resolveWord(idx, ctx, part)
		}
	case syntax.WordExpand:
		if w.Inner != nil {
			resolveWord(idx, ctx, *w.Inner)
		}
	case syntax.WordVariable:
		// See WordArrayAccess above: no resolution performed.
	case syntax.WordScript:
		resolveScript(idx, ctx, w.Script)
	default:
		// TEXT, LIST, ERROR carry no nested commands.
	}
}

// FindProc resolves a (possibly qualified) command name to the set of
// candidate procedures defined in the relevant namespace, retrying up
// the enclosing-namespace chain for relative names that find nothing
// locally.
func FindProc(idx *entity.Index, current entity.ID, text string) []entity.ID {
	qn := name.Split(text)
	candidates := idx.Procedures.ByName(qn.Leaf)

	target := current
	if qn.HasNamespace {
		target = resolveQualified(idx, qn, current)
	}

	var matched []entity.ID
	for _, id := range candidates {
		if idx.Procedures.Get(id).ParentNamespaceID == target {
			matched = append(matched, id)
		}
	}

	if len(matched) == 0 && !qn.Absolute() {
		ns := idx.Namespaces.Get(current)
		if ns.HasParent {
			return FindProc(idx, ns.ParentID, text)
		}
	}

	return matched
}

// BestFit selects the candidate procedure that best matches a call
// supplying n non-command words. An exact required-arg match wins
// immediately; otherwise ties among the optional-range and variadic
// tiers resolve to the last eligible candidate encountered.
func BestFit(idx *entity.Index, candidates []entity.ID, n int) (entity.ID, bool) {
	var best entity.ID
	found := false
	for _, id := range candidates {
		p := idx.Procedures.Get(id)
		switch {
		case n < p.RequiredArgs:
			continue
		case n == p.RequiredArgs:
			return id, true
		case n <= p.RequiredArgs+p.OptionalArgs:
			best, found = id, true
		case p.IsVariadic:
			best, found = id, true
		}
	}
	return best, found
}
