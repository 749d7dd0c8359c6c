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

// ScanContext threads the namespace stack through the recursive walk.
// Both passes share it: the stack top is the namespace in effect for
// the commands currently being visited.
type ScanContext struct {
	namespaceStack []entity.ID
}

func newScanContext(global entity.ID) *ScanContext {
	return &ScanContext{namespaceStack: []entity.ID{global}}
}

func (c *ScanContext) current() entity.ID {
	return c.namespaceStack[len(c.namespaceStack)-1]
}

func (c *ScanContext) push(id entity.ID) {
	c.namespaceStack = append(c.namespaceStack, id)
}

func (c *ScanContext) pop() {
	c.namespaceStack = c.namespaceStack[:len(c.namespaceStack)-1]
}

// Scan is pass 1: it discovers namespaces, procedure definitions, and
// their argument variables, descending into every nested script so
// definitions inside loops, [...] substitutions, and other procedures
// are found too. Bodies of unrecognised commands such as if stay plain
// text and are not scanned.
func Scan(idx *entity.Index, script *syntax.Script) {
	ctx := newScanContext(idx.GlobalNamespaceID)
	scanScript(idx, ctx, script)
}

func scanScript(idx *entity.Index, ctx *ScanContext, script *syntax.Script) {
	if script == nil {
		return
	}
	for i := range script.Commands {
		call := &script.Commands[i]
		switch call.Kind {
		case syntax.CallNamespaceEval:
			target := namespaceEvalTarget(idx, string(call.Words[2].Text), ctx.current())
			ctx.push(target)
			scanWord(idx, ctx, call.Words[3])
			ctx.pop()

		case syntax.CallProc:
			addProcToIndex(idx, ctx.current(), call)
			// The body is walked with the namespace stack unchanged:
			// proc does not enter a namespace, so a definition nested
			// in the body lands in the enclosing namespace.
			for _, w := range call.Words {
				scanWord(idx, ctx, w)
			}

		default:
			for _, w := range call.Words {
				scanWord(idx, ctx, w)
			}
		}
	}
}

// scanWord recurses into the payload kinds that can themselves carry
// nested commands, so bodies inside a for loop or a USER call are also
// scanned.
func scanWord(idx *entity.Index, ctx *ScanContext, w syntax.Word) {
	switch w.Kind {
	case syntax.WordScript:
		scanScript(idx, ctx, w.Script)
	case syntax.WordTokenList:
		for _, part := range w.Parts {
			scanWord(idx, ctx, part)
		}
	case syntax.WordExpand:
		if w.Inner != nil {
			scanWord(idx, ctx, *w.Inner)
		}
	default:
		// TEXT, VARIABLE, ARRAY_ACCESS, LIST, ERROR carry no nested
		// commands worth scanning.
	}
}

// addProcToIndex resolves or creates the procedure's parent namespace,
// derives its argument shape from the arg-spec list word, inserts the
// Procedure, and emits its single DEFINITION reference.
func addProcToIndex(idx *entity.Index, current entity.ID, call *syntax.Call) {
	nameWord := call.Words[1]
	argSpec := call.Words[2]

	qn := name.Split(string(nameWord.Text))
	parentID := resolveQualified(idx, qn, current)

	var argIDs []entity.ID
	var required, optional int
	variadic := false

	if argSpec.Kind == syntax.WordList {
		for i, elem := range argSpec.Parts {
			if len(elem.Parts) == 0 {
				continue
			}
			argName := string(elem.Parts[0].Text)
			v := &entity.Variable{Name: argName}
			id := idx.Variables.Insert(v)
			argIDs = append(argIDs, id)

			isLast := i == len(argSpec.Parts)-1
			switch {
			case isLast && len(elem.Parts) == 1 && argName == "args":
				variadic = true
			case len(elem.Parts) == 2:
				optional++
			default:
				required++
			}
		}
	}

	proc := &entity.Procedure{
		Name:              qn.Leaf,
		ParentNamespaceID: parentID,
		Arguments:         argIDs,
		RequiredArgs:      required,
		OptionalArgs:      optional,
		IsVariadic:        variadic,
	}
	procID := idx.Procedures.Insert(proc)

	parent := idx.Namespaces.Get(parentID)
	parent.ProcIDs = append(parent.ProcIDs, procID)

	idx.Procedures.AddReference(procID, nameWord.Pos, entity.DEFINITION)
}
