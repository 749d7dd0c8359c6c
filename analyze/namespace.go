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

// Package analyze implements the two-pass semantic indexer: Scan
// (pass 1) discovers namespaces, procedures, and argument variables;
// Resolve (pass 2) resolves call sites to procedure definitions via
// namespace-walking lookup and arity-based overload selection, and
// records USAGE references.
package analyze

import (
	"github.com/tcl-lsp/tclsem/entity"
	"github.com/tcl-lsp/tclsem/name"
)

// resolveNamespace walks segs one at a time starting from current (or
// the global namespace, if absolute), creating any missing child
// namespace along the way, and returns the final namespace's ID. It
// serves both a qualified name's namespace-part and a `namespace eval`
// target's whole path.
func resolveNamespace(idx *entity.Index, segs []string, absolute bool, current entity.ID) entity.ID {
	cur := current
	if absolute {
		cur = idx.GlobalNamespaceID
	}
	for _, seg := range segs {
		ns := idx.Namespaces.Get(cur)
		if childID, ok := idx.ChildByName(ns, seg); ok {
			cur = childID
			continue
		}
		childID := idx.Namespaces.Insert(&entity.Namespace{Name: seg, ParentID: cur, HasParent: true})
		ns.ChildIDs = append(ns.ChildIDs, childID)
		cur = childID
	}
	return cur
}

// resolveQualified resolves only a qualified name's namespace-part
// (excluding the leaf): the resolve-or-create step for a `proc`
// definition's parent namespace or a call target's lookup namespace.
func resolveQualified(idx *entity.Index, qn name.Qualified, current entity.ID) entity.ID {
	return resolveNamespace(idx, name.Segments(qn), qn.Absolute(), current)
}

// namespaceEvalTarget resolves a `namespace eval` target's full
// "::"-joined path (no namespace/leaf split — see name.FullPath)
// against current, creating namespaces as needed.
func namespaceEvalTarget(idx *entity.Index, text string, current entity.ID) entity.ID {
	segs, absolute := name.FullPath(text)
	return resolveNamespace(idx, segs, absolute, current)
}

// ResolveLexicalNamespace resolves a Call's LexicalNamespace — always
// an absolute segment path — to its namespace ID, creating it if pass 1
// never visited it. Cursor-driven queries use this to run
// FindProc+BestFit against the call's lexical namespace rather than
// the namespace currently on some traversal stack.
func ResolveLexicalNamespace(idx *entity.Index, path []string) entity.ID {
	return resolveNamespace(idx, path, true, idx.GlobalNamespaceID)
}
