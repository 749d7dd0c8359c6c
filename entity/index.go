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

package entity

// Index bundles the three entity tables that make up one semantic
// index generation. Entity IDs are stable for the lifetime of a single
// generation but not across a rebuild: a rebuild constructs a fresh
// Index and atomically replaces the previous one, never mutating an
// Index shared with a reader.
type Index struct {
	Namespaces *Table[*Namespace]
	Procedures *Table[*Procedure]
	Variables  *Table[*Variable]

	GlobalNamespaceID ID
}

// NewIndex returns a fresh Index containing only the global (root)
// namespace.
func NewIndex() *Index {
	idx := &Index{
		Namespaces: NewTable[*Namespace](),
		Procedures: NewTable[*Procedure](),
		Variables:  NewTable[*Variable](),
	}
	idx.GlobalNamespaceID = idx.Namespaces.Insert(&Namespace{Name: ""})
	return idx
}

// ChildByName returns the ID of ns's direct child named name, if one
// exists.
func (idx *Index) ChildByName(ns *Namespace, name string) (ID, bool) {
	for _, childID := range ns.ChildIDs {
		if idx.Namespaces.Get(childID).Name == name {
			return childID, true
		}
	}
	return 0, false
}
