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

package entity_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tcl-lsp/tclsem/entity"
	"github.com/tcl-lsp/tclsem/token"
)

func TestInsertAssignsStableSequentialIDs(t *testing.T) {
	tbl := entity.NewTable[*entity.Variable]()
	id1 := tbl.Insert(&entity.Variable{Name: "a"})
	id2 := tbl.Insert(&entity.Variable{Name: "b"})
	qt.Assert(t, qt.Equals(id1, entity.ID(1)))
	qt.Assert(t, qt.Equals(id2, entity.ID(2)))
	qt.Assert(t, qt.Equals(tbl.Get(id1).Name, "a"))
	qt.Assert(t, qt.Equals(tbl.Get(id2).Name, "b"))
}

func TestGetUnknownIDPanics(t *testing.T) {
	tbl := entity.NewTable[*entity.Variable]()
	tbl.Insert(&entity.Variable{Name: "a"})
	qt.Assert(t, qt.PanicMatches(func() { tbl.Get(entity.ID(99)) }, "entity: unknown id 99"))
	qt.Assert(t, qt.PanicMatches(func() { tbl.Get(entity.ID(0)) }, "entity: unknown id 0"))
}

func TestByNameOrderedMultimap(t *testing.T) {
	tbl := entity.NewTable[*entity.Procedure]()
	first := tbl.Insert(&entity.Procedure{Name: "P", RequiredArgs: 0})
	second := tbl.Insert(&entity.Procedure{Name: "P", RequiredArgs: 2})
	qt.Assert(t, qt.DeepEquals(tbl.ByName("P"), []entity.ID{first, second}))
	qt.Assert(t, qt.IsNil(tbl.ByName("Q")))
}

func TestIdentityStableAcrossInserts(t *testing.T) {
	tbl := entity.NewTable[*entity.Namespace]()
	id := tbl.Insert(&entity.Namespace{Name: "A"})
	ns := tbl.Get(id)
	ns.ChildIDs = append(ns.ChildIDs, entity.ID(42))

	tbl.Insert(&entity.Namespace{Name: "B"})

	qt.Assert(t, qt.DeepEquals(tbl.Get(id).ChildIDs, []entity.ID{42}))
}

func TestReferencesByTarget(t *testing.T) {
	tbl := entity.NewTable[*entity.Procedure]()
	id := tbl.Insert(&entity.Procedure{Name: "P"})
	f := token.NewFile("t.tcl", []byte("proc P {} {}\nP\n"))
	defLoc := token.Pos{File: f, Offset: 5}
	useLoc := token.Pos{File: f, Offset: 13}

	tbl.AddReference(id, defLoc, entity.DEFINITION)
	tbl.AddReference(id, useLoc, entity.USAGE)

	refs := tbl.References(id)
	qt.Assert(t, qt.HasLen(refs, 2))
	qt.Assert(t, qt.Equals(refs[0].Kind, entity.DEFINITION))
	qt.Assert(t, qt.Equals(refs[1].Kind, entity.USAGE))
	qt.Assert(t, qt.HasLen(tbl.AllReferences(), 2))
	qt.Assert(t, qt.IsNil(tbl.References(entity.ID(999))))
}

func TestNewIndexHasGlobalNamespace(t *testing.T) {
	idx := entity.NewIndex()
	qt.Assert(t, qt.Equals(idx.GlobalNamespaceID, entity.ID(1)))
	global := idx.Namespaces.Get(idx.GlobalNamespaceID)
	qt.Assert(t, qt.Equals(global.Name, ""))
	qt.Assert(t, qt.IsFalse(global.HasParent))
}

func TestChildByName(t *testing.T) {
	idx := entity.NewIndex()
	global := idx.Namespaces.Get(idx.GlobalNamespaceID)
	childID := idx.Namespaces.Insert(&entity.Namespace{Name: "A", ParentID: global.ID, HasParent: true})
	global.ChildIDs = append(global.ChildIDs, childID)

	got, ok := idx.ChildByName(global, "A")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, childID))

	_, ok = idx.ChildByName(global, "missing")
	qt.Assert(t, qt.IsFalse(ok))
}
