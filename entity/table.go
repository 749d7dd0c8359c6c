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

// Package entity implements the append-only entity store: stable-ID
// tables for namespaces, procedures, and variables, plus per-table
// reference logs.
package entity

import "fmt"

// ID identifies an entity within a single Table. ID spaces are private
// to each table: a Namespace ID 1 and a Procedure ID 1 are unrelated.
// IDs are 1-based and never recycled.
type ID int

// Named is satisfied by every entity kind stored in a Table; nameIndex
// is built from EntityName().
type Named interface {
	EntityName() string
}

// Identifiable lets Table assign the freshly minted ID back onto the
// entity itself.
type Identifiable interface {
	Named
	SetID(ID)
}

// Table is an append-only, 1-based-ID-indexed store for one entity
// kind. E is expected to be a pointer type, so Get's result remains
// valid (and mutable in place) across later inserts; indexing code
// relies on holding one entity while inserting its siblings.
type Table[E Identifiable] struct {
	items  []E
	byName map[string][]ID
	refs   ReferenceLog
}

// NewTable returns an empty table.
func NewTable[E Identifiable]() *Table[E] {
	return &Table[E]{byName: make(map[string][]ID)}
}

// Insert assigns the next ID, stores e, and updates the name index.
func (t *Table[E]) Insert(e E) ID {
	id := ID(len(t.items) + 1)
	e.SetID(id)
	t.items = append(t.items, e)
	name := e.EntityName()
	t.byName[name] = append(t.byName[name], id)
	return id
}

// Get returns the entity stored at id. An unknown ID is a programmer
// bug, not a recoverable condition, so it panics.
func (t *Table[E]) Get(id ID) E {
	if id < 1 || int(id) > len(t.items) {
		panic(fmt.Sprintf("entity: unknown id %d", id))
	}
	return t.items[id-1]
}

// ByName returns the IDs of every entity inserted under name, in
// insertion order.
func (t *Table[E]) ByName(name string) []ID {
	return t.byName[name]
}

// Len returns the number of entities currently stored.
func (t *Table[E]) Len() int {
	return len(t.items)
}

// AddReference appends a reference targeting id.
func (t *Table[E]) AddReference(target ID, loc Location, kind ReferenceKind) {
	t.refs.Add(target, loc, kind)
}

// References returns every reference recorded against target, in
// insertion order.
func (t *Table[E]) References(target ID) []Reference {
	return t.refs.ForTarget(target)
}

// AllReferences returns every reference recorded in the table, in
// insertion order, regardless of target.
func (t *Table[E]) AllReferences() []Reference {
	return t.refs.All()
}
