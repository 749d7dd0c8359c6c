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

// Namespace is a node in the hierarchical name tree. The root
// namespace has an empty Name and HasParent == false.
type Namespace struct {
	ID        ID
	Name      string
	ParentID  ID
	HasParent bool

	ChildIDs    []ID
	ProcIDs     []ID
	VariableIDs []ID
}

func (n *Namespace) EntityName() string { return n.Name }
func (n *Namespace) SetID(id ID)        { n.ID = id }

// Procedure is a user-defined command introduced by proc. Invariant:
// RequiredArgs + OptionalArgs + (IsVariadic ? 1 : 0) == len(Arguments).
type Procedure struct {
	ID                ID
	Name              string
	ParentNamespaceID ID
	Arguments         []ID // Variable IDs, in source order

	RequiredArgs int
	OptionalArgs int
	IsVariadic   bool
}

func (p *Procedure) EntityName() string { return p.Name }
func (p *Procedure) SetID(id ID)        { p.ID = id }

// Variable is a named procedure argument. Scope and usage-resolution
// are not modelled beyond the name and identity.
type Variable struct {
	ID   ID
	Name string
}

func (v *Variable) EntityName() string { return v.Name }
func (v *Variable) SetID(id ID)        { v.ID = id }
