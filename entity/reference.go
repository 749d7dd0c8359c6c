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

import "github.com/tcl-lsp/tclsem/token"

// Location is the position at which a Reference was recorded.
type Location = token.Pos

// ReferenceKind discriminates why a Reference was recorded.
type ReferenceKind int

const (
	DEFINITION ReferenceKind = iota
	DECLARATION
	USAGE
)

func (k ReferenceKind) String() string {
	switch k {
	case DEFINITION:
		return "DEFINITION"
	case DECLARATION:
		return "DECLARATION"
	case USAGE:
		return "USAGE"
	default:
		return "UNKNOWN"
	}
}

// Reference records that some source location referred to an entity,
// for one of the three reasons above.
type Reference struct {
	TargetID ID
	Location Location
	Kind     ReferenceKind
}

// ReferenceLog is an append-only list of References plus a multimap
// from target ID to the references naming it.
type ReferenceLog struct {
	all      []Reference
	byTarget map[ID][]int
}

// Add appends a reference and indexes it by target.
func (l *ReferenceLog) Add(target ID, loc Location, kind ReferenceKind) {
	if l.byTarget == nil {
		l.byTarget = make(map[ID][]int)
	}
	idx := len(l.all)
	l.all = append(l.all, Reference{TargetID: target, Location: loc, Kind: kind})
	l.byTarget[target] = append(l.byTarget[target], idx)
}

// ForTarget returns every reference recorded against target, in
// insertion order.
func (l *ReferenceLog) ForTarget(target ID) []Reference {
	idxs := l.byTarget[target]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Reference, len(idxs))
	for i, idx := range idxs {
		out[i] = l.all[idx]
	}
	return out
}

// All returns every reference in the log, in insertion order.
func (l *ReferenceLog) All() []Reference {
	return l.all
}
