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

// Package name implements the scripting language's qualified-name
// machinery: splitting, joining, and absolutising names separated by
// the two-colon namespace delimiter.
package name

import "strings"

// Delim is the scripting language's namespace separator.
const Delim = "::"

// Qualified is a name optionally prefixed by a namespace path.
//
// Invariants: Leaf is non-empty and contains no Delim. Namespace, when
// HasNamespace is true, may be empty (meaning the global namespace, as
// in the bare name "::leaf").
type Qualified struct {
	Namespace    string
	HasNamespace bool
	Leaf         string
}

// Absolute reports whether the name is rooted at the global namespace:
// HasNamespace is true and Namespace is either empty or itself begins
// with Delim.
func (q Qualified) Absolute() bool {
	return q.HasNamespace && (q.Namespace == "" || strings.HasPrefix(q.Namespace, Delim))
}

// Split cuts s at the last occurrence of Delim. Everything before that
// cut is the namespace part (possibly containing further, nested
// delimiters); everything after is the leaf name.
func Split(s string) Qualified {
	i := strings.LastIndex(s, Delim)
	if i < 0 {
		return Qualified{Leaf: s}
	}
	return Qualified{
		Namespace:    s[:i],
		HasNamespace: true,
		Leaf:         s[i+len(Delim):],
	}
}

// Join is the inverse of Split: for any s with no leading/trailing
// whitespace, Join(Split(s)) == s.
func Join(q Qualified) string {
	if !q.HasNamespace {
		return q.Leaf
	}
	return q.Namespace + Delim + q.Leaf
}

// Segments returns the namespace part's path segments, outermost first,
// with no empty leading segment for absolute names (i.e. "::A::B" and
// "A::B" both yield ["A", "B"]; "::" yields nil).
func Segments(q Qualified) []string {
	if !q.HasNamespace || q.Namespace == "" {
		return nil
	}
	ns := q.Namespace
	if q.Absolute() {
		ns = strings.TrimPrefix(ns, Delim)
	}
	if ns == "" {
		return nil
	}
	return strings.Split(ns, Delim)
}

// FullPath splits s into its full sequence of "::"-delimited segments,
// with no namespace/leaf distinction, plus whether s is absolute (i.e.
// begins with Delim). Used where the whole name denotes a namespace
// path in itself, such as a `namespace eval` target, rather than a
// namespace-part-plus-leaf qualified name.
func FullPath(s string) (segments []string, absolute bool) {
	absolute = strings.HasPrefix(s, Delim)
	trimmed := strings.TrimPrefix(s, Delim)
	if trimmed == "" {
		return nil, absolute
	}
	return strings.Split(trimmed, Delim), absolute
}

// Absolutise resolves q against the enclosing absolute namespace path
// (itself a sequence of segments, outermost first, root implied).
// Absolute names pass through unchanged; relative names are prefixed
// with the enclosing path.
func Absolutise(q Qualified, enclosing []string) Qualified {
	if q.Absolute() {
		return q
	}
	segs := append(append([]string{}, enclosing...), Segments(q)...)
	if len(segs) == 0 {
		return Qualified{Namespace: "", HasNamespace: true, Leaf: q.Leaf}
	}
	return Qualified{Namespace: Delim + strings.Join(segs, Delim), HasNamespace: true, Leaf: q.Leaf}
}
