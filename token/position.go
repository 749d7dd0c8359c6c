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

// Package token provides source positions and a per-file newline index,
// the basis every other package uses to report locations in scripting
// source. A compact Pos (file plus byte offset) is what gets stored and
// passed around; Position is its expanded, printable form.
package token

import (
	"fmt"
	"sort"
)

// Position is an expanded, printable source position. Lines and
// columns are 0-based, matching what LSP clients put on the wire.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether pos refers to an actual location.
func (pos Position) IsValid() bool { return pos.Filename != "" || pos.Offset != 0 || pos.Line != 0 }

func (pos Position) String() string {
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
}

// File owns a document's text and a sorted table of newline offsets,
// enabling O(log n) offset-to-(line,column) conversion. A File is
// immutable after NewFile returns.
type File struct {
	name    string
	content []byte
	// lines holds, for each line, the byte offset of its first character.
	// lines[0] is always 0. There is no end-of-file sentinel: the
	// final line runs to len(content).
	lines []int
}

// NewFile scans content once, recording every newline offset, and
// returns an immutable File.
func NewFile(name string, content []byte) *File {
	lines := []int{0}
	for i, b := range content {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &File{name: name, content: content, lines: lines}
}

// Name returns the file's name as passed to NewFile.
func (f *File) Name() string { return f.name }

// Content returns the file's full text. Callers must not mutate it.
func (f *File) Content() []byte { return f.content }

// Size returns the length of the file's content in bytes.
func (f *File) Size() int { return len(f.content) }

// Position converts a byte offset into an expanded (line, column) pair.
// offset must satisfy 0 <= offset <= f.Size().
func (f *File) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.content) {
		offset = len(f.content)
	}
	// lineIndex is the index of the last line whose start offset is <=
	// offset, i.e. the line offset sits on.
	lineIndex := sort.Search(len(f.lines), func(i int) bool {
		return f.lines[i] > offset
	}) - 1
	if lineIndex < 0 {
		lineIndex = 0
	}
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     lineIndex,
		Column:   offset - f.lines[lineIndex],
	}
}

// Offset is the inverse of Position: given a 0-based (line, column) it
// returns the corresponding byte offset. Used by the LSP front-end to
// translate editor positions back into offsets for the cursor locator.
func (f *File) Offset(line, column int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(f.lines) {
		return len(f.content)
	}
	start := f.lines[line]
	var end int
	if line+1 < len(f.lines) {
		end = f.lines[line+1]
	} else {
		end = len(f.content)
	}
	offset := start + column
	if offset > end {
		offset = end
	}
	return offset
}

// LineCount returns the number of lines in the file (always >= 1).
func (f *File) LineCount() int { return len(f.lines) }

// Pos is a compact source location: a file plus a byte offset. Two Pos
// values are equal (==) only if both the File and the Offset match.
type Pos struct {
	File   *File
	Offset int
}

// NoPos is the zero value of Pos, used where no location applies.
var NoPos = Pos{}

// IsValid reports whether p refers to a real file.
func (p Pos) IsValid() bool { return p.File != nil }

// Position expands p into its printable form.
func (p Pos) Position() Position {
	if p.File == nil {
		return Position{}
	}
	return p.File.Position(p.Offset)
}

func (p Pos) String() string {
	if p.File == nil {
		return "-"
	}
	return p.Position().String()
}
