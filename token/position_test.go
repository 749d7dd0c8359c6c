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

package token_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/tcl-lsp/tclsem/token"
)

func TestPositionRoundTrip(t *testing.T) {
	text := []byte("proc foo {} {\n  puts bar\n}\n")
	f := token.NewFile("t.tcl", text)

	for offset := 0; offset <= len(text); offset++ {
		pos := f.Position(offset)
		got := f.Offset(pos.Line, pos.Column)
		qt.Assert(t, qt.Equals(got, offset), qt.Commentf("offset %d -> %+v -> %d", offset, pos, got))
	}
}

func TestPositionLineStarts(t *testing.T) {
	f := token.NewFile("t.tcl", []byte("ab\ncd\n\nef"))
	qt.Assert(t, qt.Equals(f.LineCount(), 4))

	cases := []struct {
		offset       int
		line, column int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 1, 0},
		{6, 2, 0},
		{7, 3, 0},
		{9, 3, 2},
	}
	for _, c := range cases {
		pos := f.Position(c.offset)
		qt.Check(t, qt.Equals(pos.Line, c.line), qt.Commentf("offset %d", c.offset))
		qt.Check(t, qt.Equals(pos.Column, c.column), qt.Commentf("offset %d", c.offset))
	}
}

func TestNoPos(t *testing.T) {
	qt.Assert(t, qt.IsFalse(token.NoPos.IsValid()))
	qt.Assert(t, qt.Equals(token.NoPos.String(), "-"))
}
