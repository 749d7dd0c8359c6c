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

package syntax

import (
	"github.com/tcl-lsp/tclsem/errors"
	"github.com/tcl-lsp/tclsem/hostparse"
	"github.com/tcl-lsp/tclsem/token"
)

// buildCtx carries everything word/script construction needs to thread
// through the recursive descent: the file (for Pos), the absolute byte
// offset of the buffer currently being parsed within that file, the
// lexical namespace path in effect, and an error sink for recovered
// parse failures.
type buildCtx struct {
	file *token.File
	base int // absolute offset of buf[0] within file.Content()
	ns   []string
	errs *errors.List
}

func (c *buildCtx) pos(localOffset int) token.Pos {
	return token.Pos{File: c.file, Offset: c.base + localOffset}
}

// ParseWord converts a single hostparse.Token (as produced for one word
// by ParseOneCommand) into a syntax.Word. Nested [...] substitutions
// are parsed recursively as child scripts.
func (c *buildCtx) ParseWord(buf []byte, tok hostparse.Token) Word {
	switch tok.Kind {
	case hostparse.KindSimpleWord:
		// unwrap to the single sub-token, but keep the wrapper's full
		// span as the Word's Text so callers see the word as written
		// (including any enclosing braces/quotes).
		inner := c.ParseWord(buf, tok.Children[0])
		inner.Pos = c.pos(tok.Start)
		inner.Text = slice(buf, tok)
		return inner

	case hostparse.KindText:
		return Word{Kind: WordText, Pos: c.pos(tok.Start), Text: slice(buf, tok)}

	case hostparse.KindWord:
		parts := make([]Word, len(tok.Children))
		for i, ch := range tok.Children {
			parts[i] = c.ParseWord(buf, ch)
		}
		return Word{Kind: WordTokenList, Pos: c.pos(tok.Start), Text: slice(buf, tok), Parts: parts}

	case hostparse.KindExpandWord:
		inner := c.ParseWord(buf, tok.Children[0])
		return Word{Kind: WordExpand, Pos: c.pos(tok.Start), Text: slice(buf, tok), Inner: &inner}

	case hostparse.KindVariable:
		name := string(slice(buf, tok.Children[0]))
		if len(tok.Children) == 1 {
			return Word{Kind: WordVariable, Pos: c.pos(tok.Start), Text: slice(buf, tok), VariableName: name}
		}
		idx := make([]Word, 0, len(tok.Children)-1)
		for _, ch := range tok.Children[1:] {
			idx = append(idx, c.ParseWord(buf, ch))
		}
		return Word{Kind: WordArrayAccess, Pos: c.pos(tok.Start), Text: slice(buf, tok), VariableName: name, ArrayIndex: idx}

	case hostparse.KindCommand:
		// tok spans "[...]" including the brackets; the interior is a
		// nested script in its own right, parsed in the same lexical
		// namespace as the enclosing command.
		interiorStart := tok.Start + 1
		interiorEnd := tok.End() - 1
		if interiorEnd < interiorStart {
			interiorEnd = interiorStart
		}
		child := parseScriptAt(c.file, c.base+interiorStart, c.base+interiorEnd, c.ns, c.errs)
		return Word{Kind: WordScript, Pos: c.pos(tok.Start), Text: slice(buf, tok), Script: child}

	default:
		return Word{Kind: WordError, Pos: c.pos(tok.Start), Text: slice(buf, tok), Message: "unrecognised token kind"}
	}
}

func slice(buf []byte, tok hostparse.Token) []byte {
	if tok.Start < 0 || tok.End() > len(buf) {
		return nil
	}
	return buf[tok.Start:tok.End()]
}

// literalText returns a word token's literal string value and whether
// it qualifies as a plain text word: no substitutions, whether or not
// it was brace- or quote-delimited. Command recognition only considers
// a first word that passes this test.
func literalText(buf []byte, tok hostparse.Token) (string, bool) {
	if tok.Kind != hostparse.KindSimpleWord || len(tok.Children) != 1 || tok.Children[0].Kind != hostparse.KindText {
		return "", false
	}
	return string(slice(buf, tok.Children[0])), true
}
