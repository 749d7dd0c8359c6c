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
	"github.com/tcl-lsp/tclsem/hostparse"
	"github.com/tcl-lsp/tclsem/name"
)

// shape describes the word-count and optional second-literal-word
// constraint a recognised command must satisfy. Consulted once per
// command, keyed by the first word's literal text, after that word has
// been classified as literal text.
type shape struct {
	kind       CallKind
	wordCount  int
	secondWord string // "" unless a second literal word is also required
}

var commandShapes = map[string]shape{
	"proc":      {kind: CallProc, wordCount: 4},
	"while":     {kind: CallWhile, wordCount: 3},
	"for":       {kind: CallFor, wordCount: 5},
	"foreach":   {kind: CallForeach, wordCount: 4},
	"namespace": {kind: CallNamespaceEval, wordCount: 4, secondWord: "eval"},
}

// buildCall classifies and constructs one Call from a successfully
// tokenised command. On any shape mismatch it falls through to the
// generic USER treatment: the call stays USER, no entity is recorded,
// and no diagnostic is surfaced to the editor.
func (c *buildCtx) buildCall(buf []byte, cmd *hostparse.Command) Call {
	kind := CallUser
	if len(cmd.Words) > 0 {
		if lit, ok := literalText(buf, cmd.Words[0]); ok {
			if sh, found := commandShapes[lit]; found && len(cmd.Words) == sh.wordCount {
				if sh.secondWord == "" {
					kind = sh.kind
				} else if lit2, ok2 := literalText(buf, cmd.Words[1]); ok2 && lit2 == sh.secondWord {
					kind = sh.kind
				}
			}
		}
	}

	switch kind {
	case CallProc:
		return c.buildProc(buf, cmd)
	case CallWhile:
		return c.buildWhile(buf, cmd)
	case CallFor:
		return c.buildFor(buf, cmd)
	case CallForeach:
		return c.buildForeach(buf, cmd)
	case CallNamespaceEval:
		return c.buildNamespaceEval(buf, cmd)
	default:
		return c.buildUser(buf, cmd)
	}
}

func (c *buildCtx) buildUser(buf []byte, cmd *hostparse.Command) Call {
	words := make([]Word, len(cmd.Words))
	for i, tok := range cmd.Words {
		words[i] = c.ParseWord(buf, tok)
	}
	return Call{Kind: CallUser, Words: words, LexicalNamespace: c.ns, Pos: c.pos(cmd.CommandStart)}
}

// bodyAsScript turns a literal body word into a nested script: if the
// word is simple literal text, retag it as a script word and
// recursively parse its interior under ns; otherwise (it contains
// substitutions) leave it as a generically parsed word.
func (c *buildCtx) bodyAsScript(buf []byte, tok hostparse.Token, ns []string) Word {
	if tok.Kind != hostparse.KindSimpleWord || len(tok.Children) != 1 || tok.Children[0].Kind != hostparse.KindText {
		return c.ParseWord(buf, tok)
	}
	text := tok.Children[0]
	child := parseScriptAt(c.file, c.base+text.Start, c.base+text.End(), ns, c.errs)
	return Word{Kind: WordScript, Pos: c.pos(tok.Start), Text: slice(buf, tok), Script: child}
}

// argSpecAsList reinterprets a proc's argument-spec word as a list of
// one- or two-element sub-lists. It returns (word, true) on success,
// or (zero, false) if the word's shape disqualifies the whole proc
// call, which then falls back to USER.
func (c *buildCtx) argSpecAsList(buf []byte, tok hostparse.Token) (Word, bool) {
	if tok.Kind != hostparse.KindSimpleWord || len(tok.Children) != 1 || tok.Children[0].Kind != hostparse.KindText {
		return Word{}, false
	}
	content := tok.Children[0]
	raw := slice(buf, content)

	spans, err := hostparse.SplitListSpans(raw)
	if err != nil {
		return Word{}, false
	}

	elems := make([]Word, len(spans))
	for i, s := range spans {
		elemBuf := raw[s.Start:s.End()]
		subSpans, err := hostparse.SplitListSpans(elemBuf)
		if err != nil || len(subSpans) == 0 || len(subSpans) > 2 {
			return Word{}, false
		}
		subParts := make([]Word, len(subSpans))
		for j, ss := range subSpans {
			base := content.Start + s.Start
			subParts[j] = Word{
				Kind: WordText,
				Pos:  c.pos(base + ss.Start),
				Text: elemBuf[ss.Start:ss.End()],
			}
		}
		elems[i] = Word{
			Kind:  WordList,
			Pos:   c.pos(content.Start + s.Start),
			Text:  raw[s.Start:s.End()],
			Parts: subParts,
		}
	}

	return Word{Kind: WordList, Pos: c.pos(tok.Start), Text: slice(buf, tok), Parts: elems}, true
}

func (c *buildCtx) buildProc(buf []byte, cmd *hostparse.Command) Call {
	argSpec, ok := c.argSpecAsList(buf, cmd.Words[2])
	if !ok {
		return c.buildUser(buf, cmd)
	}
	nameWord := c.ParseWord(buf, cmd.Words[1])
	body := c.bodyAsScript(buf, cmd.Words[3], c.ns)
	return Call{
		Kind:             CallProc,
		Words:            []Word{c.ParseWord(buf, cmd.Words[0]), nameWord, argSpec, body},
		LexicalNamespace: c.ns,
		Pos:              c.pos(cmd.CommandStart),
	}
}

func (c *buildCtx) buildWhile(buf []byte, cmd *hostparse.Command) Call {
	return Call{
		Kind: CallWhile,
		Words: []Word{
			c.ParseWord(buf, cmd.Words[0]),
			c.ParseWord(buf, cmd.Words[1]),
			c.bodyAsScript(buf, cmd.Words[2], c.ns),
		},
		LexicalNamespace: c.ns,
		Pos:              c.pos(cmd.CommandStart),
	}
}

func (c *buildCtx) buildFor(buf []byte, cmd *hostparse.Command) Call {
	return Call{
		Kind: CallFor,
		Words: []Word{
			c.ParseWord(buf, cmd.Words[0]),
			c.bodyAsScript(buf, cmd.Words[1], c.ns),
			c.ParseWord(buf, cmd.Words[2]),
			c.bodyAsScript(buf, cmd.Words[3], c.ns),
			c.bodyAsScript(buf, cmd.Words[4], c.ns),
		},
		LexicalNamespace: c.ns,
		Pos:              c.pos(cmd.CommandStart),
	}
}

func (c *buildCtx) buildForeach(buf []byte, cmd *hostparse.Command) Call {
	return Call{
		Kind: CallForeach,
		Words: []Word{
			c.ParseWord(buf, cmd.Words[0]),
			c.ParseWord(buf, cmd.Words[1]),
			c.ParseWord(buf, cmd.Words[2]),
			c.bodyAsScript(buf, cmd.Words[3], c.ns),
		},
		LexicalNamespace: c.ns,
		Pos:              c.pos(cmd.CommandStart),
	}
}

func (c *buildCtx) buildNamespaceEval(buf []byte, cmd *hostparse.Command) Call {
	newNS := c.ns
	if lit, ok := literalText(buf, cmd.Words[2]); ok {
		segs, absolute := name.FullPath(lit)
		if absolute {
			newNS = append([]string{}, segs...)
		} else {
			newNS = append(append([]string{}, c.ns...), segs...)
		}
	}
	return Call{
		Kind: CallNamespaceEval,
		Words: []Word{
			c.ParseWord(buf, cmd.Words[0]),
			c.ParseWord(buf, cmd.Words[1]),
			c.ParseWord(buf, cmd.Words[2]),
			c.bodyAsScript(buf, cmd.Words[3], newNS),
		},
		LexicalNamespace: c.ns,
		Pos:              c.pos(cmd.CommandStart),
	}
}
