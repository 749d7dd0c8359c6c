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

package hostparse

func isSpaceOrTab(c byte) bool { return c == ' ' || c == '\t' }

func isBareTerminator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == ';'
}

// ParseOneCommand tokenises the first command found in buf, skipping
// any leading whitespace, blank lines, and empty ";" separators. It
// returns (nil, nil) if buf contains nothing but such filler (i.e. the
// caller has reached the end of input).
func ParseOneCommand(buf []byte) (*Command, error) {
	i := 0
	for i < len(buf) {
		c := buf[i]
		if isSpaceOrTab(c) || c == '\r' || c == '\n' || c == ';' {
			i++
			continue
		}
		break
	}
	if i >= len(buf) {
		return nil, nil
	}

	commandStart := i

	if buf[i] == '#' {
		j := i
		for j < len(buf) && buf[j] != '\n' {
			if buf[j] == '\\' && j+1 < len(buf) && buf[j+1] == '\n' {
				j += 2
				continue
			}
			j++
		}
		commentEnd := j
		if j < len(buf) {
			j++ // consume the newline terminator
		}
		return &Command{
			CommandStart: commandStart,
			CommandSize:  j - commandStart,
			CommentStart: commandStart,
			CommentEnd:   commentEnd,
		}, nil
	}

	var words []Token
	j := i
	for {
		for j < len(buf) && isSpaceOrTab(buf[j]) {
			j++
		}
		if j < len(buf) && buf[j] == '\\' && j+1 < len(buf) && buf[j+1] == '\n' {
			j += 2
			continue
		}
		if j >= len(buf) {
			break
		}
		c := buf[j]
		if c == '\n' || c == ';' {
			j++
			break
		}
		word, next, err := parseWord(buf, j)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
		j = next
	}

	return &Command{
		Words:        words,
		CommandStart: commandStart,
		CommandSize:  j - commandStart,
		CommentStart: -1,
		CommentEnd:   -1,
	}, nil
}

// parseWord parses a single word starting at buf[start], returning the
// constructed token and the offset just past the word.
func parseWord(buf []byte, start int) (Token, int, error) {
	if buf[start] == '{' && hasExpandMarker(buf, start) {
		inner, end, err := parseWord(buf, start+3)
		if err != nil {
			return Token{}, 0, err
		}
		return Token{Kind: KindExpandWord, Start: start, Size: end - start, Children: []Token{inner}}, end, nil
	}

	if buf[start] == '{' {
		return parseBraceWord(buf, start)
	}

	if buf[start] == '"' {
		children, end, err := parseComponents(buf, start+1, func(b []byte, i int) bool { return b[i] == '"' })
		if err != nil {
			return Token{}, 0, err
		}
		if end >= len(buf) {
			return Token{}, 0, &ParseError{Offset: start, Message: "unterminated quoted word"}
		}
		end++ // consume closing quote
		return wrapComponents(start, end, children), end, nil
	}

	children, end, err := parseComponents(buf, start, func(b []byte, i int) bool { return isBareTerminator(b[i]) })
	if err != nil {
		return Token{}, 0, err
	}
	return wrapComponents(start, end, children), end, nil
}

// hasExpandMarker reports whether buf[start:] begins with the literal
// "{*}" marker immediately followed by another, non-whitespace word.
func hasExpandMarker(buf []byte, start int) bool {
	if start+3 > len(buf) || buf[start] != '{' || buf[start+1] != '*' || buf[start+2] != '}' {
		return false
	}
	if start+3 >= len(buf) {
		return false
	}
	c := buf[start+3]
	return !isBareTerminator(c) && c != '\r'
}

// parseBraceWord parses a brace-quoted literal word: no substitutions
// occur inside, and nested braces are counted (respecting backslash
// escapes) to find the matching close.
func parseBraceWord(buf []byte, start int) (Token, int, error) {
	depth := 1
	j := start + 1
	for j < len(buf) && depth > 0 {
		switch {
		case buf[j] == '\\' && j+1 < len(buf):
			j += 2
			continue
		case buf[j] == '{':
			depth++
		case buf[j] == '}':
			depth--
		}
		j++
	}
	if depth != 0 {
		return Token{}, 0, &ParseError{Offset: start, Message: "unterminated brace-quoted word"}
	}
	text := Token{Kind: KindText, Start: start + 1, Size: j - 1 - (start + 1)}
	return Token{Kind: KindSimpleWord, Start: start, Size: j - start, Children: []Token{text}}, j, nil
}

// terminatorFn reports whether buf[i] ends the current component run.
type terminatorFn func(buf []byte, i int) bool

// parseComponents collects a sequence of TEXT/VARIABLE/COMMAND
// components starting at start, stopping as soon as stop(buf, i)
// reports true (without consuming that byte) or EOF is reached.
func parseComponents(buf []byte, start int, stop terminatorFn) ([]Token, int, error) {
	var out []Token
	i := start
	textStart := -1
	flushText := func(end int) {
		if textStart >= 0 && end > textStart {
			out = append(out, Token{Kind: KindText, Start: textStart, Size: end - textStart})
		}
		textStart = -1
	}

	for i < len(buf) {
		if stop(buf, i) {
			break
		}
		switch buf[i] {
		case '\\':
			if textStart < 0 {
				textStart = i
			}
			if i+1 < len(buf) {
				i += 2
			} else {
				i++
			}
			continue
		case '$':
			flushText(i)
			v, end, err := parseVariable(buf, i)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, v)
			i = end
			continue
		case '[':
			flushText(i)
			c, end, err := parseCommandSubst(buf, i)
			if err != nil {
				return nil, 0, err
			}
			out = append(out, c)
			i = end
			continue
		default:
			if textStart < 0 {
				textStart = i
			}
			i++
		}
	}
	flushText(i)
	return out, i, nil
}

func wrapComponents(start, end int, children []Token) Token {
	if len(children) == 1 && children[0].Kind == KindText {
		return Token{Kind: KindSimpleWord, Start: start, Size: end - start, Children: children}
	}
	if len(children) == 1 {
		// A lone substitution is the word itself: no KindWord wrapper.
		return children[0]
	}
	if len(children) == 0 {
		// An empty word (e.g. a lone pair of quotes). Represent as an
		// empty literal so callers always get exactly one word token.
		return Token{Kind: KindSimpleWord, Start: start, Size: end - start,
			Children: []Token{{Kind: KindText, Start: start, Size: 0}}}
	}
	return Token{Kind: KindWord, Start: start, Size: end - start, Children: children}
}

// parseVariable parses a $name or $name(index) or ${name} substitution
// starting at buf[start] == '$'.
func parseVariable(buf []byte, start int) (Token, int, error) {
	i := start + 1
	if i < len(buf) && buf[i] == '{' {
		j := i + 1
		for j < len(buf) && buf[j] != '}' {
			j++
		}
		if j >= len(buf) {
			return Token{}, 0, &ParseError{Offset: start, Message: "unterminated ${...} substitution"}
		}
		name := Token{Kind: KindText, Start: i + 1, Size: j - (i + 1)}
		return Token{Kind: KindVariable, Start: start, Size: (j + 1) - start, Children: []Token{name}}, j + 1, nil
	}

	nameStart := i
	for i < len(buf) && isNameByte(buf[i]) {
		i++
	}
	name := Token{Kind: KindText, Start: nameStart, Size: i - nameStart}

	if i >= len(buf) || buf[i] != '(' {
		return Token{Kind: KindVariable, Start: start, Size: i - start, Children: []Token{name}}, i, nil
	}

	idx, end, err := parseComponents(buf, i+1, func(b []byte, k int) bool { return b[k] == ')' })
	if err != nil {
		return Token{}, 0, err
	}
	if end >= len(buf) {
		return Token{}, 0, &ParseError{Offset: start, Message: "unterminated array index"}
	}
	end++ // consume ')'
	children := append([]Token{name}, idx...)
	return Token{Kind: KindVariable, Start: start, Size: end - start, Children: children}, end, nil
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		return true
	case c == ':':
		return true
	}
	return false
}

// parseCommandSubst finds the matching ']' for a [...] command
// substitution starting at buf[start] == '['. It tracks nested
// brackets and skips over brace-quoted spans (whose contents are not
// re-parsed here) so that an unbalanced bracket inside a literal braced
// argument doesn't confuse the match.
func parseCommandSubst(buf []byte, start int) (Token, int, error) {
	depth := 1
	j := start + 1
	for j < len(buf) && depth > 0 {
		switch buf[j] {
		case '\\':
			if j+1 < len(buf) {
				j += 2
				continue
			}
		case '{':
			braceDepth := 1
			j++
			for j < len(buf) && braceDepth > 0 {
				if buf[j] == '\\' && j+1 < len(buf) {
					j += 2
					continue
				}
				if buf[j] == '{' {
					braceDepth++
				} else if buf[j] == '}' {
					braceDepth--
				}
				j++
			}
			continue
		case '[':
			depth++
		case ']':
			depth--
		}
		j++
	}
	if depth != 0 {
		return Token{}, 0, &ParseError{Offset: start, Message: "unterminated [...] substitution"}
	}
	return Token{Kind: KindCommand, Start: start, Size: j - start}, j, nil
}
