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

// ParseScript drives the host parser adapter across file's full
// content, producing a Script tree rooted at the global namespace.
// Nested [...] substitutions and recognised command bodies are parsed
// recursively by the same machinery.
//
// errs collects recovered parse failures; it may be nil, in which case
// they are silently discarded (callers that care about diagnostics
// should always pass a *errors.List).
func ParseScript(file *token.File, errs *errors.List) *Script {
	if errs == nil {
		errs = &errors.List{}
	}
	return parseScriptAt(file, 0, file.Size(), nil, errs)
}

// parseScriptAt parses the byte range [start, end) of file's content as
// a script, under the given lexical namespace path.
func parseScriptAt(file *token.File, start, end int, ns []string, errs *errors.List) *Script {
	content := file.Content()
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if end < start {
		end = start
	}
	buf := content[start:end]

	ctx := &buildCtx{file: file, ns: ns, errs: errs}

	cursor := 0
	var commands []Call
	for cursor < len(buf) {
		cmd, err := hostparse.ParseOneCommand(buf[cursor:])
		if err != nil {
			perr, _ := err.(*hostparse.ParseError)
			offset := cursor
			msg := "parse error"
			if perr != nil {
				offset = cursor + perr.Offset
				msg = perr.Message
			}
			errs.Add(errors.Newf(token.Pos{File: file, Offset: start + offset}, "%s", msg))
			cursor = recoverToTerminator(buf, offset)
			continue
		}
		if cmd == nil {
			break
		}
		if cmd.IsComment() {
			cursor += cmd.CommandStart + cmd.CommandSize
			continue
		}

		ctx.base = start + cursor
		call := ctx.buildCall(buf[cursor:], cmd)
		commands = append(commands, call)
		cursor += cmd.CommandStart + cmd.CommandSize
	}

	return &Script{Pos: token.Pos{File: file, Offset: start}, Commands: commands}
}

// recoverToTerminator advances past the next command terminator
// (semicolon, newline, or EOF) so parsing can resume on a clean
// boundary. Commands before the failure are preserved by the caller
// (they've already been appended); commands after resume cleanly.
func recoverToTerminator(buf []byte, from int) int {
	i := from
	for i < len(buf) {
		if buf[i] == ';' || buf[i] == '\n' {
			return i + 1
		}
		i++
	}
	return len(buf)
}
