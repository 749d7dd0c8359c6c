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

// Package errors defines the shared error type for recoverable problems
// found in scripting source: parse failures and shape mismatches that
// must never crash the server, as opposed to internal invariant
// violations, which must.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tcl-lsp/tclsem/token"
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain assignable to target.
func As(err error, target any) bool { return errors.As(err, target) }

// SourceError is a recoverable error tied to a location in scripting
// source, as opposed to an internal invariant violation (which panics
// instead of being wrapped in this type).
type SourceError struct {
	Pos token.Pos
	Msg string
	err error // optional wrapped cause, for errors.Is/As
}

func (e *SourceError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

func (e *SourceError) Unwrap() error { return e.err }

// Newf creates a SourceError at pos with a formatted message.
func Newf(pos token.Pos, format string, args ...any) *SourceError {
	return &SourceError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a SourceError at pos that also chains to cause, so
// errors.Is/As can see through it.
func Wrap(pos token.Pos, cause error, format string, args ...any) *SourceError {
	return &SourceError{Pos: pos, Msg: fmt.Sprintf(format, args...), err: cause}
}

// List is an accumulating, order-preserving collection of SourceErrors.
// A parse that recovers from several malformed commands appends one
// entry per recovery and keeps going; List itself implements
// error so it can be returned or ignored uniformly.
type List struct {
	errs []*SourceError
}

// Add appends err to the list.
func (l *List) Add(err *SourceError) { l.errs = append(l.errs, err) }

// Len reports how many errors have been collected.
func (l *List) Len() int { return len(l.errs) }

// All returns the collected errors in the order they were added. The
// returned slice must not be mutated.
func (l *List) All() []*SourceError { return l.errs }

// Unwrap exposes the collected errors so errors.Is/As can match any of
// them.
func (l *List) Unwrap() []error {
	out := make([]error, len(l.errs))
	for i, e := range l.errs {
		out[i] = e
	}
	return out
}

func (l *List) Error() string {
	switch len(l.errs) {
	case 0:
		return "no errors"
	case 1:
		return l.errs[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (and %d more errors)", l.errs[0].Error(), len(l.errs)-1)
	return b.String()
}
