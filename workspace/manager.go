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

package workspace

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tcl-lsp/tclsem/analyze"
	"github.com/tcl-lsp/tclsem/entity"
	"github.com/tcl-lsp/tclsem/errors"
	"github.com/tcl-lsp/tclsem/locate"
	"github.com/tcl-lsp/tclsem/syntax"
	"github.com/tcl-lsp/tclsem/token"
)

// DefaultStrandWorkers is the rebuild pool size used when Options
// leaves StrandWorkers zero.
const DefaultStrandWorkers = 4

// Options configures a Manager.
type Options struct {
	// Logger receives structured progress and protocol-error logging.
	// Nil means logrus.StandardLogger().
	Logger logrus.FieldLogger

	// StrandWorkers bounds the background rebuild pool. Zero means
	// DefaultStrandWorkers. Regardless of pool size, rebuilds are
	// serialised on a single-writer strand and never interleave.
	StrandWorkers int

	// RecoverRebuildPanics, when set, turns a panic during one
	// document's rebuild into an error log instead of a crash. Off by
	// default: a panic there is a programmer bug and should be fatal.
	RecoverRebuildPanics bool
}

// Manager holds every open document plus the single global semantic
// index, and schedules re-analysis on edits.
//
// docsMu guards the docs map and each document's fields; writeMu is
// the single-writer strand (rebuilds, regardless of which pool worker
// runs them, never interleave); index is published via an atomic
// pointer so readers never need to block on writers. A query sees
// either the pre-edit or the post-edit index in its entirety, never a
// partial mixture.
type Manager struct {
	opts Options
	log  logrus.FieldLogger

	docsMu sync.RWMutex
	docs   map[string]*document

	writeMu sync.Mutex
	index   atomic.Pointer[entity.Index]

	sf singleflight.Group
	g  *errgroup.Group
}

// NewManager returns an empty Manager holding only the (empty) global
// namespace.
func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.StrandWorkers <= 0 {
		opts.StrandWorkers = DefaultStrandWorkers
	}
	g := &errgroup.Group{}
	g.SetLimit(opts.StrandWorkers)
	m := &Manager{
		opts: opts,
		log:  opts.Logger,
		docs: make(map[string]*document),
		g:    g,
	}
	m.index.Store(entity.NewIndex())
	return m
}

// DidOpen records a newly opened document and schedules its first
// rebuild.
func (m *Manager) DidOpen(uri, languageID string, version int, text string) {
	m.docsMu.Lock()
	m.docs[uri] = &document{uri: uri, languageID: languageID, version: version, text: text, state: StateOpen}
	m.docsMu.Unlock()
	m.scheduleRebuild(uri, version)
}

// DidChange applies changes to an open document if and only if
// newVersion strictly exceeds the stored version and changes contains
// exactly one whole-document change; otherwise the call is a protocol
// error, logged and dropped. It reports whether the change was applied.
func (m *Manager) DidChange(uri string, newVersion int, changes []Change) bool {
	m.docsMu.Lock()
	doc, ok := m.docs[uri]
	if !ok || len(changes) != 1 || newVersion <= doc.version {
		m.docsMu.Unlock()
		m.log.WithFields(logrus.Fields{"uri": uri, "version": newVersion, "changes": len(changes)}).
			Warn("dropping malformed didChange")
		return false
	}
	doc.version = newVersion
	doc.text = changes[0].Text
	m.docsMu.Unlock()

	m.scheduleRebuild(uri, newVersion)
	return true
}

// DidClose removes uri's record. It does not scrub that document's
// prior contributions from the shared index — they persist until some
// other document's rebuild next rebuilds the whole index from the
// (now smaller) set of open documents.
func (m *Manager) DidClose(uri string) {
	m.docsMu.Lock()
	delete(m.docs, uri)
	m.docsMu.Unlock()
}

// scheduleRebuild dispatches uri's rebuild onto the bounded pool. The
// flight key includes the document version so that duplicate schedules
// of the same edit coalesce while a later edit is never absorbed into
// an in-flight rebuild of an older one.
func (m *Manager) scheduleRebuild(uri string, version int) {
	key := fmt.Sprintf("%s#%d", uri, version)
	m.g.Go(func() error {
		_, err, _ := m.sf.Do(key, func() (interface{}, error) {
			m.rebuild(uri)
			return nil, nil
		})
		return err
	})
}

// rebuild reparses uri's current text, then rebuilds the global index
// from every currently open document's parse tree, and atomically
// publishes both. A rebuild whose triggering edit is already obsolete
// when it runs simply observes the latest document state and produces
// a newer result; the swap is atomic either way.
func (m *Manager) rebuild(uri string) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	generation := uuid.NewString()
	log := m.log.WithFields(logrus.Fields{"uri": uri, "rebuildGeneration": generation})

	if m.opts.RecoverRebuildPanics {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("rebuild panicked")
			}
		}()
	}

	m.docsMu.RLock()
	doc, ok := m.docs[uri]
	var text string
	if ok {
		text = doc.text
	}
	m.docsMu.RUnlock()
	if !ok {
		log.Debug("document closed before its scheduled rebuild ran")
		return
	}

	log.Debug("reparsing document")
	file := token.NewFile(uri, []byte(text))
	script := syntax.ParseScript(file, &errors.List{})

	m.docsMu.Lock()
	if doc, ok := m.docs[uri]; ok {
		doc.script = script
	}
	uris := make([]string, 0, len(m.docs))
	for u, d := range m.docs {
		if d.script != nil {
			uris = append(uris, u)
		}
	}
	sort.Strings(uris)
	scripts := make([]*syntax.Script, len(uris))
	for i, u := range uris {
		scripts[i] = m.docs[u].script
	}
	m.docsMu.Unlock()

	// Pass 1 over every document before pass 2 over any, so a call
	// site resolves no matter which document defines its target. The
	// sorted order keeps entity IDs deterministic across rebuilds of
	// the same content.
	idx := entity.NewIndex()
	for _, s := range scripts {
		analyze.Scan(idx, s)
	}
	for _, s := range scripts {
		analyze.Resolve(idx, s)
	}
	m.index.Store(idx)

	log.WithFields(logrus.Fields{
		"procedures": idx.Procedures.Len(),
		"namespaces": idx.Namespaces.Len(),
	}).Debug("rebuild published")
}

// Close drains the rebuild pool and blocks until every scheduled
// rebuild has run.
func (m *Manager) Close() error {
	return m.g.Wait()
}

// Snapshot returns the currently published index generation. The
// result is immutable from the caller's perspective: a subsequent
// rebuild replaces the published pointer rather than mutating the
// returned Index.
func (m *Manager) Snapshot() *entity.Index {
	return m.index.Load()
}

// DefinitionAt returns the DEFINITION reference for the procedure
// named at pos, or nil if pos is not on a command-name word or nothing
// resolves there.
func (m *Manager) DefinitionAt(uri string, pos token.Position) []entity.Reference {
	return m.referencesAt(uri, pos, true)
}

// ReferencesAt returns every reference (of any kind) for the procedure
// named at pos.
func (m *Manager) ReferencesAt(uri string, pos token.Position) []entity.Reference {
	return m.referencesAt(uri, pos, false)
}

func (m *Manager) referencesAt(uri string, pos token.Position, definitionOnly bool) []entity.Reference {
	m.docsMu.RLock()
	doc, ok := m.docs[uri]
	var script *syntax.Script
	if ok {
		script = doc.script
	}
	m.docsMu.RUnlock()
	if !ok || script == nil {
		return nil
	}

	cur := locate.Locate(script, pos)
	if !cur.Found() || cur.ArgumentIndex != 0 || cur.Call.Kind != syntax.CallUser || cur.Word.Kind != syntax.WordText {
		return nil
	}

	idx := m.index.Load()
	nsID := analyze.ResolveLexicalNamespace(idx, cur.Call.LexicalNamespace)
	candidates := analyze.FindProc(idx, nsID, string(cur.Word.Text))
	best, ok := analyze.BestFit(idx, candidates, len(cur.Call.Words)-1)
	if !ok {
		return nil
	}

	refs := idx.Procedures.References(best)
	if !definitionOnly {
		return refs
	}
	var defs []entity.Reference
	for _, r := range refs {
		if r.Kind == entity.DEFINITION {
			defs = append(defs, r)
		}
	}
	return defs
}
