package symbols

import (
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// frame is one pushed lexical region: the names it directly binds, plus the
// list-binding registry entries introduced in it. Both are scoped — they
// stop being visible the moment the matching Pop runs (spec §3 invariant:
// "Symbols added within a pushed scope are not visible after the matching
// pop").
type frame struct {
	names        map[store.StringId]SymbolId
	listBindings map[store.StringId]typesystem.TypeId
}

func newFrame() *frame {
	return &frame{
		names:        make(map[store.StringId]SymbolId),
		listBindings: make(map[store.StringId]typesystem.TypeId),
	}
}

// ScopeStack is an ordered stack of lexical scopes (spec §3 "Scope").
type ScopeStack struct {
	syms   *Store
	frames []*frame
}

// NewScopeStack creates a scope stack with one base frame already pushed
// (the prelude/global scope never pops).
func NewScopeStack(syms *Store) *ScopeStack {
	s := &ScopeStack{syms: syms}
	s.Push()
	return s
}

// Syms returns the underlying symbol store, letting callers resolve a
// SymbolId returned by LookupByName/DefineSymbol back to its Symbol.
func (s *ScopeStack) Syms() *Store {
	return s.syms
}

// Push opens a new lexical region (function body, match arm).
func (s *ScopeStack) Push() {
	s.frames = append(s.frames, newFrame())
}

// Pop closes the innermost lexical region, discarding every symbol and
// list-binding it introduced.
func (s *ScopeStack) Pop() {
	if len(s.frames) == 0 {
		store.Bugf("symbols: Pop called on an empty scope stack")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Depth returns the number of currently pushed frames.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// LookupByName searches innermost-outward for name, returning the nearest
// binding.
func (s *ScopeStack) LookupByName(name store.StringId) (SymbolId, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if id, ok := s.frames[i].names[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// DefineSymbol adds a new symbol to the innermost scope, returning its id.
func (s *ScopeStack) DefineSymbol(sym Symbol) SymbolId {
	id := s.syms.Add(sym)
	s.frames[len(s.frames)-1].names[sym.NameId] = id
	return id
}

// DefineListBinding registers base as a flattened list binding of type
// listType, scoped to the innermost frame.
func (s *ScopeStack) DefineListBinding(base store.StringId, listType typesystem.TypeId) {
	s.frames[len(s.frames)-1].listBindings[base] = listType
}

// LookupListBinding searches innermost-outward for a list-binding
// registration of base.
func (s *ScopeStack) LookupListBinding(base store.StringId) (typesystem.TypeId, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].listBindings[base]; ok {
			return t, true
		}
	}
	return 0, false
}
