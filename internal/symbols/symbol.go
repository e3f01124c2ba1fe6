// Package symbols implements the scope manager (spec §3 "Scope", §4.5
// flattening): a stack of lexical scopes with name interning, a dense
// symbol store, and the record-flattening and list-binding registries a
// scope needs to support `p.x` and `p[i]` resolving to plain variable
// references.
//
// Grounded on the teacher's internal/symbols package shape (a SymbolKind /
// ScopeType pair of closed enumerations, a Symbol struct, a table that owns
// lookup) but without the teacher's trait/instance/module machinery, none of
// which this language's checker needs (spec §1 Non-goals: no generics).
package symbols

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// SymbolId identifies a Symbol in a Store.
type SymbolId uint32

// Symbol is the fixed-size record spec §3 describes.
type Symbol struct {
	NameId      store.StringId
	ParseNodeId ast.Id
	TypeId      typesystem.TypeId
}

// Store is the dense, append-only symbol store.
type Store struct {
	symbols []Symbol
}

// NewStore creates an empty symbol store.
func NewStore() *Store {
	return &Store{}
}

// Add appends sym and returns its Id.
func (s *Store) Add(sym Symbol) SymbolId {
	id := SymbolId(len(s.symbols))
	s.symbols = append(s.symbols, sym)
	return id
}

// Get returns the symbol for id. Panics on an invalid id.
func (s *Store) Get(id SymbolId) Symbol {
	if int(id) >= len(s.symbols) {
		store.Bugf("symbols: invalid SymbolId %d (have %d symbols)", id, len(s.symbols))
	}
	return s.symbols[id]
}

// FlattenedName interns and returns the StringId for "{base}_{field}",
// composing a flattened-binding access path one segment at a time (spec
// §3: "Nested records extend the path: o.inner.val -> o_inner_val").
func FlattenedName(strs *store.StringStore, base, field store.StringId) store.StringId {
	return strs.Intern(strs.Get(base) + "_" + strs.Get(field))
}
