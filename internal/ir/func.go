package ir

import (
	"strings"

	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// FuncId identifies a FuncEntry in a FuncStore.
type FuncId uint32

// Range is the half-open [Start, End) interval of instruction ids a
// function's body occupies, captured once at definition time (spec §4.6,
// §9: "the backend may rely on this for basic-block boundaries").
type Range struct {
	Start Id
	End   Id
}

// FuncEntry is a function's declaration/definition record: its parameter
// symbols, declared return type, and (once defined) the body's instruction
// range.
type FuncEntry struct {
	Id            FuncId
	NameId        store.StringId
	ParamSymbols  []symbols.SymbolId
	ParamTypes    []typesystem.TypeId
	ReturnType    typesystem.TypeId
	Body          Range
	Defined       bool
}

// Signature renders a FuncEntry as "name(t1, t2) -> ret" for diagnostics and
// debugging, the kind of convenience accessor the teacher attaches to its
// own declaration records rather than leaving call sites to re-derive it.
func (f FuncEntry) Signature(strs *store.StringStore, types *typesystem.Store) string {
	var b strings.Builder
	b.WriteString(strs.Get(f.NameId))
	b.WriteByte('(')
	for i, t := range f.ParamTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(types.TypeName(t))
	}
	b.WriteString(") -> ")
	b.WriteString(types.TypeName(f.ReturnType))
	return b.String()
}

// FuncStore is the dense, append-only function-entry store.
type FuncStore struct {
	entries []FuncEntry
}

// NewFuncStore creates an empty function store.
func NewFuncStore() *FuncStore {
	return &FuncStore{}
}

// Declare registers a forward declaration and returns its FuncId (spec
// §4.6: functions may be declared before they are defined).
func (s *FuncStore) Declare(nameId store.StringId, paramTypes []typesystem.TypeId, returnType typesystem.TypeId) FuncId {
	id := FuncId(len(s.entries))
	s.entries = append(s.entries, FuncEntry{
		Id:         id,
		NameId:     nameId,
		ParamTypes: paramTypes,
		ReturnType: returnType,
	})
	return id
}

// Define records a definition's parameter symbols and body range against an
// already-declared function entry.
func (s *FuncStore) Define(id FuncId, paramSymbols []symbols.SymbolId, body Range) {
	e := s.Get(id)
	e.ParamSymbols = paramSymbols
	e.Body = body
	e.Defined = true
	s.entries[id] = e
}

// Get returns the function entry for id. Panics on an invalid id.
func (s *FuncStore) Get(id FuncId) FuncEntry {
	if int(id) >= len(s.entries) {
		store.Bugf("ir: invalid FuncId %d (have %d functions)", id, len(s.entries))
	}
	return s.entries[id]
}

// Count returns the number of function entries registered so far.
func (s *FuncStore) Count() int {
	return len(s.entries)
}
