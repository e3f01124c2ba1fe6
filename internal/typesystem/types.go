// Package typesystem implements the primitive/list/record/refinement/function
// type registry (spec §3, §4.3): structural interning for lists, refinements
// and functions, nominal interning for user records.
//
// The teacher's internal/typesystem backs a Hindley-Milner-style Type
// interface with unification and type variables (internal/typesystem/unify.go,
// kinds.go) — machinery this language doesn't need since it has no generics
// (spec §1 Non-goals). This package keeps the teacher's intern-by-structure
// discipline but, per spec §9's Design Notes ("closed sum type... dispatch by
// exhaustive case analysis"), replaces the polymorphic Type interface with a
// single closed Type struct tagged by Kind, stored densely like every other
// store in this module.
package typesystem

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nerdalytics/tinywhale/internal/store"
)

// TypeId identifies a registered Type.
type TypeId uint32

// Fixed, predeclared primitive ids (spec §3: "Primitives have fixed
// predeclared IDs"). NewStore registers them in exactly this order so these
// constants stay valid without consulting the store.
const (
	I32 TypeId = iota
	I64
	F32
	F64
	NoneType
	InvalidType
)

// Kind is a closed enumeration of type shapes.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindRefined
	KindList
	KindRecord
	KindFunction
)

// Bound is an optional arbitrary-precision integer bound on a refined type.
type Bound struct {
	Present bool
	Value   *big.Int
}

func NoBound() Bound { return Bound{} }

func BoundOf(v *big.Int) Bound { return Bound{Present: true, Value: v} }

func (b Bound) key() string {
	if !b.Present {
		return "-"
	}
	return b.Value.String()
}

// Field is one named, indexed member of a record type.
type Field struct {
	Name  store.StringId
	Type  TypeId
	Index int
}

// Type is the closed-variant type record. Which fields are meaningful
// depends on Kind.
type Type struct {
	Kind Kind

	// KindPrimitive: no extra fields; the primitive identity is the TypeId
	// itself (I32/I64/F32/F64/NoneType/InvalidType).

	// KindRefined
	Base     TypeId
	Min, Max Bound

	// KindList
	Elem TypeId
	Size int

	// KindRecord
	Name   store.StringId
	Fields []Field

	// KindFunction
	Params []TypeId
	Ret    TypeId
}

// Store interns and retrieves types by structural or nominal identity.
type Store struct {
	strs  *store.StringStore
	types []Type

	listKey    map[listKey]TypeId
	refinedKey map[refinedKey]TypeId
	funcKey    map[string]TypeId
	recordKey  map[store.StringId]TypeId
}

type listKey struct {
	elem TypeId
	size int
}

type refinedKey struct {
	base   TypeId
	minKey string
	maxKey string
}

// NewStore creates a type store with the six primitives predeclared at their
// fixed ids.
func NewStore(strs *store.StringStore) *Store {
	s := &Store{
		strs:       strs,
		listKey:    make(map[listKey]TypeId),
		refinedKey: make(map[refinedKey]TypeId),
		funcKey:    make(map[string]TypeId),
		recordKey:  make(map[store.StringId]TypeId),
	}
	s.types = append(s.types,
		Type{Kind: KindPrimitive}, // I32
		Type{Kind: KindPrimitive}, // I64
		Type{Kind: KindPrimitive}, // F32
		Type{Kind: KindPrimitive}, // F64
		Type{Kind: KindPrimitive}, // NoneType
		Type{Kind: KindPrimitive}, // InvalidType
	)
	return s
}

// Get returns the Type for id. Panics on an invalid id.
func (s *Store) Get(id TypeId) Type {
	if int(id) >= len(s.types) {
		store.Bugf("typesystem: invalid TypeId %d (have %d types)", id, len(s.types))
	}
	return s.types[id]
}

func (s *Store) register(t Type) TypeId {
	id := TypeId(len(s.types))
	s.types = append(s.types, t)
	return id
}

// IsIntegerPrimitive reports whether id names (or refines) I32/I64.
func (s *Store) IsIntegerPrimitive(id TypeId) bool {
	base := s.ToWasmType(id)
	return base == I32 || base == I64
}

// IsFloatPrimitive reports whether id names F32/F64.
func (s *Store) IsFloatPrimitive(id TypeId) bool {
	return id == F32 || id == F64
}

// IsSigned reports whether the integer primitive id is signed. Every
// primitive integer type in this language is signed. A refined type
// answers for its base primitive.
func (s *Store) IsSigned(id TypeId) bool {
	base := s.ToWasmType(id)
	return base == I32 || base == I64
}

// BitWidth returns the bit width of the integer primitive id's Wasm base
// type: 32 for I32, 64 for I64. Panics for non-integer types.
func (s *Store) BitWidth(id TypeId) int {
	switch s.ToWasmType(id) {
	case I32:
		return 32
	case I64:
		return 64
	default:
		store.Bugf("typesystem: BitWidth called on non-integer TypeId %d", id)
		return 0
	}
}

// IsListType reports whether id is a list type.
func (s *Store) IsListType(id TypeId) bool { return s.Get(id).Kind == KindList }

// IsRecordType reports whether id is a record type.
func (s *Store) IsRecordType(id TypeId) bool { return s.Get(id).Kind == KindRecord }

// IsRefinedType reports whether id is a refinement of a primitive.
func (s *Store) IsRefinedType(id TypeId) bool { return s.Get(id).Kind == KindRefined }

// IsFunctionType reports whether id is a function type.
func (s *Store) IsFunctionType(id TypeId) bool { return s.Get(id).Kind == KindFunction }

// GetListSize returns a list type's fixed size.
func (s *Store) GetListSize(id TypeId) int { return s.Get(id).Size }

// GetListElementType returns a list type's element type.
func (s *Store) GetListElementType(id TypeId) TypeId { return s.Get(id).Elem }

// GetConstraints returns a refined type's bounds.
func (s *Store) GetConstraints(id TypeId) (min, max Bound) {
	t := s.Get(id)
	return t.Min, t.Max
}

// GetFuncInfo returns a function type's parameter and return types.
func (s *Store) GetFuncInfo(id TypeId) (params []TypeId, ret TypeId) {
	t := s.Get(id)
	return t.Params, t.Ret
}

// ToWasmType returns the underlying primitive of a refined type, or id
// itself when id is already a primitive (spec §3: "Operations: ...
// toWasmType returns the underlying primitive of a refined type").
func (s *Store) ToWasmType(id TypeId) TypeId {
	t := s.Get(id)
	if t.Kind == KindRefined {
		return t.Base
	}
	return id
}

// AreEqual reports type equality. Because every type is interned by
// structural (or nominal) identity, equality is plain integer comparison
// (spec §3: "areEqual(a,b) := a == b").
func (s *Store) AreEqual(a, b TypeId) bool { return a == b }

// RegisterListType interns a fixed-size list type, returning the existing id
// if (elem, size) was already registered.
func (s *Store) RegisterListType(elem TypeId, size int) TypeId {
	key := listKey{elem: elem, size: size}
	if id, ok := s.listKey[key]; ok {
		return id
	}
	id := s.register(Type{Kind: KindList, Elem: elem, Size: size})
	s.listKey[key] = id
	return id
}

// RegisterRefinedType interns an integer refinement, returning the existing
// id if (base, min, max) was already registered. Refined types delegate
// their Wasm type to base.
func (s *Store) RegisterRefinedType(base TypeId, min, max Bound) TypeId {
	key := refinedKey{base: base, minKey: min.key(), maxKey: max.key()}
	if id, ok := s.refinedKey[key]; ok {
		return id
	}
	id := s.register(Type{Kind: KindRefined, Base: base, Min: min, Max: max})
	s.refinedKey[key] = id
	return id
}

// RegisterFuncType interns a function type by its component tuple.
func (s *Store) RegisterFuncType(params []TypeId, ret TypeId) TypeId {
	var b strings.Builder
	for _, p := range params {
		fmt.Fprintf(&b, "%d,", p)
	}
	fmt.Fprintf(&b, "->%d", ret)
	key := b.String()
	if id, ok := s.funcKey[key]; ok {
		return id
	}
	id := s.register(Type{Kind: KindFunction, Params: append([]TypeId(nil), params...), Ret: ret})
	s.funcKey[key] = id
	return id
}

// RegisterRecordType declares a nominal record type. Returns an error if a
// record by that name is already registered — record types are declared
// once (spec §4.3).
func (s *Store) RegisterRecordType(name store.StringId, fields []Field) (TypeId, error) {
	if _, ok := s.recordKey[name]; ok {
		return InvalidType, fmt.Errorf("record type %q already declared", s.strs.Get(name))
	}
	id := s.register(Type{Kind: KindRecord, Name: name, Fields: append([]Field(nil), fields...)})
	s.recordKey[name] = id
	return id, nil
}

// LookupRecordType finds a previously declared record type by name.
func (s *Store) LookupRecordType(name store.StringId) (TypeId, bool) {
	id, ok := s.recordKey[name]
	return id, ok
}

// GetField looks up a record field by name.
func (s *Store) GetField(record TypeId, name store.StringId) (Field, bool) {
	for _, f := range s.Get(record).Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// GetFields returns a record's ordered field list.
func (s *Store) GetFields(record TypeId) []Field {
	return s.Get(record).Fields
}

// TypeName prints a type's canonical, user-facing form.
func (s *Store) TypeName(id TypeId) string {
	t := s.Get(id)
	switch t.Kind {
	case KindPrimitive:
		switch id {
		case I32:
			return "i32"
		case I64:
			return "i64"
		case F32:
			return "f32"
		case F64:
			return "f64"
		case NoneType:
			return "none"
		default:
			return "<invalid>"
		}
	case KindRefined:
		base := s.TypeName(t.Base)
		if !t.Min.Present && !t.Max.Present {
			return base
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s<", base)
		parts := make([]string, 0, 2)
		if t.Min.Present {
			parts = append(parts, "min="+humanize.Comma(bigToInt64(t.Min.Value)))
		}
		if t.Max.Present {
			parts = append(parts, "max="+humanize.Comma(bigToInt64(t.Max.Value)))
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(">")
		return b.String()
	case KindList:
		return fmt.Sprintf("[%s; %d]", s.TypeName(t.Elem), t.Size)
	case KindRecord:
		return s.strs.Get(t.Name)
	case KindFunction:
		names := make([]string, len(t.Params))
		for i, p := range t.Params {
			names[i] = s.TypeName(p)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(names, ", "), s.TypeName(t.Ret))
	default:
		return "<invalid>"
	}
}

func bigToInt64(v *big.Int) int64 {
	if v.IsInt64() {
		return v.Int64()
	}
	// Outside int64 range: humanize.Comma only accepts int64, so clamp for
	// display purposes only; the actual bound remains the full-precision
	// big.Int used for constraint checking.
	if v.Sign() < 0 {
		return -1 << 62
	}
	return 1 << 62
}
