// Package ir defines the semantic-IR instruction store the checker emits
// into (spec §3): a dense, append-only, fixed-size-record stream consumed by
// an external code generator this module does not implement (spec §1).
//
// Grounded on the teacher's internal/vm.Chunk (internal/vm/chunk.go), which
// pairs a flat instruction stream with parallel per-instruction metadata
// (Lines/Columns); here the metadata is folded directly into the fixed-size
// Instruction record instead of kept in side arrays, since every instruction
// already carries its origin node and result type.
package ir

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// Kind is a closed enumeration of instruction kinds (spec §3).
type Kind uint8

const (
	Invalid Kind = iota
	IntConst
	FloatConst
	VarRef
	Bind
	PatternBind
	BitwiseNot
	Negate
	BinaryOp
	LogicalAnd
	LogicalOr
	FieldAccess
	FuncDecl
	FuncDef
	Call
	MatchArm
	Match
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case IntConst:
		return "IntConst"
	case FloatConst:
		return "FloatConst"
	case VarRef:
		return "VarRef"
	case Bind:
		return "Bind"
	case PatternBind:
		return "PatternBind"
	case BitwiseNot:
		return "BitwiseNot"
	case Negate:
		return "Negate"
	case BinaryOp:
		return "BinaryOp"
	case LogicalAnd:
		return "LogicalAnd"
	case LogicalOr:
		return "LogicalOr"
	case FieldAccess:
		return "FieldAccess"
	case FuncDecl:
		return "FuncDecl"
	case FuncDef:
		return "FuncDef"
	case Call:
		return "Call"
	case MatchArm:
		return "MatchArm"
	case Match:
		return "Match"
	default:
		return "?"
	}
}

// Id identifies an Instruction in a Store. Instruction ids increase
// monotonically with emission order (spec §9): a function body is the
// half-open range [start, end) of ids captured at definition time.
type Id uint32

// Instruction is the fixed-size semantic-IR record (spec §3). Arg0/Arg1's
// meaning depends on Kind: e.g. Call.Arg0 is the callee InstId and Call.Arg1
// is the argument count; FieldAccess.Arg1 is a field or list index;
// IntConst.(Arg0, Arg1) are the low/high 32-bit halves of a 64-bit literal.
type Instruction struct {
	Kind        Kind
	Arg0        uint32
	Arg1        uint32
	ParseNodeId ast.Id
	TypeId      typesystem.TypeId
}

// AsId reinterprets a raw operand as an instruction id, for the kinds whose
// Arg0/Arg1 reference another instruction (Call, FieldAccess, BinaryOp, ...).
func AsId(raw uint32) Id { return Id(raw) }

// Store is the dense, append-only instruction stream.
type Store struct {
	instructions []Instruction
}

// NewStore creates an empty instruction store.
func NewStore() *Store {
	return &Store{}
}

// Add appends inst and returns its Id.
func (s *Store) Add(inst Instruction) Id {
	id := Id(len(s.instructions))
	s.instructions = append(s.instructions, inst)
	return id
}

// Get returns the instruction for id. Panics on an invalid id.
func (s *Store) Get(id Id) Instruction {
	if int(id) >= len(s.instructions) {
		store.Bugf("ir: invalid InstId %d (have %d instructions)", id, len(s.instructions))
	}
	return s.instructions[id]
}

// Count returns the number of instructions emitted so far; also the next
// Id a pending Add will return, useful for capturing a function body's
// start offset before emitting it.
func (s *Store) Count() int {
	return len(s.instructions)
}

// FloatPool is the dense double-precision constant pool FloatConst
// instructions reference (spec §4.4: "store the value in a float pool").
type FloatPool struct {
	values []float64
}

// NewFloatPool creates an empty float pool.
func NewFloatPool() *FloatPool {
	return &FloatPool{}
}

// Add appends v and returns its pool index.
func (p *FloatPool) Add(v float64) uint32 {
	idx := uint32(len(p.values))
	p.values = append(p.values, v)
	return idx
}

// Get returns the float at idx. Panics on an invalid index.
func (p *FloatPool) Get(idx uint32) float64 {
	if int(idx) >= len(p.values) {
		store.Bugf("ir: invalid float pool index %d (have %d entries)", idx, len(p.values))
	}
	return p.values[idx]
}
