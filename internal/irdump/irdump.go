// Package irdump renders the semantic-IR instruction stream as human-
// readable text, for tests and tooling that need to observe what the
// checker emitted without a real code generator (spec §1 scopes code
// generation itself out of this module).
//
// Grounded on the teacher's internal/vm.Disassemble/disassembleInstruction
// (internal/vm/disasm.go): a line-per-instruction walk dispatching on the
// instruction's kind to one of a few operand-shape helpers. The teacher
// walks a variable-width bytecode stream and has to recompute each
// instruction's byte offset as it goes; every Instruction record here is
// the same fixed size, so the walk is just an index into the store rather
// than an offset into a byte slice.
package irdump

import (
	"fmt"
	"strings"

	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// Dump renders every instruction in insts as "== name ==" followed by one
// line per instruction, in the style of the teacher's Disassemble.
func Dump(insts *ir.Store, floats *ir.FloatPool, strs *store.StringStore, types *typesystem.Store, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", name)
	for id := 0; id < insts.Count(); id++ {
		dumpInstruction(&sb, insts.Get(ir.Id(id)), ir.Id(id), floats, strs, types)
	}
	return sb.String()
}

// DumpFunc renders only the body range of a single function entry,
// prefixed with its signature, for debugging one function in isolation.
func DumpFunc(insts *ir.Store, floats *ir.FloatPool, strs *store.StringStore, types *typesystem.Store, funcs *ir.FuncStore, id ir.FuncId) string {
	entry := funcs.Get(id)
	var sb strings.Builder
	fmt.Fprintf(&sb, "== %s ==\n", entry.Signature(strs, types))
	for i := entry.Body.Start; i < entry.Body.End; i++ {
		dumpInstruction(&sb, insts.Get(i), i, floats, strs, types)
	}
	return sb.String()
}

func dumpInstruction(sb *strings.Builder, inst ir.Instruction, id ir.Id, floats *ir.FloatPool, strs *store.StringStore, types *typesystem.Store) {
	fmt.Fprintf(sb, "%04d ", id)

	switch inst.Kind {
	case ir.IntConst:
		intConstInstruction(sb, inst)
	case ir.FloatConst:
		floatConstInstruction(sb, inst, floats)
	case ir.VarRef, ir.Bind, ir.PatternBind:
		symbolInstruction(sb, inst)
	case ir.BitwiseNot, ir.Negate:
		instRefInstruction(sb, inst.Kind.String(), inst.Arg0)
	case ir.BinaryOp, ir.LogicalAnd, ir.LogicalOr, ir.FieldAccess:
		pairInstruction(sb, inst)
	case ir.Call:
		callInstruction(sb, inst)
	case ir.MatchArm, ir.Match:
		pairInstruction(sb, inst)
	case ir.FuncDecl, ir.FuncDef:
		simpleInstruction(sb, inst)
	default:
		simpleInstruction(sb, inst)
	}

	fmt.Fprintf(sb, " : %s\n", types.TypeName(inst.TypeId))
}

func simpleInstruction(sb *strings.Builder, inst ir.Instruction) {
	fmt.Fprintf(sb, "%-12s", inst.Kind.String())
}

func intConstInstruction(sb *strings.Builder, inst ir.Instruction) {
	v := int64(uint64(inst.Arg1)<<32 | uint64(inst.Arg0))
	fmt.Fprintf(sb, "%-12s %d", "IntConst", v)
}

func floatConstInstruction(sb *strings.Builder, inst ir.Instruction, floats *ir.FloatPool) {
	fmt.Fprintf(sb, "%-12s %v", "FloatConst", floats.Get(inst.Arg0))
}

func symbolInstruction(sb *strings.Builder, inst ir.Instruction) {
	fmt.Fprintf(sb, "%-12s sym%d", inst.Kind.String(), inst.Arg0)
}

func instRefInstruction(sb *strings.Builder, name string, arg0 uint32) {
	fmt.Fprintf(sb, "%-12s #%d", name, arg0)
}

func pairInstruction(sb *strings.Builder, inst ir.Instruction) {
	fmt.Fprintf(sb, "%-12s #%d #%d", inst.Kind.String(), inst.Arg0, inst.Arg1)
}

func callInstruction(sb *strings.Builder, inst ir.Instruction) {
	fmt.Fprintf(sb, "%-12s #%d argc=%d", "Call", inst.Arg0, inst.Arg1)
}
