package ir_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

func TestInstructionStoreAddAssignsMonotonicIds(t *testing.T) {
	s := ir.NewStore()
	a := s.Add(ir.Instruction{Kind: ir.IntConst, TypeId: typesystem.I32})
	b := s.Add(ir.Instruction{Kind: ir.IntConst, TypeId: typesystem.I32})
	if b != a+1 {
		t.Fatalf("ids not monotonic: a=%d b=%d", a, b)
	}
	if s.Get(a).Kind != ir.IntConst {
		t.Fatalf("Get(a) = %v, want IntConst", s.Get(a).Kind)
	}
}

func TestInstructionStoreGetInvalidIdPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an invalid InstId")
		}
	}()
	ir.NewStore().Get(0)
}

func TestFloatPoolRoundTrip(t *testing.T) {
	p := ir.NewFloatPool()
	idx := p.Add(3.5)
	if got := p.Get(idx); got != 3.5 {
		t.Fatalf("Get(idx) = %v, want 3.5", got)
	}
}

func TestFuncStoreDeclareThenDefineCapturesBodyRange(t *testing.T) {
	strs := store.NewStringStore()
	funcs := ir.NewFuncStore()
	insts := ir.NewStore()

	name := strs.Intern("add")
	id := funcs.Declare(name, []typesystem.TypeId{typesystem.I32, typesystem.I32}, typesystem.I32)

	start := insts.Count()
	insts.Add(ir.Instruction{Kind: ir.VarRef})
	insts.Add(ir.Instruction{Kind: ir.VarRef})
	insts.Add(ir.Instruction{Kind: ir.BinaryOp})
	end := insts.Count()

	syms := symbols.NewStore()
	p1 := syms.Add(symbols.Symbol{NameId: strs.Intern("a"), TypeId: typesystem.I32})
	p2 := syms.Add(symbols.Symbol{NameId: strs.Intern("b"), TypeId: typesystem.I32})
	funcs.Define(id, []symbols.SymbolId{p1, p2}, ir.Range{Start: ir.Id(start), End: ir.Id(end)})

	entry := funcs.Get(id)
	if !entry.Defined {
		t.Fatal("expected entry.Defined to be true after Define")
	}
	if entry.Body.Start != ir.Id(start) || entry.Body.End != ir.Id(end) {
		t.Fatalf("Body = %+v, want [%d, %d)", entry.Body, start, end)
	}
	if len(entry.ParamSymbols) != 2 {
		t.Fatalf("ParamSymbols = %v, want 2 entries", entry.ParamSymbols)
	}
}

func TestFuncEntrySignatureRendersParamsAndReturn(t *testing.T) {
	strs := store.NewStringStore()
	types := typesystem.NewStore(strs)
	funcs := ir.NewFuncStore()

	name := strs.Intern("add")
	id := funcs.Declare(name, []typesystem.TypeId{typesystem.I32, typesystem.I32}, typesystem.I32)
	entry := funcs.Get(id)

	sig := entry.Signature(strs, types)
	if sig != "add(i32, i32) -> i32" {
		t.Fatalf("Signature() = %q, want %q", sig, "add(i32, i32) -> i32")
	}
}
