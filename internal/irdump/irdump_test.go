package irdump_test

import (
	"strings"
	"testing"

	"github.com/nerdalytics/tinywhale/internal/asttest"
	"github.com/nerdalytics/tinywhale/internal/checker"
	"github.com/nerdalytics/tinywhale/internal/irdump"
)

func TestDumpRendersArithmeticInstructions(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	expr := b.BinaryExpr("+", b.Int("2"), b.Int("3"))
	program := b.Program(b.VarBinding("x", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}

	out := irdump.Dump(c.Insts, c.Floats, c.Strs, c.Types, "test")
	if !strings.HasPrefix(out, "== test ==\n") {
		t.Fatalf("expected header, got %q", out)
	}
	if !strings.Contains(out, "IntConst") {
		t.Fatalf("expected an IntConst line, got %q", out)
	}
	if !strings.Contains(out, "BinaryOp") {
		t.Fatalf("expected a BinaryOp line, got %q", out)
	}
}

func TestDumpRendersSymbolAndTypeAnnotations(t *testing.T) {
	b := asttest.New()
	program := b.Program(b.VarBinding("x", b.TypeRef("i32"), b.Int("1")))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}

	out := irdump.Dump(c.Insts, c.Floats, c.Strs, c.Types, "bind")
	if !strings.Contains(out, ": i32") {
		t.Fatalf("expected an i32 type annotation, got %q", out)
	}
}
