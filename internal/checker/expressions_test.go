package checker_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/asttest"
	"github.com/nerdalytics/tinywhale/internal/checker"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
)

func TestArithmeticBindingChecksClean(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	expr := b.BinaryExpr("+", b.Int("2"), b.Int("3"))
	program := b.Program(b.VarBinding("x", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
	if c.Diags.Count() != 0 {
		t.Fatalf("expected no diagnostics, got %+v", c.Diags.Items())
	}
}

func TestBinaryOperandTypeMismatchIsDiagnosed(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	expr := b.BinaryExpr("+", b.Int("2"), b.Float("3.0"))
	program := b.Program(b.VarBinding("x", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.OperandTypeMismatch) {
		t.Fatalf("expected TWCHECK022, got %+v", c.Diags.Items())
	}
}

func TestFloatOperandRejectsIntegerOnlyOperator(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("f64")
	expr := b.BinaryExpr("&", b.Float("1.0"), b.Float("2.0"))
	program := b.Program(b.VarBinding("x", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.NonIntegerOperand) {
		t.Fatalf("expected TWCHECK021, got %+v", c.Diags.Items())
	}
}

func TestCompareChainRequiresEqualOperandTypesAndYieldsI32(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	chain := b.CompareChain(b.Int("1"), b.Int("2"), b.Int("3"))
	program := b.Program(b.VarBinding("ok", typ, chain))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
}

func TestCompareChainOperandMismatchIsDiagnosed(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	chain := b.CompareChain(b.Int("1"), b.Float("2.0"))
	program := b.Program(b.VarBinding("ok", typ, chain))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.OperandTypeMismatch) {
		t.Fatalf("expected TWCHECK022, got %+v", c.Diags.Items())
	}
}

func TestBitwiseNotRequiresIntegerOperand(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("f64")
	expr := b.UnaryExpr("~", b.Float("1.0"))
	program := b.Program(b.VarBinding("x", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.NonIntegerOperand) {
		t.Fatalf("expected TWCHECK021, got %+v", c.Diags.Items())
	}
}

func TestLogicalAndRequiresIntegerOperandsAndYieldsI32(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	expr := b.BinaryExpr("&&", b.Int("1"), b.Int("0"))
	program := b.Program(b.VarBinding("ok", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
}

func TestParenExprIsTransparent(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	expr := b.Paren(b.Int("5"))
	program := b.Program(b.VarBinding("x", typ, expr))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
}

func TestUnknownIdentifierIsDiagnosed(t *testing.T) {
	b := asttest.New()
	program := b.Program(b.VarBinding("x", b.TypeRef("i32"), b.Ident("undefined")))

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.UnknownName) {
		t.Fatalf("expected TWCHECK013, got %+v", c.Diags.Items())
	}
}
