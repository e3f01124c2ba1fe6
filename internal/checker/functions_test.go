package checker_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/asttest"
	"github.com/nerdalytics/tinywhale/internal/checker"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
)

func TestFuncDefWithoutForwardDeclarationChecksClean(t *testing.T) {
	b := asttest.New()
	add := b.FuncDefStmt("add",
		[]ast.Id{b.LambdaParam("a", b.TypeRef("i32")), b.LambdaParam("b", b.TypeRef("i32"))},
		b.TypeRef("i32"),
		b.BinaryExpr("+", b.Ident("a"), b.Ident("b")),
	)
	call := b.VarBinding("r", b.TypeRef("i32"), b.FuncCall(b.Ident("add"), b.Int("1"), b.Int("2")))
	program := b.Program(add, call)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
}

func TestForwardDeclaredFuncMustMatchDefinitionSignature(t *testing.T) {
	b := asttest.New()
	decl := b.FuncDeclStmt("add", []ast.Id{b.TypeRef("i32"), b.TypeRef("i32")}, b.TypeRef("i32"))
	def := b.FuncDefStmt("add",
		[]ast.Id{b.LambdaParam("a", b.TypeRef("f64")), b.LambdaParam("b", b.TypeRef("i32"))},
		b.TypeRef("i32"),
		b.Int("0"),
	)
	program := b.Program(decl, def)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail on signature mismatch")
	}
	if !hasCode(c.Diags, diagnostics.StructuralMismatch) {
		t.Fatalf("expected TWCHECK010, got %+v", c.Diags.Items())
	}
}

func TestFuncCallArgCountMismatchIsDiagnosed(t *testing.T) {
	b := asttest.New()
	def := b.FuncDefStmt("add",
		[]ast.Id{b.LambdaParam("a", b.TypeRef("i32")), b.LambdaParam("b", b.TypeRef("i32"))},
		b.TypeRef("i32"),
		b.BinaryExpr("+", b.Ident("a"), b.Ident("b")),
	)
	call := b.VarBinding("r", b.TypeRef("i32"), b.FuncCall(b.Ident("add"), b.Int("1")))
	program := b.Program(def, call)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.StructuralMismatch) {
		t.Fatalf("expected TWCHECK010, got %+v", c.Diags.Items())
	}
}

func TestFuncCallArgTypeMismatchIsDiagnosed(t *testing.T) {
	b := asttest.New()
	def := b.FuncDefStmt("identity",
		[]ast.Id{b.LambdaParam("a", b.TypeRef("i32"))},
		b.TypeRef("i32"),
		b.Ident("a"),
	)
	call := b.VarBinding("r", b.TypeRef("i32"), b.FuncCall(b.Ident("identity"), b.Float("1.5")))
	program := b.Program(def, call)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.LiteralKindMismatch) {
		t.Fatalf("expected TWCHECK016, got %+v", c.Diags.Items())
	}
}
