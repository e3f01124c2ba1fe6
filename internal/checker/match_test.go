package checker_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/asttest"
	"github.com/nerdalytics/tinywhale/internal/checker"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
)

func TestMatchExpressionWithWildcardCatchAllChecksClean(t *testing.T) {
	b := asttest.New()
	scrutinee := b.VarBinding("n", b.TypeRef("i32"), b.Int("2"))
	typ := b.TypeRef("i32")
	match := b.MatchExpr(b.Ident("n"),
		b.MatchArm(b.LiteralPattern("1"), b.Int("10")),
		b.MatchArm(b.WildcardPattern(), b.Int("0")),
	)
	binding := b.VarBinding("r", typ, match)
	program := b.Program(scrutinee, binding)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
	if _, ok := c.Scope.LookupByName(b.Strs.Intern("r")); !ok {
		t.Fatalf("expected match result bound to 'r'")
	}
}

func TestMatchExpressionWithoutCatchAllIsNonExhaustive(t *testing.T) {
	b := asttest.New()
	scrutinee := b.VarBinding("n", b.TypeRef("i32"), b.Int("2"))
	typ := b.TypeRef("i32")
	match := b.MatchExpr(b.Ident("n"),
		b.MatchArm(b.LiteralPattern("1"), b.Int("10")),
		b.MatchArm(b.LiteralPattern("2"), b.Int("20")),
	)
	binding := b.VarBinding("r", typ, match)
	program := b.Program(scrutinee, binding)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail on non-exhaustive match")
	}
	if !hasCode(c.Diags, diagnostics.NonExhaustiveMatch) {
		t.Fatalf("expected TWCHECK020, got %+v", c.Diags.Items())
	}
}

func TestMatchBindingPatternBindsScrutineeInArmScope(t *testing.T) {
	b := asttest.New()
	scrutinee := b.VarBinding("n", b.TypeRef("i32"), b.Int("3"))
	typ := b.TypeRef("i32")
	match := b.MatchExpr(b.Ident("n"),
		b.MatchArm(b.BindingPattern("m"), b.Ident("m")),
	)
	binding := b.VarBinding("r", typ, match)
	program := b.Program(scrutinee, binding)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
}

func TestMatchOrPatternCatchAllSatisfiesExhaustiveness(t *testing.T) {
	b := asttest.New()
	scrutinee := b.VarBinding("n", b.TypeRef("i32"), b.Int("3"))
	typ := b.TypeRef("i32")
	match := b.MatchExpr(b.Ident("n"),
		b.MatchArm(b.OrPattern(b.LiteralPattern("1"), b.BindingPattern("rest")), b.Int("0")),
	)
	binding := b.VarBinding("r", typ, match)
	program := b.Program(scrutinee, binding)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if !c.CheckProgram(program) {
		t.Fatalf("expected clean check, got %+v", c.Diags.Items())
	}
}

func TestLiteralPatternOnNonIntegerScrutineeIsDiagnosed(t *testing.T) {
	b := asttest.New()
	scrutinee := b.VarBinding("n", b.TypeRef("f64"), b.Float("1.0"))
	typ := b.TypeRef("i32")
	match := b.MatchExpr(b.Ident("n"),
		b.MatchArm(b.LiteralPattern("1"), b.Int("10")),
		b.MatchArm(b.WildcardPattern(), b.Int("0")),
	)
	binding := b.VarBinding("r", typ, match)
	program := b.Program(scrutinee, binding)

	c := checker.New(b.Nodes, b.Tokens, b.Strs)
	if c.CheckProgram(program) {
		t.Fatalf("expected check to fail")
	}
	if !hasCode(c.Diags, diagnostics.NonIntegerPattern) {
		t.Fatalf("expected TWCHECK018, got %+v", c.Diags.Items())
	}
}
