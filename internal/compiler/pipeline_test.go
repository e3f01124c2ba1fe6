package compiler_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/asttest"
	"github.com/nerdalytics/tinywhale/internal/checker"
	"github.com/nerdalytics/tinywhale/internal/compiler"
	"github.com/nerdalytics/tinywhale/internal/config"
	"github.com/nerdalytics/tinywhale/internal/lexer"
	"github.com/nerdalytics/tinywhale/internal/token"
)

func TestLexerProcessorFillsTokensOnContext(t *testing.T) {
	ctx := compiler.NewCompilationContext("x: i32 = 1\n")
	ctx.FilePath = "in-memory.tw"

	p := compiler.New(&lexer.LexerProcessor{Strategy: config.Detect})
	out := p.Run(ctx)

	if out.Tokens.Count() == 0 {
		t.Fatalf("expected tokens to be filled in")
	}
	if out.Tokens.Get(0).Kind != token.Identifier {
		t.Fatalf("first token = %v, want Identifier", out.Tokens.Get(0).Kind)
	}
	if out.SessionId.String() == "" {
		t.Fatalf("expected a non-empty session id")
	}
}

func TestCheckerProcessorRunsAgainstAPrebuiltTree(t *testing.T) {
	b := asttest.New()
	typ := b.TypeRef("i32")
	expr := b.BinaryExpr("+", b.Int("2"), b.Int("3"))
	program := b.Program(b.VarBinding("x", typ, expr))

	ctx := compiler.NewCompilationContext("")
	ctx.Strs = b.Strs
	ctx.Tokens = b.Tokens
	ctx.Nodes = b.Nodes
	ctx.ProgramNodeId = program

	p := compiler.New(&checker.CheckerProcessor{})
	out := p.Run(ctx)

	if out.Types == nil {
		t.Fatalf("expected CheckerProcessor to populate ctx.Types")
	}
	if out.Diags.HasErrors() {
		t.Fatalf("expected clean check, got %+v", out.Diags.Items())
	}
}

func TestCheckerProcessorIsANoOpWithoutAProgram(t *testing.T) {
	ctx := compiler.NewCompilationContext("")
	p := compiler.New(&checker.CheckerProcessor{})
	out := p.Run(ctx)

	if out.Types != nil {
		t.Fatalf("expected Types to stay nil with no parse tree to check")
	}
}
