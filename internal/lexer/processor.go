package lexer

import (
	"github.com/nerdalytics/tinywhale/internal/compiler"
	"github.com/nerdalytics/tinywhale/internal/config"
)

// LexerProcessor is the pipeline's first stage, grounded on the teacher's
// own internal/lexer.LexerProcessor: it turns ctx.Source into a token
// stream and hands the context to the next stage regardless of whether
// tokenizing produced diagnostics.
type LexerProcessor struct {
	Strategy config.IndentStrategy
}

func (lp *LexerProcessor) Process(ctx *compiler.CompilationContext) *compiler.CompilationContext {
	t := New(lp.Strategy, ctx.Strs)
	ctx.Tokens = t.Tokenize(ctx.Source)
	for _, d := range t.Diags.Items() {
		ctx.Diags.Add(d)
	}
	return ctx
}
