package checker

import (
	"github.com/nerdalytics/tinywhale/internal/compiler"
)

// CheckerProcessor is the pipeline's final stage, grounded on the
// teacher's internal/analyzer.SemanticAnalyzerProcessor: it runs the
// checker over whatever parse tree an earlier (out-of-scope) parser stage
// left in ctx.Nodes/ctx.ProgramNodeId, and copies the resulting stores and
// diagnostics back onto the context the same way the teacher's processor
// exports TypeMap/ResolutionMap onto its own PipelineContext.
type CheckerProcessor struct{}

func (cp *CheckerProcessor) Process(ctx *compiler.CompilationContext) *compiler.CompilationContext {
	if ctx.Nodes == nil || ctx.ProgramNodeId == 0 {
		return ctx
	}
	c := New(ctx.Nodes, ctx.Tokens, ctx.Strs)
	c.CheckProgram(ctx.ProgramNodeId)

	ctx.Types = c.Types
	ctx.Insts = c.Insts
	ctx.Floats = c.Floats
	ctx.Funcs = c.Funcs
	for _, d := range c.Diags.Items() {
		ctx.Diags.Add(d)
	}
	return ctx
}
