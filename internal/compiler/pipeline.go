package compiler

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes the pipeline. Every stage runs even once an earlier one has
// added diagnostics (spec §5), so a caller driving an editor-style
// incremental build still gets whatever downstream structure later phases
// can produce.
func (p *Pipeline) Run(initialCtx *CompilationContext) *CompilationContext {
	ctx := initialCtx
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}
