package compiler

// Stage is one phase of a Pipeline, mirroring the teacher's per-phase
// processors (LexerProcessor, ParserProcessor, SemanticAnalyzerProcessor):
// each takes the running context, does its phase's work, and returns the
// (possibly mutated) context for the next stage.
type Stage interface {
	Process(ctx *CompilationContext) *CompilationContext
}
