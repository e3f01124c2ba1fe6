// Package compiler sequences the phases a compilation runs through (spec
// §5: tokenize -> parse -> check), adapting the teacher's
// internal/pipeline package: a slice of Stage implementations threading a
// single context through in order, each stage free to stop doing useful
// work once it sees diagnostics from an earlier stage but never stopping
// the walk itself (spec §5: "a later phase still runs... so a caller
// driving an IDE-style watch can still report downstream structure").
package compiler

import (
	"github.com/google/uuid"

	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/token"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// CompilationContext is the single value every Stage reads from and
// writes to, grounded on the teacher's own PipelineContext (constructed via
// pipeline.NewPipelineContext(source) and threaded through
// Pipeline.Run): it carries the source text, the stores each phase fills
// in, and the diagnostics accumulated so far.
//
// SessionId tags one compilation run end to end; a caller embedding this
// package in a long-running process (a language server, a watch-mode
// build) uses it to correlate diagnostics and logs for a single source
// file across repeated re-runs.
type CompilationContext struct {
	SessionId uuid.UUID
	Source    string
	FilePath  string

	Strs   *store.StringStore
	Tokens *token.Store
	Nodes  *ast.Store

	// ProgramNodeId is the root Program node. It is populated by whatever
	// builds the parse tree from Tokens — grammar parsing is out of scope
	// for this module (spec §1's Non-goals), so real callers plug a parser
	// stage in ahead of the checker Stage, and tests populate it directly
	// via the asttest builder.
	ProgramNodeId ast.Id

	// The remaining fields are filled in by the checker package's Stage.
	// They are declared here, rather than as a single embedded
	// *checker.Checker, so this package never has to import
	// internal/checker: checker's own Stage implementation imports
	// compiler to satisfy the Stage interface, and a back-import here
	// would cycle.
	Types  *typesystem.Store
	Insts  *ir.Store
	Floats *ir.FloatPool
	Funcs  *ir.FuncStore

	Diags *diagnostics.List
}

// NewCompilationContext builds a CompilationContext over fresh stores
// sharing a single string store across every phase (spec §5).
func NewCompilationContext(source string) *CompilationContext {
	return &CompilationContext{
		SessionId: uuid.New(),
		Source:    source,
		Strs:      store.NewStringStore(),
		Tokens:    token.NewStore(),
		Nodes:     ast.NewStore(),
		Diags:     &diagnostics.List{},
	}
}
