// Package checker implements the bidirectional type checker (spec §4.4-4.7):
// it walks the postorder parse tree, resolves names through the scope
// stack, interns/looks-up types, and emits typed instructions, reporting
// diagnostics for every construct that fails to check.
//
// Grounded on the teacher's internal/analyzer package (analyzer.go,
// inference.go, inference_calls.go): an Analyzer struct owning a symbol
// table plus a TypeMap, with single-purpose files per concern
// (inference_literals.go, inference_calls.go, declarations_types.go). This
// package keeps that file split but replaces the teacher's Hindley-Milner
// `infer`/`check` duo — which thread a unification-bearing InferenceContext
// and report through a side TypeMap — with the two public entry points spec
// §9's Design Notes call for: "expose two public entry points... no
// indirection, no cycle."
package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/token"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// Result is what every checking operation returns: a produced instruction
// and its type. Type == typesystem.InvalidType marks a failed check; callers
// must not read Inst in that case and must not emit further derived
// diagnostics once they observe it (spec §7).
type Result struct {
	Inst ir.Id
	Type typesystem.TypeId
}

// Invalid is the sentinel result every failing check returns.
var Invalid = Result{Type: typesystem.InvalidType}

func (r Result) ok() bool { return r.Type != typesystem.InvalidType }

// Checker owns every store a check pass reads from or writes to, mirroring
// the teacher's Analyzer owning its SymbolTable/TypeMap, but over this
// module's dense ID-indexed stores instead of pointer-keyed maps.
type Checker struct {
	Nodes *ast.Store
	Toks  *token.Store
	Strs  *store.StringStore
	Types *typesystem.Store
	Scope *symbols.ScopeStack
	Insts *ir.Store
	Floats *ir.FloatPool
	Funcs *ir.FuncStore
	Diags *diagnostics.List

	catalog diagnostics.Catalog

	blocks  []BlockContext
	match   *MatchContext
	funcsByName map[store.StringId]ir.FuncId
}

// New builds a Checker over freshly created stores, sharing the string
// store and (optionally) a token/node store produced by an earlier phase
// (spec §5: tokenize -> parse -> check).
func New(nodes *ast.Store, toks *token.Store, strs *store.StringStore) *Checker {
	return &Checker{
		Nodes:       nodes,
		Toks:        toks,
		Strs:        strs,
		Types:       typesystem.NewStore(strs),
		Scope:       symbols.NewScopeStack(symbols.NewStore()),
		Insts:       ir.NewStore(),
		Floats:      ir.NewFloatPool(),
		Funcs:       ir.NewFuncStore(),
		Diags:       &diagnostics.List{},
		catalog:     diagnostics.DefaultCatalog(),
		funcsByName: make(map[store.StringId]ir.FuncId),
	}
}

func (c *Checker) emit(code diagnostics.ErrorCode, nodeId ast.Id, args map[string]string) *diagnostics.DiagnosticError {
	tok := c.Toks.Get(c.Nodes.Get(nodeId).TokenId)
	d := diagnostics.New(c.catalog, code, tok.Line, tok.Column, args)
	d.AtNode(nodeId)
	return c.Diags.Add(d)
}

// CheckExpressionInferred infers nodeId's type bottom-up (spec §4.4):
// defaults are int literal -> I32, float literal -> F64, compare chain ->
// I32.
func (c *Checker) CheckExpressionInferred(nodeId ast.Id) Result {
	return c.checkExpression(nodeId, typesystem.InvalidType, false)
}

// CheckExpressionChecked checks nodeId against expectedType, emitting
// TWCHECK012 (or a more specific code) on mismatch.
func (c *Checker) CheckExpressionChecked(nodeId ast.Id, expectedType typesystem.TypeId) Result {
	return c.checkExpression(nodeId, expectedType, true)
}

// checkExpression is the single dispatch point both public entry points
// funnel through, keyed on node.Kind per spec §4.4's table.
func (c *Checker) checkExpression(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	n := c.Nodes.Get(nodeId)
	switch n.Kind {
	case ast.IntLiteral:
		return c.checkIntLiteral(nodeId, expectedType, checking)
	case ast.FloatLiteral:
		return c.checkFloatLiteral(nodeId, expectedType, checking)
	case ast.UnaryExpr:
		return c.checkUnaryExpr(nodeId, expectedType, checking)
	case ast.ParenExpr:
		return c.checkParenExpr(nodeId, expectedType, checking)
	case ast.BinaryExpr:
		return c.checkBinaryExpr(nodeId, expectedType, checking)
	case ast.CompareChain:
		return c.checkCompareChain(nodeId, expectedType, checking)
	case ast.Identifier:
		return c.checkIdentifier(nodeId, expectedType, checking)
	case ast.FieldAccess:
		return c.checkFieldAccess(nodeId, expectedType, checking)
	case ast.IndexAccess:
		return c.checkIndexAccess(nodeId, expectedType, checking)
	case ast.ListLiteral:
		return c.checkListLiteral(nodeId, expectedType, checking)
	case ast.FuncCall:
		return c.checkFuncCall(nodeId, expectedType, checking)
	default:
		store.Bugf("checker: node kind %s is not a checkable expression", n.Kind)
		return Invalid
	}
}

// requireType enforces expectedType in checking mode, emitting
// TWCHECK012 on mismatch, and returns whether the result still stands.
func (c *Checker) requireType(nodeId ast.Id, checking bool, expectedType, actual typesystem.TypeId) bool {
	if !checking {
		return true
	}
	if c.Types.AreEqual(expectedType, actual) {
		return true
	}
	c.emit(diagnostics.TypeMismatch, nodeId, map[string]string{
		"expected": c.Types.TypeName(expectedType),
		"found":    c.Types.TypeName(actual),
	})
	return false
}
