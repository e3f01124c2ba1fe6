package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/store"
)

// CheckProgram checks every top-level statement in source order (spec §4.1):
// type declarations, function forward declarations and definitions, and
// top-level bindings. It returns false if any statement failed to check;
// c.Diags holds every diagnostic regardless of the overall outcome (spec §7:
// checking does not stop at the first error).
func (c *Checker) CheckProgram(programNodeId ast.Id) bool {
	ok := true
	for _, stmt := range c.Nodes.ChildrenLeftToRight(programNodeId) {
		if !c.CheckStatement(stmt) {
			ok = false
		}
	}
	return ok
}

// CheckStatement dispatches a single top-level or nested statement node by
// kind.
func (c *Checker) CheckStatement(nodeId ast.Id) bool {
	switch c.Nodes.Get(nodeId).Kind {
	case ast.TypeDecl:
		return c.CheckTypeDecl(nodeId)
	case ast.FuncDeclStmt:
		return c.CheckFuncDeclStmt(nodeId)
	case ast.FuncDefStmt:
		return c.CheckFuncDefStmt(nodeId)
	case ast.VarBinding:
		return c.CheckVarBinding(nodeId)
	default:
		store.Bugf("checker: node kind %s is not a statement", c.Nodes.Get(nodeId).Kind)
		return false
	}
}
