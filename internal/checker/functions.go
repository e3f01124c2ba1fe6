package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// CheckFuncDeclStmt registers a forward declaration "name: (P1, P2) -> R"
// (spec §4.6): the parameter and return types are resolved, the function
// type is interned, and a FuncDecl instruction is emitted. Functions may be
// declared before they are defined.
func (c *Checker) CheckFuncDeclStmt(nodeId ast.Id) bool {
	n := c.Nodes.Get(nodeId)
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	paramNodes, returnNode := kids[:len(kids)-1], kids[len(kids)-1]

	name := store.StringId(c.Toks.Get(n.TokenId).Payload)
	if _, exists := c.funcsByName[name]; exists {
		c.emit(diagnostics.StructuralMismatch, nodeId, map[string]string{"name": c.Strs.Get(name)})
		return false
	}

	paramTypes := make([]typesystem.TypeId, len(paramNodes))
	for i, p := range paramNodes {
		t, ok := c.resolveTypeRef(p)
		if !ok {
			return false
		}
		paramTypes[i] = t
	}
	returnType, ok := c.resolveTypeRef(returnNode)
	if !ok {
		return false
	}

	funcType := c.Types.RegisterFuncType(paramTypes, returnType)
	id := c.Funcs.Declare(name, paramTypes, returnType)
	c.funcsByName[name] = id

	c.Scope.DefineSymbol(symbols.Symbol{NameId: name, ParseNodeId: nodeId, TypeId: funcType})
	c.Insts.Add(ir.Instruction{Kind: ir.FuncDecl, Arg0: uint32(id), ParseNodeId: nodeId, TypeId: funcType})
	return true
}

// CheckFuncDefStmt checks "name = (params...): R -> body" (spec §4.6): if a
// forward declaration by this name exists its signature must match
// structurally, else this definition declares the function itself. The body
// is checked against R with the parameters pushed into a fresh scope, and the
// body's instruction range is captured for the definition record.
func (c *Checker) CheckFuncDefStmt(nodeId ast.Id) bool {
	n := c.Nodes.Get(nodeId)
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	paramNodes := kids[:len(kids)-2]
	returnNode, bodyNode := kids[len(kids)-2], kids[len(kids)-1]

	name := store.StringId(c.Toks.Get(n.TokenId).Payload)

	paramTypes := make([]typesystem.TypeId, len(paramNodes))
	paramNames := make([]store.StringId, len(paramNodes))
	for i, p := range paramNodes {
		t, ok := c.resolveTypeRef(c.onlyChild(p))
		if !ok {
			return false
		}
		paramTypes[i] = t
		paramNames[i] = store.StringId(c.Toks.Get(c.Nodes.Get(p).TokenId).Payload)
	}
	returnType, ok := c.resolveTypeRef(returnNode)
	if !ok {
		return false
	}

	id, existed := c.funcsByName[name]
	if existed {
		entry := c.Funcs.Get(id)
		if entry.Defined {
			c.emit(diagnostics.StructuralMismatch, nodeId, map[string]string{"name": c.Strs.Get(name)})
			return false
		}
		if !sameTypes(entry.ParamTypes, paramTypes) || entry.ReturnType != returnType {
			c.emit(diagnostics.StructuralMismatch, nodeId, map[string]string{"name": c.Strs.Get(name)})
			return false
		}
	} else {
		funcType := c.Types.RegisterFuncType(paramTypes, returnType)
		id = c.Funcs.Declare(name, paramTypes, returnType)
		c.funcsByName[name] = id
		c.Scope.DefineSymbol(symbols.Symbol{NameId: name, ParseNodeId: nodeId, TypeId: funcType})
	}

	c.Scope.Push()
	paramSymbols := make([]symbols.SymbolId, len(paramNodes))
	for i, pName := range paramNames {
		paramSymbols[i] = c.Scope.DefineSymbol(symbols.Symbol{NameId: pName, ParseNodeId: paramNodes[i], TypeId: paramTypes[i]})
	}

	// An open BlockFuncDef context (spec §3 "BlockContext") tracks this
	// definition's identity while its indented body is checked, the same
	// way a BlockRecordLiteral context tracks a record literal's fields.
	c.PushBlock(BlockContext{Kind: BlockFuncDef, FuncId: id, ParamSymbols: paramSymbols, ReturnType: returnType})

	start := ir.Id(c.Insts.Count())
	bodyRes := c.CheckExpressionChecked(bodyNode, returnType)
	block := c.PopBlock()
	c.Scope.Pop()

	if !bodyRes.ok() && block.ReturnType != typesystem.NoneType {
		return false
	}
	end := ir.Id(c.Insts.Count())

	c.Funcs.Define(block.FuncId, block.ParamSymbols, ir.Range{Start: start, End: end})
	funcType := c.Types.RegisterFuncType(paramTypes, block.ReturnType)
	c.Insts.Add(ir.Instruction{Kind: ir.FuncDef, Arg0: uint32(block.FuncId), Arg1: uint32(bodyRes.Inst), ParseNodeId: nodeId, TypeId: funcType})
	return true
}

func sameTypes(a, b []typesystem.TypeId) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkFuncCall checks "callee(args...)" (spec §4.6): the callee expression
// is checked in inferred mode and must resolve to a function type, argument
// count and each argument's type must match the signature, and a Call
// instruction is emitted whose type is the function's return type.
func (c *Checker) checkFuncCall(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	calleeNode, argNodes := kids[0], kids[1:]

	calleeName, ok := c.identifierName(calleeNode)
	if !ok {
		c.emit(diagnostics.UnknownName, nodeId, nil)
		return Invalid
	}
	calleeRes := c.CheckExpressionInferred(calleeNode)
	if !calleeRes.ok() {
		return Invalid
	}
	if !c.Types.IsFunctionType(calleeRes.Type) {
		c.emit(diagnostics.ExpectedFunction, calleeNode, map[string]string{
			"name": c.Strs.Get(calleeName), "found": c.Types.TypeName(calleeRes.Type),
		})
		return Invalid
	}
	funcId, ok := c.funcsByName[calleeName]
	if !ok {
		store.Bugf("checker: callee %q has a function type but no entry in funcsByName", c.Strs.Get(calleeName))
	}
	entry := c.Funcs.Get(funcId)

	if len(argNodes) != len(entry.ParamTypes) {
		c.emit(diagnostics.StructuralMismatch, nodeId, map[string]string{
			"name": c.Strs.Get(calleeName), "expected": itoa(len(entry.ParamTypes)), "found": itoa(len(argNodes)),
		})
		return Invalid
	}

	ok = true
	for i, a := range argNodes {
		r := c.CheckExpressionChecked(a, entry.ParamTypes[i])
		if !r.ok() {
			ok = false
		}
	}
	if !ok {
		return Invalid
	}

	if !c.requireType(nodeId, checking, expectedType, entry.ReturnType) {
		return Invalid
	}

	inst := c.Insts.Add(ir.Instruction{Kind: ir.Call, Arg0: uint32(calleeRes.Inst), Arg1: uint32(len(argNodes)), ParseNodeId: nodeId, TypeId: entry.ReturnType})
	return Result{Inst: inst, Type: entry.ReturnType}
}
