package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// flattenPath walks a chain of nested FieldAccess/Identifier nodes into its
// dotted path of name StringIds, root first (spec §4.4 "build the dotted
// path of identifiers/fields").
func (c *Checker) flattenPath(nodeId ast.Id) ([]store.StringId, bool) {
	n := c.Nodes.Get(nodeId)
	switch n.Kind {
	case ast.Identifier:
		return []store.StringId{store.StringId(c.Toks.Get(n.TokenId).Payload)}, true
	case ast.FieldAccess:
		base := c.onlyChild(nodeId)
		path, ok := c.flattenPath(base)
		if !ok {
			return nil, false
		}
		field := store.StringId(c.Toks.Get(n.TokenId).Payload)
		return append(path, field), true
	default:
		return nil, false
	}
}

// checkFieldAccess implements spec §4.4's FieldAccess contract: attempt
// flattened resolution first, then fall back to a record field lookup on
// the checked base expression.
func (c *Checker) checkFieldAccess(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	if path, ok := c.flattenPath(nodeId); ok {
		flattened := c.Strs.Get(path[0])
		for _, part := range path[1:] {
			flattened = flattened + "_" + c.Strs.Get(part)
		}
		name := c.Strs.Intern(flattened)
		if symId, found := c.Scope.LookupByName(name); found {
			sym := c.Scope.Syms().Get(symId)
			if !c.requireType(nodeId, checking, expectedType, sym.TypeId) {
				return Invalid
			}
			inst := c.Insts.Add(ir.Instruction{Kind: ir.VarRef, Arg0: uint32(symId), ParseNodeId: nodeId, TypeId: sym.TypeId})
			return Result{Inst: inst, Type: sym.TypeId}
		}
	}

	root := path0(c, nodeId)
	if _, found := c.Scope.LookupByName(root); !found {
		c.emit(diagnostics.UnknownName, nodeId, map[string]string{"name": c.Strs.Get(root)})
		return Invalid
	}

	base := c.onlyChild(nodeId)
	baseRes := c.CheckExpressionInferred(base)
	if !baseRes.ok() {
		return Invalid
	}
	if !c.Types.IsRecordType(baseRes.Type) {
		c.emit(diagnostics.AccessOnNonAggregate, nodeId, map[string]string{"type": c.Types.TypeName(baseRes.Type)})
		return Invalid
	}

	fieldName := store.StringId(c.Toks.Get(c.Nodes.Get(nodeId).TokenId).Payload)
	field, found := c.Types.GetField(baseRes.Type, fieldName)
	if !found {
		c.emit(diagnostics.MissingFieldOnType, nodeId, map[string]string{
			"field": c.Strs.Get(fieldName), "type": c.Types.TypeName(baseRes.Type),
		})
		return Invalid
	}
	if !c.requireType(nodeId, checking, expectedType, field.Type) {
		return Invalid
	}
	inst := c.Insts.Add(ir.Instruction{Kind: ir.FieldAccess, Arg0: uint32(baseRes.Inst), Arg1: uint32(field.Index), ParseNodeId: nodeId, TypeId: field.Type})
	return Result{Inst: inst, Type: field.Type}
}

func path0(c *Checker, nodeId ast.Id) store.StringId {
	path, _ := c.flattenPath(nodeId)
	return path[0]
}

// checkIndexAccess implements spec §4.4's IndexAccess contract: an integer
// literal index, early-resolved against a flattened list-binding base name
// before falling back to a plain list-type lookup.
func (c *Checker) checkIndexAccess(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	base, index := c.twoChildren(nodeId)
	if c.Nodes.Get(index).Kind != ast.IntLiteral {
		c.emit(diagnostics.NonLiteralIndex, nodeId, nil)
		return Invalid
	}
	i, ok := parseBigInt(c.Toks.Get(c.Nodes.Get(index).TokenId).PayloadString(c.Strs))
	if !ok || !i.IsInt64() {
		c.emit(diagnostics.NonLiteralIndex, nodeId, nil)
		return Invalid
	}
	idx := int(i.Int64())

	if baseName, ok := c.identifierName(base); ok {
		if listType, found := c.Scope.LookupListBinding(baseName); found {
			size := c.Types.GetListSize(listType)
			if idx < 0 || idx >= size {
				c.emit(diagnostics.ListIndexOutOfRange, nodeId, map[string]string{
					"index": itoa(idx), "size": itoa(size),
				})
				return Invalid
			}
			elemName := c.Strs.Intern(c.Strs.Get(baseName) + "_" + itoa(idx))
			symId, found := c.Scope.LookupByName(elemName)
			if !found {
				c.emit(diagnostics.ListIndexOutOfRange, nodeId, map[string]string{
					"index": itoa(idx), "size": itoa(size),
				})
				return Invalid
			}
			sym := c.Scope.Syms().Get(symId)
			if !c.requireType(nodeId, checking, expectedType, sym.TypeId) {
				return Invalid
			}
			inst := c.Insts.Add(ir.Instruction{Kind: ir.VarRef, Arg0: uint32(symId), ParseNodeId: nodeId, TypeId: sym.TypeId})
			return Result{Inst: inst, Type: sym.TypeId}
		}
	}

	baseRes := c.CheckExpressionInferred(base)
	if !baseRes.ok() {
		return Invalid
	}
	if !c.Types.IsListType(baseRes.Type) {
		c.emit(diagnostics.AccessOnNonAggregate, nodeId, map[string]string{"type": c.Types.TypeName(baseRes.Type)})
		return Invalid
	}
	size := c.Types.GetListSize(baseRes.Type)
	if idx < 0 || idx >= size {
		c.emit(diagnostics.ListIndexOutOfRange, nodeId, map[string]string{
			"index": itoa(idx), "size": itoa(size),
		})
		return Invalid
	}
	elemType := c.Types.GetListElementType(baseRes.Type)
	if !c.requireType(nodeId, checking, expectedType, elemType) {
		return Invalid
	}
	inst := c.Insts.Add(ir.Instruction{Kind: ir.FieldAccess, Arg0: uint32(baseRes.Inst), Arg1: uint32(idx), ParseNodeId: nodeId, TypeId: elemType})
	return Result{Inst: inst, Type: elemType}
}

func (c *Checker) identifierName(nodeId ast.Id) (store.StringId, bool) {
	n := c.Nodes.Get(nodeId)
	if n.Kind != ast.Identifier {
		return 0, false
	}
	return store.StringId(c.Toks.Get(n.TokenId).Payload), true
}
