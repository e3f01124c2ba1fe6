package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// CheckVarBinding checks "name: Type = rhs..." (spec §4.5): rhs is a single
// expression, a single match expression, a list literal, or a sequence of
// record field initializers, depending on what Type resolves to.
func (c *Checker) CheckVarBinding(nodeId ast.Id) bool {
	n := c.Nodes.Get(nodeId)
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	typeRefNode, rhs := kids[0], kids[1:]
	name := store.StringId(c.Toks.Get(n.TokenId).Payload)

	resolvedType, ok := c.resolveTypeRef(typeRefNode)
	if !ok {
		return false
	}

	if len(rhs) == 1 && c.Nodes.Get(rhs[0]).Kind == ast.MatchExpr {
		return c.checkMatchBinding(name, resolvedType, rhs[0])
	}

	if c.Types.IsRecordType(resolvedType) {
		ok := c.checkRecordFields(name, resolvedType, rhs, nodeId)
		return ok
	}

	if c.Types.IsListType(resolvedType) && len(rhs) == 1 && c.Nodes.Get(rhs[0]).Kind == ast.ListLiteral {
		return c.checkListBinding(name, resolvedType, rhs[0])
	}

	if len(rhs) != 1 {
		store.Bugf("checker: scalar VarBinding %d has %d rhs children, expected 1", nodeId, len(rhs))
	}
	res := c.CheckExpressionChecked(rhs[0], resolvedType)
	if !res.ok() {
		return false
	}
	symId := c.Scope.DefineSymbol(symbols.Symbol{NameId: name, ParseNodeId: nodeId, TypeId: resolvedType})
	c.Insts.Add(ir.Instruction{Kind: ir.Bind, Arg0: uint32(symId), Arg1: uint32(res.Inst), ParseNodeId: nodeId, TypeId: resolvedType})
	return true
}

// checkListBinding checks a fixed-size list literal against its declared
// element type and size, flattening each element into its own "{name}_{i}"
// symbol and registering the base name as a list binding so IndexAccess can
// bounds-check against a compile-time-known size (spec §4.5, §4.4).
func (c *Checker) checkListBinding(name store.StringId, listType typesystem.TypeId, listLiteralNode ast.Id) bool {
	elems := c.Nodes.ChildrenLeftToRight(listLiteralNode)
	size := c.Types.GetListSize(listType)
	if len(elems) != size {
		c.emit(diagnostics.ListLiteralSizeMismatch, listLiteralNode, map[string]string{
			"count": itoa(len(elems)), "size": itoa(size),
		})
		return false
	}
	elemType := c.Types.GetListElementType(listType)

	ok := true
	for i, e := range elems {
		res := c.CheckExpressionChecked(e, elemType)
		if !res.ok() {
			ok = false
			continue
		}
		elemName := c.Strs.Intern(c.Strs.Get(name) + "_" + itoa(i))
		symId := c.Scope.DefineSymbol(symbols.Symbol{NameId: elemName, ParseNodeId: e, TypeId: elemType})
		c.Insts.Add(ir.Instruction{Kind: ir.Bind, Arg0: uint32(symId), Arg1: uint32(res.Inst), ParseNodeId: e, TypeId: elemType})
	}
	if !ok {
		return false
	}
	c.Scope.DefineListBinding(name, listType)
	return true
}

// checkRecordFields checks a top-level record literal's field initializers
// (spec §4.5). See checkRecordFieldsBlock for the actual walk: a top-level
// literal opens a BlockRecordLiteral context (spec §3 "BlockContext").
func (c *Checker) checkRecordFields(prefix store.StringId, recordType typesystem.TypeId, fieldInits []ast.Id, nodeId ast.Id) bool {
	return c.checkRecordFieldsBlock(prefix, recordType, fieldInits, nodeId, BlockRecordLiteral)
}

// checkRecordFieldsBlock checks recordType's declared fields against
// fieldInits (spec §4.5): every declared field must appear exactly once,
// unknown names are rejected, and each field value is flattened into a
// "{prefix}_{field}" symbol. A field whose own type is a record recurses
// with an extended prefix and a BlockNestedRecordInit context (spec §3
// "BlockContext" tracks an in-progress record literal across its indented
// field-initializer lines; the open block's FieldNames/FieldInits are what
// the final missing-field sweep below reads back rather than a throwaway
// local set).
func (c *Checker) checkRecordFieldsBlock(prefix store.StringId, recordType typesystem.TypeId, fieldInits []ast.Id, nodeId ast.Id, kind BlockKind) bool {
	declared := c.Types.GetFields(recordType)
	fieldNames := make([]store.StringId, len(declared))
	for i, f := range declared {
		fieldNames[i] = f.Name
	}
	c.PushBlock(BlockContext{
		Kind: kind, BindingName: prefix, BindingNode: nodeId, TypeId: recordType,
		ParentPath: prefix, FieldNames: fieldNames,
	})

	ok := true
	for _, initNode := range fieldInits {
		fieldName := store.StringId(c.Toks.Get(c.Nodes.Get(initNode).TokenId).Payload)
		field, found := c.Types.GetField(recordType, fieldName)
		if !found {
			c.emit(diagnostics.UnknownRecordField, initNode, map[string]string{
				"field": c.Strs.Get(fieldName), "type": c.Types.TypeName(recordType),
			})
			ok = false
			continue
		}
		if c.blockHasFieldInit(fieldName) {
			c.emit(diagnostics.DuplicateField, initNode, map[string]string{"field": c.Strs.Get(fieldName)})
			ok = false
			continue
		}

		flattenedPrefix := c.Strs.Intern(c.Strs.Get(prefix) + "_" + c.Strs.Get(fieldName))
		valueNodes := c.Nodes.ChildrenLeftToRight(initNode)

		if c.Types.IsRecordType(field.Type) {
			nestedOk := c.checkRecordFieldsBlock(flattenedPrefix, field.Type, valueNodes, initNode, BlockNestedRecordInit)
			if !nestedOk {
				ok = false
			}
			c.TopBlock().FieldInits = append(c.TopBlock().FieldInits, FieldInitEntry{Name: fieldName, Node: initNode})
			continue
		}

		if len(valueNodes) != 1 {
			store.Bugf("checker: scalar field init %d has %d value children, expected 1", initNode, len(valueNodes))
		}
		res := c.CheckExpressionChecked(valueNodes[0], field.Type)
		if !res.ok() {
			ok = false
			continue
		}
		symId := c.Scope.DefineSymbol(symbols.Symbol{NameId: flattenedPrefix, ParseNodeId: initNode, TypeId: field.Type})
		c.Insts.Add(ir.Instruction{Kind: ir.Bind, Arg0: uint32(symId), Arg1: uint32(res.Inst), ParseNodeId: initNode, TypeId: field.Type})
		c.TopBlock().FieldInits = append(c.TopBlock().FieldInits, FieldInitEntry{Name: fieldName, Node: initNode})
	}

	block := c.PopBlock()
	for _, name := range block.FieldNames {
		if !c.fieldInitsContain(block.FieldInits, name) {
			c.emit(diagnostics.MissingRecordField, nodeId, map[string]string{
				"field": c.Strs.Get(name), "type": c.Types.TypeName(recordType),
			})
			ok = false
		}
	}
	return ok
}

// blockHasFieldInit reports whether the innermost open block context has
// already recorded an initializer for name.
func (c *Checker) blockHasFieldInit(name store.StringId) bool {
	return c.fieldInitsContain(c.TopBlock().FieldInits, name)
}

func (c *Checker) fieldInitsContain(entries []FieldInitEntry, name store.StringId) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

// CheckTypeDecl registers a record type declaration (spec §4.3): its fields
// are collected in declaration order and interned as a single nominal
// record type, rejecting a duplicate field name within the declaration.
// The fields accumulate on an open BlockTypeDecl context (spec §3
// "BlockContext") across the declaration's indented field-decl lines,
// rather than in a throwaway local slice.
func (c *Checker) CheckTypeDecl(nodeId ast.Id) bool {
	n := c.Nodes.Get(nodeId)
	name := store.StringId(c.Toks.Get(n.TokenId).Payload)
	fieldDecls := c.Nodes.ChildrenLeftToRight(nodeId)

	c.PushBlock(BlockContext{Kind: BlockTypeDecl, TypeName: name, NodeId: nodeId})

	seen := make(map[store.StringId]bool)
	ok := true
	for i, fd := range fieldDecls {
		fieldName := store.StringId(c.Toks.Get(c.Nodes.Get(fd).TokenId).Payload)
		if seen[fieldName] {
			c.emit(diagnostics.DuplicateField, fd, map[string]string{"field": c.Strs.Get(fieldName)})
			ok = false
			continue
		}
		seen[fieldName] = true
		fieldType, typeOk := c.resolveTypeRef(c.onlyChild(fd))
		if !typeOk {
			ok = false
			continue
		}
		c.TopBlock().Fields = append(c.TopBlock().Fields, typesystem.Field{Name: fieldName, Type: fieldType, Index: i})
	}

	block := c.PopBlock()
	if !ok {
		return false
	}

	if _, err := c.Types.RegisterRecordType(block.TypeName, block.Fields); err != nil {
		c.emit(diagnostics.StructuralMismatch, nodeId, map[string]string{"name": c.Strs.Get(name)})
		return false
	}
	return true
}
