package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/token"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// resolveTypeRef interprets a TypeRef/RefinedTypeRef/ListTypeRef node into a
// registered TypeId (spec §4.3). Returns (InvalidType, false) and has
// already emitted a diagnostic on failure.
func (c *Checker) resolveTypeRef(nodeId ast.Id) (typesystem.TypeId, bool) {
	n := c.Nodes.Get(nodeId)
	switch n.Kind {
	case ast.TypeRef:
		return c.resolvePrimitiveOrRecordRef(nodeId)
	case ast.RefinedTypeRef:
		return c.resolveRefinedTypeRef(nodeId)
	case ast.ListTypeRef:
		return c.resolveListTypeRef(nodeId)
	default:
		store.Bugf("checker: node kind %s is not a type reference", n.Kind)
		return typesystem.InvalidType, false
	}
}

func (c *Checker) resolvePrimitiveOrRecordRef(nodeId ast.Id) (typesystem.TypeId, bool) {
	tok := c.Toks.Get(c.Nodes.Get(nodeId).TokenId)
	switch tok.Kind {
	case token.KwI32:
		return typesystem.I32, true
	case token.KwI64:
		return typesystem.I64, true
	case token.KwF32:
		return typesystem.F32, true
	case token.KwF64:
		return typesystem.F64, true
	default:
		name := store.StringId(tok.Payload)
		if id, ok := c.Types.LookupRecordType(name); ok {
			return id, true
		}
		c.emit(diagnostics.UnknownName, nodeId, map[string]string{"name": c.Strs.Get(name)})
		return typesystem.InvalidType, false
	}
}

func (c *Checker) resolveRefinedTypeRef(nodeId ast.Id) (typesystem.TypeId, bool) {
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	baseId, minId, maxId := kids[0], kids[1], kids[2]

	base, ok := c.resolveTypeRef(baseId)
	if !ok {
		return typesystem.InvalidType, false
	}
	if !c.Types.IsIntegerPrimitive(c.Types.ToWasmType(base)) {
		c.emit(diagnostics.RefinementOnNonInteger, nodeId, map[string]string{"type": c.Types.TypeName(base)})
		return typesystem.InvalidType, false
	}

	min, ok := c.resolveBound(minId)
	if !ok {
		return typesystem.InvalidType, false
	}
	max, ok := c.resolveBound(maxId)
	if !ok {
		return typesystem.InvalidType, false
	}
	return c.Types.RegisterRefinedType(base, min, max), true
}

func (c *Checker) resolveBound(nodeId ast.Id) (typesystem.Bound, bool) {
	if c.Nodes.Get(nodeId).Kind == ast.NoBound {
		return typesystem.NoBound(), true
	}
	text := c.Toks.Get(c.Nodes.Get(nodeId).TokenId).PayloadString(c.Strs)
	v, ok := parseBigInt(text)
	if !ok {
		c.emit(diagnostics.IntegerOutOfRange, nodeId, map[string]string{"value": text, "type": "refinement bound"})
		return typesystem.Bound{}, false
	}
	return typesystem.BoundOf(v), true
}

func (c *Checker) resolveListTypeRef(nodeId ast.Id) (typesystem.TypeId, bool) {
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	elemId, sizeId := kids[0], kids[1]

	elem, ok := c.resolveTypeRef(elemId)
	if !ok {
		return typesystem.InvalidType, false
	}
	text := c.Toks.Get(c.Nodes.Get(sizeId).TokenId).PayloadString(c.Strs)
	v, ok := parseBigInt(text)
	if !ok || !v.IsInt64() || v.Int64() <= 0 {
		c.emit(diagnostics.NonPositiveListSize, nodeId, map[string]string{"size": text})
		return typesystem.InvalidType, false
	}
	return c.Types.RegisterListType(elem, int(v.Int64())), true
}
