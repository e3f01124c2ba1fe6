package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// checkMatchBinding checks "name: T = match scrutinee \n pattern -> body ...'
// (spec §4.7): the scrutinee is inferred, every arm's body is checked
// against T with its pattern's bindings pushed into a fresh scope, the last
// arm must exhaustively cover what remains, and the whole expression
// finalizes into a Match instruction bound to name.
func (c *Checker) checkMatchBinding(name store.StringId, expectedType typesystem.TypeId, matchNode ast.Id) bool {
	kids := c.Nodes.ChildrenLeftToRight(matchNode)
	scrutineeNode, armNodes := kids[0], kids[1:]
	if len(armNodes) == 0 {
		store.Bugf("checker: match expression %d has no arms", matchNode)
	}

	scrutRes := c.CheckExpressionInferred(scrutineeNode)
	if !scrutRes.ok() {
		return false
	}

	prevMatch := c.match
	c.match = &MatchContext{
		ScrutineeInst: scrutRes.Inst, ScrutineeType: scrutRes.Type,
		ExpectedType: expectedType, BindingName: name, BindingNode: matchNode,
	}

	ok := true
	for i, armNode := range armNodes {
		isLast := i == len(armNodes)-1
		armKids := c.Nodes.ChildrenLeftToRight(armNode)
		patternNode, bodyNode := armKids[0], armKids[1]

		if isLast && !c.isExhaustiveCatchAll(patternNode) {
			c.emit(diagnostics.NonExhaustiveMatch, patternNode, nil)
			ok = false
		}

		c.Scope.Push()
		patOk := c.checkPattern(patternNode)
		var bodyRes Result
		if patOk {
			bodyRes = c.CheckExpressionChecked(bodyNode, expectedType)
		}
		c.Scope.Pop()

		if !patOk || !bodyRes.ok() {
			ok = false
			continue
		}
		c.match.Arms = append(c.match.Arms, MatchArmEntry{PatternNode: patternNode, BodyInst: bodyRes.Inst})
	}

	match := c.match
	c.match = prevMatch
	if !ok {
		return false
	}

	for idx, arm := range match.Arms {
		c.Insts.Add(ir.Instruction{Kind: ir.MatchArm, Arg0: uint32(arm.BodyInst), Arg1: uint32(idx), ParseNodeId: arm.PatternNode, TypeId: expectedType})
	}
	matchInst := c.Insts.Add(ir.Instruction{Kind: ir.Match, Arg0: uint32(match.ScrutineeInst), Arg1: uint32(len(match.Arms)), ParseNodeId: matchNode, TypeId: expectedType})

	symId := c.Scope.DefineSymbol(symbols.Symbol{NameId: name, ParseNodeId: matchNode, TypeId: expectedType})
	c.Insts.Add(ir.Instruction{Kind: ir.Bind, Arg0: uint32(symId), Arg1: uint32(matchInst), ParseNodeId: matchNode, TypeId: expectedType})
	return true
}

// checkPattern checks one arm's pattern against the active MatchContext's
// scrutinee type, binding any names the pattern introduces into the
// caller's freshly pushed scope.
func (c *Checker) checkPattern(nodeId ast.Id) bool {
	n := c.Nodes.Get(nodeId)
	switch n.Kind {
	case ast.LiteralPattern:
		if !c.Types.IsIntegerPrimitive(c.Types.ToWasmType(c.match.ScrutineeType)) {
			c.emit(diagnostics.NonIntegerPattern, nodeId, map[string]string{
				"type": c.Types.TypeName(c.match.ScrutineeType),
			})
			return false
		}
		text := c.Toks.Get(n.TokenId).PayloadString(c.Strs)
		if _, ok := parseBigInt(text); !ok {
			c.emit(diagnostics.NonIntegerPattern, nodeId, map[string]string{"value": text})
			return false
		}
		return true
	case ast.OrPattern:
		alts := c.Nodes.ChildrenLeftToRight(nodeId)
		ok := true
		for _, alt := range alts {
			if !c.checkPattern(alt) {
				ok = false
			}
		}
		return ok
	case ast.WildcardPattern:
		return true
	case ast.BindingPattern:
		bindName := store.StringId(c.Toks.Get(n.TokenId).Payload)
		symId := c.Scope.DefineSymbol(symbols.Symbol{NameId: bindName, ParseNodeId: nodeId, TypeId: c.match.ScrutineeType})
		c.Insts.Add(ir.Instruction{Kind: ir.PatternBind, Arg0: uint32(symId), Arg1: uint32(c.match.ScrutineeInst), ParseNodeId: nodeId, TypeId: c.match.ScrutineeType})
		return true
	default:
		store.Bugf("checker: node kind %s is not a pattern", n.Kind)
		return false
	}
}

// isExhaustiveCatchAll reports whether pattern unconditionally matches:
// a wildcard, a binding, or an or-pattern containing either (spec §4.7:
// "the final arm must exhaustively cover what remains").
func (c *Checker) isExhaustiveCatchAll(nodeId ast.Id) bool {
	n := c.Nodes.Get(nodeId)
	switch n.Kind {
	case ast.WildcardPattern, ast.BindingPattern:
		return true
	case ast.OrPattern:
		for _, alt := range c.Nodes.ChildrenLeftToRight(nodeId) {
			if c.isExhaustiveCatchAll(alt) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
