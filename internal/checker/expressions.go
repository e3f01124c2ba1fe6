package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/diagnostics"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/token"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// checkUnaryExpr handles '~' (bitwise not, integer-only) and '-' (negation,
// folded into literal children per spec §4.4).
func (c *Checker) checkUnaryExpr(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	n := c.Nodes.Get(nodeId)
	op := c.Toks.Get(n.TokenId).Kind
	child := c.onlyChild(nodeId)

	if op == token.Tilde {
		childRes := c.CheckExpressionInferred(child)
		if !childRes.ok() {
			return Invalid
		}
		if !c.Types.IsIntegerPrimitive(c.Types.ToWasmType(childRes.Type)) {
			c.emit(diagnostics.NonIntegerOperand, nodeId, map[string]string{"op": "~"})
			return Invalid
		}
		if !c.requireType(nodeId, checking, expectedType, childRes.Type) {
			return Invalid
		}
		inst := c.Insts.Add(ir.Instruction{Kind: ir.BitwiseNot, Arg0: uint32(childRes.Inst), ParseNodeId: nodeId, TypeId: childRes.Type})
		return Result{Inst: inst, Type: childRes.Type}
	}

	// '-': fold into a literal child, else recurse and emit Negate.
	if kind := c.Nodes.Get(child).Kind; kind == ast.IntLiteral || kind == ast.FloatLiteral {
		return c.checkNegatedLiteral(nodeId, child, expectedType, checking)
	}
	var childRes Result
	if checking {
		childRes = c.CheckExpressionChecked(child, expectedType)
	} else {
		childRes = c.CheckExpressionInferred(child)
	}
	if !childRes.ok() {
		return Invalid
	}
	inst := c.Insts.Add(ir.Instruction{Kind: ir.Negate, Arg0: uint32(childRes.Inst), ParseNodeId: nodeId, TypeId: childRes.Type})
	return Result{Inst: inst, Type: childRes.Type}
}

// checkNegatedLiteral re-checks a literal child with its text effectively
// negated, so bounds checking sees the final signed value.
func (c *Checker) checkNegatedLiteral(nodeId, child ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	tok := c.Toks.Get(c.Nodes.Get(child).TokenId)
	text := tok.PayloadString(c.Strs)
	negated := c.Strs.Intern("-" + text)

	synthetic := token.Token{Kind: tok.Kind, Line: tok.Line, Column: tok.Column, Payload: uint32(negated)}
	synthId := c.Toks.Add(synthetic)
	litNode := ast.Node{Kind: c.Nodes.Get(child).Kind, TokenId: synthId, SubtreeSize: 1}
	litId := c.Nodes.Add(litNode)

	if checking {
		return c.checkExpression(litId, expectedType, true)
	}
	return c.checkExpression(litId, typesystem.InvalidType, false)
}

// checkParenExpr is transparent (spec §4.4).
func (c *Checker) checkParenExpr(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	child := c.onlyChild(nodeId)
	if checking {
		return c.CheckExpressionChecked(child, expectedType)
	}
	return c.CheckExpressionInferred(child)
}

var integerOnlyOps = map[token.Kind]bool{
	token.Percent: true, token.PercentPercent: true, token.Amp: true,
	token.Pipe: true, token.Caret: true, token.Shl: true, token.Shr: true, token.Ushr: true,
}

// checkBinaryExpr evaluates both operands inferred, enforces operand-type
// equality and integer-only operator constraints, and emits BinaryOp,
// LogicalAnd, or LogicalOr (spec §4.4).
func (c *Checker) checkBinaryExpr(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	left, right := c.twoChildren(nodeId)
	op := c.Toks.Get(c.Nodes.Get(nodeId).TokenId).Kind

	leftRes := c.CheckExpressionInferred(left)
	rightRes := c.CheckExpressionInferred(right)
	if !leftRes.ok() || !rightRes.ok() {
		return Invalid
	}
	if !c.Types.AreEqual(leftRes.Type, rightRes.Type) {
		c.emit(diagnostics.OperandTypeMismatch, nodeId, map[string]string{
			"found": c.Types.TypeName(rightRes.Type), "expected": c.Types.TypeName(leftRes.Type),
		})
		return Invalid
	}

	if op == token.AmpAmp || op == token.PipePipe {
		if !c.Types.IsIntegerPrimitive(c.Types.ToWasmType(leftRes.Type)) {
			c.emit(diagnostics.NonIntegerLogicalOp, nodeId, map[string]string{"op": op.String()})
			return Invalid
		}
		if !c.requireType(nodeId, checking, expectedType, typesystem.I32) {
			return Invalid
		}
		kind := ir.LogicalAnd
		if op == token.PipePipe {
			kind = ir.LogicalOr
		}
		inst := c.Insts.Add(ir.Instruction{Kind: kind, Arg0: uint32(leftRes.Inst), Arg1: uint32(rightRes.Inst), ParseNodeId: nodeId, TypeId: typesystem.I32})
		return Result{Inst: inst, Type: typesystem.I32}
	}

	if integerOnlyOps[op] && !c.Types.IsIntegerPrimitive(c.Types.ToWasmType(leftRes.Type)) {
		c.emit(diagnostics.NonIntegerOperand, nodeId, map[string]string{"op": op.String()})
		return Invalid
	}

	resultType := leftRes.Type
	if token.IsComparisonOp(op) {
		resultType = typesystem.I32
	}
	if !c.requireType(nodeId, checking, expectedType, resultType) {
		return Invalid
	}
	inst := c.Insts.Add(ir.Instruction{Kind: ir.BinaryOp, Arg0: uint32(leftRes.Inst), Arg1: uint32(rightRes.Inst), ParseNodeId: nodeId, TypeId: resultType})
	return Result{Inst: inst, Type: resultType}
}

// checkCompareChain checks an n-ary relational chain (spec §4.4): every
// operand's type must equal the first, result is always I32, and a single
// representative BinaryOp is emitted over the first two operands (spec §9's
// Open Question resolved in favor of the minimal representative the text
// itself proposes — full chain semantics belong to the backend).
func (c *Checker) checkCompareChain(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	operands := c.Nodes.ChildrenLeftToRight(nodeId)

	first := c.CheckExpressionInferred(operands[0])
	if !first.ok() {
		return Invalid
	}
	results := make([]Result, len(operands))
	results[0] = first
	for i := 1; i < len(operands); i++ {
		r := c.CheckExpressionInferred(operands[i])
		if !r.ok() {
			return Invalid
		}
		if !c.Types.AreEqual(r.Type, first.Type) {
			c.emit(diagnostics.OperandTypeMismatch, operands[i], map[string]string{
				"found": c.Types.TypeName(r.Type), "expected": c.Types.TypeName(first.Type),
			})
			return Invalid
		}
		results[i] = r
	}

	if !c.requireType(nodeId, checking, expectedType, typesystem.I32) {
		return Invalid
	}
	inst := c.Insts.Add(ir.Instruction{
		Kind: ir.BinaryOp, Arg0: uint32(results[0].Inst), Arg1: uint32(results[1].Inst),
		ParseNodeId: nodeId, TypeId: typesystem.I32,
	})
	return Result{Inst: inst, Type: typesystem.I32}
}

// checkIdentifier looks a name up in scope and emits VarRef (spec §4.4).
func (c *Checker) checkIdentifier(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	tok := c.Toks.Get(c.Nodes.Get(nodeId).TokenId)
	name := store.StringId(tok.Payload)
	symId, ok := c.Scope.LookupByName(name)
	if !ok {
		c.emit(diagnostics.UnknownName, nodeId, map[string]string{"name": c.Strs.Get(name)})
		return Invalid
	}
	sym := c.Scope.Syms().Get(symId)
	if !c.requireType(nodeId, checking, expectedType, sym.TypeId) {
		return Invalid
	}
	inst := c.Insts.Add(ir.Instruction{Kind: ir.VarRef, Arg0: uint32(symId), ParseNodeId: nodeId, TypeId: sym.TypeId})
	return Result{Inst: inst, Type: sym.TypeId}
}

// checkListLiteral checks a list literal in checking mode only (spec
// §4.4): expectedType must be a list type, element count must match the
// declared size, and each element is checked against the element type.
func (c *Checker) checkListLiteral(nodeId ast.Id, expectedType typesystem.TypeId, checking bool) Result {
	if !checking || !c.Types.IsListType(expectedType) {
		c.emit(diagnostics.TypeMismatch, nodeId, map[string]string{
			"expected": c.Types.TypeName(expectedType), "found": "list literal",
		})
		return Invalid
	}
	elems := c.Nodes.ChildrenLeftToRight(nodeId)
	size := c.Types.GetListSize(expectedType)
	if len(elems) != size {
		c.emit(diagnostics.ListLiteralSizeMismatch, nodeId, map[string]string{
			"count": itoa(len(elems)), "size": itoa(size),
		})
		return Invalid
	}
	elemType := c.Types.GetListElementType(expectedType)
	results := make([]Result, len(elems))
	ok := true
	for i, e := range elems {
		r := c.CheckExpressionChecked(e, elemType)
		results[i] = r
		if !r.ok() {
			ok = false
		}
	}
	if !ok {
		return Invalid
	}
	var last ir.Id
	if len(results) > 0 {
		last = results[len(results)-1].Inst
	}
	inst := c.Insts.Add(ir.Instruction{Kind: ir.VarRef, Arg0: uint32(last), ParseNodeId: nodeId, TypeId: expectedType})
	return Result{Inst: inst, Type: expectedType}
}

func (c *Checker) onlyChild(nodeId ast.Id) ast.Id {
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	if len(kids) != 1 {
		store.Bugf("checker: node %d expected exactly 1 child, got %d", nodeId, len(kids))
	}
	return kids[0]
}

func (c *Checker) twoChildren(nodeId ast.Id) (ast.Id, ast.Id) {
	kids := c.Nodes.ChildrenLeftToRight(nodeId)
	if len(kids) != 2 {
		store.Bugf("checker: node %d expected exactly 2 children, got %d", nodeId, len(kids))
	}
	return kids[0], kids[1]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}
