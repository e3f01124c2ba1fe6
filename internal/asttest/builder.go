// Package asttest hand-constructs postorder parse trees for unit tests.
//
// It is not a grammar parser — the real parser is an external collaborator
// (spec §1, §6) outside this module's scope. Builder exists solely so
// internal/checker's tests can exercise the checker against trees shaped
// like real programs without a parser to produce them, the same way the
// teacher's own analyzer tests build an *ast.Program by hand in places
// rather than always routing through the full lexer+parser pipeline.
package asttest

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/token"
)

// Builder assembles a token store, string store, and node store together.
// Calls must be made in left-to-right (source) order: build every child
// before the parent node that contains it, and build siblings in the order
// they'd appear in source, so the resulting arrays satisfy the postorder
// contract in spec §3.
type Builder struct {
	Tokens *token.Store
	Strs   *store.StringStore
	Nodes  *ast.Store
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{
		Tokens: token.NewStore(),
		Strs:   store.NewStringStore(),
		Nodes:  ast.NewStore(),
	}
}

func (b *Builder) tok(kind token.Kind, line, col int, payload uint32) token.Id {
	return b.Tokens.Add(token.Token{Kind: kind, Line: line, Column: col, Payload: payload})
}

func (b *Builder) strTok(kind token.Kind, text string, line, col int) token.Id {
	return b.tok(kind, line, col, uint32(b.Strs.Intern(text)))
}

func (b *Builder) add(kind ast.Kind, tokId token.Id, children ...ast.Id) ast.Id {
	size := uint32(1)
	for _, c := range children {
		size += b.Nodes.Get(c).SubtreeSize
	}
	return b.Nodes.Add(ast.Node{Kind: kind, TokenId: tokId, SubtreeSize: size})
}

// Int creates an IntLiteral leaf from a decimal (optionally exponent-bearing)
// text such as "42" or "1e3".
func (b *Builder) Int(text string) ast.Id {
	t := b.strTok(token.IntLiteral, text, 1, 1)
	return b.add(ast.IntLiteral, t)
}

// Float creates a FloatLiteral leaf.
func (b *Builder) Float(text string) ast.Id {
	t := b.strTok(token.FloatLiteral, text, 1, 1)
	return b.add(ast.FloatLiteral, t)
}

// Ident creates an Identifier leaf referencing name.
func (b *Builder) Ident(name string) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	return b.add(ast.Identifier, t)
}

// Underscore creates an Underscore leaf ('_').
func (b *Builder) Underscore() ast.Id {
	t := b.tok(token.Underscore, 1, 1, 0)
	return b.add(ast.Underscore, t)
}

// TypeRef creates a TypeRef leaf for a primitive keyword (i32/i64/f32/f64) or
// a user record type name.
func (b *Builder) TypeRef(name string) ast.Id {
	kind, ok := token.LookupKeyword(name)
	if !ok {
		kind = token.Identifier
	}
	t := b.strTok(kind, name, 1, 1)
	return b.add(ast.TypeRef, t)
}

// RefinedTypeRef builds i32<min=lo, max=hi>-style refined type references.
// Pass "" for an absent bound.
func (b *Builder) RefinedTypeRef(base ast.Id, minText, maxText string) ast.Id {
	minNode := b.bound(minText)
	maxNode := b.bound(maxText)
	t := b.Nodes.Get(base).TokenId
	return b.add(ast.RefinedTypeRef, t, base, minNode, maxNode)
}

func (b *Builder) bound(text string) ast.Id {
	if text == "" {
		t := b.tok(token.Invalid, 1, 1, 0)
		return b.add(ast.NoBound, t)
	}
	return b.Int(text)
}

// ListTypeRef builds a fixed-size list type reference.
func (b *Builder) ListTypeRef(elem ast.Id, size string) ast.Id {
	sizeNode := b.Int(size)
	t := b.Nodes.Get(elem).TokenId
	return b.add(ast.ListTypeRef, t, elem, sizeNode)
}

// UnaryExpr builds a unary expression node ('~' or '-').
func (b *Builder) UnaryExpr(op string, child ast.Id) ast.Id {
	t := b.opToken(op)
	return b.add(ast.UnaryExpr, t, child)
}

// Paren wraps child in a ParenExpr node.
func (b *Builder) Paren(child ast.Id) ast.Id {
	t := b.Nodes.Get(child).TokenId
	return b.add(ast.ParenExpr, t, child)
}

// BinaryExpr builds a binary expression node for any recognized operator.
func (b *Builder) BinaryExpr(op string, left, right ast.Id) ast.Id {
	t := b.opToken(op)
	return b.add(ast.BinaryExpr, t, left, right)
}

// CompareChain builds an n-ary relational chain ("a < b <= c").
func (b *Builder) CompareChain(operands ...ast.Id) ast.Id {
	if len(operands) < 2 {
		store.Bugf("asttest: CompareChain requires at least 2 operands, got %d", len(operands))
	}
	t := b.Nodes.Get(operands[0]).TokenId
	return b.add(ast.CompareChain, t, operands...)
}

// FieldAccess builds a "base.field" node.
func (b *Builder) FieldAccess(base ast.Id, field string) ast.Id {
	t := b.strTok(token.Identifier, field, 1, 1)
	return b.add(ast.FieldAccess, t, base)
}

// IndexAccess builds a "base[index]" node. index should be an Int() node.
func (b *Builder) IndexAccess(base, index ast.Id) ast.Id {
	t := b.Nodes.Get(index).TokenId
	return b.add(ast.IndexAccess, t, base, index)
}

// ListLiteral builds a list literal from its elements in source order.
func (b *Builder) ListLiteral(elems ...ast.Id) ast.Id {
	t := b.tok(token.LBracket, 1, 1, 0)
	return b.add(ast.ListLiteral, t, elems...)
}

// FuncCall builds a call node; callee is the callee expression, args follow
// in source order.
func (b *Builder) FuncCall(callee ast.Id, args ...ast.Id) ast.Id {
	t := b.Nodes.Get(callee).TokenId
	children := append([]ast.Id{callee}, args...)
	return b.add(ast.FuncCall, t, children...)
}

// VarBinding builds "name: Type = rhs...". rhs is either a single expression
// node, a single MatchExpr node, or a sequence of FieldInit nodes.
func (b *Builder) VarBinding(name string, typeRef ast.Id, rhs ...ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	children := append([]ast.Id{typeRef}, rhs...)
	return b.add(ast.VarBinding, t, children...)
}

// FieldInit builds "name = expr" or, for a nested record field, "name"
// followed by nested FieldInit children.
func (b *Builder) FieldInit(name string, children ...ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	return b.add(ast.FieldInit, t, children...)
}

// TypeDecl builds a record type declaration from its field declarations.
func (b *Builder) TypeDecl(name string, fields ...ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	return b.add(ast.TypeDecl, t, fields...)
}

// FieldDecl builds a "name: Type" record field declaration.
func (b *Builder) FieldDecl(name string, typeRef ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	return b.add(ast.FieldDecl, t, typeRef)
}

// FuncDeclStmt builds a forward declaration "name: (P1, P2) -> R".
func (b *Builder) FuncDeclStmt(name string, paramTypes []ast.Id, returnType ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	children := append(append([]ast.Id{}, paramTypes...), returnType)
	return b.add(ast.FuncDeclStmt, t, children...)
}

// LambdaParam builds a "name: Type" function parameter.
func (b *Builder) LambdaParam(name string, typeRef ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	return b.add(ast.LambdaParam, t, typeRef)
}

// FuncDefStmt builds "name = (params...): R -> body".
func (b *Builder) FuncDefStmt(name string, params []ast.Id, returnType, body ast.Id) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	children := append(append([]ast.Id{}, params...), returnType, body)
	return b.add(ast.FuncDefStmt, t, children...)
}

// MatchExpr builds "match scrutinee" with arms following in source order.
func (b *Builder) MatchExpr(scrutinee ast.Id, arms ...ast.Id) ast.Id {
	t := b.tok(token.KwMatch, 1, 1, 0)
	children := append([]ast.Id{scrutinee}, arms...)
	return b.add(ast.MatchExpr, t, children...)
}

// MatchArm builds "pattern -> body".
func (b *Builder) MatchArm(pattern, body ast.Id) ast.Id {
	t := b.Nodes.Get(pattern).TokenId
	return b.add(ast.MatchArm, t, pattern, body)
}

// LiteralPattern builds an integer-literal pattern.
func (b *Builder) LiteralPattern(text string) ast.Id {
	t := b.strTok(token.IntLiteral, text, 1, 1)
	return b.add(ast.LiteralPattern, t)
}

// OrPattern builds "alt1 | alt2 | ...".
func (b *Builder) OrPattern(alts ...ast.Id) ast.Id {
	t := b.Nodes.Get(alts[0]).TokenId
	return b.add(ast.OrPattern, t, alts...)
}

// WildcardPattern builds the '_' catch-all pattern.
func (b *Builder) WildcardPattern() ast.Id {
	t := b.tok(token.Underscore, 1, 1, 0)
	return b.add(ast.WildcardPattern, t)
}

// BindingPattern builds a name-binding pattern.
func (b *Builder) BindingPattern(name string) ast.Id {
	t := b.strTok(token.Identifier, name, 1, 1)
	return b.add(ast.BindingPattern, t)
}

// Program builds the root node from top-level statements in source order.
func (b *Builder) Program(stmts ...ast.Id) ast.Id {
	t := b.tok(token.Eof, 1, 1, 0)
	return b.add(ast.Program, t, stmts...)
}

func (b *Builder) opToken(op string) token.Id {
	kinds := map[string]token.Kind{
		"~": token.Tilde, "-": token.Minus, "+": token.Plus, "*": token.Star,
		"/": token.Slash, "%": token.Percent, "%%": token.PercentPercent,
		"&": token.Amp, "|": token.Pipe, "^": token.Caret,
		"<<": token.Shl, ">>": token.Shr, ">>>": token.Ushr,
		"<": token.Lt, ">": token.Gt, "<=": token.Le, ">=": token.Ge,
		"==": token.Eq, "!=": token.Ne, "&&": token.AmpAmp, "||": token.PipePipe,
	}
	k, ok := kinds[op]
	if !ok {
		store.Bugf("asttest: unknown operator %q", op)
	}
	return b.tok(k, 1, 1, 0)
}
