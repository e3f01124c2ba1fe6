// Package ast holds the parse tree's data-oriented representation: a closed
// set of node kinds and a dense, postorder-stored node array with O(1)
// child-range navigation (spec §3, §4.1).
//
// This supersedes the teacher's pointer-and-interface internal/ast package
// (Node/Expression/Statement interfaces, one struct type per AST shape) with
// the closed-variant, array-backed layout spec §9's Design Notes call for:
// "Represent each as a closed sum type; dispatch by exhaustive case analysis."
package ast

import "github.com/nerdalytics/tinywhale/internal/token"

// Kind is a closed enumeration of parse-node shapes.
type Kind uint8

const (
	Invalid Kind = iota

	Program

	// Expressions
	IntLiteral
	FloatLiteral
	Identifier
	Underscore
	UnaryExpr
	ParenExpr
	BinaryExpr
	CompareChain
	FieldAccess
	IndexAccess
	ListLiteral
	FuncCall

	// Type references
	TypeRef       // primitive or user-record name; Token is the name
	RefinedTypeRef // children: [TypeRef, minBound, maxBound]
	ListTypeRef    // children: [elementTypeRef, sizeLiteral]
	NoBound        // leaf marker: an absent min/max bound

	// Declarations and bindings
	VarBinding   // children: [TypeRef, rhs...] rhs is one Expr, a MatchExpr, or FieldInit*
	FieldInit    // children: [Expr] or nested FieldInit* for a nested record field
	TypeDecl     // children: FieldDecl*
	FieldDecl    // children: [TypeRef]
	FuncDeclStmt // forward declaration; children: paramType* + [returnType]
	FuncDefStmt  // children: LambdaParam* + [returnType] + [body]
	LambdaParam  // children: [TypeRef]

	// Match
	MatchExpr // children: [scrutinee] + MatchArm*
	MatchArm  // children: [pattern, body]

	// Patterns
	LiteralPattern
	OrPattern // children: pattern alternatives
	WildcardPattern
	BindingPattern
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Program:
		return "Program"
	case IntLiteral:
		return "IntLiteral"
	case FloatLiteral:
		return "FloatLiteral"
	case Identifier:
		return "Identifier"
	case Underscore:
		return "Underscore"
	case UnaryExpr:
		return "UnaryExpr"
	case ParenExpr:
		return "ParenExpr"
	case BinaryExpr:
		return "BinaryExpr"
	case CompareChain:
		return "CompareChain"
	case FieldAccess:
		return "FieldAccess"
	case IndexAccess:
		return "IndexAccess"
	case ListLiteral:
		return "ListLiteral"
	case FuncCall:
		return "FuncCall"
	case TypeRef:
		return "TypeRef"
	case RefinedTypeRef:
		return "RefinedTypeRef"
	case ListTypeRef:
		return "ListTypeRef"
	case NoBound:
		return "NoBound"
	case VarBinding:
		return "VarBinding"
	case FieldInit:
		return "FieldInit"
	case TypeDecl:
		return "TypeDecl"
	case FieldDecl:
		return "FieldDecl"
	case FuncDeclStmt:
		return "FuncDeclStmt"
	case FuncDefStmt:
		return "FuncDefStmt"
	case LambdaParam:
		return "LambdaParam"
	case MatchExpr:
		return "MatchExpr"
	case MatchArm:
		return "MatchArm"
	case LiteralPattern:
		return "LiteralPattern"
	case OrPattern:
		return "OrPattern"
	case WildcardPattern:
		return "WildcardPattern"
	case BindingPattern:
		return "BindingPattern"
	default:
		return "?"
	}
}

// Id identifies a ParseNode in a Store.
type Id uint32

// Node is the fixed-size postorder parse-tree record (spec §3).
//
// SubtreeSize = 1 + the sum of its direct children's SubtreeSize. Nodes are stored
// with every child preceding its parent (postorder); direct children of node
// i are found by walking backward from i-1, subtracting each child's
// SubtreeSize to reach the previous sibling.
type Node struct {
	Kind        Kind
	TokenId     token.Id
	SubtreeSize uint32
}
