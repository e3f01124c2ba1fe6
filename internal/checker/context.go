package checker

import (
	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/ir"
	"github.com/nerdalytics/tinywhale/internal/store"
	"github.com/nerdalytics/tinywhale/internal/symbols"
	"github.com/nerdalytics/tinywhale/internal/typesystem"
)

// BlockKind discriminates the shape of a BlockContext (spec §3
// "BlockContext").
type BlockKind uint8

const (
	BlockTypeDecl BlockKind = iota
	BlockRecordLiteral
	BlockNestedRecordInit
	BlockFuncDef
)

// FieldInitEntry is one field a RecordLiteral/NestedRecordInit block has
// seen initialized so far: the field's name and the node that initialized
// it.
type FieldInitEntry struct {
	Name store.StringId
	Node ast.Id
}

// BlockContext is the closed variant spec §3 describes, tracking an
// in-progress construct across indented child lines. Only the fields
// relevant to Kind are populated (spec §9: "closed sum type... dispatch by
// exhaustive case analysis").
type BlockContext struct {
	Kind BlockKind

	// BlockTypeDecl
	TypeName store.StringId
	Fields   []typesystem.Field
	NodeId   ast.Id

	// BlockRecordLiteral / BlockNestedRecordInit
	BindingName store.StringId
	BindingNode ast.Id
	TypeId      typesystem.TypeId
	ParentPath  store.StringId // symbol prefix: the binding name, or "{parent}_{field}" when nested
	FieldNames  []store.StringId
	FieldInits  []FieldInitEntry

	// BlockFuncDef
	FuncId       ir.FuncId
	ParamSymbols []symbols.SymbolId
	ReturnType   typesystem.TypeId
}

// PushBlock opens a new in-progress block context.
func (c *Checker) PushBlock(b BlockContext) {
	c.blocks = append(c.blocks, b)
}

// TopBlock returns the innermost open block context.
func (c *Checker) TopBlock() *BlockContext {
	if len(c.blocks) == 0 {
		store.Bugf("checker: TopBlock called with no open block context")
	}
	return &c.blocks[len(c.blocks)-1]
}

// PopBlock closes the innermost block context and returns it.
func (c *Checker) PopBlock() BlockContext {
	b := c.TopBlock()
	popped := *b
	c.blocks = c.blocks[:len(c.blocks)-1]
	return popped
}

// MatchArmEntry records one checked arm's pattern node and body instruction.
type MatchArmEntry struct {
	PatternNode ast.Id
	BodyInst    ir.Id
}

// MatchContext is the single active match being checked (spec §3
// "MatchContext"). At most one is active at a time: matches do not nest in
// this language.
type MatchContext struct {
	ScrutineeInst ir.Id
	ScrutineeType typesystem.TypeId
	ExpectedType  typesystem.TypeId
	Arms          []MatchArmEntry
	BindingName   store.StringId
	BindingNode   ast.Id
}
