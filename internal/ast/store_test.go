package ast_test

import (
	"testing"

	"github.com/nerdalytics/tinywhale/internal/ast"
	"github.com/nerdalytics/tinywhale/internal/asttest"
)

func TestChildRangeLeftToRightMatchesConstructionOrder(t *testing.T) {
	b := asttest.New()
	one := b.Int("1")
	two := b.Int("2")
	sum := b.BinaryExpr("+", one, two)

	kids := b.Nodes.ChildrenLeftToRight(sum)
	if len(kids) != 2 || kids[0] != one || kids[1] != two {
		t.Fatalf("ChildrenLeftToRight(sum) = %v, want [%d %d]", kids, one, two)
	}
}

func TestSubtreeSizeInvariantHoldsForEveryNode(t *testing.T) {
	b := asttest.New()
	one := b.Int("1")
	two := b.Int("2")
	sum := b.BinaryExpr("+", one, two)
	three := b.Int("3")
	outer := b.BinaryExpr("*", sum, three)

	b.Nodes.IterateSubtree(outer, func(id ast.Id, n ast.Node) bool {
		var childSizeSum uint32
		b.Nodes.IterateChildren(id, func(_ ast.Id, c ast.Node) bool {
			childSizeSum += c.SubtreeSize
			return true
		})
		if n.SubtreeSize != 1+childSizeSum {
			t.Errorf("node %d: SubtreeSize = %d, want 1 + %d", id, n.SubtreeSize, childSizeSum)
		}
		return true
	})
}

func TestIterateSubtreeVisitsEveryDescendantExactlyOnceInPostorder(t *testing.T) {
	b := asttest.New()
	one := b.Int("1")
	two := b.Int("2")
	sum := b.BinaryExpr("+", one, two)

	var visited []ast.Id
	b.Nodes.IterateSubtree(sum, func(id ast.Id, _ ast.Node) bool {
		visited = append(visited, id)
		return true
	})
	want := []ast.Id{one, two, sum}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited[%d] = %d, want %d", i, visited[i], want[i])
		}
	}
}
