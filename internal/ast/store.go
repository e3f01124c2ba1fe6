package ast

import "github.com/nerdalytics/tinywhale/internal/store"

// Store is the dense, append-only, postorder parse-node store.
type Store struct {
	nodes []Node
}

// NewStore creates an empty node store.
func NewStore() *Store {
	return &Store{}
}

// Add appends n and returns its Id. Callers must append children before their
// parent (postorder) and set n.SubtreeSize = 1 + sum(children.SubtreeSize).
func (s *Store) Add(n Node) Id {
	id := Id(len(s.nodes))
	s.nodes = append(s.nodes, n)
	return id
}

// Get returns the node for id. Panics on an invalid id.
func (s *Store) Get(id Id) Node {
	if int(id) >= len(s.nodes) {
		store.Bugf("ast: invalid NodeId %d (have %d nodes)", id, len(s.nodes))
	}
	return s.nodes[id]
}

// Count returns the number of nodes in the store.
func (s *Store) Count() int {
	return len(s.nodes)
}

// ChildRange returns the half-open index range [start, end) of id's direct
// children in storage order (i.e. rightmost child first). It runs in time
// proportional to the number of direct children, not the whole subtree.
func (s *Store) ChildRange(id Id) (start, end Id) {
	n := s.Get(id)
	end = id // children occupy (start, id), exclusive of id itself
	remaining := int(n.SubtreeSize) - 1
	cursor := int(id) - 1
	start = id
	for remaining > 0 {
		if cursor < 0 {
			store.Bugf("ast: corrupt subtree at NodeId %d: ran past start of store", id)
		}
		child := s.nodes[cursor]
		remaining -= int(child.SubtreeSize)
		start = Id(cursor)
		cursor -= int(child.SubtreeSize)
	}
	if remaining < 0 {
		store.Bugf("ast: corrupt subtree at NodeId %d: child sizes overshoot parent", id)
	}
	return start, end
}

// IterateChildren calls fn once per direct child of id, rightmost child
// first (spec §3: "this yields rightmost-first iteration; callers that need
// left-to-right order reverse"). It stops early if fn returns false.
func (s *Store) IterateChildren(id Id, fn func(childId Id, child Node) bool) {
	start, end := s.ChildRange(id)
	cursor := int(end) - 1
	for cursor >= int(start) {
		childId := Id(cursor)
		child := s.nodes[childId]
		if !fn(childId, child) {
			return
		}
		cursor -= int(child.SubtreeSize)
	}
}

// ChildrenLeftToRight returns id's direct children in left-to-right (source)
// order, reversing the store's native rightmost-first layout.
func (s *Store) ChildrenLeftToRight(id Id) []Id {
	var rev []Id
	s.IterateChildren(id, func(childId Id, _ Node) bool {
		rev = append(rev, childId)
		return true
	})
	out := make([]Id, len(rev))
	for i, id := range rev {
		out[len(rev)-1-i] = id
	}
	return out
}

// IterateSubtree calls fn once per node in id's subtree (including id
// itself) in postorder, i.e. in increasing NodeId order.
func (s *Store) IterateSubtree(id Id, fn func(nodeId Id, n Node) bool) {
	n := s.Get(id)
	first := int(id) - int(n.SubtreeSize) + 1
	for i := first; i <= int(id); i++ {
		if !fn(Id(i), s.nodes[i]) {
			return
		}
	}
}
