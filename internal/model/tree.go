// Package model holds the PCSS stylesheet model: an arena of typed nodes
// with index parents, name and selector resolution, and the evaluator
// that turns value expressions into literal values.
//
// A Tree is built once by the builder and then only read. It is not safe
// for concurrent use, memoized selectors and units are filled in lazily.
package model

import (
	"github.com/sebastien/pythoniccss/internal/selector"
)

// NodeID is the index of a node in its tree.
type NodeID int

// NoNode is the parent of detached nodes and of the root.
const NoNode NodeID = -1

// DefaultMaxDepth bounds selector nesting when a tree sets none.
const DefaultMaxDepth = 64

// Tree is the arena of one stylesheet.
type Tree struct {
	Path string

	// MaxDepth bounds the length of effective selector chains.
	MaxDepth int

	nodes []Node
	gen   uint64
}

// NewTree returns a tree holding an empty Stylesheet root.
func NewTree(path string) *Tree {
	t := &Tree{Path: path, MaxDepth: DefaultMaxDepth}
	t.Add(&Stylesheet{Path: path})
	return t
}

// Root returns the stylesheet id.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes in the arena, detached ones included.
func (t *Tree) Len() int { return len(t.nodes) }

// Generation changes on every structural mutation.
func (t *Tree) Generation() uint64 { return t.gen }

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Get returns the node with the given id when it has type T.
func Get[T Node](t *Tree, id NodeID) (T, bool) {
	n, ok := t.Node(id).(T)
	return n, ok
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Base().parent
	}
	return NoNode
}

// Content returns the children of a container, or nil.
func (t *Tree) Content(id NodeID) []NodeID {
	if c, ok := t.Node(id).(container); ok {
		return c.container().Content
	}
	return nil
}

// Add stores n in the arena, detached, and returns its id.
func (t *Tree) Add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	h := n.Base()
	h.id, h.parent = id, NoNode
	t.nodes = append(t.nodes, n)
	t.gen++
	return id
}

// Attach makes child a child of parent. Containers append it to their
// content; value nodes only record the parent link, their child ids are
// already set in their fields.
func (t *Tree) Attach(parent, child NodeID) {
	t.Detach(child)
	t.nodes[child].Base().parent = parent
	if c, ok := t.nodes[parent].(container); ok {
		c.container().Content = append(c.container().Content, child)
	}
	t.gen++
}

// Adopt records parent as the parent of child without adding child to
// the parent's content. Context arguments are adopted.
func (t *Tree) Adopt(parent, child NodeID) {
	t.nodes[child].Base().parent = parent
	t.gen++
}

// Detach removes child from its parent.
func (t *Tree) Detach(child NodeID) {
	h := t.nodes[child].Base()
	if h.parent == NoNode {
		return
	}
	if c, ok := t.nodes[h.parent].(container); ok {
		content := c.container().Content
		for i, id := range content {
			if id == child {
				c.container().Content = append(content[:i:i], content[i+1:]...)
				break
			}
		}
	}
	h.parent = NoNode
	t.gen++
}

// Select adds selections to a block.
func (t *Tree) Select(block NodeID, sels ...*selector.Selector) {
	b := t.nodes[block].(*Block)
	b.Selections = append(b.Selections, sels...)
	t.gen++
}

// Ancestor returns the closest ancestor of id with the given kind.
func (t *Tree) Ancestor(id NodeID, kind Kind) NodeID {
	for p := t.Parent(id); p != NoNode; p = t.Parent(p) {
		if t.nodes[p].Kind() == kind {
			return p
		}
	}
	return NoNode
}

// Imports returns the stylesheets imported by the root, in source order.
func (t *Tree) Imports() []*Import {
	var out []*Import
	for _, id := range t.Content(t.Root()) {
		if imp, ok := t.nodes[id].(*Import); ok && imp.Tree != nil {
			out = append(out, imp)
		}
	}
	return out
}

// Walk calls fn for id and its descendants, depth first. Returning false
// skips the children of a node.
func (t *Tree) Walk(id NodeID, fn func(NodeID, Node) bool) {
	n := t.Node(id)
	if n == nil || !fn(id, n) {
		return
	}
	for _, ref := range n.refs() {
		t.Walk(*ref, fn)
	}
}

// Balance moves the properties of every block before its nested blocks,
// keeping the relative order of both.
func (t *Tree) Balance() {
	t.balance(t.Root())
	t.gen++
}

func (t *Tree) balance(id NodeID) {
	c, ok := t.nodes[id].(container)
	if !ok {
		return
	}
	content := c.container().Content
	for _, child := range content {
		t.balance(child)
	}
	if t.nodes[id].Kind() != KindBlock {
		return
	}
	ordered := make([]NodeID, 0, len(content))
	for _, child := range content {
		if t.nodes[child].Kind() != KindBlock {
			ordered = append(ordered, child)
		}
	}
	for _, child := range content {
		if t.nodes[child].Kind() == KindBlock {
			ordered = append(ordered, child)
		}
	}
	c.container().Content = ordered
}
