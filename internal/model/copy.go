package model

// Copy deep-copies the subtree rooted at id in src into t and returns the
// detached copy. src may be t itself or another tree, such as an imported
// stylesheet.
func (t *Tree) Copy(src *Tree, id NodeID) NodeID {
	n := src.Node(id).clone()
	nid := t.Add(n)
	for _, ref := range n.refs() {
		child := t.Copy(src, *ref)
		*ref = child
		t.nodes[child].Base().parent = nid
	}
	return nid
}

// CopyFrom copies the subtree rooted at id in src and attaches the copy
// to parent.
func (t *Tree) CopyFrom(src *Tree, id, parent NodeID) NodeID {
	nid := t.Copy(src, id)
	t.Attach(parent, nid)
	return nid
}
