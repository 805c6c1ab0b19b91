package model

import (
	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/selector"
)

// Binding locates a node in a tree. Resolution may return nodes of an
// imported tree.
type Binding struct {
	Tree *Tree
	ID   NodeID
}

// Node returns the bound node, or nil for the zero Binding.
func (b Binding) Node() Node {
	if b.Tree == nil {
		return nil
	}
	return b.Tree.Node(b.ID)
}

// Resolve looks name up from the scope of node from, walking outward
// through the parents. Each container offers the arguments of a Context
// and its named children: variables, units, macros and keyframes. The
// first match in the innermost scope wins. At the root, imported
// stylesheets are searched last to first.
//
// The arguments of a Context are evaluated in the scope enclosing it, so
// a lookup starting from an argument skips that context's slots.
func (t *Tree) Resolve(from NodeID, name string) (Binding, bool) {
	if name == "" {
		return Binding{}, false
	}
	prev := NoNode
	for id := from; id != NoNode; prev, id = id, t.Parent(id) {
		n := t.nodes[id]
		if ctx, ok := n.(*Context); ok {
			if ctx.isArg(prev) {
				continue
			}
			if arg, ok := ctx.Slot(name); ok {
				return Binding{t, arg}, true
			}
		}
		if _, ok := n.(container); !ok {
			continue
		}
		for _, child := range t.Content(id) {
			if slotName(t.nodes[child]) == name {
				return Binding{t, child}, true
			}
		}
	}
	return t.resolveImported(name)
}

func (t *Tree) resolveImported(name string) (Binding, bool) {
	imports := t.Imports()
	for i := len(imports) - 1; i >= 0; i-- {
		if b, ok := imports[i].Tree.Resolve(imports[i].Tree.Root(), name); ok {
			return b, true
		}
	}
	return Binding{}, false
}

func slotName(n Node) string {
	switch n := n.(type) {
	case *Variable:
		return n.Name
	case *Unit:
		return n.Name
	case *Macro:
		return n.Name
	case *Keyframes:
		return n.Name
	}
	return ""
}

// ResolveUnit returns the custom unit with the given name, looked up from
// the root.
func (t *Tree) ResolveUnit(name string) (Binding, bool) {
	b, ok := t.Resolve(t.Root(), name)
	if !ok {
		return Binding{}, false
	}
	if _, isUnit := b.Node().(*Unit); !isUnit {
		return Binding{}, false
	}
	return b, true
}

// FindSelector returns the first block with an effective selector whose
// text, without namespace, equals text. The blocks directly under a
// container are tried before descending into it; imported stylesheets
// are tried last to first. The block exclude is never returned.
func (t *Tree) FindSelector(text string, exclude NodeID) (Binding, bool, error) {
	if text == "" {
		return Binding{}, false, nil
	}
	id, err := t.findSelector(t.Root(), text, exclude)
	if err != nil || id != NoNode {
		return Binding{t, id}, id != NoNode, err
	}
	imports := t.Imports()
	for i := len(imports) - 1; i >= 0; i-- {
		b, ok, err := imports[i].Tree.FindSelector(text, NoNode)
		if err != nil || ok {
			return b, ok, err
		}
	}
	return Binding{}, false, nil
}

func (t *Tree) findSelector(id NodeID, text string, exclude NodeID) (NodeID, error) {
	content := t.Content(id)
	for _, child := range content {
		if child == exclude || t.nodes[child].Kind() != KindBlock {
			continue
		}
		sels, err := t.Selectors(child)
		if err != nil {
			return NoNode, err
		}
		for _, sel := range sels {
			if sel.Expr("") == text {
				return child, nil
			}
		}
	}
	for _, child := range content {
		if t.nodes[child].Kind() == KindMacro {
			continue
		}
		found, err := t.findSelector(child, text, exclude)
		if err != nil || found != NoNode {
			return found, err
		}
	}
	return NoNode, nil
}

// Namespace returns the `@module` name in scope at id, or "". The
// namespace of an imported stylesheet does not apply to the importer.
func (t *Tree) Namespace(id NodeID) string {
	for ; id != NoNode; id = t.Parent(id) {
		for _, child := range t.Content(id) {
			if m, ok := t.nodes[child].(*Module); ok {
				return m.Name
			}
		}
	}
	return ""
}

// Selectors returns the effective selectors of a block: its own
// selections narrowed by each selector of the closest enclosing block.
// A block without selections inherits the enclosing selectors.
func (t *Tree) Selectors(id NodeID) ([]*selector.Selector, error) {
	b, ok := t.nodes[id].(*Block)
	if !ok {
		return nil, errors.Unsupportedf("selectors of %s", t.nodes[id].Kind())
	}
	return b.selectors.get(t.gen, func() ([]*selector.Selector, error) {
		return t.computeSelectors(id, b)
	})
}

func (t *Tree) computeSelectors(id NodeID, b *Block) ([]*selector.Selector, error) {
	var parents []*selector.Selector
	if pb := t.Ancestor(id, KindBlock); pb != NoNode {
		var err error
		if parents, err = t.Selectors(pb); err != nil {
			return nil, err
		}
	}
	var out []*selector.Selector
	switch {
	case len(parents) == 0:
		out = b.Selections
	case len(b.Selections) == 0:
		for _, p := range parents {
			out = append(out, p.Copy(true))
		}
	default:
		for _, p := range parents {
			for _, s := range b.Selections {
				out = append(out, p.Narrow(s, selector.Descendant))
			}
		}
	}
	max := t.MaxDepth
	if max <= 0 {
		max = DefaultMaxDepth
	}
	for _, sel := range out {
		if sel.Depth() > max {
			return nil, semanticAt(b.Pos, "selector nesting exceeds the maximum depth of %d", max)
		}
	}
	return out, nil
}
