package model

import (
	"testing"

	"github.com/sebastien/pythoniccss/internal/selector"
)

// add attaches n under parent and returns its id.
func add(t *Tree, parent NodeID, n Node) NodeID {
	id := t.Add(n)
	t.Attach(parent, id)
	return id
}

func block(t *Tree, parent NodeID, sels ...*selector.Selector) NodeID {
	return add(t, parent, &Block{Selections: sels})
}

func class(name string) *selector.Selector {
	return &selector.Selector{Classes: []string{name}}
}

func number(t *Tree, v float64, unit string) NodeID {
	return t.Add(&Number{Value: v, Unit: unit})
}

func property(t *Tree, parent NodeID, name string, value NodeID) NodeID {
	id := add(t, parent, &Property{Name: name, Value: value})
	t.Adopt(id, value)
	return id
}

func variable(t *Tree, parent NodeID, name string, value NodeID) NodeID {
	id := add(t, parent, &Variable{Name: name, Value: value})
	t.Adopt(id, value)
	return id
}

func TestTree_AttachDetach(t *testing.T) {
	tree := NewTree("a.pcss")
	a := block(tree, tree.Root(), class("a"))
	b := block(tree, tree.Root(), class("b"))
	if got := tree.Content(tree.Root()); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Content() = %v, want [%d %d]", got, a, b)
	}
	gen := tree.Generation()
	tree.Attach(a, b)
	if tree.Generation() == gen {
		t.Errorf("Attach() did not bump the generation")
	}
	if got := tree.Content(tree.Root()); len(got) != 1 {
		t.Errorf("root content after re-parenting = %v", got)
	}
	if tree.Parent(b) != a {
		t.Errorf("Parent(b) = %d, want %d", tree.Parent(b), a)
	}
	tree.Detach(b)
	if tree.Parent(b) != NoNode || len(tree.Content(a)) != 0 {
		t.Errorf("Detach() left b attached")
	}
}

func TestTree_Selectors(t *testing.T) {
	tree := NewTree("a.pcss")
	outer := block(tree, tree.Root(), class("a"), class("b"))
	inner := block(tree, outer, &selector.Selector{Node: "li"})
	bare := block(tree, inner)

	tests := []struct {
		id   NodeID
		want []string
	}{
		{outer, []string{".a", ".b"}},
		{inner, []string{".a li", ".b li"}},
		{bare, []string{".a li", ".b li"}},
	}
	for _, tt := range tests {
		sels, err := tree.Selectors(tt.id)
		if err != nil {
			t.Fatalf("Selectors(%d) error = %v", tt.id, err)
		}
		if len(sels) != len(tt.want) {
			t.Fatalf("Selectors(%d) = %d selectors, want %d", tt.id, len(sels), len(tt.want))
		}
		for i, want := range tt.want {
			if got := sels[i].Expr(""); got != want {
				t.Errorf("Selectors(%d)[%d] = %q, want %q", tt.id, i, got, want)
			}
		}
	}

	// Re-parenting invalidates the memoized selectors.
	tree.Attach(tree.Root(), inner)
	sels, _ := tree.Selectors(inner)
	if got := sels[0].Expr(""); got != "li" {
		t.Errorf("after re-parenting = %q, want %q", got, "li")
	}
}

func TestTree_SelectorsMaxDepth(t *testing.T) {
	tree := NewTree("a.pcss")
	tree.MaxDepth = 3
	id := tree.Root()
	for i := 0; i < 4; i++ {
		id = block(tree, id, &selector.Selector{Node: "div"})
	}
	if _, err := tree.Selectors(id); err == nil {
		t.Errorf("Selectors() error = nil, want depth error")
	}
}

func TestTree_Balance(t *testing.T) {
	tree := NewTree("a.pcss")
	outer := block(tree, tree.Root(), class("a"))
	nested := block(tree, outer, class("b"))
	prop := property(tree, outer, "color", number(tree, 1, ""))
	tree.Balance()
	content := tree.Content(outer)
	if len(content) != 2 || content[0] != prop || content[1] != nested {
		t.Errorf("Balance() content = %v, want [%d %d]", content, prop, nested)
	}
}

func TestTree_CopyFrom(t *testing.T) {
	src := NewTree("src.pcss")
	b := block(src, src.Root(), class("a"))
	sum := src.Add(&Computation{Op: "+", Left: number(src, 1, "px"), Right: number(src, 2, "px")})
	prop := property(src, b, "width", sum)

	dst := NewTree("dst.pcss")
	target := block(dst, dst.Root(), class("x"))
	cp := dst.CopyFrom(src, b, target)

	if dst.Parent(cp) != target {
		t.Errorf("copy parent = %d, want %d", dst.Parent(cp), target)
	}
	props := dst.Content(cp)
	if len(props) != 1 {
		t.Fatalf("copied content = %v", props)
	}
	p := dst.Node(props[0]).(*Property)
	if p.Name != "width" || dst.Parent(p.Value) != props[0] {
		t.Errorf("copied property = %+v", p)
	}
	c := dst.Node(p.Value).(*Computation)
	if dst.Parent(c.Left) != p.Value || dst.Parent(c.Right) != p.Value {
		t.Errorf("computation children not re-parented")
	}

	// The source is unchanged.
	if src.Node(prop).(*Property).Value != sum {
		t.Errorf("source property modified")
	}
	var ev Evaluator
	v, err := ev.EvalProperty(dst, props[0], "")
	if err != nil || v != (NumberValue{V: 3, Unit: "px"}) {
		t.Errorf("EvalProperty(copy) = %v, %v", v, err)
	}
}

func TestTree_Resolve(t *testing.T) {
	tree := NewTree("a.pcss")
	outerVar := variable(tree, tree.Root(), "gap", number(tree, 1, "px"))
	b := block(tree, tree.Root(), class("a"))
	innerVar := variable(tree, b, "gap", number(tree, 2, "px"))
	ref := tree.Add(&Reference{Name: "gap"})
	property(tree, b, "margin", ref)

	if got, ok := tree.Resolve(ref, "gap"); !ok || got.ID != innerVar {
		t.Errorf("Resolve(gap) = %v, want inner %d", got, innerVar)
	}
	if got, ok := tree.Resolve(tree.Root(), "gap"); !ok || got.ID != outerVar {
		t.Errorf("Resolve(root, gap) = %v, want outer %d", got, outerVar)
	}
	if _, ok := tree.Resolve(ref, "missing"); ok {
		t.Errorf("Resolve(missing) should fail")
	}
}

func TestTree_ResolveImported(t *testing.T) {
	lib := NewTree("lib.pcss")
	libVar := variable(lib, lib.Root(), "accent", number(lib, 3, ""))
	add(lib, lib.Root(), &Module{Name: "lib"})

	tree := NewTree("a.pcss")
	add(tree, tree.Root(), &Import{Path: "lib", Tree: lib})
	b := block(tree, tree.Root(), class("a"))

	got, ok := tree.Resolve(b, "accent")
	if !ok || got.Tree != lib || got.ID != libVar {
		t.Errorf("Resolve(accent) = %+v, want lib variable", got)
	}
	if ns := tree.Namespace(b); ns != "" {
		t.Errorf("Namespace() = %q, imported modules must not apply", ns)
	}
	if ns := lib.Namespace(lib.Root()); ns != "lib" {
		t.Errorf("lib Namespace() = %q, want lib", ns)
	}
}

func TestTree_ContextSlots(t *testing.T) {
	tree := NewTree("a.pcss")
	b := block(tree, tree.Root(), class("a"))
	variable(tree, b, "size", number(tree, 10, "px"))

	// size(size: $size) must see the outer $size, not its own slot.
	arg := tree.Add(&Reference{Name: "size"})
	ctx := add(tree, b, &Context{Name: "m", Params: []string{"size"}, Args: []NodeID{arg}})
	tree.Adopt(ctx, arg)
	body := tree.Add(&Reference{Name: "size"})
	prop := property(tree, ctx, "width", body)

	var ev Evaluator
	v, err := ev.EvalProperty(tree, prop, "")
	if err != nil {
		t.Fatalf("EvalProperty() error = %v", err)
	}
	if v != (NumberValue{V: 10, Unit: "px"}) {
		t.Errorf("EvalProperty() = %v, want 10px", v)
	}
}

func TestTree_FindSelector(t *testing.T) {
	lib := NewTree("lib.pcss")
	libBlock := block(lib, lib.Root(), class("shared"))

	tree := NewTree("a.pcss")
	add(tree, tree.Root(), &Import{Path: "lib", Tree: lib})
	a := block(tree, tree.Root(), class("a"))
	ab := block(tree, a, class("b"))

	tests := []struct {
		text string
		tree *Tree
		id   NodeID
	}{
		{".a", tree, a},
		{".a .b", tree, ab},
		{".shared", lib, libBlock},
	}
	for _, tt := range tests {
		got, ok, err := tree.FindSelector(tt.text, NoNode)
		if err != nil || !ok || got.Tree != tt.tree || got.ID != tt.id {
			t.Errorf("FindSelector(%q) = %+v, %v, %v", tt.text, got, ok, err)
		}
	}
	if _, ok, _ := tree.FindSelector(".a", a); ok {
		t.Errorf("FindSelector() returned the excluded block")
	}
	if _, ok, _ := tree.FindSelector(".zzz", NoNode); ok {
		t.Errorf("FindSelector(.zzz) should fail")
	}
}
