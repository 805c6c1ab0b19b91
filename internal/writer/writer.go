// Package writer renders a stylesheet model as CSS text.
//
// Rendering is a read-only walk: it evaluates property values but never
// changes the tree, so rendering the same tree twice gives the same bytes.
//
// OUTPUT:
//   - Each block with at least one declaration becomes a rule. Declarations
//     of expanded macros count as the block's own.
//   - Nested blocks follow their parent's rule, in source order.
//   - Top-level chunks (rules, @keyframes, @import, raw at-rules) are
//     separated by a blank line.
package writer

import (
	"strings"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/model"
)

// Indent is the indentation of one nesting level.
const Indent = "  "

// Render returns the CSS for t. A nil evaluator uses no color table.
func Render(t *model.Tree, ev *model.Evaluator) (string, error) {
	if ev == nil {
		ev = &model.Evaluator{}
	}
	w := &writer{tree: t, ev: ev}
	if err := w.content(t.Root()); err != nil {
		return "", err
	}
	return strings.Join(w.chunks, "\n"), nil
}

type writer struct {
	tree   *model.Tree
	ev     *model.Evaluator
	chunks []string
}

// content renders the top-level and nested chunks found under id.
func (w *writer) content(id model.NodeID) error {
	for _, c := range w.tree.Content(id) {
		if err := w.node(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) node(id model.NodeID) error {
	switch n := w.tree.Node(id).(type) {
	case *model.Block:
		return w.block(id)
	case *model.Keyframes:
		return w.keyframes(id, n)
	case *model.Context:
		// A macro expanded at the top level only contributes blocks.
		return w.content(id)
	case *model.Import:
		if !n.Use {
			w.chunks = append(w.chunks, `@import url("`+n.Output+`");`+"\n")
		}
	case *model.CSSDirective:
		w.chunks = append(w.chunks, "@"+n.Name+" "+n.Value+";\n")
	case *model.Comment, *model.Macro, *model.Variable, *model.Unit, *model.Module, *model.MacroInvocation, *model.Property:
	default:
		return errors.Unsupportedf("cannot render %s", describe(n))
	}
	return nil
}

func (w *writer) block(id model.NodeID) error {
	decls, nested := w.flatten(id, nil, nil)
	if len(decls) > 0 {
		sels, err := w.tree.Selectors(id)
		if err != nil {
			return err
		}
		ns := w.tree.Namespace(id)
		texts := make([]string, len(sels))
		for i, sel := range sels {
			texts[i] = sel.Expr(ns)
		}
		var sb strings.Builder
		sb.WriteString(strings.Join(texts, ",\n"))
		sb.WriteString(" {\n")
		if err := w.declarations(&sb, unique(w.tree, decls), Indent); err != nil {
			return err
		}
		sb.WriteString("}\n")
		w.chunks = append(w.chunks, sb.String())
	}
	for _, c := range nested {
		if err := w.node(c); err != nil {
			return err
		}
	}
	return nil
}

// flatten collects the properties of id and of the macro contexts it
// holds, along with the blocks and keyframes nested anywhere in them.
func (w *writer) flatten(id model.NodeID, decls, nested []model.NodeID) ([]model.NodeID, []model.NodeID) {
	for _, c := range w.tree.Content(id) {
		switch w.tree.Node(c).Kind() {
		case model.KindProperty:
			decls = append(decls, c)
		case model.KindContext:
			decls, nested = w.flatten(c, decls, nested)
		case model.KindBlock, model.KindKeyframes:
			nested = append(nested, c)
		}
	}
	return decls, nested
}

// unique drops properties overridden later in the same rule, except for
// the ones allowed to repeat.
func unique(t *model.Tree, decls []model.NodeID) []model.NodeID {
	last := make(map[string]int, len(decls))
	for i, id := range decls {
		last[t.Node(id).(*model.Property).Name] = i
	}
	out := make([]model.NodeID, 0, len(decls))
	for i, id := range decls {
		name := t.Node(id).(*model.Property).Name
		if last[name] == i || model.AllowsDuplicates(name) {
			out = append(out, id)
		}
	}
	return out
}

func (w *writer) declarations(sb *strings.Builder, decls []model.NodeID, indent string) error {
	for _, id := range decls {
		p := w.tree.Node(id).(*model.Property)
		prefixes := []string{""}
		if model.IsPrefixable(p.Name) {
			prefixes = model.Prefixes
		}
		for _, prefix := range prefixes {
			v, err := w.ev.EvalProperty(w.tree, id, prefix)
			if err != nil {
				return err
			}
			text, err := Format(v)
			if err != nil {
				return err
			}
			sb.WriteString(indent)
			sb.WriteString(model.PrefixedName(prefix, p.Name))
			sb.WriteString(": ")
			sb.WriteString(text)
			if p.Important {
				sb.WriteString(" !important")
			}
			sb.WriteString(";\n")
		}
	}
	return nil
}

func (w *writer) keyframes(id model.NodeID, n *model.Keyframes) error {
	var sb strings.Builder
	sb.WriteString("@keyframes " + n.Name + " {\n")
	for _, c := range w.tree.Content(id) {
		frame, ok := w.tree.Node(c).(*model.Keyframe)
		if !ok {
			continue
		}
		sb.WriteString(Indent + offset(frame.Offset) + " {\n")
		decls, _ := w.flatten(c, nil, nil)
		if err := w.declarations(&sb, unique(w.tree, decls), Indent+Indent); err != nil {
			return err
		}
		sb.WriteString(Indent + "}\n")
	}
	sb.WriteString("}\n")
	w.chunks = append(w.chunks, sb.String())
	return nil
}

func offset(f float64) string {
	switch f {
	case 0:
		return "from"
	case 1:
		return "to"
	}
	return number(model.NumberValue{V: f, Unit: "%"})
}

func describe(n model.Node) string {
	if n == nil {
		return "missing node"
	}
	return n.Kind().String()
}
