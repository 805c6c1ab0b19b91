package selector

import (
	"strings"

	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// FromSelection builds the chain for one parsed selection. A selection
// that starts with a combinator is rooted at Self.
func FromSelection(sel *ast.Selection) *Selector {
	var head *Selector
	if sel.Head != nil {
		head = FromSelector(sel.Head)
	} else {
		head = New(Self)
	}
	for _, n := range sel.Tail {
		head = head.Narrow(FromSelector(n.Sel), n.Op)
	}
	return head
}

// FromSelections builds one chain per selection.
func FromSelections(sels []*ast.Selection) []*Selector {
	out := make([]*Selector, 0, len(sels))
	for _, sel := range sels {
		out = append(out, FromSelection(sel))
	}
	return out
}

// FromSelector converts a parsed compound selector. `!state` suffixes
// become `[data-state~="state"]` attribute selectors.
func FromSelector(s *ast.Selector) *Selector {
	var attrs strings.Builder
	for _, a := range s.Attributes {
		attrs.WriteString(a.String())
	}
	for _, state := range s.States {
		attrs.WriteString(`[data-state~="` + state + `"]`)
	}
	return &Selector{
		Node:       s.Node,
		ID:         s.ID,
		Classes:    append([]string(nil), s.Classes...),
		Attributes: attrs.String(),
		Suffix:     append([]string(nil), s.Suffixes...),
	}
}
