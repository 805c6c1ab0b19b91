// Package selector implements PCSS selector chains and the rules used to
// combine a nested block's selector with its ancestors'.
//
// A Selector is one compound selector (node, id, classes, attributes,
// pseudo suffixes) optionally linked to the next selector in the chain by a
// combinator. Classes keep their BEM markers until rendering: a class
// ending in "-" ("btn-") is a BEM prefix and a class starting with "-"
// ("-active") a BEM suffix.
//
// All operations return copies; a Selector stored in the model is never
// mutated by narrowing.
package selector

import (
	"strings"

	"github.com/sebastien/pythoniccss/internal/errors"
)

// Combinators.
const (
	Descendant = ""
	Child      = ">"
	Adjacent   = "+"
	Sibling    = "~"

	// Parent and Ancestor swap the narrowing direction: `a < b` is `b > a`
	// and `a << b` is `b a`.
	Parent   = "<"
	Ancestor = "<<"
)

// Self is the node name standing for the enclosing selector.
const Self = "&"

// Selector is a compound selector and the rest of its chain.
type Selector struct {
	// Node is "", Self, "*" or an element name.
	Node string

	// ID includes the leading '#'.
	ID string

	// Classes without their leading '.', BEM markers included.
	Classes []string

	// Attributes is the rendered attribute selector text: `[a=b][c]`.
	Attributes string

	// Suffix holds pseudo selectors without their first colon: "hover",
	// ":before", "not(.x)".
	Suffix []string

	// Next links the next selector of the chain.
	Next *Link
}

// Link is a combinator and the selector it leads to.
type Link struct {
	Op  string
	Sel *Selector
}

// New returns a selector with the given node name.
func New(node string) *Selector {
	return &Selector{Node: node}
}

// Copy returns a copy of s. A deep copy also copies the rest of the chain;
// a shallow one shares it.
func (s *Selector) Copy(deep bool) *Selector {
	c := &Selector{
		Node:       s.Node,
		ID:         s.ID,
		Classes:    append([]string(nil), s.Classes...),
		Attributes: s.Attributes,
		Suffix:     append([]string(nil), s.Suffix...),
	}
	switch {
	case s.Next == nil:
	case deep:
		c.Next = &Link{Op: s.Next.Op, Sel: s.Next.Sel.Copy(true)}
	default:
		c.Next = s.Next
	}
	return c
}

// Last returns the final selector of the chain.
func (s *Selector) Last() *Selector {
	for s.Next != nil {
		s = s.Next.Sel
	}
	return s
}

// Depth returns the number of compound selectors in the chain.
func (s *Selector) Depth() int {
	n := 1
	for l := s.Next; l != nil; l = l.Sel.Next {
		n++
	}
	return n
}

// IsEmpty reports whether the selector matches nothing in particular.
func (s *Selector) IsEmpty() bool {
	return s.Node == "" && s.ID == "" && len(s.Classes) == 0 && s.Attributes == "" && len(s.Suffix) == 0 && s.Next == nil
}

// Narrow returns a copy of s narrowed by addition through combinator op.
// Neither s nor addition is modified.
//
// RULES:
//   - op Ancestor/Parent swap the roles: addition is narrowed by s.
//   - An addition rooted at Self merges into the last selector of s
//     (`div` + `&.x` = `div.x`).
//   - When s carries a BEM prefix ("btn-") and addition a BEM suffix
//     ("-active"), the suffix expands against the prefix (".btn-active").
//   - When s carries a BEM prefix and addition is a plain element, the
//     prefix stem is added as a class to s (`.btn- span` = `.btn span`).
//   - Otherwise addition is appended to the chain of s with op.
func (s *Selector) Narrow(addition *Selector, op string) *Selector {
	switch op {
	case Ancestor:
		return addition.Narrow(s, Descendant)
	case Parent:
		return addition.Narrow(s, Child)
	}
	c := s.Copy(true)
	last := c.Last()
	prefix := c.BEMPrefix()
	suffix := addition.BEMSuffix()
	if prefix != "" {
		if suffix != "" {
			addition = addition.ExpandBEM(prefix, suffix)
		} else if addition.Node != Self && addition.Node != "" && (last == c || !last.HasBEMPrefix(prefix)) {
			c.Classes = append(c.Classes, strings.TrimSuffix(prefix, "-"))
		}
	}
	if addition.Node == Self {
		last.Merge(addition)
		if addition.Next != nil {
			last.Next = &Link{Op: addition.Next.Op, Sel: addition.Next.Sel.Copy(true)}
		} else {
			last.Next = nil
		}
	} else {
		last.Next = &Link{Op: op, Sel: addition.Copy(true)}
	}
	return c
}

// Merge folds the compound part of other into s, in place. The node of s
// is kept when other is rooted at Self; suffixes are de-duplicated.
func (s *Selector) Merge(other *Selector) *Selector {
	if other.Node != Self {
		s.Node = other.Node
	}
	s.ID += other.ID
	s.Classes = append(s.Classes, other.Classes...)
	s.Attributes += other.Attributes
	for _, suffix := range other.Suffix {
		if !contains(s.Suffix, suffix) {
			s.Suffix = append(s.Suffix, suffix)
		}
	}
	return s
}

// ExpandBEM returns a copy of the chain where every BEM suffix class is
// expanded against prefix. A selector with no classes but some other part
// receives the prefix itself.
func (s *Selector) ExpandBEM(prefix, suffix string) *Selector {
	c := s.Copy(false)
	if len(s.Classes) > 0 {
		for i, class := range c.Classes {
			if strings.HasPrefix(class, "-") {
				c.Classes[i] = prefix + class[1:]
			}
		}
	} else if prefix != "" && (s.Node != "" || s.Attributes != "" || s.ID != "") {
		c.Classes = []string{prefix}
	}
	if s.Next != nil {
		c.Next = &Link{Op: s.Next.Op, Sel: s.Next.Sel.ExpandBEM(prefix, suffix)}
	}
	return c
}

// BEMPrefix returns the innermost BEM prefix class of the chain, or "".
func (s *Selector) BEMPrefix() string {
	prefix := ""
	for _, class := range s.Classes {
		if strings.HasSuffix(class, "-") {
			prefix = class
			break
		}
	}
	if s.Next != nil {
		if inner := s.Next.Sel.BEMPrefix(); inner != "" {
			return inner
		}
	}
	return prefix
}

// BEMSuffix returns the first BEM suffix class of the chain, or "".
func (s *Selector) BEMSuffix() string {
	for _, class := range s.Classes {
		if strings.HasPrefix(class, "-") {
			return class
		}
	}
	if s.Next != nil {
		return s.Next.Sel.BEMSuffix()
	}
	return ""
}

// HasBEMPrefix reports whether a class of s (not of its chain) starts with
// prefix or is a BEM suffix.
func (s *Selector) HasBEMPrefix(prefix string) bool {
	for _, class := range s.Classes {
		if strings.HasPrefix(class, prefix) || strings.HasPrefix(class, "-") {
			return true
		}
	}
	return false
}

// Validate checks that no compound selector of the chain pairs more than
// one BEM prefix or more than one BEM suffix.
func (s *Selector) Validate() error {
	for sel := s; sel != nil; {
		prefixes, suffixes := 0, 0
		for _, class := range sel.Classes {
			if class == "-" {
				return errors.Semanticf("malformed BEM class %q", "."+class)
			}
			if strings.HasSuffix(class, "-") {
				prefixes++
			}
			if strings.HasPrefix(class, "-") {
				suffixes++
			}
		}
		if prefixes > 1 || suffixes > 1 {
			return errors.Semanticf("selector %q pairs %d BEM prefixes with %d BEM suffixes", sel.compound(nil), prefixes, suffixes)
		}
		if sel.Next == nil {
			break
		}
		sel = sel.Next.Sel
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
