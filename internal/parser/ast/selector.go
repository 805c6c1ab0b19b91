package ast

import (
	"github.com/sebastien/pythoniccss/internal/lexer"
)

// Selection is one comma-separated member of a block header. Head is nil
// when the selection starts with a combinator (`> li`), which roots it at
// the parent block.
type Selection struct {
	Position lexer.Position
	Head     *Selector
	Tail     []Narrower
}

func (s *Selection) Pos() lexer.Position { return s.Position }
func (*Selection) Rule() string          { return "Selection" }

// Narrower links the next selector with its combinator. Op is "" for the
// descendant combinator.
type Narrower struct {
	Op  string
	Sel *Selector
}

// Selector is a single compound selector.
//
// Node is "", "&", "*" or an element name. Classes keep BEM markers:
// "btn-" is a BEM prefix and "-active" a BEM suffix. Suffixes are written
// without their leading colon ("hover", ":before", "not(.a)").
type Selector struct {
	Position   lexer.Position
	Node       string
	ID         string
	Classes    []string
	Attributes []Attribute
	Suffixes   []string
	States     []string
}

func (s *Selector) Pos() lexer.Position { return s.Position }
func (*Selector) Rule() string          { return "Selector" }

// Attribute is `[name op value]`; Op and Value may be empty.
type Attribute struct {
	Name  string
	Op    string
	Value string
}

func (a Attribute) String() string {
	return "[" + a.Name + a.Op + a.Value + "]"
}
