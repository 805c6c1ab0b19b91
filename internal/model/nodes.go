package model

import (
	"github.com/sebastien/pythoniccss/internal/lexer"
	"github.com/sebastien/pythoniccss/internal/selector"
)

// Kind identifies a node type.
type Kind int

const (
	KindStylesheet Kind = iota
	KindBlock
	KindMacro
	KindContext
	KindKeyframes
	KindKeyframe

	KindProperty
	KindVariable
	KindUnit
	KindComment
	KindImport
	KindModule
	KindCSSDirective
	KindMacroInvocation

	KindNumber
	KindString
	KindRawString
	KindColor
	KindURL
	KindReference
	KindParens
	KindComputation
	KindList
	KindFunctionCall
	KindMethodCall
)

var kindNames = [...]string{
	KindStylesheet:      "Stylesheet",
	KindBlock:           "Block",
	KindMacro:           "Macro",
	KindContext:         "Context",
	KindKeyframes:       "Keyframes",
	KindKeyframe:        "Keyframe",
	KindProperty:        "Property",
	KindVariable:        "Variable",
	KindUnit:            "Unit",
	KindComment:         "Comment",
	KindImport:          "Import",
	KindModule:          "Module",
	KindCSSDirective:    "CSSDirective",
	KindMacroInvocation: "MacroInvocation",
	KindNumber:          "Number",
	KindString:          "String",
	KindRawString:       "RawString",
	KindColor:           "Color",
	KindURL:             "URL",
	KindReference:       "Reference",
	KindParens:          "Parens",
	KindComputation:     "Computation",
	KindList:            "List",
	KindFunctionCall:    "FunctionCall",
	KindMethodCall:      "MethodCall",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsContainer reports whether nodes of kind k hold ordered content.
func (k Kind) IsContainer() bool {
	return k <= KindKeyframe
}

// IsValue reports whether nodes of kind k are expressions.
func (k Kind) IsValue() bool {
	return k >= KindNumber
}

// Node is implemented by the node types of this package only.
type Node interface {
	Kind() Kind
	Base() *Header

	// clone returns a copy sharing no child ids with n.
	clone() Node
	// refs returns pointers to the child ids n owns.
	refs() []*NodeID
}

// Header is embedded in every node.
type Header struct {
	id     NodeID
	parent NodeID
	Pos    lexer.Position
}

func (h *Header) Base() *Header { return h }

// ID returns the node's index in its tree.
func (h *Header) ID() NodeID { return h.id }

// Parent returns the parent index, or NoNode.
func (h *Header) Parent() NodeID { return h.parent }

// Container is embedded by nodes with ordered content.
type Container struct {
	Content []NodeID
}

func (c *Container) container() *Container { return c }

func (c *Container) contentRefs() []*NodeID {
	refs := make([]*NodeID, len(c.Content))
	for i := range c.Content {
		refs[i] = &c.Content[i]
	}
	return refs
}

type container interface {
	Node
	container() *Container
}

func idRefs(ids []NodeID, extra ...*NodeID) []*NodeID {
	refs := extra
	for i := range ids {
		refs = append(refs, &ids[i])
	}
	return refs
}

func cloneIDs(ids []NodeID) []NodeID {
	return append([]NodeID(nil), ids...)
}

// ----------------------------------------------------------------------------
// Containers

// Stylesheet is the root of a tree.
type Stylesheet struct {
	Header
	Container
	Path string
}

func (*Stylesheet) Kind() Kind { return KindStylesheet }
func (n *Stylesheet) clone() Node {
	c := *n
	c.Content = cloneIDs(n.Content)
	return &c
}
func (n *Stylesheet) refs() []*NodeID { return n.contentRefs() }

// Block is a rule block. Selections are the block's own selectors; the
// effective selectors also depend on the enclosing blocks, see
// Tree.Selectors.
type Block struct {
	Header
	Container
	Selections []*selector.Selector

	selectors memo[[]*selector.Selector]
}

func (*Block) Kind() Kind { return KindBlock }
func (n *Block) clone() Node {
	return &Block{
		Header:     n.Header,
		Container:  Container{Content: cloneIDs(n.Content)},
		Selections: append([]*selector.Selector(nil), n.Selections...),
	}
}
func (n *Block) refs() []*NodeID { return n.contentRefs() }

// Macro is a macro declaration. Its content is copied into a Context at
// each invocation.
type Macro struct {
	Header
	Container
	Name   string
	Params []string
}

func (*Macro) Kind() Kind { return KindMacro }
func (n *Macro) clone() Node {
	c := *n
	c.Content = cloneIDs(n.Content)
	c.Params = append([]string(nil), n.Params...)
	return &c
}
func (n *Macro) refs() []*NodeID { return n.contentRefs() }

// Context is an expanded macro body. Params[i] is bound to Args[i]; the
// argument expressions are owned by the context but evaluated in the
// scope enclosing it.
type Context struct {
	Header
	Container
	Name   string
	Params []string
	Args   []NodeID
}

func (*Context) Kind() Kind { return KindContext }
func (n *Context) clone() Node {
	c := *n
	c.Content = cloneIDs(n.Content)
	c.Params = append([]string(nil), n.Params...)
	c.Args = cloneIDs(n.Args)
	return &c
}
func (n *Context) refs() []*NodeID { return idRefs(n.Args, n.contentRefs()...) }

// Slot returns the argument bound to name.
func (n *Context) Slot(name string) (NodeID, bool) {
	for i, p := range n.Params {
		if p == name && i < len(n.Args) {
			return n.Args[i], true
		}
	}
	return NoNode, false
}

func (n *Context) isArg(id NodeID) bool {
	for _, arg := range n.Args {
		if arg == id {
			return true
		}
	}
	return false
}

// Keyframes is an `@keyframes` animation.
type Keyframes struct {
	Header
	Container
	Name string
}

func (*Keyframes) Kind() Kind { return KindKeyframes }
func (n *Keyframes) clone() Node {
	c := *n
	c.Content = cloneIDs(n.Content)
	return &c
}
func (n *Keyframes) refs() []*NodeID { return n.contentRefs() }

// Keyframe is one frame of an animation. Offset is a fraction: 0 for
// `from`, 1 for `to`.
type Keyframe struct {
	Header
	Container
	Offset float64
}

func (*Keyframe) Kind() Kind { return KindKeyframe }
func (n *Keyframe) clone() Node {
	c := *n
	c.Content = cloneIDs(n.Content)
	return &c
}
func (n *Keyframe) refs() []*NodeID { return n.contentRefs() }

// ----------------------------------------------------------------------------
// Statements

// Property is a CSS declaration.
type Property struct {
	Header
	Name      string
	Value     NodeID
	Important bool
}

func (*Property) Kind() Kind { return KindProperty }
func (n *Property) clone() Node { c := *n; return &c }
func (n *Property) refs() []*NodeID { return []*NodeID{&n.Value} }

// Variable binds Name to Value in the enclosing container.
type Variable struct {
	Header
	Name  string
	Value NodeID
}

func (*Variable) Kind() Kind { return KindVariable }
func (n *Variable) clone() Node { c := *n; return &c }
func (n *Variable) refs() []*NodeID { return []*NodeID{&n.Value} }

// Unit defines a custom unit: `3double` is 3 times Value.
type Unit struct {
	Header
	Name  string
	Value NodeID
}

func (*Unit) Kind() Kind { return KindUnit }
func (n *Unit) clone() Node { c := *n; return &c }
func (n *Unit) refs() []*NodeID { return []*NodeID{&n.Value} }

type Comment struct {
	Header
	Text string
}

func (*Comment) Kind() Kind { return KindComment }
func (n *Comment) clone() Node { c := *n; return &c }
func (*Comment) refs() []*NodeID { return nil }

// Import is an `@import` or `@use`. Tree is the built stylesheet, or nil
// for an external CSS import. Output is the path written to the emitted
// `@import url(...)`.
type Import struct {
	Header
	Path   string
	Use    bool
	Tree   *Tree
	Output string
}

func (*Import) Kind() Kind { return KindImport }
func (n *Import) clone() Node { c := *n; return &c }
func (*Import) refs() []*NodeID { return nil }

// Module is the `@module` namespace of the stylesheet.
type Module struct {
	Header
	Name string
}

func (*Module) Kind() Kind { return KindModule }
func (n *Module) clone() Node { c := *n; return &c }
func (*Module) refs() []*NodeID { return nil }

// CSSDirective is an at-rule passed through to the output.
type CSSDirective struct {
	Header
	Name  string
	Value string
}

func (*CSSDirective) Kind() Kind { return KindCSSDirective }
func (n *CSSDirective) clone() Node { c := *n; return &c }
func (*CSSDirective) refs() []*NodeID { return nil }

// MacroInvocation marks where a macro was expanded. The expansion itself
// is the Context that follows it.
type MacroInvocation struct {
	Header
	Name string
	Args []NodeID
}

func (*MacroInvocation) Kind() Kind { return KindMacroInvocation }
func (n *MacroInvocation) clone() Node {
	c := *n
	c.Args = cloneIDs(n.Args)
	return &c
}
func (n *MacroInvocation) refs() []*NodeID { return idRefs(n.Args) }

// ----------------------------------------------------------------------------
// Values

// Number is a numeric literal. Percentages are stored as fractions with
// Unit "%".
type Number struct {
	Header
	Value float64
	Unit  string

	unit memo[Binding]
}

func (*Number) Kind() Kind { return KindNumber }
func (n *Number) clone() Node { return &Number{Header: n.Header, Value: n.Value, Unit: n.Unit} }
func (*Number) refs() []*NodeID { return nil }

// String is a quoted string, or a bare word when Quote is 0.
type String struct {
	Header
	Value string
	Quote byte
}

func (*String) Kind() Kind { return KindString }
func (n *String) clone() Node { c := *n; return &c }
func (*String) refs() []*NodeID { return nil }

// RawString is written to the output verbatim.
type RawString struct {
	Header
	Value string
}

func (*RawString) Kind() Kind { return KindRawString }
func (n *RawString) clone() Node { c := *n; return &c }
func (*RawString) refs() []*NodeID { return nil }

// Color channels are 0-255 and A is in [0,1]. Alpha is set for colors
// written with an alpha component.
type Color struct {
	Header
	R, G, B uint8
	A       float64
	Alpha   bool
}

func (*Color) Kind() Kind { return KindColor }
func (n *Color) clone() Node { c := *n; return &c }
func (*Color) refs() []*NodeID { return nil }

type URL struct {
	Header
	Value string
}

func (*URL) Kind() Kind { return KindURL }
func (n *URL) clone() Node { c := *n; return &c }
func (*URL) refs() []*NodeID { return nil }

// Reference is `$name`, resolved outward from its own position.
type Reference struct {
	Header
	Name string
}

func (*Reference) Kind() Kind { return KindReference }
func (n *Reference) clone() Node { c := *n; return &c }
func (*Reference) refs() []*NodeID { return nil }

type Parens struct {
	Header
	X NodeID
}

func (*Parens) Kind() Kind { return KindParens }
func (n *Parens) clone() Node { c := *n; return &c }
func (n *Parens) refs() []*NodeID { return []*NodeID{&n.X} }

// Computation is an infix arithmetic operation.
type Computation struct {
	Header
	Op          string
	Left, Right NodeID
}

func (*Computation) Kind() Kind { return KindComputation }
func (n *Computation) clone() Node { c := *n; return &c }
func (n *Computation) refs() []*NodeID { return []*NodeID{&n.Left, &n.Right} }

// List is a space, comma or slash separated sequence.
type List struct {
	Header
	Sep   string
	Items []NodeID
}

func (*List) Kind() Kind { return KindList }
func (n *List) clone() Node {
	c := *n
	c.Items = cloneIDs(n.Items)
	return &c
}
func (n *List) refs() []*NodeID { return idRefs(n.Items) }

// FunctionCall is a CSS function. When Raw is set the arguments are
// passed through as text.
type FunctionCall struct {
	Header
	Name string
	Args []NodeID
	Raw  *string
}

func (*FunctionCall) Kind() Kind { return KindFunctionCall }
func (n *FunctionCall) clone() Node {
	c := *n
	c.Args = cloneIDs(n.Args)
	return &c
}
func (n *FunctionCall) refs() []*NodeID { return idRefs(n.Args) }

// MethodCall invokes a color method on Target.
type MethodCall struct {
	Header
	Target NodeID
	Name   string
	Args   []NodeID
}

func (*MethodCall) Kind() Kind { return KindMethodCall }
func (n *MethodCall) clone() Node {
	c := *n
	c.Args = cloneIDs(n.Args)
	return &c
}
func (n *MethodCall) refs() []*NodeID { return idRefs(n.Args, &n.Target) }
