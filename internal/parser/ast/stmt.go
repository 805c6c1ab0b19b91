package ast

// BlockHeader opens a rule block: `ul > li, .item:`.
//
// Inside @keyframes the header is a frame selector instead; a header such
// as `50%:` sets Percentage and leaves Selections empty. `from` and `to`
// arrive as plain node selectors and are recognized by the builder.
type BlockHeader struct {
	Line
	Selections []*Selection
	Percentage *Number
}

func (*BlockHeader) Rule() string { return "Block" }

// Property is a CSS declaration: `margin: 0 auto !important;`.
type Property struct {
	Line
	Name      string
	Value     Expr
	Important bool
}

func (*Property) Rule() string { return "CSSProperty" }

// Variable binds a name: `gutter = 12px`.
type Variable struct {
	Line
	Name  string
	Value Expr
}

func (*Variable) Rule() string { return "Variable" }

// MacroInvocation expands a macro: `rounded(4px)`.
//
// For merge and extend the argument is a selector; Raw keeps its text and
// Args stays empty.
type MacroInvocation struct {
	Line
	Name string
	Args []Expr
	Raw  string
}

func (*MacroInvocation) Rule() string { return "MacroInvocation" }

// IsSelectorReference reports whether the invocation copies another
// block instead of expanding a macro.
func (m *MacroInvocation) IsSelectorReference() bool {
	return m.Name == "merge" || m.Name == "extend"
}

// MacroDecl opens a macro body: `@macro rounded(radius):`.
type MacroDecl struct {
	Line
	Name   string
	Params []string
}

func (*MacroDecl) Rule() string { return "MacroBlock" }

// KeyframesDecl opens an animation: `@keyframes fade:`.
type KeyframesDecl struct {
	Line
	Name string
}

func (*KeyframesDecl) Rule() string { return "Keyframes" }

// Import references another stylesheet: `@import "base"` or
// `@use url(lib/grid.pcss)`. Use imports contribute definitions but are
// never written to the output.
type Import struct {
	Line
	Path string
	URL  bool
	Use  bool
}

func (i *Import) Rule() string {
	if i.Use {
		return "Use"
	}
	return "Import"
}

// Module declares the stylesheet namespace: `@module widgets`.
type Module struct {
	Line
	Name string
}

func (*Module) Rule() string { return "Module" }

// Unit defines a custom unit: `@unit gap = 8px`.
type Unit struct {
	Line
	Name  string
	Value Expr
}

func (*Unit) Rule() string { return "Unit" }

// Include splices another file's statements: `@include shared/reset`.
type Include struct {
	Line
	Path string
}

func (*Include) Rule() string { return "Include" }

// CSSDirective passes an at-rule through: `@@charset "utf-8"`.
type CSSDirective struct {
	Line
	Name  string
	Value string
}

func (*CSSDirective) Rule() string { return "CSSDirective" }

// Comment is a `//` or `# ` line.
type Comment struct {
	Line
	Text string
}

func (*Comment) Rule() string { return "Comment" }
