package ast

import (
	"github.com/sebastien/pythoniccss/internal/lexer"
)

// At is the position shared by expression nodes.
type At struct {
	Position lexer.Position
}

func (a At) Pos() lexer.Position { return a.Position }
func (At) exprNode()             {}

// Number is a numeric literal with an optional unit, as written: 50% keeps
// Value 50 and Unit "%".
type Number struct {
	At
	Value float64
	Unit  string
}

func (*Number) Rule() string { return "Number" }

// Color is a hex or rgb()/rgba() literal.
type Color struct {
	At
	R, G, B  uint8
	A        float64
	HasAlpha bool
}

func (*Color) Rule() string { return "Color" }

// URL is url(...); Value is the text between the parentheses.
type URL struct {
	At
	Value string
}

func (*URL) Rule() string { return "URL" }

// Ref is a variable or parameter reference: $name.
type Ref struct {
	At
	Name string
}

func (*Ref) Rule() string { return "Reference" }

// Str is a quoted string. Value excludes the quotes.
type Str struct {
	At
	Value string
	Quote byte
}

func (*Str) Rule() string { return "String" }

// Raw is a backquoted string, written to the output verbatim.
type Raw struct {
	At
	Value string
}

func (*Raw) Rule() string { return "RawString" }

// Word is an unquoted string: solid, inherit, sans-serif.
type Word struct {
	At
	Value string
}

func (*Word) Rule() string { return "Word" }

// Parens groups an expression and blocks precedence rotation.
type Parens struct {
	At
	X Expr
}

func (*Parens) Rule() string { return "Parens" }

// Binary is an infix operation. Left may be nil while the parser is still
// rebalancing a right-recursive chain.
type Binary struct {
	At
	Op    string
	Left  Expr
	Right Expr
}

func (*Binary) Rule() string { return "InfixOperation" }

// Method is a method invocation on a value: $accent.darken(0.2).
type Method struct {
	At
	Target Expr
	Name   string
	Args   []Expr
}

func (*Method) Rule() string { return "MethodInvocation" }

// Call is a CSS function: rotate(5deg). Functions whose arguments are
// passed through untouched (calc, var, ...) keep them in Raw.
type Call struct {
	At
	Name string
	Args []Expr
	Raw  *string
}

func (*Call) Rule() string { return "FunctionCall" }

// List is a space, comma or slash separated sequence.
type List struct {
	At
	Sep   string
	Items []Expr
}

func (*List) Rule() string { return "List" }
