package model

// Value is the result of evaluating an expression.
type Value interface {
	isValue()
}

// NumberValue is a number with its resolved unit. Percentages are
// fractions with Unit "%".
type NumberValue struct {
	V    float64
	Unit string
}

// StringValue is a quoted string, or a bare word when Quote is 0.
type StringValue struct {
	Text  string
	Quote byte
}

// RawValue is written verbatim.
type RawValue struct {
	Text string
}

// ColorValue channels are floats in 0-255, A is in [0,1]. Alpha selects
// the rgba() form.
type ColorValue struct {
	R, G, B float64
	A       float64
	Alpha   bool
}

type URLValue struct {
	Text string
}

type ListValue struct {
	Sep   string
	Items []Value
}

// FunctionValue is a CSS function call. Raw, when set, replaces Args.
type FunctionValue struct {
	Name string
	Args []Value
	Raw  *string
}

// ParensValue keeps parentheses around a value that is not a number.
type ParensValue struct {
	X Value
}

func (NumberValue) isValue()   {}
func (StringValue) isValue()   {}
func (RawValue) isValue()      {}
func (ColorValue) isValue()    {}
func (URLValue) isValue()      {}
func (ListValue) isValue()     {}
func (FunctionValue) isValue() {}
func (ParensValue) isValue()   {}
