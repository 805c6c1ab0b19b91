package model

import (
	"math"
	"testing"

	"github.com/sebastien/pythoniccss/internal/color"
	"github.com/sebastien/pythoniccss/internal/errors"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op      string
		a, b    NumberValue
		want    NumberValue
		wantErr bool
	}{
		{"+", NumberValue{10, "px"}, NumberValue{5, ""}, NumberValue{15, "px"}, false},
		{"+", NumberValue{10, ""}, NumberValue{5, "em"}, NumberValue{15, "em"}, false},
		{"-", NumberValue{10, "px"}, NumberValue{4, "px"}, NumberValue{6, "px"}, false},
		{"*", NumberValue{0.5, "%"}, NumberValue{2, ""}, NumberValue{1, "%"}, false},
		{"/", NumberValue{10, "px"}, NumberValue{4, ""}, NumberValue{2.5, "px"}, false},
		{"%", NumberValue{10, ""}, NumberValue{4, ""}, NumberValue{2, ""}, false},
		{"+", NumberValue{10, "px"}, NumberValue{5, "em"}, NumberValue{}, true},
		{"/", NumberValue{10, "px"}, NumberValue{0, ""}, NumberValue{}, true},
		{"%", NumberValue{10, ""}, NumberValue{0, ""}, NumberValue{}, true},
	}
	for _, tt := range tests {
		got, err := Arithmetic(tt.op, tt.a, tt.b)
		if (err != nil) != tt.wantErr {
			t.Errorf("Arithmetic(%v %s %v) error = %v, wantErr %v", tt.a, tt.op, tt.b, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.IsSemanticError(err) {
			t.Errorf("Arithmetic(%v %s %v) error %T is not semantic", tt.a, tt.op, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("Arithmetic(%v %s %v) = %v, want %v", tt.a, tt.op, tt.b, got, tt.want)
		}
	}
}

func TestColorMethods(t *testing.T) {
	red := ColorValue{R: 255, A: 1}
	tests := []struct {
		name string
		got  ColorValue
		want ColorValue
	}{
		{"darken", red.Darken(0.1), ColorValue{R: 204, A: 1}},
		{"brighten", red.Brighten(0.1), ColorValue{R: 255, G: 51, B: 51, A: 1}},
		{"brighten saturates", red.Brighten(1), ColorValue{R: 255, G: 255, B: 255, A: 1}},
		{"fade", red.Fade(0.5), ColorValue{R: 255, A: 0.5, Alpha: true}},
		{"blend", red.Blend(ColorValue{B: 255, A: 1}, 0.5), ColorValue{R: 127.5, B: 127.5, A: 1}},
		{"blend alpha", red.Blend(ColorValue{A: 0, Alpha: true}, 0.5), ColorValue{R: 127.5, A: 0.5, Alpha: true}},
		{"normalize opaque", ColorValue{R: 300, A: 2, Alpha: true}.Normalize(), ColorValue{R: 255, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !nearColor(tt.got, tt.want) {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func nearColor(a, b ColorValue) bool {
	near := func(x, y float64) bool { return math.Abs(x-y) < 1e-6 }
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A) && a.Alpha == b.Alpha
}

func TestEval_Units(t *testing.T) {
	tree := NewTree("a.pcss")
	double := add(tree, tree.Root(), &Unit{Name: "double", Value: number(tree, 2, "px")})
	tree.Adopt(double, tree.Node(double).(*Unit).Value)
	quad := add(tree, tree.Root(), &Unit{Name: "quad", Value: number(tree, 2, "double")})
	tree.Adopt(quad, tree.Node(quad).(*Unit).Value)
	b := block(tree, tree.Root(), class("a"))

	tests := []struct {
		value NodeID
		want  NumberValue
	}{
		{number(tree, 3, "double"), NumberValue{6, "px"}},
		{number(tree, 2, "quad"), NumberValue{8, "px"}},
		{number(tree, 3, "em"), NumberValue{3, "em"}},
		{number(tree, 0.5, "%"), NumberValue{0.5, "%"}},
	}
	var ev Evaluator
	for _, tt := range tests {
		prop := property(tree, b, "width", tt.value)
		got, err := ev.EvalProperty(tree, prop, "")
		if err != nil {
			t.Fatalf("EvalProperty() error = %v", err)
		}
		if got != tt.want {
			t.Errorf("EvalProperty() = %v, want %v", got, tt.want)
		}
	}
}

func TestEval_Cycles(t *testing.T) {
	tree := NewTree("a.pcss")
	variable(tree, tree.Root(), "a", tree.Add(&Reference{Name: "b"}))
	variable(tree, tree.Root(), "b", tree.Add(&Reference{Name: "a"}))
	loop := add(tree, tree.Root(), &Unit{Name: "loop", Value: number(tree, 1, "loop")})
	tree.Adopt(loop, tree.Node(loop).(*Unit).Value)
	b := block(tree, tree.Root(), class("x"))

	var ev Evaluator
	for _, value := range []NodeID{tree.Add(&Reference{Name: "a"}), number(tree, 2, "loop")} {
		prop := property(tree, b, "width", value)
		_, err := ev.EvalProperty(tree, prop, "")
		if !errors.IsSemanticError(err) {
			t.Errorf("EvalProperty() error = %v, want semantic error", err)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	tree := NewTree("a.pcss")
	b := block(tree, tree.Root(), class("x"))
	add(tree, tree.Root(), &Macro{Name: "m"})

	colorPlus := tree.Add(&Computation{Op: "+", Left: tree.Add(&Color{R: 1, A: 1}), Right: number(tree, 1, "")})
	method := tree.Add(&MethodCall{Target: number(tree, 1, "px"), Name: "darken"})
	tests := []struct {
		name  string
		value NodeID
		check func(error) bool
	}{
		{"unresolved", tree.Add(&Reference{Name: "nope"}), errors.IsSemanticError},
		{"macro as value", tree.Add(&Reference{Name: "m"}), errors.IsSemanticError},
		{"color arithmetic", colorPlus, errors.IsImplementationError},
		{"number method", method, errors.IsSemanticError},
	}
	var ev Evaluator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop := property(tree, b, "width", tt.value)
			if _, err := ev.EvalProperty(tree, prop, ""); !tt.check(err) {
				t.Errorf("EvalProperty() error = %v (%T)", err, err)
			}
		})
	}
}

func TestEval_ColorWords(t *testing.T) {
	tree := NewTree("a.pcss")
	b := block(tree, tree.Root(), class("x"))
	ev := Evaluator{Colors: color.Default()}

	word := func(s string) NodeID { return tree.Add(&String{Value: s}) }
	list := tree.Add(&List{Sep: " ", Items: []NodeID{number(tree, 1, "px"), word("solid"), word("red")}})
	fn := tree.Add(&FunctionCall{Name: "f", Args: []NodeID{word("red")}})

	tests := []struct {
		name  string
		prop  string
		value NodeID
		want  Value
	}{
		{"color word", "color", word("red"), ColorValue{R: 255, A: 1}},
		{"unknown word", "color", word("inherit"), StringValue{Text: "inherit"}},
		{"non color property", "font-family", word("red"), StringValue{Text: "red"}},
		{"quoted", "color", tree.Add(&String{Value: "red", Quote: '"'}), StringValue{Text: "red", Quote: '"'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop := property(tree, b, tt.prop, tt.value)
			got, err := ev.EvalProperty(tree, prop, "")
			if err != nil || got != tt.want {
				t.Errorf("EvalProperty() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}

	got, _ := ev.EvalProperty(tree, property(tree, b, "background", list), "")
	if items := got.(ListValue).Items; items[2] != (ColorValue{R: 255, A: 1}) {
		t.Errorf("list item = %v, want red", items[2])
	}
	got, _ = ev.EvalProperty(tree, property(tree, b, "color", fn), "")
	if args := got.(FunctionValue).Args; args[0] != (StringValue{Text: "red"}) {
		t.Errorf("function argument = %v, want the bare word", args[0])
	}
}

func TestEval_PrefixedValues(t *testing.T) {
	tree := NewTree("a.pcss")
	b := block(tree, tree.Root(), class("x"))
	value := tree.Add(&List{Sep: " ", Items: []NodeID{tree.Add(&String{Value: "transform"}), number(tree, 1, "s")}})
	prop := property(tree, b, "transition", value)

	var ev Evaluator
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "transform"},
		{"-webkit-", "-webkit-transform"},
		{"-ms-", "-ms-transform"},
	}
	for _, tt := range tests {
		got, err := ev.EvalProperty(tree, prop, tt.prefix)
		if err != nil {
			t.Fatalf("EvalProperty() error = %v", err)
		}
		if word := got.(ListValue).Items[0].(StringValue).Text; word != tt.want {
			t.Errorf("prefix %q: word = %q, want %q", tt.prefix, word, tt.want)
		}
	}
	if got := PrefixedName("-ms-", "box"); got != "-ms-flexbox" {
		t.Errorf("PrefixedName(-ms-, box) = %q", got)
	}
}
