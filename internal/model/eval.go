package model

import (
	"github.com/sebastien/pythoniccss/internal/color"
	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/lexer"
)

// Evaluator turns value expressions into literal values. Colors resolves
// bare color words; a nil table resolves none.
type Evaluator struct {
	Colors *color.Table
}

// EvalProperty evaluates the value of the property id as written for the
// vendor prefix, "" for the unprefixed line.
func (e *Evaluator) EvalProperty(t *Tree, id NodeID, prefix string) (Value, error) {
	p, ok := Get[*Property](t, id)
	if !ok {
		return nil, errors.Unsupportedf("evaluating %s as a property", t.Node(id).Kind())
	}
	ev := e.session(prefix)
	ev.rewrite = prefix != "" && prefixedValues[p.Name]
	return ev.eval(t, p.Value, IsColorProperty(p.Name))
}

// Eval evaluates the expression id outside of any property.
func (e *Evaluator) Eval(t *Tree, id NodeID) (Value, error) {
	return e.session("").eval(t, id, false)
}

func (e *Evaluator) session(prefix string) *evaluation {
	return &evaluation{colors: e.Colors, prefix: prefix, active: make(map[Binding]bool)}
}

// evaluation is the state of one property evaluation. active holds the
// variables and units being evaluated, to reject cycles.
type evaluation struct {
	colors  *color.Table
	prefix  string
	rewrite bool
	active  map[Binding]bool
}

// eval evaluates node id of t. words enables the color name lookup of
// bare words; it does not reach into function arguments.
func (ev *evaluation) eval(t *Tree, id NodeID, words bool) (Value, error) {
	switch n := t.Node(id).(type) {
	case *Number:
		return ev.number(t, n)
	case *String:
		return ev.word(n, words), nil
	case *RawString:
		return RawValue{Text: n.Value}, nil
	case *Color:
		c := ColorValue{R: float64(n.R), G: float64(n.G), B: float64(n.B), A: n.A, Alpha: n.Alpha}
		return c.Normalize(), nil
	case *URL:
		return URLValue{Text: n.Value}, nil
	case *Reference:
		return ev.reference(t, n, words)
	case *Parens:
		v, err := ev.eval(t, n.X, words)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case NumberValue, ColorValue:
			return v, nil
		}
		return ParensValue{X: v}, nil
	case *Computation:
		return ev.computation(t, n)
	case *List:
		items := make([]Value, 0, len(n.Items))
		for _, item := range n.Items {
			v, err := ev.eval(t, item, words)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return ListValue{Sep: n.Sep, Items: items}, nil
	case *FunctionCall:
		return ev.function(t, n)
	case *MethodCall:
		return ev.method(t, n)
	case nil:
		return nil, errors.Unsupportedf("evaluating missing node %d", id)
	default:
		return nil, errors.Unsupportedf("evaluating %s", n.Kind())
	}
}

func (ev *evaluation) number(t *Tree, n *Number) (Value, error) {
	if n.Unit == "" || n.Unit == "%" {
		return NumberValue{V: n.Value, Unit: n.Unit}, nil
	}
	b, _ := n.unit.get(t.gen, func() (Binding, error) {
		b, _ := t.ResolveUnit(n.Unit)
		return b, nil
	})
	if b.Tree == nil {
		return NumberValue{V: n.Value, Unit: n.Unit}, nil
	}
	if ev.active[b] {
		return nil, semanticAt(n.Pos, "cyclic definition of unit `%s`", n.Unit)
	}
	ev.active[b] = true
	defer delete(ev.active, b)
	u := b.Node().(*Unit)
	v, err := ev.eval(b.Tree, u.Value, false)
	if err != nil {
		return nil, err
	}
	base, ok := v.(NumberValue)
	if !ok {
		return nil, semanticAt(n.Pos, "unit `%s` is not defined as a number", n.Unit)
	}
	return NumberValue{V: n.Value * base.V, Unit: base.Unit}, nil
}

func (ev *evaluation) word(n *String, words bool) Value {
	if n.Quote == 0 {
		if words {
			if rgb, ok := ev.colors.Lookup(n.Value); ok {
				return ColorValue{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B), A: 1}
			}
		}
		if ev.rewrite && IsPrefixable(n.Value) {
			return StringValue{Text: PrefixedName(ev.prefix, n.Value)}
		}
	}
	return StringValue{Text: n.Value, Quote: n.Quote}
}

func (ev *evaluation) reference(t *Tree, n *Reference, words bool) (Value, error) {
	b, ok := t.Resolve(n.Header.id, n.Name)
	if !ok {
		return nil, semanticAt(n.Pos, "unresolved reference `$%s`", n.Name)
	}
	target := b.ID
	switch def := b.Node().(type) {
	case *Variable:
		target = def.Value
	case *Unit:
		target = def.Value
	default:
		if !def.Kind().IsValue() {
			return nil, semanticAt(n.Pos, "`$%s` names a %s, not a value", n.Name, def.Kind())
		}
	}
	if ev.active[b] {
		return nil, semanticAt(n.Pos, "cyclic reference to `$%s`", n.Name)
	}
	ev.active[b] = true
	defer delete(ev.active, b)
	return ev.eval(b.Tree, target, words)
}

func (ev *evaluation) computation(t *Tree, n *Computation) (Value, error) {
	l, err := ev.eval(t, n.Left, false)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(t, n.Right, false)
	if err != nil {
		return nil, err
	}
	a, aok := l.(NumberValue)
	b, bok := r.(NumberValue)
	if !aok || !bok {
		return nil, locate(errors.Unsupportedf("%s %s %s", describe(l), n.Op, describe(r)), n.Pos)
	}
	v, err := Arithmetic(n.Op, a, b)
	return v, locate(err, n.Pos)
}

func (ev *evaluation) args(t *Tree, ids []NodeID) ([]Value, error) {
	args := make([]Value, 0, len(ids))
	for _, id := range ids {
		v, err := ev.eval(t, id, false)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (ev *evaluation) function(t *Tree, n *FunctionCall) (Value, error) {
	if n.Raw != nil {
		return FunctionValue{Name: n.Name, Raw: n.Raw}, nil
	}
	args, err := ev.args(t, n.Args)
	if err != nil {
		return nil, err
	}
	// rgba($color, 0.5) sets the alpha of a computed color.
	if (n.Name == "rgba" || n.Name == "rgb") && len(args) == 2 {
		c, cok := args[0].(ColorValue)
		a, aok := args[1].(NumberValue)
		if cok && aok {
			c.A, c.Alpha = a.V, true
			return c.Normalize(), nil
		}
	}
	return FunctionValue{Name: n.Name, Args: args}, nil
}

func (ev *evaluation) method(t *Tree, n *MethodCall) (Value, error) {
	target, err := ev.eval(t, n.Target, false)
	if err != nil {
		return nil, err
	}
	args, err := ev.args(t, n.Args)
	if err != nil {
		return nil, err
	}
	c, ok := target.(ColorValue)
	if !ok {
		return nil, semanticAt(n.Pos, "%s does not respond to method `%s`", describe(target), n.Name)
	}
	switch n.Name {
	case "brighten", "darken", "fade":
		k, err := factor(n, args, 0)
		if err != nil {
			return nil, err
		}
		switch n.Name {
		case "brighten":
			return c.Brighten(k), nil
		case "darken":
			return c.Darken(k), nil
		}
		return c.Fade(k), nil
	case "blend":
		if len(args) != 2 {
			return nil, semanticAt(n.Pos, "blend expects a color and a factor, got %d arguments", len(args))
		}
		other, ok := args[0].(ColorValue)
		if !ok {
			return nil, semanticAt(n.Pos, "blend expects a color, got %s", describe(args[0]))
		}
		k, err := factor(n, args, 1)
		if err != nil {
			return nil, err
		}
		return c.Blend(other, k), nil
	}
	return nil, semanticAt(n.Pos, "color does not respond to method `%s`", n.Name)
}

func factor(n *MethodCall, args []Value, i int) (float64, error) {
	if i >= len(args) {
		return DefaultFactor, nil
	}
	num, ok := args[i].(NumberValue)
	if !ok {
		return 0, semanticAt(n.Pos, "%s expects a number, got %s", n.Name, describe(args[i]))
	}
	return num.V, nil
}

func describe(v Value) string {
	switch v.(type) {
	case NumberValue:
		return "number"
	case StringValue, RawValue:
		return "string"
	case ColorValue:
		return "color"
	case URLValue:
		return "url"
	case ListValue:
		return "list"
	case FunctionValue:
		return "function"
	case ParensValue:
		return "group"
	}
	return "value"
}

// locate fills in the position of a semantic or implementation error
// raised without one.
func locate(err error, pos lexer.Position) error {
	var sem *errors.SemanticError
	if errors.As(err, &sem) && sem.Line == 0 {
		sem.File, sem.Line, sem.Column = pos.Filename, pos.Line, pos.Column
	}
	var impl *errors.ImplementationError
	if errors.As(err, &impl) && impl.Line == 0 {
		impl.File, impl.Line, impl.Column = pos.Filename, pos.Line, pos.Column
	}
	return err
}
