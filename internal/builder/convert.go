package builder

import (
	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// value converts a parsed expression into detached model nodes and
// returns the root id. Children are adopted by their parents.
func (u *unit) value(e ast.Expr) (model.NodeID, error) {
	t := u.tree
	var n model.Node
	var children []model.NodeID

	child := func(e ast.Expr) (model.NodeID, error) {
		id, err := u.value(e)
		if err == nil {
			children = append(children, id)
		}
		return id, err
	}
	list := func(es []ast.Expr) ([]model.NodeID, error) {
		ids := make([]model.NodeID, 0, len(es))
		for _, e := range es {
			id, err := child(e)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	switch e := e.(type) {
	case *ast.Number:
		v := e.Value
		if e.Unit == "%" {
			v /= 100
		}
		n = &model.Number{Value: v, Unit: e.Unit}
	case *ast.Color:
		a := 1.0
		if e.HasAlpha {
			a = e.A
		}
		n = &model.Color{R: e.R, G: e.G, B: e.B, A: a, Alpha: e.HasAlpha}
	case *ast.URL:
		n = &model.URL{Value: e.Value}
	case *ast.Ref:
		n = &model.Reference{Name: e.Name}
	case *ast.Str:
		n = &model.String{Value: e.Value, Quote: e.Quote}
	case *ast.Word:
		n = &model.String{Value: e.Value}
	case *ast.Raw:
		n = &model.RawString{Value: e.Value}
	case *ast.Parens:
		x, err := child(e.X)
		if err != nil {
			return model.NoNode, err
		}
		n = &model.Parens{X: x}
	case *ast.Binary:
		if e.Left == nil || e.Right == nil {
			return model.NoNode, errors.Unsupportedf("incomplete %q operation", e.Op)
		}
		l, err := child(e.Left)
		if err != nil {
			return model.NoNode, err
		}
		r, err := child(e.Right)
		if err != nil {
			return model.NoNode, err
		}
		n = &model.Computation{Op: e.Op, Left: l, Right: r}
	case *ast.Method:
		target, err := child(e.Target)
		if err != nil {
			return model.NoNode, err
		}
		args, err := list(e.Args)
		if err != nil {
			return model.NoNode, err
		}
		n = &model.MethodCall{Target: target, Name: e.Name, Args: args}
	case *ast.Call:
		args, err := list(e.Args)
		if err != nil {
			return model.NoNode, err
		}
		n = &model.FunctionCall{Name: e.Name, Args: args, Raw: e.Raw}
	case *ast.List:
		items, err := list(e.Items)
		if err != nil {
			return model.NoNode, err
		}
		n = &model.List{Sep: e.Sep, Items: items}
	default:
		return model.NoNode, errors.Unsupportedf("expression %s", e.Rule())
	}

	n.Base().Pos = e.Pos()
	id := t.Add(n)
	for _, c := range children {
		t.Adopt(id, c)
	}
	return id, nil
}
