package ast

// Dump converts a node into plain maps and slices, tagged with its rule
// name, ready for encoding/json.
func Dump(n Node) map[string]interface{} {
	out := map[string]interface{}{
		"rule": n.Rule(),
		"line": n.Pos().Line,
	}
	if s, ok := n.(Stmt); ok {
		out["depth"] = s.Depth()
	}
	switch v := n.(type) {
	case *BlockHeader:
		if v.Percentage != nil {
			out["percentage"] = Dump(v.Percentage)
		}
		var sels []interface{}
		for _, s := range v.Selections {
			sels = append(sels, Dump(s))
		}
		out["selections"] = sels
	case *Property:
		out["name"] = v.Name
		out["value"] = Dump(v.Value)
		if v.Important {
			out["important"] = true
		}
	case *Variable:
		out["name"] = v.Name
		out["value"] = Dump(v.Value)
	case *MacroInvocation:
		out["name"] = v.Name
		if v.IsSelectorReference() {
			out["selector"] = v.Raw
		} else {
			out["arguments"] = dumpAll(v.Args)
		}
	case *MacroDecl:
		out["name"] = v.Name
		out["parameters"] = v.Params
	case *KeyframesDecl:
		out["name"] = v.Name
	case *Import:
		out["path"] = v.Path
		out["url"] = v.URL
	case *Module:
		out["name"] = v.Name
	case *Unit:
		out["name"] = v.Name
		out["value"] = Dump(v.Value)
	case *Include:
		out["path"] = v.Path
	case *CSSDirective:
		out["name"] = v.Name
		out["value"] = v.Value
	case *Comment:
		out["text"] = v.Text
	case *Selection:
		if v.Head != nil {
			out["head"] = Dump(v.Head)
		}
		var tail []interface{}
		for _, n := range v.Tail {
			tail = append(tail, map[string]interface{}{"op": n.Op, "selector": Dump(n.Sel)})
		}
		out["tail"] = tail
	case *Selector:
		out["node"] = v.Node
		out["id"] = v.ID
		out["classes"] = v.Classes
		var attrs []string
		for _, a := range v.Attributes {
			attrs = append(attrs, a.String())
		}
		out["attributes"] = attrs
		out["suffixes"] = v.Suffixes
		out["states"] = v.States
	case *Number:
		out["value"] = v.Value
		out["unit"] = v.Unit
	case *Color:
		out["rgb"] = []uint8{v.R, v.G, v.B}
		if v.HasAlpha {
			out["alpha"] = v.A
		}
	case *URL:
		out["value"] = v.Value
	case *Ref:
		out["name"] = v.Name
	case *Str:
		out["value"] = v.Value
		out["quote"] = string(v.Quote)
	case *Raw:
		out["value"] = v.Value
	case *Word:
		out["value"] = v.Value
	case *Parens:
		out["value"] = Dump(v.X)
	case *Binary:
		out["op"] = v.Op
		out["left"] = Dump(v.Left)
		out["right"] = Dump(v.Right)
	case *Method:
		out["target"] = Dump(v.Target)
		out["name"] = v.Name
		out["arguments"] = dumpAll(v.Args)
	case *Call:
		out["name"] = v.Name
		if v.Raw != nil {
			out["raw"] = *v.Raw
		} else {
			out["arguments"] = dumpAll(v.Args)
		}
	case *List:
		out["separator"] = v.Sep
		out["items"] = dumpAll(v.Items)
	}
	return out
}

func dumpAll(exprs []Expr) []interface{} {
	out := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, Dump(e))
	}
	return out
}
