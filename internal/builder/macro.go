package builder

import (
	"go.uber.org/zap"

	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/parser"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
	"github.com/sebastien/pythoniccss/internal/selector"
)

// copyBlock expands merge(selector) and extend(selector) into the current
// block. merge copies the target's declarations and macro expansions;
// extend also copies its nested blocks.
func (u *unit) copyBlock(s *ast.MacroInvocation) error {
	pos := s.Pos()
	head := u.top()
	switch u.topNode().Kind() {
	case model.KindBlock, model.KindMacro:
	default:
		return semanticAt(pos, "`%s` must be used inside a block", s.Name)
	}
	sels, err := parser.ParseSelections(pos.Filename, s.Raw)
	if err != nil {
		return err
	}
	text := selector.FromSelection(sels[0]).Expr("")
	target, ok, err := u.tree.FindSelector(text, head)
	if err != nil {
		return locate(err, pos)
	}
	if !ok {
		return semanticAt(pos, "`%s` could not find referenced block `%s`", s.Name, text)
	}
	recursive := s.Name == "extend"
	content := append([]model.NodeID(nil), target.Tree.Content(target.ID)...)
	for _, id := range content {
		switch target.Tree.Node(id).Kind() {
		case model.KindBlock, model.KindKeyframes:
			if !recursive {
				continue
			}
		case model.KindComment:
			continue
		}
		u.tree.CopyFrom(target.Tree, id, head)
	}
	u.b.log.Debug("copied block", zap.String("op", s.Name), zap.String("selector", text))
	return nil
}

// expand invokes a macro: an invocation marker and a Context holding a
// copy of the macro body are attached to the current container. The
// context binds the macro parameters to copies of the arguments.
func (u *unit) expand(s *ast.MacroInvocation) error {
	pos := s.Pos()
	t := u.tree
	head := u.top()

	b, ok := t.Resolve(t.Root(), s.Name)
	if !ok {
		if _, isBlock, _ := t.FindSelector("."+s.Name, head); isBlock {
			return semanticAt(pos, "`%s()` resolves to block `.%s`, not to a macro", s.Name, s.Name)
		}
		return semanticAt(pos, "`%s()` could not find macro `%s`", s.Name, s.Name)
	}
	macro, ok := b.Node().(*model.Macro)
	if !ok {
		return semanticAt(pos, "`%s()` resolves to a %s, not to a macro", s.Name, b.Node().Kind())
	}

	marker := &model.MacroInvocation{Name: s.Name}
	markerID := u.add(head, marker, pos)
	for _, arg := range s.Args {
		id, err := u.value(arg)
		if err != nil {
			return err
		}
		marker.Args = append(marker.Args, id)
		t.Adopt(markerID, id)
	}

	ctx := &model.Context{Name: macro.Name, Params: append([]string(nil), macro.Params...)}
	ctxID := u.add(head, ctx, pos)
	for i := range ctx.Params {
		if i >= len(marker.Args) {
			break
		}
		cp := t.Copy(t, marker.Args[i])
		ctx.Args = append(ctx.Args, cp)
		t.Adopt(ctxID, cp)
	}

	body := append([]model.NodeID(nil), b.Tree.Content(b.ID)...)
	for _, id := range body {
		if head == t.Root() && b.Tree.Node(id).Kind() == model.KindProperty {
			return semanticAt(pos, "macro `%s` declares properties outside of a block", s.Name)
		}
		t.CopyFrom(b.Tree, id, ctxID)
	}
	u.b.log.Debug("expanded macro", zap.String("macro", s.Name), zap.Int("args", len(ctx.Args)))
	return nil
}
