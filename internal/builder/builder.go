// Package builder reduces the flat statement list of a parsed file into
// the stylesheet model.
//
// INDENT STACK:
// The stack starts with the stylesheet. For each statement, frames whose
// indent is greater than or equal to the statement's are popped, then the
// statement is attached to the top frame. Blocks, macros, keyframes and
// frames are pushed. A macro declaration resets the stack to the
// stylesheet.
//
// EXPANSION:
// Macro invocations, merge() and extend() are expanded while building, so
// they see the blocks and macros declared before them, imports included.
// Every expansion deep-copies what it uses.
//
// IMPORTS:
// One Builder is one compile session: each file is parsed and built at
// most once, and the files being built form the in-progress set that
// turns import and include cycles into errors.
package builder

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/lexer"
	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/parser"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
	"github.com/sebastien/pythoniccss/internal/selector"
)

// Options configures a Builder.
type Options struct {
	// SearchPaths are tried after the importing file's directory and
	// DefaultSearchPaths.
	SearchPaths []string

	// MaxDepth bounds block nesting and selector chains. Zero means
	// model.DefaultMaxDepth.
	MaxDepth int

	// Loader reads imported files. Nil means OSLoader.
	Loader Loader

	Logger *zap.Logger
}

// Builder builds trees for one compile session.
type Builder struct {
	opts   Options
	loader Loader
	log    *zap.Logger

	// trees caches built imports by absolute path.
	trees map[string]*model.Tree

	// active lists the absolute paths being built, outermost first.
	active []string

	deps []string
	seen map[string]bool
}

// New returns a Builder with a fresh session.
func New(opts Options) *Builder {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = model.DefaultMaxDepth
	}
	b := &Builder{
		opts:   opts,
		loader: opts.Loader,
		log:    opts.Logger,
		trees:  make(map[string]*model.Tree),
		seen:   make(map[string]bool),
	}
	if b.loader == nil {
		b.loader = OSLoader{}
	}
	if b.log == nil {
		b.log = zap.NewNop()
	}
	b.log = b.log.Named("builder")
	return b
}

// Dependencies returns the files imported or included so far, in the
// order they were first resolved.
func (b *Builder) Dependencies() []string {
	return append([]string(nil), b.deps...)
}

// Build reduces a parse result into a tree. Imports are built
// recursively within the same session.
func (b *Builder) Build(res *parser.Result) (*model.Tree, error) {
	abs, err := b.loader.Abs(res.Filename)
	if err != nil {
		return nil, errors.Tag(err, "resolve "+res.Filename)
	}
	if err := b.enter(abs); err != nil {
		return nil, err
	}
	defer b.leave()

	tree := model.NewTree(res.Filename)
	tree.MaxDepth = b.opts.MaxDepth
	u := &unit{
		b:     b,
		tree:  tree,
		file:  abs,
		stack: []frame{{id: tree.Root(), indent: -1}},
	}
	if err := u.statements(res.Statements, 0); err != nil {
		return nil, err
	}
	tree.Balance()
	return tree, nil
}

func (b *Builder) enter(abs string) error {
	for _, p := range b.active {
		if p == abs {
			return errors.Semanticf("import cycle: %s", strings.Join(append(b.active, abs), " -> "))
		}
	}
	b.active = append(b.active, abs)
	return nil
}

func (b *Builder) leave() {
	b.active = b.active[:len(b.active)-1]
}

func (b *Builder) depend(abs string) {
	if !b.seen[abs] {
		b.seen[abs] = true
		b.deps = append(b.deps, abs)
	}
}

// unit is the state of building one tree.
type unit struct {
	b    *Builder
	tree *model.Tree

	// file is the absolute path of the file whose statements are being
	// processed. It changes while an include is spliced.
	file string

	stack []frame
}

type frame struct {
	id     model.NodeID
	indent int
}

func (u *unit) top() model.NodeID {
	return u.stack[len(u.stack)-1].id
}

func (u *unit) topNode() model.Node {
	return u.tree.Node(u.top())
}

func (u *unit) unwind(indent int) {
	for len(u.stack) > 1 && u.stack[len(u.stack)-1].indent >= indent {
		u.stack = u.stack[:len(u.stack)-1]
	}
}

// enclosing returns the innermost open node a line at indent would belong
// to, leaving the stack untouched.
func (u *unit) enclosing(indent int) model.NodeID {
	i := len(u.stack) - 1
	for i > 0 && u.stack[i].indent >= indent {
		i--
	}
	return u.stack[i].id
}

func (u *unit) push(id model.NodeID, indent int, pos lexer.Position) error {
	if len(u.stack) > u.b.opts.MaxDepth {
		return semanticAt(pos, "nesting exceeds the maximum depth of %d", u.b.opts.MaxDepth)
	}
	u.stack = append(u.stack, frame{id: id, indent: indent})
	return nil
}

// add stores n and attaches it to parent.
func (u *unit) add(parent model.NodeID, n model.Node, pos lexer.Position) model.NodeID {
	n.Base().Pos = pos
	id := u.tree.Add(n)
	u.tree.Attach(parent, id)
	return id
}

func (u *unit) statements(stmts []ast.Stmt, offset int) error {
	for _, s := range stmts {
		if err := u.statement(s, offset); err != nil {
			return err
		}
	}
	return nil
}

func (u *unit) statement(s ast.Stmt, offset int) error {
	indent := s.Depth() + offset
	pos := s.Pos()
	switch s := s.(type) {
	case *ast.Comment:
		u.add(u.enclosing(indent), &model.Comment{Text: s.Text}, pos)
	case *ast.MacroDecl:
		u.stack = u.stack[:1]
		id := u.add(u.top(), &model.Macro{Name: s.Name, Params: s.Params}, pos)
		return u.push(id, indent, pos)
	case *ast.BlockHeader:
		return u.header(s, indent)
	case *ast.KeyframesDecl:
		u.unwind(indent)
		id := u.add(u.top(), &model.Keyframes{Name: s.Name}, pos)
		return u.push(id, indent, pos)
	case *ast.Property:
		u.unwind(indent)
		switch u.topNode().Kind() {
		case model.KindBlock, model.KindKeyframe, model.KindMacro:
		default:
			return semanticAt(pos, "property `%s` outside of a block", s.Name)
		}
		return u.bind(&model.Property{Name: s.Name, Important: s.Important}, s.Value, pos)
	case *ast.Variable:
		u.unwind(indent)
		return u.bind(&model.Variable{Name: s.Name}, s.Value, pos)
	case *ast.Unit:
		u.unwind(indent)
		return u.bind(&model.Unit{Name: s.Name}, s.Value, pos)
	case *ast.Module:
		u.unwind(indent)
		u.add(u.top(), &model.Module{Name: s.Name}, pos)
	case *ast.CSSDirective:
		u.unwind(indent)
		u.add(u.top(), &model.CSSDirective{Name: s.Name, Value: s.Value}, pos)
	case *ast.Import:
		u.unwind(indent)
		return u.importFile(s)
	case *ast.Include:
		u.unwind(indent)
		return u.include(s, indent)
	case *ast.MacroInvocation:
		u.unwind(indent)
		if s.IsSelectorReference() {
			return u.copyBlock(s)
		}
		return u.expand(s)
	default:
		return errors.Unsupportedf("statement %s", s.Rule())
	}
	return nil
}

// bind attaches a property, variable or unit together with its value.
func (u *unit) bind(n model.Node, value ast.Expr, pos lexer.Position) error {
	v, err := u.value(value)
	if err != nil {
		return err
	}
	switch n := n.(type) {
	case *model.Property:
		n.Value = v
	case *model.Variable:
		n.Value = v
	case *model.Unit:
		n.Value = v
	}
	id := u.add(u.top(), n, pos)
	u.tree.Adopt(id, v)
	return nil
}

func (u *unit) header(s *ast.BlockHeader, indent int) error {
	u.unwind(indent)
	pos := s.Pos()
	if u.topNode().Kind() == model.KindKeyframes {
		offset, err := keyframeOffset(s)
		if err != nil {
			return err
		}
		id := u.add(u.top(), &model.Keyframe{Offset: offset}, pos)
		return u.push(id, indent, pos)
	}
	if s.Percentage != nil {
		return semanticAt(pos, "percentage selector outside of @keyframes")
	}
	sels := selector.FromSelections(s.Selections)
	for _, sel := range sels {
		if err := sel.Validate(); err != nil {
			return locate(err, pos)
		}
	}
	id := u.add(u.top(), &model.Block{}, pos)
	u.tree.Select(id, sels...)
	return u.push(id, indent, pos)
}

func keyframeOffset(s *ast.BlockHeader) (float64, error) {
	if p := s.Percentage; p != nil {
		if p.Unit != "%" {
			return 0, semanticAt(s.Pos(), "keyframe offset must be a percentage")
		}
		return p.Value / 100, nil
	}
	if len(s.Selections) == 1 && len(s.Selections[0].Tail) == 0 && s.Selections[0].Head != nil {
		switch h := s.Selections[0].Head; {
		case h.Node == "from" && isBare(h):
			return 0, nil
		case h.Node == "to" && isBare(h):
			return 1, nil
		}
	}
	return 0, semanticAt(s.Pos(), "keyframe selector must be from, to or a percentage")
}

func isBare(s *ast.Selector) bool {
	return s.ID == "" && len(s.Classes) == 0 && len(s.Attributes) == 0 && len(s.Suffixes) == 0 && len(s.States) == 0
}

func semanticAt(pos lexer.Position, format string, args ...interface{}) *errors.SemanticError {
	return &errors.SemanticError{
		File:   pos.Filename,
		Line:   pos.Line,
		Column: pos.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// locate fills in the position of a semantic error raised without one.
func locate(err error, pos lexer.Position) error {
	var sem *errors.SemanticError
	if errors.As(err, &sem) && sem.Line == 0 {
		sem.File, sem.Line, sem.Column = pos.Filename, pos.Line, pos.Column
	}
	return err
}
