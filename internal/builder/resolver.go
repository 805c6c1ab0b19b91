package builder

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/parser"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// DefaultSearchPaths are tried, in order, after the directory of the
// importing file.
var DefaultSearchPaths = []string{".", "lib/pcss", "src/pcss"}

var extensions = []string{"", ".pcss"}

// resolve locates an imported or included file and returns its absolute
// path. url() references are taken relative to the importing file, then
// as written; other names go through the search path.
func (u *unit) resolve(name string, url bool) (string, bool) {
	var candidates []string
	dir := filepath.Dir(u.file)
	switch {
	case url:
		candidates = []string{filepath.Join(dir, name), name}
	case filepath.IsAbs(name):
		for _, ext := range extensions {
			candidates = append(candidates, name+ext)
		}
	default:
		bases := append([]string{dir}, DefaultSearchPaths...)
		bases = append(bases, u.b.opts.SearchPaths...)
		for _, base := range bases {
			for _, ext := range extensions {
				candidates = append(candidates, filepath.Join(base, name+ext))
			}
		}
	}
	for _, c := range candidates {
		if !isFile(u.b.loader, c) {
			continue
		}
		abs, err := u.b.loader.Abs(c)
		if err != nil {
			continue
		}
		u.b.log.Debug("resolved", zap.String("name", name), zap.String("path", abs))
		return abs, true
	}
	return "", false
}

// importFile handles @import and @use. Stylesheets are built within the
// session; other files and unresolvable url() targets stay external CSS
// imports.
func (u *unit) importFile(s *ast.Import) error {
	pos := s.Pos()
	if u.top() != u.tree.Root() {
		return semanticAt(pos, "@%s must be at the top level", directive(s))
	}
	imp := &model.Import{Path: s.Path, Use: s.Use}
	abs, ok := u.resolve(s.Path, s.URL)
	switch {
	case !ok && s.URL:
		imp.Output = cssPath(filepath.ToSlash(s.Path))
	case !ok:
		return semanticAt(pos, "cannot resolve PCSS file `%s`", s.Path)
	case abs == u.file:
		return semanticAt(pos, "stylesheet `%s` imports itself", s.Path)
	default:
		u.b.depend(abs)
		imp.Output = cssPath(u.relative(abs))
		if strings.HasSuffix(abs, ".pcss") {
			tree, err := u.b.load(abs)
			if err != nil {
				return locate(err, pos)
			}
			imp.Tree = tree
		}
	}
	u.add(u.top(), imp, pos)
	return nil
}

// include splices the statements of another file at the include point,
// indented like the include itself. Paths inside the included file
// resolve from its own directory.
func (u *unit) include(s *ast.Include, indent int) error {
	pos := s.Pos()
	abs, ok := u.resolve(s.Path, false)
	switch {
	case !ok:
		return semanticAt(pos, "cannot resolve included file `%s`", s.Path)
	case abs == u.file:
		return semanticAt(pos, "`%s` includes itself", s.Path)
	}
	u.b.depend(abs)
	res, err := u.b.parse(abs)
	if err != nil {
		return err
	}
	if err := u.b.enter(abs); err != nil {
		return locate(err, pos)
	}
	defer u.b.leave()
	saved := u.file
	u.file = abs
	defer func() { u.file = saved }()
	return u.statements(res.Statements, indent)
}

// load returns the tree of an imported stylesheet, building it on first
// use.
func (b *Builder) load(abs string) (*model.Tree, error) {
	for _, p := range b.active {
		if p == abs {
			return nil, errors.Semanticf("import cycle: %s", strings.Join(append(b.active, abs), " -> "))
		}
	}
	if tree, ok := b.trees[abs]; ok {
		b.log.Debug("import cache hit", zap.String("path", abs))
		return tree, nil
	}
	res, err := b.parse(abs)
	if err != nil {
		return nil, err
	}
	tree, err := b.Build(res)
	if err != nil {
		return nil, err
	}
	b.trees[abs] = tree
	return tree, nil
}

func (b *Builder) parse(abs string) (*parser.Result, error) {
	src, err := b.loader.ReadFile(abs)
	if err != nil {
		return nil, errors.Tag(err, "read "+abs)
	}
	return parser.Parse(abs, src)
}

// relative returns abs relative to the directory of the current file,
// with forward slashes.
func (u *unit) relative(abs string) string {
	rel, err := filepath.Rel(filepath.Dir(u.file), abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

func cssPath(p string) string {
	if strings.HasSuffix(p, ".pcss") {
		return strings.TrimSuffix(p, ".pcss") + ".css"
	}
	return p
}

func directive(s *ast.Import) string {
	if s.Use {
		return "use"
	}
	return "import"
}
