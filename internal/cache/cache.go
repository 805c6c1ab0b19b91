// Package cache memoizes compiled stylesheets and recompiles them when the
// file or any of its dependencies changes on disk.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sebastien/pythoniccss/internal/compiler"
	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/parser"
)

// DefaultSize is the number of entries kept when none is configured.
const DefaultSize = 128

// Entry is one compiled file.
type Entry struct {
	Path         string
	Result       *parser.Result
	Tree         *model.Tree
	CSS          string
	Dependencies []string

	// ModTimes maps the file and each dependency to the modification
	// time seen when the entry was compiled.
	ModTimes map[string]time.Time

	Profile compiler.Profile
}

// Graph is a bounded cache of compiled files, keyed by absolute path.
// It is safe for concurrent use.
type Graph struct {
	c       *compiler.Compiler
	entries *lru.Cache[string, *Entry]
}

// New returns a Graph holding up to size entries.
func New(c *compiler.Compiler, size int) (*Graph, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, err
	}
	return &Graph{c: c, entries: entries}, nil
}

// Get returns the entry for path, compiling it when it is missing or
// stale.
func (g *Graph) Get(path string) (*Entry, error) {
	abs, err := g.c.Loader().Abs(path)
	if err != nil {
		return nil, errors.Tag(err, "resolve "+path)
	}
	if e, ok := g.entries.Get(abs); ok && !g.stale(e) {
		return e, nil
	}
	e, err := g.compile(abs)
	if err != nil {
		g.entries.Remove(abs)
		return nil, err
	}
	g.entries.Add(abs, e)
	return e, nil
}

// Peek returns the cached entry for path without checking it.
func (g *Graph) Peek(path string) (*Entry, bool) {
	abs, err := g.c.Loader().Abs(path)
	if err != nil {
		return nil, false
	}
	return g.entries.Peek(abs)
}

// Invalidate drops the entry for path.
func (g *Graph) Invalidate(path string) {
	if abs, err := g.c.Loader().Abs(path); err == nil {
		g.entries.Remove(abs)
	}
}

// Purge drops every entry.
func (g *Graph) Purge() {
	g.entries.Purge()
}

// Len returns the number of cached entries.
func (g *Graph) Len() int {
	return g.entries.Len()
}

// Stale reports whether the cached entry for path is missing or out of
// date.
func (g *Graph) Stale(path string) bool {
	e, ok := g.Peek(path)
	return !ok || g.stale(e)
}

func (g *Graph) compile(abs string) (*Entry, error) {
	// The file is stat'ed before it is read.
	times := make(map[string]time.Time)
	if err := g.stat(abs, times); err != nil {
		return nil, err
	}
	out, err := g.c.CompileFile(abs)
	if err != nil {
		return nil, err
	}
	for _, dep := range out.Dependencies {
		if err := g.stat(dep, times); err != nil {
			return nil, err
		}
	}
	return &Entry{
		Path:         abs,
		Result:       out.Result,
		Tree:         out.Tree,
		CSS:          out.CSS,
		Dependencies: out.Dependencies,
		ModTimes:     times,
		Profile:      out.Profile,
	}, nil
}

func (g *Graph) stat(path string, times map[string]time.Time) error {
	info, err := g.c.Loader().Stat(path)
	if err != nil {
		return errors.Tag(err, "stat "+path)
	}
	times[path] = info.ModTime()
	return nil
}

func (g *Graph) stale(e *Entry) bool {
	for path, seen := range e.ModTimes {
		info, err := g.c.Loader().Stat(path)
		if err != nil || !info.ModTime().Equal(seen) {
			return true
		}
	}
	return false
}
