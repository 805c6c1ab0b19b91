// Package compiler runs the PCSS pipeline: parse, build, render.
//
// The three stages are exposed separately and keep no state between
// calls. Caching compiled files is left to the caller, see package cache.
package compiler

import (
	"time"

	"go.uber.org/zap"

	"github.com/sebastien/pythoniccss/internal/builder"
	"github.com/sebastien/pythoniccss/internal/color"
	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/model"
	"github.com/sebastien/pythoniccss/internal/parser"
	"github.com/sebastien/pythoniccss/internal/writer"
)

// Options configures a Compiler.
type Options struct {
	// SearchPaths are extra directories for @import, @use and @include.
	SearchPaths []string

	// MaxDepth bounds nesting. Zero means model.DefaultMaxDepth.
	MaxDepth int

	// Colors resolves color names. Nil means color.Default().
	Colors *color.Table

	// Loader reads sources. Nil means builder.OSLoader.
	Loader builder.Loader

	Logger *zap.Logger
}

// Compiler compiles stylesheets. It is safe for concurrent use: every
// compilation runs in its own import session.
type Compiler struct {
	opts Options
	ev   *model.Evaluator
	log  *zap.Logger
}

// Profile holds the time spent in each stage.
type Profile struct {
	Parse  time.Duration
	Build  time.Duration
	Render time.Duration
}

// Total returns the time spent in all stages.
func (p Profile) Total() time.Duration {
	return p.Parse + p.Build + p.Render
}

// Output is the result of compiling one file.
type Output struct {
	CSS    string
	Tree   *model.Tree
	Result *parser.Result

	// Dependencies are the absolute paths of the imported and included
	// files, in resolution order.
	Dependencies []string

	Profile Profile
}

// New returns a Compiler.
func New(opts Options) *Compiler {
	if opts.Colors == nil {
		opts.Colors = color.Default()
	}
	if opts.Loader == nil {
		opts.Loader = builder.OSLoader{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Compiler{
		opts: opts,
		ev:   &model.Evaluator{Colors: opts.Colors},
		log:  opts.Logger.Named("compiler"),
	}
}

// Loader returns the loader sources are read with.
func (c *Compiler) Loader() builder.Loader {
	return c.opts.Loader
}

// Parse parses one source file.
func (c *Compiler) Parse(name string, src []byte) (*parser.Result, error) {
	return parser.Parse(name, src)
}

// Build builds the model of a parsed file, imports included.
func (c *Compiler) Build(res *parser.Result) (*model.Tree, error) {
	tree, _, err := c.build(res)
	return tree, err
}

func (c *Compiler) build(res *parser.Result) (*model.Tree, []string, error) {
	b := builder.New(builder.Options{
		SearchPaths: c.opts.SearchPaths,
		MaxDepth:    c.opts.MaxDepth,
		Loader:      c.opts.Loader,
		Logger:      c.opts.Logger,
	})
	tree, err := b.Build(res)
	if err != nil {
		return nil, nil, err
	}
	return tree, b.Dependencies(), nil
}

// Render writes the CSS of a built model.
func (c *Compiler) Render(tree *model.Tree) (string, error) {
	return writer.Render(tree, c.ev)
}

// CompileFile reads and compiles path.
func (c *Compiler) CompileFile(path string) (*Output, error) {
	src, err := c.opts.Loader.ReadFile(path)
	if err != nil {
		return nil, errors.Tag(err, "read "+path)
	}
	return c.compile(path, src)
}

// CompileString compiles src as if read from name. Imports resolve
// relative to name.
func (c *Compiler) CompileString(name, src string) (*Output, error) {
	return c.compile(name, []byte(src))
}

func (c *Compiler) compile(name string, src []byte) (*Output, error) {
	out := &Output{}
	start := time.Now()
	res, err := c.Parse(name, src)
	if err != nil {
		return nil, err
	}
	out.Result = res
	out.Profile.Parse = time.Since(start)

	start = time.Now()
	tree, deps, err := c.build(res)
	if err != nil {
		return nil, err
	}
	out.Tree, out.Dependencies = tree, deps
	out.Profile.Build = time.Since(start)

	start = time.Now()
	css, err := c.Render(tree)
	if err != nil {
		return nil, err
	}
	out.CSS = css
	out.Profile.Render = time.Since(start)

	c.log.Debug("compiled",
		zap.String("file", name),
		zap.Int("dependencies", len(deps)),
		zap.Duration("total", out.Profile.Total()),
	)
	return out, nil
}
