// Command pcss compiles PythonicCSS stylesheets to CSS.
//
// Usage:
//
//	pcss [flags] FILE...
//
// Files compile concurrently, each in its own import session. The CSS is
// written in argument order to stdout, or to the -o file once every file
// compiled.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/sebastien/pythoniccss/internal/bundle"
	"github.com/sebastien/pythoniccss/internal/cache"
	"github.com/sebastien/pythoniccss/internal/compiler"
	"github.com/sebastien/pythoniccss/internal/csscheck"
	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/options"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	output   string
	verbose  bool
	profile  bool
	dumpJSON bool
	check    bool
	diff     bool
	bundle   bool
	watch    time.Duration
	include  listFlag
	jobs     int
	maxDepth int
	cache    int
	files    []string
}

// listFlag collects the values of a repeatable flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	env := options.FromEnv()
	cfg := &config{cache: env.CacheSize}

	fs := flag.NewFlagSet("pcss", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.output, "o", "", "write the CSS to `file`")
	fs.StringVar(&cfg.output, "output", "", "write the CSS to `file`")
	fs.BoolVar(&cfg.verbose, "v", env.Verbose, "log debug messages")
	fs.BoolVar(&cfg.verbose, "verbose", env.Verbose, "log debug messages")
	fs.BoolVar(&cfg.profile, "profile", false, "log the time spent parsing, building and rendering")
	fs.BoolVar(&cfg.dumpJSON, "json", false, "print the parse tree as JSON instead of CSS")
	fs.BoolVar(&cfg.check, "check", false, "validate the generated CSS")
	fs.BoolVar(&cfg.diff, "diff", false, "print a diff against the .css file next to each source")
	fs.BoolVar(&cfg.bundle, "bundle", false, "inline imported stylesheets with esbuild")
	fs.DurationVar(&cfg.watch, "watch", env.Watch, "poll sources every `interval` and recompile on change")
	fs.Var(&cfg.include, "I", "add `path` to the import search path (repeatable)")
	fs.IntVar(&cfg.jobs, "j", env.Concurrency, "compile up to `n` files at once")
	fs.IntVar(&cfg.maxDepth, "max-depth", env.MaxDepth, "maximum block nesting")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pcss [flags] FILE...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		fs.Usage()
		return nil, errors.New("no input files")
	}
	if cfg.jobs < 1 {
		cfg.jobs = 1
	}
	cfg.include = append(listFlag(env.SearchPaths), cfg.include...)
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "pcss: %v\n", err)
		return 2
	}
	log := newLogger(stderr, cfg.verbose)
	defer func() { _ = log.Sync() }()

	c := compiler.New(compiler.Options{
		SearchPaths: cfg.include,
		MaxDepth:    cfg.maxDepth,
		Logger:      log,
	})
	g, err := cache.New(c, cfg.cache)
	if err != nil {
		fmt.Fprintf(stderr, "pcss: %v\n", err)
		return 1
	}
	a := &app{cfg: cfg, c: c, g: g, log: log, stdout: stdout, stderr: stderr}

	status := 0
	if err := a.build(); err != nil {
		a.report(err)
		status = 1
	}
	if cfg.watch > 0 {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		return a.watch(ctx, status)
	}
	return status
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core)
}

type app struct {
	cfg *config
	c   *compiler.Compiler
	g   *cache.Graph
	log *zap.Logger

	stdout io.Writer
	stderr io.Writer
}

// build compiles every file and writes the outputs. Nothing is written
// when any file fails.
func (a *app) build() error {
	outs := make([]string, len(a.cfg.files))
	errs := make([]error, len(a.cfg.files))
	eg := &errgroup.Group{}
	eg.SetLimit(a.cfg.jobs)
	for i, file := range a.cfg.files {
		eg.Go(func() error {
			outs[i], errs[i] = a.compile(file)
			return nil
		})
	}
	_ = eg.Wait()
	if err := errors.Merge(errs...); err != nil {
		return err
	}
	return a.emit(outs)
}

func (a *app) compile(file string) (string, error) {
	e, err := a.g.Get(file)
	if err != nil {
		return "", err
	}
	if a.cfg.profile {
		a.log.Info("profile",
			zap.String("file", file),
			zap.Duration("parse", e.Profile.Parse),
			zap.Duration("build", e.Profile.Build),
			zap.Duration("render", e.Profile.Render),
			zap.Duration("total", e.Profile.Total()),
		)
	}
	if a.cfg.dumpJSON {
		raw, err := json.MarshalIndent(e.Result, "", "  ")
		if err != nil {
			return "", errors.Tag(err, "encode "+file)
		}
		return string(raw) + "\n", nil
	}

	css := e.CSS
	if a.cfg.bundle {
		blob, err := bundle.Bundle(a.c, file)
		if err != nil {
			return "", errors.Tag(err, "bundle "+file)
		}
		css = string(blob)
	}
	if a.cfg.check {
		report, err := csscheck.New(a.log).Check(css)
		if err != nil {
			return "", errors.Tag(err, file)
		}
		a.log.Info("checked",
			zap.String("file", file),
			zap.Int("rules", report.Rules),
			zap.Int("at-rules", report.AtRules),
			zap.Int("declarations", report.Declarations),
		)
	}
	if a.cfg.diff {
		return diffSibling(file, css)
	}
	return css, nil
}

func (a *app) emit(outs []string) error {
	text := strings.Join(outs, "\n")
	if a.cfg.output == "" || a.cfg.diff {
		if _, err := io.WriteString(a.stdout, text); err != nil {
			return errors.Tag(err, "write output")
		}
		return nil
	}
	if err := os.WriteFile(a.cfg.output, []byte(text), 0o644); err != nil {
		return errors.Tag(err, "write "+a.cfg.output)
	}
	a.log.Debug("wrote output", zap.String("path", a.cfg.output))
	return nil
}

// report prints each error, with the offending line for syntax errors.
func (a *app) report(err error) {
	var merged *errors.MergedError
	errs := []error{err}
	if errors.As(err, &merged) {
		errs = merged.Errors()
	}
	for _, err := range errs {
		fmt.Fprintf(a.stderr, "pcss: %v\n", err)
		var syntax *errors.SyntaxError
		if errors.As(err, &syntax) {
			if snippet := syntax.Snippet(); snippet != "" {
				fmt.Fprintln(a.stderr, snippet)
			}
		}
	}
}
