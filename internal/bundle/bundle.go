// Package bundle compiles stylesheets inside esbuild builds.
//
// The plugin loads .pcss files through the compiler and maps the
// `@import url("x.css")` lines the writer emits back to their x.pcss
// sources, so a whole import graph bundles into one CSS file.
package bundle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/sebastien/pythoniccss/internal/compiler"
	"github.com/sebastien/pythoniccss/internal/errors"
)

// Plugin returns an esbuild plugin compiling .pcss files with c.
func Plugin(c *compiler.Compiler) api.Plugin {
	return api.Plugin{
		Name: "pcss",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{
				Filter: `\.css$`,
			}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				return resolveSource(c, args), nil
			})
			build.OnLoad(api.OnLoadOptions{
				Filter: `\.pcss$`,
			}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return load(c, args)
			})
		},
	}
}

// resolveSource redirects a missing x.css to an existing x.pcss next to
// it. An empty result lets esbuild resolve the path itself.
func resolveSource(c *compiler.Compiler, args api.OnResolveArgs) api.OnResolveResult {
	if strings.Contains(args.Path, "://") {
		return api.OnResolveResult{}
	}
	p := args.Path
	if !filepath.IsAbs(p) {
		p = filepath.Join(args.ResolveDir, p)
	}
	if _, err := c.Loader().Stat(p); err == nil {
		return api.OnResolveResult{}
	}
	src := strings.TrimSuffix(p, ".css") + ".pcss"
	if info, err := c.Loader().Stat(src); err != nil || info.IsDir() {
		return api.OnResolveResult{}
	}
	return api.OnResolveResult{Path: src}
}

func load(c *compiler.Compiler, args api.OnLoadArgs) (api.OnLoadResult, error) {
	out, err := c.CompileFile(args.Path)
	if err != nil {
		return api.OnLoadResult{}, errors.Tag(err, args.Path)
	}
	return api.OnLoadResult{
		Contents:   &out.CSS,
		Loader:     api.LoaderCSS,
		ResolveDir: filepath.Dir(args.Path),
		WatchFiles: out.Dependencies,
	}, nil
}

// Bundle compiles entry and every stylesheet it imports into one CSS
// file.
func Bundle(c *compiler.Compiler, entry string) ([]byte, error) {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return nil, errors.Tag(err, "resolve "+entry)
	}
	r := api.Build(api.BuildOptions{
		AbsWorkingDir: filepath.Dir(abs),
		EntryPoints:   []string{abs},
		Bundle:        true,
		Write:         false,
		LogLevel:      api.LogLevelSilent,
		Plugins:       []api.Plugin{Plugin(c)},
	})
	if len(r.Errors) > 0 {
		return nil, messages(r.Errors)
	}
	if len(r.OutputFiles) != 1 {
		return nil, errors.New(fmt.Sprintf("expected one output file, got %d", len(r.OutputFiles)))
	}
	return r.OutputFiles[0].Contents, nil
}

func messages(msgs []api.Message) error {
	errs := make([]error, 0, len(msgs))
	for _, m := range msgs {
		text := m.Text
		if m.Location != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", m.Location.File, m.Location.Line, m.Location.Column, text)
		}
		errs = append(errs, errors.New(text))
	}
	return errors.Merge(errs...)
}
