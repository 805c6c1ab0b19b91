package compiler

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/sebastien/pythoniccss/internal/builder"
	"github.com/sebastien/pythoniccss/internal/csscheck"
	"github.com/sebastien/pythoniccss/internal/errors"
)

func newCompiler(files fstest.MapFS) *Compiler {
	return New(Options{Loader: builder.FSLoader{FS: files}})
}

func compile(t *testing.T, source string) string {
	t.Helper()
	c := newCompiler(fstest.MapFS{"main.pcss": {Data: []byte(source)}})
	out, err := c.CompileFile("main.pcss")
	if err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}
	if _, err := csscheck.Check(out.CSS); err != nil {
		t.Errorf("output is not valid CSS: %v\n%s", err, out.CSS)
	}
	return out.CSS
}

func assertCSS(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	dmp := diffmatchpatch.New()
	t.Errorf("output mismatch (-want +got):\n%s", dmp.DiffPrettyText(dmp.DiffMain(want, got, false)))
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"color name",
			"div:\n\tcolor: red\n",
			"div {\n  color: #FF0000;\n}\n",
		},
		{
			"bem",
			".btn-:\n\tcolor: blue\n\t-active:\n\t\tcolor: green\n",
			".btn {\n  color: #0000FF;\n}\n\n.btn-active {\n  color: #008000;\n}\n",
		},
		{
			"bem extra class",
			".btn-:\n\t-active.foo:\n\t\tcolor: green\n",
			".btn-active.foo {\n  color: #008000;\n}\n",
		},
		{
			"alignment spaces",
			"div:\n\t  color: red\n  // aligned comment\n\t  width: 1px\n",
			"div {\n  color: #FF0000;\n  width: 1px;\n}\n",
		},
		{
			"unit alias",
			"@unit double = 2px\n.a:\n\twidth: 3double\n",
			".a {\n  width: 6px;\n}\n",
		},
		{
			"precedence",
			".a:\n\tz-index: 4 * 10 + 5\n",
			".a {\n  z-index: 45;\n}\n",
		},
		{
			"unitless operand",
			".a:\n\twidth: 10px + 5\n",
			".a {\n  width: 15px;\n}\n",
		},
		{
			"color methods",
			"accent = #f00\n.a:\n\tcolor: $accent.darken(0.2)\n\tbackground: rgba($accent, 0.5)\n",
			".a {\n  color: #990000;\n  background: rgba(255,0,0,0.50);\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCSS(t, compile(t, tt.source), tt.want)
		})
	}
}

func TestCompile_SelfNarrowing(t *testing.T) {
	tests := []struct {
		ancestor string
		want     string
	}{
		{"div", "div.x"},
		{"#main", "#main.x"},
		{".a.b", ".a.b.x"},
		{"ul li", "ul li.x"},
	}
	for _, tt := range tests {
		t.Run(tt.ancestor, func(t *testing.T) {
			css := compile(t, tt.ancestor+":\n\t&.x:\n\t\tcolor: red\n")
			assertCSS(t, css, tt.want+" {\n  color: #FF0000;\n}\n")
		})
	}
}

func TestCompile_Prefixes(t *testing.T) {
	css := compile(t, ".a:\n\ttransform: rotate(5deg)\n")
	var lines []string
	for _, line := range strings.Split(css, "\n") {
		if strings.Contains(line, "transform:") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	want := []string{
		"transform: rotate(5deg);",
		"-moz-transform: rotate(5deg);",
		"-webkit-transform: rotate(5deg);",
		"-o-transform: rotate(5deg);",
		"-ms-transform: rotate(5deg);",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("prefixed lines = %q, want %q", lines, want)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		files  fstest.MapFS
		check  func(error) bool
		substr string
	}{
		{
			"incompatible units",
			fstest.MapFS{"main.pcss": {Data: []byte(".a:\n\twidth: 10px + 5em\n")}},
			errors.IsSemanticError,
			"Incompatible unit types",
		},
		{
			"string arithmetic",
			fstest.MapFS{"main.pcss": {Data: []byte(".a:\n\tcontent: \"a\" + 1\n")}},
			errors.IsImplementationError,
			"main.pcss:2:",
		},
		{
			"self import",
			fstest.MapFS{"main.pcss": {Data: []byte("@import main\n")}},
			errors.IsSemanticError,
			"main",
		},
		{
			"syntax",
			fstest.MapFS{"main.pcss": {Data: []byte("div:\n\tcolor: ;\n")}},
			errors.IsSyntaxError,
			"main.pcss",
		},
		{
			"missing file",
			fstest.MapFS{},
			func(err error) bool { return err != nil && !errors.IsSemanticError(err) },
			"main.pcss",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newCompiler(tt.files).CompileFile("main.pcss")
			if out != nil {
				t.Errorf("CompileFile() returned partial output")
			}
			if !tt.check(err) || !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("CompileFile() error = %v, want one mentioning %q", err, tt.substr)
			}
		})
	}
}

func TestCompile_Dependencies(t *testing.T) {
	files := fstest.MapFS{
		"main.pcss":       {Data: []byte("@import base\n.a:\n\t@include parts/body\n")},
		"base.pcss":       {Data: []byte("gap = 4px\n.base:\n\tmargin: 0\n")},
		"parts/body.pcss": {Data: []byte("padding: $gap\n")},
	}
	out, err := newCompiler(files).CompileFile("main.pcss")
	if err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}
	assertCSS(t, out.CSS, "@import url(\"base.css\");\n\n.a {\n  padding: 4px;\n}\n")
	want := []string{"/base.pcss", "/parts/body.pcss"}
	if strings.Join(out.Dependencies, ",") != strings.Join(want, ",") {
		t.Errorf("Dependencies = %v, want %v", out.Dependencies, want)
	}
	if out.Profile.Total() < 0 {
		t.Errorf("Profile.Total() = %v", out.Profile.Total())
	}
}

func TestCompile_Stages(t *testing.T) {
	c := newCompiler(fstest.MapFS{})
	res, err := c.Parse("inline.pcss", []byte(".a:\n\twidth: 1px\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tree, err := c.Build(res)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	first, err := c.Render(tree)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, _ := c.Render(tree)
	if first != second {
		t.Errorf("Render() is not repeatable:\n%s\n%s", first, second)
	}
	out, err := c.CompileString("inline.pcss", ".a:\n\twidth: 1px\n")
	if err != nil || out.CSS != first {
		t.Errorf("CompileString() = %v, %v, want %q", out, err, first)
	}
}

func TestCompile_Concurrent(t *testing.T) {
	files := fstest.MapFS{"lib.pcss": {Data: []byte("gap = 2px\n")}}
	for i := 0; i < 8; i++ {
		src := fmt.Sprintf("@import lib\n.f%d:\n\tmargin: $gap * %d\n", i, i)
		files[fmt.Sprintf("f%d.pcss", i)] = &fstest.MapFile{Data: []byte(src)}
	}
	c := newCompiler(files)
	outs := make([]string, 8)
	var g errgroup.Group
	g.SetLimit(4)
	for i := range outs {
		g.Go(func() error {
			out, err := c.CompileFile(fmt.Sprintf("f%d.pcss", i))
			if err != nil {
				return err
			}
			outs[i] = out.CSS
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("CompileFile() error = %v", err)
	}
	for i, css := range outs {
		want := fmt.Sprintf("@import url(\"lib.css\");\n\n.f%d {\n  margin: %dpx;\n}\n", i, 2*i)
		assertCSS(t, css, want)
	}
}
