package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := run(context.Background(), args, &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pcss", "div:\n\tcolor: red\n")
	b := writeFile(t, dir, "b.pcss", ".b:\n\twidth: 2px * 3\n")

	status, stdout, stderr := runCLI(t, a, b)
	if status != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", status, stderr)
	}
	want := "div {\n  color: #FF0000;\n}\n\n.b {\n  width: 6px;\n}\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	out := filepath.Join(dir, "out.css")
	if status, _, stderr := runCLI(t, "-o", out, "-j", "1", b, a); status != 0 {
		t.Fatalf("run(-o) = %d, stderr:\n%s", status, stderr)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if want := ".b {\n  width: 6px;\n}\n\ndiv {\n  color: #FF0000;\n}\n"; string(got) != want {
		t.Errorf("output file = %q, want %q", got, want)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pcss", ".a:\n\twidth: 1px\n")
	bad := writeFile(t, dir, "bad.pcss", "div:\n\tcolor: ;\n")
	out := filepath.Join(dir, "out.css")

	status, _, stderr := runCLI(t, "--output", out, good, bad)
	if status != 1 {
		t.Errorf("run() = %d, want 1", status)
	}
	if !strings.Contains(stderr, "bad.pcss:2") || !strings.Contains(stderr, "^") {
		t.Errorf("stderr lacks the location and excerpt:\n%s", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("partial output was written")
	}

	if status, _, _ := runCLI(t); status != 2 {
		t.Errorf("run() without files = %d, want 2", status)
	}
	if status, _, _ := runCLI(t, "--nope", good); status != 2 {
		t.Errorf("run() with an unknown flag = %d, want 2", status)
	}
}

func TestRun_WatchStatus(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.pcss", ".a:\n\twidth: 1px\n")
	bad := writeFile(t, dir, "bad.pcss", "div:\n\tcolor: ;\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tests := []struct {
		file string
		want int
	}{
		{good, 0},
		{bad, 1},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.file), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if status := run(ctx, []string{"-watch", "1h", tt.file}, &stdout, &stderr); status != tt.want {
				t.Errorf("run(-watch) = %d, want %d, stderr:\n%s", status, tt.want, stderr.String())
			}
		})
	}
}

func TestRun_Modes(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.pcss", "@import theme\ndiv:\n\tcolor: $accent\n")
	writeFile(t, dir, "vendor/theme.pcss", "accent = #00f\n")
	writeFile(t, dir, "main.css", "div {\n  color: red;\n}\n")
	include := filepath.Join(dir, "vendor")

	tests := []struct {
		name  string
		args  []string
		check func(stdout, stderr string) bool
	}{
		{
			"search path",
			[]string{"-I", include, main},
			func(stdout, _ string) bool { return strings.Contains(stdout, "color: #0000FF;") },
		},
		{
			"json",
			[]string{"--json", "-I", include, main},
			func(stdout, _ string) bool {
				return strings.HasPrefix(stdout, "{") && strings.Contains(stdout, `"statements"`)
			},
		},
		{
			"check",
			[]string{"--check", "-I", include, main},
			func(_, stderr string) bool { return strings.Contains(stderr, "checked") },
		},
		{
			"profile",
			[]string{"--profile", "-I", include, main},
			func(_, stderr string) bool { return strings.Contains(stderr, "profile") },
		},
		{
			"diff",
			[]string{"--diff", "-I", include, main},
			func(stdout, _ string) bool {
				return strings.Contains(stdout, "-  color: red;\n") && strings.Contains(stdout, "+  color: #0000FF;\n")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, stdout, stderr := runCLI(t, tt.args...)
			if status != 0 {
				t.Fatalf("run() = %d, stderr:\n%s", status, stderr)
			}
			if !tt.check(stdout, stderr) {
				t.Errorf("unexpected output:\nstdout:\n%s\nstderr:\n%s", stdout, stderr)
			}
		})
	}
}

func TestLineDiff(t *testing.T) {
	if got := lineDiff("a", "b", "x\n", "x\n"); got != "" {
		t.Errorf("lineDiff(equal) = %q, want empty", got)
	}
	before := "a\n1\n2\n3\n4\n5\n6\n7\n8\nb\n"
	after := "A\n1\n2\n3\n4\n5\n6\n7\n8\nB\n"
	want := "--- old\n+++ new\n-a\n+A\n 1\n 2\n 3\n@@\n 6\n 7\n 8\n-b\n+B\n"
	if got := lineDiff("old", "new", before, after); got != want {
		t.Errorf("lineDiff() = %q, want %q", got, want)
	}
}

func TestLineDiff_ManyLines(t *testing.T) {
	var before, after strings.Builder
	for i := 1; i <= 12; i++ {
		line := fmt.Sprintf("l%d\n", i)
		before.WriteString(line)
		if i == 11 {
			line = "X\n"
		}
		after.WriteString(line)
	}
	want := "--- old\n+++ new\n@@\n l8\n l9\n l10\n-l11\n+X\n l12\n"
	if got := lineDiff("old", "new", before.String(), after.String()); got != want {
		t.Errorf("lineDiff() = %q, want %q", got, want)
	}
}

func TestListFlag(t *testing.T) {
	var l listFlag
	_ = l.Set("a")
	_ = l.Set("b")
	if l.String() != "a,b" {
		t.Errorf("String() = %q, want a,b", l.String())
	}
}
