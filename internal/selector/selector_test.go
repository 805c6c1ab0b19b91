package selector

import (
	"testing"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/parser"
)

func mustParse(t *testing.T, text string) *Selector {
	t.Helper()
	sels, err := parser.ParseSelections("test.pcss", text)
	if err != nil {
		t.Fatalf("ParseSelections(%q) error = %v", text, err)
	}
	return FromSelection(sels[0])
}

// nest narrows each selector by the next one, like nested blocks do.
func nest(t *testing.T, texts ...string) *Selector {
	t.Helper()
	sel := mustParse(t, texts[0])
	for _, text := range texts[1:] {
		sel = sel.Narrow(mustParse(t, text), Descendant)
	}
	return sel
}

func TestNarrow_Self(t *testing.T) {
	tests := []struct {
		ancestor string
		want     string
	}{
		{"div", "div.x"},
		{"#main", "#main.x"},
		{".a.b", ".a.b.x"},
		{"ul li", "ul li.x"},
		{"ul > li", "ul > li.x"},
		{"&", "*.x"},
	}
	for _, tt := range tests {
		t.Run(tt.ancestor, func(t *testing.T) {
			if got := nest(t, tt.ancestor, "&.x").Expr(""); got != tt.want {
				t.Errorf("Expr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNarrow(t *testing.T) {
	tests := []struct {
		name  string
		chain []string
		want  string
	}{
		{"descendant", []string{".a", ".b"}, ".a .b"},
		{"leading child", []string{"ul", "> li"}, "ul > li"},
		{"pseudo on self", []string{"a", "&:hover"}, "a:hover"},
		{"merged suffix dedupe", []string{"a:hover", "&:hover"}, "a:hover"},
		{"ancestor swap", []string{".a << .b"}, ".b .a"},
		{"parent swap", []string{".a < .b"}, ".b > .a"},
		{"siblings", []string{"h1", "+ p", "~ span"}, "h1 + p ~ span"},
		{"state", []string{".menu", "&!open"}, `.menu[data-state~="open"]`},
		{"pseudo element", []string{"p", "&::first-line"}, "p::first-line"},
		{"attribute", []string{"a", "&[href^=http]"}, "a[href^=http]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nest(t, tt.chain...).Expr(""); got != tt.want {
				t.Errorf("Expr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNarrow_BEM(t *testing.T) {
	tests := []struct {
		name  string
		chain []string
		want  string
	}{
		{"prefix alone", []string{".btn-"}, ".btn"},
		{"suffix", []string{".btn-", "-active"}, ".btn-active"},
		{"dotted suffix", []string{".btn-", ".-active"}, ".btn-active"},
		{"suffix with class", []string{".btn-", "-active.foo"}, ".btn-active.foo"},
		{"element under prefix", []string{".btn-", "span"}, ".btn span"},
		{"class under prefix", []string{".btn-", ".icon"}, ".btn .icon"},
		{"nested element", []string{".btn-", "-active", "span"}, ".btn-active span"},
		{"prefix with pseudo", []string{".btn-:hover"}, ".btn:hover"},
		{"suffix then self", []string{".btn-", "-active", "&:hover"}, ".btn-active:hover"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nest(t, tt.chain...).Expr(""); got != tt.want {
				t.Errorf("Expr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNarrow_DoesNotMutate(t *testing.T) {
	base := mustParse(t, "ul li")
	addition := mustParse(t, "&.x")
	_ = base.Narrow(addition, Descendant)
	_ = base.Narrow(mustParse(t, "span"), Child)
	if got := base.Expr(""); got != "ul li" {
		t.Errorf("base = %q, want %q", got, "ul li")
	}
	if got := addition.Expr(""); got != "*.x" {
		t.Errorf("addition = %q, want %q", got, "*.x")
	}
}

func TestExpr_Namespace(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{".a", ".use-widgets .a"},
		{"&.x", ".use-widgets .x"},
		{"&[data-x]", ".use-widgets[data-x]"},
		{"ul > li", ".use-widgets ul > li"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := mustParse(t, tt.text).Expr("widgets"); got != tt.want {
				t.Errorf("Expr(widgets) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpr_Idempotent(t *testing.T) {
	chains := [][]string{
		{"div#main.a.b:hover"},
		{".btn-", "-active.foo", "span"},
		{"ul", "> li", "&:first-child"},
		{"a[href^=http]", "&!open"},
		{".nav", "+ .item ~ p::before"},
		{"h1", ".title:not(.x)"},
	}
	for _, chain := range chains {
		first := nest(t, chain...).Expr("")
		t.Run(first, func(t *testing.T) {
			second := mustParse(t, first).Expr("")
			if second != first {
				t.Errorf("re-rendered = %q, want %q", second, first)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		classes []string
		wantErr bool
	}{
		{[]string{"btn-"}, false},
		{[]string{"btn-", "-active"}, false},
		{[]string{"a-", "b-"}, true},
		{[]string{"-a", "-b"}, true},
		{[]string{"-"}, true},
	}
	for _, tt := range tests {
		sel := &Selector{Classes: tt.classes}
		err := sel.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.classes, err, tt.wantErr)
		}
		if err != nil && !errors.IsSemanticError(err) {
			t.Errorf("Validate(%v) error %T is not semantic", tt.classes, err)
		}
	}
}

func TestDepthAndCopy(t *testing.T) {
	sel := mustParse(t, "a b > c")
	if got := sel.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	shallow := sel.Copy(false)
	if shallow.Next != sel.Next {
		t.Errorf("shallow copy should share the chain")
	}
	deep := sel.Copy(true)
	deep.Last().Node = "x"
	if sel.Last().Node != "c" {
		t.Errorf("deep copy leaked into original")
	}
}
