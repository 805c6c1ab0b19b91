package errors

import (
	"strings"
	"testing"
)

func TestKindsSurviveTagging(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		syntax   bool
		semantic bool
		impl     bool
	}{
		{"syntax", &SyntaxError{File: "a.pcss", Line: 1, Column: 2, Msg: "x"}, true, false, false},
		{"semantic", Semanticf("unknown macro %q", "m"), false, true, false},
		{"implementation", Unsupportedf("op %s", "+"), false, false, true},
		{"tagged semantic", Tag(Semanticf("x"), "import b.pcss"), false, true, false},
		{"double tagged", Tag(Tag(&SyntaxError{Msg: "x"}, "b"), "a"), true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSyntaxError(tt.err); got != tt.syntax {
				t.Errorf("IsSyntaxError = %v, want %v", got, tt.syntax)
			}
			if got := IsSemanticError(tt.err); got != tt.semantic {
				t.Errorf("IsSemanticError = %v, want %v", got, tt.semantic)
			}
			if got := IsImplementationError(tt.err); got != tt.impl {
				t.Errorf("IsImplementationError = %v, want %v", got, tt.impl)
			}
		})
	}
}

func TestGetCause(t *testing.T) {
	cause := Semanticf("cycle")
	err := Tag(Tag(cause, "inner"), "outer")
	if got := GetCause(err); got != cause {
		t.Errorf("GetCause() = %v, want %v", got, cause)
	}
	if got := err.Error(); got != "outer: inner: semantic error: cycle" {
		t.Errorf("Error() = %q", got)
	}
}

func TestSyntaxErrorSnippet(t *testing.T) {
	err := &SyntaxError{File: "a.pcss", Line: 3, Column: 5, Excerpt: "a {b", Msg: "unexpected character"}
	want := "  a {b\n      ^"
	if got := err.Snippet(); got != want {
		t.Errorf("Snippet() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(err.Error(), "a.pcss:3:5:") {
		t.Errorf("Error() = %q, want position prefix", err.Error())
	}
}

func TestMerge(t *testing.T) {
	if err := Merge(nil, nil); err != nil {
		t.Errorf("Merge(nil, nil) = %v, want nil", err)
	}
	one := New("one")
	if err := Merge(nil, one); err != one {
		t.Errorf("Merge(nil, one) = %v, want one", err)
	}
	err := Merge(one, New("two"))
	if got := err.Error(); got != "merged: one + two" {
		t.Errorf("Merge().Error() = %q", got)
	}
}
