package lexer

import (
	"testing"
)

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"valid position", Position{Filename: "site.pcss", Line: 42, Column: 15, Offset: 100}, "site.pcss:42:15"},
		{"zero position", Position{}, ":0:0"},
		{"line 1 column 1", Position{Filename: "a.pcss", Line: 1, Column: 1}, "a.pcss:1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.pos.String(); result != tt.expected {
				t.Errorf("Position.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPosition_Ordering(t *testing.T) {
	a := Position{Filename: "a.pcss", Line: 1, Column: 1, Offset: 0}
	b := a.Advance(3, 3)
	if !a.Before(b) || !b.After(a) {
		t.Errorf("expected %v before %v", a, b)
	}
	if b.Column != 4 || b.Offset != 3 {
		t.Errorf("Advance() = %v, want column 4 offset 3", b)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("position compares unequal to itself")
	}
}

func TestSpan(t *testing.T) {
	start := Position{Filename: "a.pcss", Line: 2, Column: 3, Offset: 10}
	tests := []struct {
		name   string
		span   Span
		str    string
		valid  bool
		length int
	}{
		{"single line", Span{start, start.Advance(5, 5)}, "a.pcss:2:3-8", true, 5},
		{"multi line", Span{start, Position{Filename: "a.pcss", Line: 4, Column: 1, Offset: 30}}, "a.pcss:2:3-4:1", true, 20},
		{"reversed", Span{start.Advance(5, 5), start}, "a.pcss:2:8-3", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.span.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.span.Length(); got != tt.length {
				t.Errorf("Length() = %v, want %v", got, tt.length)
			}
		})
	}
	span := Span{start, start.Advance(5, 5)}
	if !span.Contains(start.Advance(2, 2)) {
		t.Errorf("span should contain its interior")
	}
}
