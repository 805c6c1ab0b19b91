package parser

import (
	"fmt"
	"testing"

	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

func TestGetPrecedence(t *testing.T) {
	tests := []struct {
		op       string
		expected Precedence
	}{
		{"+", PrecTerm},
		{"-", PrecTerm},
		{"*", PrecFactor},
		{"/", PrecFactor},
		{"%", PrecFactor},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			if got := getPrecedence(tt.op); got != tt.expected {
				t.Errorf("getPrecedence(%q) = %v, want %v", tt.op, got, tt.expected)
			}
		})
	}
}

// shape renders an expression tree with explicit grouping.
func shape(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Binary:
		return "(" + shape(v.Left) + " " + v.Op + " " + shape(v.Right) + ")"
	case *ast.Parens:
		return "[" + shape(v.X) + "]"
	case *ast.Number:
		return fmt.Sprintf("%g%s", v.Value, v.Unit)
	case *ast.Ref:
		return "$" + v.Name
	case *ast.Word:
		return v.Value
	default:
		return e.Rule()
	}
}

func TestPrecedenceRepair(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"4 * 10 + 5", "((4 * 10) + 5)"},
		{"5 + 4 * 10", "(5 + (4 * 10))"},
		{"10 - 2 - 3", "((10 - 2) - 3)"},
		{"a - b - c - d", "(((a - b) - c) - d)"},
		{"2 * 3 + 4 * 5", "((2 * 3) + (4 * 5))"},
		{"2 - 3 * 4 + 5", "((2 - (3 * 4)) + 5)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"2 * (3 + 4)", "(2 * [(3 + 4)])"},
		{"(1 + 2) * 3", "([(1 + 2)] * 3)"},
		{"$gap * 2 % 3", "(($gap * 2) % 3)"},
		{"10px + 5", "(10px + 5)"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			e, err := ParseExpression("test.pcss", tt.source)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := shape(e); got != tt.want {
				t.Errorf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}
