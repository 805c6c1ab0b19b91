package parser

import (
	"github.com/sebastien/pythoniccss/internal/lexer"
	"github.com/sebastien/pythoniccss/internal/parser/ast"
)

// Precedence represents the priority of an infix operator.
//
// PRECEDENCE RULES (from lowest to highest):
// 0. Term (+, -)
// 1. Factor (*, /, %)
//
// Operators of equal precedence associate to the left.
type Precedence int

const (
	PrecTerm   Precedence = iota // +, -
	PrecFactor                   // *, /, %
)

// getPrecedence returns the precedence of an infix operator lexeme.
func getPrecedence(op string) Precedence {
	switch op {
	case "*", "/", "%":
		return PrecFactor
	default:
		return PrecTerm
	}
}

// combine joins left and the already-parsed right-hand expression with op.
//
// The grammar is right-recursive, so `4 * 10 + 5` arrives as
// op="*", left=4, right=(10 + 5). combine rotates op down the left spine
// of right for as long as op binds at least as tightly as the operator it
// meets, leaving an empty left slot at the bottom, then fills that slot
// with left:
//
//	4 * (10 + 5)  ->  (_ * 10) + 5  ->  (4 * 10) + 5
//
// Parenthesized expressions are opaque and never rotated into.
func combine(op string, pos lexer.Position, left, right ast.Expr) ast.Expr {
	tree := rotate(op, pos, right)
	fillHole(tree, left)
	return tree
}

// rotate returns a tree equivalent to `_ op right` where `_` is a nil
// Left slot on the leftmost spine.
func rotate(op string, pos lexer.Position, right ast.Expr) *ast.Binary {
	if b, ok := right.(*ast.Binary); ok && getPrecedence(op) >= getPrecedence(b.Op) {
		b.Left = rotate(op, pos, b.Left)
		return b
	}
	return &ast.Binary{At: ast.At{Position: pos}, Op: op, Right: right}
}

// fillHole walks down the left spine and fills the empty Left slot.
func fillHole(tree *ast.Binary, left ast.Expr) {
	for tree.Left != nil {
		next, ok := tree.Left.(*ast.Binary)
		if !ok {
			return
		}
		tree = next
	}
	tree.Left = left
}
