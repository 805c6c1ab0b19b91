// Package ast defines the parse tree produced by the PCSS parser.
//
// The parse tree is generic: one statement per source line, in source
// order, each carrying the indentation depth it was written at. Nesting is
// not represented here; the builder package reduces the flat statement list
// into the typed model.
//
// Every node reports its grammar rule through Rule(), which is what the
// --json dump prints.
package ast

import (
	"github.com/sebastien/pythoniccss/internal/lexer"
)

// Node is the base interface for all parse tree nodes.
type Node interface {
	// Pos returns the starting position of this node in the source.
	Pos() lexer.Position

	// Rule returns the name of the grammar rule that produced the node.
	Rule() string
}

// Stmt is one logical line.
type Stmt interface {
	Node

	// Depth returns the indentation depth (leading tab count) of the line.
	Depth() int

	stmtNode()
}

// Expr is a value expression.
type Expr interface {
	Node
	exprNode()
}

// Line holds what every statement shares: where it starts and how deep it
// is indented.
type Line struct {
	Position lexer.Position
	Indent   int
}

func (l Line) Pos() lexer.Position { return l.Position }
func (l Line) Depth() int          { return l.Indent }
func (Line) stmtNode()             {}
