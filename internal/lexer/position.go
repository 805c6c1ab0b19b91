// Package lexer splits PCSS source into indented logical lines and
// tokenizes each line for the parser.
package lexer

import "strconv"

// Position represents a location in the source code.
//
// Position is a value type: it is small, immutable once created, and its
// zero value stands for "no position".
type Position struct {
	// Filename is the name of the source file.
	Filename string

	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column, counted in runes from the start of the
	// physical line (tabs included).
	Column int

	// Offset is the 0-based byte offset from the start of the file.
	Offset int
}

// String returns "filename:line:column".
func (p Position) String() string {
	return p.Filename + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes before other. Positions compare by offset.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether p comes after other.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// Advance returns the position moved forward on the same line.
func (p Position) Advance(runes, bytes int) Position {
	p.Column += runes
	p.Offset += bytes
	return p
}

// Span represents a range in the source code from Start to End.
type Span struct {
	Start Position
	End   Position
}

// String returns "filename:line:col-col" for single-line spans and
// "filename:line:col-line:col" otherwise.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return s.Start.Filename + ":" + strconv.Itoa(s.Start.Line) + ":" +
			strconv.Itoa(s.Start.Column) + "-" + strconv.Itoa(s.End.Column)
	}
	return s.Start.String() + "-" + strconv.Itoa(s.End.Line) + ":" + strconv.Itoa(s.End.Column)
}

// IsValid reports whether both ends are valid and ordered.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() && !s.End.Before(s.Start)
}

// Contains reports whether pos lies within the span (inclusive).
func (s Span) Contains(pos Position) bool {
	return !pos.Before(s.Start) && !pos.After(s.End)
}

// Length returns the number of bytes covered by the span.
func (s Span) Length() int {
	if !s.IsValid() {
		return 0
	}
	return s.End.Offset - s.Start.Offset
}
