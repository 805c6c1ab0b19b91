// Package errors provides the error kinds raised while compiling PCSS.
//
// Three domain kinds exist:
//   - SyntaxError: the source text does not match the grammar.
//   - SemanticError: the source parses but cannot be given a meaning
//     (unknown macro, unresolvable import, incompatible units, cycles).
//   - ImplementationError: an operation the compiler does not support.
//
// Errors travel with their tags: Tag wraps a cause with a short context
// message, and GetCause digs the domain error back out.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	New = errors.New
	As  = errors.As
	Is  = errors.Is
)

type Causer interface {
	Cause() error
}

// SyntaxError reports text that does not match the grammar.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Excerpt string
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.File, e.Line, e.Column, e.Msg)
}

// Snippet renders the failing line with a caret under the offending column.
func (e *SyntaxError) Snippet() string {
	if e.Excerpt == "" {
		return ""
	}
	col := e.Column - 1
	if col < 0 {
		col = 0
	}
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(e.Excerpt)
	b.WriteString("\n  ")
	for i, r := range e.Excerpt {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	return b.String()
}

// SemanticError reports well-formed source that has no meaning.
type SemanticError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *SemanticError) Error() string {
	if e.File == "" && e.Line == 0 {
		return "semantic error: " + e.Msg
	}
	return fmt.Sprintf("%s:%d:%d: semantic error: %s", e.File, e.Line, e.Column, e.Msg)
}

// ImplementationError reports an operation that is not supported.
type ImplementationError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *ImplementationError) Error() string {
	if e.File == "" && e.Line == 0 {
		return "not implemented: " + e.Msg
	}
	return fmt.Sprintf("%s:%d:%d: not implemented: %s", e.File, e.Line, e.Column, e.Msg)
}

func Semanticf(format string, args ...interface{}) *SemanticError {
	return &SemanticError{Msg: fmt.Sprintf(format, args...)}
}

func Unsupportedf(format string, args ...interface{}) *ImplementationError {
	return &ImplementationError{Msg: fmt.Sprintf(format, args...)}
}

func IsSyntaxError(err error) bool {
	var e *SyntaxError
	return errors.As(err, &e)
}

func IsSemanticError(err error) bool {
	var e *SemanticError
	return errors.As(err, &e)
}

func IsImplementationError(err error) bool {
	var e *ImplementationError
	return errors.As(err, &e)
}

type MergedError struct {
	errors []error
}

func (m *MergedError) Error() string {
	if len(m.errors) == 1 {
		return m.errors[0].Error()
	}
	var b strings.Builder
	b.WriteString("merged: ")
	for i, err := range m.errors {
		if i != 0 {
			b.WriteString(" + ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

func (m *MergedError) Add(err error) {
	if err != nil {
		m.errors = append(m.errors, err)
	}
}

func (m *MergedError) Errors() []error {
	return m.errors
}

func (m *MergedError) Finalize() error {
	if len(m.errors) == 0 {
		return nil
	}
	if len(m.errors) == 1 {
		return m.errors[0]
	}
	return m
}

func Merge(errors ...error) error {
	m := MergedError{}
	for _, err := range errors {
		m.Add(err)
	}
	return m.Finalize()
}

type TaggedError struct {
	msg   string
	cause error
}

func (t *TaggedError) Error() string {
	return t.msg + ": " + t.cause.Error()
}

func (t *TaggedError) Cause() error {
	return t.cause
}

func (t *TaggedError) Unwrap() error {
	return t.cause
}

func Tag(err error, msg string) *TaggedError {
	return &TaggedError{msg: msg, cause: err}
}

func GetCause(err error) error {
	if causer, ok := err.(Causer); ok {
		return GetCause(causer.Cause())
	}
	return err
}
