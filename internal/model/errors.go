package model

import (
	"fmt"

	"github.com/sebastien/pythoniccss/internal/errors"
	"github.com/sebastien/pythoniccss/internal/lexer"
)

func semanticAt(pos lexer.Position, format string, args ...interface{}) *errors.SemanticError {
	return &errors.SemanticError{
		File:   pos.Filename,
		Line:   pos.Line,
		Column: pos.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}
