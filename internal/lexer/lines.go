package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/sebastien/pythoniccss/internal/errors"
)

// Line is one non-blank logical line of PCSS source.
//
// Indentation is recorded as data: Indent is the number of leading tabs and
// Text starts right after them. The grammar never looks at Indent; the AST
// builder uses it to nest statements.
type Line struct {
	// Indent is the number of leading tab characters.
	Indent int

	// Text is the line content without indentation or trailing blanks.
	Text string

	// Pos is the position of the first character of Text.
	Pos Position

	// Raw is the full physical line, used for error excerpts.
	Raw string
}

// SplitLines breaks source into logical lines. Blank lines are dropped and
// CRLF line endings are accepted.
//
// RULES:
// - Indent counts the leading tabs. Spaces after them align the text and
//   are dropped.
// - A tab following alignment spaces is a syntax error, except on comment
//   lines.
// - Lines that only contain blanks are skipped.
func SplitLines(filename, source string) ([]Line, error) {
	var lines []Line
	offset := 0
	for number := 1; offset <= len(source); number++ {
		end := strings.IndexByte(source[offset:], '\n')
		var raw string
		if end < 0 {
			raw = source[offset:]
			end = len(source)
		} else {
			end += offset
			raw = source[offset:end]
		}
		raw = strings.TrimSuffix(raw, "\r")
		text := strings.TrimRight(raw, " \t")
		if text != "" {
			indent := 0
			for indent < len(text) && text[indent] == '\t' {
				indent++
			}
			start := indent
			for start < len(text) && text[start] == ' ' {
				start++
			}
			if body := strings.TrimLeft(text, " \t"); isComment(body) {
				start = len(text) - len(body)
			} else if text[start] == '\t' {
				return nil, &errors.SyntaxError{
					File:    filename,
					Line:    number,
					Column:  start + 1,
					Excerpt: raw,
					Msg:     "tab after alignment spaces",
				}
			}
			lines = append(lines, Line{
				Indent: indent,
				Text:   text[start:],
				Pos: Position{
					Filename: filename,
					Line:     number,
					Column:   utf8.RuneCountInString(text[:start]) + 1,
					Offset:   offset + start,
				},
				Raw: raw,
			})
		}
		offset = end + 1
	}
	return lines, nil
}

func isComment(text string) bool {
	if strings.HasPrefix(text, "//") {
		return true
	}
	return text == "#" || strings.HasPrefix(text, "# ") || strings.HasPrefix(text, "#\t")
}
