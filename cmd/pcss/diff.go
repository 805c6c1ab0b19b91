package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/sebastien/pythoniccss/internal/errors"
)

var dmp = diffmatchpatch.New()

func init() {
	dmp.DiffTimeout = 100 * time.Millisecond
}

// contextLines is the number of unchanged lines kept around a change.
const contextLines = 3

// diffSibling diffs css against the .css file next to the source. A
// missing file diffs as empty.
func diffSibling(file, css string) (string, error) {
	target := strings.TrimSuffix(file, ".pcss") + ".css"
	before, err := os.ReadFile(target)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.Tag(err, "read "+target)
	}
	return lineDiff(target, file, string(before), css), nil
}

// lineDiff returns a line based diff of before and after, or "" when
// they are equal. Long unchanged runs are cut down to their context.
func lineDiff(oldName, newName, before, after string) string {
	if before == after {
		return ""
	}
	var enc lineEncoder
	a, b := enc.encode(before), enc.encode(after)
	diffs := dmp.DiffMainRunes(a, b, false)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", oldName, newName)
	for i, d := range diffs {
		text := enc.decode(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writeLines(&sb, "+", text)
		case diffmatchpatch.DiffDelete:
			writeLines(&sb, "-", text)
		case diffmatchpatch.DiffEqual:
			var head, tail []string
			if i > 0 {
				head = text[:min(contextLines, len(text))]
			}
			if i < len(diffs)-1 {
				tail = text[max(0, len(text)-contextLines):]
			}
			if len(head)+len(tail) >= len(text) {
				writeLines(&sb, " ", text)
				continue
			}
			writeLines(&sb, " ", head)
			if len(tail) > 0 {
				sb.WriteString("@@\n")
				writeLines(&sb, " ", tail)
			}
		}
	}
	return sb.String()
}

// lineEncoder maps every distinct line to one rune so that a rune diff is
// a line diff. Surrogate code points are skipped since they do not survive
// the string conversions done by the diff.
type lineEncoder struct {
	lines []string
	index map[string]rune
}

func (e *lineEncoder) encode(text string) []rune {
	if e.index == nil {
		e.index = make(map[string]rune)
	}
	var out []rune
	for _, line := range splitLines(text) {
		r, ok := e.index[line]
		if !ok {
			r = lineRune(len(e.lines))
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		out = append(out, r)
	}
	return out
}

func (e *lineEncoder) decode(text string) []string {
	var out []string
	for _, r := range text {
		out = append(out, e.lines[lineIndex(r)])
	}
	return out
}

const surrogates = 0xE000 - 0xD800

func lineRune(i int) rune {
	if i >= 0xD800 {
		return rune(i + surrogates)
	}
	return rune(i)
}

func lineIndex(r rune) int {
	if r >= 0xE000 {
		return int(r) - surrogates
	}
	return int(r)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func writeLines(sb *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
}
