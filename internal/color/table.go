// Package color holds the named color table used to resolve bare color
// words, and the HLS conversions behind the color methods.
package color

import (
	"bufio"
	_ "embed"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/sebastien/pythoniccss/internal/errors"
)

//go:embed rgb.txt
var bundled string

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Table maps lowercase color names to their RGB values.
type Table struct {
	colors map[string]RGB
}

// Parse reads a table in the X11 rgb.txt layout: the red, green and blue
// components in three 4-character columns, then the name. Lines starting
// with '!' are comments.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{colors: make(map[string]RGB)}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || line[0] == '!' {
			continue
		}
		if len(line) <= 12 {
			return nil, errors.New("color table line " + strconv.Itoa(n) + ": too short")
		}
		var rgb [3]uint8
		for i := range rgb {
			v, err := strconv.ParseUint(strings.TrimSpace(line[i*4:i*4+4]), 10, 8)
			if err != nil {
				return nil, errors.Tag(err, "color table line "+strconv.Itoa(n))
			}
			rgb[i] = uint8(v)
		}
		name := strings.ToLower(strings.TrimSpace(line[12:]))
		if name == "" {
			return nil, errors.New("color table line " + strconv.Itoa(n) + ": missing name")
		}
		t.colors[name] = RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Tag(err, "read color table")
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the bundled CSS named color table, parsed on first use.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(strings.NewReader(bundled))
		if err != nil {
			panic("color: bundled table: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}

// Lookup returns the color with the given name, ignoring case and
// surrounding whitespace.
func (t *Table) Lookup(name string) (RGB, bool) {
	if t == nil {
		return RGB{}, false
	}
	c, ok := t.colors[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Len returns the number of named colors.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.colors)
}
