/*
Package scanner defines the input cursor used by the parsers of this module.

Terminals of the expression grammar are single characters, thus a cursor
delivers runes. It buffers exactly one rune of lookahead: Peek returns the
next rune without consuming it, Next consumes it. Both report end of input by
returning false; there is no sentinel rune for EOF.

A default cursor, reading from an io.RuneReader, is provided by this package.
An alternative implementation based on lexmachine lives in sub-package
`lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rascent.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("rascent.scanner")
}

// Cursor is the input interface for parsers.
//
// Peek is idempotent: calling it repeatedly without an intervening Next returns
// the same result. After Next or Peek has returned false, every further call
// returns false.
type Cursor interface {
	Peek() (rune, bool)
	Next() (rune, bool)
}

// RuneCursor is the default cursor, reading from an io.RuneReader.
// Create one with NewCursor or FromString.
type RuneCursor struct {
	reader  io.RuneReader
	next    rune  // lookahead, valid if hasNext
	size    int   // byte length of lookahead
	hasNext bool  // lookahead has been read
	isEOF   bool  // reader is exhausted or failed
	err     error // read error other than io.EOF
	offset  int   // bytes consumed
}

var _ Cursor = (*RuneCursor)(nil)

// NewCursor creates a cursor for a rune reader.
func NewCursor(r io.RuneReader) *RuneCursor {
	return &RuneCursor{reader: r}
}

// FromString creates a cursor for an input string.
func FromString(s string) *RuneCursor {
	return NewCursor(strings.NewReader(s))
}

// Peek is part of interface Cursor.
func (c *RuneCursor) Peek() (rune, bool) {
	return c.lookahead()
}

// Next is part of interface Cursor.
func (c *RuneCursor) Next() (rune, bool) {
	r, ok := c.lookahead()
	if ok {
		c.hasNext = false
		c.offset += c.size
	}
	return r, ok
}

// Err returns the read error which ended the input, if any. A regular end of
// input is not an error.
func (c *RuneCursor) Err() error {
	return c.err
}

// Offset returns the number of bytes consumed so far.
func (c *RuneCursor) Offset() int {
	return c.offset
}

func (c *RuneCursor) lookahead() (rune, bool) {
	if c.hasNext {
		return c.next, true
	}
	if c.isEOF {
		return 0, false
	}
	r, size, err := c.reader.ReadRune()
	if err != nil {
		c.isEOF = true
		if err != io.EOF {
			tracer().Errorf("cursor cannot read input: %v", err)
			c.err = err
		}
		return 0, false
	}
	c.next, c.size, c.hasNext = r, size, true
	return r, true
}
