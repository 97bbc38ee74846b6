package lexer

import (
	"ic10lsp/internal/source"
)

// Cursor tracks a byte position while scanning one line of text.
type Cursor struct {
	line string
	idx  uint32 // line index, stamped into spans
	off  uint32
}

// NewCursor creates a cursor over the given line.
func NewCursor(line string, lineIdx uint32) Cursor {
	return Cursor{line: line, idx: lineIdx}
}

func (c *Cursor) limit() uint32 {
	return source.SafeUint32(len(c.line))
}

// EOL reports whether the cursor has consumed the whole line.
func (c *Cursor) EOL() bool {
	return c.off >= c.limit()
}

// Peek reads the current byte, or 0 at end of line.
func (c *Cursor) Peek() byte {
	if c.EOL() {
		return 0
	}
	return c.line[c.off]
}

// PeekAt reads the byte n positions ahead, or 0 past end of line.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.limit() {
		return 0
	}
	return c.line[c.off+n]
}

// Bump advances one byte and returns what was read.
func (c *Cursor) Bump() byte {
	if c.EOL() {
		return 0
	}
	b := c.line[c.off]
	c.off++
	return b
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOL() && c.line[c.off] == b {
		c.off++
		return true
	}
	return false
}

// Mark remembers a position so a Span can be cut later.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.off)
}

// SpanFrom cuts the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Line: c.idx, Start: uint32(m), End: c.off}
}

// TextFrom returns the scanned text from a mark to the current position.
func (c *Cursor) TextFrom(m Mark) string {
	return c.line[m:Mark(c.off)]
}
