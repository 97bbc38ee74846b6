package source

import (
	"fmt"
)

// Span marks a byte-column range on a single line of a document.
// Columns are 0-based byte offsets; End is exclusive.
type Span struct {
	Line  uint32
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.Start, s.End)
}

// Contains reports whether the byte column col on line falls inside the span.
func (s Span) Contains(line, col uint32) bool {
	return s.Line == line && s.Start <= col && col < s.End
}

// Cover extends the span to include other. Spans on different lines are
// left untouched; the language has no multi-line constructs.
func (s Span) Cover(other Span) Span {
	if s.Line != other.Line {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Position is a 0-based line/byte-column pair within a document.
type Position struct {
	Line uint32
	Col  uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p precedes q in document order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}
