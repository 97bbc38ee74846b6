package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// SplitLines splits document text into lines without terminators.
// CRLF is normalized to LF. Text ending in a newline has a final empty
// line, exactly as editors count lines, so positions on it resolve and
// JoinLines reproduces the text byte for byte. An empty document has one
// line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// SafeUint32 converts a non-negative int to uint32, clamping instead of
// wrapping on overflow.
func SafeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}

// LineCount returns the number of lines as uint32.
func LineCount(lines []string) uint32 {
	return SafeUint32(len(lines))
}

// ClampPosition clips pos to the document bounds described by lines.
func ClampPosition(lines []string, pos Position) (Position, error) {
	if len(lines) == 0 {
		return Position{}, fmt.Errorf("empty document")
	}
	if pos.Line >= LineCount(lines) {
		return Position{}, fmt.Errorf("line %d out of range (document has %d lines)", pos.Line, len(lines))
	}
	lineLen := SafeUint32(len(lines[pos.Line]))
	if pos.Col > lineLen {
		pos.Col = lineLen
	}
	return pos, nil
}
