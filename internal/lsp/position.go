package lsp

import (
	"unicode/utf8"

	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
)

// utf16RuneLen mirrors unicode/utf16.RuneLen, which requires Go 1.23; the
// build toolchain here is older.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xD800, 0xE000 <= r && r <= 0xFFFF:
		return 1
	case 0x10000 <= r && r <= 0x10FFFF:
		return 2
	default:
		return -1
	}
}

// The protocol counts columns in UTF-16 code units; the analysis core counts
// bytes. Conversion happens at this boundary and nowhere else.

// byteColumn converts a UTF-16 column within lineText to a byte column,
// clamping past-end columns to the line length.
func byteColumn(lineText string, character int) uint32 {
	if character <= 0 {
		return 0
	}
	units := 0
	i := 0
	for i < len(lineText) {
		r, size := utf8.DecodeRuneInString(lineText[i:])
		need := utf16RuneLen(r)
		if need < 0 {
			need = 1
		}
		if units+need > character {
			break
		}
		units += need
		i += size
		if units >= character {
			break
		}
	}
	return source.SafeUint32(i)
}

// utf16Column converts a byte column within lineText to UTF-16 code units.
func utf16Column(lineText string, byteCol uint32) int {
	end := int(byteCol)
	if end > len(lineText) {
		end = len(lineText)
	}
	units := 0
	for i := 0; i < end; {
		r, size := utf8.DecodeRuneInString(lineText[i:])
		need := utf16RuneLen(r)
		if need < 0 {
			need = 1
		}
		units += need
		i += size
	}
	return units
}

// fromProtocol maps a protocol position onto the document. Positions past the
// last line report false.
func fromProtocol(doc *store.Document, pos position) (source.Position, bool) {
	if pos.Line < 0 || pos.Line >= len(doc.Lines) {
		return source.Position{}, false
	}
	line := source.SafeUint32(pos.Line)
	col := byteColumn(doc.Lines[pos.Line].Text, pos.Character)
	return source.Position{Line: line, Col: col}, true
}

// spanToRange maps an internal span back to protocol coordinates.
func spanToRange(doc *store.Document, span source.Span) lspRange {
	lineText := ""
	if line := doc.Line(span.Line); line != nil {
		lineText = line.Text
	}
	lineNo := int(span.Line)
	return lspRange{
		Start: position{Line: lineNo, Character: utf16Column(lineText, span.Start)},
		End:   position{Line: lineNo, Character: utf16Column(lineText, span.End)},
	}
}

// convertChanges rewrites protocol change events into store changes. Each
// event's range is resolved against the text state produced by the events
// before it, matching how the store replays them.
func convertChanges(text string, events []textDocumentContentChangeEvent) []store.Change {
	changes := make([]store.Change, 0, len(events))
	for _, ev := range events {
		if ev.Range == nil {
			changes = append(changes, store.Change{Text: ev.Text})
			text = ev.Text
			continue
		}
		start, startOff := resolvePosition(text, ev.Range.Start)
		end, endOff := resolvePosition(text, ev.Range.End)
		if endOff < startOff {
			end, endOff = start, startOff
		}
		changes = append(changes, store.Change{
			Range: &store.Range{Start: start, End: end},
			Text:  ev.Text,
		})
		text = text[:startOff] + ev.Text + text[endOff:]
	}
	return changes
}

// resolvePosition locates a protocol position in text, returning both the
// internal byte-column position and the flat byte offset.
func resolvePosition(text string, pos position) (source.Position, int) {
	if pos.Line < 0 || pos.Character < 0 {
		return source.Position{}, 0
	}
	lineStart := 0
	line := 0
	for lineStart < len(text) && line < pos.Line {
		if text[lineStart] == '\n' {
			line++
		}
		lineStart++
	}
	if line < pos.Line {
		return source.Position{Line: source.SafeUint32(line), Col: 0}, len(text)
	}
	lineEnd := lineStart
	for lineEnd < len(text) && text[lineEnd] != '\n' {
		lineEnd++
	}
	col := byteColumn(text[lineStart:lineEnd], pos.Character)
	return source.Position{Line: source.SafeUint32(line), Col: col}, lineStart + int(col)
}
