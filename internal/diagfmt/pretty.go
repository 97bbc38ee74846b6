package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ic10lsp/internal/diag"
	"ic10lsp/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noteColor    = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgBlue)
)

// Pretty formats diagnostics human-readably. Walks bag.Items() (the bag is
// expected to be sorted) and prints, per diagnostic:
//
//	<path>:<line>:<col>: <SEV> <code>: <message>
//
// followed by the source line with a ^~~~ underline, then any notes in the
// same shape. Lines and columns print 1-based.
func Pretty(w io.Writer, path string, lines []string, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		sev := severityLabel(d.Severity, opts.Color)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			path, d.Primary.Line+1, d.Primary.Start+1, sev, d.Code.Tag(), d.Message)
		if opts.Context {
			printContext(w, lines, d.Primary, opts.Color)
		}
		if opts.ShowNotes {
			for _, note := range d.Notes {
				label := "note"
				if opts.Color {
					label = noteColor.Sprint(label)
				}
				fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
					path, note.Span.Line+1, note.Span.Start+1, label, note.Msg)
				if opts.Context {
					printContext(w, lines, note.Span, opts.Color)
				}
			}
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	if sev == diag.SevError {
		return errorColor.Sprint(label)
	}
	return warningColor.Sprint(label)
}

// printContext shows the source line and underlines the span. The underline
// is aligned by display width so tabs and wide runes do not skew the carets.
func printContext(w io.Writer, lines []string, span source.Span, colored bool) {
	if int(span.Line) >= len(lines) {
		return
	}
	text := lines[span.Line]
	gutter := fmt.Sprintf("%4d | ", span.Line+1)
	if colored {
		gutter = gutterColor.Sprint(gutter)
	}
	fmt.Fprintf(w, "%s%s\n", gutter, text)

	start := int(span.Start)
	end := int(span.End)
	if start > len(text) {
		start = len(text)
	}
	if end > len(text) {
		end = len(text)
	}
	pad := runewidth.StringWidth(text[:start])
	width := runewidth.StringWidth(text[start:end])
	if width < 1 {
		width = 1
	}
	underline := "^" + strings.Repeat("~", width-1)
	if colored {
		underline = errorColor.Sprint(underline)
	}
	fmt.Fprintf(w, "     | %s%s\n", strings.Repeat(" ", pad), underline)
}
