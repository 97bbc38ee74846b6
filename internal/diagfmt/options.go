// Package diagfmt renders analysis diagnostics for the command line, either
// human-readable with source context and caret underlines, or as JSON for
// tooling.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context prints the offending source line under each diagnostic.
	Context   bool
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// Max truncates the output, not the bag. Zero means no limit.
	Max          int
	IncludeNotes bool
}
