package lsp

import (
	"ic10lsp/internal/diag"
	"ic10lsp/internal/store"
)

// publishFor converts a snapshot's diagnostics and pushes them to the
// client. Publishing is synchronous: by the time didOpen/didChange returns,
// the client holds diagnostics for exactly that version.
func (s *Server) publishFor(doc *store.Document) error {
	list := make([]lspDiagnostic, 0, doc.Diags.Len())
	for _, d := range doc.Diags.Items() {
		list = append(list, s.convertDiagnostic(doc, d))
	}
	s.mu.Lock()
	if len(list) > 0 {
		s.published[doc.URI] = struct{}{}
	} else {
		delete(s.published, doc.URI)
	}
	s.mu.Unlock()
	version := doc.Version
	return s.sendPublish(doc.URI, &version, list)
}

func (s *Server) convertDiagnostic(doc *store.Document, d diag.Diagnostic) lspDiagnostic {
	out := lspDiagnostic{
		Range:    spanToRange(doc, d.Primary),
		Severity: convertSeverity(d.Severity),
		Code:     d.Code.Tag(),
		Source:   "ic10lsp",
		Message:  d.Message,
	}
	for _, note := range d.Notes {
		out.RelatedInformation = append(out.RelatedInformation, diagnosticRelatedInformation{
			Location: location{URI: doc.URI, Range: spanToRange(doc, note.Span)},
			Message:  note.Msg,
		})
	}
	return out
}

func convertSeverity(sev diag.Severity) int {
	if sev == diag.SevError {
		return diagSeverityError
	}
	return diagSeverityWarning
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.sendNotification("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: list,
	})
}

// clearPublished empties diagnostics for every document we ever published
// for, so editors do not keep stale squiggles after shutdown.
func (s *Server) clearPublished() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
