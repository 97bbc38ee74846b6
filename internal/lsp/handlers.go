package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"ic10lsp/internal/features"
	"ic10lsp/internal/source"
	"ic10lsp/internal/store"
	"ic10lsp/internal/symbols"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params hoverParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, nil)
	}
	pos, ok := fromProtocol(doc, params.Position)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	result, ok := features.HoverAt(doc, pos)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	rng := spanToRange(doc, result.Range)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: strings.Join(result.Contents, "\n\n")},
		Range:    &rng,
	})
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, nil)
	}
	pos, ok := fromProtocol(doc, params.Position)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	items := features.Completion(doc, pos)
	out := make([]completionItem, 0, len(items))
	for i, item := range items {
		conv := completionItem{
			Label:  item.Label,
			Kind:   convertCompletionKind(item.Kind),
			Detail: item.Detail,
			// Providers emit the most relevant group first; pin that order.
			SortText: fmt.Sprintf("%05d", i),
		}
		if item.Doc != "" {
			conv.Documentation = &markupContent{Kind: "markdown", Value: item.Doc}
		}
		out = append(out, conv)
	}
	return s.sendResponse(msg.ID, completionList{Items: out})
}

func convertCompletionKind(kind features.CompletionKind) int {
	switch kind {
	case features.CompleteMnemonic:
		return completionKindFunction
	case features.CompleteKeyword:
		return completionKindKeyword
	case features.CompleteRegister, features.CompleteDevice, features.CompleteAlias:
		return completionKindVariable
	case features.CompleteLogicType:
		return completionKindEnum
	case features.CompleteLabel:
		return completionKindValue
	case features.CompleteDefine:
		return completionKindConstant
	}
	return completionKindText
}

func (s *Server) handleSignatureHelp(msg *rpcMessage) error {
	var params signatureHelpParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, nil)
	}
	pos, ok := fromProtocol(doc, params.Position)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	info, ok := features.SignatureHelp(doc, pos)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	sig := signatureInformation{Label: info.Label}
	if info.Doc != "" {
		sig.Documentation = &markupContent{Kind: "markdown", Value: info.Doc}
	}
	for _, p := range info.Params {
		sig.Parameters = append(sig.Parameters, parameterInformation{Label: [2]uint32{p.Start, p.End}})
	}
	return s.sendResponse(msg.ID, signatureHelp{
		Signatures:      []signatureInformation{sig},
		ActiveSignature: 0,
		ActiveParameter: info.Active,
	})
}

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params definitionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, nil)
	}
	pos, ok := fromProtocol(doc, params.Position)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	span, ok := features.Definition(doc, pos)
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, locationFor(doc, span))
}

func locationFor(doc *store.Document, span source.Span) location {
	return location{URI: doc.URI, Range: spanToRange(doc, span)}
}

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, nil)
	}
	entries := features.Outline(doc)
	out := make([]documentSymbol, 0, len(entries))
	for _, e := range entries {
		rng := spanToRange(doc, e.Span)
		out = append(out, documentSymbol{
			Name:           e.Name,
			Detail:         e.Detail,
			Kind:           convertSymbolKind(e.Kind),
			Range:          rng,
			SelectionRange: rng,
		})
	}
	return s.sendResponse(msg.ID, out)
}

func convertSymbolKind(kind symbols.Kind) int {
	switch kind {
	case symbols.KindLabel:
		return symbolKindFunction
	case symbols.KindDefine:
		return symbolKindConstant
	}
	return symbolKindVariable
}
