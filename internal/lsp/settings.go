package lsp

import "encoding/json"

// lspSettings is the envelope clients wrap workspace settings in.
type lspSettings struct {
	Ic10 json.RawMessage `json:"ic10"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	raw := params.Settings
	var envelope lspSettings
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Ic10) > 0 {
		raw = envelope.Ic10
	}
	cfg := s.docs.Config().ApplyJSON(raw)
	if err := cfg.Validate(); err != nil {
		s.logf("rejecting configuration: %v", err)
		return nil
	}
	// Every open document is re-analyzed under the new limits; republish so
	// gated warnings appear or disappear immediately.
	for _, doc := range s.docs.SetConfig(cfg) {
		if err := s.publishFor(doc); err != nil {
			return err
		}
	}
	return nil
}
