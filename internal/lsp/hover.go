package lsp

import (
	"github.com/jsvensson/huescan/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// hover produces a Hover for the color literal under pos, or nil.
func hover(r *scanResult, pos protocol.Position) *protocol.Hover {
	if r == nil {
		return nil
	}

	for _, a := range r.annotations {
		rng := r.lines.rangeOf(a.ByteStart, a.ByteEnd)
		if !posInRange(pos, rng) {
			continue
		}
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: format.Markdown(a.Text),
			},
			Range: &rng,
		}
	}
	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return hover(s.result(string(params.TextDocument.URI)), params.Position), nil
}
