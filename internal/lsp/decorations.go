package lsp

import (
	"fmt"

	"github.com/jsvensson/huescan/internal/scheduler"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DecorationsMethod is the notification carrying the inline swatches of a
// document after each scan.
const DecorationsMethod = "huescan/decorations"

// Decoration is one swatch.
type Decoration struct {
	Range   protocol.Range `json:"range"`
	Color   string         `json:"color"`
	Format  string         `json:"format"`
	Tooltip string         `json:"tooltip"`
}

type DecorationsParams struct {
	URI         protocol.DocumentUri `json:"uri"`
	Version     protocol.Integer     `json:"version"`
	Truncated   bool                 `json:"truncated"`
	Decorations []Decoration         `json:"decorations"`
}

// publish is the scheduler sink. It caches the result and pushes the
// decorations, plus a diagnostic when only part of the document was scanned.
func (s *Server) publish(res scheduler.Result) {
	r := newScanResult(res)

	s.mu.Lock()
	s.results[res.ID] = r
	notify := s.notify
	s.mu.Unlock()

	if notify == nil {
		return
	}
	notify(DecorationsMethod, decorations(res.ID, r))
	notify(protocol.ServerTextDocumentPublishDiagnostics, diagnostics(res.ID, r))
}

// clearDecorations removes everything published for uri.
func (s *Server) clearDecorations(uri string) {
	s.mu.Lock()
	delete(s.results, uri)
	notify := s.notify
	s.mu.Unlock()

	if notify == nil {
		return
	}
	notify(DecorationsMethod, DecorationsParams{
		URI:         protocol.DocumentUri(uri),
		Decorations: []Decoration{},
	})
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: []protocol.Diagnostic{},
	})
}

func decorations(uri string, r *scanResult) DecorationsParams {
	decs := make([]Decoration, 0, len(r.annotations))
	for _, a := range r.annotations {
		decs = append(decs, Decoration{
			Range:   r.lines.rangeOf(a.ByteStart, a.ByteEnd),
			Color:   a.Color.Hex(),
			Format:  a.Format.Label(),
			Tooltip: a.Tooltip,
		})
	}
	return DecorationsParams{
		URI:         protocol.DocumentUri(uri),
		Version:     protocol.Integer(r.version),
		Truncated:   r.truncated,
		Decorations: decs,
	}
}

func diagnostics(uri string, r *scanResult) protocol.PublishDiagnosticsParams {
	version := protocol.UInteger(r.version)
	params := protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Version:     &version,
		Diagnostics: []protocol.Diagnostic{},
	}
	if !r.truncated {
		return params
	}

	end := r.lines.position(len(r.lines.text))
	severity := protocol.DiagnosticSeverityInformation
	source := serverName
	params.Diagnostics = append(params.Diagnostics, protocol.Diagnostic{
		Range:    protocol.Range{Start: end, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  fmt.Sprintf("large file: colors were only scanned in the first %d characters", r.scannedChars),
	})
	return params
}
