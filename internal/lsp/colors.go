package lsp

import (
	"math"

	"github.com/jsvensson/huescan/internal/color"
	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/jsvensson/huescan/internal/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color to protocol floats in [0, 1]. Out-of-range
// channels are clamped.
func colorToLSP(c color.Color) protocol.Color {
	r, g, b := c.Clamped()
	alpha := 1.0
	if c.HasAlpha {
		alpha = c.A
	}
	return protocol.Color{
		Red:   float32(r) / 255.0,
		Green: float32(g) / 255.0,
		Blue:  float32(b) / 255.0,
		Alpha: float32(alpha),
	}
}

// colorFromLSP is the inverse of colorToLSP. Alpha is rounded to two places
// and only kept when below 1.
func colorFromLSP(c protocol.Color) color.Color {
	channel := func(v float32) int {
		return int(math.Round(float64(v) * 255))
	}
	out := color.RGB(channel(c.Red), channel(c.Green), channel(c.Blue))
	if a := math.Round(float64(c.Alpha)*100) / 100; a < 1 {
		out = out.WithAlpha(a)
	}
	return out
}

// documentColors converts a scan result into ColorInformation items.
func documentColors(r *scanResult) []protocol.ColorInformation {
	if r == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(r.annotations))
	for _, a := range r.annotations {
		infos = append(infos, protocol.ColorInformation{
			Range: r.lines.rangeOf(a.ByteStart, a.ByteEnd),
			Color: colorToLSP(a.Color),
		})
	}
	return infos
}

// colorPresentation offers the picked color as hex, rgb and hsl, plus rgba
// when it is translucent. The notation of the text being replaced is offered
// first.
func colorPresentation(original string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	c := colorFromLSP(params.Color)

	type option struct {
		format grammar.Format
		label  string
	}
	options := []option{
		{grammar.HEX, c.Hex()},
		{grammar.RGB, color.RGB(c.R, c.G, c.B).RGBString()},
	}
	if c.HasAlpha {
		options = append(options, option{grammar.RGBA, c.RGBAString()})
	}
	options = append(options, option{grammar.HSL, c.HSL().String()})

	if f, ok := parser.DetectFormat(original); ok {
		for i, o := range options {
			if o.format == f && i > 0 {
				copy(options[1:i+1], options[:i])
				options[0] = o
				break
			}
		}
	}

	out := make([]protocol.ColorPresentation, 0, len(options))
	for _, o := range options {
		out = append(out, protocol.ColorPresentation{
			Label: o.label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: o.label,
			},
		})
	}
	return out
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.result(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(newLineIndex(content).textIn(params.Range), params), nil
}
