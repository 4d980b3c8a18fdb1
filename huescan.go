// Package huescan finds color literals in text and converts them between
// notations.
package huescan

import (
	"github.com/jsvensson/huescan/internal/format"
	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/jsvensson/huescan/internal/parser"
	"github.com/jsvensson/huescan/internal/scanner"
)

// Match is one color literal found by Scan.
type Match struct {
	// Format is the upper-case notation name, such as "HEX" or "RGBA".
	Format string

	// Start and End are character offsets into the scanned text.
	Start, End int

	Text string
	Hex  string
}

// Conversion is a color literal rendered in every notation huescan converts
// between. RGBA is empty unless the literal carried an alpha channel.
type Conversion struct {
	Format string
	Source string
	Hex    string
	RGB    string
	RGBA   string
	HSL    string
	HSV    string
	CMYK   string
}

// Formats lists every format name Scan accepts.
func Formats() []string {
	return grammar.AllNames()
}

// Scan returns the color literals in text, in order. formats names the
// notations to look for; nil means HEX, RGB, RGBA and HSL. Named colors are
// always matched. Unknown format names make Scan match hex colors only.
func Scan(text string, formats []string) []Match {
	if formats == nil {
		formats = grammar.DefaultSet.Names()
	}

	found := scanner.New(formats).Scan(text)
	matches := make([]Match, 0, len(found))
	for _, m := range found {
		matches = append(matches, Match{
			Format: m.Format.String(),
			Start:  m.Start,
			End:    m.End,
			Text:   m.Text,
			Hex:    m.Color.Hex(),
		})
	}
	return matches
}

// Parse converts a single literal. It returns false when text is not a
// literal of a convertible notation.
func Parse(text string) (*Conversion, bool) {
	conv, ok := parser.Parse(text)
	if !ok {
		return nil, false
	}

	c := &Conversion{
		Format: conv.Format.String(),
		Source: conv.Source,
		Hex:    conv.Hex,
		RGB:    conv.RGB.RGBString(),
		HSL:    conv.HSL.String(),
		HSV:    conv.HSV.String(),
		CMYK:   conv.CMYK.String(),
	}
	if conv.RGBA != nil {
		c.RGBA = conv.RGBA.RGBAString()
	}
	return c, true
}

// Tooltip describes text the way the editor tooltip does.
func Tooltip(text string) string {
	return format.Tooltip(text)
}
