// Package parser turns a single matched color literal into its canonical
// conversion set.
package parser

import (
	"strings"

	"github.com/jsvensson/huescan/internal/color"
	"github.com/jsvensson/huescan/internal/grammar"
)

// Conversion is the canonical conversion set for one literal.
//
// Hex, RGB, HSL, HSV and CMYK are always populated. For hsl, hsv/hsb and cmyk
// literals that field carries the values as written rather than the ones derived
// back from RGB. RGBA is only set when the literal carried an alpha.
type Conversion struct {
	Format grammar.Format
	Source string

	// Name is the keyword as written, for NAMED literals.
	Name string

	Hex  string
	RGB  color.Color
	RGBA *color.Color
	HSL  color.HSL
	HSV  color.HSV
	CMYK color.CMYK
}

// prefixes maps literal prefixes to the format they introduce. Order matters:
// "rgba(" must be tried before "rgb(".
var prefixes = []struct {
	prefix string
	format grammar.Format
}{
	{"#", grammar.HEX},
	{"rgba(", grammar.RGBA},
	{"rgb(", grammar.RGB},
	{"hsl(", grammar.HSL},
	{"hsv(", grammar.HSV},
	{"hsb(", grammar.HSB},
	{"cmyk(", grammar.CMYK},
}

// labelPrefixes extends prefixes with the notations that have no canonical
// conversion, for fallback labels.
var labelPrefixes = []struct {
	prefix string
	format grammar.Format
}{
	{"lab(", grammar.LAB},
	{"lch(", grammar.LCH},
	{"yuv(", grammar.YUV},
	{"ycbcr(", grammar.YCBCR},
}

// Parse detects the notation of text and returns its conversions.
// It returns false when text has no known prefix, or when the prefix matched but
// the fields do not satisfy the strict pattern of that notation.
func Parse(text string) (*Conversion, bool) {
	text = strings.TrimSpace(text)
	if c, ok := color.LookupName(text); ok {
		conv := derive(grammar.NAMED, text, c)
		conv.Name = text
		return conv, true
	}

	lower := strings.ToLower(text)
	for _, p := range prefixes {
		if !strings.HasPrefix(lower, p.prefix) {
			continue
		}
		return parseFields(p.format, text)
	}
	return nil, false
}

func parseFields(f grammar.Format, text string) (*Conversion, bool) {
	fields, ok := grammar.Extract(f, text)
	if !ok {
		return nil, false
	}
	c, err := grammar.Resolve(f, fields)
	if err != nil {
		return nil, false
	}

	conv := derive(f, text, c)

	// Keep the values as written for the source notation.
	switch f {
	case grammar.RGBA:
		rgba := c
		conv.RGBA = &rgba
	case grammar.HSL:
		n, _ := grammar.Ints(fields)
		conv.HSL = color.HSL{H: n[0], S: n[1], L: n[2]}
	case grammar.HSV, grammar.HSB:
		n, _ := grammar.Ints(fields)
		conv.HSV = color.HSV{H: n[0], S: n[1], V: n[2]}
	case grammar.CMYK:
		n, _ := grammar.Ints(fields)
		conv.CMYK = color.CMYK{C: n[0], M: n[1], Y: n[2], K: n[3]}
	}
	return conv, true
}

// derive fills every conversion from the RGB hub.
func derive(f grammar.Format, text string, c color.Color) *Conversion {
	rgb := color.RGB(c.R, c.G, c.B)
	return &Conversion{
		Format: f,
		Source: text,
		Hex:    rgb.Hex(),
		RGB:    rgb,
		HSL:    rgb.HSL(),
		HSV:    rgb.HSV(),
		CMYK:   rgb.CMYK(),
	}
}

// DetectFormat names the notation of text by prefix or keyword, without
// validating its fields. It is used to label literals that Parse rejects.
func DetectFormat(text string) (grammar.Format, bool) {
	text = strings.TrimSpace(text)
	if color.IsName(text) {
		return grammar.NAMED, true
	}
	lower := strings.ToLower(text)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.format, true
		}
	}
	for _, p := range labelPrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.format, true
		}
	}
	return 0, false
}
