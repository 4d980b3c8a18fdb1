// Package format renders the hover description of a color literal.
package format

import (
	"strings"

	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/jsvensson/huescan/internal/parser"
)

// Line is one labeled conversion, such as {"HSL", "hsl(9, 100%, 64%)"}.
type Line struct {
	Label string
	Value string
}

// Lines returns the conversions shown for text. The notation the literal was
// written in is left out, since the literal already shows it. When text cannot
// be parsed, the result is a single "Format" line naming the detected notation,
// or nothing at all.
func Lines(text string) []Line {
	conv, ok := parser.Parse(text)
	if !ok {
		if f, ok := parser.DetectFormat(text); ok {
			return []Line{{Label: "Format", Value: f.Label()}}
		}
		return nil
	}
	return Conversions(conv)
}

// Conversions lists the lines for an already parsed literal.
func Conversions(conv *parser.Conversion) []Line {
	f := conv.Format
	var lines []Line

	if f != grammar.HEX {
		lines = append(lines, Line{"HEX", conv.Hex})
	}
	if f != grammar.RGB && f != grammar.RGBA {
		lines = append(lines, Line{"RGB", conv.RGB.RGBString()})
	}
	if conv.RGBA != nil && f != grammar.RGBA {
		lines = append(lines, Line{"RGBA", conv.RGBA.RGBAString()})
	}
	if f != grammar.HSL {
		lines = append(lines, Line{"HSL", conv.HSL.String()})
	}
	if f != grammar.HSV && f != grammar.HSB {
		lines = append(lines, Line{"HSV", conv.HSV.String()})
	}
	if f != grammar.CMYK {
		lines = append(lines, Line{"CMYK", conv.CMYK.String()})
	}
	return lines
}

// Tooltip renders the plain-text description of text.
func Tooltip(text string) string {
	return tooltip(text, Lines(text))
}

// TooltipOf is Tooltip for a literal that was already parsed. A nil conv
// falls back to Tooltip.
func TooltipOf(text string, conv *parser.Conversion) string {
	if conv == nil {
		return Tooltip(text)
	}
	return tooltip(text, Conversions(conv))
}

func tooltip(text string, lines []Line) string {
	var b strings.Builder
	b.WriteString("Color: ")
	b.WriteString(text)
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(l.Value)
	}
	return b.String()
}

// Markdown renders the description of text for an LSP hover.
func Markdown(text string) string {
	var b strings.Builder
	b.WriteString("**Color:** `")
	b.WriteString(text)
	b.WriteString("`\n")
	for _, l := range Lines(text) {
		b.WriteString("\n- **")
		b.WriteString(l.Label)
		b.WriteString(":** `")
		b.WriteString(l.Value)
		b.WriteString("`")
	}
	return b.String()
}
