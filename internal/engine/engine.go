// Package engine runs the scan-then-parse pipeline that turns buffer text into
// annotations, and renders scan reports.
package engine

import (
	"github.com/jsvensson/huescan/internal/format"
	"github.com/jsvensson/huescan/internal/parser"
	"github.com/jsvensson/huescan/internal/scanner"
)

// Annotation is one decorated literal: where it is, what color to paint, and
// what to show on hover.
type Annotation struct {
	scanner.Match

	// Conversion is nil when the literal has no canonical conversion
	// (lab, lch, yuv, ycbcr, or fields the strict pattern rejected).
	Conversion *parser.Conversion

	Tooltip string

	// Line and Column are 1-based; Column counts characters.
	Line, Column int
}

// Engine annotates text with a fixed composite pattern.
type Engine struct {
	Pattern *scanner.Pattern
}

// New returns an Engine for the given pattern.
func New(p *scanner.Pattern) *Engine {
	return &Engine{Pattern: p}
}

// Annotate scans text and parses every match.
func (e *Engine) Annotate(text string) []Annotation {
	matches := e.Pattern.Scan(text)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Annotation, 0, len(matches))
	pos := newLineCounter(text)
	for _, m := range matches {
		conv, _ := parser.Parse(m.Text)
		line, col := pos.at(m.ByteStart, m.Start)
		out = append(out, Annotation{
			Match:      m,
			Conversion: conv,
			Tooltip:    format.TooltipOf(m.Text, conv),
			Line:       line,
			Column:     col,
		})
	}
	return out
}

// UniqueHexes returns the canonical hex of every annotation, deduplicated, in
// order of first appearance.
func UniqueHexes(annotations []Annotation) []string {
	seen := make(map[string]bool, len(annotations))
	var out []string
	for _, a := range annotations {
		hex := a.Color.Hex()
		if seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
	}
	return out
}

// lineCounter maps ascending offsets to line and column without rescanning
// from the start for each match.
type lineCounter struct {
	text      string
	byteOff   int
	line      int
	lineStart int // character offset of the current line start
	charOff   int
}

func newLineCounter(text string) *lineCounter {
	return &lineCounter{text: text, line: 1}
}

func (lc *lineCounter) at(byteOff, charOff int) (line, col int) {
	chars := lc.charOff
	for _, r := range lc.text[lc.byteOff:byteOff] {
		chars++
		if r == '\n' {
			lc.line++
			lc.lineStart = chars
		}
	}
	lc.byteOff, lc.charOff = byteOff, charOff
	return lc.line, charOff - lc.lineStart + 1
}
