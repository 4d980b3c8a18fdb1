package lsp

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineIndex maps between byte offsets and LSP positions, which count UTF-16
// code units within a line.
type lineIndex struct {
	text       string
	lineStarts []int // byte offset of each line start
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{text: text, lineStarts: starts}
}

// position converts a byte offset to a position.
func (li *lineIndex) position(off int) protocol.Position {
	off = min(max(off, 0), len(li.text))
	line := sort.Search(len(li.lineStarts), func(i int) bool { return li.lineStarts[i] > off }) - 1
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(utf16Len(li.text[li.lineStarts[line]:off])),
	}
}

// offset converts a position to a byte offset. Positions past the end of a
// line clamp to the line end.
func (li *lineIndex) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(li.lineStarts) {
		return len(li.text)
	}
	start := li.lineStarts[line]
	end := len(li.text)
	if line+1 < len(li.lineStarts) {
		end = li.lineStarts[line+1] - 1
	}

	units := 0
	for i, r := range li.text[start:end] {
		if units >= int(pos.Character) {
			return start + i
		}
		units += utf16RuneLen(r)
	}
	return end
}

func (li *lineIndex) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: li.position(start), End: li.position(end)}
}

// text returns the source text covered by r.
func (li *lineIndex) textIn(r protocol.Range) string {
	start, end := li.offset(r.Start), li.offset(r.End)
	if end < start {
		return ""
	}
	return li.text[start:end]
}

func utf16RuneLen(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16RuneLen(r)
	}
	return n
}

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// wordBefore returns the color-literal prefix that ends at off: letters,
// digits and a leading '#'.
func wordBefore(text string, off int) string {
	start := off
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isWordRune(r) {
			if r == '#' {
				start -= size
			}
			break
		}
		start -= size
	}
	return text[start:off]
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
