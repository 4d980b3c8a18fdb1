package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestLineIndexPosition(t *testing.T) {
	// "😀" is 4 bytes and 2 UTF-16 code units; "é" is 2 bytes and 1 unit.
	li := newLineIndex("a😀b\né#fff\n")

	tests := []struct {
		name string
		off  int
		want protocol.Position
	}{
		{"start", 0, protocol.Position{Line: 0, Character: 0}},
		{"after surrogate pair", 5, protocol.Position{Line: 0, Character: 3}},
		{"line end", 6, protocol.Position{Line: 0, Character: 4}},
		{"second line", 7, protocol.Position{Line: 1, Character: 0}},
		{"after two-byte rune", 9, protocol.Position{Line: 1, Character: 1}},
		{"trailing empty line", 14, protocol.Position{Line: 2, Character: 0}},
		{"clamped", 100, protocol.Position{Line: 2, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := li.position(tt.off); got != tt.want {
				t.Errorf("position(%d) = %v, want %v", tt.off, got, tt.want)
			}
		})
	}
}

func TestLineIndexOffset(t *testing.T) {
	li := newLineIndex("a😀b\né#fff")

	tests := []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{"start", protocol.Position{Line: 0, Character: 0}, 0},
		{"after surrogate pair", protocol.Position{Line: 0, Character: 3}, 5},
		{"past line end", protocol.Position{Line: 0, Character: 40}, 6},
		{"second line", protocol.Position{Line: 1, Character: 1}, 9},
		{"past last line", protocol.Position{Line: 5, Character: 0}, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := li.offset(tt.pos); got != tt.want {
				t.Errorf("offset(%v) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestLineIndexTextIn(t *testing.T) {
	li := newLineIndex("x 😀 #abc\nrgb(1, 2, 3)")

	got := li.textIn(protocol.Range{
		Start: protocol.Position{Line: 0, Character: 5},
		End:   protocol.Position{Line: 0, Character: 9},
	})
	if got != "#abc" {
		t.Errorf("textIn() = %q, want #abc", got)
	}

	got = li.textIn(protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 0, Character: 0},
	})
	if got != "" {
		t.Errorf("textIn() of an inverted range = %q, want empty", got)
	}
}

func TestWordBefore(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"color: tom", "tom"},
		{"color: #ab", "#ab"},
		{"color: #", "#"},
		{"color: ", ""},
		{"x##f", "#f"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := wordBefore(tt.text, len(tt.text)); got != tt.want {
				t.Errorf("wordBefore(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
