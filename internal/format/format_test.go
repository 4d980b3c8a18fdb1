package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/huescan/internal/parser"
)

func TestTooltip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "named color shows hex",
			input: "tomato",
			expected: `Color: tomato
HEX: #ff6347
RGB: rgb(255, 99, 71)
HSL: hsl(9, 100%, 64%)
HSV: hsv(9, 72%, 100%)
CMYK: cmyk(0%, 61%, 72%, 0%)`,
		},
		{
			name:  "hex omits hex",
			input: "#ff0000",
			expected: `Color: #ff0000
RGB: rgb(255, 0, 0)
HSL: hsl(0, 100%, 50%)
HSV: hsv(0, 100%, 100%)
CMYK: cmyk(0%, 100%, 100%, 0%)`,
		},
		{
			name:  "rgba omits rgb",
			input: "rgba(255, 0, 0, 0.5)",
			expected: `Color: rgba(255, 0, 0, 0.5)
HEX: #ff0000
HSL: hsl(0, 100%, 50%)
HSV: hsv(0, 100%, 100%)
CMYK: cmyk(0%, 100%, 100%, 0%)`,
		},
		{
			name:  "hsb omits hsv",
			input: "hsb(0, 100%, 100%)",
			expected: `Color: hsb(0, 100%, 100%)
HEX: #ff0000
RGB: rgb(255, 0, 0)
HSL: hsl(0, 100%, 50%)
CMYK: cmyk(0%, 100%, 100%, 0%)`,
		},
		{
			name:  "black cmyk",
			input: "rgb(0, 0, 0)",
			expected: `Color: rgb(0, 0, 0)
HEX: #000000
HSL: hsl(0, 0%, 0%)
HSV: hsv(0, 0%, 0%)
CMYK: cmyk(0%, 0%, 0%, 100%)`,
		},
		{
			name:     "label only for lab",
			input:    "lab(50%, 10, 10)",
			expected: "Color: lab(50%, 10, 10)\nFormat: LAB",
		},
		{
			name:     "label only for ycbcr",
			input:    "ycbcr(1, 2, 3)",
			expected: "Color: ycbcr(1, 2, 3)\nFormat: YCbCr",
		},
		{
			name:     "label for rejected fields",
			input:    "hsl(1, 2, 3)",
			expected: "Color: hsl(1, 2, 3)\nFormat: HSL",
		},
		{
			name:     "unknown text",
			input:    "banana",
			expected: "Color: banana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tooltip(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Tooltip(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLinesKeepSourceValues(t *testing.T) {
	lines := Lines("cmyk(0%, 53%, 38%, 8%)")
	for _, l := range lines {
		if l.Label == "CMYK" {
			t.Fatalf("cmyk literal should not list a CMYK conversion, got %v", lines)
		}
	}
	if lines[0] != (Line{"HEX", "#eb6e91"}) {
		t.Errorf("first line = %v, want HEX #eb6e91", lines[0])
	}
}

func TestLinesOutOfRangeAreFinite(t *testing.T) {
	want := Line{"HSL", "hsl(0, 0%, 100%)"}
	lines := Lines("rgb(510, 0, 0)")
	for _, l := range lines {
		if l.Label == "HSL" {
			if l != want {
				t.Errorf("HSL line = %v, want %v", l, want)
			}
			return
		}
	}
	t.Errorf("no HSL line in %v", lines)
}

func TestTooltipOf(t *testing.T) {
	for _, text := range []string{"tomato", "#abc", "rgba(255, 0, 0, 0.5)", "cmyk(0%, 53%, 38%, 8%)", "lab(50, 20, 30)", "banana"} {
		t.Run(text, func(t *testing.T) {
			conv, _ := parser.Parse(text)
			if diff := cmp.Diff(Tooltip(text), TooltipOf(text, conv)); diff != "" {
				t.Errorf("TooltipOf mismatch (-Tooltip +TooltipOf):\n%s", diff)
			}
		})
	}
}

func TestMarkdown(t *testing.T) {
	got := Markdown("#ff0000")

	if !strings.HasPrefix(got, "**Color:** `#ff0000`\n") {
		t.Errorf("Markdown() header = %q", got)
	}
	if !strings.Contains(got, "- **RGB:** `rgb(255, 0, 0)`") {
		t.Errorf("Markdown() missing RGB line:\n%s", got)
	}
	if strings.Contains(got, "**HEX:**") {
		t.Errorf("Markdown() should omit HEX for a hex literal:\n%s", got)
	}
}
