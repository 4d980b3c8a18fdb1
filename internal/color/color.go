package color

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is the canonical color value. The R, G, B fields are the source of truth;
// every other notation is derived from them on demand.
//
// Channels are plain ints and are not clamped on construction: a literal such as
// rgb(999, 0, 0) keeps its captured value. Only Hex (and callers that need a
// displayable color) clamp.
type Color struct {
	R, G, B int

	// A is the alpha channel in [0, 1]. It is only meaningful when HasAlpha is set.
	A        float64
	HasAlpha bool
}

// RGB returns an opaque Color.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b}
}

// WithAlpha returns a copy of c carrying the given alpha channel.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	c.HasAlpha = true
	return c
}

// ParseHex parses a 3- or 6-digit hex color, with or without leading #.
// The short form is expanded by digit duplication ("abc" -> "aabbcc").
func ParseHex(s string) (Color, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(digits) {
	case 3:
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q: must be 3 or 6 hex digits", s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{
		R: int(v >> 16 & 0xff),
		G: int(v >> 8 & 0xff),
		B: int(v & 0xff),
	}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is meant for package-level tables built from known-good literals.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as a lowercase 6-digit hex string with leading #, e.g. "#eb6f92".
// Each channel is clamped to [0, 255] first.
func (c Color) Hex() string {
	r, g, b := c.Clamped()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// HexBare returns the color as a hex string without leading #, e.g. "eb6f92".
func (c Color) HexBare() string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// Clamped returns the channels clamped to the displayable [0, 255] range.
func (c Color) Clamped() (r, g, b uint8) {
	return clampByte(c.R), clampByte(c.G), clampByte(c.B)
}

// RGBString returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
// Channels are printed as captured, without clamping.
func (c Color) RGBString() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBAString returns the color in rgba() notation. Colors without an alpha
// channel are rendered fully opaque.
func (c Color) RGBAString() string {
	a := 1.0
	if c.HasAlpha {
		a = c.A
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(a, 'f', -1, 64))
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
