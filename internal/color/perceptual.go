package color

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// The functions in this file only produce a swatch color for notations that have
// no canonical conversion (lab, lch, yuv, ycbcr). They are approximations and
// are never round-tripped.

// FromLab converts CIE L*a*b* (L in percent, a/b in the usual ±128 scale) to a Color.
func FromLab(l, a, b int) Color {
	c := colorful.Lab(float64(l)/100.0, float64(a)/100.0, float64(b)/100.0)
	return fromColorful(c)
}

// FromLCH converts CIE LCh(ab) (L in percent, chroma in the Lab scale, hue in degrees) to a Color.
func FromLCH(l, chroma, h int) Color {
	c := colorful.Hcl(float64(h), float64(chroma)/100.0, float64(l)/100.0)
	return fromColorful(c)
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: int(r), G: int(g), B: int(b)}
}

// FromYUV converts analog BT.601 YUV to a Color. Y is a percentage; U and V are
// signed offsets in the same 0-255 scale as the output channels.
func FromYUV(y, u, v int) Color {
	yf := float64(y) / 100.0 * 255.0
	uf := float64(u)
	vf := float64(v)

	return Color{
		R: int(clampByte(int(math.Round(yf + 1.13983*vf)))),
		G: int(clampByte(int(math.Round(yf - 0.39465*uf - 0.58060*vf)))),
		B: int(clampByte(int(math.Round(yf + 2.03211*uf)))),
	}
}

// FromYCbCr converts full-range (JPEG) YCbCr to a Color. Components are clamped
// to [0, 255] before conversion, so negative cb/cr values saturate.
func FromYCbCr(y, cb, cr int) Color {
	r, g, b := color.YCbCrToRGB(clampByte(y), clampByte(cb), clampByte(cr))
	return Color{R: int(r), G: int(g), B: int(b)}
}
