package color

import (
	"fmt"
	"math"
)

// HSL is a hue/saturation/lightness triple. Hue is in [0, 360), the rest are percentages.
type HSL struct {
	H, S, L int
}

// HSV is a hue/saturation/value triple. HSB uses the same representation.
type HSV struct {
	H, S, V int
}

// CMYK holds cyan, magenta, yellow and key as percentages.
type CMYK struct {
	C, M, Y, K int
}

func (h HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h.H, h.S, h.L)
}

func (h HSV) String() string {
	return fmt.Sprintf("hsv(%d, %d%%, %d%%)", h.H, h.S, h.V)
}

func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c.C, c.M, c.Y, c.K)
}

// normalized returns the channels scaled to [0, 1] (or beyond, for out-of-range input).
func (c Color) normalized() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// hue computes the hue in degrees from normalized channels.
// Achromatic input (max == min) yields 0.
func hue(r, g, b, max, min float64) float64 {
	if max == min {
		return 0
	}
	d := max - min
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
	case g:
		h = (b-r)/d + 2.0
	default:
		h = (r-g)/d + 4.0
	}
	return h * 60.0
}

// roundHue rounds a hue once and folds 360 back to 0.
func roundHue(h float64) int {
	return int(math.Round(h)) % 360
}

// round rounds to the nearest int. Non-finite values, which out-of-range
// channels can produce, round to 0.
func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

// HSL converts the color to HSL.
func (c Color) HSL() HSL {
	r, g, b := c.normalized()
	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	l := (max + min) / 2.0

	var s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2.0 - max - min)
		} else {
			s = d / (max + min)
		}
	}

	return HSL{
		H: roundHue(hue(r, g, b, max, min)),
		S: round(s * 100),
		L: round(l * 100),
	}
}

// FromHSL converts HSL percentages to a Color.
func FromHSL(h, s, l int) Color {
	sf := float64(s) / 100.0
	lf := float64(l) / 100.0

	if sf == 0 {
		v := round(lf * 255)
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if lf < 0.5 {
		q = lf * (1.0 + sf)
	} else {
		q = lf + sf - lf*sf
	}
	p := 2.0*lf - q
	hf := float64(h) / 360.0

	return Color{
		R: round(hueToRGB(p, q, hf+1.0/3.0) * 255),
		G: round(hueToRGB(p, q, hf) * 255),
		B: round(hueToRGB(p, q, hf-1.0/3.0) * 255),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1.0
	}
	if t > 1 {
		t -= 1.0
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6.0*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}

// HSV converts the color to HSV.
func (c Color) HSV() HSV {
	r, g, b := c.normalized()
	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)

	var s float64
	if max != 0 {
		s = (max - min) / max
	}

	return HSV{
		H: roundHue(hue(r, g, b, max, min)),
		S: round(s * 100),
		V: round(max * 100),
	}
}

// FromHSV converts HSV percentages to a Color.
func FromHSV(h, s, v int) Color {
	sf := float64(s) / 100.0
	vf := float64(v) / 100.0

	sector := math.Floor(float64(h) / 60.0)
	f := float64(h)/60.0 - sector
	p := vf * (1 - sf)
	q := vf * (1 - sf*f)
	t := vf * (1 - sf*(1-f))

	var r, g, b float64
	switch int(sector) % 6 {
	case 0:
		r, g, b = vf, t, p
	case 1:
		r, g, b = q, vf, p
	case 2:
		r, g, b = p, vf, t
	case 3:
		r, g, b = p, q, vf
	case 4:
		r, g, b = t, p, vf
	default:
		r, g, b = vf, p, q
	}

	return Color{R: round(r * 255), G: round(g * 255), B: round(b * 255)}
}

// FromHSB is FromHSV under its other name.
func FromHSB(h, s, b int) Color {
	return FromHSV(h, s, b)
}

// CMYK converts the color to CMYK. Black maps to {0, 0, 0, 100}.
func (c Color) CMYK() CMYK {
	r, g, b := c.normalized()
	k := 1 - math.Max(math.Max(r, g), b)
	if k == 1 {
		return CMYK{K: 100}
	}

	return CMYK{
		C: round((1 - r - k) / (1 - k) * 100),
		M: round((1 - g - k) / (1 - k) * 100),
		Y: round((1 - b - k) / (1 - k) * 100),
		K: round(k * 100),
	}
}

// FromCMYK converts CMYK percentages to a Color.
func FromCMYK(c, m, y, k int) Color {
	cf := float64(c) / 100.0
	mf := float64(m) / 100.0
	yf := float64(y) / 100.0
	kf := float64(k) / 100.0

	return Color{
		R: round(255 * (1 - cf) * (1 - kf)),
		G: round(255 * (1 - mf) * (1 - kf)),
		B: round(255 * (1 - yf) * (1 - kf)),
	}
}
