package grammar

import (
	"fmt"
	"strconv"

	"github.com/jsvensson/huescan/internal/color"
)

// Resolve converts the captured fields of a literal into the color it denotes.
// Channels are not range-checked: rgb(999, 0, 0) resolves to R=999.
func Resolve(f Format, fields []string) (color.Color, error) {
	if _, ok := fieldCounts[f]; !ok {
		return color.Color{}, fmt.Errorf("unsupported format %s", f)
	}
	if len(fields) != FieldCount(f) {
		return color.Color{}, fmt.Errorf("%s: expected %d fields, got %d", f, FieldCount(f), len(fields))
	}

	switch f {
	case HEX:
		return color.ParseHex(fields[0])
	case NAMED:
		c, ok := color.LookupName(fields[0])
		if !ok {
			return color.Color{}, fmt.Errorf("unknown color name %q", fields[0])
		}
		return c, nil
	}

	n, err := Ints(fields[:3])
	if err != nil {
		return color.Color{}, fmt.Errorf("%s: %w", f, err)
	}

	switch f {
	case RGB:
		return color.RGB(n[0], n[1], n[2]), nil
	case RGBA:
		a, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return color.Color{}, fmt.Errorf("%s: invalid alpha %q: %w", f, fields[3], err)
		}
		return color.RGB(n[0], n[1], n[2]).WithAlpha(a), nil
	case HSL:
		return color.FromHSL(n[0], n[1], n[2]), nil
	case HSV:
		return color.FromHSV(n[0], n[1], n[2]), nil
	case HSB:
		return color.FromHSB(n[0], n[1], n[2]), nil
	case CMYK:
		k, err := strconv.Atoi(fields[3])
		if err != nil {
			return color.Color{}, fmt.Errorf("%s: %w", f, err)
		}
		return color.FromCMYK(n[0], n[1], n[2], k), nil
	case LAB:
		return color.FromLab(n[0], n[1], n[2]), nil
	case LCH:
		return color.FromLCH(n[0], n[1], n[2]), nil
	case YUV:
		return color.FromYUV(n[0], n[1], n[2]), nil
	case YCBCR:
		return color.FromYCbCr(n[0], n[1], n[2]), nil
	}
	return color.Color{}, fmt.Errorf("unsupported format %s", f)
}

// Ints parses integer fields, as captured by the numeric patterns.
func Ints(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, s := range fields {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
