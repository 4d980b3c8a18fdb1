package grammar

import (
	"regexp"
	"strings"

	"github.com/jsvensson/huescan/internal/color"
)

// Numeric fields are matched permissively (1-3 digits); range checks happen
// downstream, if at all.
const (
	num    = `(\d{1,3})`
	signed = `(-?\d{1,3})`
	pct    = `(\d{1,3})%`
	alpha  = `(0?\.\d+|1|0)`
	sep    = `\s*,\s*`
)

func fn(name string, fields ...string) string {
	return name + `\(\s*` + strings.Join(fields, sep) + `\s*\)`
}

// sources holds the pattern text for every format. The patterns use plain
// capture groups for their fields and no flags; callers add case folding.
var sources = map[Format]string{
	HEX:   `#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})\b`,
	RGB:   fn("rgb", num, num, num),
	RGBA:  fn("rgba", num, num, num, alpha),
	HSL:   fn("hsl", num, pct, pct),
	HSV:   fn("hsv", num, pct, pct),
	HSB:   fn("hsb", num, pct, pct),
	CMYK:  fn("cmyk", pct, pct, pct, pct),
	LAB:   fn("lab", pct, signed, signed),
	LCH:   fn("lch", pct, num, num),
	YUV:   fn("yuv", pct, signed, signed),
	YCBCR: fn("ycbcr", num, signed, signed),
	NAMED: `\b(` + strings.Join(color.Names(), "|") + `)\b`,
}

// fieldCounts is the number of captured fields per format.
var fieldCounts = map[Format]int{
	HEX:   1,
	RGB:   3,
	RGBA:  4,
	HSL:   3,
	HSV:   3,
	HSB:   3,
	CMYK:  4,
	LAB:   3,
	LCH:   3,
	YUV:   3,
	YCBCR: 3,
	NAMED: 1,
}

// strict holds each pattern anchored to a whole string, for field extraction.
var strict = func() map[Format]*regexp.Regexp {
	m := make(map[Format]*regexp.Regexp, len(sources))
	for f, src := range sources {
		m[f] = regexp.MustCompile(`(?i)^` + src + `$`)
	}
	return m
}()

// Source returns the unanchored pattern text for f.
func Source(f Format) string {
	return sources[f]
}

// FieldCount returns the number of fields a match of f captures.
func FieldCount(f Format) int {
	return fieldCounts[f]
}

// Extract applies the strict pattern of f to text and returns the captured
// field strings. It returns false when text is not a complete literal of f.
func Extract(f Format, text string) ([]string, bool) {
	re, ok := strict[f]
	if !ok {
		return nil, false
	}
	m := re.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, false
	}
	return m[1:], true
}
