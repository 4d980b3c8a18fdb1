// Package grammar defines the color notations huescan recognizes and one
// independent pattern per notation.
package grammar

import (
	"fmt"
	"strings"
)

// Format identifies a color notation.
type Format int

const (
	HEX Format = iota
	RGB
	RGBA
	HSL
	HSV
	HSB
	CMYK
	LAB
	LCH
	YUV
	YCBCR
	NAMED
)

// Formats lists every notation in canonical order. The composite scanner tries
// alternatives in this order, with NAMED always last.
var Formats = []Format{HEX, RGB, RGBA, HSL, HSV, HSB, CMYK, LAB, LCH, YUV, YCBCR, NAMED}

var formatNames = map[Format]string{
	HEX:   "HEX",
	RGB:   "RGB",
	RGBA:  "RGBA",
	HSL:   "HSL",
	HSV:   "HSV",
	HSB:   "HSB",
	CMYK:  "CMYK",
	LAB:   "LAB",
	LCH:   "LCH",
	YUV:   "YUV",
	YCBCR: "YCBCR",
	NAMED: "NAMED",
}

// String returns the upper-case configuration name, e.g. "RGBA".
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Label returns the name shown to users in tooltips.
func (f Format) Label() string {
	if f == YCBCR {
		return "YCbCr"
	}
	return f.String()
}

// GroupName returns the regexp group name used for f in a composite pattern.
func (f Format) GroupName() string {
	return strings.ToLower(f.String())
}

// ParseFormat resolves a configuration name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, f := range Formats {
		if formatNames[f] == want {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown color format %q", name)
}

// Set is an ordered, duplicate-free selection of formats.
type Set []Format

// DefaultSet is the selection used when no configuration says otherwise.
var DefaultSet = Set{HEX, RGB, RGBA, HSL}

// ParseSet resolves configuration names into a Set in canonical order.
// Unknown names are an error.
func ParseSet(names []string) (Set, error) {
	enabled := make(map[Format]bool, len(names))
	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		enabled[f] = true
	}

	set := make(Set, 0, len(enabled))
	for _, f := range Formats {
		if enabled[f] {
			set = append(set, f)
		}
	}
	return set, nil
}

// Contains reports whether f is in the set.
func (s Set) Contains(f Format) bool {
	for _, v := range s {
		if v == f {
			return true
		}
	}
	return false
}

// Names returns the configuration names of the set.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.String()
	}
	return names
}

// AllNames returns the configuration name of every format, in canonical order.
func AllNames() []string {
	return Set(Formats).Names()
}
