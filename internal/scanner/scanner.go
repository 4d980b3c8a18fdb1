// Package scanner finds color literals in text with a single composite pattern.
package scanner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jsvensson/huescan/internal/color"
	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("huescan.scanner")

// Match is one color literal found in scanned text.
type Match struct {
	Format grammar.Format

	// Start and End are character (rune) offsets into the scanned text.
	Start, End int

	// ByteStart and ByteEnd are the same span in bytes.
	ByteStart, ByteEnd int

	Text  string
	Color color.Color
}

// Pattern is an immutable composite matcher for a set of enabled formats.
// A configuration change builds a new Pattern; an existing one is never altered.
type Pattern struct {
	re       *regexp.Regexp
	formats  grammar.Set
	groups   []groupRef
	fallback bool
}

type groupRef struct {
	format grammar.Format
	index  int // submatch index of the named group
}

// Compile builds the composite pattern for set. NAMED is always appended as
// the last alternative, whether or not set contains it.
func Compile(set grammar.Set) (*Pattern, error) {
	formats := make(grammar.Set, 0, len(set)+1)
	for _, f := range set {
		if f != grammar.NAMED {
			formats = append(formats, f)
		}
	}
	formats = append(formats, grammar.NAMED)
	return compile(formats, false)
}

func compile(formats grammar.Set, fallback bool) (*Pattern, error) {
	alts := make([]string, 0, len(formats))
	for _, f := range formats {
		src := grammar.Source(f)
		if src == "" {
			return nil, fmt.Errorf("no pattern for format %s", f)
		}
		alts = append(alts, fmt.Sprintf("(?P<%s>%s)", f.GroupName(), src))
	}

	re, err := regexp.Compile(`(?i)` + strings.Join(alts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compiling composite pattern: %w", err)
	}

	p := &Pattern{re: re, formats: formats, fallback: fallback}
	for _, f := range formats {
		p.groups = append(p.groups, groupRef{format: f, index: re.SubexpIndex(f.GroupName())})
	}
	return p, nil
}

// hexOnly is the pattern used when a configuration cannot be compiled.
var hexOnly = func() *Pattern {
	p, err := compile(grammar.Set{grammar.HEX}, true)
	if err != nil {
		panic(err)
	}
	return p
}()

// New builds a Pattern from configuration format names. Unknown names or a
// failed compile fall back to HEX-only matching; the returned Pattern then
// reports Fallback() == true and a warning is logged.
func New(names []string) *Pattern {
	set, err := grammar.ParseSet(names)
	if err == nil {
		var p *Pattern
		if p, err = Compile(set); err == nil {
			return p
		}
	}
	log.Warningf("falling back to HEX-only matching: %s", err)
	return hexOnly
}

// Fallback reports whether p is the HEX-only fallback pattern.
func (p *Pattern) Fallback() bool {
	return p.fallback
}

// Formats returns the formats p matches, in alternation order.
func (p *Pattern) Formats() grammar.Set {
	return append(grammar.Set(nil), p.formats...)
}

// Scan returns every literal in text in ascending, non-overlapping order.
// Matches whose fields cannot be resolved to a color are dropped.
func (p *Pattern) Scan(text string) []Match {
	locs := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(locs))
	prevByte, prevChar := 0, 0
	for _, loc := range locs {
		f, ok := p.formatOf(loc)
		if !ok {
			continue
		}

		start, end := loc[0], loc[1]
		startChar := prevChar + utf8.RuneCountInString(text[prevByte:start])
		endChar := startChar + utf8.RuneCountInString(text[start:end])
		prevByte, prevChar = end, endChar

		literal := text[start:end]
		c, err := resolve(f, literal)
		if err != nil {
			log.Debugf("dropping %s match %q: %s", f, literal, err)
			continue
		}

		matches = append(matches, Match{
			Format:    f,
			Start:     startChar,
			End:       endChar,
			ByteStart: start,
			ByteEnd:   end,
			Text:      literal,
			Color:     c,
		})
	}
	return matches
}

// formatOf finds which alternative produced a match.
func (p *Pattern) formatOf(loc []int) (grammar.Format, bool) {
	for _, g := range p.groups {
		if loc[2*g.index] >= 0 {
			return g.format, true
		}
	}
	return 0, false
}

func resolve(f grammar.Format, literal string) (color.Color, error) {
	fields, ok := grammar.Extract(f, literal)
	if !ok {
		return color.Color{}, fmt.Errorf("fields do not match %s pattern", f)
	}
	return grammar.Resolve(f, fields)
}
