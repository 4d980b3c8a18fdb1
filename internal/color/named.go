package color

import (
	"sort"
	"strings"
)

var sortedNames = func() []string {
	names := make([]string, 0, len(Named))
	for name := range Named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// LookupName resolves a CSS color keyword, case-insensitively.
func LookupName(name string) (Color, bool) {
	hex, ok := Named[strings.ToLower(name)]
	if !ok {
		return Color{}, false
	}
	return MustParseHex(hex), true
}

// IsName reports whether name is a CSS color keyword.
func IsName(name string) bool {
	_, ok := Named[strings.ToLower(name)]
	return ok
}

// Names returns every CSS color keyword in alphabetical order.
// The returned slice is shared and must not be modified.
func Names() []string {
	return sortedNames
}
