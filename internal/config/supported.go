package config

import (
	"path"
	"strings"
)

// Supported reports whether a document should be decorated. name may be a
// file path, a URI or an editor-assigned untitled name.
func (c *Config) Supported(name string) bool {
	if isUntitled(name) {
		return c.UntitledSupported
	}

	ext := extension(name)
	if ext == "" {
		return false
	}
	for _, t := range c.FileTypes {
		if strings.EqualFold(strings.TrimSpace(t), ext) {
			return true
		}
	}
	return false
}

func isUntitled(name string) bool {
	if name == "" {
		return true
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "untitled:") || strings.Contains(name, "Untitled-") || name == "Untitled" {
		return true
	}
	return !strings.Contains(lastSegment(name), ".")
}

func lastSegment(name string) string {
	return path.Base(strings.ReplaceAll(name, `\`, "/"))
}

// extension returns the lowercase extension used for matching. A few compound
// suffixes map to their base language.
func extension(name string) string {
	seg := strings.ToLower(lastSegment(name))
	switch {
	case strings.HasSuffix(seg, ".d.ts"),
		strings.HasSuffix(seg, ".spec.ts"),
		strings.HasSuffix(seg, ".test.ts"):
		return "ts"
	case strings.HasSuffix(seg, ".min.js"):
		return "js"
	}
	i := strings.LastIndexByte(seg, '.')
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(seg[i+1:])
}
