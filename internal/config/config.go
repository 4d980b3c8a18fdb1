// Package config loads huescan settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// FileName is the config file looked up by default.
const FileName = "huescan.hcl"

// Config is the decoded settings file.
type Config struct {
	Enabled           bool     `hcl:"enabled,optional"`
	Formats           []string `hcl:"formats,optional"`
	FileTypes         []string `hcl:"file_types,optional"`
	UntitledSupported bool     `hcl:"untitled_supported,optional"`

	Scan    *Scan    `hcl:"scan,block"`
	History *History `hcl:"history,block"`
	Log     *Log     `hcl:"log,block"`
}

// Scan holds the rescan scheduler settings.
type Scan struct {
	DebounceMS         int  `hcl:"debounce_ms,optional"`
	MaxDebounceMS      int  `hcl:"max_debounce_ms,optional"`
	LargeFileThreshold int  `hcl:"large_file_threshold,optional"`
	TruncateLargeFiles bool `hcl:"truncate_large_files,optional"`
}

// History holds the color history settings.
type History struct {
	Enabled  bool   `hcl:"enabled,optional"`
	MaxItems int    `hcl:"max_items,optional"`
	Path     string `hcl:"path,optional"`
}

// Log holds the logging settings.
type Log struct {
	Verbosity int    `hcl:"verbosity,optional"`
	Path      string `hcl:"path,optional"`
}

// DefaultFileTypes are the extensions decorated when no file_types are set.
var DefaultFileTypes = []string{
	"css", "scss", "sass", "less", "styl",
	"html", "htm", "vue", "svelte", "astro",
	"js", "jsx", "ts", "tsx", "mjs", "cjs",
	"json", "jsonc", "yaml", "yml", "toml", "xml", "svg",
	"md", "mdx", "txt", "hcl", "go", "py", "rb", "php",
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Enabled:           true,
		Formats:           grammar.DefaultSet.Names(),
		FileTypes:         append([]string(nil), DefaultFileTypes...),
		UntitledSupported: true,
		Scan: &Scan{
			DebounceMS:         150,
			MaxDebounceMS:      1000,
			LargeFileThreshold: 100000,
			TruncateLargeFiles: true,
		},
		History: &History{
			Enabled:  true,
			MaxItems: 100,
			Path:     defaultHistoryPath(),
		},
		Log: &Log{
			Verbosity: 1,
		},
	}
}

func defaultHistoryPath() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, "huescan", "history.yaml")
	}
	return filepath.Join("~", ".local", "state", "huescan", "history.yaml")
}

// DefaultPath returns the per-user config file under os.UserConfigDir, or ""
// when the platform has none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "huescan", FileName)
}

// Load reads and decodes the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// LoadOrDefault loads path, or returns the defaults when path is empty or
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes src. Attributes and blocks missing from src keep their
// default values.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	cfg := Default()
	if diags := gohcl.DecodeBody(file.Body, buildEvalContext(), cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEvalContext exposes the format names and a few list and string
// helpers, so a file can say formats = concat(default_formats, ["CMYK"]).
func buildEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"all_formats":     stringList(grammar.AllNames()),
			"default_formats": stringList(grammar.DefaultSet.Names()),
		},
		Functions: map[string]function.Function{
			"concat":      stdlib.ConcatFunc,
			"distinct":    stdlib.DistinctFunc,
			"upper":       stdlib.UpperFunc,
			"lower":       stdlib.LowerFunc,
			"setsubtract": stdlib.SetSubtractFunc,
		},
	}
}

func stringList(ss []string) cty.Value {
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

func (c *Config) validate() error {
	if _, err := grammar.ParseSet(c.Formats); err != nil {
		return fmt.Errorf("formats: %w", err)
	}
	if c.Scan.DebounceMS < 0 || c.Scan.MaxDebounceMS < 0 {
		return fmt.Errorf("scan: delays must not be negative")
	}
	if c.Scan.LargeFileThreshold < 1 {
		return fmt.Errorf("scan.large_file_threshold must be positive, got %d", c.Scan.LargeFileThreshold)
	}
	if c.History.MaxItems < 1 {
		return fmt.Errorf("history.max_items must be positive, got %d", c.History.MaxItems)
	}
	return nil
}

// FormatSet returns the enabled formats.
func (c *Config) FormatSet() grammar.Set {
	set, err := grammar.ParseSet(c.Formats)
	if err != nil {
		return grammar.DefaultSet
	}
	return set
}

// Debounce returns the base rescan delay.
func (s *Scan) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// MaxDebounce returns the cap for the large-buffer delay.
func (s *Scan) MaxDebounce() time.Duration {
	return time.Duration(s.MaxDebounceMS) * time.Millisecond
}

// HistoryPath returns the history file path with a leading ~ expanded.
func (c *Config) HistoryPath() string {
	return ExpandHome(c.History.Path)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
