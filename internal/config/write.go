package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/huescan/internal/grammar"
	"github.com/zclconf/go-cty/cty"
)

// Render writes cfg as HCL source. A format list equal to the defaults is
// written as a reference to default_formats.
func Render(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("enabled", cty.BoolVal(cfg.Enabled))
	if slices.Equal(cfg.FormatSet(), grammar.DefaultSet) {
		body.SetAttributeTraversal("formats", hcl.Traversal{hcl.TraverseRoot{Name: "default_formats"}})
	} else {
		body.SetAttributeValue("formats", stringList(cfg.FormatSet().Names()))
	}
	body.SetAttributeValue("file_types", stringList(cfg.FileTypes))
	body.SetAttributeValue("untitled_supported", cty.BoolVal(cfg.UntitledSupported))

	body.AppendNewline()
	scan := body.AppendNewBlock("scan", nil).Body()
	scan.SetAttributeValue("debounce_ms", cty.NumberIntVal(int64(cfg.Scan.DebounceMS)))
	scan.SetAttributeValue("max_debounce_ms", cty.NumberIntVal(int64(cfg.Scan.MaxDebounceMS)))
	scan.SetAttributeValue("large_file_threshold", cty.NumberIntVal(int64(cfg.Scan.LargeFileThreshold)))
	scan.SetAttributeValue("truncate_large_files", cty.BoolVal(cfg.Scan.TruncateLargeFiles))

	body.AppendNewline()
	history := body.AppendNewBlock("history", nil).Body()
	history.SetAttributeValue("enabled", cty.BoolVal(cfg.History.Enabled))
	history.SetAttributeValue("max_items", cty.NumberIntVal(int64(cfg.History.MaxItems)))
	history.SetAttributeValue("path", cty.StringVal(cfg.History.Path))

	body.AppendNewline()
	logging := body.AppendNewBlock("log", nil).Body()
	logging.SetAttributeValue("verbosity", cty.NumberIntVal(int64(cfg.Log.Verbosity)))
	logging.SetAttributeValue("path", cty.StringVal(cfg.Log.Path))

	return hclwrite.Format(f.Bytes())
}

// WriteDefault writes the default settings to path. It refuses to overwrite
// an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, Render(Default()), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
