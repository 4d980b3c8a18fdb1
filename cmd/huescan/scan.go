package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jsvensson/huescan"
	"github.com/jsvensson/huescan/internal/config"
	"github.com/jsvensson/huescan/internal/engine"
	"github.com/jsvensson/huescan/internal/history"
	"github.com/jsvensson/huescan/internal/scanner"
	"github.com/jsvensson/huescan/internal/scheduler"
	"github.com/spf13/cobra"
)

var (
	flagFormats  []string
	flagTemplate string
	flagAll      bool
	flagRecord   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "List the color literals in files",
	Long: "List every color literal in the given files, one per line. Files whose type is not in " +
		"file_types are skipped unless --all is set.",
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&flagFormats, "formats", nil,
		"formats to match, overriding the config ("+strings.Join(huescan.Formats(), ", ")+")")
	scanCmd.Flags().StringVar(&flagTemplate, "template", "", "render results with this text/template file")
	scanCmd.Flags().BoolVar(&flagAll, "all", false, "scan files regardless of their type")
	scanCmd.Flags().BoolVar(&flagRecord, "record", false, "add the colors found to the history")
}

// fileSource serves file contents to the scheduler. Files never change, so
// every version is 0.
type fileSource map[string]string

func (f fileSource) Snapshot(path string) (string, int, bool) {
	text, ok := f[path]
	return text, 0, ok
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(flagFormats) > 0 {
		cfg.Formats = flagFormats
	}

	report, err := loadReport()
	if err != nil {
		return err
	}

	src := fileSource{}
	var paths []string
	for _, path := range args {
		if !flagAll && !cfg.Supported(path) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Skipping %s: file type not in file_types\n", path)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		src[path] = string(data)
		paths = append(paths, path)
	}

	p := scanner.New(cfg.Formats)
	if p.Fallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Invalid formats %v, matching hex colors only\n", cfg.Formats)
	}
	sched := scheduler.New(src, nil, scheduler.Options{
		Engine:             engine.New(p),
		LargeFileThreshold: cfg.Scan.LargeFileThreshold,
		Truncate:           cfg.Scan.TruncateLargeFiles,
	})

	files := make([]engine.FileReport, 0, len(paths))
	var hexes []string
	for _, path := range paths {
		res, _ := sched.ScanNow(path)
		files = append(files, engine.FileReport{
			Path:         path,
			Annotations:  res.Annotations,
			Truncated:    res.Truncated,
			ScannedChars: res.ScannedChars,
		})
		hexes = append(hexes, engine.UniqueHexes(res.Annotations)...)
	}

	if err := report.Render(cmd.OutOrStdout(), files); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if flagRecord {
		return record(cfg, hexes)
	}
	return nil
}

func loadReport() (*engine.Report, error) {
	if flagTemplate != "" {
		return engine.LoadReport(flagTemplate)
	}
	return engine.NewReport(engine.DefaultReport)
}

func record(cfg *config.Config, hexes []string) error {
	if !cfg.History.Enabled {
		return errors.New("history is disabled in the config")
	}
	h, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if err := h.Add(hexes...); err != nil {
		return fmt.Errorf("recording colors: %w", err)
	}
	return nil
}

func openHistory(cfg *config.Config) (*history.Manager, error) {
	h := history.NewManager(history.FileStore{Path: cfg.HistoryPath()}, cfg.History.MaxItems)
	if err := h.Load(); err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return h, nil
}
