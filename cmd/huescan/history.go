package main

import (
	"fmt"
	"time"

	"github.com/jsvensson/huescan/internal/history"
	"github.com/spf13/cobra"
)

var (
	flagLimit int
	flagPNG   string
	flagSize  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the colors recorded by scans",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded colors, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every recorded color",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the recorded colors as a PNG swatch strip",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

func init() {
	historyListCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "show at most this many colors (0 for all)")
	historyExportCmd.Flags().StringVar(&flagPNG, "png", "", "output image path")
	historyExportCmd.Flags().IntVar(&flagSize, "size", 32, "swatch size in pixels")
	historyExportCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "export at most this many colors (0 for all)")
	_ = historyExportCmd.MarkFlagRequired("png")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
}

func loadHistory() (*history.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openHistory(cfg)
}

func entries(h *history.Manager) []history.Entry {
	if flagLimit > 0 {
		return h.Recent(flagLimit)
	}
	return h.All()
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	h, err := loadHistory()
	if err != nil {
		return err
	}
	for _, e := range entries(h) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", e.Color, e.Count, e.LastUsed.Format(time.DateTime))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	h, err := loadHistory()
	if err != nil {
		return err
	}
	if err := h.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	h, err := loadHistory()
	if err != nil {
		return err
	}
	list := entries(h)
	if err := history.ExportSwatch(flagPNG, list, flagSize); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d colors to %s\n", len(list), flagPNG)
	return nil
}
