package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/huescan/internal/config"
	"github.com/jsvensson/huescan/internal/lsp"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:          "huescan-lsp",
	Short:        "Language server that highlights color literals",
	Long:         "Language server that highlights color literals. It speaks LSP over stdio.",
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to "+config.FileName+" (default: the user config directory)")
}

func run(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return lsp.NewServer(version, cfg, path).Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
