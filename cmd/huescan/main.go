package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jsvensson/huescan"
	"github.com/jsvensson/huescan/internal/config"
	"github.com/jsvensson/huescan/internal/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	flagConfig  string
	flagVerbose int
	version     = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "huescan",
	Short:   "Find color literals in files and convert them between notations",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
	SilenceUsage: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert <literal>",
	Short: "Print a color literal in every supported notation",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default " + config.FileName,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to "+config.FileName+" (default: ./"+config.FileName+", then the user config directory)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log more (can be repeated)")
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// configPath picks the config file: --config, then ./huescan.hcl, then the
// per-user file.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if _, err := os.Stat(config.FileName); err == nil {
		return config.FileName
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	literal := strings.TrimSpace(args[0])
	if len(format.Lines(literal)) == 0 {
		return fmt.Errorf("%q is not a color literal", literal)
	}
	fmt.Fprintln(cmd.OutOrStdout(), huescan.Tooltip(literal))
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
