// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-fetch CLI.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-fetch/internal/config"
	"github.com/pdiddy/arxiv-fetch/internal/output"
	"github.com/pdiddy/arxiv-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// exitInterrupted is the conventional status for a command stopped by SIGINT.
const exitInterrupted = 130

var (
	cfgFile string
	verbose bool

	cfg     types.Config
	logger  = slog.New(slog.DiscardHandler)
	printer = output.NewPrinter(false)
)

// flagKeys maps command flags to the config keys they override. Only flags
// present on the running command are bound.
var flagKeys = map[string]string{
	"max-results":  config.KeyMaxResults,
	"download-dir": config.KeyDownloadDir,
	"sort-by":      config.KeySortBy,
	"sort-order":   config.KeySortOrder,
	"delay":        config.KeyRequestDelay,
	"timeout":      config.KeyTimeout,
	"color":        config.KeyColor,
	"log-level":    config.KeyLogLevel,
}

// rootCmd is the base command for the arxiv-fetch CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-fetch",
	Short: "Search arXiv and download paper PDFs",
	Long: `arxiv-fetch searches the arXiv API, previews the matching papers, and
downloads their PDFs into per-topic folders under the download directory.

Requests are paced with a fixed delay (default 1s). Files already on disk
are skipped, so re-running a command only fetches what is missing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./arxiv-fetch.yaml or ~/.config/arxiv-fetch/arxiv-fetch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().String("color", "auto", "colored output: auto, always, or never")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().Duration("delay", 0, "pause before every request (default 1s)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
}

// initConfig loads configuration and builds the logger and printer for
// the running command.
func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	mode, err := output.ParseColorMode(cfg.Output.Color)
	if err != nil {
		return err
	}
	printer = output.NewPrinterWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(mode, !color.NoColor))

	level, err := config.ParseLogLevel(cfg.Output.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}
	logger.Debug("configuration loaded",
		"api_url", cfg.Search.APIURL,
		"download_dir", cfg.Download.Dir,
		"max_results", cfg.Search.MaxResults,
		"request_delay", cfg.Search.RequestDelay,
	)
	return nil
}

// exitCode maps a command error to a process status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		printer.Print("\nInterrupted.")
	default:
		printer.Error("%v", err)
	}
	os.Exit(exitCode(err))
}
