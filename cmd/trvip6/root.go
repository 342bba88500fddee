package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Oktay2617/trvip6/internal/config"
	"github.com/Oktay2617/trvip6/internal/convert"
	"github.com/Oktay2617/trvip6/internal/logging"
)

// errRunFailed marks conversion failures that were already logged.
var errRunFailed = errors.New("conversion failed")

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputFlag string
	var logLevel string
	var logFormat string
	var logFile string
	var summary bool

	ctx := newCommandContext(&configFlag, &outputFlag)

	rootCmd := &cobra.Command{
		Use:           "trvip6",
		Short:         "Convert the channel catalog into an M3U playlist",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if level := strings.TrimSpace(logLevel); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
			}
			if format := strings.TrimSpace(logFormat); format != "" {
				cfg.Logging.Format = strings.ToLower(format)
			}
			if file := strings.TrimSpace(logFile); file != "" {
				if cfg.Logging.File, err = config.ExpandPath(file); err != nil {
					return fmt.Errorf("resolve log file: %w", err)
				}
			}

			logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = logging.WithRunID(logger, uuid.NewString())
			if ctx.configSeen {
				logger.Debug("configuration loaded", "path", ctx.configPath)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			result, err := convert.Run(signalCtx, cfg, convert.Options{Logger: logger})
			if err != nil {
				return fmt.Errorf("%w: %w", errRunFailed, err)
			}
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(result))
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Playlist file to write (overrides playlist.output_file)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also append log lines to this file")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "Print channels per group after a successful run")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
