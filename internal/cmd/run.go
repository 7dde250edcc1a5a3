package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/symposium/internal/config"
	"github.com/Iron-Ham/symposium/internal/dinner"
	"github.com/Iron-Ham/symposium/internal/logging"
)

func newRunCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a dinner and print a report",
		Long: `Run a dinner to completion and print a report.

The dinner ends once every philosopher has eaten --meals meals, when
--duration elapses, or on interrupt. The report lists per-seat meals, talks,
and waiting times along with any invariant violation the auditor observed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(dinner.Formats(), format) {
				return fmt.Errorf("invalid format %q: expected one of %s", format, strings.Join(dinner.Formats(), ", "))
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runDinner(ctx, cfg, cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", dinner.FormatText, "output format: text, json, yaml")
	return cmd
}

// runDinner runs one dinner with a logger built from cfg and writes the
// report to out. The report is written even when the dinner failed.
func runDinner(ctx context.Context, cfg *config.Config, out io.Writer, format string) error {
	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = logger.Close() }()

	report, runErr := dinner.New(dinner.SettingsFromConfig(cfg), dinner.WithLogger(logger)).Run(ctx)
	if report != nil {
		if err := report.Write(out, format); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return runErr
}
