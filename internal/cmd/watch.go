package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/symposium/internal/config"
	"github.com/Iron-Ham/symposium/internal/dinner"
	"github.com/Iron-Ham/symposium/internal/logging"
	"github.com/Iron-Ham/symposium/internal/tui"
)

// isTerminal reports whether stdout can host the live viewer.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run a dinner in the live table viewer",
		Long: `Run a dinner and watch the table live.

Each seat is drawn with its state and meal count, along with the talking
token. Press q to stop the dinner. Without a terminal, watch behaves like
run and prints a text report.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !isTerminal() {
		fmt.Fprintln(cmd.ErrOrStderr(), "stdout is not a terminal, printing a report instead")
		return runDinner(ctx, cfg, cmd.OutOrStdout(), dinner.FormatText)
	}

	// Log lines on stderr would tear the viewer, so only file logging is kept
	logger := logging.NopLogger()
	if cfg.Logging.Dir != "" {
		if logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level); err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer func() { _ = logger.Close() }()
	}

	d := dinner.New(dinner.SettingsFromConfig(cfg), dinner.WithLogger(logger))
	report, runErr := tui.New(d, cfg.Table.Seats, cfg.TUI.RefreshInterval()).Run(ctx)
	if report != nil {
		if err := report.Write(cmd.OutOrStdout(), dinner.FormatText); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return runErr
}
