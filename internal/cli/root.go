// Package cli defines the command-line interface for lightrig.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gekko3d/lightrig/internal/config"
	"github.com/gekko3d/lightrig/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	Config   config.Config
	LogLevel logging.Level
}

// Execute loads the LIGHTRIG_* configuration, builds the root command, runs
// it with args and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rootOpts := &Options{
		Config:   cfg,
		LogLevel: logging.ParseLevel(cfg.LogLevel),
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lightrig",
		Short: "lightrig places three-point light rigs around scene objects",
		Long: "lightrig loads a scene file, places a camera plus key, fill and back area lights " +
			"around the selected objects using a named preset, and writes the scene back.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", opts.LogLevel.String(), "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPlaceCommand(opts),
		newPlanCommand(opts),
		newPresetsCommand(opts),
		newInspectCommand(opts),
		newShadowCommand(opts),
		newPreviewCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
