package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/kanjikit/internal/config"
	"github.com/nao1215/kanjikit/internal/database"
	"github.com/nao1215/kanjikit/internal/log"
	"github.com/nao1215/kanjikit/internal/model"
)

// getPersistentBool retrieves a global bool flag from the command or its root.
// Commands executed on their own (as in tests) have no global flags; the
// zero value is returned then.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getPersistentString retrieves a global string flag from the command or its root.
func getPersistentString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// persistentChanged reports whether a global flag was set on the command line.
func persistentChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := cmd.Root().PersistentFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

// loadConfig builds the configuration shared by all commands:
// defaults, then the config file, then the global flags.
// Command-specific flags are applied by each command afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getPersistentBool(cmd, "verbose")
	cfg.ConfigFilePath = getPersistentString(cmd, "config")

	// An explicit --config must exist; the default locations are optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if persistentChanged(cmd, "record") {
		cfg.Record = getPersistentBool(cmd, "record")
	}

	return cfg, nil
}

// newLogger creates the command logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
}

// withSignalCancel returns a context cancelled on SIGINT or SIGTERM.
func withSignalCancel(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// recordRuns appends runs to the history database when recording is enabled.
// Failures are logged and never fail the command.
func recordRuns(ctx context.Context, cfg *config.Config, logger *slog.Logger, runs ...model.Run) {
	if !cfg.Record || len(runs) == 0 {
		return
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	for i := range runs {
		run := &runs[i]
		if run.Digest == "" {
			digest, err := database.DigestFile(run.Output)
			if err != nil {
				logger.Warn("failed to hash output", "output", run.Output, "error", err)
			}
			run.Digest = digest
		}

		if err := db.RecordRun(ctx, run); err != nil {
			logger.Warn("failed to record run", "tool", run.Tool, "input", run.Input, "error", err)
			continue
		}
		logger.Debug("run recorded", "id", run.ID, "tool", run.Tool)
	}
}
