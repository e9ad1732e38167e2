package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/commitsentry/internal/config"
	"github.com/spf13/cobra"
)

func newRunCmd(state *cliState) *cobra.Command {
	var noReload bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the monitoring engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDaemon(ctx, state, !noReload)
		},
	}
	cmd.Flags().BoolVar(&noReload, "no-reload", false, "Do not watch the configuration file for changes")
	return cmd
}

func runDaemon(ctx context.Context, state *cliState, hotReload bool) error {
	logger := state.logger.With().Str("component", "Daemon").Logger()

	a, err := buildApp(ctx, state.cfg, state.logger, appOptions{out: os.Stdout})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	if hotReload && state.configPath != "" {
		opts := config.DefaultConfigManagerOptions()
		opts.Logger = state.logger
		opts.HotReloadEnabled = true

		manager, err := config.NewConfigManager(state.configPath, opts)
		if err != nil {
			logger.Warn().Err(err).Msg("Configuration watcher unavailable, continuing without hot reload")
		} else {
			defer manager.Close()
			manager.OnReload(func(ctx context.Context, cfg *config.GlobalConfig) {
				if _, err := a.engine.UpdateConfiguration(ctx, cfg.MonitorConfig.ToPartial()); err != nil {
					logger.Error().Err(err).Msg("Failed to apply reloaded monitor configuration")
				}
			})
			manager.StartHotReload(ctx)
		}
	}

	if !a.configuration.Enabled {
		logger.Warn().Msg("Monitoring is disabled; enable it with 'commitsentry config set --enabled'")
	}
	a.engine.Start(a.configuration)

	<-ctx.Done()
	logger.Info().Msg("Shutdown signal received")
	a.engine.Stop()
	return nil
}
