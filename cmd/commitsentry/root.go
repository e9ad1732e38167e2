package main

import (
	"fmt"

	"github.com/aleister1102/commitsentry/internal/config"
	"github.com/aleister1102/commitsentry/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// cliState is filled by the root command before any subcommand runs.
type cliState struct {
	configFlag string
	configPath string
	cfg        *config.GlobalConfig
	logger     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "commitsentry",
		Short:         "Watch a repository for new commits in selected folders and notify about them",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.load()
		},
	}
	root.PersistentFlags().StringVarP(&state.configFlag, "config", "c", "",
		"Path to the YAML/JSON configuration file. If not set, searches default locations.")

	root.AddCommand(
		newRunCmd(state),
		newCheckCmd(state),
		newStatusCmd(state),
		newHistoryCmd(state),
		newLedgerCmd(state),
		newConfigCmd(state),
	)
	return root
}

func (s *cliState) load() error {
	cfg, err := config.LoadGlobalConfig(s.configFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	s.cfg = cfg
	s.configPath = config.GetConfigPath(s.configFlag)
	s.logger = zLogger
	s.logger.Debug().Str("config_path", s.configPath).Msg("Configuration loaded")
	return nil
}
