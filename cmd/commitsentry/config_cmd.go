package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aleister1102/commitsentry/internal/models"
	"github.com/spf13/cobra"
)

func newConfigCmd(state *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the persisted monitor configuration",
	}
	cmd.AddCommand(newConfigShowCmd(state), newConfigSetCmd(state))
	return cmd
}

func newConfigShowCmd(state *cliState) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the monitor configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(state.cfg, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			monitorCfg, err := st.configuration.LoadOrSeed(cmd.Context(), state.cfg.MonitorConfig.ToModel())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(monitorCfg)
			}
			fmt.Fprintln(out, renderConfiguration(monitorCfg))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func newConfigSetCmd(state *cliState) *cobra.Command {
	var (
		enabled      bool
		interval     int
		folders      []string
		allFolders   bool
		sound        string
		soundEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update parts of the monitor configuration",
		Example: "  commitsentry config set --enabled --interval 10 --folders ui-kit,utils\n" +
			"  commitsentry config set --sound happy-bells --sound-enabled=false",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var partial models.PartialMonitorConfiguration
			if flags.Changed("enabled") {
				partial.Enabled = &enabled
			}
			if flags.Changed("interval") {
				partial.CheckIntervalMinutes = &interval
			}
			if flags.Changed("folders") {
				partial.MonitoredFolders = &folders
			}
			if flags.Changed("all-folders") {
				partial.NotifyForAllFolders = &allFolders
			}
			if flags.Changed("sound") {
				partial.SelectedSound = &sound
			}
			if flags.Changed("sound-enabled") {
				partial.SoundEnabled = &soundEnabled
			}
			if partial.IsEmpty() {
				return fmt.Errorf("nothing to change; see --help for the available flags")
			}

			a, err := buildApp(cmd.Context(), state.cfg, state.logger, appOptions{out: os.Stdout})
			if err != nil {
				return err
			}
			defer a.Close()

			updated, err := a.engine.UpdateConfiguration(cmd.Context(), partial)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderConfiguration(updated))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&enabled, "enabled", false, "Enable periodic checks")
	flags.IntVar(&interval, "interval", models.DefaultCheckIntervalMinutes, "Minutes between checks (at least 1)")
	flags.StringSliceVar(&folders, "folders", nil, "Comma separated folders to monitor, relative to the folder base path")
	flags.BoolVar(&allFolders, "all-folders", false, "Notify for every new commit regardless of folder")
	flags.StringVar(&sound, "sound", models.DefaultSound, "Notification sound id")
	flags.BoolVar(&soundEnabled, "sound-enabled", true, "Play a sound with notifications")
	return cmd
}
