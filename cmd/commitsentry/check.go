package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aleister1102/commitsentry/internal/logger"
	"github.com/aleister1102/commitsentry/internal/monitor"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newCheckCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a single check cycle now and print its result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cycleID := uuid.New().String()
			cycleLogger, err := logger.NewWithCycleID(state.cfg.LogConfig, cycleID)
			if err != nil {
				return fmt.Errorf("initializing cycle logger: %w", err)
			}

			a, err := buildApp(cmd.Context(), state.cfg, cycleLogger, appOptions{
				out:        os.Stdout,
				newCycleID: func() string { return cycleID },
			})
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := a.engine.RunCycle(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("Check "+cycleID))
			fmt.Fprintln(out, renderConfiguration(a.engine.Configuration()))
			if err != nil {
				if errors.Is(err, monitor.ErrCycleSkipped) {
					fmt.Fprintln(out, warnStyle.Render(err.Error()))
					return nil
				}
				fmt.Fprintln(out, field("Result", failStyle.Render(err.Error())))
				return err
			}
			fmt.Fprintln(out, field("Result", okStyle.Render(renderReport(report))))
			return nil
		},
	}
}
