package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted configuration and the last check cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(state.cfg, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			monitorCfg, err := st.configuration.LoadOrSeed(ctx, state.cfg.MonitorConfig.ToModel())
			if err != nil {
				return err
			}
			last, ok, err := st.history.LastCycle(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			repo := state.cfg.RepositoryConfig
			fmt.Fprintln(out, headerStyle.Render("commitsentry"))
			fmt.Fprintln(out, field("Repository", fmt.Sprintf("%s (%s/%s)", repo.RepoPath, repo.Remote, repo.Branch)))
			fmt.Fprintln(out, field("Backend", state.cfg.NotificationConfig.Backend))
			fmt.Fprintln(out, renderConfiguration(monitorCfg))

			if !ok {
				fmt.Fprintln(out, field("Last cycle", dimStyle.Render("never")))
				return nil
			}
			fmt.Fprintln(out, field("Last cycle", fmt.Sprintf("%s %s", last.StartedAt.Local().Format(time.DateTime), styleCycleStatus(last.Status))))
			if last.Error != "" {
				fmt.Fprintln(out, field("Error", failStyle.Render(last.Error)))
			} else {
				fmt.Fprintln(out, field("Report", renderReport(last.Report)))
			}
			return nil
		},
	}
}
