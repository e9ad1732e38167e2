package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(state *cliState) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent check cycles, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(state.cfg, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			cycles, err := st.history.RecentCycles(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cycles) == 0 {
				fmt.Fprintln(out, dimStyle.Render("no cycles recorded"))
				return nil
			}
			for _, c := range cycles {
				duration := "-"
				if c.EndedAt != nil {
					duration = c.EndedAt.Sub(c.StartedAt).Round(time.Millisecond).String()
				}
				line := fmt.Sprintf("%s  %-9s  %8s  %s",
					c.StartedAt.Local().Format(time.DateTime), styleCycleStatus(c.Status), duration, renderReport(c.Report))
				if c.Error != "" {
					line += "  " + failStyle.Render(c.Error)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of cycles to show")
	return cmd
}
