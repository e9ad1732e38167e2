package main

import (
	"fmt"

	"github.com/aleister1102/commitsentry/internal/datastore"
	"github.com/spf13/cobra"
)

func newLedgerCmd(state *cliState) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List the most recently notified commit ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStorage(state.cfg, state.logger)
			if err != nil {
				return err
			}
			defer st.Close()

			ledger, err := datastore.LoadNotifiedLedger(cmd.Context(), st.kv, datastore.DefaultLedgerCapacity, state.logger)
			if err != nil {
				return err
			}

			ids := ledger.IDs()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d of %d notified commits", min(limit, len(ids)), len(ids))))
			// newest last in the ledger, newest first here
			for i := len(ids) - 1; i >= 0 && len(ids)-i <= limit; i-- {
				fmt.Fprintln(out, ids[i])
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of commit ids to show")
	return cmd
}
