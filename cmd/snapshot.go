package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peter890821/esg-eval-dashboard/internal/store"
)

var snapshotLimit int

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect stored dataset snapshots",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		snaps, err := st.ListSnapshots(ctx, snapshotLimit)
		if err != nil {
			return err
		}

		if len(snaps) == 0 {
			fmt.Println("no snapshots stored")
			return nil
		}

		fmt.Printf("%-38s %-20s %8s  %s\n", "ID", "CREATED", "RECORDS", "SOURCE")
		for _, s := range snaps {
			fmt.Printf("%-38s %-20s %8d  %s\n",
				s.ID,
				s.CreatedAt.Format("2006-01-02 15:04:05"),
				s.Count,
				s.Source,
			)
		}
		return nil
	},
}

func init() {
	snapshotListCmd.Flags().IntVar(&snapshotLimit, "limit", 0, "max snapshots to list (default 20)")
	snapshotCmd.AddCommand(snapshotListCmd)
	rootCmd.AddCommand(snapshotCmd)
}
