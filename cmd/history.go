package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit   int
		details bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, most recent last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, io.Discard)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.store.History()
			out := cmd.OutOrStdout()
			if err != nil {
				// keep what could be read before the damaged entry
				_, _ = failColor.Fprintf(cmd.ErrOrStderr(), "history is damaged: %v\n", err)
			}
			if len(records) == 0 {
				_, _ = noticeColor.Fprintln(out, "No sessions recorded yet")
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}
			for _, rec := range records {
				printSessionLine(out, rec)
				if details {
					printSessionBlocks(out, rec)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many sessions (0 for all)")
	cmd.Flags().BoolVarP(&details, "details", "d", false, "show every block of each session")
	return cmd
}
