package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rpggio/assetboard/internal/domain/order"
	"github.com/spf13/cobra"
)

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List sortable columns",
		Args:  cobra.NoArgs,
		// Needs neither config nor logging.
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tKIND\tPHASE")
			for _, col := range order.Columns() {
				phase := string(col.Phase)
				if phase == "" {
					phase = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", col.ID, col.Label, col.Kind, phase)
			}
			return tw.Flush()
		},
	}
}
