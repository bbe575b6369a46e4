package cli

import (
	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/share"
)

func newShareCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Print a quote ready to paste",
		Args:  cobra.ExactArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			q, err := lookup(cmd, e, args[0])
			if err != nil {
				return err
			}
			return share.To(cmd.OutOrStdout(), *q)
		}),
	}
}
