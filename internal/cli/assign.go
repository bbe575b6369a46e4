package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/utils"
)

func newAssignCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <category> <id>...",
		Short: "Put quotes into a category, creating it if needed",
		Args:  cobra.MinimumNArgs(2),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			ids, err := utils.ParseIDs(args[1:])
			if err != nil {
				return err
			}
			if err := e.app.Repo.AssignQuotesToCategory(cmd.Context(), ids, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d quote(s) to %q\n", len(ids), args[0])
			return nil
		}),
	}
}
