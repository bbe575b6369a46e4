package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/utils"
)

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete quotes",
		Args:    cobra.MinimumNArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			ids, err := utils.ParseIDs(args)
			if err != nil {
				return err
			}
			var errs []error
			for _, id := range ids {
				if err := e.app.Repo.DeleteQuoteByID(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("quote #%d: %w", id, err))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d quote(s)\n", len(ids)-len(errs))
			return errors.Join(errs...)
		}),
	}
}
