package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in use",
		Args:  cobra.NoArgs,
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			cats, err := first(cmd.Context(), e.app.Repo.GetCategories(cmd.Context()))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(cats) == 0 {
				fmt.Fprintln(w, "No categories.")
				return nil
			}
			for _, c := range cats {
				fmt.Fprintln(w, c)
			}
			return nil
		}),
	}
}
