package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newListCmd(e *env) *cobra.Command {
	var (
		category      string
		uncategorized bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			if uncategorized && category != "" {
				return errors.New("--category and --uncategorized are mutually exclusive")
			}
			s := e.app.Repo.GetQuotesByCategory(cmd.Context(), category)
			if uncategorized {
				s.Close()
				s = e.app.Repo.GetUncategorizedQuotes(cmd.Context())
			}
			qs, err := first(cmd.Context(), s)
			if err != nil {
				return err
			}
			writeQuotes(cmd.OutOrStdout(), qs)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only quotes in this category")
	cmd.Flags().BoolVarP(&uncategorized, "uncategorized", "u", false, "only quotes without a category")
	return cmd
}
