package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/state"
)

func newAddCmd(e *env) *cobra.Command {
	var author, category string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a quote",
		Args:  cobra.MinimumNArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			form := state.NewAddQuote(e.app.Repo)
			form.SetText(strings.Join(args, " "))
			form.SetAuthor(author)
			form.SetCategory(category)

			if !form.Save(cmd.Context()) {
				return errors.New(form.State().Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added quote #%d\n", form.State().SavedID)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&author, "author", "a", "", "who said it (default \"Unknown\")")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category label")
	return cmd
}
