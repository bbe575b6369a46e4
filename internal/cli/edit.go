package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/state"
	"github.com/slenderdeveloperman/QuoteBook/internal/utils"
)

func newEditCmd(e *env) *cobra.Command {
	var text, author, category string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a quote's text, author or category",
		Args:  cobra.ExactArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			id, err := utils.ParseID(args[0])
			if err != nil {
				return err
			}
			form := state.NewEditQuote(cmd.Context(), e.app.Repo, id)
			if msg := form.State().Error; msg != "" {
				return errors.New(msg)
			}

			flags := cmd.Flags()
			if flags.Changed("text") {
				form.SetText(text)
			}
			if flags.Changed("author") {
				form.SetAuthor(author)
			}
			if flags.Changed("category") {
				form.SetCategory(category)
			}
			if !form.Save(cmd.Context()) {
				return errors.New(form.State().Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated quote #%d\n", id)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "new quote text")
	cmd.Flags().StringVarP(&author, "author", "a", "", "new author")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category (empty clears it)")
	cmd.MarkFlagsOneRequired("text", "author", "category")
	return cmd
}
