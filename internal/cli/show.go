package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/utils"
)

func newShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one quote",
		Args:  cobra.ExactArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			q, err := lookup(cmd, e, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			writeQuote(w, *q)
			fmt.Fprintf(w, "Added %s\n", q.Created().Local().Format("2006-01-02 15:04"))
			return nil
		}),
	}
}

// lookup resolves an id argument to a stored quote.
func lookup(cmd *cobra.Command, e *env, arg string) (*domain.Quote, error) {
	id, err := utils.ParseID(arg)
	if err != nil {
		return nil, err
	}
	q := e.app.Repo.GetQuoteByID(cmd.Context(), id)
	if q == nil {
		return nil, fmt.Errorf("quote #%d not found", id)
	}
	return q, nil
}
