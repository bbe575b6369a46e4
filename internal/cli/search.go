package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/search"
)

func newSearchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find quotes by text or author (case-insensitive)",
		Args:  cobra.MinimumNArgs(1),
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			query := search.Normalize(search.Clip(strings.Join(args, " "), e.app.Cfg.MaxSearchLength))
			if query == "" {
				writeQuotes(cmd.OutOrStdout(), nil)
				return nil
			}
			qs, err := first(cmd.Context(), e.app.Repo.SearchQuotes(cmd.Context(), query))
			if err != nil {
				return err
			}
			writeQuotes(cmd.OutOrStdout(), qs)
			return nil
		}),
	}
}
