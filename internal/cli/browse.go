package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/cardstack"
)

func newBrowseCmd(e *env) *cobra.Command {
	var (
		start    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "browse [l|r|s]...",
		Short: "Walk the card stack",
		Long: `Browse replays swipes over the card stack and prints the cards on top.
Moves: l swipes left (next card), r swipes right (previous card), s shuffles.`,
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			qs, err := first(cmd.Context(), e.app.Repo.GetQuotesByCategory(cmd.Context(), category))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(qs) == 0 {
				fmt.Fprintln(w, "No quotes.")
				return nil
			}

			nav := cardstack.NewNavigator(start, len(qs))
			for _, mv := range args {
				switch strings.ToLower(mv) {
				case "l", "left":
					nav.SwipeLeft()
				case "r", "right":
					nav.SwipeRight()
				case "s", "shuffle":
					nav.Shuffle()
				default:
					return fmt.Errorf("unknown move %q (want l, r or s)", mv)
				}
			}

			for pos, i := range nav.Visible(e.app.Cfg.MaxVisibleCards) {
				marker := "  "
				if pos == 0 {
					marker = "> "
				}
				fmt.Fprintf(w, "%s[%d/%d] ", marker, i+1, len(qs))
				writeQuote(w, qs[i])
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&start, "start", 0, "index of the first card")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only quotes in this category")
	return cmd
}
