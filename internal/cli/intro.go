package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const introText = `Welcome to Quotebook.

  quotebook add "text" -a author -c category   save a quote
  quotebook browse l l r                        swipe through your cards
  quotebook search word                         find quotes by text or author
  quotebook assign Favorites 1 2 3              group quotes into a category
`

func newIntroCmd(e *env) *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "intro",
		Short: "Show the introduction until it is marked as seen",
		Args:  cobra.NoArgs,
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			if done {
				if err := e.app.Prefs.SetHasSeenIntro(ctx, true); err != nil {
					return err
				}
				fmt.Fprintln(w, "Intro marked as seen.")
				return nil
			}
			seen, err := e.app.Prefs.HasSeenIntro(ctx)
			if err != nil {
				return err
			}
			if seen {
				fmt.Fprintln(w, "Intro already seen.")
				return nil
			}
			fmt.Fprint(w, introText)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&done, "done", false, "mark the intro as seen")
	return cmd
}
