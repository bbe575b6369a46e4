package cli

import (
	"errors"
	"fmt"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/repo"
)

func newStatsCmd(e *env) *cobra.Command {
	var withMetrics bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: e.runE(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			n, err := e.app.Repo.CountQuotes(ctx)
			if err != nil {
				return err
			}
			cats, err := first(ctx, e.app.Repo.GetCategories(ctx))
			if err != nil {
				return err
			}
			unc, err := first(ctx, e.app.Repo.GetUncategorizedQuotes(ctx))
			if err != nil {
				return err
			}
			ver, err := repo.SchemaVersion(e.app.DB)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "quotes:         %d\n", n)
			fmt.Fprintf(w, "categories:     %d\n", len(cats))
			fmt.Fprintf(w, "uncategorized:  %d\n", len(unc))
			fmt.Fprintf(w, "schema version: %d\n", ver)

			if !withMetrics {
				return nil
			}
			if e.app.Registry == nil {
				return errors.New("metrics are disabled (METRICS_ENABLED=false)")
			}
			mfs, err := e.app.Registry.Gather()
			if err != nil {
				return err
			}
			fmt.Fprintln(w)
			for _, mf := range mfs {
				if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
					return err
				}
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "also dump repository metrics in Prometheus text format")
	return cmd
}
