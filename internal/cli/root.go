// Package cli is the quotebook terminal shell: cobra commands over the quote
// repository and the screen state holders. It holds no persistence logic.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/slenderdeveloperman/QuoteBook/internal/config"
	"github.com/slenderdeveloperman/QuoteBook/internal/sysutil"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// env carries per-invocation state from the root command to subcommands.
type env struct {
	app *App

	dbPath    string
	prefsPath string
}

// NewRootCmd builds the command tree. The App is opened before any
// subcommand runs and closed after it returns, whether or not it failed.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "quotebook",
		Short:         "Collect, browse and search your favorite quotes",
		Long:          `Quotebook keeps a personal collection of quotes in a local SQLite file. Quotes can be grouped into categories, searched, browsed as a card stack, and shared as plain text.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if e.dbPath != "" {
				cfg.DBPath = e.dbPath
			}
			if e.prefsPath != "" {
				cfg.PrefsPath = e.prefsPath
			}
			log := sysutil.NewLogger(cfg, cmd.ErrOrStderr())

			app, err := Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			e.app = app
			return nil
		},
	}

	root.PersistentFlags().StringVar(&e.dbPath, "db", "", "quote database file (overrides QUOTEBOOK_DB_PATH)")
	root.PersistentFlags().StringVar(&e.prefsPath, "prefs", "", "preferences file (overrides QUOTEBOOK_PREFS_PATH)")

	root.AddCommand(
		newAddCmd(e),
		newListCmd(e),
		newShowCmd(e),
		newEditCmd(e),
		newDeleteCmd(e),
		newSearchCmd(e),
		newCategoriesCmd(e),
		newAssignCmd(e),
		newBrowseCmd(e),
		newShareCmd(e),
		newIntroCmd(e),
		newStatsCmd(e),
	)
	return root
}

// Execute runs the shell and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// runE wraps a subcommand body so the App is closed when it returns.
func (e *env) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if e.app != nil {
				err = errors.Join(err, e.app.Close(context.WithoutCancel(cmd.Context())))
				e.app = nil
			}
		}()
		return fn(cmd, args)
	}
}
