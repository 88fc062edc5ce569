// Package migrate is the schema maintenance CLI behind cmd/migrate.
package migrate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Apurer/go-gin-store-api/internal/app/api"
	platformdb "github.com/Apurer/go-gin-store-api/internal/platform/database"
	"github.com/Apurer/go-gin-store-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-store-api/internal/platform/observability"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	NoColor bool
	Timeout time.Duration
}

// NewRootCommand creates the root command of the migrate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "store-migrate",
		Short: "Manage the Store API schema",
		Long: `Create and inspect the stores, items and item_idempotency_keys tables.

The database is selected exactly like the API does: CONFIG_FILE, then
DATABASE_DRIVER, POSTGRES_DSN and SQLITE_PATH.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.NoColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log connection details to stderr")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "overall deadline for the command")

	cmd.AddCommand(newUpCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	return cmd
}

func newUpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or update every catalog table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()
			cfg, err := api.LoadConfig()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			_, cleanup, err := api.OpenDatabase(ctx, cfg, commandLogger(opts, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer cleanup()
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DatabaseConfig().EffectiveDriver())
			return nil
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which catalog tables exist and their row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()
			cfg, err := api.LoadConfig()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			db, cleanup, err := platformdb.Open(ctx, cfg.DatabaseConfig(), commandLogger(opts, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer cleanup()
			statuses, err := migrations.Status(db.WithContext(ctx))
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), statuses)
			return nil
		},
	}
}

func printStatus(w io.Writer, statuses []migrations.TableStatus) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	pending := 0
	for _, status := range statuses {
		cyan.Fprintf(w, "%-24s", status.Table)
		if status.Present {
			green.Fprintf(w, "present")
			fmt.Fprintf(w, " (%d rows)\n", status.Rows)
			continue
		}
		pending++
		yellow.Fprintln(w, "missing")
	}
	if pending > 0 {
		yellow.Fprintf(w, "%d table(s) missing, run \"up\"\n", pending)
	}
}

func commandLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	if !opts.Verbose {
		w = io.Discard
	}
	return platformobservability.NewLogger(w, slog.LevelInfo)
}
