package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"spicery-be/internal/config"
	"spicery-be/internal/db"
	"spicery-be/internal/logger"
	"spicery-be/internal/schema"

	"github.com/spf13/cobra"
)

var openDBFunc = db.NewDatabase

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		dbDriver string
		dbURL    string
	)

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the spicery store schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver (sqlite, postgres, pgx); overrides DB_DRIVER")
	root.PersistentFlags().StringVar(&dbURL, "db-url", "", "Database URL or file; overrides DB_URL")

	// withInitializer opens the store named by config and flags and hands a
	// schema initializer to fn.
	withInitializer := func(fn func(ctx context.Context, si *schema.Initializer) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if dbDriver != "" {
				cfg.DBDriver = dbDriver
			}
			if dbURL != "" {
				cfg.DBURL = dbURL
			}
			logger.Init(cfg.IsProduction())
			defer logger.Sync()

			database, err := openDBFunc(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			return fn(cmd.Context(), schema.New(database))
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Create missing tables and add missing columns",
			RunE: withInitializer(func(ctx context.Context, si *schema.Initializer) error {
				return migrateUp(ctx, si, out)
			}),
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the demo catalog when the products table is empty",
			RunE: withInitializer(func(ctx context.Context, si *schema.Initializer) error {
				n, err := si.SeedIfEmpty(ctx)
				if err != nil {
					return err
				}
				if n == 0 {
					fmt.Fprintln(out, "catalog already has products, nothing seeded")
					return nil
				}
				fmt.Fprintf(out, "seeded %d products\n", n)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the columns of every managed table",
			RunE: withInitializer(func(ctx context.Context, si *schema.Initializer) error {
				return printStatus(ctx, si, out)
			}),
		},
	)

	return root
}

func migrateUp(ctx context.Context, si *schema.Initializer, out io.Writer) error {
	if err := si.EnsureSchema(ctx); err != nil {
		return err
	}

	added, err := si.EnsureColumns(ctx)
	if err != nil {
		return err
	}

	if len(added) == 0 {
		fmt.Fprintln(out, "schema up to date")
		return nil
	}
	for _, col := range added {
		fmt.Fprintf(out, "added column %s\n", col)
	}
	return nil
}

func printStatus(ctx context.Context, si *schema.Initializer, out io.Writer) error {
	for _, table := range schema.Tables() {
		cols, err := si.Columns(ctx, table)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			fmt.Fprintf(out, "%-12s missing\n", table)
			continue
		}
		fmt.Fprintf(out, "%-12s %s\n", table, strings.Join(cols, ", "))
	}
	return nil
}
