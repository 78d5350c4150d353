// Command setup prepares the shift manager database: it creates the schema,
// loads the demo fixtures, or drops everything.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shift_manager_backend/internal/config"
	"shift_manager_backend/internal/database"
	"shift_manager_backend/internal/models"
	"shift_manager_backend/pkg/utils"
)

var (
	logLevel     string
	seedDate     string
	seedPassword string
	skipSchema   bool
)

var rootCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the shift manager database",
	Long: `Creates tables, loads demo data or drops the schema of the database
selected by DB_DRIVER (postgres or sqlite) and the matching DB_* / SQLITE_PATH settings.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(logLevel, "console")
	},
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig) error {
			if err := database.ApplySchema(ctx, db, cfg.Driver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo employees, tasks and shifts",
	Long:  `Loads the demo fixtures when the database has no accounts yet. Shifts are placed on --date.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now()
		if seedDate != "" {
			parsed, err := time.Parse(models.DateLayout, seedDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q, please use YYYY-MM-DD", seedDate)
			}
			date = parsed
		}

		return withDatabase(cmd.Context(), func(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig) error {
			if !skipSchema {
				if err := database.ApplySchema(ctx, db, cfg.Driver); err != nil {
					return err
				}
			}
			result, err := database.Seed(ctx, db, date, seedPassword)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "database already has accounts, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d tasks, %d shifts\n", result.Users, result.Tasks, result.Shifts)
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd.Context(), func(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig) error {
			if err := database.Reset(ctx, db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all tables dropped")
			return nil
		})
	},
}

func withDatabase(ctx context.Context, fn func(context.Context, *sql.DB, config.DatabaseConfig) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.LoadDatabase()
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db, cfg)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	seedCmd.Flags().StringVar(&seedDate, "date", "", "date for the demo shifts (YYYY-MM-DD, default today)")
	seedCmd.Flags().StringVar(&seedPassword, "password", database.DefaultSeedPassword, "password for every demo account")
	seedCmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "do not create missing tables first")

	rootCmd.AddCommand(migrateCmd, seedCmd, resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
