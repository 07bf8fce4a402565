package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/gazette-dev/gazette/internal/infrastructure/db/postgres"
	"github.com/gazette-dev/gazette/internal/infrastructure/db/postgres/migrations"
	"github.com/gazette-dev/gazette/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run Migrations",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(cmd.Help())
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display status of each migration",
	Run: func(cmd *cobra.Command, args []string) {
		db, migrator := openMigrator(cmd.Context())
		defer db.Close()

		statuses, err := migrator.Status(cmd.Context())
		if err != nil {
			fmt.Println("Unable to fetch migration status", err)
			os.Exit(1)
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Printf("%-16s %-24s %s\n", s.Version, s.Name, state)
		}
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run up migrations",
	Long:  "Apply every pending migration in a single transaction.",
	Run: func(cmd *cobra.Command, args []string) {
		db, migrator := openMigrator(cmd.Context())
		defer db.Close()

		n, err := migrator.Up(cmd.Context())
		if err != nil {
			fmt.Println("Unable to run `up` migrations", err)
			os.Exit(1)
		}
		fmt.Printf("Applied %d migration(s)\n", n)
	},
}

func openMigrator(ctx context.Context) (*sqlx.DB, *migrations.Migrator) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, _, err := loadConfig(ctx)
	if err != nil {
		fmt.Println("Unable to load configuration", err)
		os.Exit(1)
	}

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, MaxOpenConns: 1})
	if err != nil {
		fmt.Println("Unable to connect to the database", err)
		os.Exit(1)
	}
	return db, migrations.NewMigrator(db, logger.Component("migrations"))
}

// Register the "migrate" command
func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	rootCmd.AddCommand(migrateCmd)
}
