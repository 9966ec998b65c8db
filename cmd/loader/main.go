package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/spf13/cobra"

	"github.com/vukovuko/football-rag/config"
	"github.com/vukovuko/football-rag/pkg/batch"
	"github.com/vukovuko/football-rag/pkg/database"
	"github.com/vukovuko/football-rag/pkg/loaders"
	"github.com/vukovuko/football-rag/pkg/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "loader",
		Short:         "Load the match data corpus into PostgreSQL",
		Long:          "Each subcommand loads one source domain. Domains depend on earlier ones: run matches first, events and three-sixty last, or use all.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		domainCommand("matches", "Load match files and their referenced teams, managers, stadiums and referees", func(l *loaders.Loader, ctx context.Context) (*batch.RunReport, error) {
			return l.LoadMatches(ctx)
		}),
		domainCommand("competitions", "Load the competition and season index", func(l *loaders.Loader, ctx context.Context) (*batch.RunReport, error) {
			return l.LoadCompetitions(ctx)
		}),
		domainCommand("lineups", "Load lineup files: players, rosters, position stints and cards", func(l *loaders.Loader, ctx context.Context) (*batch.RunReport, error) {
			return l.LoadLineups(ctx)
		}),
		domainCommand("three-sixty", "Load freeze frame files", func(l *loaders.Loader, ctx context.Context) (*batch.RunReport, error) {
			return l.LoadThreeSixty(ctx)
		}),
		domainCommand("events", "Load event files and their per-type detail tables", func(l *loaders.Loader, ctx context.Context) (*batch.RunReport, error) {
			return l.LoadEvents(ctx)
		}),
		aggregateCommand(),
		allCommand(),
	)

	return root
}

func domainCommand(name, short string, run func(*loaders.Loader, context.Context) (*batch.RunReport, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoader(func(ctx context.Context, l *loaders.Loader) error {
				report, err := run(l, ctx)
				if report != nil {
					fmt.Println(report.Summary())
				}
				return err
			})
		},
	}
}

func aggregateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Recompute player aggregate columns from the loaded tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoader(func(ctx context.Context, l *loaders.Loader) error {
				return l.Aggregate(ctx)
			})
		},
	}
}

func allCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Load every domain in dependency order, then aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoader(func(ctx context.Context, l *loaders.Loader) error {
				reports, err := l.RunAll(ctx)
				for _, report := range reports {
					fmt.Println(report.Summary())
				}
				return err
			})
		},
	}
}

// withLoader handles the shared setup: config, logger, database, migrations.
func withLoader(run func(context.Context, *loaders.Loader) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, flush, err := logging.New(cfg.IsProduction(), cfg.PrettyLogs)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, logger, cfg.DatabaseDriver, cfg.DSN(), cfg.DatabaseMaxOpenConns, cfg.DatabaseMaxIdleConns, cfg.DatabaseConnMaxLifetime)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migrateUp(cfg, logger, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return run(ctx, loaders.New(db, logger, cfg))
}

func migrateUp(cfg *config.Config, logger ectologger.Logger, db database.DB) error {
	driver, err := postgres.WithInstance(db.Unsafe().DB, &postgres.Config{})
	if err != nil {
		return err
	}
	migrations := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
	})
	return migrations.Migrate(cfg.DatabaseName, driver)
}
