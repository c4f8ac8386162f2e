package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fkoester/equishift/cmd/cli/commands"
	"github.com/fkoester/equishift/internal/config"
	"github.com/fkoester/equishift/pkg/postgres"
	"github.com/fkoester/equishift/pkg/utils/logging"
)

var (
	verbose  bool
	app      *commands.AppContext
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "equishift",
		Short: "EquiShift CLI - Fair volunteer shift planning",
		Long:  `A CLI tool for planning volunteer shifts: candidate checks, fairness-based proposals, plan validation, attendance tracking and publishing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")

	app = &commands.AppContext{}

	// Add all commands
	rootCmd.AddCommand(commands.CandidatesCmd(app))
	rootCmd.AddCommand(commands.ProposeCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.RankingCmd(app))
	rootCmd.AddCommand(commands.SummaryCmd(app))
	rootCmd.AddCommand(commands.CopyEventCmd(app))
	rootCmd.AddCommand(commands.DefineShiftsCmd(app))
	rootCmd.AddCommand(commands.ResetPlanningCmd(app))
	rootCmd.AddCommand(commands.RecordAttendanceCmd(app))
	rootCmd.AddCommand(commands.ExportPlanCmd(app))
	rootCmd.AddCommand(commands.PublishPlanCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the database connection
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database ready", zap.String("driver", "postgres"))

	return nil
}
