package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/cmd/cli/commands"
	"github.com/digbyberriman-collab/maritime-master-sub000/internal/config"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/postgres"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        *commands.AppContext
	database   *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Fleet compliance CLI - Manage drills, documents and acknowledgments",
		Long:  `A CLI tool for managing recurring vessel drills, controlled document workflows, crew acknowledgments and fleet compliance reporting.`,
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

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "prod", "Environment (dev, prod)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	app = &commands.AppContext{}

	rootCmd.AddCommand(commands.ScheduleDrillCmd(app))
	rootCmd.AddCommand(commands.StartDrillCmd(app))
	rootCmd.AddCommand(commands.CompleteDrillCmd(app))
	rootCmd.AddCommand(commands.CancelDrillCmd(app))
	rootCmd.AddCommand(commands.PostponeDrillCmd(app))
	rootCmd.AddCommand(commands.DeleteDrillCmd(app))
	rootCmd.AddCommand(commands.DrillComplianceCmd(app))
	rootCmd.AddCommand(commands.PlanDrillsCmd(app))
	rootCmd.AddCommand(commands.CreateDocumentCmd(app))
	rootCmd.AddCommand(commands.SubmitDocumentCmd(app))
	rootCmd.AddCommand(commands.ApproveDocumentCmd(app))
	rootCmd.AddCommand(commands.RejectDocumentCmd(app))
	rootCmd.AddCommand(commands.MarkReviewedCmd(app))
	rootCmd.AddCommand(commands.ObsoleteDocumentCmd(app))
	rootCmd.AddCommand(commands.AcknowledgeCmd(app))
	rootCmd.AddCommand(commands.AckStatsCmd(app))
	rootCmd.AddCommand(commands.FleetStatusCmd(app))
	rootCmd.AddCommand(commands.EmergencyInfoCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the database connection
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded", zap.String("company_id", app.Cfg.CompanyID))

	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized")

	return nil
}
