package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/timeplan/timeplan/internal/app"
	"github.com/timeplan/timeplan/internal/config"
	"github.com/timeplan/timeplan/internal/database"
	"github.com/timeplan/timeplan/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "timeplan",
	Short: "Timeplan – departmental time tracking, capacity and utilization service",
	Long: `timeplan stores logged time entries in PostgreSQL and serves daily capacity
ledgers and utilization reports computed against the regional holiday calendar.
Running it without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations, or roll back with --rollback",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML configuration file")
	migrateCmd.Flags().Int("rollback", 0, "number of migrations to roll back")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig() (config.Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Application{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logging.Setup(cfg.Log); err != nil {
		return config.Application{}, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	steps, err := cmd.Flags().GetInt("rollback")
	if err != nil {
		return err
	}
	if steps > 0 {
		log.Infof("Rolling back %d migration(s)", steps)
		return database.Rollback(cfg.Database, steps)
	}
	return database.Migrate(cfg.Database)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
