package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/segyhp/kos-management/internal/config"
	"github.com/segyhp/kos-management/internal/repository"
	"github.com/segyhp/kos-management/pkg/logger"
)

var Version = "dev"

// app is filled by the root command before any subcommand runs
type app struct {
	envFile string
	cfg     *config.Config
	log     *slog.Logger
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "kosctl",
		Short:         "Maintenance commands for the kos management backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load environment variables from this file first")

	rootCmd.AddCommand(migrateCmd(a))
	rootCmd.AddCommand(paymentsCmd(a))
	rootCmd.AddCommand(notificationsCmd(a))
	rootCmd.AddCommand(expensesCmd(a))
	rootCmd.AddCommand(usersCmd(a))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) load() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

func (a *app) connect(ctx context.Context) (*sqlx.DB, error) {
	db, err := repository.Connect(ctx, a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
