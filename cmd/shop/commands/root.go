package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/buket_shop/internal/repo"
	"github.com/Skotchmaster/buket_shop/pkg/config"
	pkgdb "github.com/Skotchmaster/buket_shop/pkg/db"
	"github.com/Skotchmaster/buket_shop/pkg/logging"
)

var (
	envFile string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Buket flower shop storefront",
	Long: `Storefront backend for the flower shop: catalog browsing, a persistent
cart and order intake over a JSON HTTP API, plus the static web client.

Running shop without a subcommand is the same as "shop serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}
		logger = logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
	rootCmd.AddCommand(serveCmd, migrateCmd, reindexCmd)
}

// openRepo connects to the configured database.
func openRepo(ctx context.Context) (*repo.GormRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return &repo.GormRepo{DB: db}, nil
}

func closeDB(db *gorm.DB) {
	if err := pkgdb.Close(db); err != nil {
		logger.Warn("db_close_error", "error", err)
	}
}
