package main

import (
	"fmt"
	"os"

	"github.com/2beens/ironlog/internal/config"
	"github.com/2beens/ironlog/internal/db"
	"github.com/2beens/ironlog/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagEnv    string
	flagConfig string

	dbPool *pgxpool.Pool
)

var rootCmd = &cobra.Command{
	Use:   "ironlogctl",
	Short: "IronLog admin tool",
	Long: `ironlogctl manages an IronLog database.

  $ ironlogctl migrate                       # apply pending schema migrations
  $ ironlogctl status                        # show applied and pending migrations
  $ ironlogctl useradd --username bob \
      --email bob@example.com --password s3cret

Connection settings come from the same config.toml the service uses,
the db password from IRONLOG_DB_PASS.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load(flagEnv, flagConfig)
		if err != nil {
			return err
		}
		log.SetLevel(logging.GetLevel(cfg.LogLevel))

		dbPool, err = db.NewDBPool(cmd.Context(), db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: os.Getenv("IRONLOG_DB_PASS"),
		})
		if err != nil {
			return err
		}
		if err := dbPool.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("ping db: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbPool != nil {
			dbPool.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "./config.toml", "path for the TOML config file")

	rootCmd.AddCommand(migrateCmd, statusCmd, useraddCmd)
}
