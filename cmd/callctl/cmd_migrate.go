package main

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/call-analyzer/internal/infrastructure/database"
	"github.com/johnquangdev/call-analyzer/pkg/config"
	"github.com/johnquangdev/call-analyzer/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	var (
		dir  string
		down bool
	)
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back) the sql-migrate files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			zl, err := logger.New(cfg.Log, cfg.IsProduction())
			if err != nil {
				return err
			}
			defer zl.Sync()

			db, err := database.NewPostgresDB(cfg, zl)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			direction := migrate.Up
			if down {
				direction = migrate.Down
			}

			zl.Info("🔄 Applying migrations", zap.String("dir", dir), zap.Bool("down", down))
			n, err := database.Migrate(db, dir, direction)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
	c.Flags().StringVar(&dir, "dir", database.DefaultMigrationsDir, "migrations directory")
	c.Flags().BoolVar(&down, "down", false, "roll back instead of applying")
	return c
}
