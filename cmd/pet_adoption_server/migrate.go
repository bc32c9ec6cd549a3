package main

import (
	"fmt"

	"pet_adoption_server/internal/dao/database"
	"pet_adoption_server/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd 只做表结构迁移
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	Long: `Create missing tables, columns and indexes for users, preferences,
pets, applications and saved publications. Existing columns are never dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate()
	},
}

func runMigrate() error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logger.Init(&conf.LogConfig, conf.Mode); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zap.L().Sync()

	db, err := database.Open(&conf.DatabaseConfig)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	zap.L().Info("数据库迁移完成", zap.String("driver", conf.Driver))
	return nil
}
