// Package database 负责建立数据库连接、迁移表结构，并组装 Repository 层
// 连接句柄由调用方持有并逐层注入，包内不保存全局实例
package database

import (
	"fmt"
	"time"

	"pet_adoption_server/internal/config"
	"pet_adoption_server/internal/dao/database/repository"
	"pet_adoption_server/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open 按配置的驱动建立 GORM 连接并设置连接池
func Open(conf *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := newDialector(conf)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // 唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(conf.ConnMaxLifetimeMinutes) * time.Minute)

	zap.L().Info("database connected",
		zap.String("driver", conf.Driver),
		zap.String("host", conf.Host),
		zap.String("database", conf.DatabaseName),
	)
	return db, nil
}

func newDialector(conf *config.DatabaseConfig) (gorm.Dialector, error) {
	switch conf.Driver {
	case "mysql":
		// user:password@tcp(host:port)/database?params
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conf.User, conf.Password, conf.Host, conf.Port, conf.DatabaseName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			conf.Host, conf.Port, conf.User, conf.Password, conf.DatabaseName, conf.SSLMode)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Migrate 自动迁移表结构：不存在则创建，新增字段则补齐，不删除已有字段
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Init 打开连接、按需迁移，返回 Repository 聚合
func Init(conf *config.DatabaseConfig) (*repository.Repositories, error) {
	db, err := Open(conf)
	if err != nil {
		return nil, err
	}
	if conf.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return repository.NewRepositories(db), nil
}
