package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet_adoption_server/internal/dao/database"
	myredis "pet_adoption_server/internal/dao/redis"
	"pet_adoption_server/internal/gateway/websocket"
	"pet_adoption_server/internal/handler"
	"pet_adoption_server/internal/https_server"
	"pet_adoption_server/internal/infrastructure/logger"
	"pet_adoption_server/internal/infrastructure/middleware"
	"pet_adoption_server/internal/infrastructure/mq"
	"pet_adoption_server/internal/infrastructure/storage"
	"pet_adoption_server/internal/service"
	"pet_adoption_server/pkg/util/jwt"
	"pet_adoption_server/pkg/util/snowflake"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// serveCmd 启动 HTTP 服务
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	// 1. 加载配置
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.Mode); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zap.L().Sync()
	if err := handler.InitTrans("en"); err != nil {
		return fmt.Errorf("init validator translator: %w", err)
	}
	snowflake.Init(conf.MachineID)

	// 3. 初始化数据库
	repos, err := database.Init(&conf.DatabaseConfig)
	if err != nil {
		return err
	}
	if sqlDB, err := repos.DB().DB(); err == nil {
		defer sqlDB.Close()
	}
	zap.L().Info("数据库初始化成功", zap.String("driver", conf.Driver))

	// 4. 初始化缓存，Redis 关闭时退化为进程内缓存
	cache, closeCache, err := myredis.NewCacheService(&conf.RedisConfig)
	if err != nil {
		return err
	}
	defer closeCache()

	// 5. 文件存储与令牌
	store, err := storage.NewLocalStore(conf.UploadPath, conf.DocumentPath)
	if err != nil {
		return err
	}
	tokens := jwt.NewManager(conf.Secret, conf.AccessTokenExpiry, conf.RefreshTokenExpiry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 6. 通知推送：事件总线消费后经 Hub 推给在线用户
	hub := websocket.NewHub()
	defer hub.Close()
	broker, err := mq.NewBroker(&conf.KafkaConfig, mq.NewDispatcher(hub).Handle)
	if err != nil {
		return err
	}
	defer broker.Close()
	go broker.Start(ctx)
	zap.L().Info("事件总线初始化成功", zap.String("mode", conf.MessageMode))

	// 7. Service / Handler 依赖注入
	svcs := service.NewServices(service.Deps{
		Repos:            repos,
		Cache:            cache,
		Tokens:           tokens,
		Store:            store,
		Publisher:        broker,
		PlaceholderImage: conf.PlaceholderImage,
	})
	handlers := handler.NewHandlers(svcs, handler.Options{
		Cookies:    conf.CookieConfig,
		RefreshTTL: tokens.RefreshTokenExpiry(),
		Hub:        hub,
		Upgrader:   websocket.NewUpgrader(conf.AllowedOrigins),
	})
	engine := https_server.Init(conf, handlers, svcs.Auth, middleware.NewMetrics())

	// 8. 启动服务，收到信号后优雅关闭
	srv := &http.Server{
		Addr:              conf.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server running fault: %w", err)
		}
	case <-ctx.Done():
	}

	zap.L().Info("关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
	zap.L().Info("服务器已关闭")
	return nil
}
