package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prodtrack/backend/internal/api/handler"
	"prodtrack/backend/internal/api/middleware"
	"prodtrack/backend/internal/api/router"
	"prodtrack/backend/internal/repository"
	"prodtrack/backend/internal/service"
	"prodtrack/backend/pkg/database"
	"prodtrack/backend/pkg/metrics"
	"prodtrack/backend/pkg/redis"
)

func runServe(_ *cobra.Command, _ []string) error {
	// 1. 配置、日志、数据库与迁移
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 连接 Redis（可选：连接失败时降级运行，写接口不限流）
	var rdb *redis.Client
	var limiter middleware.RateLimiter
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，写接口限流不可用", zap.Error(err))
			rdb = nil
		} else {
			limiter = rdb
		}
	}

	// 3. 指标
	var m *metrics.Manager
	if cfg.Metrics.Enabled {
		m = metrics.NewManager(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRuntimeCollectors(),
		)
	}

	// 4. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, m, logger)
	h := handler.NewHandler(svc, database.NewPinger(db))

	// 5. 初始化路由
	engine := router.Setup(cfg, h, limiter, m, logger)

	// 6. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// 7. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))
	case err := <-serveErr:
		logger.Error("HTTP 服务器异常", zap.Error(err))
		runErr = err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("服务器已关闭")
	return runErr
}
