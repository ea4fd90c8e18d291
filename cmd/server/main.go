package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prodtrack/backend/config"
	"prodtrack/backend/pkg/database"
	applogger "prodtrack/backend/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "prodtrack-server",
	Short:         "生产率记录后端服务",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "连接数据库、执行迁移并启动 HTTP 服务",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "仅执行数据库迁移后退出",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置、初始化日志并连接数据库（serve 与 migrate 共用）
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = database.Close(db)
		return nil, nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return cfg, logger, db, nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	_, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return database.Close(db)
}
