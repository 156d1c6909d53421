package app

import (
	"context"
	"fmt"
	"time"

	"github.com/notepadie/notepad-local-service/internal/dao"
	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/internal/service"
	pkgapp "github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/markdown"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	KVRepo domain.KVRepository

	// Service 层
	Store          service.StoreService
	ArchiveService service.ArchiveService
	BackupService  service.BackupService

	// 基础设施组件
	Markdown *markdown.Renderer

	// StartTime 进程启动时间, 供健康检查上报
	StartTime time.Time
}

// NewApp 创建应用容器实例, 初始化所有依赖并完成注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, context.Background(), dao.WithLogger(logger))

	// Repository 层
	a.KVRepo = dao.NewKVRepository(a.Dao)

	// Service 层; 存储初始化即完成加载或播种
	a.Store = service.NewStoreService(context.Background(), a.KVRepo, logger)
	a.ArchiveService = service.NewArchiveService(a.Store, logger)

	if cfg.Backup.Enable {
		backup, err := service.NewBackupService(a.ArchiveService, service.BackupOptions{
			Enable:         cfg.Backup.Enable,
			CronExpression: cfg.Backup.CronExpression,
			Dir:            cfg.Backup.Dir,
			MaxFiles:       cfg.Backup.MaxFiles,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("invalid backup cron expression %q: %w", cfg.Backup.CronExpression, err)
		}
		a.BackupService = backup
	}

	a.Markdown = markdown.NewRenderer()

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Shutdown 优雅关闭应用容器, 释放数据库连接
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("app container shutting down")

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Close(); err != nil {
			return err
		}
	}

	return nil
}
