package task

import (
	"github.com/notepadie/notepad-local-service/internal/service"
	"github.com/notepadie/notepad-local-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器, 负责创建和管理所有后台任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
	}
}

// RegisterBackupTask 注册定时备份任务; backup 为 nil 时视为关闭
func (m *Manager) RegisterBackupTask(backup service.BackupService) {
	if backup == nil {
		m.logger.Info("backup task is disabled")
		return
	}
	m.scheduler.AddTask(NewBackupTask(backup))
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
