package task

import (
	"context"
	"time"

	"github.com/notepadie/notepad-local-service/internal/service"
)

// BackupTask 每分钟轮询一次备份服务, 到期与否由 cron 表达式决定
type BackupTask struct {
	backup service.BackupService
}

// NewBackupTask 创建定时备份任务
func NewBackupTask(backup service.BackupService) Task {
	return &BackupTask{backup: backup}
}

func (t *BackupTask) Name() string {
	return "BackupScheduled"
}

func (t *BackupTask) LoopInterval() time.Duration {
	return 1 * time.Minute
}

func (t *BackupTask) IsStartupRun() bool {
	return false
}

func (t *BackupTask) Run(ctx context.Context) error {
	return t.backup.RunDue(ctx)
}
