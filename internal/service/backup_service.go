package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/notepadie/notepad-local-service/pkg/fileurl"
	"github.com/notepadie/notepad-local-service/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackupOptions 定时本地备份配置
type BackupOptions struct {
	Enable         bool
	CronExpression string
	Dir            string
	MaxFiles       int
}

// BackupService 定时将笔记集合打包为 ZIP 落盘的后台服务
// 调度器每分钟驱动一次 RunDue, 到期与否由 cron 表达式决定
type BackupService interface {
	RunDue(ctx context.Context) error
	RunOnce(ctx context.Context) (string, error)
	NextRunTime() time.Time
}

type backupService struct {
	archive  ArchiveService
	opts     BackupOptions
	logger   *zap.Logger
	schedule cron.Schedule

	mu      sync.Mutex
	nextRun time.Time
}

// NewBackupService 创建备份服务; cron 表达式非法时返回错误
func NewBackupService(archive ArchiveService, opts BackupOptions, lg *zap.Logger) (BackupService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(opts.CronExpression)
	if err != nil {
		return nil, err
	}

	return &backupService{
		archive:  archive,
		opts:     opts,
		logger:   lg,
		schedule: schedule,
		nextRun:  schedule.Next(time.Now()),
	}, nil
}

func (s *backupService) NextRunTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// RunDue 到期则执行一次备份并推进下次执行时间
func (s *backupService) RunDue(ctx context.Context) error {
	if !s.opts.Enable {
		return nil
	}

	now := time.Now()
	s.mu.Lock()
	due := s.nextRun.Before(now)
	if due {
		s.nextRun = s.schedule.Next(now)
	}
	s.mu.Unlock()
	if !due {
		return nil
	}

	path, err := s.RunOnce(ctx)
	if err != nil {
		return err
	}
	if path != "" {
		s.logger.Info("scheduled backup written", zap.String(logger.FieldFile, path))
	}
	return nil
}

// RunOnce 立即写出一份备份并按保留数清理旧文件
// 笔记集合为空时跳过, 返回空路径
func (s *backupService) RunOnce(ctx context.Context) (string, error) {
	data, _, err := s.archive.Export(ctx)
	if err != nil {
		if IsEmptyExport(err) {
			return "", nil
		}
		return "", err
	}

	// 文件名带时间戳, 同一天的多份备份互不覆盖
	name := fmt.Sprintf("notepad-backup-%s.zip", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(s.opts.Dir, name)
	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	if err := s.applyRetention(); err != nil {
		s.logger.Warn("backup retention cleanup failed", zap.Error(err))
	}
	return path, nil
}

// applyRetention 按文件名排序 (即时间顺序) 删除超出保留数的最旧备份
func (s *backupService) applyRetention() error {
	if s.opts.MaxFiles <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		return err
	}

	var backups []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "notepad-backup-") && strings.HasSuffix(name, ".zip") {
			backups = append(backups, name)
		}
	}
	if len(backups) <= s.opts.MaxFiles {
		return nil
	}

	sort.Strings(backups)
	for _, name := range backups[:len(backups)-s.opts.MaxFiles] {
		if err := os.Remove(filepath.Join(s.opts.Dir, name)); err != nil {
			return err
		}
	}
	return nil
}
