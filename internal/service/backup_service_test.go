package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/notepadie/notepad-local-service/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBackup(t *testing.T, store StoreService, opts BackupOptions) BackupService {
	t.Helper()
	if opts.CronExpression == "" {
		opts.CronExpression = "0 3 * * *"
	}
	svc, err := NewBackupService(NewArchiveService(store, zap.NewNop()), opts, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestBackup_InvalidCronExpression(t *testing.T) {
	s := newTestStore(t, nil)
	_, err := NewBackupService(NewArchiveService(s, zap.NewNop()),
		BackupOptions{CronExpression: "not a cron"}, zap.NewNop())
	assert.Error(t, err)
}

func TestBackup_RunOnceWritesArchive(t *testing.T) {
	s := newTestStore(t, nil)
	dir := t.TempDir()
	svc := newTestBackup(t, s, BackupOptions{Enable: true, Dir: dir, MaxFiles: 5})

	path, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	files, err := util.UnzipBytes(data)
	require.NoError(t, err)
	assert.Contains(t, files, ManifestName)
}

func TestBackup_RunOnceSkipsEmptyCollection(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	require.True(t, s.DeleteNote(ctx, s.Notes()[0].ID))

	dir := t.TempDir()
	svc := newTestBackup(t, s, BackupOptions{Enable: true, Dir: dir, MaxFiles: 5})

	path, err := svc.RunOnce(ctx)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackup_Retention(t *testing.T) {
	s := newTestStore(t, nil)
	dir := t.TempDir()
	svc := newTestBackup(t, s, BackupOptions{Enable: true, Dir: dir, MaxFiles: 2})

	// 预置三份旧备份, 文件名时间戳即排序依据
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("notepad-backup-2026010%d-000000.zip", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old"), 0o644))
	}

	_, err := svc.RunOnce(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// 最旧的被清理, 最新写出的保留
	for _, e := range entries {
		assert.NotEqual(t, "notepad-backup-20260101-000000.zip", e.Name())
		assert.NotEqual(t, "notepad-backup-20260102-000000.zip", e.Name())
	}
}

func TestBackup_RunDueHonorsSchedule(t *testing.T) {
	s := newTestStore(t, nil)
	dir := t.TempDir()

	disabled := newTestBackup(t, s, BackupOptions{Enable: false, Dir: dir})
	require.NoError(t, disabled.RunDue(context.Background()))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "disabled service never writes")

	enabled := newTestBackup(t, s, BackupOptions{Enable: true, Dir: dir, MaxFiles: 5})
	// 下次执行时间尚未到达, 不应触发
	require.True(t, enabled.NextRunTime().After(time.Now().Add(-time.Minute)))
	require.NoError(t, enabled.RunDue(context.Background()))
}
