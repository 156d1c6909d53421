package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/pkg/code"
	"github.com/notepadie/notepad-local-service/pkg/logger"
	"github.com/notepadie/notepad-local-service/pkg/util"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ManifestName ZIP 归档中的笔记清单文件名
const ManifestName = "notes.json"

// ArchiveService 笔记集合的 ZIP 导入导出
type ArchiveService interface {
	// Export 打包当前笔记集合, 返回 ZIP 字节流与建议文件名
	Export(ctx context.Context) ([]byte, string, error)
	// Import 解析 ZIP 并整体替换笔记集合, 返回导入的笔记数
	Import(ctx context.Context, data []byte, confirm bool) (int, error)
}

type archiveService struct {
	store  StoreService
	logger *zap.Logger
}

func NewArchiveService(store StoreService, lg *zap.Logger) ArchiveService {
	return &archiveService{store: store, logger: lg}
}

// IsEmptyExport 判断错误是否为空集合导出拒绝
func IsEmptyExport(err error) bool {
	return errors.Is(err, code.ErrorArchiveEmptyExport)
}

// ExportFilename 按日期生成备份文件名, 如 notepad-backup-2026-08-29.zip
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("notepad-backup-%s.zip", now.UTC().Format("2006-01-02"))
}

// BuildArchive 将笔记集合编码为 ZIP
// 清单为缩进 JSON, 每条笔记附带一个 {序号}-{slug}.md 的可读副本
func BuildArchive(notes []*domain.Note) ([]byte, error) {
	manifest, err := sonic.ConfigDefault.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, err
	}

	names := []string{ManifestName}
	files := map[string][]byte{ManifestName: manifest}
	for i, n := range notes {
		name := fmt.Sprintf("%d-%s.md", i+1, util.Slugify(n.Title))
		names = append(names, name)
		files[name] = []byte(fmt.Sprintf("# %s\n\n%s", n.Title, n.Content))
	}

	return util.ZipBytesOrdered(names, files)
}

func (s *archiveService) Export(ctx context.Context) ([]byte, string, error) {
	notes := s.store.Notes()
	if len(notes) == 0 {
		return nil, "", code.ErrorArchiveEmptyExport
	}

	data, err := BuildArchive(notes)
	if err != nil {
		s.logger.Error("archive build failed", zap.Error(err))
		return nil, "", code.ErrorArchiveInvalid.WithDetails(err.Error())
	}

	return data, ExportFilename(time.Now()), nil
}

// ParseArchive 从 ZIP 中取出清单并解码
// .md 条目只是人类可读副本, 导入时一律忽略
func ParseArchive(data []byte) ([]*domain.Note, error) {
	manifest, found, err := util.UnzipEntry(data, ManifestName)
	if err != nil {
		return nil, code.ErrorArchiveInvalid.WithDetails(err.Error())
	}
	if !found {
		return nil, code.ErrorArchiveManifestMissing
	}

	var notes []*domain.Note
	if err := sonic.Unmarshal(manifest, &notes); err != nil {
		return nil, code.ErrorArchiveNoValidNotes
	}
	if len(notes) == 0 {
		return nil, code.ErrorArchiveNoValidNotes
	}
	return notes, nil
}

// Import 先完整校验归档, 校验全部通过且 confirm 为真时才变更状态
// 导入采用 last-writer-wins, 覆盖确认时刻的任何并发修改
func (s *archiveService) Import(ctx context.Context, data []byte, confirm bool) (int, error) {
	notes, err := ParseArchive(data)
	if err != nil {
		return 0, err
	}
	if !confirm {
		return 0, code.ErrorImportNotConfirmed
	}

	s.store.ReplaceAllNotes(ctx, notes)
	s.logger.Info("notes restored from archive", zap.Int(logger.FieldCount, len(notes)))
	return len(notes), nil
}
