package dao

import (
	"context"
	"errors"
	"time"

	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/internal/model"
	"github.com/notepadie/notepad-local-service/pkg/logger"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed storage keys, carried over from the web client's local storage
// 固定存储键，沿用 Web 客户端 local storage 的键名
const (
	KeyNotes  = "notepad-notes"
	KeyFolder = "notepad-folders"
	KeyTheme  = "notepad-theme"
)

type kvRepository struct {
	*Dao
}

// NewKVRepository 创建键值持久化仓储实例
func NewKVRepository(d *Dao) domain.KVRepository {
	return &kvRepository{Dao: d}
}

// get 读取单个键，不存在时返回 (nil, false, nil)
func (r *kvRepository) get(ctx context.Context, key string) ([]byte, bool, error) {
	var m model.KV
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return m.Value, true, nil
}

// set 写入单个键，存在则覆盖
func (r *kvRepository) set(ctx context.Context, key string, value []byte) error {
	m := model.KV{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		r.logger.Error("kv write failed", zap.String(logger.FieldKey, key), zap.Error(err))
	}
	return err
}

func (r *kvRepository) LoadNotes(ctx context.Context) ([]*domain.Note, error) {
	data, found, err := r.get(ctx, KeyNotes)
	if err != nil || !found {
		return nil, err
	}
	var notes []*domain.Note
	if err := sonic.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *kvRepository) SaveNotes(ctx context.Context, notes []*domain.Note) error {
	data, err := sonic.Marshal(notes)
	if err != nil {
		return err
	}
	return r.set(ctx, KeyNotes, data)
}

func (r *kvRepository) LoadFolders(ctx context.Context) ([]*domain.Folder, error) {
	data, found, err := r.get(ctx, KeyFolder)
	if err != nil || !found {
		return nil, err
	}
	var folders []*domain.Folder
	if err := sonic.Unmarshal(data, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *kvRepository) SaveFolders(ctx context.Context, folders []*domain.Folder) error {
	data, err := sonic.Marshal(folders)
	if err != nil {
		return err
	}
	return r.set(ctx, KeyFolder, data)
}

func (r *kvRepository) LoadThemeMode(ctx context.Context) (domain.ThemeMode, error) {
	data, found, err := r.get(ctx, KeyTheme)
	if err != nil || !found {
		return "", err
	}
	return domain.ThemeMode(data), nil
}

func (r *kvRepository) SaveThemeMode(ctx context.Context, mode domain.ThemeMode) error {
	return r.set(ctx, KeyTheme, []byte(mode))
}
