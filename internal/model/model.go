// Package model 定义数据库表模型
package model

import (
	"time"

	"gorm.io/gorm"
)

// KV 键值存储表模型
// Collections are stored as opaque JSON blobs under fixed keys
// 集合以不透明的 JSON 数据块形式存储在固定键之下
type KV struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (KV) TableName() string {
	return "kv"
}

func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "KV":
		return db.AutoMigrate(KV{})
	}
	return nil
}
