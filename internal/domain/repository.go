package domain

import "context"

// KVRepository 键值持久化仓储接口
// The durable key-value substrate behind the store; collections cross this
// boundary as JSON-serialized blobs under fixed keys. The repository itself
// performs no validation.
// 存储层背后的持久化键值基底；集合以 JSON 序列化数据块的形式、
// 以固定键跨越该边界。仓储自身不做任何校验。
type KVRepository interface {
	// LoadNotes 加载笔记集合，不存在时返回 (nil, nil)
	LoadNotes(ctx context.Context) ([]*Note, error)

	// SaveNotes 保存完整笔记集合
	SaveNotes(ctx context.Context, notes []*Note) error

	// LoadFolders 加载文件夹集合，不存在时返回 (nil, nil)
	LoadFolders(ctx context.Context) ([]*Folder, error)

	// SaveFolders 保存完整文件夹集合
	SaveFolders(ctx context.Context, folders []*Folder) error

	// LoadThemeMode 加载主题模式，不存在时返回 ("", nil)
	LoadThemeMode(ctx context.Context) (ThemeMode, error)

	// SaveThemeMode 保存主题模式
	SaveThemeMode(ctx context.Context, mode ThemeMode) error
}
