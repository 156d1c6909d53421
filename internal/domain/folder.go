package domain

import "github.com/notepadie/notepad-local-service/pkg/timex"

// Folder 文件夹领域模型
// Folders form a forest over notes and other folders
// 文件夹在笔记和其他文件夹之上构成一片森林
type Folder struct {
	// ID 创建时分配，不可变
	ID string `json:"id"`
	// Name 可编辑，非空（创建边界处校验）
	Name string `json:"name"`
	// ParentID 父文件夹，nil 表示顶层
	// 创建后不可重新指定，结构上排除了环
	ParentID *string `json:"parentId"`
	// CreatedAt 创建时设置一次
	CreatedAt timex.Time `json:"createdAt"`
}

// IsTopLevel 判断文件夹是否为顶层
func (f *Folder) IsTopLevel() bool {
	return f.ParentID == nil
}

// HasParent 判断文件夹的父级是否为指定文件夹
func (f *Folder) HasParent(folderID string) bool {
	return f.ParentID != nil && *f.ParentID == folderID
}

// FolderOption 文件夹选择项
// Flattened depth-first listing entry for folder pickers
// 供文件夹选择器使用的深度优先展平列表项
type FolderOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}
