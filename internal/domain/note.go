// Package domain 定义领域模型和接口
package domain

import "github.com/notepadie/notepad-local-service/pkg/timex"

// Note 笔记领域模型
// Note is the primary content unit: a titled markdown document
// Note 是主要内容单元：一篇带标题的 markdown 文档
type Note struct {
	// ID 创建时分配，不可变
	ID string `json:"id"`
	// Title 可编辑，允许为空（展示层负责占位符）
	Title string `json:"title"`
	// Content markdown 源文本，可为空
	Content string `json:"content"`
	// CreatedAt 创建时设置一次，不可变
	CreatedAt timex.Time `json:"createdAt"`
	// UpdatedAt 创建时设置，每次成功变更 Title/Content/FolderID 后刷新
	UpdatedAt timex.Time `json:"updatedAt"`
	// FolderID 所属文件夹，nil 表示位于根
	FolderID *string `json:"folderId"`
}

// InFolder 判断笔记是否直接位于指定文件夹内
func (n *Note) InFolder(folderID string) bool {
	return n.FolderID != nil && *n.FolderID == folderID
}

// IsRoot 判断笔记是否位于根
func (n *Note) IsRoot() bool {
	return n.FolderID == nil
}
