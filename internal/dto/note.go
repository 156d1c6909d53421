// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/notepadie/notepad-local-service/pkg/timex"

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
	FolderID  *string    `json:"folderId"`
}

// NoteCreateRequest 创建笔记的请求参数; folderId 可为空表示根级
type NoteCreateRequest struct {
	FolderID *string `json:"folderId" form:"folderId"`
}

// NoteUpdateRequest 部分更新笔记的请求参数
// 指针为 nil 表示不改动该字段; folderId 以 hasFolderId 区分清空与不改
type NoteUpdateRequest struct {
	Title       *string `json:"title" form:"title"`
	Content     *string `json:"content" form:"content"`
	FolderID    *string `json:"folderId" form:"folderId"`
	HasFolderID bool    `json:"hasFolderId" form:"hasFolderId"`
}

// NoteMoveRequest 移动笔记到目标文件夹; folderId 为 null 移回根级
type NoteMoveRequest struct {
	FolderID *string `json:"folderId" form:"folderId"`
}

// NoteActiveRequest 设置活动笔记; id 为 null 表示清空选择
type NoteActiveRequest struct {
	ID *string `json:"id" form:"id"`
}

// NotePreviewRequest 渲染 markdown 预览的请求参数
type NotePreviewRequest struct {
	Content string `json:"content" form:"content"`
}

// NotePreviewDTO 渲染结果
type NotePreviewDTO struct {
	HTML string `json:"html"`
}
