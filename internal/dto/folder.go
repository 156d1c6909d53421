package dto

import "github.com/notepadie/notepad-local-service/pkg/timex"

// FolderDTO 文件夹数据传输对象
type FolderDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ParentID  *string    `json:"parentId"`
	CreatedAt timex.Time `json:"createdAt"`
}

// FolderOptionDTO 文件夹选择器的展开项, depth 仅用于缩进展示
type FolderOptionDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// FolderCreateRequest 创建文件夹请求参数; 名称去除首尾空白后不得为空
type FolderCreateRequest struct {
	Name     string  `json:"name" form:"name" binding:"required"`
	ParentID *string `json:"parentId" form:"parentId"`
}

// FolderRenameRequest 重命名文件夹请求参数
type FolderRenameRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}
