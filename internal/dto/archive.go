package dto

// ArchiveImportRequest 导入归档的请求参数
// confirm 必须显式为 true, 相当于覆盖确认对话框
type ArchiveImportRequest struct {
	Confirm bool `json:"confirm" form:"confirm"`
}

// ArchiveImportDTO 导入结果
type ArchiveImportDTO struct {
	Imported int `json:"imported"`
}
