package dto

// StateDTO 完整状态快照, 供外部界面整体渲染
type StateDTO struct {
	Notes         []*NoteDTO   `json:"notes"`
	Folders       []*FolderDTO `json:"folders"`
	ActiveNoteID  *string      `json:"activeNoteId"`
	IsSidebarOpen bool         `json:"isSidebarOpen"`
	Theme         string       `json:"theme"`
}

// SidebarDTO 侧栏可见性
type SidebarDTO struct {
	IsSidebarOpen bool `json:"isSidebarOpen"`
}

// ThemeDTO 当前主题
type ThemeDTO struct {
	Theme string `json:"theme"`
}

// HealthDTO 健康检查结果
type HealthDTO struct {
	Status          string `json:"status"`
	NoteCount       int    `json:"noteCount"`
	FolderCount     int    `json:"folderCount"`
	PersistFailures int64  `json:"persistFailures"`
}
