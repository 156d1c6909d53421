package api_router

import (
	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/dto"
	pkgapp "github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// StateHandler 状态快照与界面状态 API 路由处理器
type StateHandler struct {
	*Handler
}

// NewStateHandler 创建 StateHandler 实例
func NewStateHandler(a *app.App) *StateHandler {
	return &StateHandler{Handler: NewHandler(a)}
}

// State 获取完整状态快照, 供外部界面整体渲染
// @Summary 获取状态快照
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.StateDTO} "Success"
// @Router /api/state [get]
func (h *StateHandler) State(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	store := h.App.Store

	folders := store.Folders()
	folderDTOs := make([]*dto.FolderDTO, 0, len(folders))
	for _, f := range folders {
		folderDTOs = append(folderDTOs, folderToDTO(f))
	}

	response.ToResponse(code.Success.WithData(dto.StateDTO{
		Notes:         notesToDTO(store.Notes()),
		Folders:       folderDTOs,
		ActiveNoteID:  store.ActiveNoteID(),
		IsSidebarOpen: store.IsSidebarOpen(),
		Theme:         string(store.Theme()),
	}))
}

// ToggleSidebar 翻转侧栏可见性
// @Router /api/sidebar/toggle [put]
func (h *StateHandler) ToggleSidebar(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	open := h.App.Store.ToggleSidebar(c.Request.Context())
	response.ToResponse(code.Success.WithData(dto.SidebarDTO{IsSidebarOpen: open}))
}

// ToggleTheme 翻转主题
// @Router /api/theme/toggle [put]
func (h *StateHandler) ToggleTheme(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	mode := h.App.Store.ToggleTheme(c.Request.Context())
	response.ToResponse(code.Success.WithData(dto.ThemeDTO{Theme: string(mode)}))
}
