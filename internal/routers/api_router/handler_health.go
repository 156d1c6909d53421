package api_router

import (
	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/dto"
	pkgapp "github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// 数据库异常或存在持久化失败时报 unhealthy
// @Summary 健康检查
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.HealthDTO} "Success"
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	store := h.App.Store
	response := dto.HealthDTO{
		Status:          "healthy",
		NoteCount:       len(store.Notes()),
		FolderCount:     len(store.Folders()),
		PersistFailures: store.PersistFailures(),
	}

	if err := h.App.DB.Raw("SELECT 1").Error; err != nil {
		response.Status = "unhealthy"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(response))
		return
	}
	if response.PersistFailures > 0 {
		response.Status = "degraded"
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(response))
}
