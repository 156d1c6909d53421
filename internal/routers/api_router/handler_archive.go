package api_router

import (
	"fmt"
	"io"
	"net/http"

	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/dto"
	pkgapp "github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"
	apperrors "github.com/notepadie/notepad-local-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ArchiveHandler 笔记归档导入导出 API 路由处理器
type ArchiveHandler struct {
	*Handler
}

// NewArchiveHandler 创建 ArchiveHandler 实例
func NewArchiveHandler(a *app.App) *ArchiveHandler {
	return &ArchiveHandler{Handler: NewHandler(a)}
}

// Export 导出全部笔记为 ZIP 下载
// @Summary 导出笔记归档
// @Produce application/zip
// @Router /api/archive/export [get]
func (h *ArchiveHandler) Export(c *gin.Context) {
	data, filename, err := h.App.ArchiveService.Export(c.Request.Context())
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// Import 上传 ZIP 归档并整体替换笔记集合
// confirm 必须显式为 true, 相当于覆盖确认对话框
// @Summary 导入笔记归档
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "ZIP 归档"
// @Param confirm formData bool true "确认覆盖"
// @Success 200 {object} pkgapp.Res{data=dto.ArchiveImportDTO} "Success"
// @Router /api/archive/import [post]
func (h *ArchiveHandler) Import(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var params dto.ArchiveImportRequest
	if err := c.ShouldBind(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("file is required"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.ToResponse(code.ErrorArchiveInvalid.WithDetails(err.Error()))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.ToResponse(code.ErrorArchiveInvalid.WithDetails(err.Error()))
		return
	}

	count, err := h.App.ArchiveService.Import(c.Request.Context(), data, params.Confirm)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.ArchiveImportDTO{Imported: count}))
}
