package api_router

import (
	"strings"

	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/internal/dto"
	pkgapp "github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"
	"github.com/notepadie/notepad-local-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// FolderHandler 文件夹 API 路由处理器
type FolderHandler struct {
	*Handler
}

// NewFolderHandler 创建 FolderHandler 实例
func NewFolderHandler(a *app.App) *FolderHandler {
	return &FolderHandler{Handler: NewHandler(a)}
}

func folderToDTO(f *domain.Folder) *dto.FolderDTO {
	return convert.StructAssign(f, &dto.FolderDTO{}).(*dto.FolderDTO)
}

// List 获取文件夹集合
// @Summary 获取全部文件夹
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.FolderDTO} "Success"
// @Router /api/folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	folders := h.App.Store.Folders()
	out := make([]*dto.FolderDTO, 0, len(folders))
	for _, f := range folders {
		out = append(out, folderToDTO(f))
	}
	response.ToResponse(code.Success.WithData(out))
}

// Options 获取文件夹选择器的展开项
// 深度优先, 同级按名称排序, depth 供缩进展示
// @Router /api/folder/options [get]
func (h *FolderHandler) Options(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	options := h.App.Store.FolderOptions()
	out := make([]*dto.FolderOptionDTO, 0, len(options))
	for _, o := range options {
		out = append(out, &dto.FolderOptionDTO{ID: o.ID, Name: o.Name, Depth: o.Depth})
	}
	response.ToResponse(code.Success.WithData(out))
}

// Create 创建文件夹
// 名称去除首尾空白后为空的提交在此边界拒绝, 存储层不再校验
// @Summary 创建文件夹
// @Accept json
// @Produce json
// @Param params body dto.FolderCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.FolderDTO} "Success"
// @Router /api/folder [post]
func (h *FolderHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.FolderCreateRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		response.ToResponse(code.ErrorFolderNameEmpty)
		return
	}

	f := h.App.Store.CreateFolder(c.Request.Context(), name, params.ParentID)
	response.ToResponse(code.Success.WithData(folderToDTO(f)))
}

// Rename 重命名文件夹
// @Router /api/folder/{id} [put]
func (h *FolderHandler) Rename(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.FolderRenameRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		response.ToResponse(code.ErrorFolderNameEmpty)
		return
	}

	if !h.App.Store.RenameFolder(c.Request.Context(), c.Param("id"), name) {
		response.ToResponse(code.ErrorFolderNotFound)
		return
	}

	response.ToResponse(code.Success)
}

// Delete 删除文件夹; 含笔记或子文件夹时以编码结果拒绝
// @Router /api/folder/{id} [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	id := c.Param("id")

	if h.App.Store.DeleteFolder(c.Request.Context(), id) {
		response.ToResponse(code.Success)
		return
	}

	// 区分拒绝原因: 不存在 vs 非空
	for _, f := range h.App.Store.Folders() {
		if f.ID == id {
			response.ToResponse(code.ErrorFolderNotEmpty)
			return
		}
	}
	response.ToResponse(code.ErrorFolderNotFound)
}
