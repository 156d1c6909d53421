package api_router

import (
	"github.com/notepadie/notepad-local-service/internal/app"
	"github.com/notepadie/notepad-local-service/internal/domain"
	"github.com/notepadie/notepad-local-service/internal/dto"
	"github.com/notepadie/notepad-local-service/internal/service"
	pkgapp "github.com/notepadie/notepad-local-service/pkg/app"
	"github.com/notepadie/notepad-local-service/pkg/code"
	"github.com/notepadie/notepad-local-service/pkg/convert"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

func noteToDTO(n *domain.Note) *dto.NoteDTO {
	return convert.StructAssign(n, &dto.NoteDTO{}).(*dto.NoteDTO)
}

func notesToDTO(notes []*domain.Note) []*dto.NoteDTO {
	out := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, noteToDTO(n))
	}
	return out
}

// List 获取笔记集合
// @Summary 获取全部笔记
// @Produce json
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteDTO} "Success"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(notesToDTO(h.App.Store.Notes())))
}

// Create 创建空白笔记并设为活动笔记
// @Summary 创建笔记
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "Success"
// @Router /api/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.NoteCreateRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	n := h.App.Store.CreateNote(c.Request.Context(), params.FolderID)
	response.ToResponse(code.Success.WithData(noteToDTO(n)))
}

// Update 部分更新笔记
// @Summary 更新笔记标题/内容/所属文件夹
// @Router /api/note/{id} [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.NoteUpdateRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	patch := service.NotePatch{
		Title:       params.Title,
		Content:     params.Content,
		FolderID:    params.FolderID,
		HasFolderID: params.HasFolderID,
	}
	n, ok := h.App.Store.UpdateNote(c.Request.Context(), c.Param("id"), patch)
	if !ok {
		response.ToResponse(code.ErrorNoteNotFound)
		return
	}

	response.ToResponse(code.Success.WithData(noteToDTO(n)))
}

// Delete 删除笔记; 删除的是活动笔记时自动重选
// @Router /api/note/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if !h.App.Store.DeleteNote(c.Request.Context(), c.Param("id")) {
		response.ToResponse(code.ErrorNoteNotFound)
		return
	}

	response.ToResponse(code.Success)
}

// SetActive 设置活动笔记; id 可为 null, 且不校验存在性
// @Router /api/active-note [put]
func (h *NoteHandler) SetActive(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.NoteActiveRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	h.App.Store.SetActiveNoteID(c.Request.Context(), params.ID)
	response.ToResponse(code.Success)
}

// Move 移动笔记到目标文件夹, folderId 为 null 移回根级
// @Router /api/note/{id}/move [put]
func (h *NoteHandler) Move(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.NoteMoveRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	if !h.App.Store.MoveNoteToFolder(c.Request.Context(), c.Param("id"), params.FolderID) {
		response.ToResponse(code.ErrorNoteNotFound)
		return
	}

	response.ToResponse(code.Success)
}

// Preview 渲染 markdown 预览
// @Summary markdown 转 HTML
// @Router /api/note/preview [post]
func (h *NoteHandler) Preview(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	var params dto.NotePreviewRequest
	if err := c.ShouldBindJSON(&params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	html, err := h.App.Markdown.Render([]byte(params.Content))
	if err != nil {
		response.ToResponse(code.ErrorMarkdownRender.WithDetails(err.Error()))
		return
	}

	response.ToResponse(code.Success.WithData(dto.NotePreviewDTO{HTML: string(html)}))
}
