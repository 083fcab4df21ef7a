package handle

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/genomeinsight/pkg/internal/genomics"
	"github.com/yeisme/genomeinsight/pkg/internal/model"
	"github.com/yeisme/genomeinsight/pkg/internal/repository"
	"github.com/yeisme/genomeinsight/pkg/internal/service"
	"github.com/yeisme/genomeinsight/pkg/internal/types"
	"github.com/yeisme/genomeinsight/pkg/log"
)

// UploadField 上传表单中的文件字段名.
const UploadField = "file"

// FileHandlers 文件相关的处理器.
type FileHandlers struct {
	intake *service.IntakeService
	files  *service.FileService
}

// NewFileHandlers 创建文件处理器.
func NewFileHandlers(intake *service.IntakeService, files *service.FileService) *FileHandlers {
	return &FileHandlers{intake: intake, files: files}
}

// Upload 上传单个基因组文件，内容直接流式写入存储，不在内存或临时文件中缓冲.
//
//	@Summary		上传文件
//	@Description	multipart 表单字段 file，校验扩展名、大小与内容类型
//	@Tags			文件
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file								true	"基因组文件"
//	@Success		201		{object}	types.UploadFileResponse
//	@Failure		400		{object}	types.ValidationFailedResponse
//	@Failure		500		{object}	types.ErrorResponse
//	@Router			/api/v1/files/upload [post]
func (h *FileHandlers) Upload(c *gin.Context) {
	mr, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "multipart/form-data body with a \"file\" field is required"})
		return
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "missing \"file\" field"})
			return
		}

		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "malformed multipart body"})
			return
		}

		if part.FormName() != UploadField {
			_ = part.Close()
			continue
		}

		rec, err := h.intake.Intake(c.Request.Context(), service.IntakeRequest{
			Filename: part.FileName(),
			Content:  part,
			SizeHint: -1,
		})
		_ = part.Close()

		if err != nil {
			h.uploadError(c, err)
			return
		}

		c.JSON(http.StatusCreated, types.NewUploadFileResponse(rec))

		return
	}
}

func (h *FileHandlers) uploadError(c *gin.Context, err error) {
	ie, ok := service.AsIntakeError(err)
	if ok && ie.Kind == service.KindValidation && ie.Verdict != nil {
		c.JSON(http.StatusBadRequest, types.ValidationFailedResponse{
			Error:    "validation failed",
			Errors:   ie.Verdict.Errors,
			Warnings: ie.Verdict.Warnings,
		})

		return
	}

	_ = c.Error(err)

	log.Logger().Error().Err(err).Msg("upload failed")
	c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: msgInternal})
}

// List 分页列出文件.
//
//	@Summary		文件列表
//	@Tags			文件
//	@Produce		json
//	@Param			status		query		string	false	"处理状态"
//	@Param			file_type	query		string	false	"文件类别"
//	@Param			limit		query		int		false	"每页数量，默认 50，最大 500"
//	@Param			offset		query		int		false	"偏移量"
//	@Success		200			{object}	types.ListFilesResponse
//	@Failure		400			{object}	types.ErrorResponse
//	@Router			/api/v1/files [get]
func (h *FileHandlers) List(c *gin.Context) {
	var q types.ListFilesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	files, total, err := h.files.List(c.Request.Context(), service.ListFilter{
		Status:   model.Status(q.Status),
		FileType: genomics.Category(q.FileType),
	}, q.Limit, q.Offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	resp := types.ListFilesResponse{
		Files:  make([]types.FileSummary, 0, len(files)),
		Total:  total,
		Limit:  repository.NormalizeLimit(q.Limit),
		Offset: q.Offset,
	}
	for i := range files {
		resp.Files = append(resp.Files, types.NewFileSummary(&files[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// Get 文件详情.
//
//	@Summary		文件详情
//	@Tags			文件
//	@Produce		json
//	@Param			id	path		string	true	"文件 ID"
//	@Success		200	{object}	types.FileDetail
//	@Failure		404	{object}	types.ErrorResponse
//	@Router			/api/v1/files/{id} [get]
func (h *FileHandlers) Get(c *gin.Context) {
	rec, err := h.files.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewFileDetail(rec))
}

// Delete 软删除文件记录，内容保留.
//
//	@Summary		删除文件
//	@Tags			文件
//	@Param			id	path	string	true	"文件 ID"
//	@Success		204
//	@Failure		404	{object}	types.ErrorResponse
//	@Router			/api/v1/files/{id} [delete]
func (h *FileHandlers) Delete(c *gin.Context) {
	if err := h.files.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateStatus 下游分析任务回写处理状态.
//
//	@Summary		更新处理状态
//	@Tags			文件
//	@Accept			json
//	@Param			id		path	string						true	"文件 ID"
//	@Param			body	body	types.UpdateStatusRequest	true	"状态"
//	@Success		204
//	@Failure		400	{object}	types.ErrorResponse
//	@Failure		404	{object}	types.ErrorResponse
//	@Router			/api/v1/files/{id}/status [put]
func (h *FileHandlers) UpdateStatus(c *gin.Context) {
	var req types.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.files.UpdateStatus(c.Request.Context(), c.Param("id"), model.Status(req.Status), req.ErrorMessage); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FileTypes 支持的扩展名.
//
//	@Summary		支持的文件类型
//	@Tags			文件
//	@Produce		json
//	@Success		200	{object}	types.FileTypesResponse
//	@Router			/api/v1/file-types [get]
func (h *FileHandlers) FileTypes(c *gin.Context) {
	c.JSON(http.StatusOK, types.FileTypesResponse{
		Categories: h.files.FileTypes(),
		Extensions: genomics.SupportedExtensions(),
	})
}
