package admin

import (
	"errors"

	"github.com/muhe-mall/internal/http/response"
	"github.com/muhe-mall/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件 (Admin)
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.file_missing", err)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		if errors.Is(err, service.ErrUploadInvalid) {
			respondError(c, response.CodeBadRequest, "error.upload_failed", err)
			return
		}
		respondError(c, response.CodeInternal, "error.upload_failed", err)
		return
	}

	requestLog(c).Infow("file_uploaded", "scene", scene, "filename", file.Filename, "size", file.Size)
	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
