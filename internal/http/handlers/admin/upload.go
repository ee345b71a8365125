package admin

import (
	"github.com/ait-marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadImage 后台上传分类/广告图片
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_empty", err)
		return
	}
	result, err := h.UploadService.SaveImage(file, c.PostForm("scene"))
	if err != nil {
		respondWithMappedError(c, err, uploadAdminErrorRules, "error.upload_failed")
		return
	}
	response.Created(c, result)
}
