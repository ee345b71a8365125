package public

import (
	"github.com/ait-marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadImage 上传商品/广告图片，返回可写入 image_urls 的地址
func (h *Handler) UploadImage(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_empty", err)
		return
	}
	result, err := h.UploadService.SaveImage(file, c.PostForm("scene"))
	if err != nil {
		respondWithMappedError(c, err, uploadErrorRules, "error.upload_failed")
		return
	}
	response.Created(c, result)
}
