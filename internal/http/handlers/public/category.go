package public

import (
	"github.com/ait-marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 获取启用的顶级分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListRoots(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategoryTree 获取分类树
func (h *Handler) GetCategoryTree(c *gin.Context) {
	tree, err := h.CategoryService.Tree(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, tree)
}

// GetCategory 获取分类详情（含参数）
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.category_fetch_failed")
		return
	}
	response.Success(c, category)
}

// ListCategoryParameters 获取分类参数
func (h *Handler) ListCategoryParameters(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	params, err := h.CategoryService.ListParameters(id)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, "error.category_fetch_failed")
		return
	}
	response.Success(c, params)
}
